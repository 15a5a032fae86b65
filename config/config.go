package config

import (
	"log"

	"github.com/twende-org/mauzo/internal/models"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Ledger   LedgerConfig
	Defaults DefaultsConfig
	Business models.BusinessProfile
}

type ServerConfig struct {
	Port               string
	Env                string
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	URL      string
}

type LedgerConfig struct {
	// AdjustRetries bounds the optimistic-retry loop in workflow.AdjustStock.
	AdjustRetries int
}

type DefaultsConfig struct {
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
	AdminName     string `mapstructure:"admin_name"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	viper.AutomaticEnv()
	viper.BindEnv("SERVER_PORT", "PORT")
	viper.BindEnv("DATABASE_URL")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 24)
	viper.SetDefault("LEDGER_ADJUST_RETRIES", 5)

	AppConfig = &Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Env:                viper.GetString("SERVER_ENV"),
			JWTSecret:          viper.GetString("JWT_SECRET"),
			JWTExpirationHours: viper.GetInt("JWT_EXPIRATION_HOURS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			URL:      viper.GetString("DATABASE_URL"),
		},
		Ledger: LedgerConfig{
			AdjustRetries: viper.GetInt("LEDGER_ADJUST_RETRIES"),
		},
		Defaults: DefaultsConfig{
			AdminEmail:    viper.GetString("ADMIN_EMAIL"),
			AdminPassword: viper.GetString("ADMIN_PASSWORD"),
			AdminName:     viper.GetString("ADMIN_NAME"),
		},
	}

	// Business profile lives in its own TOML file so non-developers can edit it.
	bizViper := viper.New()
	bizViper.SetConfigFile("config/business.toml")
	bizViper.SetConfigType("toml")
	if err := bizViper.ReadInConfig(); err != nil {
		log.Printf("Warning: config/business.toml not found, using empty business profile: %v", err)
	} else {
		if err := bizViper.UnmarshalKey("business", &AppConfig.Business); err != nil {
			log.Printf("Error: failed to unmarshal business profile: %v", err)
		}
	}

	log.Printf("Configuration loaded (port=%s env=%s db=%s)",
		AppConfig.Server.Port, AppConfig.Server.Env, AppConfig.Database.Name)
}
