package workflow_test

import (
	"testing"

	"github.com/twende-org/mauzo/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database per test. The pool is
// capped at one connection so the :memory: database is shared by every
// session the test opens.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Product{},
		&models.Seller{},
		&models.InventoryEntry{},
		&models.StockMovement{},
		&models.DispatchRecord{},
		&models.ProductionBatch{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64) models.Product {
	t.Helper()
	product := models.Product{
		Name:     name,
		Unit:     "pcs",
		Price:    decimal.NewFromInt(price),
		IsActive: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func seedSeller(t *testing.T, db *gorm.DB, name string) models.Seller {
	t.Helper()
	seller := models.Seller{Name: name, Route: "Kariakoo", IsActive: true}
	if err := db.Create(&seller).Error; err != nil {
		t.Fatalf("seed seller: %v", err)
	}
	return seller
}

func availableQty(t *testing.T, db *gorm.DB, productID uint) decimal.Decimal {
	t.Helper()
	var entry models.InventoryEntry
	if err := db.Where("product_id = ?", productID).First(&entry).Error; err != nil {
		t.Fatalf("load inventory entry for product %d: %v", productID, err)
	}
	return entry.AvailableQty
}

func movementCount(t *testing.T, db *gorm.DB, productID uint) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.StockMovement{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		t.Fatalf("count movements: %v", err)
	}
	return count
}

func requireDecimalEqual(t *testing.T, want, got decimal.Decimal, what string) {
	t.Helper()
	if !want.Equal(got) {
		t.Fatalf("%s = %s, want %s", what, got, want)
	}
}
