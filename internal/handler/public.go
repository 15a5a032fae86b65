package handler

import (
	"net/http"

	"github.com/twende-org/mauzo/config"
	"github.com/twende-org/mauzo/internal/models"
	"github.com/twende-org/mauzo/pkg/database"

	"github.com/gin-gonic/gin"
)

type PublicHandler struct{}

// GetBusinessProfile serves the unauthenticated profile. Contact details
// come from config/business.toml; name and type prefer the stored business
// row, which admins can edit at runtime.
func (h *PublicHandler) GetBusinessProfile(c *gin.Context) {
	profile := config.AppConfig.Business

	var biz models.Business
	if err := database.DB.First(&biz).Error; err == nil {
		profile.Name = biz.Name
		if biz.Type != "" {
			profile.Type = biz.Type
		}
	}

	c.JSON(http.StatusOK, profile)
}
