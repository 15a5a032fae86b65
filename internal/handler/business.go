package handler

import (
	"errors"
	"net/http"

	"github.com/twende-org/mauzo/internal/models"
	"github.com/twende-org/mauzo/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BusinessHandler struct{}

type UpdateBusinessRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Type string `json:"type" binding:"max=50"`
}

func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	var biz models.Business
	if err := database.DB.First(&biz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not set up yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch business"})
		return
	}
	c.JSON(http.StatusOK, biz)
}

// UpdateBusiness upserts the single business row; the first call creates it.
func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var biz models.Business
	err := database.DB.First(&biz).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		biz = models.Business{
			Name:    req.Name,
			Type:    req.Type,
			OwnerID: c.MustGet("userID").(uint),
		}
		if err := database.DB.Create(&biz).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create business"})
			return
		}
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch business"})
		return
	default:
		biz.Name = req.Name
		biz.Type = req.Type
		if err := database.DB.Save(&biz).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update business"})
			return
		}
	}

	c.JSON(http.StatusOK, biz)
}
