package handler

import (
	"net/http"

	"github.com/twende-org/mauzo/internal/models"
	"github.com/twende-org/mauzo/pkg/database"

	"github.com/gin-gonic/gin"
)

type SellerHandler struct{}

func (h *SellerHandler) ListSellers(c *gin.Context) {
	query := database.DB.Order("name")
	if c.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var sellers []models.Seller
	if err := query.Find(&sellers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sellers"})
		return
	}
	c.JSON(http.StatusOK, sellers)
}

type SellerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Route string `json:"route"`
}

func (h *SellerHandler) CreateSeller(c *gin.Context) {
	var req SellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seller := models.Seller{
		Name:     req.Name,
		Phone:    req.Phone,
		Route:    req.Route,
		IsActive: true,
	}
	if err := database.DB.Create(&seller).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create seller"})
		return
	}
	c.JSON(http.StatusCreated, seller)
}

func (h *SellerHandler) UpdateSeller(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone"`
		Route    string `json:"route"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":  req.Name,
		"phone": req.Phone,
		"route": req.Route,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := database.DB.Model(&models.Seller{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update seller"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Seller updated successfully"})
}

func (h *SellerHandler) DeleteSeller(c *gin.Context) {
	id := c.Param("id")

	var openCount int64
	database.DB.Model(&models.DispatchRecord{}).
		Where("seller_id = ? AND status = ?", id, models.DispatchOpen).
		Count(&openCount)
	if openCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Seller has open dispatches"})
		return
	}

	if err := database.DB.Where("id = ?", id).Delete(&models.Seller{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete seller"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Seller deleted successfully"})
}
