package handler

import (
	"net/http"

	"github.com/twende-org/mauzo/internal/models"
	"github.com/twende-org/mauzo/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct{}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	query := database.DB.Order("name")
	if c.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

type CreateProductRequest struct {
	Name              string          `json:"name" binding:"required"`
	Sku               string          `json:"sku"`
	Unit              string          `json:"unit" binding:"required"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
		return
	}
	if req.Cost.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cost must not be negative"})
		return
	}

	product := models.Product{
		Name:              req.Name,
		Sku:               req.Sku,
		Unit:              req.Unit,
		Price:             req.Price,
		Cost:              req.Cost,
		LowStockThreshold: req.LowStockThreshold,
		IsActive:          true,
	}

	if err := database.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

type UpdateProductRequest struct {
	Name              string          `json:"name" binding:"required"`
	Sku               string          `json:"sku"`
	Unit              string          `json:"unit" binding:"required"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	IsActive          *bool           `json:"is_active"`
}

// UpdateProduct edits the catalog row only. Open and closed dispatches keep
// their snapshotted name, unit and price.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
		return
	}

	updates := map[string]interface{}{
		"name":                req.Name,
		"sku":                 req.Sku,
		"unit":                req.Unit,
		"price":               req.Price,
		"cost":                req.Cost,
		"low_stock_threshold": req.LowStockThreshold,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := database.DB.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	var openCount int64
	database.DB.Model(&models.DispatchRecord{}).
		Where("product_id = ? AND status = ?", id, models.DispatchOpen).
		Count(&openCount)
	if openCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Product has open dispatches"})
		return
	}

	if err := database.DB.Where("id = ?", id).Delete(&models.Product{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
