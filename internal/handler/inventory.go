package handler

import (
	"net/http"
	"strconv"

	"github.com/twende-org/mauzo/internal/models"
	"github.com/twende-org/mauzo/internal/workflow"
	"github.com/twende-org/mauzo/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type InventoryHandler struct{}

func (h *InventoryHandler) GetStock(c *gin.Context) {
	statuses, err := workflow.ListStock(database.DB)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (h *InventoryHandler) GetProductStock(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	entry, err := workflow.GetEntry(database.DB, uint(productID))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

type AdjustStockRequest struct {
	ProductID  uint                `json:"product_id" binding:"required"`
	Type       models.MovementType `json:"type" binding:"required"`
	Quantity   decimal.Decimal     `json:"quantity"`
	DispatchID *uint               `json:"dispatch_id"`
	Note       string              `json:"note"`
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movement, err := workflow.AdjustStock(database.DB, workflow.StockAdjustment{
		ProductID:  req.ProductID,
		Type:       req.Type,
		Quantity:   req.Quantity,
		DispatchID: req.DispatchID,
		Note:       req.Note,
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusCreated, movement)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	query := database.DB.Order("created_at desc, id desc").Limit(200)
	if pid := c.Query("product_id"); pid != "" {
		query = query.Where("product_id = ?", pid)
	}
	if mt := c.Query("type"); mt != "" {
		query = query.Where("type = ?", mt)
	}

	var movements []models.StockMovement
	if err := query.Find(&movements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movements"})
		return
	}
	c.JSON(http.StatusOK, movements)
}

type LowStockAlert struct {
	ProductID         uint            `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Unit              string          `json:"unit"`
	AvailableQty      decimal.Decimal `json:"available_qty"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
}

func (h *InventoryHandler) GetLowStockAlerts(c *gin.Context) {
	var alerts []LowStockAlert
	err := database.DB.Table("inventory_entries").
		Select("inventory_entries.product_id, products.name AS product_name, products.unit, inventory_entries.available_qty, products.low_stock_threshold").
		Joins("JOIN products ON products.id = inventory_entries.product_id AND products.deleted_at IS NULL").
		Where("products.is_active = ? AND inventory_entries.available_qty <= products.low_stock_threshold", true).
		Scan(&alerts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch alerts"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}
