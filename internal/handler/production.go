package handler

import (
	"net/http"
	"time"

	"github.com/twende-org/mauzo/internal/workflow"
	"github.com/twende-org/mauzo/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductionHandler struct{}

type RecordProductionRequest struct {
	ProductID   uint            `json:"product_id" binding:"required"`
	ProducedQty decimal.Decimal `json:"produced_qty"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Date        string          `json:"date"` // YYYY-MM-DD, defaults to today
}

func (h *ProductionHandler) RecordProduction(c *gin.Context) {
	var req RecordProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	batch, err := workflow.RecordProduction(database.DB, workflow.ProductionInput{
		ProductID:   req.ProductID,
		ProducedQty: req.ProducedQty,
		TotalCost:   req.TotalCost,
		Date:        date,
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

func (h *ProductionHandler) ListProduction(c *gin.Context) {
	batches, err := workflow.ListProduction(database.DB)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, batches)
}
