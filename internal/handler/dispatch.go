package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/twende-org/mauzo/internal/workflow"
	"github.com/twende-org/mauzo/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type DispatchHandler struct{}

type OpenDispatchRequest struct {
	ProductID    uint            `json:"product_id" binding:"required"`
	SellerID     uint            `json:"seller_id" binding:"required"`
	GivenQty     decimal.Decimal `json:"given_qty"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

func (h *DispatchHandler) OpenDispatch(c *gin.Context) {
	var req OpenDispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := workflow.OpenDispatch(database.DB, workflow.OpenDispatchInput{
		ProductID:    req.ProductID,
		SellerID:     req.SellerID,
		GivenQty:     req.GivenQty,
		PricePerUnit: req.PricePerUnit,
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *DispatchHandler) ListDispatches(c *gin.Context) {
	filter := workflow.DispatchFilter{Status: c.Query("status")}
	if sid := c.Query("seller_id"); sid != "" {
		v, err := strconv.ParseUint(sid, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seller_id"})
			return
		}
		filter.SellerID = uint(v)
	}
	if pid := c.Query("product_id"); pid != "" {
		v, err := strconv.ParseUint(pid, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}
		filter.ProductID = uint(v)
	}

	records, err := workflow.ListDispatches(database.DB, filter)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

type CloseDispatchRequest struct {
	MeltedQty   decimal.Decimal `json:"melted_qty"`
	ReturnedQty decimal.Decimal `json:"returned_qty"`
}

func (h *DispatchHandler) CloseDispatch(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dispatch id"})
		return
	}

	var req CloseDispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := workflow.CloseDispatch(database.DB, uint(id), req.MeltedQty, req.ReturnedQty)
	if err != nil {
		if errors.Is(err, workflow.ErrLedgerDebitPending) {
			// The dispatch is closed; only the stock debit is missing.
			// Reported so the client knows a reconciliation run is needed.
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":          "Dispatch closed but stock was not debited; run reconciliation",
				"sold_qty":       result.SoldQty,
				"cash_collected": result.CashCollected,
			})
			return
		}
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *DispatchHandler) Reconcile(c *gin.Context) {
	reconciled, err := workflow.ReconcileDispatchDebits(database.DB)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reconciled": reconciled})
}
