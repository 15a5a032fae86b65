package handler

import (
	"net/http"
	"time"

	"github.com/twende-org/mauzo/internal/models"
	"github.com/twende-org/mauzo/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ReportHandler struct{}

type productStats struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	SoldQty     decimal.Decimal `json:"sold_qty"`
	MeltedQty   decimal.Decimal `json:"melted_qty"`
	ReturnedQty decimal.Decimal `json:"returned_qty"`
	Revenue     decimal.Decimal `json:"revenue"`
	Expenses    decimal.Decimal `json:"expenses"`
	Profit      decimal.Decimal `json:"profit"`
}

// GetDashboard aggregates closed dispatches and expenses into the admin
// dashboard: per-product performance, overall totals, a 7-day revenue
// series and the operational counters.
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	var closed []models.DispatchRecord
	if err := database.DB.Where("status = ?", models.DispatchClosed).Find(&closed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dispatches"})
		return
	}

	var expenses []models.Expense
	if err := database.DB.Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}

	// Per-product rollup; general (unlinked) expenses are kept separate.
	statsByProduct := map[uint]*productStats{}
	for _, d := range closed {
		s, ok := statsByProduct[d.ProductID]
		if !ok {
			s = &productStats{
				ProductID:   d.ProductID,
				ProductName: d.ProductName,
				Unit:        d.Unit,
				SoldQty:     decimal.Zero,
				MeltedQty:   decimal.Zero,
				ReturnedQty: decimal.Zero,
				Revenue:     decimal.Zero,
				Expenses:    decimal.Zero,
			}
			statsByProduct[d.ProductID] = s
		}
		s.SoldQty = s.SoldQty.Add(d.SoldQty)
		s.MeltedQty = s.MeltedQty.Add(d.MeltedQty)
		s.ReturnedQty = s.ReturnedQty.Add(d.ReturnedQty)
		s.Revenue = s.Revenue.Add(d.CashCollected)
	}

	generalExpenses := decimal.Zero
	for _, e := range expenses {
		if e.ProductID != nil {
			if s, ok := statsByProduct[*e.ProductID]; ok {
				s.Expenses = s.Expenses.Add(e.Amount)
				continue
			}
		}
		generalExpenses = generalExpenses.Add(e.Amount)
	}

	products := make([]productStats, 0, len(statsByProduct))
	totalRevenue := decimal.Zero
	totalExpenses := generalExpenses
	totalMelted := decimal.Zero
	for _, s := range statsByProduct {
		s.Profit = s.Revenue.Sub(s.Expenses)
		totalRevenue = totalRevenue.Add(s.Revenue)
		totalExpenses = totalExpenses.Add(s.Expenses)
		totalMelted = totalMelted.Add(s.MeltedQty)
		products = append(products, *s)
	}

	// Last 7 days of revenue by close date.
	type chartPoint struct {
		Label   string          `json:"label"`
		Revenue decimal.Decimal `json:"revenue"`
	}
	series := make([]chartPoint, 0, 7)
	now := time.Now()
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.Add(24 * time.Hour)
		daySum := decimal.Zero
		for _, d := range closed {
			if d.ClosedAt != nil && !d.ClosedAt.Before(start) && d.ClosedAt.Before(end) {
				daySum = daySum.Add(d.CashCollected)
			}
		}
		series = append(series, chartPoint{Label: day.Format("Jan 02"), Revenue: daySum})
	}

	var openDispatches int64
	database.DB.Model(&models.DispatchRecord{}).Where("status = ?", models.DispatchOpen).Count(&openDispatches)

	var lowStock int64
	database.DB.Table("inventory_entries").
		Joins("JOIN products ON products.id = inventory_entries.product_id AND products.deleted_at IS NULL").
		Where("products.is_active = ? AND inventory_entries.available_qty <= products.low_stock_threshold", true).
		Count(&lowStock)

	c.JSON(http.StatusOK, gin.H{
		"totals": gin.H{
			"revenue":          totalRevenue,
			"expenses":         totalExpenses,
			"profit":           totalRevenue.Sub(totalExpenses),
			"melted_qty":       totalMelted,
			"general_expenses": generalExpenses,
		},
		"products":        products,
		"revenue_series":  series,
		"open_dispatches": openDispatches,
		"low_stock_count": lowStock,
	})
}

// GetSalesReport lists closed dispatches for a date range with a revenue
// summary.
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	query := database.DB.Preload("Seller").
		Where("status = ?", models.DispatchClosed).
		Order("closed_at desc")

	if from := c.Query("start_date"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD"})
			return
		}
		query = query.Where("closed_at >= ?", parsed)
	}
	if to := c.Query("end_date"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD"})
			return
		}
		query = query.Where("closed_at < ?", parsed.AddDate(0, 0, 1))
	}

	var records []models.DispatchRecord
	if err := query.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales report"})
		return
	}

	totalRevenue := decimal.Zero
	totalSold := decimal.Zero
	for _, r := range records {
		totalRevenue = totalRevenue.Add(r.CashCollected)
		totalSold = totalSold.Add(r.SoldQty)
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": gin.H{
			"total_revenue": totalRevenue,
			"total_sold":    totalSold,
			"dispatches":    len(records),
		},
		"records": records,
	})
}
