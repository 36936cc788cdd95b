package handlers

import (
	"net/http"
	"time"

	"go-vend-agent/internal/models"
	"go-vend-agent/internal/store"

	"github.com/gin-gonic/gin"
)

// ReportData is the analytics payload for the dashboard overview.
type ReportData struct {
	store.Summary
	RecentSales []models.SaleRecord `json:"recent_sales"`
}

// GetSalesReport recomputes the ledger aggregates for the dashboard. Totals
// are derived fresh on every request; nothing is cached.
func (h *Handler) GetSalesReport(c *gin.Context) {
	machineID := c.Query("machine_id")

	summary, err := h.Ledger.Aggregate(machineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
		return
	}
	recent, err := h.Ledger.Recent(10, machineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent sales"})
		return
	}

	c.JSON(http.StatusOK, ReportData{Summary: summary, RecentSales: recent})
}

// StockReport groups products into the attention buckets the dashboard
// shows: low stock, expired, and near expiry. One clock reading is used for
// the whole evaluation so the expiry buckets cannot overlap.
type StockReport struct {
	LowStock   []models.Product `json:"low_stock"`
	Expired    []models.Product `json:"expired"`
	NearExpiry []models.Product `json:"near_expiry"`
}

func (h *Handler) GetStockReport(c *gin.Context) {
	products, err := h.Catalog.ListProducts(store.ProductFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	now := time.Now()
	report := StockReport{
		LowStock:   []models.Product{},
		Expired:    []models.Product{},
		NearExpiry: []models.Product{},
	}
	for _, p := range products {
		if p.IsLowStock() {
			report.LowStock = append(report.LowStock, p)
		}
		if p.IsExpired(now) {
			report.Expired = append(report.Expired, p)
		} else if p.IsNearExpiry(now) {
			report.NearExpiry = append(report.NearExpiry, p)
		}
	}

	c.JSON(http.StatusOK, report)
}
