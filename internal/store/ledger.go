package store

import (
	"errors"

	"go-vend-agent/internal/models"

	"gorm.io/gorm"
)

var ErrInvalidSale = errors.New("sale record must have an id and a positive quantity")

// Ledger is the append-only sale history. Records never change once written;
// aggregates are recomputed on every request because the working set is tiny
// and a dashboard cannot tolerate stale totals.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Record appends one sale to the ledger.
func (l *Ledger) Record(sale models.SaleRecord) error {
	if sale.ID == "" || sale.Quantity <= 0 {
		return ErrInvalidSale
	}
	return l.db.Create(&sale).Error
}

// Recent returns up to limit sales, newest first. An empty machineID means
// all machines.
func (l *Ledger) Recent(limit int, machineID string) ([]models.SaleRecord, error) {
	q := l.db.Order("timestamp DESC, id DESC")
	if machineID != "" {
		q = q.Where("machine_id = ?", machineID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var sales []models.SaleRecord
	err := q.Find(&sales).Error
	return sales, err
}

// All returns the full ledger in insertion (timestamp) order.
func (l *Ledger) All(machineID string) ([]models.SaleRecord, error) {
	q := l.db.Order("timestamp ASC, id ASC")
	if machineID != "" {
		q = q.Where("machine_id = ?", machineID)
	}
	var sales []models.SaleRecord
	err := q.Find(&sales).Error
	return sales, err
}

// ProductRevenue is one row of the per-product revenue rollup.
type ProductRevenue struct {
	ProductName string  `json:"product_name"`
	Revenue     float64 `json:"revenue"`
}

// Summary holds the derived aggregates over the ledger.
type Summary struct {
	TotalRevenue     float64          `json:"total_revenue"`
	TotalProfit      float64          `json:"total_profit"`
	TotalUnits       int              `json:"total_units"`
	RevenueByProduct []ProductRevenue `json:"revenue_by_product"`
}

// Aggregate recomputes totals over the ledger, optionally restricted to one
// machine. The per-product rollup keeps first-appearance order so the
// dashboard rows stay stable as new sales accumulate.
func (l *Ledger) Aggregate(machineID string) (Summary, error) {
	sales, err := l.All(machineID)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	index := make(map[string]int)
	for _, s := range sales {
		sum.TotalRevenue += s.Revenue
		sum.TotalProfit += s.Profit
		sum.TotalUnits += s.Quantity

		i, seen := index[s.ProductName]
		if !seen {
			i = len(sum.RevenueByProduct)
			index[s.ProductName] = i
			sum.RevenueByProduct = append(sum.RevenueByProduct, ProductRevenue{ProductName: s.ProductName})
		}
		sum.RevenueByProduct[i].Revenue += s.Revenue
	}
	return sum, nil
}
