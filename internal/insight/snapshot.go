// Package insight assembles the bounded context handed to the advisory
// oracle. Builders are pure: they read domain values and produce a
// JSON-serializable projection, never touching storage.
package insight

import (
	"sort"

	"go-vend-agent/internal/models"
)

// DefaultRecentSalesLimit bounds the sale history included in a snapshot.
// The oracle call pays for every byte of prompt, so products are reduced to
// a summary and sales are truncated to the most recent window.
const DefaultRecentSalesLimit = 50

// Options tunes snapshot assembly.
type Options struct {
	RecentSalesLimit int
}

// ProductSummary is the reduced product projection used for general insight
// queries. Price, cost and image are dropped on purpose to bound payload.
type ProductSummary struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Machine  string `json:"machine"`
}

// Snapshot is the full context for a general insight or chat query.
type Snapshot struct {
	Machines    []models.Machine    `json:"machines"`
	Products    []ProductSummary    `json:"products"`
	RecentSales []models.SaleRecord `json:"recentSales"`
}

// BuildSnapshot projects the catalog and ledger into a bounded snapshot.
// Sales are ordered newest first and truncated to the limit; truncation is
// by recency, never sampling.
func BuildSnapshot(machines []models.Machine, products []models.Product, sales []models.SaleRecord, opts Options) Snapshot {
	limit := opts.RecentSalesLimit
	if limit <= 0 {
		limit = DefaultRecentSalesLimit
	}

	names := make(map[string]string, len(machines))
	for _, m := range machines {
		names[m.ID] = m.Name
	}

	summaries := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		machine := names[p.MachineID]
		if machine == "" {
			machine = p.MachineID
		}
		summaries = append(summaries, ProductSummary{
			Name:     p.Name,
			Quantity: p.Quantity,
			Machine:  machine,
		})
	}

	recent := make([]models.SaleRecord, len(sales))
	copy(recent, sales)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp > recent[j].Timestamp
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}

	return Snapshot{
		Machines:    machines,
		Products:    summaries,
		RecentSales: recent,
	}
}

// ProductSalesWindow is the narrower context for a single-product price
// advisory. Units and revenue are summed here, in process, rather than
// asking the oracle to do exact arithmetic over raw records.
type ProductSalesWindow struct {
	ProductID   string              `json:"productId"`
	ProductName string              `json:"productName"`
	UnitsSold   int                 `json:"unitsSold"`
	Revenue     float64             `json:"revenue"`
	Sales       []models.SaleRecord `json:"sales"`
}

// BuildProductWindow filters sales down to the given product and
// pre-aggregates the window.
func BuildProductWindow(p models.Product, sales []models.SaleRecord) ProductSalesWindow {
	w := ProductSalesWindow{
		ProductID:   p.ID,
		ProductName: p.Name,
		Sales:       []models.SaleRecord{},
	}
	for _, s := range sales {
		if s.ProductID != p.ID {
			continue
		}
		w.Sales = append(w.Sales, s)
		w.UnitsSold += s.Quantity
		w.Revenue += s.Revenue
	}
	return w
}
