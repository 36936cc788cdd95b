package database

import (
	"fmt"
	"time"

	"go-vend-agent/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seed loads the static demo data the dashboard starts from: four machines,
// their product lines, and a week of sale history.
func Seed(db *gorm.DB) error {
	now := time.Now()
	expiry := func(d time.Duration) *int64 {
		ms := now.Add(d).UnixMilli()
		return &ms
	}

	machines := []models.Machine{
		{ID: "vm-01", Name: "Lobby Alpha", Location: "Main Lobby, Tower A", Status: models.StatusOnline},
		{ID: "vm-02", Name: "Cafeteria Bravo", Location: "2F Cafeteria", Status: models.StatusOnline},
		{ID: "vm-03", Name: "Gym Charlie", Location: "Fitness Center", Status: models.StatusLowStock},
		{ID: "vm-04", Name: "Parking Delta", Location: "B1 Parking Garage", Status: models.StatusMaintenance},
	}

	products := []models.Product{
		{ID: "p-001", Name: "Cola Classic", Category: "Beverages", Price: 2.50, Cost: 0.80, Quantity: 45, MinQuantity: 10, Image: "https://images.vend.demo/cola.png", MachineID: "vm-01", ExpiryDate: expiry(120 * 24 * time.Hour)},
		{ID: "p-002", Name: "Sparkling Water", Category: "Beverages", Price: 1.75, Cost: 0.50, Quantity: 30, MinQuantity: 8, Image: "https://images.vend.demo/water.png", MachineID: "vm-01"},
		{ID: "p-003", Name: "Sea Salt Chips", Category: "Snacks", Price: 1.80, Cost: 0.65, Quantity: 9, MinQuantity: 10, Image: "https://images.vend.demo/chips.png", MachineID: "vm-01", ExpiryDate: expiry(40 * 24 * time.Hour)},
		{ID: "p-004", Name: "Trail Mix", Category: "Snacks", Price: 3.25, Cost: 1.40, Quantity: 22, MinQuantity: 6, Image: "https://images.vend.demo/trailmix.png", MachineID: "vm-02", ExpiryDate: expiry(5 * 24 * time.Hour)},
		{ID: "p-005", Name: "Iced Coffee", Category: "Beverages", Price: 3.00, Cost: 1.10, Quantity: 18, MinQuantity: 6, Image: "https://images.vend.demo/coffee.png", MachineID: "vm-02", ExpiryDate: expiry(10 * 24 * time.Hour)},
		{ID: "p-006", Name: "Chocolate Bar", Category: "Snacks", Price: 1.50, Cost: 0.55, Quantity: 40, MinQuantity: 12, Image: "https://images.vend.demo/chocolate.png", MachineID: "vm-02", ExpiryDate: expiry(90 * 24 * time.Hour)},
		{ID: "p-007", Name: "Yogurt Cup", Category: "Fresh", Price: 2.20, Cost: 1.00, Quantity: 6, MinQuantity: 6, Image: "https://images.vend.demo/yogurt.png", MachineID: "vm-02", ExpiryDate: expiry(-2 * 24 * time.Hour)},
		{ID: "p-008", Name: "Protein Bar", Category: "Fitness", Price: 2.75, Cost: 1.20, Quantity: 14, MinQuantity: 5, Image: "https://images.vend.demo/protein.png", MachineID: "vm-03", ExpiryDate: expiry(60 * 24 * time.Hour)},
		{ID: "p-009", Name: "Electrolyte Drink", Category: "Fitness", Price: 3.50, Cost: 1.30, Quantity: 4, MinQuantity: 8, Image: "https://images.vend.demo/electrolyte.png", MachineID: "vm-03"},
		{ID: "p-010", Name: "Banana Chips", Category: "Snacks", Price: 2.00, Cost: 0.75, Quantity: 12, MinQuantity: 5, Image: "https://images.vend.demo/banana.png", MachineID: "vm-03", ExpiryDate: expiry(3 * 24 * time.Hour)},
		{ID: "p-011", Name: "Energy Drink", Category: "Beverages", Price: 3.75, Cost: 1.60, Quantity: 20, MinQuantity: 6, Image: "https://images.vend.demo/energy.png", MachineID: "vm-04", ExpiryDate: expiry(200 * 24 * time.Hour)},
		{ID: "p-012", Name: "Instant Noodles", Category: "Meals", Price: 2.90, Cost: 1.05, Quantity: 16, MinQuantity: 4, Image: "https://images.vend.demo/noodles.png", MachineID: "vm-04", ExpiryDate: expiry(150 * 24 * time.Hour)},
	}

	methods := []models.PaymentMethod{
		models.PaymentCreditCard, models.PaymentUPI, models.PaymentWallet,
		models.PaymentCash, models.PaymentQRCode,
	}

	// A week of demo sales, oldest first, cycling through products and
	// payment methods so every rollup on the dashboard has data.
	var sales []models.SaleRecord
	for i := 0; i < 28; i++ {
		p := products[i%len(products)]
		qty := 1 + i%3
		ts := now.Add(-time.Duration(7*24-6*i) * time.Hour).UnixMilli()
		sales = append(sales, models.SaleRecord{
			ID:            uuid.NewString(),
			ProductID:     p.ID,
			ProductName:   p.Name,
			MachineID:     p.MachineID,
			Quantity:      qty,
			Revenue:       p.Price * float64(qty),
			Profit:        (p.Price - p.Cost) * float64(qty),
			Timestamp:     ts,
			PaymentMethod: methods[i%len(methods)],
		})
	}

	if err := db.Create(&machines).Error; err != nil {
		return fmt.Errorf("seed machines: %w", err)
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if err := db.Create(&sales).Error; err != nil {
		return fmt.Errorf("seed sales: %w", err)
	}
	return nil
}
