package store

import (
	"errors"
	"fmt"
	"time"

	"go-vend-agent/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBadPaymentMethod = errors.New("unknown payment method")

// CheckoutEngine turns a cart into ledger entries and stock decrements. Each
// cart line is priced from the snapshot captured when the item entered the
// cart, never re-read from the live catalog, so a concurrent price edit can
// not alter what the sale recorded.
type CheckoutEngine struct {
	db *gorm.DB
}

func NewCheckoutEngine(db *gorm.DB) *CheckoutEngine {
	return &CheckoutEngine{db: db}
}

// Checkout processes the cart in order and returns the created sale records.
// An empty cart is a no-op. Every line of one checkout shares a single
// timestamp so the dashboard can group them back into one transaction.
//
// Stock is decremented clamped at zero: a cart asking for more than is on
// hand still sells, it just empties the slot. The source system behaves this
// way and the dashboard relies on it.
func (e *CheckoutEngine) Checkout(cart []models.CartItem, method models.PaymentMethod) ([]models.SaleRecord, error) {
	if len(cart) == 0 {
		return nil, nil
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrBadPaymentMethod, method)
	}

	now := time.Now().UnixMilli()
	records := make([]models.SaleRecord, 0, len(cart))

	err := e.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range cart {
			if item.CartQuantity < 1 {
				continue
			}
			qty := float64(item.CartQuantity)
			sale := models.SaleRecord{
				ID:            uuid.NewString(),
				ProductID:     item.Product.ID,
				ProductName:   item.Product.Name,
				MachineID:     item.Product.MachineID,
				Quantity:      item.CartQuantity,
				Revenue:       item.Product.Price * qty,
				Profit:        (item.Product.Price - item.Product.Cost) * qty,
				Timestamp:     now,
				PaymentMethod: method,
			}
			if err := tx.Create(&sale).Error; err != nil {
				return err
			}
			records = append(records, sale)

			// Decrement live stock. A product deleted since it was carted
			// still sells from its snapshot; there is just nothing left to
			// decrement.
			var live models.Product
			err := tx.First(&live, "id = ?", item.Product.ID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			remaining := live.Quantity - item.CartQuantity
			if remaining < 0 {
				remaining = 0
			}
			if err := tx.Model(&live).Update("quantity", remaining).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
