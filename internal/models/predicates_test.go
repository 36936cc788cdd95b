package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ms(t time.Time) *int64 {
	v := t.UnixMilli()
	return &v
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, Product{Quantity: 3, MinQuantity: 10}.IsLowStock())
	assert.False(t, Product{Quantity: 11, MinQuantity: 10}.IsLowStock())

	// Boundary equality counts as low stock.
	assert.True(t, Product{Quantity: 10, MinQuantity: 10}.IsLowStock())
	assert.True(t, Product{Quantity: 0, MinQuantity: 0}.IsLowStock())
}

func TestExpiryPredicates(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name       string
		expiry     *int64
		expired    bool
		nearExpiry bool
	}{
		{"no expiry date", nil, false, false},
		{"expired yesterday", ms(now.Add(-24 * time.Hour)), true, false},
		{"expires in 3 days", ms(now.Add(3 * 24 * time.Hour)), false, true},
		{"expires in 30 days", ms(now.Add(30 * 24 * time.Hour)), false, false},
		{"expires exactly now", ms(now), false, true},
		{"expires at window edge", ms(now.Add(NearExpiryWindow)), false, true},
		{"expires just past window", ms(now.Add(NearExpiryWindow + time.Minute)), false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{ExpiryDate: tc.expiry}
			assert.Equal(t, tc.expired, p.IsExpired(now))
			assert.Equal(t, tc.nearExpiry, p.IsNearExpiry(now))

			// Expired and near-expiry never overlap for a single now.
			assert.False(t, p.IsExpired(now) && p.IsNearExpiry(now))
		})
	}
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentCreditCard, PaymentUPI, PaymentWallet, PaymentCash, PaymentQRCode} {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, PaymentMethod("BITCOIN").Valid())
	assert.False(t, PaymentMethod("").Valid())
}
