package models

import "time"

// NearExpiryWindow is how far ahead of the expiry date a product starts
// counting as near-expiry on the dashboard.
const NearExpiryWindow = 7 * 24 * time.Hour

// IsLowStock reports whether the product is at or below its reorder
// threshold. Boundary equality counts as low stock.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.MinQuantity
}

// IsExpired reports whether the product's expiry date has passed at now.
// Products without an expiry date never expire.
func (p Product) IsExpired(now time.Time) bool {
	if p.ExpiryDate == nil {
		return false
	}
	return *p.ExpiryDate < now.UnixMilli()
}

// IsNearExpiry reports whether the expiry date falls within the warning
// window starting at now. Expired products are not near-expiry: the three
// states (expired, near-expiry, neither) partition for any single now.
func (p Product) IsNearExpiry(now time.Time) bool {
	if p.ExpiryDate == nil {
		return false
	}
	nowMs := now.UnixMilli()
	return *p.ExpiryDate >= nowMs && *p.ExpiryDate <= nowMs+NearExpiryWindow.Milliseconds()
}
