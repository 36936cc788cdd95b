package models

// MachineStatus is the operational state of a vending machine.
type MachineStatus string

const (
	StatusOnline      MachineStatus = "ONLINE"
	StatusOffline     MachineStatus = "OFFLINE"
	StatusMaintenance MachineStatus = "MAINTENANCE"
	StatusLowStock    MachineStatus = "LOW_STOCK"
)

// Machine - a physical vending machine. Seeded once, never mutated.
type Machine struct {
	ID       string        `gorm:"primaryKey" json:"id"`
	Name     string        `json:"name"`
	Location string        `json:"location"`
	Status   MachineStatus `json:"status"`
}

// Product - one inventory line, always owned by exactly one machine.
type Product struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"` // free text, not an enum
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Quantity    int     `json:"quantity"`
	MinQuantity int     `json:"min_quantity"`
	Image       string  `json:"image"`
	MachineID   string  `gorm:"index" json:"machineId"`
	ExpiryDate  *int64  `json:"expiryDate,omitempty"` // epoch millis
}

// PaymentMethod is a closed enumeration, unlike Product.Category.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentUPI        PaymentMethod = "UPI"
	PaymentWallet     PaymentMethod = "WALLET"
	PaymentCash       PaymentMethod = "CASH"
	PaymentQRCode     PaymentMethod = "QR_CODE"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentUPI, PaymentWallet, PaymentCash, PaymentQRCode:
		return true
	}
	return false
}

// SaleRecord - one ledger entry. Immutable once written; the product name is
// captured at sale time so history survives renames and deletes.
type SaleRecord struct {
	ID            string        `gorm:"primaryKey" json:"id"`
	ProductID     string        `gorm:"index" json:"productId"`
	ProductName   string        `json:"productName"`
	MachineID     string        `gorm:"index" json:"machineId"`
	Quantity      int           `json:"quantity"`
	Revenue       float64       `json:"revenue"`
	Profit        float64       `json:"profit"`
	Timestamp     int64         `gorm:"index" json:"timestamp"` // epoch millis
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// CartItem - a product snapshot plus the quantity the customer wants.
// Lives only for the duration of one checkout, never stored.
type CartItem struct {
	Product      Product `json:"product"`
	CartQuantity int     `json:"cartQuantity"`
}

// ChatMessage - one turn of the advisory chat transcript.
type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"` // "user" or "model"
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}
