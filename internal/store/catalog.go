package store

import (
	"errors"
	"fmt"
	"strings"

	"go-vend-agent/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNameRequired    = errors.New("product name is required")
	ErrMachineRequired = errors.New("product machine is required")
	ErrUnknownMachine  = errors.New("machine does not exist")
	ErrNotFound        = errors.New("not found")
)

// Catalog owns the products and machines. Machines are fixed after seeding;
// products are mutated synchronously with validation up front, so a rejected
// write leaves the catalog untouched.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// ProductFilter narrows ListProducts. Query is a case-insensitive substring
// match against name or category.
type ProductFilter struct {
	MachineID string
	Query     string
}

// UpsertProduct inserts or fully replaces the product by ID. The product must
// carry a name and reference a known machine.
func (c *Catalog) UpsertProduct(p models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if p.MachineID == "" {
		return ErrMachineRequired
	}
	var count int64
	if err := c.db.Model(&models.Machine{}).Where("id = ?", p.MachineID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownMachine, p.MachineID)
	}
	if p.Quantity < 0 {
		p.Quantity = 0
	}
	return c.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&p).Error
}

// RemoveProduct deletes the product by ID. Past sales keep displaying the
// denormalized product name, so deletion never touches the ledger.
func (c *Catalog) RemoveProduct(id string) error {
	res := c.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return nil
}

// GetProduct fetches one product by ID.
func (c *Catalog) GetProduct(id string) (models.Product, error) {
	var p models.Product
	err := c.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return p, err
}

// ListProducts returns a snapshot of the catalog, optionally filtered.
func (c *Catalog) ListProducts(f ProductFilter) ([]models.Product, error) {
	q := c.db.Order("id")
	if f.MachineID != "" {
		q = q.Where("machine_id = ?", f.MachineID)
	}
	if f.Query != "" {
		needle := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", needle, needle)
	}
	var products []models.Product
	err := q.Find(&products).Error
	return products, err
}

// SetPrice updates a single product's price. This is the only write path the
// price advisor is allowed to use, and only on an explicit apply.
func (c *Catalog) SetPrice(id string, price float64) error {
	res := c.db.Model(&models.Product{}).Where("id = ?", id).Update("price", price)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return nil
}

// ListMachines returns every known machine.
func (c *Catalog) ListMachines() ([]models.Machine, error) {
	var machines []models.Machine
	err := c.db.Order("id").Find(&machines).Error
	return machines, err
}

// GetMachine fetches one machine by ID.
func (c *Catalog) GetMachine(id string) (models.Machine, error) {
	var m models.Machine
	err := c.db.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, fmt.Errorf("%w: machine %s", ErrNotFound, id)
	}
	return m, err
}
