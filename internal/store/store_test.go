package store

import (
	"fmt"
	"strings"
	"testing"

	"go-vend-agent/internal/database"
	"go-vend-agent/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB gives each test its own empty in-memory database with two
// machines to hang products off.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.OpenDSN(dsn)
	require.NoError(t, err)

	machines := []models.Machine{
		{ID: "vm-a", Name: "Lobby", Location: "Tower A", Status: models.StatusOnline},
		{ID: "vm-b", Name: "Gym", Location: "Fitness Center", Status: models.StatusLowStock},
	}
	require.NoError(t, db.Create(&machines).Error)
	return db
}

func testProduct(id string, price, cost float64, qty int) models.Product {
	return models.Product{
		ID:          id,
		Name:        "Product " + id,
		Category:    "Snacks",
		Price:       price,
		Cost:        cost,
		Quantity:    qty,
		MinQuantity: 5,
		MachineID:   "vm-a",
	}
}
