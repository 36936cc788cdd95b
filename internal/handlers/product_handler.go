package handlers

import (
	"errors"
	"net/http"

	"go-vend-agent/internal/models"
	"go-vend-agent/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetMachines lists every vending machine.
func (h *Handler) GetMachines(c *gin.Context) {
	machines, err := h.Catalog.ListMachines()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch machines"})
		return
	}
	c.JSON(http.StatusOK, machines)
}

// GetProducts lists products, optionally filtered by machine and a
// free-text query over name/category.
func (h *Handler) GetProducts(c *gin.Context) {
	filter := store.ProductFilter{
		MachineID: c.Query("machine_id"),
		Query:     c.Query("q"),
	}
	products, err := h.Catalog.ListProducts(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// UpsertProduct creates a product or fully replaces it by ID.
func (h *Handler) UpsertProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload"})
		return
	}
	if id := c.Param("id"); id != "" {
		p.ID = id
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := h.Catalog.UpsertProduct(p); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, store.ErrNameRequired),
			errors.Is(err, store.ErrMachineRequired),
			errors.Is(err, store.ErrUnknownMachine):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProduct removes a product from the catalog. Sale history keeps its
// denormalized product names, so past transactions are unaffected.
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.Catalog.RemoveProduct(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
