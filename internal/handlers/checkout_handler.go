package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"go-vend-agent/internal/models"
	"go-vend-agent/internal/store"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest is what the dashboard sends when the customer pays.
type CheckoutRequest struct {
	Items []struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required"`
	} `json:"items"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
}

// ProcessCheckout snapshots each cart line from the live catalog, then runs
// the checkout engine. The snapshot happens here, at "add to cart" time from
// the engine's point of view, so the engine only ever sees captured prices.
func (h *Handler) ProcessCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout payload"})
		return
	}
	if !req.PaymentMethod.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown payment method %q", req.PaymentMethod)})
		return
	}

	cart := make([]models.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, err := h.Catalog.GetProduct(item.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product %s not found", item.ProductID)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read product"})
			return
		}
		cart = append(cart, models.CartItem{Product: product, CartQuantity: item.Quantity})
	}

	sales, err := h.Engine.Checkout(cart, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, store.ErrBadPaymentMethod) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		return
	}
	if sales == nil {
		sales = []models.SaleRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale recorded",
		"sales":   sales,
	})
}
