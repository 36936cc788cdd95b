// Package handlers exposes the dashboard JSON API. Handlers hold their
// collaborators explicitly; there is no package-level state, which keeps the
// oracle substitutable in tests.
package handlers

import (
	"net/http"

	"go-vend-agent/internal/ai"
	"go-vend-agent/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Catalog *store.Catalog
	Ledger  *store.Ledger
	Engine  *store.CheckoutEngine
	Oracle  ai.Oracle
	Advisor *ai.PriceAdvisor
	Chat    *ai.Session
}

func New(catalog *store.Catalog, ledger *store.Ledger, engine *store.CheckoutEngine, oracle ai.Oracle, advisor *ai.PriceAdvisor, chat *ai.Session) *Handler {
	return &Handler{
		Catalog: catalog,
		Ledger:  ledger,
		Engine:  engine,
		Oracle:  oracle,
		Advisor: advisor,
		Chat:    chat,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "online"})
}
