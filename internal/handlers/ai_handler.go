package handlers

import (
	"errors"
	"net/http"

	"go-vend-agent/internal/ai"
	"go-vend-agent/internal/insight"
	"go-vend-agent/internal/models"
	"go-vend-agent/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const oracleApology = "Sorry, the advisory service is unavailable right now. Please try again in a moment."

// buildSnapshot assembles the oracle context from the current catalog and
// ledger state.
func (h *Handler) buildSnapshot() (insight.Snapshot, error) {
	machines, err := h.Catalog.ListMachines()
	if err != nil {
		return insight.Snapshot{}, err
	}
	products, err := h.Catalog.ListProducts(store.ProductFilter{})
	if err != nil {
		return insight.Snapshot{}, err
	}
	sales, err := h.Ledger.Recent(insight.DefaultRecentSalesLimit, "")
	if err != nil {
		return insight.Snapshot{}, err
	}
	return insight.BuildSnapshot(machines, products, sales, insight.Options{}), nil
}

type InsightRequest struct {
	Query string `json:"query" binding:"required"`
}

// GetInsight answers a free-form analytics question. Oracle failures never
// escape as faults; they become an apology payload.
func (h *Handler) GetInsight(c *gin.Context) {
	var req InsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	snap, err := h.buildSnapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble context"})
		return
	}

	answer, err := h.Oracle.GetInsight(c.Request.Context(), req.Query, snap)
	if err != nil {
		if errors.Is(err, ai.ErrMissingAPIKey) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "GEMINI_API_KEY is not configured"})
			return
		}
		log.Warn().Err(err).Msg("insight query failed")
		c.JSON(http.StatusBadGateway, gin.H{"reply": oracleApology})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": answer})
}

type AdvisorRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// StartPriceAdvisor kicks off an async price suggestion for one product.
func (h *Handler) StartPriceAdvisor(c *gin.Context) {
	var req AdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}
	if err := h.Advisor.Request(req.ProductID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start advisory"})
		return
	}
	c.JSON(http.StatusAccepted, h.Advisor.Status())
}

// GetPriceAdvisor reports the advisor state and, when ready, the suggestion.
func (h *Handler) GetPriceAdvisor(c *gin.Context) {
	c.JSON(http.StatusOK, h.Advisor.Status())
}

// ApplyPriceAdvisor writes the suggested price through the catalog. This is
// the only path from oracle output to catalog state, and it requires this
// explicit call.
func (h *Handler) ApplyPriceAdvisor(c *gin.Context) {
	applied, err := h.Advisor.Apply()
	if err != nil {
		if errors.Is(err, ai.ErrNotReady) {
			c.JSON(http.StatusConflict, gin.H{"error": "No suggestion is ready to apply"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply suggestion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Price applied", "applied": applied})
}

// DismissPriceAdvisor closes the popup, returning the advisor to idle.
func (h *Handler) DismissPriceAdvisor(c *gin.Context) {
	h.Advisor.Dismiss()
	c.JSON(http.StatusOK, h.Advisor.Status())
}

type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	WithAudio bool   `json:"with_audio"`
}

// ChatResponse carries the model turn; Audio marshals as base64 PCM when
// synthesis succeeded.
type ChatResponse struct {
	Message models.ChatMessage `json:"message"`
	Audio   []byte             `json:"audio,omitempty"`
}

// PostChat runs one chat turn. The transcript always gains both the user
// message and a model message, even when the oracle fails - the failure is
// recorded as an apology so the conversation view never stalls.
func (h *Handler) PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	snap, err := h.buildSnapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble context"})
		return
	}

	history := h.Chat.History()
	h.Chat.Append(ai.RoleUser, req.Message)

	reply, err := h.Oracle.Chat(c.Request.Context(), history, req.Message, snap, req.WithAudio)
	if err != nil {
		log.Warn().Err(err).Msg("chat turn failed")
		msg := h.Chat.Append(ai.RoleModel, oracleApology)
		c.JSON(http.StatusOK, ChatResponse{Message: msg})
		return
	}

	msg := h.Chat.Append(ai.RoleModel, reply.Text)
	c.JSON(http.StatusOK, ChatResponse{Message: msg, Audio: reply.Audio})
}

// GetChatHistory returns the session transcript in order.
func (h *Handler) GetChatHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.Chat.History())
}
