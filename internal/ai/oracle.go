// Package ai wraps the hosted generative-model service behind a small
// three-operation contract. Everything the oracle returns is advisory text:
// callers never feed its output back into the catalog or ledger except
// through an explicit apply action.
package ai

import (
	"context"
	"errors"

	"go-vend-agent/internal/insight"
	"go-vend-agent/internal/models"
)

var (
	// ErrMissingAPIKey means the oracle cannot be reached at all. It fails
	// oracle operations only; the rest of the dashboard keeps working.
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

	// ErrBadSuggestion means the model's reply did not parse as the
	// required {suggestedPrice, reasoning} shape.
	ErrBadSuggestion = errors.New("price suggestion response has the wrong shape")
)

// PriceSuggestion is the enforced response shape for price advisories.
type PriceSuggestion struct {
	SuggestedPrice float64 `json:"suggestedPrice"`
	Reasoning      string  `json:"reasoning"`
}

// ChatReply carries the model's text plus, when synthesis succeeded, raw
// 16-bit PCM mono audio at 24kHz.
type ChatReply struct {
	Text  string `json:"text"`
	Audio []byte `json:"audio,omitempty"`
}

// Oracle is the contract around the external reasoning service. The service
// is untrusted and non-deterministic; implementations must convert every
// external failure into an error value, never a panic.
type Oracle interface {
	GetInsight(ctx context.Context, query string, snap insight.Snapshot) (string, error)
	GetPriceSuggestion(ctx context.Context, product models.Product, window insight.ProductSalesWindow) (*PriceSuggestion, error)
	Chat(ctx context.Context, history []models.ChatMessage, message string, snap insight.Snapshot, withAudio bool) (*ChatReply, error)
}
