package ai

import (
	"context"
	"errors"
	"sync"

	"go-vend-agent/internal/insight"
	"go-vend-agent/internal/store"

	"github.com/rs/zerolog/log"
)

// AdvisorState is the lifecycle of one price-suggestion popup.
type AdvisorState string

const (
	AdvisorIdle    AdvisorState = "IDLE"
	AdvisorLoading AdvisorState = "LOADING"
	AdvisorReady   AdvisorState = "READY"
	AdvisorFailed  AdvisorState = "FAILED"
)

var ErrNotReady = errors.New("no suggestion ready to apply")

// PriceAdvisor drives the price-suggestion interaction: Idle -> Loading ->
// Ready | Failed, back to Idle on dismissal. Only Ready permits applying the
// suggested price, and applying always goes through the catalog explicitly -
// the oracle's output is never written back on its own.
//
// The oracle call runs on its own goroutine so catalog edits and checkouts
// are never blocked behind it. A newer request supersedes an older in-flight
// one at state level only; the superseded network call is left to finish and
// its result is dropped.
type PriceAdvisor struct {
	oracle  Oracle
	catalog *store.Catalog
	ledger  *store.Ledger

	mu         sync.Mutex
	seq        uint64
	state      AdvisorState
	productID  string
	suggestion *PriceSuggestion
	failure    string
}

func NewPriceAdvisor(oracle Oracle, catalog *store.Catalog, ledger *store.Ledger) *PriceAdvisor {
	return &PriceAdvisor{
		oracle:  oracle,
		catalog: catalog,
		ledger:  ledger,
		state:   AdvisorIdle,
	}
}

// AdvisorStatus is the externally visible advisor state.
type AdvisorStatus struct {
	State      AdvisorState     `json:"state"`
	ProductID  string           `json:"product_id,omitempty"`
	Suggestion *PriceSuggestion `json:"suggestion,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// Request starts a price advisory for the product and returns immediately.
// The snapshot of the product and its sales window is taken synchronously so
// later catalog edits cannot leak into the in-flight query.
func (a *PriceAdvisor) Request(productID string) error {
	product, err := a.catalog.GetProduct(productID)
	if err != nil {
		return err
	}
	sales, err := a.ledger.All("")
	if err != nil {
		return err
	}
	window := insight.BuildProductWindow(product, sales)

	a.mu.Lock()
	a.seq++
	seq := a.seq
	a.state = AdvisorLoading
	a.productID = productID
	a.suggestion = nil
	a.failure = ""
	a.mu.Unlock()

	go func() {
		suggestion, err := a.oracle.GetPriceSuggestion(context.Background(), product, window)

		a.mu.Lock()
		defer a.mu.Unlock()
		if a.seq != seq {
			// A newer request or a dismissal superseded this one.
			return
		}
		if err != nil {
			log.Warn().Err(err).Str("product_id", productID).Msg("price advisory failed")
			a.state = AdvisorFailed
			a.failure = "The advisor could not produce a suggestion. Please try again."
			return
		}
		a.state = AdvisorReady
		a.suggestion = suggestion
	}()
	return nil
}

// Status reports the current state and, when Ready, the suggestion.
func (a *PriceAdvisor) Status() AdvisorStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AdvisorStatus{
		State:      a.state,
		ProductID:  a.productID,
		Suggestion: a.suggestion,
		Error:      a.failure,
	}
}

// Apply writes the suggested price to the catalog. Permitted only in Ready;
// on success the advisor returns to Idle.
func (a *PriceAdvisor) Apply() (*PriceSuggestion, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != AdvisorReady || a.suggestion == nil {
		return nil, ErrNotReady
	}
	if err := a.catalog.SetPrice(a.productID, a.suggestion.SuggestedPrice); err != nil {
		return nil, err
	}
	applied := a.suggestion
	a.reset()
	return applied, nil
}

// Dismiss returns the advisor to Idle from any state. An in-flight request
// is superseded, not cancelled.
func (a *PriceAdvisor) Dismiss() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	a.reset()
}

// reset must be called with the lock held.
func (a *PriceAdvisor) reset() {
	a.state = AdvisorIdle
	a.productID = ""
	a.suggestion = nil
	a.failure = ""
}
