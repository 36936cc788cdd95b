package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-vend-agent/internal/ai"
	"go-vend-agent/internal/database"
	"go-vend-agent/internal/insight"
	"go-vend-agent/internal/models"
	"go-vend-agent/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOracle struct {
	insightText string
	chatText    string
	err         error
}

func (s *stubOracle) GetInsight(context.Context, string, insight.Snapshot) (string, error) {
	return s.insightText, s.err
}

func (s *stubOracle) GetPriceSuggestion(context.Context, models.Product, insight.ProductSalesWindow) (*ai.PriceSuggestion, error) {
	return nil, errors.New("not used")
}

func (s *stubOracle) Chat(context.Context, []models.ChatMessage, string, insight.Snapshot, bool) (*ai.ChatReply, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ai.ChatReply{Text: s.chatText}, nil
}

func newTestRouter(t *testing.T, oracle ai.Oracle) (*gin.Engine, *store.Catalog) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.OpenDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Seed(db))

	catalog := store.NewCatalog(db)
	ledger := store.NewLedger(db)
	engine := store.NewCheckoutEngine(db)
	advisor := ai.NewPriceAdvisor(oracle, catalog, ledger)
	h := New(catalog, ledger, engine, oracle, advisor, ai.NewSession())

	r := gin.New()
	r.GET("/health", h.Health)
	api := r.Group("/api")
	api.GET("/machines", h.GetMachines)
	api.GET("/products", h.GetProducts)
	api.POST("/products", h.UpsertProduct)
	api.DELETE("/products/:id", h.DeleteProduct)
	api.POST("/checkout", h.ProcessCheckout)
	api.GET("/reports", h.GetSalesReport)
	api.GET("/reports/stock", h.GetStockReport)
	api.POST("/ai/insight", h.GetInsight)
	api.POST("/ai/chat", h.PostChat)
	api.GET("/ai/chat/history", h.GetChatHistory)
	return r, catalog
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutEndpoint(t *testing.T) {
	r, catalog := newTestRouter(t, &stubOracle{})

	w := doJSON(r, http.MethodPost, "/api/checkout", gin.H{
		"items":          []gin.H{{"product_id": "p-001", "quantity": 3}},
		"payment_method": "UPI",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Sales []models.SaleRecord `json:"sales"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Sales, 1)
	assert.InDelta(t, 7.50, resp.Sales[0].Revenue, 1e-9)

	p, err := catalog.GetProduct("p-001")
	require.NoError(t, err)
	assert.Equal(t, 42, p.Quantity)
}

func TestCheckoutRejectsBadPaymentMethod(t *testing.T) {
	r, _ := newTestRouter(t, &stubOracle{})

	w := doJSON(r, http.MethodPost, "/api/checkout", gin.H{
		"items":          []gin.H{{"product_id": "p-001", "quantity": 1}},
		"payment_method": "BARTER",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	r, _ := newTestRouter(t, &stubOracle{})

	w := doJSON(r, http.MethodPost, "/api/checkout", gin.H{
		"items":          []gin.H{{"product_id": "p-zzz", "quantity": 1}},
		"payment_method": "CASH",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductValidationLeavesCatalogUntouched(t *testing.T) {
	r, catalog := newTestRouter(t, &stubOracle{})

	before, err := catalog.ListProducts(store.ProductFilter{})
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/api/products", gin.H{
		"id": "p-new", "name": "Ghost Soda", "machineId": "vm-99",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	after, err := catalog.ListProducts(store.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestSalesReportShape(t *testing.T) {
	r, _ := newTestRouter(t, &stubOracle{})

	w := doJSON(r, http.MethodGet, "/api/reports", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report ReportData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Positive(t, report.TotalRevenue)
	assert.Positive(t, report.TotalUnits)
	assert.NotEmpty(t, report.RevenueByProduct)
	assert.LessOrEqual(t, len(report.RecentSales), 10)
}

func TestStockReportBucketsDisjointExpiry(t *testing.T) {
	r, _ := newTestRouter(t, &stubOracle{})

	w := doJSON(r, http.MethodGet, "/api/reports/stock", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report StockReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))

	expired := map[string]bool{}
	for _, p := range report.Expired {
		expired[p.ID] = true
	}
	for _, p := range report.NearExpiry {
		assert.False(t, expired[p.ID], "product %s in both expiry buckets", p.ID)
	}
}

func TestInsightOracleFailureBecomesApology(t *testing.T) {
	r, _ := newTestRouter(t, &stubOracle{err: errors.New("upstream melted")})

	w := doJSON(r, http.MethodPost, "/api/ai/insight", gin.H{"query": "what sells best?"})
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, oracleApology, resp["reply"])
}

func TestChatFailureStillAppendsTranscript(t *testing.T) {
	r, _ := newTestRouter(t, &stubOracle{err: errors.New("oracle down")})

	w := doJSON(r, http.MethodPost, "/api/ai/chat", gin.H{"message": "hello"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "model", resp.Message.Role)
	assert.Equal(t, oracleApology, resp.Message.Text)

	// The transcript gained both turns despite the failure.
	hw := doJSON(r, http.MethodGet, "/api/ai/chat/history", nil)
	require.Equal(t, http.StatusOK, hw.Code)
	var history []models.ChatMessage
	require.NoError(t, json.Unmarshal(hw.Body.Bytes(), &history))
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
}

func TestChatSuccess(t *testing.T) {
	r, _ := newTestRouter(t, &stubOracle{chatText: "the lobby machine leads revenue"})

	w := doJSON(r, http.MethodPost, "/api/ai/chat", gin.H{"message": "who leads?"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "the lobby machine leads revenue", resp.Message.Text)
	assert.Empty(t, resp.Audio)
}
