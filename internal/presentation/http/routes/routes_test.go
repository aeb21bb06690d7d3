package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/application/service"
	"github.com/sangkips/receiptbook-api/internal/config"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/ledger"
	"github.com/sangkips/receiptbook-api/internal/infrastructure/memory"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/handler"
	"github.com/sangkips/receiptbook-api/pkg/printer"
	"github.com/sangkips/receiptbook-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminID = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")
	clerkID = uuid.MustParse("00000000-0000-0000-0000-0000000000bb")
	guestID = uuid.MustParse("00000000-0000-0000-0000-0000000000cc")
)

type testServer struct {
	router *gin.Engine
	jwt    *utils.JWTManager
	paper  *printer.Buffer
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := memory.NewDB(1)
	require.NoError(t, err)

	receiptRepo := memory.NewReceiptRepository(db)
	profileRepo := memory.NewProfileRepository(db)
	catalog := service.NewCatalogService(memory.NewServiceItemRepository(db), memory.NewCustomerRepository(db))
	receipts := service.NewReceiptService(receiptRepo, catalog, ledger.DefaultPolicy, "RCP-")
	roles := service.NewRoleService(memory.NewRoleRepository(db))
	require.NoError(t, roles.SeedAdmin(context.Background(), adminID))

	paper := &printer.Buffer{}
	cfg := &config.Config{
		App:         config.AppConfig{Name: "receiptbook-api"},
		RateLimit:   config.RateLimitConfig{Requests: 1000, Duration: 1},
		Store:       config.StoreConfig{Driver: "memory"},
		Idempotency: config.IdempotencyConfig{TTL: time.Hour},
	}
	jwt := utils.NewJWTManager("test-secret", time.Hour)

	router := Setup(&Handlers{
		Receipt:   handler.NewReceiptHandler(receipts, service.NewExportService(receipts, "$")),
		Catalog:   handler.NewCatalogHandler(catalog),
		Profile:   handler.NewProfileHandler(service.NewProfileService(profileRepo)),
		Role:      handler.NewRoleHandler(roles),
		Printer:   handler.NewPrinterHandler(service.NewPrinterService(paper, receipts, profileRepo, "network", printer.Width58mm, "$")),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(receiptRepo)),
	}, &Deps{
		JWTManager:      jwt,
		Cfg:             cfg,
		RoleService:     roles,
		IdempotencyRepo: memory.NewIdempotencyRepository(db),
	})

	return &testServer{router: router, jwt: jwt, paper: paper}
}

func (s *testServer) do(t *testing.T, user uuid.UUID, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != uuid.Nil {
		token, err := s.jwt.GenerateAccessToken(user, "")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

// promote makes clerkID a ledger user
func (s *testServer) promote(t *testing.T) {
	t.Helper()
	w := s.do(t, adminID, http.MethodPut, "/api/v1/users/"+clerkID.String()+"/role", gin.H{"role": "user"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (s *testServer) createReceipt(t *testing.T, number string) entity.Receipt {
	t.Helper()
	w := s.do(t, clerkID, http.MethodPost, "/api/v1/receipts", gin.H{
		"number":   number,
		"customer": gin.H{"name": "Alice"},
		"items":    []gin.H{{"service_name": "Haircut", "price": 3000, "quantity": 2}},
		"total":    6000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var r entity.Receipt
	decode(t, w, &r)
	return r
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, uuid.Nil, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"store":"memory"`)
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, uuid.Nil, http.MethodGet, "/api/v1/receipts", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, uuid.Nil, http.MethodGet, "/api/v1/receipts", nil, "Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// authenticated but no role yet
	w = s.do(t, guestID, http.MethodGet, "/api/v1/receipts", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "unauthorized", decode(t, w, nil).Kind)

	var role struct {
		Role string `json:"role"`
	}
	w = s.do(t, guestID, http.MethodGet, "/api/v1/me/role", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &role)
	assert.Equal(t, "guest", role.Role)
}

func TestRoleAssignment(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, clerkID, http.MethodPut, "/api/v1/users/"+guestID.String()+"/role", gin.H{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, adminID, http.MethodPut, "/api/v1/users/"+clerkID.String()+"/role", gin.H{"role": "owner"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_input", decode(t, w, nil).Kind)

	w = s.do(t, adminID, http.MethodPut, "/api/v1/users/not-a-uuid/role", gin.H{"role": "user"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.promote(t)

	var check struct {
		IsAdmin bool `json:"is_admin"`
	}
	w = s.do(t, clerkID, http.MethodGet, "/api/v1/me/is-admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &check)
	assert.False(t, check.IsAdmin)
}

func TestReceiptLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.promote(t)

	r := s.createReceipt(t, "RCP-1")
	assert.Equal(t, "open", string(r.Status))
	assert.EqualValues(t, 6000, r.Balance)

	path := "/api/v1/receipts/" + itoa(r.ID)

	w := s.do(t, clerkID, http.MethodPost, path+"/payments", gin.H{"method": "cash", "display_amount": "$20.00"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var partial entity.Receipt
	decode(t, w, &partial)
	assert.Equal(t, "partial", string(partial.Status))
	assert.EqualValues(t, 4000, partial.Balance)

	w = s.do(t, clerkID, http.MethodPost, path+"/payments", gin.H{"method": gin.H{"kind": "other", "label": strings.Repeat("x", 200)}, "amount": 100})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Equal(t, "invalid_input", decode(t, w, nil).Kind)

	w = s.do(t, clerkID, http.MethodPost, path+"/payments", gin.H{"method": gin.H{"kind": "other", "label": "M-Pesa"}, "amount": 4001})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "overpayment_rejected", decode(t, w, nil).Kind)

	w = s.do(t, clerkID, http.MethodPost, path+"/payments", gin.H{"method": gin.H{"kind": "other", "label": "M-Pesa"}, "amount": 4000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payments []entity.Payment
	w = s.do(t, clerkID, http.MethodGet, path+"/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &payments)
	require.Len(t, payments, 2)
	assert.Equal(t, "M-Pesa", payments[1].Method.String())

	var stored entity.Receipt
	w = s.do(t, adminID, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &stored)
	assert.Equal(t, "paid", string(stored.Status))
	assert.EqualValues(t, 0, stored.Balance)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestCreateReceipt_Errors(t *testing.T) {
	s := newTestServer(t)
	s.promote(t)
	s.createReceipt(t, "RCP-1")

	tests := []struct {
		name string
		body gin.H
		code int
		kind string
	}{
		{
			name: "line total past the maximum amount",
			body: gin.H{"number": "RCP-3", "customer": gin.H{"name": "Bob"}, "total": int64(-4611686018427387907),
				"items": []gin.H{{"service_name": "Gold", "price": int64(4611686018427387903), "quantity": 3}}},
			code: http.StatusUnprocessableEntity,
			kind: "invalid_amount",
		},
		{
			name: "total mismatch",
			body: gin.H{"number": "RCP-2", "customer": gin.H{"name": "Bob"}, "total": 100,
				"items": []gin.H{{"service_name": "Shave", "price": 1500, "quantity": 1}}},
			code: http.StatusConflict,
			kind: "total_mismatch",
		},
		{
			name: "duplicate number",
			body: gin.H{"number": "RCP-1", "customer": gin.H{"name": "Bob"}, "total": 1500,
				"items": []gin.H{{"service_name": "Shave", "price": 1500, "quantity": 1}}},
			code: http.StatusConflict,
			kind: "duplicate_receipt_number",
		},
		{
			name: "empty items",
			body: gin.H{"number": "RCP-3", "customer": gin.H{"name": "Bob"}, "total": 0, "items": []gin.H{}},
			code: http.StatusUnprocessableEntity,
			kind: "empty_item_list",
		},
		{
			name: "zero quantity",
			body: gin.H{"number": "RCP-4", "customer": gin.H{"name": "Bob"}, "total": 0,
				"items": []gin.H{{"service_name": "Shave", "price": 1500, "quantity": 0}}},
			code: http.StatusUnprocessableEntity,
			kind: "invalid_quantity",
		},
		{
			name: "unknown catalog item",
			body: gin.H{"number": "RCP-5", "customer": gin.H{"name": "Bob"}, "total": 0,
				"items": []gin.H{{"service_name": "Massage", "quantity": 1}}},
			code: http.StatusNotFound,
			kind: "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, clerkID, http.MethodPost, "/api/v1/receipts", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			assert.Equal(t, tt.kind, decode(t, w, nil).Kind)
		})
	}

	w := s.do(t, clerkID, http.MethodGet, "/api/v1/receipts/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, clerkID, http.MethodGet, "/api/v1/receipts/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListingAndExport(t *testing.T) {
	s := newTestServer(t)
	s.promote(t)

	first := s.createReceipt(t, "RCP-1")
	s.createReceipt(t, "RCP-2")
	w := s.do(t, clerkID, http.MethodPost, "/api/v1/receipts/"+itoa(first.ID)+"/payments", gin.H{"method": "card", "amount": 1000})
	require.Equal(t, http.StatusCreated, w.Code)

	var page struct {
		Items      []entity.Receipt `json:"items"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	w = s.do(t, clerkID, http.MethodGet, "/api/v1/receipts?status=partial&search=rcp", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "RCP-1", page.Items[0].Number)
	assert.Equal(t, 1, page.Pagination.Total)

	w = s.do(t, clerkID, http.MethodGet, "/api/v1/receipts?status=settled", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var farPage struct {
		Items      []entity.Receipt `json:"items"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	w = s.do(t, clerkID, http.MethodGet, "/api/v1/receipts?page=9223372036854775807&per_page=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &farPage)
	assert.Empty(t, farPage.Items)
	assert.Equal(t, 2, farPage.Pagination.Total)

	var sorted []entity.Receipt
	w = s.do(t, clerkID, http.MethodGet, "/api/v1/receipts/sorted?sort=balance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &sorted)
	require.Len(t, sorted, 2)
	assert.Equal(t, "RCP-1", sorted[0].Number)

	w = s.do(t, clerkID, http.MethodGet, "/api/v1/receipts/export?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "receipts_")
	assert.Contains(t, w.Body.String(), "RCP-2")
}

func TestPaymentIdempotency(t *testing.T) {
	s := newTestServer(t)
	s.promote(t)
	r := s.createReceipt(t, "RCP-1")
	path := "/api/v1/receipts/" + itoa(r.ID) + "/payments"
	body := gin.H{"method": "cash", "amount": 1000}

	first := s.do(t, clerkID, http.MethodPost, path, body, "Idempotency-Key", "pay-1")
	require.Equal(t, http.StatusCreated, first.Code)

	replay := s.do(t, clerkID, http.MethodPost, path, body, "Idempotency-Key", "pay-1")
	require.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), replay.Body.String())

	conflict := s.do(t, clerkID, http.MethodPost, path, gin.H{"method": "cash", "amount": 2000}, "Idempotency-Key", "pay-1")
	assert.Equal(t, http.StatusUnprocessableEntity, conflict.Code)

	var payments []entity.Payment
	w := s.do(t, clerkID, http.MethodGet, path, nil)
	decode(t, w, &payments)
	assert.Len(t, payments, 1)
}

func TestCatalogAndProfiles(t *testing.T) {
	s := newTestServer(t)
	s.promote(t)

	w := s.do(t, clerkID, http.MethodPost, "/api/v1/service-items", gin.H{"name": "Haircut", "price": 3000})
	require.Equal(t, http.StatusCreated, w.Code)
	w = s.do(t, clerkID, http.MethodPost, "/api/v1/service-items", gin.H{"name": "Haircut", "price": 3000})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "duplicate_name", decode(t, w, nil).Kind)

	w = s.do(t, clerkID, http.MethodPost, "/api/v1/customers", gin.H{"name": "Alice", "contact": "555-0100"})
	require.Equal(t, http.StatusCreated, w.Code)

	// catalog price and contact fill in omitted fields
	w = s.do(t, clerkID, http.MethodPost, "/api/v1/receipts", gin.H{
		"customer": gin.H{"name": "Alice"},
		"items":    []gin.H{{"service_name": "Haircut", "quantity": 1}},
		"total":    3000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var r entity.Receipt
	decode(t, w, &r)
	assert.Equal(t, "555-0100", r.Customer.Contact)
	assert.Contains(t, r.Number, "RCP-")

	w = s.do(t, guestID, http.MethodPut, "/api/v1/business-profile", gin.H{"name": "Fade"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, clerkID, http.MethodPut, "/api/v1/business-profile", gin.H{"name": "Fade Barbers"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, guestID, http.MethodPut, "/api/v1/me/profile", gin.H{"name": "Gina"})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, clerkID, http.MethodGet, "/api/v1/users/"+guestID.String()+"/profile", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, adminID, http.MethodGet, "/api/v1/users/"+guestID.String()+"/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, clerkID, http.MethodPost, "/api/v1/receipts/"+itoa(r.ID)+"/print", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, s.paper.Jobs(), 1)
	assert.Contains(t, string(s.paper.Jobs()[0]), "Fade Barbers")
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, guestID, http.MethodGet, "/api/v1/dashboard", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	s.promote(t)
	r := s.createReceipt(t, "RCP-1")
	w = s.do(t, clerkID, http.MethodPost, "/api/v1/receipts/"+itoa(r.ID)+"/payments", gin.H{"method": "card", "amount": 2500})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var stats struct {
		TotalReceipts   int   `json:"total_receipts"`
		PartialReceipts int   `json:"partial_receipts"`
		TotalBilled     int64 `json:"total_billed"`
		TotalCollected  int64 `json:"total_collected"`
		Outstanding     int64 `json:"outstanding"`
	}
	w = s.do(t, clerkID, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &stats)
	assert.Equal(t, 1, stats.TotalReceipts)
	assert.Equal(t, 1, stats.PartialReceipts)
	assert.EqualValues(t, 6000, stats.TotalBilled)
	assert.EqualValues(t, 2500, stats.TotalCollected)
	assert.EqualValues(t, 3500, stats.Outstanding)
}
