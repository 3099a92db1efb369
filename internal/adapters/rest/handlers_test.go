package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	token_adapter "listing-service/internal/adapters/jwt"
	"listing-service/internal/adapters/memory"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/filter"
	"listing-service/internal/core/lifecycle"
	"listing-service/internal/core/query"
	"listing-service/internal/core/usecase"
)

const testSecret = "handlers-test-secret"

type testAPI struct {
	t      *testing.T
	router http.Handler
	tokens *token_adapter.TokenService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	properties := memory.NewPropertyStore()
	inquiries := memory.NewInquiryStore()
	contacts := memory.NewContactStore()
	users := memory.NewUserDirectory(
		domain.User{ID: "alice", Name: "Alice", Email: "alice@example.com"},
		domain.User{ID: "bob", Name: "Bob", Email: "bob@example.com"},
	)
	events := noopEvents{}

	guard := access.NewGuard()
	manager := lifecycle.NewManager()
	executor := query.NewExecutor(properties, users)
	metrics := NewMetrics("listing_test")

	handlers := Handlers{
		Properties: NewPropertyHandler(
			usecase.NewListPropertiesUseCase(filter.NewCompiler(filter.DefaultOptions), executor),
			usecase.NewGetPropertyUseCase(properties, executor),
			usecase.NewCreatePropertyUseCase(properties, guard, events, executor),
			usecase.NewUpdatePropertyUseCase(properties, guard, events, executor),
			usecase.NewDeletePropertyUseCase(properties, inquiries, guard, events),
			usecase.NewListMyPropertiesUseCase(guard, executor),
			metrics,
		),
		Inquiries: NewInquiryHandler(
			usecase.NewCreateInquiryUseCase(properties, inquiries, guard, manager, events),
			usecase.NewListMyInquiriesUseCase(guard, executor, inquiries),
			usecase.NewListPropertyInquiriesUseCase(properties, inquiries, guard),
			usecase.NewUpdateInquiryStatusUseCase(properties, inquiries, guard, manager, events),
			usecase.NewDeleteInquiryUseCase(properties, inquiries, guard, events),
			metrics,
		),
		Contacts: NewContactHandler(
			usecase.NewCreateContactUseCase(contacts, guard, manager, events),
			usecase.NewListContactsUseCase(contacts, guard),
			usecase.NewUpdateContactStatusUseCase(contacts, guard, manager, events),
			usecase.NewDeleteContactUseCase(contacts, guard, events),
			metrics,
		),
	}

	tokens, err := token_adapter.NewTokenService(testSecret)
	require.NoError(t, err)

	router := NewRouter(ServerConfig{CORSAllowedOrigins: []string{"*"}}, handlers, tokens, metrics, contextkeys.NoopLogger())
	return &testAPI{t: t, router: router, tokens: tokens}
}

type noopEvents struct{}

func (noopEvents) Publish(context.Context, domain.Event) error { return nil }

func (a *testAPI) token(userID string, role domain.Role) string {
	tok, err := a.tokens.GenerateToken(context.Background(), domain.Principal{UserID: userID, Email: userID + "@example.com", Role: role}, time.Hour)
	require.NoError(a.t, err)
	return tok
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func propertyBody(title string, price float64) map[string]interface{} {
	return map[string]interface{}{
		"title":        title,
		"description":  "Nice place",
		"price":        price,
		"location":     map[string]interface{}{"address": "1 Main St", "city": "Springfield", "state": "IL", "zipCode": "62701"},
		"propertyType": "house",
		"status":       "for-sale",
		"features":     map[string]interface{}{"bedrooms": 3, "bathrooms": 2, "squareFeet": 1500},
		"images":       []string{"https://img.example.com/a.jpg"},
		"owner":        "mallory",
	}
}

func (a *testAPI) createProperty(token, title string, price float64) PropertyResponse {
	rec := a.do(http.MethodPost, "/api/v1/properties", token, propertyBody(title, price))
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[PropertyResponse](a.t, rec)
}

func TestCreateProperty_OwnerFromTokenNotBody(t *testing.T) {
	api := newTestAPI(t)
	created := api.createProperty(api.token("alice", domain.RoleUser), "Cozy", 100000)

	assert.Equal(t, "alice", created.Owner.ID)
	assert.NotEmpty(t, created.ID)

	rec := api.do(http.MethodGet, "/api/v1/properties/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[PropertyResponse](t, rec)
	assert.Equal(t, OwnerResponse{ID: "alice", Name: "Alice", Email: "alice@example.com"}, got.Owner)
}

func TestCreateProperty_Anonymous401(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(http.MethodPost, "/api/v1/properties", "", propertyBody("Cozy", 1))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInvalidToken401(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/v1/properties", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
	req.Header.Set("Authorization", "Token abc")
	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateProperty_ValidationNamesField(t *testing.T) {
	api := newTestAPI(t)
	body := propertyBody("Cozy", 1)
	delete(body, "title")

	rec := api.do(http.MethodPost, "/api/v1/properties", api.token("alice", domain.RoleUser), body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title", decode[ErrorResponse](t, rec).Field)
}

func TestListProperties_PaginationEnvelope(t *testing.T) {
	api := newTestAPI(t)
	tok := api.token("alice", domain.RoleUser)
	for _, price := range []float64{300, 100, 200} {
		api.createProperty(tok, "House", price)
	}

	rec := api.do(http.MethodGet, "/api/v1/properties?sortBy=price-asc&limit=2&page=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[PropertyListResponse](t, rec)

	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	require.Len(t, page.Properties, 2)
	assert.Equal(t, 100.0, page.Properties[0].Price)
	assert.Equal(t, 200.0, page.Properties[1].Price)
}

func TestListProperties_BadParams(t *testing.T) {
	api := newTestAPI(t)

	cases := map[string]string{
		"/api/v1/properties?minPrice=500&maxPrice=100": "minPrice",
		"/api/v1/properties?colour=red":                "colour",
		"/api/v1/properties?city=a&city=b":             "city",
		"/api/v1/properties?page=0":                    "page",
	}
	for path, field := range cases {
		rec := api.do(http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, field, decode[ErrorResponse](t, rec).Field, path)
	}
}

func TestUpdateProperty_ForbiddenBeforeValidation(t *testing.T) {
	api := newTestAPI(t)
	created := api.createProperty(api.token("alice", domain.RoleUser), "Cozy", 100)
	path := "/api/v1/properties/" + created.ID

	rec := api.do(http.MethodPut, path, api.token("bob", domain.RoleUser), `{"price": "free"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodPut, path, api.token("alice", domain.RoleUser), `{"price": "free"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPut, "/api/v1/properties/missing", api.token("bob", domain.RoleUser), `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPut, path, "", `{"title": "Mine"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPut, path, api.token("alice", domain.RoleUser), map[string]interface{}{"title": "Renamed", "owner": "bob"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[PropertyResponse](t, rec)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "alice", updated.Owner.ID)
}

func TestWriteResponsesEmbedDirectoryOwner(t *testing.T) {
	api := newTestAPI(t)
	token := api.token("alice", domain.RoleUser)
	want := OwnerResponse{ID: "alice", Name: "Alice", Email: "alice@example.com"}

	created := api.createProperty(token, "Cozy", 100)
	assert.Equal(t, want, created.Owner)

	rec := api.do(http.MethodPut, "/api/v1/properties/"+created.ID, token, map[string]interface{}{"price": 120})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, want, decode[PropertyResponse](t, rec).Owner)

	rec = api.do(http.MethodGet, "/api/v1/properties/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, want, decode[PropertyResponse](t, rec).Owner)
}

func TestDeleteProperty(t *testing.T) {
	api := newTestAPI(t)
	created := api.createProperty(api.token("alice", domain.RoleUser), "Cozy", 100)
	path := "/api/v1/properties/" + created.ID

	rec := api.do(http.MethodDelete, path, api.token("bob", domain.RoleUser), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodDelete, path, api.token("alice", domain.RoleUser), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Property deleted successfully", decode[MessageResponse](t, rec).Message)

	rec = api.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInquiryFlow(t *testing.T) {
	api := newTestAPI(t)
	aliceTok := api.token("alice", domain.RoleUser)
	created := api.createProperty(aliceTok, "Cozy", 100)

	inquiry := map[string]string{"name": "Carol", "email": "carol@example.com", "phone": "555-0101", "message": "Still available?"}
	rec := api.do(http.MethodPost, "/api/v1/properties/"+created.ID+"/inquiry", "", inquiry)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	createdResp := decode[InquiryCreatedResponse](t, rec)
	assert.True(t, createdResp.Success)
	assert.Equal(t, "Inquiry sent successfully", createdResp.Message)
	assert.Equal(t, "new", createdResp.Inquiry.Status)

	rec = api.do(http.MethodPost, "/api/v1/properties/missing/inquiry", "", inquiry)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/user/inquiries", aliceTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine struct {
		Success   bool `json:"success"`
		Inquiries []struct {
			ID       string                  `json:"id"`
			Status   string                  `json:"status"`
			Property PropertySummaryResponse `json:"property"`
		} `json:"inquiries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine.Inquiries, 1)
	assert.Equal(t, "Cozy", mine.Inquiries[0].Property.Title)

	rec = api.do(http.MethodGet, "/api/v1/user/inquiries", api.token("bob", domain.RoleUser), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[InquiryListResponse](t, rec).Inquiries)

	rec = api.do(http.MethodGet, "/api/v1/properties/"+created.ID+"/inquiries", api.token("bob", domain.RoleUser), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	inquiryPath := "/api/v1/inquiries/" + createdResp.Inquiry.ID
	rec = api.do(http.MethodPatch, inquiryPath, aliceTok, map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPatch, inquiryPath, aliceTok, map[string]string{"status": "read"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "read", decode[InquiryUpdatedResponse](t, rec).Inquiry.Status)

	rec = api.do(http.MethodDelete, inquiryPath, aliceTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusUpdates_AccessCheckedBeforeBody(t *testing.T) {
	api := newTestAPI(t)
	aliceTok := api.token("alice", domain.RoleUser)
	bobTok := api.token("bob", domain.RoleUser)
	created := api.createProperty(aliceTok, "Cozy", 100)

	rec := api.do(http.MethodPost, "/api/v1/properties/"+created.ID+"/inquiry", "",
		map[string]string{"name": "Carol", "email": "carol@example.com", "phone": "555-0101", "message": "Hi"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	inquiryPath := "/api/v1/inquiries/" + decode[InquiryCreatedResponse](t, rec).Inquiry.ID

	bogus := map[string]string{"status": "bogus"}
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPatch, inquiryPath, "", bogus).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPatch, inquiryPath, bobTok, bogus).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPatch, "/api/v1/inquiries/missing", bobTok, "{").Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPatch, inquiryPath, aliceTok, bogus).Code)

	rec = api.do(http.MethodPost, "/api/v1/contact", "", map[string]string{
		"name": "Dave", "email": "dave@example.com", "subject": "Hello", "message": "Question about fees",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	contactPath := "/api/v1/contact/" + decode[ContactCreatedResponse](t, rec).ID

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPatch, contactPath, "", bogus).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPatch, contactPath, aliceTok, bogus).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPatch, contactPath, api.token("root", domain.RoleAdmin), bogus).Code)
}

func TestContactFlow(t *testing.T) {
	api := newTestAPI(t)
	adminTok := api.token("root", domain.RoleAdmin)

	rec := api.do(http.MethodPost, "/api/v1/contact", "", map[string]string{
		"name": "Dave", "email": "dave@example.com", "subject": "Hello", "message": "Question about fees",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[ContactCreatedResponse](t, rec)
	assert.Equal(t, "Message sent successfully", created.Message)

	rec = api.do(http.MethodGet, "/api/v1/contact", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = api.do(http.MethodGet, "/api/v1/contact", api.token("alice", domain.RoleUser), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/contact", adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]ContactResponse](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].Status)

	rec = api.do(http.MethodPatch, "/api/v1/contact/"+created.ID, adminTok, map[string]string{"status": "resolved"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "resolved", decode[ContactResponse](t, rec).Status)

	rec = api.do(http.MethodDelete, "/api/v1/contact/missing", adminTok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodDelete, "/api/v1/contact/"+created.ID, adminTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	api.do(http.MethodGet, "/api/v1/properties?page=0", "", nil)

	rec = api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `listing_test_domain_failures_total{kind="validation"} 1`), body)
	assert.Contains(t, body, `route="/api/v1/properties`)
}

func TestTraceIDEchoed(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(traceHeader, "0190d6a2-5a2b-7c3d-8e4f-123456789abc")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	assert.Equal(t, "0190d6a2-5a2b-7c3d-8e4f-123456789abc", rec.Header().Get(traceHeader))

	rec = api.do(http.MethodGet, "/healthz", "", nil)
	assert.NotEmpty(t, rec.Header().Get(traceHeader))
}
