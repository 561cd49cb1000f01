package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/raywall/storefront/dyndb"
	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/pkg/apperr"
	"github.com/raywall/storefront/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	table  *dyndb.MemoryTable
	server http.Handler
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	table := dyndb.NewMemoryTable()
	router := NewRouter(shop.New(table, nil), RouterOptions{Timeout: time.Second})
	return &apiFixture{table: table, server: router}
}

func (a *apiFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.server.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	api := newAPI(t)
	rec := api.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(HeaderCorrelationID))
	assert.NotEmpty(t, rec.Header().Get(HeaderLatency))
}

func TestCorrelationIDIsEchoed(t *testing.T) {
	api := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderCorrelationID, "abc-123")
	rec := httptest.NewRecorder()
	api.server.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(HeaderCorrelationID))
}

func TestUsersEndpoints(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodPost, "/users", `{"userId":"u1","userName":"Ana"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodPost, "/users", `{"userId":"u1","userName":"Twin"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apperr.KindConflict, decode[errorBody](t, rec).Error.Kind)

	rec = api.do(t, http.MethodPut, "/users/u1", `{"userName":"Bia"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bia", decode[map[string]any](t, rec)["userName"])

	rec = api.do(t, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = api.do(t, http.MethodDelete, "/users/u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user deleted", decode[messageBody](t, rec).Message)

	rec = api.do(t, http.MethodDelete, "/users/u1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperr.KindNotFound, decode[errorBody](t, rec).Error.Kind)
}

func TestCreateUserValidation(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodPost, "/users", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, apperr.KindValidation, body.Error.Kind)
	require.NotEmpty(t, body.Error.Issues)
	assert.Equal(t, "userName", body.Error.Issues[0].Field)
	assert.Zero(t, api.table.Len())
}

func TestProductRoundTrip(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodPost, "/products", `{"name":"Widget","price":9.99,"amountInStock":5}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	id, _ := created["productId"].(string)
	require.NotEmpty(t, id)

	rec = api.do(t, http.MethodGet, "/products/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Equal(t, "Widget", got["name"])
	assert.Equal(t, 9.99, got["price"])
	assert.Equal(t, float64(5), got["amountInStock"])
}

func TestUpdateProductRejectsNegativePrice(t *testing.T) {
	api := newAPI(t)
	rec := api.do(t, http.MethodPost, "/products", `{"productId":"p1","name":"Widget","price":9.99,"amountInStock":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodPut, "/products/p1", `{"price":-1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errorBody](t, rec)
	require.Len(t, body.Error.Issues, 1)
	assert.Equal(t, "price", body.Error.Issues[0].Field)

	rec = api.do(t, http.MethodGet, "/products/p1", "")
	assert.Equal(t, 9.99, decode[map[string]any](t, rec)["price"])
}

func TestUpdateBodyErrors(t *testing.T) {
	api := newAPI(t)
	cases := map[string]string{
		"empty":      "",
		"malformed":  `{"name":`,
		"not object": `null`,
		"identity":   `{"productId":"p9"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := api.do(t, http.MethodPut, "/products/p1", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, apperr.KindValidation, decode[errorBody](t, rec).Error.Kind)
		})
	}
}

func TestCartFlow(t *testing.T) {
	api := newAPI(t)
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/users", `{"userId":"u1","userName":"Ana"}`).Code)
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/products", `{"productId":"p1","name":"Widget","price":1,"amountInStock":5}`).Code)

	rec := api.do(t, http.MethodPost, "/cart", `{"userId":"u1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cartID, _ := decode[map[string]any](t, rec)["cartId"].(string)
	require.NotEmpty(t, cartID)

	rec = api.do(t, http.MethodGet, "/cart/"+cartID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cartId":"`+cartID+`","userId":"u1","items":[]}`, rec.Body.String())

	for i := 0; i < 2; i++ {
		rec = api.do(t, http.MethodPost, "/cart/"+cartID+"/items", `{"productId":"p1","amount":2}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	assert.Equal(t, float64(4), decode[map[string]any](t, rec)["amount"])

	rec = api.do(t, http.MethodPut, "/cart/"+cartID+"/items/p1", `{"amount":7}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(7), decode[map[string]any](t, rec)["amount"])

	rec = api.do(t, http.MethodGet, "/cart/"+cartID+"?userId=someone-else", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, "/cart?userId=u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = api.do(t, http.MethodDelete, "/cart/"+cartID+"/items/p1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodDelete, "/cart/"+cartID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cart deleted", decode[messageBody](t, rec).Message)
}

func TestCleanupRouteIsNotACartID(t *testing.T) {
	api := newAPI(t)
	// header with no owner
	require.NoError(t, api.table.Put(t.Context(), dyndb.KeyAttributes(keys.CartKey("broken"))))

	rec := api.do(t, http.MethodDelete, "/cart/cleanup/all", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[cleanupBody](t, rec)
	assert.Equal(t, []keys.Key{keys.CartKey("broken")}, body.Deleted)
	assert.Zero(t, api.table.Len())
}

func TestUnknownRouteAndMethod(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperr.KindNotFound, decode[errorBody](t, rec).Error.Kind)

	rec = api.do(t, http.MethodPatch, "/users", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
