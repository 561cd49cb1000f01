package transport

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/raywall/storefront/pkg/apperr"
	"github.com/raywall/storefront/pkg/metrics"
	"github.com/raywall/storefront/shop"
)

// RouterOptions tunes the middleware chain.
type RouterOptions struct {
	Timeout time.Duration
	Metrics *metrics.Processor
}

// NewRouter registers every storefront route on a gorilla/mux router. The
// same router serves local HTTP and, through the Lambda adapter, API Gateway.
func NewRouter(svc *shop.Services, opts RouterOptions) *mux.Router {
	h := &handlers{svc: svc}
	r := mux.NewRouter()
	r.Use(ObservabilityMiddleware(opts.Metrics), TimeoutMiddleware(opts.Timeout))

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	r.HandleFunc("/users", h.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/users", h.createUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", h.getUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.updateUser).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", h.deleteUser).Methods(http.MethodDelete)

	r.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/products", h.createProduct).Methods(http.MethodPost)
	r.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.updateProduct).Methods(http.MethodPut)
	r.HandleFunc("/products/{id}", h.deleteProduct).Methods(http.MethodDelete)

	// cleanup first so it is never read as a cart id
	r.HandleFunc("/cart/cleanup/all", h.cleanupCarts).Methods(http.MethodDelete)
	r.HandleFunc("/cart", h.listCarts).Methods(http.MethodGet)
	r.HandleFunc("/cart", h.createCart).Methods(http.MethodPost)
	r.HandleFunc("/cart/{id}", h.getCart).Methods(http.MethodGet)
	r.HandleFunc("/cart/{id}", h.deleteCart).Methods(http.MethodDelete)
	r.HandleFunc("/cart/{id}/items", h.addCartItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/{id}/items/{productId}", h.updateCartItem).Methods(http.MethodPut)
	r.HandleFunc("/cart/{id}/items/{productId}", h.deleteCartItem).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, apperr.NotFound("route "+req.URL.Path))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: errorDetail{
			Kind:    apperr.KindValidation,
			Message: req.Method + " is not allowed on " + req.URL.Path,
			Issues:  []apperr.Issue{},
		}})
	})
	return r
}
