package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/models"
	"github.com/raywall/storefront/shop"
	"github.com/raywall/storefront/validation"
)

type handlers struct {
	svc *shop.Services
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- users ---

func (h *handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Users.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *handlers) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Users.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *handlers) createUser(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := validation.Parse[models.UserInput](body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Users.Create(r.Context(), *in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Users.Update(r.Context(), mux.Vars(r)["id"], fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Users.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "user deleted"})
}

// --- products ---

func (h *handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Products.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.Products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *handlers) createProduct(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := validation.Parse[models.ProductInput](body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	product, err := h.svc.Products.Create(r.Context(), *in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *handlers) updateProduct(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	product, err := h.svc.Products.Update(r.Context(), mux.Vars(r)["id"], fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *handlers) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Products.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "product deleted"})
}

// --- carts ---

func (h *handlers) listCarts(w http.ResponseWriter, r *http.Request) {
	carts, err := h.svc.Carts.ListCarts(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, carts)
}

func (h *handlers) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Carts.GetCart(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handlers) createCart(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := validation.Parse[models.CartInput](body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	cart, err := h.svc.Carts.CreateCart(r.Context(), *in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cart)
}

func (h *handlers) addCartItem(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := validation.Parse[models.CartItemInput](body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	item, err := h.svc.Carts.AddItem(r.Context(), mux.Vars(r)["id"], *in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *handlers) updateCartItem(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	vars := mux.Vars(r)
	item, err := h.svc.Carts.SetItemAmount(r.Context(), vars["id"], vars["productId"], fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *handlers) deleteCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.Carts.RemoveItem(r.Context(), vars["id"], vars["productId"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "cart item deleted"})
}

func (h *handlers) deleteCart(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Carts.DeleteCart(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "cart deleted"})
}

type cleanupBody struct {
	Message string     `json:"message"`
	Deleted []keys.Key `json:"deleted"`
}

func (h *handlers) cleanupCarts(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.Carts.CleanupCarts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cleanupBody{Message: "cleanup completed", Deleted: deleted})
}
