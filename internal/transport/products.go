package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

type initializeResponse struct {
	Message  string          `json:"message"`
	Products []model.Product `json:"products"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) productsByCategory(w http.ResponseWriter, r *http.Request) {
	category := model.Category(chi.URLParam(r, "category"))
	products, err := h.products.ByCategory(r.Context(), category)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if err := decodeJSON(r, &product); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, err := h.products.Create(r.Context(), product)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var product model.Product
	if err := decodeJSON(r, &product); err != nil {
		h.writeError(w, r, err)
		return
	}
	updated, err := h.products.Update(r.Context(), id, product)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.products.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

func (h *Handler) initializeProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.Initialize(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, initializeResponse{
		Message:  "Products initialized successfully",
		Products: products,
	})
}
