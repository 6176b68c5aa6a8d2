package httpapi

import (
	"errors"
	"net/http"

	"greencart-be/internal/product"

	"github.com/google/uuid"
)

func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var input product.NewProductInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.Products.AddProduct(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrMissingFields),
			errors.Is(err, product.ErrImageRequired),
			errors.Is(err, product.ErrInvalidPrice):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":   true,
		"message":   "Product added successfully.",
		"productId": p.ID,
	})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": products,
	})
}

type stockRequest struct {
	ID      string `json:"id"`
	InStock bool   `json:"inStock"`
}

func (h *Handler) SetProductStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.Products.SetStock(r.Context(), id, req.InStock); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.internalError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Stock Updated",
	})
}
