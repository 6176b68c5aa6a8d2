package httpapi

import (
	"errors"
	"net/http"

	"greencart-be/internal/order"
	"greencart-be/internal/payment"
	"greencart-be/internal/product"
	"greencart-be/internal/user"
	"greencart-be/internal/utils"
)

func (h *Handler) PlaceCOD(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input order.PlaceOrderInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	o, err := h.Orders.PlaceCOD(r.Context(), userID, input)
	if err != nil {
		h.respondOrderError(w, r, err, "Failed to place order. Please try again.")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Order placed successfully! Your order is being processed.",
		"order": map[string]interface{}{
			"_id":    o.ID,
			"items":  o.Items,
			"amount": o.Amount,
			"status": o.Status,
		},
	})
}

func (h *Handler) PlaceOnline(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	origin := r.Header.Get("Origin")
	if origin == "" {
		respondError(w, http.StatusBadRequest, "Origin header is required")
		return
	}

	var input order.PlaceOrderInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	url, err := h.Orders.PlaceOnline(r.Context(), userID, origin, input)
	if err != nil {
		h.respondOrderError(w, r, err, "Failed to process payment")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     url,
	})
}

func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.Orders.UserOrders(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

func (h *Handler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.AllOrders(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

// respondOrderError maps placement failures onto the error taxonomy: 400 for
// validation and business-rule breaks, 404 for missing entities, 500 for the
// rest (with the generic message).
func (h *Handler) respondOrderError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, order.ErrItemsRequired),
		errors.Is(err, order.ErrAddressRequired),
		errors.Is(err, order.ErrProductIDRequired),
		errors.Is(err, order.ErrOutOfStock):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, user.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, payment.ErrNotConfigured):
		respondError(w, http.StatusInternalServerError, "Payment configuration error")
	default:
		h.internalErrorWithMessage(w, r, err, fallback)
	}
}
