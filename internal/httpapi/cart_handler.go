package httpapi

import (
	"net/http"

	"greencart-be/internal/utils"
)

type updateCartRequest struct {
	CartItems map[string]int `json:"cartItems"`
}

// UpdateCart replaces the user's whole cart mapping; the client owns the
// working copy and mirrors it here.
func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req updateCartRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Carts.Replace(r.Context(), userID, req.CartItems); err != nil {
		h.internalError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Cart Updated",
	})
}
