package httpapi

import (
	"errors"
	"net/http"

	"greencart-be/internal/address"
	"greencart-be/internal/utils"
)

func (h *Handler) AddAddress(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input address.NewAddressInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	addr, err := h.Addresses.Add(r.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, address.ErrMissingFields), errors.Is(err, address.ErrInvalidZipcode):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Address Added Successfully",
		"address": addr,
	})
}

func (h *Handler) GetAddresses(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	addresses, err := h.Addresses.List(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"addresses": addresses,
	})
}
