package httpapi

import (
	"errors"
	"net/http"
	"time"

	"greencart-be/internal/user"
	"greencart-be/internal/utils"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, token, err := h.Users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrMissingFields):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, user.ErrEmailExists):
			respondError(w, http.StatusConflict, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	setAuthCookie(w, token)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    map[string]interface{}{"name": u.Name, "email": u.Email},
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, token, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrMissingFields), errors.Is(err, user.ErrInvalidCredentials):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	setAuthCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    map[string]interface{}{"name": u.Name, "email": u.Email},
	})
}

func (h *Handler) IsAuth(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	u, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.internalError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user": map[string]interface{}{
			"name":      u.Name,
			"email":     u.Email,
			"cartItems": u.CartItems,
		},
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged Out",
	})
}

func (h *Handler) SellerLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.Users.SellerLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.internalError(w, r, err)
		return
	}

	setAuthCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Seller logged in",
	})
}

func (h *Handler) SellerIsAuth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
