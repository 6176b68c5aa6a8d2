package httpapi

import (
	"net/http"

	"greencart-be/internal/address"
	"greencart-be/internal/cart"
	"greencart-be/internal/logger"
	"greencart-be/internal/middleware"
	"greencart-be/internal/order"
	"greencart-be/internal/payment/webhook"
	"greencart-be/internal/product"
	"greencart-be/internal/user"

	"go.uber.org/zap"
)

// Handler holds every service the REST surface dispatches to.
type Handler struct {
	Users     user.Service
	Carts     cart.Service
	Products  product.Service
	Addresses address.Service
	Orders    order.Service
	Webhook   *webhook.Handler
	AppEnv    string
}

// Routes registers all endpoints on the mux. Per-route auth guards are applied
// here; identity extraction happens in the outer middleware chain.
func (h *Handler) Routes(mux *http.ServeMux) {
	requireUser := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireUser(fn)
	}
	requireSeller := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireSeller(fn)
	}

	mux.HandleFunc("POST /user/register", h.Register)
	mux.HandleFunc("POST /user/login", h.Login)
	mux.Handle("GET /user/is-auth", requireUser(h.IsAuth))
	mux.HandleFunc("GET /user/logout", h.Logout)
	mux.HandleFunc("POST /seller/login", h.SellerLogin)
	mux.Handle("GET /seller/is-auth", requireSeller(h.SellerIsAuth))

	mux.Handle("POST /cart/update", requireUser(h.UpdateCart))

	mux.Handle("POST /address/add", requireUser(h.AddAddress))
	mux.Handle("GET /address/get", requireUser(h.GetAddresses))

	mux.Handle("POST /product/add", requireSeller(h.AddProduct))
	mux.HandleFunc("GET /product/list", h.ListProducts)
	mux.Handle("POST /product/stock", requireSeller(h.SetProductStock))

	mux.Handle("POST /order/cod", requireUser(h.PlaceCOD))
	mux.Handle("POST /order/online", requireUser(h.PlaceOnline))
	mux.Handle("GET /order/mine", requireUser(h.MyOrders))
	mux.Handle("GET /order/all", requireSeller(h.AllOrders))

	mux.HandleFunc("POST /webhook", h.Webhook.WebhookHandler)
}

// internalError logs the cause and returns a generic 500; the raw error is
// exposed only in development mode.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.internalErrorWithMessage(w, r, err, "Internal server error. Please try again.")
}

func (h *Handler) internalErrorWithMessage(w http.ResponseWriter, r *http.Request, err error, message string) {
	logger.FromCtx(r.Context()).Error("internal error",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)

	body := map[string]interface{}{
		"success": false,
		"message": message,
	}
	if h.AppEnv == "development" {
		body["error"] = err.Error()
	}
	respondJSON(w, http.StatusInternalServerError, body)
}
