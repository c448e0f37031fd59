package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"grab-atreat/internal/domain"
	"grab-atreat/internal/pricing"
	"grab-atreat/internal/service"

	"github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"
)

type Handler struct {
	Orders   service.OrderServiceInterface
	Sessions *service.SessionService
	Catalog  *service.CatalogService
}

func NewHandler(orders service.OrderServiceInterface, sessions *service.SessionService, catalog *service.CatalogService) *Handler {
	return &Handler{Orders: orders, Sessions: sessions, Catalog: catalog}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.health).Methods("GET")

	r.HandleFunc("/api/auth/register", h.register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/logout", h.logout).Methods("POST")

	r.HandleFunc("/api/restaurants", h.listRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/status", h.setRestaurantStatus).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}/menu/{itemId}/availability", h.toggleAvailability).Methods("POST")

	r.HandleFunc("/api/coupons", h.listCoupons).Methods("GET")
	r.HandleFunc("/api/quotes", h.quote).Methods("POST")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.orderQRCode).Methods("GET")
	r.HandleFunc("/api/orders/{id}/accept", h.acceptOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}/ready", h.markReady).Methods("POST")
	r.HandleFunc("/api/orders/{id}/pickup", h.pickUp).Methods("POST")
	r.HandleFunc("/api/orders/{id}/deliver", h.deliver).Methods("POST")
	r.HandleFunc("/api/orders/{id}/review", h.submitReview).Methods("POST")
	r.HandleFunc("/api/orders/{id}/refund", h.requestRefund).Methods("POST")
	r.HandleFunc("/api/orders/{id}/refund/resolve", h.resolveRefund).Methods("POST")

	r.HandleFunc("/api/profile", h.getProfile).Methods("GET")
	r.HandleFunc("/api/profile", h.updateProfile).Methods("PATCH")
	r.HandleFunc("/api/profile/status", h.setUserStatus).Methods("POST")
	r.HandleFunc("/api/favorites/{restaurantId}", h.toggleFavorite).Methods("POST")

	r.HandleFunc("/api/rider/earnings", h.riderEarnings).Methods("GET")
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "grab-atreat",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// actorFrom resolves the session token into an explicit caller identity.
func (h *Handler) actorFrom(r *http.Request) (service.Actor, error) {
	token := r.Header.Get("X-Auth-Token")
	if token == "" {
		return service.Actor{}, service.ErrSessionNotFound
	}
	session, err := h.Sessions.Lookup(r.Context(), token)
	if err != nil {
		return service.Actor{}, err
	}
	return service.Actor{Role: session.Role, ID: session.Identity, RestaurantID: session.RestaurantID}, nil
}

// writeOrderResult maps service errors to status codes. A sync failure means
// the transition committed locally, so the order is still returned.
func writeOrderResult(w http.ResponseWriter, order *domain.Order, err error) {
	if err != nil && !errors.Is(err, service.ErrSyncFailed) {
		writeServiceError(w, err)
		return
	}
	if err != nil {
		log.Printf("[http] order %s committed, sync pending: %v", order.ID, err)
	}
	writeJSON(w, http.StatusOK, order)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, service.ErrEmptyOrder):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrRestaurantNotFound),
		errors.Is(err, service.ErrMenuItemNotFound),
		errors.Is(err, service.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrRefundAlreadyRequested),
		errors.Is(err, service.ErrRefundAlreadyResolved),
		errors.Is(err, service.ErrRefundNotPending),
		errors.Is(err, service.ErrRestaurantUnavailable),
		errors.Is(err, service.ErrMobileTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrOtpMismatch),
		errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// auth

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session, err := h.Sessions.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session, err := h.Sessions.Login(r.Context(), req.Mobile, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Auth-Token")
	if token != "" {
		_ = h.Sessions.Logout(r.Context(), token)
	}
	w.WriteHeader(http.StatusNoContent)
}

// catalog

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.List())
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	restaurant, err := h.Catalog.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (h *Handler) setRestaurantStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if actor.Role != domain.RolePartner || actor.RestaurantID != id {
		writeServiceError(w, fmt.Errorf("%w: not this restaurant's partner", service.ErrUnauthorized))
		return
	}

	var req struct {
		Status domain.UserStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	switch req.Status {
	case domain.StatusAvailable, domain.StatusBusy, domain.StatusOffline:
	default:
		http.Error(w, "status must be AVAILABLE, BUSY or OFFLINE", http.StatusBadRequest)
		return
	}

	if err := h.Catalog.SetStatus(id, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"restaurant_id": id, "status": req.Status})
}

func (h *Handler) toggleAvailability(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	vars := mux.Vars(r)
	id, _ := strconv.Atoi(vars["id"])
	itemID, _ := strconv.Atoi(vars["itemId"])
	if actor.Role != domain.RolePartner || actor.RestaurantID != id {
		writeServiceError(w, fmt.Errorf("%w: not this restaurant's partner", service.ErrUnauthorized))
		return
	}

	available, err := h.Catalog.ToggleAvailability(id, itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"item_id": itemID, "available": available})
}

// pricing

func (h *Handler) listCoupons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pricing.Coupons())
}

type cartPayload struct {
	RestaurantID int                   `json:"restaurant_id"`
	Type         domain.OrderType      `json:"type"`
	Target       domain.DeliveryTarget `json:"target"`
	Items        []struct {
		ItemName  string `json:"item_name"`
		UnitPrice int64  `json:"unit_price"`
		IsVeg     bool   `json:"is_veg"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
	Tip          int64  `json:"tip"`
	CouponCode   string `json:"coupon_code"`
	RedeemPoints bool   `json:"redeem_points"`
}

func (p cartPayload) lines() ([]domain.CartLine, error) {
	lines := make([]domain.CartLine, 0, len(p.Items))
	for _, item := range p.Items {
		line, err := domain.NewCartLine(item.ItemName, item.UnitPrice, item.IsVeg, item.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var payload cartPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lines, err := payload.lines()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if payload.Type == "" {
		payload.Type = domain.OrderTypeHome
	}

	in := pricing.Input{
		Lines:        lines,
		Type:         payload.Type,
		Tip:          payload.Tip,
		RedeemPoints: payload.RedeemPoints,
	}
	if payload.CouponCode != "" {
		if coupon, ok := pricing.FindCoupon(payload.CouponCode); ok {
			in.Coupon = &coupon
		}
	}
	if payload.RedeemPoints && actor.Role == domain.RoleCustomer {
		balance, err := h.Sessions.Balance(r.Context(), actor.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		in.PointsBalance = balance
	}

	writeJSON(w, http.StatusOK, pricing.Quote(in))
}

// orders

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var payload cartPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lines, err := payload.lines()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if payload.Type == "" {
		payload.Type = domain.OrderTypeHome
	}

	// Admission policy: a BUSY/OFFLINE kitchen never sees the order.
	if err := h.Catalog.CheckAccepting(payload.RestaurantID); err != nil {
		writeServiceError(w, err)
		return
	}
	restaurant, err := h.Catalog.Get(payload.RestaurantID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var customerName string
	if user, err := h.Sessions.Profile(actor.ID); err == nil {
		customerName = user.Name
	}

	order, err := h.Orders.Checkout(r.Context(), actor, service.CheckoutRequest{
		CustomerName:   customerName,
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
		Type:           payload.Type,
		Target:         payload.Target,
		Lines:          lines,
		Tip:            payload.Tip,
		CouponCode:     payload.CouponCode,
		RedeemPoints:   payload.RedeemPoints,
	})
	if err != nil && !errors.Is(err, service.ErrSyncFailed) {
		writeServiceError(w, err)
		return
	}
	if err != nil {
		log.Printf("[http] order %s committed, sync pending: %v", order.ID, err)
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Orders.ListFor(actor))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	order, err := h.Orders.Get(actor, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// orderQRCode renders the delivery handoff code as a QR PNG the rider scans
// at the door.
func (h *Handler) orderQRCode(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	order, err := h.Orders.Get(actor, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if actor.Role != domain.RoleCustomer {
		writeServiceError(w, fmt.Errorf("%w: delivery code belongs to the customer", service.ErrUnauthorized))
		return
	}

	payload := fmt.Sprintf("grabatreat://orders/%s/deliver?code=%s", order.ID, order.DeliveryOTP)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) acceptOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	order, err := h.Orders.Accept(r.Context(), actor, mux.Vars(r)["id"])
	writeOrderResult(w, order, err)
}

func (h *Handler) markReady(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	order, err := h.Orders.MarkReady(r.Context(), actor, mux.Vars(r)["id"])
	writeOrderResult(w, order, err)
}

func (h *Handler) pickUp(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req struct {
		OTP string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Orders.PickUp(r.Context(), actor, mux.Vars(r)["id"], req.OTP)
	writeOrderResult(w, order, err)
}

func (h *Handler) deliver(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req struct {
		OTP string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Orders.Deliver(r.Context(), actor, mux.Vars(r)["id"], req.OTP)
	writeOrderResult(w, order, err)
}

func (h *Handler) submitReview(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Orders.SubmitReview(r.Context(), actor, mux.Vars(r)["id"], req.Rating, req.Comment)
	writeOrderResult(w, order, err)
}

func (h *Handler) requestRefund(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Orders.RequestRefund(r.Context(), actor, mux.Vars(r)["id"], req.Reason)
	writeOrderResult(w, order, err)
}

func (h *Handler) resolveRefund(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req struct {
		Decision domain.RefundStatus `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Orders.ResolveRefund(r.Context(), actor, mux.Vars(r)["id"], req.Decision)
	writeOrderResult(w, order, err)
}

// profile

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	user, err := h.Sessions.Profile(actor.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var update service.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	user, err := h.Sessions.UpdateProfile(actor.ID, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) setUserStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req struct {
		Status domain.UserStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Sessions.SetStatus(actor.ID, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": req.Status})
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])
	favorited, err := h.Sessions.ToggleFavorite(actor.ID, restaurantID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"restaurant_id": restaurantID, "favorited": favorited})
}

func (h *Handler) riderEarnings(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if actor.Role != domain.RoleRider {
		writeServiceError(w, fmt.Errorf("%w: earnings are rider-only", service.ErrUnauthorized))
		return
	}
	writeJSON(w, http.StatusOK, h.Orders.EarningsFor(actor.ID))
}
