package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/apperr"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/middleware"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/order"
)

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	sum, err := h.orders.Preview(ctx, middleware.GetSessionID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payload{"checkout": sum})
}

// ProcessCheckout places the session cart. Identity is optional; anonymous
// shoppers get orders without a user id.
func (h *Handler) ProcessCheckout(w http.ResponseWriter, r *http.Request) {
	var shipping order.ShippingDetails
	if err := bind(w, r, &shipping); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var userID string
	if id, ok := middleware.GetIdentity(r.Context()); ok {
		userID = id.UserID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	conf, err := h.orders.Process(ctx, middleware.GetSessionID(r.Context()), userID, shipping)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Your order has been placed successfully.", payload{"confirmation": conf})
}

func (h *Handler) OrderConfirmation(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		writeError(w, r, h.logger, apperr.ValidationFields(map[string][]string{"token": {"is required"}}))
		return
	}
	writeSuccess(w, http.StatusOK, "Thank you! Your order has been received and will be delivered soon.",
		payload{"confirmationToken": token})
}

func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.GetIdentity(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.orders.ListByUser(ctx, id.UserID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payload{"orders": orders})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.orders.ListAll(ctx)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payload{"orders": orders})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.orders.Get(ctx, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payload{"order": o})
}

type statusRequest struct {
	Status    string `json:"status"`
	NewStatus string `json:"newStatus"`
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var req statusRequest
	if err := bind(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	status := req.Status
	if status == "" {
		status = req.NewStatus
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.orders.UpdateStatus(ctx, id, status); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Order status updated.", payload{"id": id, "status": strings.TrimSpace(status)})
}
