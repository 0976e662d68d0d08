package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/middleware"
)

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.carts.Get(ctx, middleware.GetSessionID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payload{"cart": c.View()})
}

type addToCartRequest struct {
	ProductID int64  `json:"productId"`
	Quantity  *int   `json:"quantity"`
	Size      string `json:"size"`
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := bind(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.carts.Add(ctx, middleware.GetSessionID(r.Context()), req.ProductID, qty, req.Size)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	name := "Product"
	for _, l := range c.Lines {
		if l.ProductID == req.ProductID {
			name = l.ProductName
			break
		}
	}
	writeSuccess(w, http.StatusOK, fmt.Sprintf("'%s' has been added to the cart!", name), payload{"cart": c.View()})
}

type cartLineRequest struct {
	ProductID int64  `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	var req cartLineRequest
	if err := bind(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.carts.UpdateQuantity(ctx, middleware.GetSessionID(r.Context()), req.ProductID, req.Size, req.Quantity)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payload{"cart": c.View()})
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req cartLineRequest
	if err := bind(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.carts.Remove(ctx, middleware.GetSessionID(r.Context()), req.ProductID, req.Size)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payload{"cart": c.View()})
}
