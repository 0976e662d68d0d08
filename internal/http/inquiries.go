package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/inquiry"
)

func (h *Handler) SubmitJoinRequest(w http.ResponseWriter, r *http.Request) {
	var in inquiry.JoinRequest
	if err := bind(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	j, err := h.inquiries.SubmitJoinRequest(ctx, in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Your application has been submitted successfully!", payload{"id": j.ID})
}

func (h *Handler) ListJoinRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.inquiries.ListJoinRequests(ctx)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payload{"joinRequests": out})
}

func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var in inquiry.ContactMessage
	if err := bind(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	m, err := h.inquiries.SubmitContactMessage(ctx, in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Your message has been sent. We will get back to you soon.", payload{"id": m.ID})
}

func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.inquiries.ListContactMessages(ctx)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payload{"messages": out})
}
