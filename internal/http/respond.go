package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/apperr"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/middleware"
)

// payload is merged into the top level of a success body.
type payload map[string]any

type errorBody struct {
	Success       bool                `json:"success"`
	Message       string              `json:"message"`
	Code          string              `json:"code"`
	Errors        map[string][]string `json:"errors,omitempty"`
	CorrelationID string              `json:"correlationId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, msg string, p payload) {
	body := payload{"success": true}
	if msg != "" {
		body["message"] = msg
	}
	for k, v := range p {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// writeError renders err with the status of its kind. Anything that is not an
// *apperr.Error is logged in full and shown as a generic failure.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	ae := apperr.As(err)
	if ae.Kind == apperr.KindGeneral {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("correlationId", middleware.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
	}
	writeJSON(w, ae.Status(), errorBody{
		Message:       ae.Message,
		Code:          ae.Code(),
		Errors:        ae.Fields,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ValidationFields(map[string][]string{name: {"must be a positive integer"}})
	}
	return id, nil
}
