package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/apperr"
)

type errorBody struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Code          string `json:"code"`
	CorrelationID string `json:"correlationId,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, kind apperr.Kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(kind.Status())
	_ = json.NewEncoder(w).Encode(errorBody{
		Message:       msg,
		Code:          kind.Code(),
		CorrelationID: GetCorrelationID(r.Context()),
	})
}
