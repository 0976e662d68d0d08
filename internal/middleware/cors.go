package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the configured origins. A single "*" reflects any origin.
func CORS(allowOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   allowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", HeaderCorrelationID, HeaderUserID, HeaderUserEmail, HeaderUserRoles},
		ExposedHeaders:   []string{HeaderCorrelationID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(allowOrigins) == 1 && allowOrigins[0] == "*" {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(r *http.Request, origin string) bool { return true }
	}
	return cors.Handler(opts)
}
