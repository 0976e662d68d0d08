package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/apperr"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/roles"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRoles = "X-User-Roles"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID string
	Email  string
	Roles  []string
}

// Claims is the JWT payload the portal accepts.
type Claims struct {
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Authenticate resolves the caller. With a secret, an HS256 bearer token is
// required to carry identity and a bad token is rejected. Without one, the
// X-User-* headers set by a trusted proxy are used. Requests with neither
// continue anonymously.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				id  Identity
				err error
			)
			if secret != "" {
				id, err = fromBearer(r, []byte(secret))
				if err != nil {
					writeError(w, r, apperr.KindUnauthorized, "Invalid or expired token.")
					return
				}
			} else {
				id = fromHeaders(r)
			}

			if id.UserID == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func fromBearer(r *http.Request, secret []byte) (Identity, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return Identity{}, nil
	}
	raw, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return Identity{}, errors.New("authorization header is not a bearer token")
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, err
	}
	if claims.Subject == "" {
		return Identity{}, errors.New("token has no subject")
	}
	return Identity{UserID: claims.Subject, Email: claims.Email, Roles: cleanRoles(claims.Roles)}, nil
}

func fromHeaders(r *http.Request) Identity {
	return Identity{
		UserID: strings.TrimSpace(r.Header.Get(HeaderUserID)),
		Email:  strings.TrimSpace(r.Header.Get(HeaderUserEmail)),
		Roles:  cleanRoles(strings.Split(r.Header.Get(HeaderUserRoles), ",")),
	}
}

func cleanRoles(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			writeError(w, r, apperr.KindUnauthorized, "Authentication required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission lets the request through when any of the caller's roles
// grants one of perms.
func RequirePermission(reg *roles.Registry, perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetIdentity(r.Context())
			if !ok {
				writeError(w, r, apperr.KindUnauthorized, "Authentication required.")
				return
			}
			for _, p := range perms {
				if reg.Grants(id.Roles, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, r, apperr.KindForbidden, "You do not have permission to perform this action.")
		})
	}
}
