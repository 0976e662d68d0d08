package httpapi

import (
	"net/http"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/middleware"
)

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.GetIdentity(r.Context())
	writeSuccess(w, http.StatusOK, "", payload{"profile": h.roles.Profile(id.UserID, id.Email, id.Roles)})
}

func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "", payload{"roles": h.roles.All()})
}
