package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/middleware"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/task"
)

// owner is only called behind RequireAuth.
func owner(r *http.Request) string {
	id, _ := middleware.GetIdentity(r.Context())
	return id.UserID
}

func (h *Handler) TaskDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	stats, err := h.tasks.Dashboard(ctx, owner(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payload{"stats": stats})
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter := task.ParseFilter(r.URL.Query().Get("filter"))

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	tasks, err := h.tasks.List(ctx, owner(r), filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payload{"filter": filter, "tasks": tasks})
}

func (h *Handler) QuickCreateTask(w http.ResponseWriter, r *http.Request) {
	var in task.QuickCreateInput
	if err := bind(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	t, stats, err := h.tasks.QuickCreate(ctx, owner(r), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "", payload{"task": t, "stats": stats})
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var in task.UpdateInput
	if err := bind(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	t, err := h.tasks.Update(ctx, owner(r), id, in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Task updated.", payload{"task": t})
}

func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status, stats, err := h.tasks.Toggle(ctx, owner(r), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payload{"newStatus": status, "stats": stats})
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	stats, err := h.tasks.Delete(ctx, owner(r), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payload{"stats": stats})
}
