package sandbox

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/muurk/userdeck/internal/directory"
	"github.com/muurk/userdeck/internal/logging"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// Handler serves the user directory REST API over a Store
type Handler struct {
	store *Store
}

// NewHandler creates a handler backed by store
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Router returns the complete HTTP handler with middleware
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(Recoverer)

	r.Get("/healthz", h.Healthz)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

// Healthz handles GET /healthz
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "users": h.store.Len()})
}

// List handles GET /users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.List())
}

// Get handles GET /users/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.Get(pathID(r))
	if err != nil {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Create handles POST /users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeUser(w, r)
	if !ok {
		return
	}

	created := h.store.Create(draft)
	logging.Debug("User created",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("id", created.ID.String()),
	)
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := decodeUser(w, r)
	if !ok {
		return
	}

	updated, err := h.store.Replace(pathID(r), user)
	if errors.Is(err, ErrNotFound) {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(pathID(r)); err != nil {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func pathID(r *http.Request) directory.ID {
	raw := chi.URLParam(r, "id")
	// chi routes on RawPath when it is set, so the param is still escaped
	if r.URL.RawPath != "" {
		if id, err := url.PathUnescape(raw); err == nil {
			raw = id
		}
	}
	return directory.ParseID(raw)
}

func decodeUser(w http.ResponseWriter, r *http.Request) (directory.User, bool) {
	var user directory.User
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return directory.User{}, false
	}
	return user, true
}

func writeNotFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "user not found")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("Failed to write response", zap.Error(err))
	}
}
