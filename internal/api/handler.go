// Package api provides the HTTP handlers for the student records API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/avagyan/studenthub/internal/store"
	"github.com/go-chi/chi/v5"
)

// maxRequestBodySize caps request bodies at 1MB.
const maxRequestBodySize = 1 << 20

// Handler serves the CRUD endpoints over the record store.
type Handler struct {
	repo store.Repository
}

// NewHandler creates a new Handler.
func NewHandler(repo store.Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts all CRUD routes under /api.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", h.GetDashboard)

		r.Route("/students", func(r chi.Router) {
			r.Get("/", h.ListStudents)
			r.Post("/", h.CreateStudent)
			r.Get("/{id}", h.GetStudent)
			r.Put("/{id}", h.UpdateStudent)
			r.Delete("/{id}", h.DeleteStudent)
			r.Get("/{id}/profile", h.GetStudentProfile)
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.ListCourses)
			r.Post("/", h.CreateCourse)
			r.Get("/{id}", h.GetCourse)
			r.Put("/{id}", h.UpdateCourse)
			r.Delete("/{id}", h.DeleteCourse)
		})

		r.Route("/grades", func(r chi.Router) {
			r.Get("/", h.ListGrades)
			r.Post("/", h.CreateGrade)
			r.Get("/{id}", h.GetGrade)
			r.Put("/{id}", h.UpdateGrade)
			r.Delete("/{id}", h.DeleteGrade)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.ListAttendance)
			r.Post("/", h.CreateAttendance)
			r.Get("/{id}", h.GetAttendance)
			r.Put("/{id}", h.UpdateAttendance)
			r.Delete("/{id}", h.DeleteAttendance)
		})

		r.Route("/performance", func(r chi.Router) {
			r.Get("/", h.ListPerformance)
			r.Post("/", h.CreatePerformance)
			r.Get("/{id}", h.GetPerformance)
			r.Put("/{id}", h.UpdatePerformance)
			r.Delete("/{id}", h.DeletePerformance)
		})

		r.Route("/internships", func(r chi.Router) {
			r.Get("/", h.ListInternships)
			r.Post("/", h.CreateInternship)
			r.Get("/{id}", h.GetInternship)
			r.Put("/{id}", h.UpdateInternship)
			r.Delete("/{id}", h.DeleteInternship)
		})
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// storeError maps a repository failure onto an HTTP error response.
func storeError(w http.ResponseWriter, err error, label string) {
	if errors.Is(err, store.ErrNotFound) {
		Error(w, http.StatusNotFound, label+" not found")
		return
	}
	slog.Error("Store operation failed", "entity", label, "error", err)
	Error(w, http.StatusInternalServerError, "internal error")
}

func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// GetDashboard returns aggregate record counts per entity.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.repo.CountAll(r.Context())
	if err != nil {
		storeError(w, err, "dashboard")
		return
	}
	JSON(w, http.StatusOK, counts)
}
