package api

import (
	"net/http"
	"strings"

	"github.com/avagyan/studenthub/internal/domain"
)

// ListCourses returns all courses.
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.repo.ListCourses(r.Context())
	if err != nil {
		storeError(w, err, "courses")
		return
	}
	JSON(w, http.StatusOK, courses)
}

// CreateCourse creates a course. A course code is generated when omitted.
func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var course domain.Course
	if err := decodeBody(w, r, &course); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(course.Name) == "" {
		Error(w, http.StatusBadRequest, "name is required")
		return
	}

	if _, err := h.repo.CreateCourse(r.Context(), &course); err != nil {
		storeError(w, err, "course")
		return
	}
	JSON(w, http.StatusCreated, course)
}

// GetCourse returns one course by id.
func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	course, err := h.repo.GetCourse(r.Context(), id)
	if err != nil {
		storeError(w, err, "course")
		return
	}
	JSON(w, http.StatusOK, course)
}

// UpdateCourse replaces a course record.
func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	var course domain.Course
	if err := decodeBody(w, r, &course); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	course.ID = id

	if err := h.repo.UpdateCourse(r.Context(), &course); err != nil {
		storeError(w, err, "course")
		return
	}
	JSON(w, http.StatusOK, course)
}

// DeleteCourse soft-deletes a course.
func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.DeleteCourse(r.Context(), id); err != nil {
		storeError(w, err, "course")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
