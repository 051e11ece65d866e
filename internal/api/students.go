package api

import (
	"net/http"
	"strings"

	"github.com/avagyan/studenthub/internal/domain"
)

// ListStudents returns all students, optionally filtered by ?name= substring.
func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	if name := strings.TrimSpace(r.URL.Query().Get("name")); name != "" {
		students, err := h.repo.SearchStudentsByName(r.Context(), name)
		if err != nil {
			storeError(w, err, "students")
			return
		}
		JSON(w, http.StatusOK, students)
		return
	}

	students, err := h.repo.ListStudents(r.Context())
	if err != nil {
		storeError(w, err, "students")
		return
	}
	JSON(w, http.StatusOK, students)
}

// CreateStudent creates a student.
func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var student domain.Student
	if err := decodeBody(w, r, &student); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(student.Name) == "" || strings.TrimSpace(student.StudentID) == "" {
		Error(w, http.StatusBadRequest, "name and student_id are required")
		return
	}
	if student.Status == "" {
		student.Status = domain.StudentStatusActive
	}
	if !domain.ValidStudentStatus(student.Status) {
		Error(w, http.StatusBadRequest, "invalid status")
		return
	}
	if student.FinancialAidStatus == "" {
		student.FinancialAidStatus = domain.FinancialAidNone
	}
	if student.AcademicStatus == "" {
		student.AcademicStatus = domain.AcademicGoodStanding
	}

	if _, err := h.repo.CreateStudent(r.Context(), &student); err != nil {
		storeError(w, err, "student")
		return
	}
	JSON(w, http.StatusCreated, student)
}

// GetStudent returns one student by id.
func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	student, err := h.repo.GetStudent(r.Context(), id)
	if err != nil {
		storeError(w, err, "student")
		return
	}
	JSON(w, http.StatusOK, student)
}

// UpdateStudent replaces a student record.
func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	var student domain.Student
	if err := decodeBody(w, r, &student); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if student.Status != "" && !domain.ValidStudentStatus(student.Status) {
		Error(w, http.StatusBadRequest, "invalid status")
		return
	}
	student.ID = id

	if err := h.repo.UpdateStudent(r.Context(), &student); err != nil {
		storeError(w, err, "student")
		return
	}
	JSON(w, http.StatusOK, student)
}

// DeleteStudent soft-deletes a student.
func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.DeleteStudent(r.Context(), id); err != nil {
		storeError(w, err, "student")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStudentProfile returns a student with all related records.
func (h *Handler) GetStudentProfile(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	profile, err := h.repo.GetStudentProfile(r.Context(), id)
	if err != nil {
		storeError(w, err, "student")
		return
	}
	JSON(w, http.StatusOK, profile)
}
