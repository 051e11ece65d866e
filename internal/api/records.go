package api

import (
	"net/http"

	"github.com/avagyan/studenthub/internal/domain"
)

// The four related-record resources share one handler shape: list/create/
// get/update/delete, validated against the referenced student and course.

func (h *Handler) checkStudentExists(w http.ResponseWriter, r *http.Request, studentID int64) bool {
	if _, err := h.repo.GetStudent(r.Context(), studentID); err != nil {
		storeError(w, err, "student")
		return false
	}
	return true
}

// ListGrades returns all grades.
func (h *Handler) ListGrades(w http.ResponseWriter, r *http.Request) {
	grades, err := h.repo.ListGrades(r.Context())
	if err != nil {
		storeError(w, err, "grades")
		return
	}
	JSON(w, http.StatusOK, grades)
}

// CreateGrade creates a grade.
func (h *Handler) CreateGrade(w http.ResponseWriter, r *http.Request) {
	var grade domain.Grade
	if err := decodeBody(w, r, &grade); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if grade.StudentID <= 0 || grade.CourseID <= 0 {
		Error(w, http.StatusBadRequest, "student_id and course_id are required")
		return
	}
	if !h.checkStudentExists(w, r, grade.StudentID) {
		return
	}

	if _, err := h.repo.CreateGrade(r.Context(), &grade); err != nil {
		storeError(w, err, "grade")
		return
	}
	JSON(w, http.StatusCreated, grade)
}

// GetGrade returns one grade by id.
func (h *Handler) GetGrade(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	grade, err := h.repo.GetGrade(r.Context(), id)
	if err != nil {
		storeError(w, err, "grade")
		return
	}
	JSON(w, http.StatusOK, grade)
}

// UpdateGrade replaces a grade record.
func (h *Handler) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	var grade domain.Grade
	if err := decodeBody(w, r, &grade); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	grade.ID = id

	if err := h.repo.UpdateGrade(r.Context(), &grade); err != nil {
		storeError(w, err, "grade")
		return
	}
	JSON(w, http.StatusOK, grade)
}

// DeleteGrade soft-deletes a grade.
func (h *Handler) DeleteGrade(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.DeleteGrade(r.Context(), id); err != nil {
		storeError(w, err, "grade")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAttendance returns all attendance records.
func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.ListAttendance(r.Context())
	if err != nil {
		storeError(w, err, "attendance")
		return
	}
	JSON(w, http.StatusOK, records)
}

// CreateAttendance creates an attendance record.
func (h *Handler) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	var record domain.Attendance
	if err := decodeBody(w, r, &record); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if record.StudentID <= 0 || record.CourseID <= 0 {
		Error(w, http.StatusBadRequest, "student_id and course_id are required")
		return
	}
	if !h.checkStudentExists(w, r, record.StudentID) {
		return
	}
	if record.Status == "" {
		record.Status = domain.AttendanceAbsent
	}

	if _, err := h.repo.CreateAttendance(r.Context(), &record); err != nil {
		storeError(w, err, "attendance")
		return
	}
	JSON(w, http.StatusCreated, record)
}

// GetAttendance returns one attendance record by id.
func (h *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	record, err := h.repo.GetAttendance(r.Context(), id)
	if err != nil {
		storeError(w, err, "attendance")
		return
	}
	JSON(w, http.StatusOK, record)
}

// UpdateAttendance replaces an attendance record.
func (h *Handler) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	var record domain.Attendance
	if err := decodeBody(w, r, &record); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record.ID = id

	if err := h.repo.UpdateAttendance(r.Context(), &record); err != nil {
		storeError(w, err, "attendance")
		return
	}
	JSON(w, http.StatusOK, record)
}

// DeleteAttendance soft-deletes an attendance record.
func (h *Handler) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.DeleteAttendance(r.Context(), id); err != nil {
		storeError(w, err, "attendance")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPerformance returns all performance records.
func (h *Handler) ListPerformance(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.ListPerformance(r.Context())
	if err != nil {
		storeError(w, err, "performance")
		return
	}
	JSON(w, http.StatusOK, records)
}

// CreatePerformance creates a performance record.
func (h *Handler) CreatePerformance(w http.ResponseWriter, r *http.Request) {
	var record domain.Performance
	if err := decodeBody(w, r, &record); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if record.StudentID <= 0 || record.CourseID <= 0 {
		Error(w, http.StatusBadRequest, "student_id and course_id are required")
		return
	}
	if !h.checkStudentExists(w, r, record.StudentID) {
		return
	}
	if record.Status == "" {
		record.Status = domain.PerformanceOngoing
	}

	if _, err := h.repo.CreatePerformance(r.Context(), &record); err != nil {
		storeError(w, err, "performance")
		return
	}
	JSON(w, http.StatusCreated, record)
}

// GetPerformance returns one performance record by id.
func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	record, err := h.repo.GetPerformance(r.Context(), id)
	if err != nil {
		storeError(w, err, "performance")
		return
	}
	JSON(w, http.StatusOK, record)
}

// UpdatePerformance replaces a performance record.
func (h *Handler) UpdatePerformance(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	var record domain.Performance
	if err := decodeBody(w, r, &record); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record.ID = id

	if err := h.repo.UpdatePerformance(r.Context(), &record); err != nil {
		storeError(w, err, "performance")
		return
	}
	JSON(w, http.StatusOK, record)
}

// DeletePerformance soft-deletes a performance record.
func (h *Handler) DeletePerformance(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.DeletePerformance(r.Context(), id); err != nil {
		storeError(w, err, "performance")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListInternships returns all internships.
func (h *Handler) ListInternships(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.ListInternships(r.Context())
	if err != nil {
		storeError(w, err, "internships")
		return
	}
	JSON(w, http.StatusOK, records)
}

// CreateInternship creates an internship.
func (h *Handler) CreateInternship(w http.ResponseWriter, r *http.Request) {
	var record domain.Internship
	if err := decodeBody(w, r, &record); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if record.StudentID <= 0 {
		Error(w, http.StatusBadRequest, "student_id is required")
		return
	}
	if !h.checkStudentExists(w, r, record.StudentID) {
		return
	}

	if _, err := h.repo.CreateInternship(r.Context(), &record); err != nil {
		storeError(w, err, "internship")
		return
	}
	JSON(w, http.StatusCreated, record)
}

// GetInternship returns one internship by id.
func (h *Handler) GetInternship(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	record, err := h.repo.GetInternship(r.Context(), id)
	if err != nil {
		storeError(w, err, "internship")
		return
	}
	JSON(w, http.StatusOK, record)
}

// UpdateInternship replaces an internship record.
func (h *Handler) UpdateInternship(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	var record domain.Internship
	if err := decodeBody(w, r, &record); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record.ID = id

	if err := h.repo.UpdateInternship(r.Context(), &record); err != nil {
		storeError(w, err, "internship")
		return
	}
	JSON(w, http.StatusOK, record)
}

// DeleteInternship soft-deletes an internship.
func (h *Handler) DeleteInternship(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.DeleteInternship(r.Context(), id); err != nil {
		storeError(w, err, "internship")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
