// Package domain contains core domain types for the student records service.
package domain

import (
	"time"
)

// Student status values.
const (
	StudentStatusActive    = "Active"
	StudentStatusGraduated = "Graduated"
	StudentStatusOnLeave   = "On Leave"
)

// Academic standing values.
const (
	AcademicGoodStanding = "Good Standing"
	AcademicProbation    = "Probation"
)

// Financial aid values.
const (
	FinancialAidNone    = "None"
	FinancialAidFull    = "Full"
	FinancialAidPartial = "Partial"
)

// Student represents an enrolled (or formerly enrolled) student.
type Student struct {
	ID                 int64   `json:"id"`
	StudentID          string  `json:"student_id"`
	Name               string  `json:"name"`
	Age                int     `json:"age,omitempty"`
	Email              string  `json:"email,omitempty"`
	PhoneNumber        string  `json:"phone_number,omitempty"`
	Address            string  `json:"address,omitempty"`
	Department         string  `json:"department,omitempty"`
	EnrollmentYear     int     `json:"enrollment_year,omitempty"`
	GraduationYear     int     `json:"graduation_year,omitempty"`
	Gender             string  `json:"gender,omitempty"`
	Nationality        string  `json:"nationality,omitempty"`
	GuardianName       string  `json:"guardian_name,omitempty"`
	GuardianPhone      string  `json:"guardian_phone,omitempty"`
	ScholarshipAwarded bool    `json:"scholarship_awarded"`
	ScholarshipName    string  `json:"scholarship_name,omitempty"`
	FinancialAidStatus string  `json:"financial_aid_status"`
	Status             string  `json:"status"`
	HasInternship      bool    `json:"has_internship"`
	GPA                float64 `json:"gpa"`
	AcademicStatus     string  `json:"academic_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the student is currently enrolled.
func (s *Student) IsActive() bool {
	return s.Status == StudentStatusActive
}

// ScholarshipLabel returns a human-readable scholarship description.
func (s *Student) ScholarshipLabel() string {
	if !s.ScholarshipAwarded {
		return "none"
	}
	if s.ScholarshipName != "" {
		return s.ScholarshipName
	}
	return "awarded"
}

// ValidStudentStatus reports whether status is one of the known values.
func ValidStudentStatus(status string) bool {
	switch status {
	case StudentStatusActive, StudentStatusGraduated, StudentStatusOnLeave:
		return true
	}
	return false
}
