package domain

import (
	"time"
)

// Exam types for grades.
const (
	ExamTypeMidTerm    = "Mid-Term"
	ExamTypeFinal      = "Final"
	ExamTypeContinuous = "Continuous"
)

// Grade records marks a student obtained in a course.
type Grade struct {
	ID            int64   `json:"id"`
	StudentID     int64   `json:"student_id"`
	StudentName   string  `json:"student_name,omitempty"`
	CourseID      int64   `json:"course_id"`
	Grade         string  `json:"grade,omitempty"`
	MarksObtained float64 `json:"marks_obtained"`
	TotalMarks    float64 `json:"total_marks"`
	ExamType      string  `json:"exam_type,omitempty"`
	Semester      string  `json:"semester,omitempty"`
	AcademicYear  string  `json:"academic_year,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Percentage returns the obtained marks as a percentage of the total.
// Returns 0 when no total is recorded.
func (g *Grade) Percentage() float64 {
	if g.TotalMarks <= 0 {
		return 0
	}
	return g.MarksObtained / g.TotalMarks * 100
}

// Attendance status values.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLate    = "Late"
)

// Attendance records a student's attendance in a course.
type Attendance struct {
	ID              int64  `json:"id"`
	StudentID       int64  `json:"student_id"`
	StudentName     string `json:"student_name,omitempty"`
	CourseID        int64  `json:"course_id"`
	TotalClasses    int    `json:"total_classes"`
	AttendedClasses int    `json:"attended_classes"`
	Date            string `json:"date,omitempty"`
	Status          string `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Percentage returns attended classes as a percentage of total classes.
// Returns 0 when no classes are recorded.
func (a *Attendance) Percentage() float64 {
	if a.TotalClasses <= 0 {
		return 0
	}
	return float64(a.AttendedClasses) / float64(a.TotalClasses) * 100
}

// Performance status values.
const (
	PerformanceCompleted = "Completed"
	PerformanceOngoing   = "Ongoing"
	PerformanceFailed    = "Failed"
)

// Performance records a student's standing in a course for a semester.
type Performance struct {
	ID           int64   `json:"id"`
	StudentID    int64   `json:"student_id"`
	StudentName  string  `json:"student_name,omitempty"`
	CourseID     int64   `json:"course_id"`
	GPA          float64 `json:"gpa"`
	Status       string  `json:"status"`
	Semester     string  `json:"semester,omitempty"`
	AcademicYear string  `json:"academic_year,omitempty"`
	OverallGPA   float64 `json:"overall_gpa"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Band returns a coarse performance label derived from the GPA.
func (p *Performance) Band() string {
	switch {
	case p.GPA >= 3.5:
		return "Excellent"
	case p.GPA >= 2.0:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

// Internship records a student's internship placement.
type Internship struct {
	ID          int64  `json:"id"`
	StudentID   int64  `json:"student_id"`
	StudentName string `json:"student_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Role        string `json:"role,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
