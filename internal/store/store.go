// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/avagyan/studenthub/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist or has been
// soft-deleted.
var ErrNotFound = errors.New("record not found")

// Category names accepted by Count.
const (
	CategoryStudents    = "students"
	CategoryCourses     = "courses"
	CategoryGrades      = "grades"
	CategoryAttendance  = "attendance"
	CategoryPerformance = "performance"
	CategoryInternships = "internships"
)

// Counts holds per-entity record counts for the dashboard.
type Counts struct {
	Students    int64 `json:"students"`
	Courses     int64 `json:"courses"`
	Grades      int64 `json:"grades"`
	Attendance  int64 `json:"attendance"`
	Performance int64 `json:"performance"`
	Internships int64 `json:"internships"`
}

// StudentProfile aggregates a student with all related records.
type StudentProfile struct {
	Student     *domain.Student       `json:"student"`
	Grades      []*domain.Grade       `json:"grades"`
	Attendance  []*domain.Attendance  `json:"attendance"`
	Performance []*domain.Performance `json:"performance"`
	Internships []*domain.Internship  `json:"internships"`
}

// StudentStore persists students.
type StudentStore interface {
	ListStudents(ctx context.Context) ([]*domain.Student, error)
	GetStudent(ctx context.Context, id int64) (*domain.Student, error)
	CreateStudent(ctx context.Context, s *domain.Student) (int64, error)
	UpdateStudent(ctx context.Context, s *domain.Student) error
	DeleteStudent(ctx context.Context, id int64) error

	// SearchStudentsByName returns non-deleted students whose name contains
	// the given text, case-insensitively, ordered by id ascending.
	SearchStudentsByName(ctx context.Context, name string) ([]*domain.Student, error)

	// ListTopStudentsByGPA returns at most limit students ordered by GPA
	// descending, ties broken by id ascending.
	ListTopStudentsByGPA(ctx context.Context, limit int) ([]*domain.Student, error)

	// ListStudentsByStatus returns students with the given enrollment status.
	ListStudentsByStatus(ctx context.Context, status string) ([]*domain.Student, error)

	// ListStudentsByAcademicStatus returns students with the given academic
	// standing (e.g. Probation).
	ListStudentsByAcademicStatus(ctx context.Context, status string) ([]*domain.Student, error)

	// ListScholarshipStudents returns students with a scholarship awarded.
	ListScholarshipStudents(ctx context.Context) ([]*domain.Student, error)

	// ListStudentsWithFailedCourse returns students having at least one
	// performance record with status Failed.
	ListStudentsWithFailedCourse(ctx context.Context) ([]*domain.Student, error)
}

// CourseStore persists courses.
type CourseStore interface {
	ListCourses(ctx context.Context) ([]*domain.Course, error)
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
	CreateCourse(ctx context.Context, c *domain.Course) (int64, error)
	UpdateCourse(ctx context.Context, c *domain.Course) error
	DeleteCourse(ctx context.Context, id int64) error
}

// RecordStore persists per-student academic records.
type RecordStore interface {
	ListGrades(ctx context.Context) ([]*domain.Grade, error)
	GetGrade(ctx context.Context, id int64) (*domain.Grade, error)
	CreateGrade(ctx context.Context, g *domain.Grade) (int64, error)
	UpdateGrade(ctx context.Context, g *domain.Grade) error
	DeleteGrade(ctx context.Context, id int64) error
	ListGradesByStudent(ctx context.Context, studentID int64) ([]*domain.Grade, error)

	ListAttendance(ctx context.Context) ([]*domain.Attendance, error)
	GetAttendance(ctx context.Context, id int64) (*domain.Attendance, error)
	CreateAttendance(ctx context.Context, a *domain.Attendance) (int64, error)
	UpdateAttendance(ctx context.Context, a *domain.Attendance) error
	DeleteAttendance(ctx context.Context, id int64) error
	ListAttendanceByStudent(ctx context.Context, studentID int64) ([]*domain.Attendance, error)

	ListPerformance(ctx context.Context) ([]*domain.Performance, error)
	GetPerformance(ctx context.Context, id int64) (*domain.Performance, error)
	CreatePerformance(ctx context.Context, p *domain.Performance) (int64, error)
	UpdatePerformance(ctx context.Context, p *domain.Performance) error
	DeletePerformance(ctx context.Context, id int64) error
	ListPerformanceByStudent(ctx context.Context, studentID int64) ([]*domain.Performance, error)

	ListInternships(ctx context.Context) ([]*domain.Internship, error)
	GetInternship(ctx context.Context, id int64) (*domain.Internship, error)
	CreateInternship(ctx context.Context, i *domain.Internship) (int64, error)
	UpdateInternship(ctx context.Context, i *domain.Internship) error
	DeleteInternship(ctx context.Context, id int64) error
	ListInternshipsByStudent(ctx context.Context, studentID int64) ([]*domain.Internship, error)
}

// Repository defines the full persistence surface of the service.
type Repository interface {
	StudentStore
	CourseStore
	RecordStore

	// Count returns the number of non-deleted records in the given category.
	// The category must be one of the Category constants.
	Count(ctx context.Context, category string) (int64, error)

	// CountAll returns per-entity counts for the dashboard.
	CountAll(ctx context.Context) (*Counts, error)

	// GetStudentProfile aggregates a student with all related records.
	GetStudentProfile(ctx context.Context, id int64) (*StudentProfile, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
