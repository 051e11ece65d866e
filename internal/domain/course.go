package domain

import (
	"fmt"
	"strings"
	"time"
)

// Course levels.
const (
	CourseLevelUndergraduate = "Undergraduate"
	CourseLevelGraduate      = "Graduate"
)

// Course represents a course offering.
type Course struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	CourseCode     string `json:"course_code,omitempty"`
	Description    string `json:"description,omitempty"`
	Department     string `json:"department,omitempty"`
	CreditHours    int    `json:"credit_hours,omitempty"`
	InstructorName string `json:"instructor_name,omitempty"`
	Schedule       string `json:"schedule,omitempty"`
	Level          string `json:"level,omitempty"`
	IsActive       bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GenerateCourseCode derives a course code from the course name and a
// timestamp: the first four letters of the name, upper-cased, followed by the
// leading six digits of the unix timestamp.
func GenerateCourseCode(name string, now time.Time) string {
	prefix := []rune(strings.ToUpper(name))
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	ts := fmt.Sprintf("%d", now.Unix())
	if len(ts) > 6 {
		ts = ts[:6]
	}
	return string(prefix) + ts
}

// EnsureCourseCode fills in a generated course code if none is set.
func (c *Course) EnsureCourseCode(now time.Time) {
	if c.CourseCode == "" {
		c.CourseCode = GenerateCourseCode(c.Name, now)
	}
}
