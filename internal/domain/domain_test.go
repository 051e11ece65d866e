package domain

import (
	"testing"
	"time"
	"unicode/utf8"
)

func TestGenerateCourseCode(t *testing.T) {
	t.Parallel()

	now := time.Unix(1735689600, 0) // 2025-01-01
	code := GenerateCourseCode("Databases", now)
	if code != "DATA173568" {
		t.Errorf("unexpected course code %q", code)
	}

	// Short names keep their full upper-cased form.
	code = GenerateCourseCode("AI", now)
	if code != "AI173568" {
		t.Errorf("unexpected course code %q", code)
	}
}

func TestGenerateCourseCodeMultibyteName(t *testing.T) {
	t.Parallel()

	now := time.Unix(1735689600, 0)
	code := GenerateCourseCode("Ökonometrie", now)
	if !utf8.ValidString(code) {
		t.Fatalf("course code is not valid UTF-8: %q", code)
	}
	if code != "ÖKON173568" {
		t.Errorf("unexpected course code %q", code)
	}

	// Names shorter than four characters after decoding stay intact.
	code = GenerateCourseCode("数学", now)
	if !utf8.ValidString(code) || code != "数学173568" {
		t.Errorf("unexpected course code %q", code)
	}
}

func TestEnsureCourseCode(t *testing.T) {
	t.Parallel()

	c := &Course{Name: "Statistics", CourseCode: "STAT101"}
	c.EnsureCourseCode(time.Now())
	if c.CourseCode != "STAT101" {
		t.Errorf("existing code must be kept, got %q", c.CourseCode)
	}

	c = &Course{Name: "Statistics"}
	c.EnsureCourseCode(time.Now())
	if c.CourseCode == "" {
		t.Error("expected generated code")
	}
}

func TestGradePercentage(t *testing.T) {
	t.Parallel()

	g := &Grade{MarksObtained: 45, TotalMarks: 60}
	if got := g.Percentage(); got != 75 {
		t.Errorf("expected 75%%, got %v", got)
	}

	g = &Grade{MarksObtained: 45}
	if got := g.Percentage(); got != 0 {
		t.Errorf("expected 0 for zero total, got %v", got)
	}
}

func TestAttendancePercentage(t *testing.T) {
	t.Parallel()

	a := &Attendance{TotalClasses: 40, AttendedClasses: 30}
	if got := a.Percentage(); got != 75 {
		t.Errorf("expected 75%%, got %v", got)
	}

	a = &Attendance{}
	if got := a.Percentage(); got != 0 {
		t.Errorf("expected 0 for zero classes, got %v", got)
	}
}

func TestPerformanceBand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		gpa  float64
		want string
	}{
		{4.0, "Excellent"},
		{3.5, "Excellent"},
		{3.49, "Good"},
		{2.0, "Good"},
		{1.99, "Needs Improvement"},
		{0, "Needs Improvement"},
	}
	for _, tc := range cases {
		p := &Performance{GPA: tc.gpa}
		if got := p.Band(); got != tc.want {
			t.Errorf("Band(%v) = %q, want %q", tc.gpa, got, tc.want)
		}
	}
}

func TestScholarshipLabel(t *testing.T) {
	t.Parallel()

	s := &Student{}
	if got := s.ScholarshipLabel(); got != "none" {
		t.Errorf("expected none, got %q", got)
	}

	s = &Student{ScholarshipAwarded: true}
	if got := s.ScholarshipLabel(); got != "awarded" {
		t.Errorf("expected awarded, got %q", got)
	}

	s = &Student{ScholarshipAwarded: true, ScholarshipName: "Merit Scholarship"}
	if got := s.ScholarshipLabel(); got != "Merit Scholarship" {
		t.Errorf("expected scholarship name, got %q", got)
	}
}

func TestValidStudentStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []string{StudentStatusActive, StudentStatusGraduated, StudentStatusOnLeave} {
		if !ValidStudentStatus(status) {
			t.Errorf("expected %q to be valid", status)
		}
	}
	if ValidStudentStatus("Expelled") {
		t.Error("expected unknown status to be invalid")
	}
}
