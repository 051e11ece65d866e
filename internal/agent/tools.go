package agent

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/avagyan/studenthub/internal/domain"
	"github.com/avagyan/studenthub/internal/llm"
	"github.com/avagyan/studenthub/internal/store"
)

// Tool names. The catalog is a closed set: anything outside it is rejected
// before dispatch.
const (
	ToolStudentDetails  = "get_student_details"
	ToolCountRecords    = "count_records"
	ToolTopStudents     = "top_students_by_gpa"
	ToolStudentsByGroup = "list_students_by_filter"
	ToolStudentRecords  = "get_student_records"
)

// Student list filters accepted by list_students_by_filter.
const (
	FilterActive       = "active"
	FilterGraduated    = "graduated"
	FilterOnLeave      = "on_leave"
	FilterScholarship  = "scholarship"
	FilterFailedCourse = "failed_course"
	FilterProbation    = "probation"
)

// Record types accepted by get_student_records. Each maps to exactly one
// store relation.
const (
	RecordsAttendance  = "attendance"
	RecordsGrades      = "grades"
	RecordsPerformance = "performance"
	RecordsInternships = "internships"
)

const defaultTopLimit = 5

// Directory is the read-only store surface the tools consume. All methods
// are idempotent and side-effect free, so retries are always safe.
type Directory interface {
	SearchStudentsByName(ctx context.Context, name string) ([]*domain.Student, error)
	Count(ctx context.Context, category string) (int64, error)
	ListTopStudentsByGPA(ctx context.Context, limit int) ([]*domain.Student, error)
	ListStudentsByStatus(ctx context.Context, status string) ([]*domain.Student, error)
	ListStudentsByAcademicStatus(ctx context.Context, status string) ([]*domain.Student, error)
	ListScholarshipStudents(ctx context.Context) ([]*domain.Student, error)
	ListStudentsWithFailedCourse(ctx context.Context) ([]*domain.Student, error)
	ListGradesByStudent(ctx context.Context, studentID int64) ([]*domain.Grade, error)
	ListAttendanceByStudent(ctx context.Context, studentID int64) ([]*domain.Attendance, error)
	ListPerformanceByStudent(ctx context.Context, studentID int64) ([]*domain.Performance, error)
	ListInternshipsByStudent(ctx context.Context, studentID int64) ([]*domain.Internship, error)
}

// handler executes one validated tool call. It returns a JSON-serializable
// payload or a *ToolError; nothing else crosses the boundary.
type handler func(ctx context.Context, args json.RawMessage) (any, *ToolError)

// Descriptor describes one tool: its name, what it does, and the JSON schema
// of its arguments.
type Descriptor struct {
	Name        string
	Description string
	Parameters  map[string]any
	run         handler
}

// Registry is the immutable tool catalog, built once at startup and shared
// by every session.
type Registry struct {
	tools map[string]Descriptor
	order []string
}

// NewRegistry builds the tool catalog over the given directory.
func NewRegistry(dir Directory) *Registry {
	r := &Registry{tools: make(map[string]Descriptor)}
	for _, d := range catalog(dir) {
		r.tools[d.Name] = d
		r.order = append(r.order, d.Name)
	}
	sort.Strings(r.order)
	return r
}

// Has reports whether name is in the catalog.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Specs returns the tool specifications in stable order, for the model.
func (r *Registry) Specs() []llm.ToolSpec {
	specs := make([]llm.ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		d := r.tools[name]
		specs = append(specs, llm.ToolSpec{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  d.Parameters,
		})
	}
	return specs
}

// Invoke runs one tool call and returns its JSON payload. Failures are
// normalized to *ToolError; handler panics become internal errors.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (payload json.RawMessage, terr *ToolError) {
	d, ok := r.tools[name]
	if !ok {
		return nil, invalidArgsf("tool %q is not in the catalog", name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			payload, terr = nil, internalf("tool %s panicked: %v", name, rec)
		}
	}()

	result, toolErr := d.run(ctx, args)
	if toolErr != nil {
		return nil, toolErr
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, internalf("encode %s result: %v", name, err)
	}
	return data, nil
}

// studentSummary is the compact row shape returned by list tools.
type studentSummary struct {
	ID         int64   `json:"id"`
	StudentID  string  `json:"student_id"`
	Name       string  `json:"name"`
	Department string  `json:"department,omitempty"`
	Status     string  `json:"status"`
	GPA        float64 `json:"gpa"`
}

func summarize(students []*domain.Student) []studentSummary {
	out := make([]studentSummary, 0, len(students))
	for _, s := range students {
		out = append(out, studentSummary{
			ID:         s.ID,
			StudentID:  s.StudentID,
			Name:       s.Name,
			Department: s.Department,
			Status:     s.Status,
			GPA:        s.GPA,
		})
	}
	return out
}

func decodeArgs(args json.RawMessage, dst any) *ToolError {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, dst); err != nil {
		return invalidArgsf("malformed arguments: %v", err)
	}
	return nil
}

// resolveStudent applies the single lookup policy shared by name-addressed
// tools: exactly one case-insensitive substring match wins; zero is NotFound;
// more than one is AmbiguousMatch carrying the candidates, never a silent
// first pick.
func resolveStudent(ctx context.Context, dir Directory, name string) (*domain.Student, *ToolError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidArgsf("name must not be empty")
	}

	matches, err := dir.SearchStudentsByName(ctx, name)
	if err != nil {
		return nil, internalf("search students: %v", err)
	}
	switch len(matches) {
	case 0:
		return nil, notFoundf("no student matching %q", name)
	case 1:
		return matches[0], nil
	}

	candidates := make([]string, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, m.Name)
	}
	return nil, ambiguousf("%d students match %q: %s", len(matches), name, strings.Join(candidates, ", "))
}

func catalog(dir Directory) []Descriptor {
	return []Descriptor{
		{
			Name:        ToolStudentDetails,
			Description: "Look up one student by name (case-insensitive substring match) and return their full record.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "description": "Full or partial student name"},
				},
				"required": []string{"name"},
			},
			run: func(ctx context.Context, args json.RawMessage) (any, *ToolError) {
				var in struct {
					Name string `json:"name"`
				}
				if terr := decodeArgs(args, &in); terr != nil {
					return nil, terr
				}
				student, terr := resolveStudent(ctx, dir, in.Name)
				if terr != nil {
					return nil, terr
				}
				return student, nil
			},
		},
		{
			Name:        ToolCountRecords,
			Description: "Count records in one category: students, courses, grades, attendance, performance, or internships.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"category": map[string]any{
						"type": "string",
						"enum": []string{
							store.CategoryStudents, store.CategoryCourses,
							store.CategoryGrades, store.CategoryAttendance,
							store.CategoryPerformance, store.CategoryInternships,
						},
					},
				},
				"required": []string{"category"},
			},
			run: func(ctx context.Context, args json.RawMessage) (any, *ToolError) {
				var in struct {
					Category string `json:"category"`
				}
				if terr := decodeArgs(args, &in); terr != nil {
					return nil, terr
				}
				switch in.Category {
				case store.CategoryStudents, store.CategoryCourses,
					store.CategoryGrades, store.CategoryAttendance,
					store.CategoryPerformance, store.CategoryInternships:
				default:
					return nil, invalidArgsf("unknown category %q", in.Category)
				}
				n, err := dir.Count(ctx, in.Category)
				if err != nil {
					return nil, internalf("count %s: %v", in.Category, err)
				}
				return map[string]any{"category": in.Category, "count": n}, nil
			},
		},
		{
			Name:        ToolTopStudents,
			Description: "List the top students by GPA, highest first.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of students to return (default 5)",
					},
				},
			},
			run: func(ctx context.Context, args json.RawMessage) (any, *ToolError) {
				var in struct {
					Limit *int `json:"limit"`
				}
				if terr := decodeArgs(args, &in); terr != nil {
					return nil, terr
				}
				limit := defaultTopLimit
				if in.Limit != nil {
					limit = *in.Limit
				}
				if limit < 0 {
					return nil, invalidArgsf("limit must not be negative, got %d", limit)
				}
				students, err := dir.ListTopStudentsByGPA(ctx, limit)
				if err != nil {
					return nil, internalf("list top students: %v", err)
				}
				return summarize(students), nil
			},
		},
		{
			Name:        ToolStudentsByGroup,
			Description: "List students matching a predefined filter: active, graduated, on_leave, scholarship, failed_course, or probation.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"filter": map[string]any{
						"type": "string",
						"enum": []string{
							FilterActive, FilterGraduated, FilterOnLeave,
							FilterScholarship, FilterFailedCourse, FilterProbation,
						},
					},
				},
				"required": []string{"filter"},
			},
			run: func(ctx context.Context, args json.RawMessage) (any, *ToolError) {
				var in struct {
					Filter string `json:"filter"`
				}
				if terr := decodeArgs(args, &in); terr != nil {
					return nil, terr
				}

				var (
					students []*domain.Student
					err      error
				)
				switch in.Filter {
				case FilterActive:
					students, err = dir.ListStudentsByStatus(ctx, domain.StudentStatusActive)
				case FilterGraduated:
					students, err = dir.ListStudentsByStatus(ctx, domain.StudentStatusGraduated)
				case FilterOnLeave:
					students, err = dir.ListStudentsByStatus(ctx, domain.StudentStatusOnLeave)
				case FilterScholarship:
					students, err = dir.ListScholarshipStudents(ctx)
				case FilterFailedCourse:
					students, err = dir.ListStudentsWithFailedCourse(ctx)
				case FilterProbation:
					students, err = dir.ListStudentsByAcademicStatus(ctx, domain.AcademicProbation)
				default:
					return nil, invalidArgsf("unknown filter %q", in.Filter)
				}
				if err != nil {
					return nil, internalf("list students by %s: %v", in.Filter, err)
				}
				return summarize(students), nil
			},
		},
		{
			Name:        ToolStudentRecords,
			Description: "Fetch one student's related records: attendance, grades, performance, or internships.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "description": "Full or partial student name"},
					"record_type": map[string]any{
						"type": "string",
						"enum": []string{
							RecordsAttendance, RecordsGrades,
							RecordsPerformance, RecordsInternships,
						},
					},
				},
				"required": []string{"name", "record_type"},
			},
			run: func(ctx context.Context, args json.RawMessage) (any, *ToolError) {
				var in struct {
					Name       string `json:"name"`
					RecordType string `json:"record_type"`
				}
				if terr := decodeArgs(args, &in); terr != nil {
					return nil, terr
				}
				switch in.RecordType {
				case RecordsAttendance, RecordsGrades, RecordsPerformance, RecordsInternships:
				default:
					return nil, invalidArgsf("unknown record type %q", in.RecordType)
				}

				student, terr := resolveStudent(ctx, dir, in.Name)
				if terr != nil {
					return nil, terr
				}

				var (
					records any
					err     error
				)
				switch in.RecordType {
				case RecordsAttendance:
					records, err = dir.ListAttendanceByStudent(ctx, student.ID)
				case RecordsGrades:
					records, err = dir.ListGradesByStudent(ctx, student.ID)
				case RecordsPerformance:
					records, err = dir.ListPerformanceByStudent(ctx, student.ID)
				case RecordsInternships:
					records, err = dir.ListInternshipsByStudent(ctx, student.ID)
				}
				if err != nil {
					return nil, internalf("fetch %s for %s: %v", in.RecordType, student.Name, err)
				}
				return map[string]any{
					"student_name": student.Name,
					"record_type":  in.RecordType,
					"records":      records,
				}, nil
			},
		},
	}
}
