package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avagyan/studenthub/internal/domain"
)

const courseColumns = `id, name, course_code, description, department,
	credit_hours, instructor_name, schedule, level, is_active,
	created_at, updated_at`

func scanCourse(row rowScanner) (*domain.Course, error) {
	var c domain.Course
	var createdAt, updatedAt int64

	err := row.Scan(
		&c.ID, &c.Name, &c.CourseCode, &c.Description, &c.Department,
		&c.CreditHours, &c.InstructorName, &c.Schedule, &c.Level, &c.IsActive,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = time.Unix(createdAt, 0)
	c.UpdatedAt = time.Unix(updatedAt, 0)
	return &c, nil
}

// ListCourses returns all non-deleted courses ordered by id.
func (s *SQLiteStore) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE is_deleted = 0 ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var courses []*domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return courses, nil
}

// GetCourse retrieves a course by id.
func (s *SQLiteStore) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = ? AND is_deleted = 0`
	c, err := scanCourse(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan course row: %w", err)
	}
	return c, nil
}

// CreateCourse inserts a new course and returns its id. A course code is
// generated when none is supplied.
func (s *SQLiteStore) CreateCourse(ctx context.Context, c *domain.Course) (int64, error) {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	c.EnsureCourseCode(now)

	query := `
	INSERT INTO courses (name, course_code, description, department,
		credit_hours, instructor_name, schedule, level, is_active,
		created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query,
		c.Name, c.CourseCode, c.Description, c.Department, c.CreditHours,
		c.InstructorName, c.Schedule, c.Level, c.IsActive,
		c.CreatedAt.Unix(), c.UpdatedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert course: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("course insert id: %w", err)
	}
	c.ID = id
	return id, nil
}

// UpdateCourse updates an existing course.
func (s *SQLiteStore) UpdateCourse(ctx context.Context, c *domain.Course) error {
	query := `
	UPDATE courses SET name = ?, course_code = ?, description = ?,
		department = ?, credit_hours = ?, instructor_name = ?, schedule = ?,
		level = ?, is_active = ?, updated_at = ?
	WHERE id = ? AND is_deleted = 0`

	res, err := s.db.ExecContext(ctx, query,
		c.Name, c.CourseCode, c.Description, c.Department, c.CreditHours,
		c.InstructorName, c.Schedule, c.Level, c.IsActive,
		time.Now().Unix(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return requireRowAffected(res, "course")
}

// DeleteCourse soft-deletes a course.
func (s *SQLiteStore) DeleteCourse(ctx context.Context, id int64) error {
	return s.softDelete(ctx, "courses", "course", id)
}
