package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avagyan/studenthub/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS students (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		age INTEGER NOT NULL DEFAULT 0,
		email TEXT NOT NULL DEFAULT '',
		phone_number TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		enrollment_year INTEGER NOT NULL DEFAULT 0,
		graduation_year INTEGER NOT NULL DEFAULT 0,
		gender TEXT NOT NULL DEFAULT '',
		nationality TEXT NOT NULL DEFAULT '',
		guardian_name TEXT NOT NULL DEFAULT '',
		guardian_phone TEXT NOT NULL DEFAULT '',
		scholarship_awarded INTEGER NOT NULL DEFAULT 0,
		scholarship_name TEXT NOT NULL DEFAULT '',
		financial_aid_status TEXT NOT NULL DEFAULT 'None',
		status TEXT NOT NULL DEFAULT 'Active',
		has_internship INTEGER NOT NULL DEFAULT 0,
		gpa REAL NOT NULL DEFAULT 0,
		academic_status TEXT NOT NULL DEFAULT 'Good Standing',
		is_deleted INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_students_name ON students(name) WHERE is_deleted = 0;
	CREATE INDEX IF NOT EXISTS idx_students_status ON students(status) WHERE is_deleted = 0;

	CREATE TABLE IF NOT EXISTS courses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		course_code TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		credit_hours INTEGER NOT NULL DEFAULT 0,
		instructor_name TEXT NOT NULL DEFAULT '',
		schedule TEXT NOT NULL DEFAULT '',
		level TEXT NOT NULL DEFAULT '',
		is_active INTEGER NOT NULL DEFAULT 1,
		is_deleted INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS grades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id INTEGER NOT NULL REFERENCES students(id),
		course_id INTEGER NOT NULL REFERENCES courses(id),
		grade TEXT NOT NULL DEFAULT '',
		marks_obtained REAL NOT NULL DEFAULT 0,
		total_marks REAL NOT NULL DEFAULT 0,
		exam_type TEXT NOT NULL DEFAULT '',
		semester TEXT NOT NULL DEFAULT '',
		academic_year TEXT NOT NULL DEFAULT '',
		is_deleted INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_grades_student ON grades(student_id) WHERE is_deleted = 0;

	CREATE TABLE IF NOT EXISTS attendance (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id INTEGER NOT NULL REFERENCES students(id),
		course_id INTEGER NOT NULL REFERENCES courses(id),
		total_classes INTEGER NOT NULL DEFAULT 0,
		attended_classes INTEGER NOT NULL DEFAULT 0,
		date TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Absent',
		is_deleted INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_attendance_student ON attendance(student_id) WHERE is_deleted = 0;

	CREATE TABLE IF NOT EXISTS performance (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id INTEGER NOT NULL REFERENCES students(id),
		course_id INTEGER NOT NULL REFERENCES courses(id),
		gpa REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'Ongoing',
		semester TEXT NOT NULL DEFAULT '',
		academic_year TEXT NOT NULL DEFAULT '',
		overall_gpa REAL NOT NULL DEFAULT 0,
		is_deleted INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_performance_student ON performance(student_id) WHERE is_deleted = 0;

	CREATE TABLE IF NOT EXISTS internships (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id INTEGER NOT NULL REFERENCES students(id),
		company_name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		is_deleted INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_internships_student ON internships(student_id) WHERE is_deleted = 0;
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// Count returns the number of non-deleted records in the given category.
func (s *SQLiteStore) Count(ctx context.Context, category string) (int64, error) {
	var table string
	switch category {
	case CategoryStudents:
		table = "students"
	case CategoryCourses:
		table = "courses"
	case CategoryGrades:
		table = "grades"
	case CategoryAttendance:
		table = "attendance"
	case CategoryPerformance:
		table = "performance"
	case CategoryInternships:
		table = "internships"
	default:
		return 0, fmt.Errorf("unknown category %q", category)
	}

	var n int64
	query := `SELECT COUNT(*) FROM ` + table + ` WHERE is_deleted = 0`
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", category, err)
	}
	return n, nil
}

// CountAll returns per-entity counts for the dashboard.
func (s *SQLiteStore) CountAll(ctx context.Context) (*Counts, error) {
	counts := &Counts{}
	targets := []struct {
		category string
		dst      *int64
	}{
		{CategoryStudents, &counts.Students},
		{CategoryCourses, &counts.Courses},
		{CategoryGrades, &counts.Grades},
		{CategoryAttendance, &counts.Attendance},
		{CategoryPerformance, &counts.Performance},
		{CategoryInternships, &counts.Internships},
	}
	for _, t := range targets {
		n, err := s.Count(ctx, t.category)
		if err != nil {
			return nil, err
		}
		*t.dst = n
	}
	return counts, nil
}

// GetStudentProfile aggregates a student with all related records.
func (s *SQLiteStore) GetStudentProfile(ctx context.Context, id int64) (*StudentProfile, error) {
	student, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	grades, err := s.ListGradesByStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	attendance, err := s.ListAttendanceByStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	performance, err := s.ListPerformanceByStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	internships, err := s.ListInternshipsByStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	return &StudentProfile{
		Student:     student,
		Grades:      grades,
		Attendance:  attendance,
		Performance: performance,
		Internships: internships,
	}, nil
}

const studentColumns = `id, student_id, name, age, email, phone_number, address,
	department, enrollment_year, graduation_year, gender, nationality,
	guardian_name, guardian_phone, scholarship_awarded, scholarship_name,
	financial_aid_status, status, has_internship, gpa, academic_status,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*domain.Student, error) {
	var st domain.Student
	var createdAt, updatedAt int64

	err := row.Scan(
		&st.ID, &st.StudentID, &st.Name, &st.Age, &st.Email, &st.PhoneNumber,
		&st.Address, &st.Department, &st.EnrollmentYear, &st.GraduationYear,
		&st.Gender, &st.Nationality, &st.GuardianName, &st.GuardianPhone,
		&st.ScholarshipAwarded, &st.ScholarshipName, &st.FinancialAidStatus,
		&st.Status, &st.HasInternship, &st.GPA, &st.AcademicStatus,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	st.CreatedAt = time.Unix(createdAt, 0)
	st.UpdatedAt = time.Unix(updatedAt, 0)
	return &st, nil
}

func (s *SQLiteStore) queryStudents(ctx context.Context, query string, args ...any) ([]*domain.Student, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var students []*domain.Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student row: %w", err)
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return students, nil
}

// ListStudents returns all non-deleted students ordered by id.
func (s *SQLiteStore) ListStudents(ctx context.Context) ([]*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE is_deleted = 0 ORDER BY id`
	return s.queryStudents(ctx, query)
}

// GetStudent retrieves a student by internal id.
func (s *SQLiteStore) GetStudent(ctx context.Context, id int64) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = ? AND is_deleted = 0`
	st, err := scanStudent(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan student row: %w", err)
	}
	return st, nil
}

// CreateStudent inserts a new student and returns its id.
func (s *SQLiteStore) CreateStudent(ctx context.Context, st *domain.Student) (int64, error) {
	now := time.Now()
	if st.CreatedAt.IsZero() {
		st.CreatedAt = now
	}
	st.UpdatedAt = now

	query := `
	INSERT INTO students (student_id, name, age, email, phone_number, address,
		department, enrollment_year, graduation_year, gender, nationality,
		guardian_name, guardian_phone, scholarship_awarded, scholarship_name,
		financial_aid_status, status, has_internship, gpa, academic_status,
		created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query,
		st.StudentID, st.Name, st.Age, st.Email, st.PhoneNumber, st.Address,
		st.Department, st.EnrollmentYear, st.GraduationYear, st.Gender,
		st.Nationality, st.GuardianName, st.GuardianPhone,
		st.ScholarshipAwarded, st.ScholarshipName, st.FinancialAidStatus,
		st.Status, st.HasInternship, st.GPA, st.AcademicStatus,
		st.CreatedAt.Unix(), st.UpdatedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert student: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("student insert id: %w", err)
	}
	st.ID = id
	return id, nil
}

// UpdateStudent updates an existing student.
func (s *SQLiteStore) UpdateStudent(ctx context.Context, st *domain.Student) error {
	query := `
	UPDATE students SET student_id = ?, name = ?, age = ?, email = ?,
		phone_number = ?, address = ?, department = ?, enrollment_year = ?,
		graduation_year = ?, gender = ?, nationality = ?, guardian_name = ?,
		guardian_phone = ?, scholarship_awarded = ?, scholarship_name = ?,
		financial_aid_status = ?, status = ?, has_internship = ?, gpa = ?,
		academic_status = ?, updated_at = ?
	WHERE id = ? AND is_deleted = 0`

	res, err := s.db.ExecContext(ctx, query,
		st.StudentID, st.Name, st.Age, st.Email, st.PhoneNumber, st.Address,
		st.Department, st.EnrollmentYear, st.GraduationYear, st.Gender,
		st.Nationality, st.GuardianName, st.GuardianPhone,
		st.ScholarshipAwarded, st.ScholarshipName, st.FinancialAidStatus,
		st.Status, st.HasInternship, st.GPA, st.AcademicStatus,
		time.Now().Unix(), st.ID,
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return requireRowAffected(res, "student")
}

// DeleteStudent soft-deletes a student.
func (s *SQLiteStore) DeleteStudent(ctx context.Context, id int64) error {
	return s.softDelete(ctx, "students", "student", id)
}

// SearchStudentsByName returns non-deleted students whose name contains the
// given text, case-insensitively, ordered by id ascending.
func (s *SQLiteStore) SearchStudentsByName(ctx context.Context, name string) ([]*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
		WHERE is_deleted = 0 AND name LIKE ? ORDER BY id`
	return s.queryStudents(ctx, query, "%"+name+"%")
}

// ListTopStudentsByGPA returns at most limit students ordered by GPA
// descending, ties broken by id ascending.
func (s *SQLiteStore) ListTopStudentsByGPA(ctx context.Context, limit int) ([]*domain.Student, error) {
	if limit < 0 {
		return nil, fmt.Errorf("negative limit %d", limit)
	}
	if limit == 0 {
		return nil, nil
	}
	query := `SELECT ` + studentColumns + ` FROM students
		WHERE is_deleted = 0 ORDER BY gpa DESC, id ASC LIMIT ?`
	return s.queryStudents(ctx, query, limit)
}

// ListStudentsByStatus returns students with the given enrollment status.
func (s *SQLiteStore) ListStudentsByStatus(ctx context.Context, status string) ([]*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
		WHERE is_deleted = 0 AND status = ? ORDER BY id`
	return s.queryStudents(ctx, query, status)
}

// ListStudentsByAcademicStatus returns students with the given academic standing.
func (s *SQLiteStore) ListStudentsByAcademicStatus(ctx context.Context, status string) ([]*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
		WHERE is_deleted = 0 AND academic_status = ? ORDER BY id`
	return s.queryStudents(ctx, query, status)
}

// ListScholarshipStudents returns students with a scholarship awarded.
func (s *SQLiteStore) ListScholarshipStudents(ctx context.Context) ([]*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
		WHERE is_deleted = 0 AND scholarship_awarded = 1 ORDER BY id`
	return s.queryStudents(ctx, query)
}

// ListStudentsWithFailedCourse returns students having at least one
// performance record with status Failed.
func (s *SQLiteStore) ListStudentsWithFailedCourse(ctx context.Context) ([]*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
		WHERE is_deleted = 0 AND id IN (
			SELECT student_id FROM performance WHERE is_deleted = 0 AND status = ?
		) ORDER BY id`
	return s.queryStudents(ctx, query, domain.PerformanceFailed)
}

func (s *SQLiteStore) softDelete(ctx context.Context, table, label string, id int64) error {
	query := `UPDATE ` + table + ` SET is_deleted = 1, updated_at = ? WHERE id = ? AND is_deleted = 0`
	res, err := s.db.ExecContext(ctx, query, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", label, err)
	}
	return requireRowAffected(res, label)
}

func requireRowAffected(res sql.Result, label string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", label, ErrNotFound)
	}
	return nil
}
