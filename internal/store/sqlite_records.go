package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avagyan/studenthub/internal/domain"
)

// Related records join the student name into each row, mirroring the API
// responses which always carry student_name alongside the foreign key.

const gradeColumns = `g.id, g.student_id, s.name, g.course_id, g.grade,
	g.marks_obtained, g.total_marks, g.exam_type, g.semester, g.academic_year,
	g.created_at, g.updated_at`

func scanGrade(row rowScanner) (*domain.Grade, error) {
	var g domain.Grade
	var createdAt, updatedAt int64

	err := row.Scan(
		&g.ID, &g.StudentID, &g.StudentName, &g.CourseID, &g.Grade,
		&g.MarksObtained, &g.TotalMarks, &g.ExamType, &g.Semester,
		&g.AcademicYear, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.CreatedAt = time.Unix(createdAt, 0)
	g.UpdatedAt = time.Unix(updatedAt, 0)
	return &g, nil
}

func (s *SQLiteStore) queryGrades(ctx context.Context, query string, args ...any) ([]*domain.Grade, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query grades: %w", err)
	}
	defer rows.Close()

	var grades []*domain.Grade
	for rows.Next() {
		g, err := scanGrade(rows)
		if err != nil {
			return nil, fmt.Errorf("scan grade row: %w", err)
		}
		grades = append(grades, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grades: %w", err)
	}
	return grades, nil
}

// ListGrades returns all non-deleted grades with student names.
func (s *SQLiteStore) ListGrades(ctx context.Context) ([]*domain.Grade, error) {
	query := `SELECT ` + gradeColumns + ` FROM grades g
		JOIN students s ON s.id = g.student_id
		WHERE g.is_deleted = 0 ORDER BY g.id`
	return s.queryGrades(ctx, query)
}

// GetGrade retrieves a grade by id.
func (s *SQLiteStore) GetGrade(ctx context.Context, id int64) (*domain.Grade, error) {
	query := `SELECT ` + gradeColumns + ` FROM grades g
		JOIN students s ON s.id = g.student_id
		WHERE g.id = ? AND g.is_deleted = 0`
	g, err := scanGrade(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan grade row: %w", err)
	}
	return g, nil
}

// CreateGrade inserts a new grade and returns its id.
func (s *SQLiteStore) CreateGrade(ctx context.Context, g *domain.Grade) (int64, error) {
	now := time.Now().Unix()
	query := `
	INSERT INTO grades (student_id, course_id, grade, marks_obtained,
		total_marks, exam_type, semester, academic_year, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query,
		g.StudentID, g.CourseID, g.Grade, g.MarksObtained, g.TotalMarks,
		g.ExamType, g.Semester, g.AcademicYear, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert grade: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("grade insert id: %w", err)
	}
	g.ID = id
	return id, nil
}

// UpdateGrade updates an existing grade.
func (s *SQLiteStore) UpdateGrade(ctx context.Context, g *domain.Grade) error {
	query := `
	UPDATE grades SET student_id = ?, course_id = ?, grade = ?,
		marks_obtained = ?, total_marks = ?, exam_type = ?, semester = ?,
		academic_year = ?, updated_at = ?
	WHERE id = ? AND is_deleted = 0`

	res, err := s.db.ExecContext(ctx, query,
		g.StudentID, g.CourseID, g.Grade, g.MarksObtained, g.TotalMarks,
		g.ExamType, g.Semester, g.AcademicYear, time.Now().Unix(), g.ID,
	)
	if err != nil {
		return fmt.Errorf("update grade: %w", err)
	}
	return requireRowAffected(res, "grade")
}

// DeleteGrade soft-deletes a grade.
func (s *SQLiteStore) DeleteGrade(ctx context.Context, id int64) error {
	return s.softDelete(ctx, "grades", "grade", id)
}

// ListGradesByStudent returns a student's grades ordered by id.
func (s *SQLiteStore) ListGradesByStudent(ctx context.Context, studentID int64) ([]*domain.Grade, error) {
	query := `SELECT ` + gradeColumns + ` FROM grades g
		JOIN students s ON s.id = g.student_id
		WHERE g.student_id = ? AND g.is_deleted = 0 ORDER BY g.id`
	return s.queryGrades(ctx, query, studentID)
}

const attendanceColumns = `a.id, a.student_id, s.name, a.course_id,
	a.total_classes, a.attended_classes, a.date, a.status,
	a.created_at, a.updated_at`

func scanAttendance(row rowScanner) (*domain.Attendance, error) {
	var a domain.Attendance
	var createdAt, updatedAt int64

	err := row.Scan(
		&a.ID, &a.StudentID, &a.StudentName, &a.CourseID, &a.TotalClasses,
		&a.AttendedClasses, &a.Date, &a.Status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = time.Unix(createdAt, 0)
	a.UpdatedAt = time.Unix(updatedAt, 0)
	return &a, nil
}

func (s *SQLiteStore) queryAttendance(ctx context.Context, query string, args ...any) ([]*domain.Attendance, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	defer rows.Close()

	var records []*domain.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance row: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return records, nil
}

// ListAttendance returns all non-deleted attendance records.
func (s *SQLiteStore) ListAttendance(ctx context.Context) ([]*domain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance a
		JOIN students s ON s.id = a.student_id
		WHERE a.is_deleted = 0 ORDER BY a.id`
	return s.queryAttendance(ctx, query)
}

// GetAttendance retrieves an attendance record by id.
func (s *SQLiteStore) GetAttendance(ctx context.Context, id int64) (*domain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance a
		JOIN students s ON s.id = a.student_id
		WHERE a.id = ? AND a.is_deleted = 0`
	a, err := scanAttendance(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan attendance row: %w", err)
	}
	return a, nil
}

// CreateAttendance inserts a new attendance record and returns its id.
func (s *SQLiteStore) CreateAttendance(ctx context.Context, a *domain.Attendance) (int64, error) {
	now := time.Now().Unix()
	query := `
	INSERT INTO attendance (student_id, course_id, total_classes,
		attended_classes, date, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query,
		a.StudentID, a.CourseID, a.TotalClasses, a.AttendedClasses,
		a.Date, a.Status, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert attendance: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("attendance insert id: %w", err)
	}
	a.ID = id
	return id, nil
}

// UpdateAttendance updates an existing attendance record.
func (s *SQLiteStore) UpdateAttendance(ctx context.Context, a *domain.Attendance) error {
	query := `
	UPDATE attendance SET student_id = ?, course_id = ?, total_classes = ?,
		attended_classes = ?, date = ?, status = ?, updated_at = ?
	WHERE id = ? AND is_deleted = 0`

	res, err := s.db.ExecContext(ctx, query,
		a.StudentID, a.CourseID, a.TotalClasses, a.AttendedClasses,
		a.Date, a.Status, time.Now().Unix(), a.ID,
	)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return requireRowAffected(res, "attendance")
}

// DeleteAttendance soft-deletes an attendance record.
func (s *SQLiteStore) DeleteAttendance(ctx context.Context, id int64) error {
	return s.softDelete(ctx, "attendance", "attendance", id)
}

// ListAttendanceByStudent returns a student's attendance ordered by id.
func (s *SQLiteStore) ListAttendanceByStudent(ctx context.Context, studentID int64) ([]*domain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance a
		JOIN students s ON s.id = a.student_id
		WHERE a.student_id = ? AND a.is_deleted = 0 ORDER BY a.id`
	return s.queryAttendance(ctx, query, studentID)
}

const performanceColumns = `p.id, p.student_id, s.name, p.course_id, p.gpa,
	p.status, p.semester, p.academic_year, p.overall_gpa,
	p.created_at, p.updated_at`

func scanPerformance(row rowScanner) (*domain.Performance, error) {
	var p domain.Performance
	var createdAt, updatedAt int64

	err := row.Scan(
		&p.ID, &p.StudentID, &p.StudentName, &p.CourseID, &p.GPA, &p.Status,
		&p.Semester, &p.AcademicYear, &p.OverallGPA, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}

func (s *SQLiteStore) queryPerformance(ctx context.Context, query string, args ...any) ([]*domain.Performance, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query performance: %w", err)
	}
	defer rows.Close()

	var records []*domain.Performance
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan performance row: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate performance: %w", err)
	}
	return records, nil
}

// ListPerformance returns all non-deleted performance records.
func (s *SQLiteStore) ListPerformance(ctx context.Context) ([]*domain.Performance, error) {
	query := `SELECT ` + performanceColumns + ` FROM performance p
		JOIN students s ON s.id = p.student_id
		WHERE p.is_deleted = 0 ORDER BY p.id`
	return s.queryPerformance(ctx, query)
}

// GetPerformance retrieves a performance record by id.
func (s *SQLiteStore) GetPerformance(ctx context.Context, id int64) (*domain.Performance, error) {
	query := `SELECT ` + performanceColumns + ` FROM performance p
		JOIN students s ON s.id = p.student_id
		WHERE p.id = ? AND p.is_deleted = 0`
	p, err := scanPerformance(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan performance row: %w", err)
	}
	return p, nil
}

// CreatePerformance inserts a new performance record and returns its id.
func (s *SQLiteStore) CreatePerformance(ctx context.Context, p *domain.Performance) (int64, error) {
	now := time.Now().Unix()
	query := `
	INSERT INTO performance (student_id, course_id, gpa, status, semester,
		academic_year, overall_gpa, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query,
		p.StudentID, p.CourseID, p.GPA, p.Status, p.Semester,
		p.AcademicYear, p.OverallGPA, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert performance: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("performance insert id: %w", err)
	}
	p.ID = id
	return id, nil
}

// UpdatePerformance updates an existing performance record.
func (s *SQLiteStore) UpdatePerformance(ctx context.Context, p *domain.Performance) error {
	query := `
	UPDATE performance SET student_id = ?, course_id = ?, gpa = ?, status = ?,
		semester = ?, academic_year = ?, overall_gpa = ?, updated_at = ?
	WHERE id = ? AND is_deleted = 0`

	res, err := s.db.ExecContext(ctx, query,
		p.StudentID, p.CourseID, p.GPA, p.Status, p.Semester,
		p.AcademicYear, p.OverallGPA, time.Now().Unix(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update performance: %w", err)
	}
	return requireRowAffected(res, "performance")
}

// DeletePerformance soft-deletes a performance record.
func (s *SQLiteStore) DeletePerformance(ctx context.Context, id int64) error {
	return s.softDelete(ctx, "performance", "performance", id)
}

// ListPerformanceByStudent returns a student's performance records ordered by id.
func (s *SQLiteStore) ListPerformanceByStudent(ctx context.Context, studentID int64) ([]*domain.Performance, error) {
	query := `SELECT ` + performanceColumns + ` FROM performance p
		JOIN students s ON s.id = p.student_id
		WHERE p.student_id = ? AND p.is_deleted = 0 ORDER BY p.id`
	return s.queryPerformance(ctx, query, studentID)
}

const internshipColumns = `i.id, i.student_id, s.name, i.company_name, i.role,
	i.start_date, i.end_date, i.description, i.created_at, i.updated_at`

func scanInternship(row rowScanner) (*domain.Internship, error) {
	var i domain.Internship
	var createdAt, updatedAt int64

	err := row.Scan(
		&i.ID, &i.StudentID, &i.StudentName, &i.CompanyName, &i.Role,
		&i.StartDate, &i.EndDate, &i.Description, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	i.CreatedAt = time.Unix(createdAt, 0)
	i.UpdatedAt = time.Unix(updatedAt, 0)
	return &i, nil
}

func (s *SQLiteStore) queryInternships(ctx context.Context, query string, args ...any) ([]*domain.Internship, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query internships: %w", err)
	}
	defer rows.Close()

	var records []*domain.Internship
	for rows.Next() {
		i, err := scanInternship(rows)
		if err != nil {
			return nil, fmt.Errorf("scan internship row: %w", err)
		}
		records = append(records, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate internships: %w", err)
	}
	return records, nil
}

// ListInternships returns all non-deleted internships.
func (s *SQLiteStore) ListInternships(ctx context.Context) ([]*domain.Internship, error) {
	query := `SELECT ` + internshipColumns + ` FROM internships i
		JOIN students s ON s.id = i.student_id
		WHERE i.is_deleted = 0 ORDER BY i.id`
	return s.queryInternships(ctx, query)
}

// GetInternship retrieves an internship by id.
func (s *SQLiteStore) GetInternship(ctx context.Context, id int64) (*domain.Internship, error) {
	query := `SELECT ` + internshipColumns + ` FROM internships i
		JOIN students s ON s.id = i.student_id
		WHERE i.id = ? AND i.is_deleted = 0`
	rec, err := scanInternship(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan internship row: %w", err)
	}
	return rec, nil
}

// CreateInternship inserts a new internship and returns its id.
func (s *SQLiteStore) CreateInternship(ctx context.Context, i *domain.Internship) (int64, error) {
	now := time.Now().Unix()
	query := `
	INSERT INTO internships (student_id, company_name, role, start_date,
		end_date, description, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query,
		i.StudentID, i.CompanyName, i.Role, i.StartDate, i.EndDate,
		i.Description, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert internship: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("internship insert id: %w", err)
	}
	i.ID = id
	return id, nil
}

// UpdateInternship updates an existing internship.
func (s *SQLiteStore) UpdateInternship(ctx context.Context, i *domain.Internship) error {
	query := `
	UPDATE internships SET student_id = ?, company_name = ?, role = ?,
		start_date = ?, end_date = ?, description = ?, updated_at = ?
	WHERE id = ? AND is_deleted = 0`

	res, err := s.db.ExecContext(ctx, query,
		i.StudentID, i.CompanyName, i.Role, i.StartDate, i.EndDate,
		i.Description, time.Now().Unix(), i.ID,
	)
	if err != nil {
		return fmt.Errorf("update internship: %w", err)
	}
	return requireRowAffected(res, "internship")
}

// DeleteInternship soft-deletes an internship.
func (s *SQLiteStore) DeleteInternship(ctx context.Context, id int64) error {
	return s.softDelete(ctx, "internships", "internship", id)
}

// ListInternshipsByStudent returns a student's internships ordered by id.
func (s *SQLiteStore) ListInternshipsByStudent(ctx context.Context, studentID int64) ([]*domain.Internship, error) {
	query := `SELECT ` + internshipColumns + ` FROM internships i
		JOIN students s ON s.id = i.student_id
		WHERE i.student_id = ? AND i.is_deleted = 0 ORDER BY i.id`
	return s.queryInternships(ctx, query, studentID)
}
