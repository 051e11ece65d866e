// StudentHub seeder - populates the database with realistic fake records.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/avagyan/studenthub/internal/config"
	"github.com/avagyan/studenthub/internal/domain"
	"github.com/avagyan/studenthub/internal/store"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
)

var departments = []string{
	"Computer Science",
	"Electrical Engineering",
	"Mechanical Engineering",
	"Business Administration",
	"Mathematics",
	"Physics",
}

var semesters = []string{"Fall", "Spring", "Summer"}

var companies = []string{
	"TechNova",
	"DataBridge",
	"CloudWorks",
	"FinEdge",
	"BrightLabs",
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		seed     = flag.Int64("seed", 0, "random seed (0 = random)")
		students = flag.Int("students", 50, "number of students to create")
		courses  = flag.Int("courses", 10, "number of courses to create")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	faker := gofakeit.New(uint64(*seed))

	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	ctx := context.Background()
	if err := run(ctx, repo, faker, *students, *courses); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}

	counts, err := repo.CountAll(ctx)
	if err != nil {
		slog.Error("Failed to count records", "error", err)
		os.Exit(1)
	}
	slog.Info("Seeding complete",
		"students", counts.Students,
		"courses", counts.Courses,
		"grades", counts.Grades,
		"attendance", counts.Attendance,
		"performance", counts.Performance,
		"internships", counts.Internships,
	)
}

func run(ctx context.Context, repo store.Repository, faker *gofakeit.Faker, nStudents, nCourses int) error {
	courseIDs := make([]int64, 0, nCourses)
	for i := 0; i < nCourses; i++ {
		id, err := repo.CreateCourse(ctx, randomCourse(faker))
		if err != nil {
			return fmt.Errorf("create course: %w", err)
		}
		courseIDs = append(courseIDs, id)
	}

	for i := 0; i < nStudents; i++ {
		s := randomStudent(faker, i)
		studentID, err := repo.CreateStudent(ctx, s)
		if err != nil {
			return fmt.Errorf("create student: %w", err)
		}

		for _, courseID := range pick(faker, courseIDs, 3) {
			if _, err := repo.CreateGrade(ctx, randomGrade(faker, studentID, courseID)); err != nil {
				return fmt.Errorf("create grade: %w", err)
			}
			if _, err := repo.CreateAttendance(ctx, randomAttendance(faker, studentID, courseID)); err != nil {
				return fmt.Errorf("create attendance: %w", err)
			}
			if _, err := repo.CreatePerformance(ctx, randomPerformance(faker, studentID, courseID, s.GPA)); err != nil {
				return fmt.Errorf("create performance: %w", err)
			}
		}

		if s.HasInternship {
			if _, err := repo.CreateInternship(ctx, randomInternship(faker, studentID)); err != nil {
				return fmt.Errorf("create internship: %w", err)
			}
		}
	}
	return nil
}

func randomStudent(faker *gofakeit.Faker, n int) *domain.Student {
	gpa := faker.Float64Range(1.5, 4.0)
	status := faker.RandomString([]string{
		domain.StudentStatusActive,
		domain.StudentStatusActive,
		domain.StudentStatusActive,
		domain.StudentStatusGraduated,
		domain.StudentStatusOnLeave,
	})
	academic := domain.AcademicGoodStanding
	if gpa < 2.0 {
		academic = domain.AcademicProbation
	}
	scholarship := faker.Bool()
	scholarshipName := ""
	if scholarship {
		scholarshipName = faker.RandomString([]string{"Merit Scholarship", "STEM Grant", "Dean's Award"})
	}
	enrollYear := faker.Number(2018, 2025)

	return &domain.Student{
		StudentID:          fmt.Sprintf("STU%05d", n+1),
		Name:               faker.Name(),
		Age:                faker.Number(17, 30),
		Email:              faker.Email(),
		PhoneNumber:        faker.Phone(),
		Address:            faker.Address().Address,
		Department:         faker.RandomString(departments),
		EnrollmentYear:     enrollYear,
		GraduationYear:     enrollYear + 4,
		Gender:             faker.RandomString([]string{"Male", "Female", "Other"}),
		Nationality:        faker.Country(),
		GuardianName:       faker.Name(),
		GuardianPhone:      faker.Phone(),
		ScholarshipAwarded: scholarship,
		ScholarshipName:    scholarshipName,
		FinancialAidStatus: faker.RandomString([]string{domain.FinancialAidNone, domain.FinancialAidPartial, domain.FinancialAidFull}),
		Status:             status,
		HasInternship:      faker.Bool(),
		GPA:                round2(gpa),
		AcademicStatus:     academic,
	}
}

func randomCourse(faker *gofakeit.Faker) *domain.Course {
	name := faker.RandomString([]string{
		"Algorithms", "Databases", "Operating Systems", "Linear Algebra",
		"Microeconomics", "Thermodynamics", "Circuit Analysis", "Statistics",
		"Software Engineering", "Machine Learning",
	})
	return &domain.Course{
		Name:           name,
		Description:    faker.Sentence(8),
		Department:     faker.RandomString(departments),
		CreditHours:    faker.Number(2, 5),
		InstructorName: faker.Name(),
		Schedule:       fmt.Sprintf("%s %02d:00", faker.WeekDay(), faker.Number(8, 17)),
		Level:          faker.RandomString([]string{domain.CourseLevelUndergraduate, domain.CourseLevelGraduate}),
		IsActive:       true,
	}
}

func randomGrade(faker *gofakeit.Faker, studentID, courseID int64) *domain.Grade {
	marks := faker.Float64Range(30, 100)
	return &domain.Grade{
		StudentID:     studentID,
		CourseID:      courseID,
		Grade:         letterGrade(marks),
		MarksObtained: round2(marks),
		TotalMarks:    100,
		ExamType:      faker.RandomString([]string{domain.ExamTypeMidTerm, domain.ExamTypeFinal, domain.ExamTypeContinuous}),
		Semester:      faker.RandomString(semesters),
		AcademicYear:  "2024-2025",
	}
}

func randomAttendance(faker *gofakeit.Faker, studentID, courseID int64) *domain.Attendance {
	total := faker.Number(20, 40)
	attended := faker.Number(total/2, total)
	return &domain.Attendance{
		StudentID:       studentID,
		CourseID:        courseID,
		TotalClasses:    total,
		AttendedClasses: attended,
		Date:            faker.DateRange(mustDate("2025-01-01"), mustDate("2025-06-30")).Format("2006-01-02"),
		Status:          faker.RandomString([]string{domain.AttendancePresent, domain.AttendancePresent, domain.AttendanceAbsent, domain.AttendanceLate}),
	}
}

func randomPerformance(faker *gofakeit.Faker, studentID, courseID int64, overallGPA float64) *domain.Performance {
	gpa := faker.Float64Range(1.0, 4.0)
	status := domain.PerformanceOngoing
	switch {
	case gpa < 1.5:
		status = domain.PerformanceFailed
	case faker.Bool():
		status = domain.PerformanceCompleted
	}
	return &domain.Performance{
		StudentID:    studentID,
		CourseID:     courseID,
		GPA:          round2(gpa),
		Status:       status,
		Semester:     faker.RandomString(semesters),
		AcademicYear: "2024-2025",
		OverallGPA:   overallGPA,
	}
}

func randomInternship(faker *gofakeit.Faker, studentID int64) *domain.Internship {
	start := faker.DateRange(mustDate("2025-05-01"), mustDate("2025-07-01"))
	return &domain.Internship{
		StudentID:   studentID,
		CompanyName: faker.RandomString(companies),
		Role:        faker.JobTitle(),
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.AddDate(0, 3, 0).Format("2006-01-02"),
		Description: faker.Sentence(10),
	}
}

func letterGrade(marks float64) string {
	switch {
	case marks >= 90:
		return "A"
	case marks >= 80:
		return "B"
	case marks >= 70:
		return "C"
	case marks >= 60:
		return "D"
	default:
		return "F"
	}
}

// pick returns up to n distinct elements of ids in random order.
func pick(faker *gofakeit.Faker, ids []int64, n int) []int64 {
	if n > len(ids) {
		n = len(ids)
	}
	shuffled := make([]int64, len(ids))
	copy(shuffled, ids)
	faker.ShuffleAnySlice(shuffled)
	return shuffled[:n]
}

func round2(f float64) float64 {
	return float64(int(f*100)) / 100
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
