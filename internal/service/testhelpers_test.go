package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/avalon-edu/campus-api/internal/models"
	"github.com/avalon-edu/campus-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// fakeGradeRepo keeps grades in memory and applies the paired submission
// atomically, the same contract the GORM transaction provides.
type fakeGradeRepo struct {
	grades      []models.Grade
	submissions *fakeSubmissionRepo
	nextID      uint
	saveCalls   int
	failSave    bool
}

func (r *fakeGradeRepo) GetByStudentAndAssignment(ctx context.Context, studentID, assignmentID uint) (models.Grade, error) {
	for _, grade := range r.grades {
		if grade.StudentID == studentID && grade.AssignmentID != nil && *grade.AssignmentID == assignmentID {
			return grade, nil
		}
	}
	return models.Grade{}, gorm.ErrRecordNotFound
}

func (r *fakeGradeRepo) ListByStudent(ctx context.Context, studentID uint, courseID *uint) ([]models.Grade, error) {
	result := make([]models.Grade, 0)
	for _, grade := range r.grades {
		if grade.StudentID != studentID {
			continue
		}
		if courseID != nil && grade.CourseID != *courseID {
			continue
		}
		result = append(result, grade)
	}
	return result, nil
}

func (r *fakeGradeRepo) SaveWithSubmission(ctx context.Context, grade *models.Grade, submission *models.Submission) error {
	r.saveCalls++
	if r.failSave {
		return gorm.ErrInvalidTransaction
	}

	if grade.ID == 0 {
		r.nextID++
		grade.ID = r.nextID
		r.grades = append(r.grades, *grade)
	} else {
		for i := range r.grades {
			if r.grades[i].ID == grade.ID {
				r.grades[i] = *grade
			}
		}
	}

	if submission != nil && r.submissions != nil {
		r.submissions.items[submission.ID] = *submission
	}

	return nil
}

type fakeSubmissionRepo struct {
	items map[uint]models.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{items: make(map[uint]models.Submission)}
}

func (r *fakeSubmissionRepo) List(ctx context.Context, filter repository.SubmissionFilter) ([]models.Submission, error) {
	result := make([]models.Submission, 0)
	for _, submission := range r.items {
		if filter.AssignmentID != nil && submission.AssignmentID != *filter.AssignmentID {
			continue
		}
		if filter.StudentID != nil && submission.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != nil && submission.Status != *filter.Status {
			continue
		}
		result = append(result, submission)
	}
	return result, nil
}

func (r *fakeSubmissionRepo) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	if submission, ok := r.items[id]; ok {
		return submission, nil
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (r *fakeSubmissionRepo) GetByStudentAndAssignment(ctx context.Context, studentID, assignmentID uint) (models.Submission, error) {
	for _, submission := range r.items {
		if submission.StudentID == studentID && submission.AssignmentID == assignmentID {
			return submission, nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (r *fakeSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	submission.ID = uint(len(r.items) + 1)
	r.items[submission.ID] = *submission
	return nil
}

func (r *fakeSubmissionRepo) Update(ctx context.Context, submission *models.Submission) error {
	r.items[submission.ID] = *submission
	return nil
}

func (r *fakeSubmissionRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

type fakeAssignmentRepo struct {
	items map[uint]models.Assignment
}

func (r *fakeAssignmentRepo) ListByCourse(ctx context.Context, courseID uint) ([]models.Assignment, error) {
	result := make([]models.Assignment, 0)
	for _, assignment := range r.items {
		if assignment.CourseID == courseID {
			result = append(result, assignment)
		}
	}
	return result, nil
}

func (r *fakeAssignmentRepo) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	if assignment, ok := r.items[id]; ok {
		return assignment, nil
	}
	return models.Assignment{}, gorm.ErrRecordNotFound
}

func (r *fakeAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	assignment.ID = uint(len(r.items) + 1)
	r.items[assignment.ID] = *assignment
	return nil
}

func (r *fakeAssignmentRepo) Update(ctx context.Context, assignment *models.Assignment) error {
	r.items[assignment.ID] = *assignment
	return nil
}

func (r *fakeAssignmentRepo) Delete(ctx context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *fakeAssignmentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

type fakeCourseRepo struct {
	courses     map[uint]models.Course
	enrollments []models.Enrollment
	roster      map[uint][]models.Student
}

func (r *fakeCourseRepo) List(ctx context.Context, teacherID *uint) ([]models.Course, error) {
	result := make([]models.Course, 0)
	for _, course := range r.courses {
		if teacherID != nil && course.TeacherID != *teacherID {
			continue
		}
		result = append(result, course)
	}
	return result, nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id uint) (models.Course, error) {
	if course, ok := r.courses[id]; ok {
		return course, nil
	}
	return models.Course{}, gorm.ErrRecordNotFound
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if r.courses == nil {
		r.courses = make(map[uint]models.Course)
	}
	course.ID = uint(len(r.courses) + 1)
	r.courses[course.ID] = *course
	return nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	r.courses[course.ID] = *course
	return nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id uint) error {
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) Enroll(ctx context.Context, studentID, courseID uint) error {
	r.enrollments = append(r.enrollments, models.Enrollment{StudentID: studentID, CourseID: courseID})
	return nil
}

func (r *fakeCourseRepo) Unenroll(ctx context.Context, studentID, courseID uint) error {
	kept := r.enrollments[:0]
	for _, enrollment := range r.enrollments {
		if enrollment.StudentID == studentID && enrollment.CourseID == courseID {
			continue
		}
		kept = append(kept, enrollment)
	}
	r.enrollments = kept
	return nil
}

func (r *fakeCourseRepo) ListEnrollmentsByStudent(ctx context.Context, studentID uint) ([]models.Enrollment, error) {
	result := make([]models.Enrollment, 0)
	for _, enrollment := range r.enrollments {
		if enrollment.StudentID != studentID {
			continue
		}
		if course, ok := r.courses[enrollment.CourseID]; ok {
			enrollment.Course = course
		}
		result = append(result, enrollment)
	}
	return result, nil
}

func (r *fakeCourseRepo) Roster(ctx context.Context, courseID uint) ([]models.Student, error) {
	return r.roster[courseID], nil
}

func (r *fakeCourseRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.courses)), nil
}

type fakeAttendanceRepo struct {
	records []models.AttendanceRecord
}

func (r *fakeAttendanceRepo) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	for i := range r.records {
		if r.records[i].StudentID == record.StudentID &&
			r.records[i].CourseID == record.CourseID &&
			r.records[i].Date.Equal(record.Date) {
			record.ID = r.records[i].ID
			r.records[i] = *record
			return nil
		}
	}
	record.ID = uint(len(r.records) + 1)
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeAttendanceRepo) List(ctx context.Context, filter repository.AttendanceFilter) ([]models.AttendanceRecord, error) {
	result := make([]models.AttendanceRecord, 0)
	for _, record := range r.records {
		if filter.StudentID != nil && record.StudentID != *filter.StudentID {
			continue
		}
		if filter.CourseID != nil && record.CourseID != *filter.CourseID {
			continue
		}
		if filter.From != nil && record.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && record.Date.After(*filter.To) {
			continue
		}
		result = append(result, record)
	}
	return result, nil
}

type fakeStudentRepo struct {
	students map[uint]models.Student
}

func (r *fakeStudentRepo) List(ctx context.Context, filter repository.StudentFilter) ([]models.Student, int64, error) {
	result := make([]models.Student, 0)
	for _, student := range r.students {
		if filter.ParentID != nil && (student.ParentID == nil || *student.ParentID != *filter.ParentID) {
			continue
		}
		result = append(result, student)
	}
	return result, int64(len(result)), nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id uint) (models.Student, error) {
	if student, ok := r.students[id]; ok {
		return student, nil
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if r.students == nil {
		r.students = make(map[uint]models.Student)
	}
	student.ID = uint(len(r.students) + 1)
	r.students[student.ID] = *student
	return nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	r.students[student.ID] = *student
	return nil
}

type fakeActivityRecorder struct {
	entries []ActivityEntry
}

func (r *fakeActivityRecorder) Record(ctx context.Context, entry ActivityEntry) (models.ActivityLog, error) {
	r.entries = append(r.entries, entry)
	return models.ActivityLog{ID: uint(len(r.entries))}, nil
}
