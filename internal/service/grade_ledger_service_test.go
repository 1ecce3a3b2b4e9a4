package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/avalon-edu/campus-api/internal/dto"
	"github.com/avalon-edu/campus-api/internal/models"
)

type fakeGradePublisher struct {
	events []dto.GradeRecordedEvent
}

func (p *fakeGradePublisher) PublishGradeRecorded(ctx context.Context, event dto.GradeRecordedEvent) error {
	p.events = append(p.events, event)
	return nil
}

type ledgerFixture struct {
	grades      *fakeGradeRepo
	submissions *fakeSubmissionRepo
	assignments *fakeAssignmentRepo
	courses     *fakeCourseRepo
	activity    *fakeActivityRecorder
	publisher   *fakeGradePublisher
	svc         GradeLedgerService
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	submissions := newFakeSubmissionRepo()
	grades := &fakeGradeRepo{submissions: submissions}
	assignments := &fakeAssignmentRepo{items: map[uint]models.Assignment{
		10: {ID: 10, CourseID: 1, Title: "Essay", TotalPoints: 50},
		11: {ID: 11, CourseID: 1, Title: "Quiz", TotalPoints: 20},
		20: {ID: 20, CourseID: 2, Title: "Lab", TotalPoints: 100},
	}}
	courses := &fakeCourseRepo{
		courses: map[uint]models.Course{
			1: {ID: 1, Name: "Algebra", TeacherID: 7},
			2: {ID: 2, Name: "Biology", TeacherID: 7},
			3: {ID: 3, Name: "History", TeacherID: 8},
		},
		enrollments: []models.Enrollment{
			{StudentID: 5, CourseID: 1},
			{StudentID: 5, CourseID: 2},
			{StudentID: 5, CourseID: 3},
		},
	}
	activity := &fakeActivityRecorder{}
	publisher := &fakeGradePublisher{}

	svc := NewGradeLedgerService(grades, submissions, assignments, courses, validator.New(), activity, publisher, testLogger())
	svc.(*gradeLedgerService).now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

	return &ledgerFixture{
		grades:      grades,
		submissions: submissions,
		assignments: assignments,
		courses:     courses,
		activity:    activity,
		publisher:   publisher,
		svc:         svc,
	}
}

func TestLetterGradeBoundaries(t *testing.T) {
	cases := []struct {
		percentage float64
		expected   string
	}{
		{100, "A"},
		{90, "A"},
		{89.9, "B"},
		{80, "B"},
		{79.9, "C"},
		{70, "C"},
		{69.9, "D"},
		{60, "D"},
		{59.9, "F"},
		{0, "F"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.expected, LetterGrade(tc.percentage), "percentage %v", tc.percentage)
	}
}

func TestGradePointBoundaries(t *testing.T) {
	require.Equal(t, 4.0, GradePoint(90))
	require.Equal(t, 3.0, GradePoint(89.9))
	require.Equal(t, 2.0, GradePoint(70))
	require.Equal(t, 1.0, GradePoint(60))
	require.Equal(t, 0.0, GradePoint(59.9))
}

func TestRecordGradeSyncsSubmission(t *testing.T) {
	fx := newLedgerFixture(t)
	require.NoError(t, fx.submissions.Create(context.Background(), &models.Submission{
		AssignmentID: 10,
		StudentID:    5,
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}))

	resp, err := fx.svc.RecordGrade(context.Background(), dto.RecordGradeRequest{
		StudentID:    5,
		AssignmentID: 10,
		CourseID:     1,
		PointsEarned: 45,
	}, ActivityActor{ID: 7, Role: "teacher"})
	require.NoError(t, err)

	require.Equal(t, 45.0, resp.Grade.PointsEarned)
	require.Equal(t, 50.0, resp.Grade.PointsPossible)
	require.NotNil(t, resp.CourseAverage)
	require.Equal(t, 90.0, *resp.CourseAverage)
	require.NotNil(t, resp.LetterGrade)
	require.Equal(t, "A", *resp.LetterGrade)

	submission, err := fx.submissions.GetByStudentAndAssignment(context.Background(), 5, 10)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusGraded, submission.Status)
	require.NotNil(t, submission.PointsEarned)
	require.Equal(t, 45.0, *submission.PointsEarned)
	require.NotNil(t, submission.GradedAt)

	require.Len(t, fx.activity.entries, 1)
	require.Equal(t, "grade.recorded", fx.activity.entries[0].Action)
	require.Len(t, fx.publisher.events, 1)
	require.Equal(t, uint(5), fx.publisher.events[0].StudentID)
}

func TestRecordGradeWithoutSubmission(t *testing.T) {
	fx := newLedgerFixture(t)

	resp, err := fx.svc.RecordGrade(context.Background(), dto.RecordGradeRequest{
		StudentID:    5,
		AssignmentID: 11,
		CourseID:     1,
		PointsEarned: 15,
	}, ActivityActor{ID: 7, Role: "teacher"})
	require.NoError(t, err)
	require.Equal(t, 15.0, resp.Grade.PointsEarned)

	require.Empty(t, fx.submissions.items)
	require.Len(t, fx.grades.grades, 1)
}

func TestRecordGradeRejectsOutOfRange(t *testing.T) {
	fx := newLedgerFixture(t)

	for _, points := range []float64{-1, 50.1, 1000} {
		_, err := fx.svc.RecordGrade(context.Background(), dto.RecordGradeRequest{
			StudentID:    5,
			AssignmentID: 10,
			CourseID:     1,
			PointsEarned: points,
		}, ActivityActor{})
		require.ErrorIs(t, err, ErrGradeOutOfRange, "points %v", points)
	}

	// Rejected requests never reach the write path.
	require.Zero(t, fx.grades.saveCalls)
	require.Empty(t, fx.grades.grades)
}

func TestRecordGradeRejectsNonFinitePoints(t *testing.T) {
	fx := newLedgerFixture(t)

	for _, points := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := fx.svc.RecordGrade(context.Background(), dto.RecordGradeRequest{
			StudentID:    5,
			AssignmentID: 10,
			CourseID:     1,
			PointsEarned: points,
		}, ActivityActor{})
		require.ErrorIs(t, err, ErrGradeOutOfRange, "points %v", points)
	}

	require.Zero(t, fx.grades.saveCalls)
	require.Empty(t, fx.grades.grades)
}

func TestRecordGradeUnknownAssignment(t *testing.T) {
	fx := newLedgerFixture(t)

	_, err := fx.svc.RecordGrade(context.Background(), dto.RecordGradeRequest{
		StudentID:    5,
		AssignmentID: 999,
		CourseID:     1,
		PointsEarned: 10,
	}, ActivityActor{})
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestRecordGradeCourseMismatch(t *testing.T) {
	fx := newLedgerFixture(t)

	_, err := fx.svc.RecordGrade(context.Background(), dto.RecordGradeRequest{
		StudentID:    5,
		AssignmentID: 20,
		CourseID:     1,
		PointsEarned: 10,
	}, ActivityActor{})
	require.ErrorIs(t, err, ErrAssignmentCourseMismatch)
	require.Zero(t, fx.grades.saveCalls)
}

func TestRecordGradeSyncFailure(t *testing.T) {
	fx := newLedgerFixture(t)
	fx.grades.failSave = true

	_, err := fx.svc.RecordGrade(context.Background(), dto.RecordGradeRequest{
		StudentID:    5,
		AssignmentID: 10,
		CourseID:     1,
		PointsEarned: 30,
	}, ActivityActor{})
	require.ErrorIs(t, err, ErrGradeSyncFailed)

	require.Empty(t, fx.grades.grades)
	require.Empty(t, fx.activity.entries)
	require.Empty(t, fx.publisher.events)
}

func TestRecordGradeIdempotent(t *testing.T) {
	fx := newLedgerFixture(t)

	payload := dto.RecordGradeRequest{StudentID: 5, AssignmentID: 10, CourseID: 1, PointsEarned: 40}
	first, err := fx.svc.RecordGrade(context.Background(), payload, ActivityActor{ID: 7, Role: "teacher"})
	require.NoError(t, err)
	require.Equal(t, 1, fx.grades.saveCalls)

	second, err := fx.svc.RecordGrade(context.Background(), payload, ActivityActor{ID: 7, Role: "teacher"})
	require.NoError(t, err)
	require.Equal(t, first.Grade.ID, second.Grade.ID)
	require.Equal(t, first.Grade.PointsEarned, second.Grade.PointsEarned)

	// The no-op replay skips the write, the audit entry, and the event.
	require.Equal(t, 1, fx.grades.saveCalls)
	require.Len(t, fx.activity.entries, 1)
	require.Len(t, fx.publisher.events, 1)
}

func TestRecordGradeUpdatesExisting(t *testing.T) {
	fx := newLedgerFixture(t)

	payload := dto.RecordGradeRequest{StudentID: 5, AssignmentID: 10, CourseID: 1, PointsEarned: 40}
	first, err := fx.svc.RecordGrade(context.Background(), payload, ActivityActor{})
	require.NoError(t, err)

	payload.PointsEarned = 48
	second, err := fx.svc.RecordGrade(context.Background(), payload, ActivityActor{})
	require.NoError(t, err)

	require.Equal(t, first.Grade.ID, second.Grade.ID)
	require.Equal(t, 48.0, second.Grade.PointsEarned)
	require.Len(t, fx.grades.grades, 1)
}

func TestCourseAverageEmpty(t *testing.T) {
	fx := newLedgerFixture(t)

	average, err := fx.svc.CourseAverage(context.Background(), 5, 1)
	require.NoError(t, err)
	require.Nil(t, average)
}

func TestCourseAverageAcrossAssignments(t *testing.T) {
	fx := newLedgerFixture(t)

	for _, record := range []dto.RecordGradeRequest{
		{StudentID: 5, AssignmentID: 10, CourseID: 1, PointsEarned: 45}, // 45/50
		{StudentID: 5, AssignmentID: 11, CourseID: 1, PointsEarned: 12}, // 12/20
	} {
		_, err := fx.svc.RecordGrade(context.Background(), record, ActivityActor{})
		require.NoError(t, err)
	}

	average, err := fx.svc.CourseAverage(context.Background(), 5, 1)
	require.NoError(t, err)
	require.NotNil(t, average)
	// 57 of 70 points is 81.43%, rounded to 81.
	require.Equal(t, 81.0, *average)
}

func TestGPAExcludesUngradedCourses(t *testing.T) {
	fx := newLedgerFixture(t)

	// Course 1 at 95% (A), course 2 at 82% (B), course 3 ungraded.
	_, err := fx.svc.RecordGrade(context.Background(), dto.RecordGradeRequest{
		StudentID: 5, AssignmentID: 10, CourseID: 1, PointsEarned: 47.5,
	}, ActivityActor{})
	require.NoError(t, err)
	_, err = fx.svc.RecordGrade(context.Background(), dto.RecordGradeRequest{
		StudentID: 5, AssignmentID: 20, CourseID: 2, PointsEarned: 82,
	}, ActivityActor{})
	require.NoError(t, err)

	resp, err := fx.svc.GPA(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 2, resp.CoursesCounted)
	require.NotNil(t, resp.GPA)
	require.Equal(t, 3.5, *resp.GPA)
}

func TestGPANilWhenNothingGraded(t *testing.T) {
	fx := newLedgerFixture(t)

	resp, err := fx.svc.GPA(context.Background(), 5)
	require.NoError(t, err)
	require.Nil(t, resp.GPA)
	require.Zero(t, resp.CoursesCounted)
}
