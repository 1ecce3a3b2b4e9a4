package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/avalon-edu/campus-api/internal/models"
)

type dashboardFixture struct {
	ledger   *ledgerFixture
	students *fakeStudentRepo
	svc      DashboardService
}

func newDashboardFixture(t *testing.T, cache *redis.Client) *dashboardFixture {
	t.Helper()

	ledger := newLedgerFixture(t)
	parentID := uint(30)
	students := &fakeStudentRepo{students: map[uint]models.Student{
		5: {ID: 5, Name: "Dana", ParentID: &parentID},
	}}
	attendance := NewAttendanceService(&fakeAttendanceRepo{}, nil, validator.New(), testLogger())

	svc := NewDashboardService(
		ledger.svc,
		attendance,
		ledger.courses,
		students,
		ledger.submissions,
		ledger.assignments,
		cache,
		time.Minute,
		testLogger(),
	)

	return &dashboardFixture{ledger: ledger, students: students, svc: svc}
}

func TestStudentDashboardAggregates(t *testing.T) {
	fx := newDashboardFixture(t, nil)

	require.NoError(t, fx.ledger.submissions.Create(context.Background(), &models.Submission{
		AssignmentID: 10,
		StudentID:    5,
		Status:       models.SubmissionStatusSubmitted,
	}))

	dashboard, err := fx.svc.StudentDashboard(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, uint(5), dashboard.StudentID)
	require.Len(t, dashboard.Courses, 3)
	require.Nil(t, dashboard.GPA)

	// Assignments 10 and 11 in course 1, 20 in course 2: one submitted,
	// two still pending.
	require.Equal(t, 3, dashboard.Submissions.Total)
	require.Equal(t, 1, dashboard.Submissions.Submitted)
	require.Equal(t, 2, dashboard.Submissions.Pending)
	require.Zero(t, dashboard.Submissions.Graded)
}

func TestStudentDashboardCaches(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer cache.Close()

	fx := newDashboardFixture(t, cache)

	first, err := fx.svc.StudentDashboard(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 3, first.Submissions.Total)

	// New assignments do not show until the cached entry expires.
	fx.ledger.assignments.items[12] = models.Assignment{ID: 12, CourseID: 1, Title: "Extra", TotalPoints: 10}

	cached, err := fx.svc.StudentDashboard(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 3, cached.Submissions.Total)

	server.FastForward(2 * time.Minute)

	fresh, err := fx.svc.StudentDashboard(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 4, fresh.Submissions.Total)
}

func TestParentDashboardCoversChildren(t *testing.T) {
	fx := newDashboardFixture(t, nil)

	parentID := uint(30)
	fx.students.students[6] = models.Student{ID: 6, Name: "Riley", ParentID: &parentID}

	dashboard, err := fx.svc.ParentDashboard(context.Background(), parentID)
	require.NoError(t, err)
	require.Equal(t, parentID, dashboard.ParentID)
	require.Len(t, dashboard.Children, 2)
}

func TestAdminOverviewCounts(t *testing.T) {
	fx := newDashboardFixture(t, nil)

	require.NoError(t, fx.ledger.submissions.Create(context.Background(), &models.Submission{
		AssignmentID: 10,
		StudentID:    5,
		Status:       models.SubmissionStatusSubmitted,
	}))

	overview, err := fx.svc.AdminOverview(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, overview.Students)
	require.EqualValues(t, 3, overview.Courses)
	require.EqualValues(t, 3, overview.Assignments)
	require.EqualValues(t, 1, overview.Submissions)
	require.False(t, overview.GeneratedAt.IsZero())
}
