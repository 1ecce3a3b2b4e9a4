package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/avalon-edu/campus-api/internal/dto"
	"github.com/avalon-edu/campus-api/internal/models"
)

func newAssignmentFixture() (*fakeAssignmentRepo, AssignmentService) {
	assignments := &fakeAssignmentRepo{items: map[uint]models.Assignment{}}
	courses := &fakeCourseRepo{courses: map[uint]models.Course{
		1: {ID: 1, Name: "Algebra", TeacherID: 7},
	}}
	svc := NewAssignmentService(assignments, courses, validator.New(), testLogger())
	return assignments, svc
}

func TestCreateAssignment(t *testing.T) {
	_, svc := newAssignmentFixture()

	created, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		CourseID:    1,
		Title:       "Essay",
		DueDate:     time.Date(2026, 4, 1, 23, 59, 0, 0, time.UTC),
		TotalPoints: 50,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, 50.0, created.TotalPoints)
}

func TestCreateAssignmentUnknownCourse(t *testing.T) {
	_, svc := newAssignmentFixture()

	_, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		CourseID:    99,
		Title:       "Essay",
		DueDate:     time.Now(),
		TotalPoints: 50,
	})
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestUpdateAssignmentPartial(t *testing.T) {
	assignments, svc := newAssignmentFixture()
	assignments.items[10] = models.Assignment{ID: 10, CourseID: 1, Title: "Essay", TotalPoints: 50}

	points := 60.0
	updated, err := svc.Update(context.Background(), 10, dto.AssignmentUpdateRequest{TotalPoints: &points})
	require.NoError(t, err)
	require.Equal(t, 60.0, updated.TotalPoints)
	require.Equal(t, "Essay", updated.Title)
}

func TestUpdateAssignmentNotFound(t *testing.T) {
	_, svc := newAssignmentFixture()

	title := "Renamed"
	_, err := svc.Update(context.Background(), 404, dto.AssignmentUpdateRequest{Title: &title})
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}
