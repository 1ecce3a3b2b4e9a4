package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/avalon-edu/campus-api/internal/dto"
	"github.com/avalon-edu/campus-api/internal/models"
)

func newStudentFixture() (StudentService, *fakeStudentRepo) {
	repo := &fakeStudentRepo{students: map[uint]models.Student{}}
	svc := NewStudentService(repo, validator.New(validator.WithRequiredStructEnabled()), testLogger())
	return svc, repo
}

func TestStudentCreateNormalizesEmail(t *testing.T) {
	svc, repo := newStudentFixture()

	resp, err := svc.Create(context.Background(), dto.StudentCreateRequest{
		Name:  "  Dana Whitfield ",
		Email: "Dana.Whitfield@Example.EDU",
	})
	require.NoError(t, err)
	require.Equal(t, "Dana Whitfield", resp.Name)
	require.Equal(t, "dana.whitfield@example.edu", resp.Email)
	require.Len(t, repo.students, 1)
}

func TestStudentCreateRejectsInvalidEmail(t *testing.T) {
	svc, repo := newStudentFixture()

	_, err := svc.Create(context.Background(), dto.StudentCreateRequest{
		Name:  "Dana",
		Email: "not-an-email",
	})
	require.Error(t, err)
	require.Empty(t, repo.students)
}

func TestStudentUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc, repo := newStudentFixture()
	repo.students[3] = models.Student{ID: 3, Name: "Riley", Email: "riley@example.edu", GradeLevel: "9"}

	level := "10"
	resp, err := svc.Update(context.Background(), 3, dto.StudentUpdateRequest{GradeLevel: &level})
	require.NoError(t, err)
	require.Equal(t, "10", resp.GradeLevel)
	require.Equal(t, "Riley", resp.Name)
	require.Equal(t, "riley@example.edu", resp.Email)
}

func TestStudentUpdateNotFound(t *testing.T) {
	svc, _ := newStudentFixture()

	name := "Ghost"
	_, err := svc.Update(context.Background(), 99, dto.StudentUpdateRequest{Name: &name})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentListDefaultsPagination(t *testing.T) {
	svc, repo := newStudentFixture()
	parentID := uint(40)
	repo.students[1] = models.Student{ID: 1, Name: "Dana", Email: "dana@example.edu", ParentID: &parentID}
	repo.students[2] = models.Student{ID: 2, Name: "Riley", Email: "riley@example.edu"}

	resp, err := svc.List(context.Background(), dto.StudentListRequest{PageSize: -5})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Page)
	require.Equal(t, 25, resp.PageSize)
	require.EqualValues(t, 2, resp.Total)

	scoped, err := svc.List(context.Background(), dto.StudentListRequest{ParentID: &parentID})
	require.NoError(t, err)
	require.EqualValues(t, 1, scoped.Total)
	require.Equal(t, "Dana", scoped.Students[0].Name)
}
