package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avalon-edu/campus-api/internal/models"
)

func TestGradebookMatrix(t *testing.T) {
	assignmentEssay := uint(10)
	assignmentQuiz := uint(11)

	courses := &fakeCourseRepo{
		courses: map[uint]models.Course{1: {ID: 1, Name: "Algebra", TeacherID: 7}},
		roster: map[uint][]models.Student{1: {
			{ID: 5, Name: "Dana"},
			{ID: 6, Name: "Riley"},
		}},
	}
	assignments := &fakeAssignmentRepo{items: map[uint]models.Assignment{
		10: {ID: 10, CourseID: 1, Title: "Essay", TotalPoints: 50},
		11: {ID: 11, CourseID: 1, Title: "Quiz", TotalPoints: 20},
	}}
	grades := &fakeGradeRepo{grades: []models.Grade{
		{ID: 1, StudentID: 5, CourseID: 1, AssignmentID: &assignmentEssay, PointsEarned: 45, PointsPossible: 50},
		{ID: 2, StudentID: 5, CourseID: 1, AssignmentID: &assignmentQuiz, PointsEarned: 18, PointsPossible: 20},
	}}

	svc := NewGradebookService(courses, assignments, grades, testLogger())

	matrix, err := svc.Matrix(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, uint(1), matrix.CourseID)
	require.Len(t, matrix.Assignments, 2)
	require.Len(t, matrix.Rows, 2)

	var dana, riley int
	for i, row := range matrix.Rows {
		switch row.StudentID {
		case 5:
			dana = i
		case 6:
			riley = i
		}
	}

	require.NotNil(t, matrix.Rows[dana].Average)
	// 63 of 70 points is 90%.
	require.Equal(t, 90.0, *matrix.Rows[dana].Average)
	require.Equal(t, "A", *matrix.Rows[dana].LetterGrade)
	require.Len(t, matrix.Rows[dana].Cells, 2)

	// Students with no grades still get a row, with empty cells and no average.
	require.Nil(t, matrix.Rows[riley].Average)
	require.Nil(t, matrix.Rows[riley].LetterGrade)
	for _, cell := range matrix.Rows[riley].Cells {
		require.Nil(t, cell.PointsEarned)
	}
}

func TestGradebookMatrixUnknownCourse(t *testing.T) {
	svc := NewGradebookService(&fakeCourseRepo{courses: map[uint]models.Course{}}, &fakeAssignmentRepo{items: map[uint]models.Assignment{}}, &fakeGradeRepo{}, testLogger())

	_, err := svc.Matrix(context.Background(), 99)
	require.ErrorIs(t, err, ErrCourseNotFound)
}
