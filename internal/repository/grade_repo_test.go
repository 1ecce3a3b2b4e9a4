package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avalon-edu/campus-api/internal/models"
	"github.com/avalon-edu/campus-api/internal/repository"
)

func openRepoDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Submission{},
		&models.Grade{},
		&models.AttendanceRecord{},
	))

	return db
}

func TestSaveWithSubmissionPersistsBoth(t *testing.T) {
	db := openRepoDB(t, "graderepo_both")
	repo := repository.NewGradeRepository(db)

	submission := models.Submission{
		AssignmentID: 10,
		StudentID:    5,
		ContentText:  "draft",
		SubmittedAt:  time.Now(),
		Status:       models.SubmissionStatusSubmitted,
	}
	require.NoError(t, db.Create(&submission).Error)

	points := 42.0
	gradedAt := time.Now()
	submission.Status = models.SubmissionStatusGraded
	submission.PointsEarned = &points
	submission.GradedAt = &gradedAt

	assignmentID := uint(10)
	grade := models.Grade{
		StudentID:      5,
		CourseID:       1,
		AssignmentID:   &assignmentID,
		GradeType:      models.GradeTypeAssignment,
		PointsEarned:   42,
		PointsPossible: 50,
	}

	require.NoError(t, repo.SaveWithSubmission(context.Background(), &grade, &submission))
	require.NotZero(t, grade.ID)

	stored, err := repo.GetByStudentAndAssignment(context.Background(), 5, 10)
	require.NoError(t, err)
	require.Equal(t, 42.0, stored.PointsEarned)

	var synced models.Submission
	require.NoError(t, db.First(&synced, submission.ID).Error)
	require.Equal(t, models.SubmissionStatusGraded, synced.Status)
	require.NotNil(t, synced.PointsEarned)
}

func TestSaveWithSubmissionRollsBackOnFailure(t *testing.T) {
	db := openRepoDB(t, "graderepo_rollback")
	repo := repository.NewGradeRepository(db)

	existing := models.Submission{
		AssignmentID: 10,
		StudentID:    5,
		ContentText:  "original",
		SubmittedAt:  time.Now(),
		Status:       models.SubmissionStatusSubmitted,
	}
	require.NoError(t, db.Create(&existing).Error)

	// A second row for the same (student, assignment) pair violates the
	// unique index, so the submission write inside the transaction fails.
	duplicate := models.Submission{
		AssignmentID: 10,
		StudentID:    5,
		ContentText:  "copy",
		SubmittedAt:  time.Now(),
		Status:       models.SubmissionStatusSubmitted,
	}

	assignmentID := uint(10)
	grade := models.Grade{
		StudentID:      5,
		CourseID:       1,
		AssignmentID:   &assignmentID,
		GradeType:      models.GradeTypeAssignment,
		PointsEarned:   42,
		PointsPossible: 50,
	}

	err := repo.SaveWithSubmission(context.Background(), &grade, &duplicate)
	require.Error(t, err)

	var gradeCount int64
	require.NoError(t, db.Model(&models.Grade{}).Count(&gradeCount).Error)
	require.Zero(t, gradeCount)

	var submissionCount int64
	require.NoError(t, db.Model(&models.Submission{}).Count(&submissionCount).Error)
	require.EqualValues(t, 1, submissionCount)
}

func TestListByStudentFiltersByCourse(t *testing.T) {
	db := openRepoDB(t, "graderepo_list")
	repo := repository.NewGradeRepository(db)

	a1, a2 := uint(10), uint(20)
	require.NoError(t, db.Create(&models.Grade{StudentID: 5, CourseID: 1, AssignmentID: &a1, GradeType: models.GradeTypeAssignment, PointsEarned: 40, PointsPossible: 50}).Error)
	require.NoError(t, db.Create(&models.Grade{StudentID: 5, CourseID: 2, AssignmentID: &a2, GradeType: models.GradeTypeAssignment, PointsEarned: 80, PointsPossible: 100}).Error)

	all, err := repo.ListByStudent(context.Background(), 5, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	courseID := uint(2)
	scoped, err := repo.ListByStudent(context.Background(), 5, &courseID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, uint(2), scoped[0].CourseID)
}

func TestAttendanceUpsertReplacesStatus(t *testing.T) {
	db := openRepoDB(t, "attendancerepo_upsert")
	repo := repository.NewAttendanceRepository(db)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	first := models.AttendanceRecord{StudentID: 5, CourseID: 1, Date: day, Status: models.AttendanceAbsent}
	require.NoError(t, repo.Upsert(context.Background(), &first))

	second := models.AttendanceRecord{StudentID: 5, CourseID: 1, Date: day, Status: models.AttendanceTardy}
	require.NoError(t, repo.Upsert(context.Background(), &second))

	studentID := uint(5)
	records, err := repo.List(context.Background(), repository.AttendanceFilter{StudentID: &studentID})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, models.AttendanceTardy, records[0].Status)
}
