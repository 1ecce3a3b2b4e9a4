package models

import "time"

// Grade is a persisted (points_earned, points_possible) pair tied to a
// student and course, and optionally to one assignment. A grade is created
// the first time a score is recorded for a (student, assignment) pair and
// updated in place afterwards.
type Grade struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      uint      `gorm:"not null;uniqueIndex:idx_grade_pair" json:"student_id"`
	CourseID       uint      `gorm:"not null;index" json:"course_id"`
	AssignmentID   *uint     `gorm:"uniqueIndex:idx_grade_pair" json:"assignment_id"`
	GradeType      string    `gorm:"size:32;not null;default:assignment" json:"grade_type"`
	PointsEarned   float64   `gorm:"not null" json:"points_earned"`
	PointsPossible float64   `gorm:"not null" json:"points_possible"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GradeTypeAssignment tags grades derived from assignment scoring.
const GradeTypeAssignment = "assignment"
