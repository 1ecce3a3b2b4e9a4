package models

import "time"

// Submission is a student's delivered work for one assignment. At most one
// submission exists per (student, assignment) pair; resubmitting replaces the
// content of the existing row.
type Submission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssignmentID uint       `gorm:"not null;uniqueIndex:idx_submission_pair" json:"assignment_id"`
	StudentID    uint       `gorm:"not null;uniqueIndex:idx_submission_pair" json:"student_id"`
	ContentURL   string     `gorm:"size:512" json:"content_url"`
	ContentText  string     `gorm:"type:text" json:"content_text"`
	SubmittedAt  time.Time  `gorm:"not null" json:"submitted_at"`
	Status       string     `gorm:"size:32;not null" json:"status"`
	PointsEarned *float64   `json:"points_earned"`
	Feedback     string     `gorm:"type:text" json:"feedback"`
	GradedAt     *time.Time `json:"graded_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Assignment Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment,omitempty"`
	Student    Student    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student,omitempty"`
}

const (
	// SubmissionStatusSubmitted indicates work was delivered but not graded.
	SubmissionStatusSubmitted = "submitted"
	// SubmissionStatusResubmitted indicates the student replaced earlier work.
	SubmissionStatusResubmitted = "resubmitted"
	// SubmissionStatusGraded indicates a score has been recorded.
	SubmissionStatusGraded = "graded"
)

// IsGraded reports whether the submission carries a final score.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}
