package dto

import "time"

// CourseStanding summarizes one course on a student dashboard. Average and
// LetterGrade are null until at least one grade exists.
type CourseStanding struct {
	CourseID    uint     `json:"course_id"`
	CourseName  string   `json:"course_name"`
	Semester    string   `json:"semester"`
	Average     *float64 `json:"average"`
	LetterGrade *string  `json:"letter_grade"`
	GradedCount int      `json:"graded_count"`
}

// SubmissionSummary tallies a student's submission pipeline.
type SubmissionSummary struct {
	Total     int `json:"total"`
	Submitted int `json:"submitted"`
	Graded    int `json:"graded"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// StudentDashboardResponse aggregates one student's standing.
type StudentDashboardResponse struct {
	StudentID   uint              `json:"student_id"`
	GPA         *float64          `json:"gpa"`
	Courses     []CourseStanding  `json:"courses"`
	Submissions SubmissionSummary `json:"submissions"`
	Attendance  AttendanceSummary `json:"attendance"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// ParentDashboardResponse aggregates the standing of each linked child.
type ParentDashboardResponse struct {
	ParentID    uint                       `json:"parent_id"`
	Children    []StudentDashboardResponse `json:"children"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// AdminOverviewResponse reports school-wide entity counts.
type AdminOverviewResponse struct {
	Students    int64     `json:"students"`
	Courses     int64     `json:"courses"`
	Assignments int64     `json:"assignments"`
	Submissions int64     `json:"submissions"`
	GeneratedAt time.Time `json:"generated_at"`
}
