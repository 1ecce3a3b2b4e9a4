package dto

// GradebookCell is one (student, assignment) intersection in the gradebook
// matrix. PointsEarned is null when no grade has been recorded yet.
type GradebookCell struct {
	AssignmentID uint     `json:"assignment_id"`
	PointsEarned *float64 `json:"points_earned"`
}

// GradebookRow carries one student's cells plus the derived aggregate.
type GradebookRow struct {
	StudentID   uint            `json:"student_id"`
	StudentName string          `json:"student_name"`
	Cells       []GradebookCell `json:"cells"`
	Average     *float64        `json:"average"`
	LetterGrade *string         `json:"letter_grade"`
}

// GradebookResponse is the teacher-facing matrix for one course.
type GradebookResponse struct {
	CourseID    uint                 `json:"course_id"`
	Assignments []AssignmentResponse `json:"assignments"`
	Rows        []GradebookRow       `json:"rows"`
}
