package models

import "time"

// Course is a class taught by one teacher during a term.
type Course struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	TeacherID   uint      `gorm:"not null" json:"teacher_id"`
	Period      string    `gorm:"size:32" json:"period"`
	SchoolYear  string    `gorm:"size:16;not null" json:"school_year"`
	Semester    string    `gorm:"size:16;not null" json:"semester"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Assignments []Assignment `json:"assignments,omitempty"`
}

// Enrollment links a student to a course.
type Enrollment struct {
	StudentID uint      `gorm:"primaryKey" json:"student_id"`
	CourseID  uint      `gorm:"primaryKey" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`

	Student Student `gorm:"constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Course  Course  `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty"`
}
