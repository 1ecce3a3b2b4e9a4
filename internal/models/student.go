package models

import "time"

// Student represents an enrolled learner.
type Student struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	GradeLevel     string    `gorm:"size:32" json:"grade_level"`
	GraduationYear *int      `json:"graduation_year"`
	ParentID       *uint     `json:"parent_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
