package models

import "time"

// AttendanceRecord marks one student's presence in one course on one day.
type AttendanceRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_attendance_day" json:"student_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_attendance_day" json:"course_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_attendance_day" json:"date"`
	Status    string    `gorm:"size:16;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceTardy   = "tardy"
	AttendanceExcused = "excused"
)

// CountsAsAttended reports whether the status contributes to the attendance rate.
func (r AttendanceRecord) CountsAsAttended() bool {
	return r.Status == AttendancePresent || r.Status == AttendanceTardy
}
