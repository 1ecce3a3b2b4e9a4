package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog captures auditable actions such as recording a grade or
// marking attendance.
type ActivityLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ActorID    uint              `gorm:"not null" json:"actor_id"`
	ActorRole  string            `gorm:"size:32;not null" json:"actor_role"`
	Action     string            `gorm:"size:64;not null" json:"action"`
	TargetType string            `gorm:"size:64;not null" json:"target_type"`
	TargetID   *uint             `json:"target_id"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
}
