package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusScheduled = "scheduled"
	StatusDone      = "done"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	gorm.Model
	Name        string    `gorm:"column:name;size:255;not null" json:"name"`
	Email       string    `gorm:"column:email;size:255;not null" json:"email"`
	Phone       string    `gorm:"column:phone;size:20;not null" json:"phone"`
	Message     string    `gorm:"column:message;type:text" json:"message"`
	ScheduledAt time.Time `gorm:"column:scheduled_at;not null;uniqueIndex" json:"scheduled_at"`
	Status      string    `gorm:"column:status;size:50;default:scheduled" json:"status"`
	DoctorID    *uint     `gorm:"column:doctor_id" json:"doctor_id"`
	Remarks     string    `gorm:"column:remarks;type:text" json:"remarks"`
	Type        string    `gorm:"column:type;size:50" json:"type"`
}

// NormalizeStatus maps legacy values onto the closed status set. Rows written
// before the triage rework can still carry "confirmed", "pending" or an empty
// status; all of them read back as scheduled.
func NormalizeStatus(status string) string {
	switch status {
	case StatusDone, StatusCancelled:
		return status
	default:
		return StatusScheduled
	}
}

// ValidStatus reports whether status is one of the values the triage
// workflow is allowed to write.
func ValidStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusDone, StatusCancelled:
		return true
	}
	return false
}
