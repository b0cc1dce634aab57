package models

import (
	"strings"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// ParseAppointmentStatus accepts any casing of a known status.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusScheduled:
		return StatusScheduled, true
	case StatusCompleted:
		return StatusCompleted, true
	case StatusCancelled:
		return StatusCancelled, true
	}
	return "", false
}

// IsTerminal reports whether no further transitions are permitted.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment represents a booked slot for one doctor.
// The display names are snapshotted at booking time and never re-synced.
type Appointment struct {
	BaseModel
	PatientID      string            `gorm:"size:36;index" json:"patientId"`
	DoctorID       string            `gorm:"size:36;index:idx_doctor_slot" json:"doctorId"`
	DepartmentID   string            `gorm:"size:36" json:"departmentId"`
	StartTime      time.Time         `gorm:"index:idx_doctor_slot" json:"startTime"`
	EndTime        time.Time         `json:"endTime"`
	Status         AppointmentStatus `gorm:"size:20;default:'SCHEDULED'" json:"status"`
	Reason         string            `gorm:"size:255" json:"reason"`
	PatientName    string            `gorm:"size:255" json:"patientName"`
	DoctorName     string            `gorm:"size:255" json:"doctorName"`
	DepartmentName string            `gorm:"size:255" json:"departmentName"`
}

// Overlaps reports whether [start, end) shares an instant with the appointment's slot.
// Touching boundaries do not overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime)
}

// BlocksSlot reports whether the appointment takes part in conflict detection.
func (a *Appointment) BlocksSlot() bool {
	return a.Status != StatusCancelled
}
