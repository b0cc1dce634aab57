package models

import (
	"time"
)

// MedicalRecord represents a visit note written by a doctor for a patient.
type MedicalRecord struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patientId"`
	DoctorID      string    `json:"doctorId"`
	VisitDate     string    `json:"visitDate"` // YYYY-MM-DD
	Notes         string    `json:"notes"`
	Diagnosis     string    `json:"diagnosis"`
	Prescriptions string    `json:"prescriptions"`
	PatientName   string    `json:"patientName"`
	DoctorName    string    `json:"doctorName"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
