package models

import "time"

// Department is a hospital department.
type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Doctor is the clinical profile linked to a doctor account.
type Doctor struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	DepartmentID   string    `json:"departmentId"`
	Specialty      string    `json:"specialty"`
	Bio            string    `json:"bio"`
	ShiftStartTime string    `json:"shiftStartTime"` // HH:MM local wall-clock
	ShiftEndTime   string    `json:"shiftEndTime"`
	FullName       string    `json:"fullName"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Patient is the demographic profile linked to a patient account.
type Patient struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	DOB            string    `json:"dob"`
	Gender         string    `json:"gender"`
	Address        string    `json:"address"`
	BloodGroup     string    `json:"bloodGroup"`
	MedicalHistory string    `json:"medicalHistory"`
	FullName       string    `json:"fullName"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
