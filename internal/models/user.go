package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

// Account represents a login identity. Doctor and patient accounts link to
// their reference entity through DoctorID or PatientID.
type Account struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"-"` // bcrypt hash, never sent in JSON
	FullName  string `json:"fullName"`
	Role      Role   `json:"role"`
	Phone     string `json:"phone"`
	IsActive  bool   `json:"isActive"`
	PatientID string `json:"patientId,omitempty"`
	DoctorID  string `json:"doctorId,omitempty"`
}

// AccountSanitized represents the account data that is safe to send in API responses.
type AccountSanitized struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Role      Role   `json:"role"`
	Phone     string `json:"phone"`
	IsActive  bool   `json:"isActive"`
	PatientID string `json:"patientId,omitempty"`
	DoctorID  string `json:"doctorId,omitempty"`
}

// SetPassword hashes a password and sets it on the account
func (a *Account) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the account's hashed password
func (a *Account) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	return err == nil
}

// Sanitize creates an AccountSanitized struct, excluding sensitive data.
func (a *Account) Sanitize() AccountSanitized {
	return AccountSanitized{
		ID:        a.ID,
		Email:     a.Email,
		FullName:  a.FullName,
		Role:      a.Role,
		Phone:     a.Phone,
		IsActive:  a.IsActive,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
	}
}

// Actor is the session identity the ledger trusts for authorization.
type Actor struct {
	UserID    string
	Role      Role
	PatientID string
	DoctorID  string
}

// ActorFor builds the session identity of an account.
func ActorFor(a *Account) Actor {
	return Actor{
		UserID:    a.ID,
		Role:      a.Role,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
	}
}
