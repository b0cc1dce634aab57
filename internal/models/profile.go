package models

import "encoding/json"

// ProfileKind tags which role-specific shape a Profile carries.
type ProfileKind string

const (
	ProfileAdmin   ProfileKind = "admin"
	ProfileDoctor  ProfileKind = "doctor"
	ProfilePatient ProfileKind = "patient"
)

// Profile is a tagged variant over the three role-specific profile shapes.
// Exactly one of Admin, Doctor or Patient is set, matching Kind.
type Profile struct {
	Kind    ProfileKind
	Admin   *AccountSanitized
	Doctor  *Doctor
	Patient *Patient
}

// MarshalJSON flattens the selected shape under a "kind" tag.
func (p Profile) MarshalJSON() ([]byte, error) {
	var body any
	switch p.Kind {
	case ProfileAdmin:
		body = p.Admin
	case ProfileDoctor:
		body = p.Doctor
	case ProfilePatient:
		body = p.Patient
	}
	return json.Marshal(struct {
		Kind ProfileKind `json:"kind"`
		Data any         `json:"data"`
	}{Kind: p.Kind, Data: body})
}
