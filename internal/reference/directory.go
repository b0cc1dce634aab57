// Package reference holds the externally owned lookup tables the ledger and
// the dashboards read from. Tables are immutable after construction.
package reference

import (
	"sort"
	"strings"

	"hams-server/internal/models"
)

// Directory is an in-memory set of reference tables keyed by id.
type Directory struct {
	departments []models.Department
	doctors     []models.Doctor
	patients    []models.Patient
	accounts    []models.Account
	records     []models.MedicalRecord
	invoices    []models.Invoice
}

// Tables is the raw input to New.
type Tables struct {
	Departments    []models.Department
	Doctors        []models.Doctor
	Patients       []models.Patient
	Accounts       []models.Account
	MedicalRecords []models.MedicalRecord
	Invoices       []models.Invoice
}

// New builds a Directory from already-loaded tables.
func New(t Tables) *Directory {
	return &Directory{
		departments: t.Departments,
		doctors:     t.Doctors,
		patients:    t.Patients,
		accounts:    t.Accounts,
		records:     t.MedicalRecords,
		invoices:    t.Invoices,
	}
}

func (d *Directory) GetDoctor(id string) (models.Doctor, bool) {
	for _, doc := range d.doctors {
		if doc.ID == id {
			return doc, true
		}
	}
	return models.Doctor{}, false
}

func (d *Directory) GetPatient(id string) (models.Patient, bool) {
	for _, p := range d.patients {
		if p.ID == id {
			return p, true
		}
	}
	return models.Patient{}, false
}

func (d *Directory) GetDepartment(id string) (models.Department, bool) {
	for _, dep := range d.departments {
		if dep.ID == id {
			return dep, true
		}
	}
	return models.Department{}, false
}

// DoctorByUserID resolves the doctor profile linked to an account.
func (d *Directory) DoctorByUserID(userID string) (models.Doctor, bool) {
	for _, doc := range d.doctors {
		if doc.UserID == userID {
			return doc, true
		}
	}
	return models.Doctor{}, false
}

// PatientByUserID resolves the patient profile linked to an account.
func (d *Directory) PatientByUserID(userID string) (models.Patient, bool) {
	for _, p := range d.patients {
		if p.UserID == userID {
			return p, true
		}
	}
	return models.Patient{}, false
}

// AccountByEmail matches emails case-insensitively.
func (d *Directory) AccountByEmail(email string) (models.Account, bool) {
	for _, a := range d.accounts {
		if strings.EqualFold(a.Email, strings.TrimSpace(email)) {
			return a, true
		}
	}
	return models.Account{}, false
}

func (d *Directory) AccountByID(id string) (models.Account, bool) {
	for _, a := range d.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return models.Account{}, false
}

func (d *Directory) Departments() []models.Department {
	return append([]models.Department(nil), d.departments...)
}

func (d *Directory) Doctors() []models.Doctor {
	return append([]models.Doctor(nil), d.doctors...)
}

// Patients returns patients whose name, email or blood group contains search
// (case-insensitive) or whose phone contains it verbatim. Empty search returns all.
func (d *Directory) Patients(search string) []models.Patient {
	if search == "" {
		return append([]models.Patient(nil), d.patients...)
	}
	needle := strings.ToLower(search)
	var out []models.Patient
	for _, p := range d.patients {
		if strings.Contains(strings.ToLower(p.FullName), needle) ||
			strings.Contains(strings.ToLower(p.Email), needle) ||
			strings.Contains(p.Phone, search) ||
			strings.Contains(strings.ToLower(p.BloodGroup), needle) {
			out = append(out, p)
		}
	}
	return out
}

// MedicalRecords filters by patient and/or doctor; empty ids match everything.
// Records are returned newest visit first.
func (d *Directory) MedicalRecords(patientID, doctorID string) []models.MedicalRecord {
	var out []models.MedicalRecord
	for _, r := range d.records {
		if patientID != "" && r.PatientID != patientID {
			continue
		}
		if doctorID != "" && r.DoctorID != doctorID {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].VisitDate > out[j].VisitDate })
	return out
}

// Invoices filters by patient; an empty id returns every invoice.
func (d *Directory) Invoices(patientID string) []models.Invoice {
	var out []models.Invoice
	for _, inv := range d.invoices {
		if patientID == "" || inv.PatientID == patientID {
			out = append(out, inv)
		}
	}
	return out
}
