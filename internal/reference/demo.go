package reference

import (
	"fmt"
	"time"

	"hams-server/internal/models"
)

var seedEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

// demoAccount pairs an account with its plaintext demo password.
type demoAccount struct {
	account  models.Account
	password string
}

var demoAccounts = []demoAccount{
	{models.Account{ID: "1", Email: "admin@hams.test", FullName: "System Administrator", Role: models.RoleAdmin, Phone: "+1-555-0001", IsActive: true}, "Admin@123"},
	{models.Account{ID: "2", Email: "drsmith@hams.test", FullName: "Dr. Sarah Smith", Role: models.RoleDoctor, Phone: "+1-555-0002", IsActive: true, DoctorID: "1"}, "Doctor@123"},
	{models.Account{ID: "3", Email: "john@hams.test", FullName: "John Doe", Role: models.RolePatient, Phone: "+1-555-0003", IsActive: true, PatientID: "1"}, "Patient@123"},
	{models.Account{ID: "4", Email: "drjohnson@hams.test", FullName: "Dr. Michael Johnson", Role: models.RoleDoctor, Phone: "+1-555-0004", IsActive: true, DoctorID: "2"}, "Doctor@123"},
	{models.Account{ID: "5", Email: "jane@hams.test", FullName: "Jane Smith", Role: models.RolePatient, Phone: "+1-555-0005", IsActive: true, PatientID: "2"}, "Patient@123"},
}

func demoDepartments() []models.Department {
	rows := []struct{ id, name, desc string }{
		{"1", "Cardiology", "Heart and cardiovascular system care"},
		{"2", "Neurology", "Brain and nervous system disorders"},
		{"3", "Orthopedics", "Bone, joint, and muscle treatment"},
		{"4", "Pediatrics", "Medical care for infants, children, and adolescents"},
		{"5", "General Medicine", "Primary healthcare and general medical conditions"},
		{"6", "Radiology", "Medical imaging and diagnostic procedures"},
	}
	out := make([]models.Department, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Department{ID: r.id, Name: r.name, Description: r.desc, CreatedAt: seedEpoch, UpdatedAt: seedEpoch})
	}
	return out
}

func demoDoctors() []models.Doctor {
	doctors := []models.Doctor{
		{ID: "1", UserID: "2", DepartmentID: "1", Specialty: "Interventional Cardiology",
			Bio:            "Dr. Sarah Smith is a leading cardiologist with over 15 years of experience.",
			ShiftStartTime: "08:00", ShiftEndTime: "16:00", FullName: "Dr. Sarah Smith", Phone: "+1-555-0002", Email: "drsmith@hams.test"},
		{ID: "2", UserID: "4", DepartmentID: "2", Specialty: "Neurological Surgery",
			Bio:            "Dr. Michael Johnson specializes in complex brain surgeries.",
			ShiftStartTime: "07:00", ShiftEndTime: "15:00", FullName: "Dr. Michael Johnson", Phone: "+1-555-0004", Email: "drjohnson@hams.test"},
		{ID: "3", UserID: "6", DepartmentID: "3", Specialty: "Sports Medicine",
			Bio:            "Dr. Emily Davis focuses on sports-related injuries and rehabilitation.",
			ShiftStartTime: "09:00", ShiftEndTime: "17:00", FullName: "Dr. Emily Davis", Phone: "+1-555-0006", Email: "drdavis@hams.test"},
		{ID: "4", UserID: "7", DepartmentID: "4", Specialty: "Pediatric Emergency Medicine",
			Bio:            "Dr. Robert Wilson provides emergency care for children.",
			ShiftStartTime: "12:00", ShiftEndTime: "20:00", FullName: "Dr. Robert Wilson", Phone: "+1-555-0007", Email: "drwilson@hams.test"},
		{ID: "5", UserID: "8", DepartmentID: "5", Specialty: "Internal Medicine",
			Bio:            "Dr. Lisa Anderson provides comprehensive adult medical care.",
			ShiftStartTime: "08:30", ShiftEndTime: "16:30", FullName: "Dr. Lisa Anderson", Phone: "+1-555-0008", Email: "dranderson@hams.test"},
	}
	for i := range doctors {
		doctors[i].CreatedAt, doctors[i].UpdatedAt = seedEpoch, seedEpoch
	}
	return doctors
}

func demoPatients() []models.Patient {
	patients := []models.Patient{
		{ID: "1", UserID: "3", DOB: "1985-03-15", Gender: "Male", Address: "123 Main St, Springfield, IL 62701",
			BloodGroup: "O+", MedicalHistory: "Hypertension, controlled with medication",
			FullName: "John Doe", Phone: "+1-555-0003", Email: "john@hams.test"},
		{ID: "2", UserID: "5", DOB: "1990-07-22", Gender: "Female", Address: "456 Oak Ave, Springfield, IL 62702",
			BloodGroup: "A+", MedicalHistory: "Allergies to penicillin",
			FullName: "Jane Smith", Phone: "+1-555-0005", Email: "jane@hams.test"},
		{ID: "3", UserID: "9", DOB: "1975-12-10", Gender: "Male", Address: "789 Pine St, Springfield, IL 62703",
			BloodGroup: "B+", MedicalHistory: "Diabetes Type 2, managed with diet and medication",
			FullName: "Robert Brown", Phone: "+1-555-0009", Email: "robert@hams.test"},
	}
	for i := range patients {
		patients[i].CreatedAt, patients[i].UpdatedAt = seedEpoch, seedEpoch
	}
	return patients
}

func demoMedicalRecords() []models.MedicalRecord {
	return []models.MedicalRecord{
		{ID: "1", PatientID: "1", DoctorID: "1", VisitDate: "2024-01-15",
			Notes:         "Patient presented with chest pain. ECG normal. Prescribed medication for anxiety.",
			Diagnosis:     "Anxiety-related chest pain",
			Prescriptions: "Lorazepam 0.5mg as needed for anxiety",
			PatientName:   "John Doe", DoctorName: "Dr. Sarah Smith",
			CreatedAt: day(time.January, 15), UpdatedAt: day(time.January, 15)},
		{ID: "2", PatientID: "2", DoctorID: "2", VisitDate: "2024-01-20",
			Notes:         "Routine neurological examination. All reflexes normal.",
			Diagnosis:     "Normal neurological function",
			Prescriptions: "Continue current medications",
			PatientName:   "Jane Smith", DoctorName: "Dr. Michael Johnson",
			CreatedAt: day(time.January, 20), UpdatedAt: day(time.January, 20)},
	}
}

func demoInvoices() []models.Invoice {
	return []models.Invoice{
		{ID: "1", PatientID: "1", AppointmentID: "1", Amount: 250.00, Status: models.InvoicePaid,
			IssuedAt: day(time.January, 15), DueAt: day(time.February, 15), PatientName: "John Doe",
			Items: []models.InvoiceItem{
				{ID: "1", InvoiceID: "1", Description: "Consultation Fee", Quantity: 1, UnitPrice: 150.00},
				{ID: "2", InvoiceID: "1", Description: "ECG Test", Quantity: 1, UnitPrice: 100.00},
			},
			CreatedAt: day(time.January, 15), UpdatedAt: day(time.January, 15)},
		{ID: "2", PatientID: "2", AppointmentID: "2", Amount: 180.00, Status: models.InvoiceUnpaid,
			IssuedAt: day(time.January, 20), DueAt: day(time.February, 20), PatientName: "Jane Smith",
			Items: []models.InvoiceItem{
				{ID: "3", InvoiceID: "2", Description: "Neurological Consultation", Quantity: 1, UnitPrice: 180.00},
			},
			CreatedAt: day(time.January, 20), UpdatedAt: day(time.January, 20)},
	}
}

// NewDemo builds the demo hospital: six departments, five doctors, three
// patients and login accounts for the admin, two doctors and two patients.
func NewDemo() (*Directory, error) {
	accounts := make([]models.Account, 0, len(demoAccounts))
	for _, da := range demoAccounts {
		acc := da.account
		if err := acc.SetPassword(da.password); err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", acc.Email, err)
		}
		accounts = append(accounts, acc)
	}

	return New(Tables{
		Departments:    demoDepartments(),
		Doctors:        demoDoctors(),
		Patients:       demoPatients(),
		Accounts:       accounts,
		MedicalRecords: demoMedicalRecords(),
		Invoices:       demoInvoices(),
	}), nil
}
