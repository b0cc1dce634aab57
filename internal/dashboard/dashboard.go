// Package dashboard derives the per-role landing page figures from the
// ledger and the reference tables. Nothing here mutates state.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hams-server/internal/ledger"
	"hams-server/internal/models"
	"hams-server/internal/reference"
)

const (
	recentAppointmentsShown = 5
	recentRecordsShown      = 3
)

// Dashboard carries exactly one role-specific summary, matching Role.
type Dashboard struct {
	Role    models.Role   `json:"role"`
	Admin   *AdminStats   `json:"admin,omitempty"`
	Doctor  *DoctorStats  `json:"doctor,omitempty"`
	Patient *PatientStats `json:"patient,omitempty"`
}

type AdminStats struct {
	TotalPatients         int                  `json:"totalPatients"`
	TotalDoctors          int                  `json:"totalDoctors"`
	TodayAppointments     int                  `json:"todayAppointments"`
	UnpaidInvoices        int                  `json:"unpaidInvoices"`
	TotalRevenue          float64              `json:"totalRevenue"`
	AverageInvoice        float64              `json:"averageInvoice"`
	CompletedAppointments int                  `json:"completedAppointments"`
	CancelledAppointments int                  `json:"cancelledAppointments"`
	RecentAppointments    []models.Appointment `json:"recentAppointments"`
}

type DoctorStats struct {
	Doctor            models.Doctor        `json:"doctor"`
	TodayAppointments []models.Appointment `json:"todayAppointments"`
	TodayCount        int                  `json:"todayCount"`
	CompletedToday    int                  `json:"completedToday"`
	TotalPatients     int                  `json:"totalPatients"`
	RecentRecords     int                  `json:"recentRecords"`
}

type PatientStats struct {
	Patient         models.Patient         `json:"patient"`
	UpcomingCount   int                    `json:"upcomingCount"`
	NextAppointment *models.Appointment    `json:"nextAppointment,omitempty"`
	TotalRecords    int                    `json:"totalRecords"`
	RecentRecords   []models.MedicalRecord `json:"recentRecords"`
	UnpaidInvoices  []models.Invoice       `json:"unpaidInvoices"`
	UnpaidAmount    float64                `json:"unpaidAmount"`
}

// Builder assembles dashboards.
type Builder struct {
	ledger *ledger.Ledger
	dir    *reference.Directory
	now    func() time.Time
}

// NewBuilder creates a Builder. A nil now uses time.Now.
func NewBuilder(l *ledger.Ledger, dir *reference.Directory, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{ledger: l, dir: dir, now: now}
}

// For builds the dashboard matching the actor's role.
func (b *Builder) For(ctx context.Context, actor models.Actor) (Dashboard, error) {
	appointments, err := b.ledger.List(ctx, actor, ledger.Filter{})
	if err != nil {
		return Dashboard{}, err
	}

	now := b.now()
	switch actor.Role {
	case models.RoleAdmin:
		return Dashboard{Role: actor.Role, Admin: b.admin(appointments, now)}, nil
	case models.RoleDoctor:
		doctor, ok := b.dir.GetDoctor(actor.DoctorID)
		if !ok {
			return Dashboard{}, &ledger.Error{Kind: ledger.KindInvalidReference, Message: fmt.Sprintf("doctor %s does not exist", actor.DoctorID)}
		}
		return Dashboard{Role: actor.Role, Doctor: b.doctor(doctor, appointments, now)}, nil
	case models.RolePatient:
		patient, ok := b.dir.GetPatient(actor.PatientID)
		if !ok {
			return Dashboard{}, &ledger.Error{Kind: ledger.KindInvalidReference, Message: fmt.Sprintf("patient %s does not exist", actor.PatientID)}
		}
		return Dashboard{Role: actor.Role, Patient: b.patient(patient, appointments, now)}, nil
	}
	return Dashboard{}, &ledger.Error{Kind: ledger.KindForbidden, Message: fmt.Sprintf("no dashboard for role %q", actor.Role)}
}

func (b *Builder) admin(appointments []models.Appointment, now time.Time) *AdminStats {
	invoices := b.dir.Invoices("")
	stats := &AdminStats{
		TotalPatients: len(b.dir.Patients("")),
		TotalDoctors:  len(b.dir.Doctors()),
	}

	for i := range appointments {
		apt := &appointments[i]
		if sameDay(apt.StartTime, now) {
			stats.TodayAppointments++
		}
		switch apt.Status {
		case models.StatusCompleted:
			stats.CompletedAppointments++
		case models.StatusCancelled:
			stats.CancelledAppointments++
		}
	}

	for i := range invoices {
		inv := &invoices[i]
		if inv.Outstanding() {
			stats.UnpaidInvoices++
		}
		if inv.Status == models.InvoicePaid {
			stats.TotalRevenue += inv.Amount
		}
	}
	stats.AverageInvoice = stats.TotalRevenue / float64(max(len(invoices), 1))

	stats.RecentAppointments = make([]models.Appointment, 0, recentAppointmentsShown)
	for i := len(appointments) - 1; i >= 0 && len(stats.RecentAppointments) < recentAppointmentsShown; i-- {
		stats.RecentAppointments = append(stats.RecentAppointments, appointments[i])
	}
	return stats
}

func (b *Builder) doctor(doctor models.Doctor, appointments []models.Appointment, now time.Time) *DoctorStats {
	stats := &DoctorStats{
		Doctor:            doctor,
		TodayAppointments: []models.Appointment{},
		RecentRecords:     len(b.dir.MedicalRecords("", doctor.ID)),
	}

	patients := make(map[string]struct{})
	for _, apt := range appointments {
		patients[apt.PatientID] = struct{}{}
		if !sameDay(apt.StartTime, now) {
			continue
		}
		stats.TodayAppointments = append(stats.TodayAppointments, apt)
		if apt.Status == models.StatusCompleted {
			stats.CompletedToday++
		}
	}
	sortByStart(stats.TodayAppointments)
	stats.TodayCount = len(stats.TodayAppointments)
	stats.TotalPatients = len(patients)
	return stats
}

func (b *Builder) patient(patient models.Patient, appointments []models.Appointment, now time.Time) *PatientStats {
	records := b.dir.MedicalRecords(patient.ID, "")
	stats := &PatientStats{
		Patient:        patient,
		TotalRecords:   len(records),
		RecentRecords:  records[:min(len(records), recentRecordsShown)],
		UnpaidInvoices: []models.Invoice{},
	}

	var upcoming []models.Appointment
	for _, apt := range appointments {
		if apt.Status == models.StatusScheduled && apt.StartTime.After(now) {
			upcoming = append(upcoming, apt)
		}
	}
	sortByStart(upcoming)
	stats.UpcomingCount = len(upcoming)
	if len(upcoming) > 0 {
		next := upcoming[0]
		stats.NextAppointment = &next
	}

	for _, inv := range b.dir.Invoices(patient.ID) {
		if inv.Outstanding() {
			stats.UnpaidInvoices = append(stats.UnpaidInvoices, inv)
			stats.UnpaidAmount += inv.Amount
		}
	}
	return stats
}

// sameDay compares local calendar dates in ref's location.
func sameDay(t, ref time.Time) bool {
	t = t.In(ref.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func sortByStart(appointments []models.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].StartTime.Before(appointments[j].StartTime)
	})
}
