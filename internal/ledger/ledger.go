// Package ledger owns the appointment book: conflict detection, booking,
// cancellation and role-scoped listing.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hams-server/internal/logger"
	"hams-server/internal/models"
)

// DefaultDuration is the slot length used when a booking omits its end time.
const DefaultDuration = time.Hour

// Directory is the read-only reference data the ledger validates against.
type Directory interface {
	GetDoctor(id string) (models.Doctor, bool)
	GetPatient(id string) (models.Patient, bool)
	GetDepartment(id string) (models.Department, bool)
}

// Recorder receives booking outcomes, typically for metrics.
type Recorder interface {
	Booked(doctorID string)
	Conflicted(doctorID string)
	Cancelled(role models.Role)
}

type nopRecorder struct{}

func (nopRecorder) Booked(string)         {}
func (nopRecorder) Conflicted(string)     {}
func (nopRecorder) Cancelled(models.Role) {}

// Config tunes a Ledger. Zero values fall back to defaults.
type Config struct {
	Duration time.Duration
	Now      func() time.Time
	Logger   *logger.Logger
	Recorder Recorder
}

// Ledger is the appointment book for one application session.
type Ledger struct {
	store    Store
	dir      Directory
	duration time.Duration
	now      func() time.Time
	log      *logger.Logger
	recorder Recorder
}

// New creates a Ledger over store, validating references against dir.
func New(store Store, dir Directory, cfg Config) *Ledger {
	l := &Ledger{
		store:    store,
		dir:      dir,
		duration: cfg.Duration,
		now:      cfg.Now,
		log:      cfg.Logger,
		recorder: cfg.Recorder,
	}
	if l.duration <= 0 {
		l.duration = DefaultDuration
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.log == nil {
		l.log = logger.Discard()
	}
	if l.recorder == nil {
		l.recorder = nopRecorder{}
	}
	return l
}

// BookingRequest describes a slot to reserve. A zero EndTime means
// StartTime plus the configured duration; an empty DepartmentID means the
// doctor's own department.
type BookingRequest struct {
	PatientID    string
	DoctorID     string
	DepartmentID string
	StartTime    time.Time
	EndTime      time.Time
	Reason       string
}

// Book reserves a slot. Patients book only for themselves, admins for anyone.
func (l *Ledger) Book(ctx context.Context, actor models.Actor, req BookingRequest) (models.Appointment, error) {
	switch actor.Role {
	case models.RoleAdmin:
	case models.RolePatient:
		if actor.PatientID == "" {
			return models.Appointment{}, newError(KindForbidden, "account has no patient profile")
		}
		if req.PatientID == "" {
			req.PatientID = actor.PatientID
		}
		if req.PatientID != actor.PatientID {
			return models.Appointment{}, newError(KindForbidden, "patients can only book appointments for themselves")
		}
	default:
		return models.Appointment{}, newError(KindForbidden, "role %q cannot book appointments", actor.Role)
	}

	switch {
	case req.DoctorID == "":
		return models.Appointment{}, newError(KindMissingField, "doctorId is required")
	case req.StartTime.IsZero():
		return models.Appointment{}, newError(KindMissingField, "startTime is required")
	case req.PatientID == "":
		return models.Appointment{}, newError(KindMissingField, "patientId is required")
	}
	if req.EndTime.IsZero() {
		req.EndTime = req.StartTime.Add(l.duration)
	}
	if !req.EndTime.After(req.StartTime) {
		return models.Appointment{}, newError(KindInvalidInterval, "endTime must be after startTime")
	}

	doctor, ok := l.dir.GetDoctor(req.DoctorID)
	if !ok {
		return models.Appointment{}, newError(KindInvalidReference, "doctor %s does not exist", req.DoctorID)
	}
	patient, ok := l.dir.GetPatient(req.PatientID)
	if !ok {
		return models.Appointment{}, newError(KindInvalidReference, "patient %s does not exist", req.PatientID)
	}
	if req.DepartmentID == "" {
		req.DepartmentID = doctor.DepartmentID
	}
	department, ok := l.dir.GetDepartment(req.DepartmentID)
	if !ok {
		return models.Appointment{}, newError(KindInvalidReference, "department %s does not exist", req.DepartmentID)
	}

	now := l.now()
	apt := models.Appointment{
		BaseModel:      models.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		PatientID:      patient.ID,
		DoctorID:       doctor.ID,
		DepartmentID:   department.ID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Status:         models.StatusScheduled,
		Reason:         req.Reason,
		PatientName:    patient.FullName,
		DoctorName:     doctor.FullName,
		DepartmentName: department.Name,
	}

	conflict, err := l.store.CreateIfAvailable(ctx, &apt)
	if err != nil {
		return models.Appointment{}, err
	}

	entry := l.log.WithComponent("ledger").WithFields(logrus.Fields{
		"doctor_id":  doctor.ID,
		"patient_id": patient.ID,
		"start":      req.StartTime.Format(time.RFC3339),
		"end":        req.EndTime.Format(time.RFC3339),
	})
	if conflict != nil {
		l.recorder.Conflicted(doctor.ID)
		entry.WithField("conflicting_id", conflict.ID).Warn("booking rejected: slot conflict")
		return models.Appointment{}, newError(KindSlotConflict, "%s is not available from %s to %s",
			doctor.FullName, req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("15:04"))
	}

	l.recorder.Booked(doctor.ID)
	entry.WithField("appointment_id", apt.ID).Info("appointment booked")
	return apt, nil
}

// Cancel flips an appointment to CANCELLED. Admins may cancel any
// appointment, patients only their own. Cancelling a terminal appointment is
// a no-op that returns it unchanged.
func (l *Ledger) Cancel(ctx context.Context, id string, actor models.Actor) (models.Appointment, error) {
	cancelled := false
	apt, err := l.store.Update(ctx, id, func(apt *models.Appointment) (bool, error) {
		if !canCancel(actor, apt) {
			return false, newError(KindForbidden, "you are not allowed to cancel appointment %s", apt.ID)
		}
		if apt.Status.IsTerminal() {
			return false, nil
		}
		apt.Status = models.StatusCancelled
		apt.UpdatedAt = l.now()
		cancelled = true
		return true, nil
	})
	if errors.Is(err, errNoAppointment) {
		return models.Appointment{}, newError(KindNotFound, "appointment %s not found", id)
	}

	success := err == nil
	l.log.Audit(actor.UserID, "cancel", "appointment:"+id, success, map[string]interface{}{"role": actor.Role})
	if err != nil {
		return models.Appointment{}, err
	}

	if cancelled {
		l.recorder.Cancelled(actor.Role)
	}
	return apt, nil
}

func canCancel(actor models.Actor, apt *models.Appointment) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RolePatient:
		return actor.PatientID != "" && apt.PatientID == actor.PatientID
	}
	return false
}

// Get returns one appointment visible to the actor: admins see all, patients
// and doctors only appointments they take part in.
func (l *Ledger) Get(ctx context.Context, id string, actor models.Actor) (models.Appointment, error) {
	apt, err := l.store.Get(ctx, id)
	if errors.Is(err, errNoAppointment) {
		return models.Appointment{}, newError(KindNotFound, "appointment %s not found", id)
	}
	if err != nil {
		return models.Appointment{}, err
	}
	if !inScope(actor, &apt) {
		return models.Appointment{}, newError(KindForbidden, "you are not allowed to view appointment %s", id)
	}
	return apt, nil
}

// Filter narrows List results. Search is a case-insensitive substring over
// the patient, doctor and department names; Status "" or "all" disables the
// status filter.
type Filter struct {
	Search string
	Status string
}

// List returns the actor's appointments in ledger order.
func (l *Ledger) List(ctx context.Context, actor models.Actor, f Filter) ([]models.Appointment, error) {
	all, err := l.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	status := strings.TrimSpace(f.Status)
	filterStatus := status != "" && !strings.EqualFold(status, "all")
	wanted := models.AppointmentStatus(strings.ToUpper(status))

	out := make([]models.Appointment, 0, len(all))
	for i := range all {
		apt := &all[i]
		if !inScope(actor, apt) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(apt.PatientName), search) &&
			!strings.Contains(strings.ToLower(apt.DoctorName), search) &&
			!strings.Contains(strings.ToLower(apt.DepartmentName), search) {
			continue
		}
		if filterStatus && apt.Status != wanted {
			continue
		}
		out = append(out, *apt)
	}
	return out, nil
}

func inScope(actor models.Actor, apt *models.Appointment) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RolePatient:
		return actor.PatientID != "" && apt.PatientID == actor.PatientID
	case models.RoleDoctor:
		return actor.DoctorID != "" && apt.DoctorID == actor.DoctorID
	}
	return false
}
