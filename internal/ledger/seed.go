package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hams-server/internal/models"
)

var seedReasons = []string{"Regular checkup", "Follow-up visit", "Consultation", "Emergency visit"}

var seedStatuses = []models.AppointmentStatus{models.StatusScheduled, models.StatusCompleted, models.StatusCancelled}

// Seed fills the ledger with demo appointments on weekdays from a week
// before now until thirty days after it, every two hours from 09:00. Days
// before today are COMPLETED. Seeded appointments go through the same
// conflict check as bookings; it returns how many were stored. A store that
// already holds appointments is left alone.
func (l *Ledger) Seed(ctx context.Context, now time.Time, doctors []models.Doctor, patients []models.Patient) (int, error) {
	if len(doctors) == 0 || len(patients) == 0 {
		return 0, nil
	}
	existing, err := l.store.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed appointments: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	stored, n := 0, 0
	for offset := -7; offset < 30; offset++ {
		date := now.AddDate(0, 0, offset)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		perDay := 2 + (offset+7)%4
		for slot := 0; slot < perDay; slot++ {
			start := time.Date(date.Year(), date.Month(), date.Day(), 9+slot*2, 0, 0, 0, now.Location())
			doctor := doctors[n%len(doctors)]
			patient := patients[(n/len(doctors)+slot)%len(patients)]
			department, _ := l.dir.GetDepartment(doctor.DepartmentID)

			status := seedStatuses[n%len(seedStatuses)]
			if offset < 0 {
				status = models.StatusCompleted
			}

			apt := models.Appointment{
				BaseModel:      models.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
				PatientID:      patient.ID,
				DoctorID:       doctor.ID,
				DepartmentID:   doctor.DepartmentID,
				StartTime:      start,
				EndTime:        start.Add(l.duration),
				Status:         status,
				Reason:         seedReasons[n%len(seedReasons)],
				PatientName:    patient.FullName,
				DoctorName:     doctor.FullName,
				DepartmentName: department.Name,
			}
			n++

			conflict, err := l.store.CreateIfAvailable(ctx, &apt)
			if err != nil {
				return stored, err
			}
			if conflict == nil {
				stored++
			}
		}
	}

	l.log.WithComponent("ledger").WithField("count", stored).Info("seeded demo appointments")
	return stored, nil
}
