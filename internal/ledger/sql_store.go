package ledger

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hams-server/internal/models"
)

// SQLStore keeps the ledger in MySQL through gorm for deployments where
// several server processes share one appointment book.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// CreateIfAvailable runs in a txn and locks any overlapping rows of the same
// doctor so two concurrent bookings cannot both pass the check.
func (s *SQLStore) CreateIfAvailable(ctx context.Context, apt *models.Appointment) (*models.Appointment, error) {
	var conflict *models.Appointment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Appointment
		err := tx.Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("doctor_id = ? AND status <> ?", apt.DoctorID, models.StatusCancelled).
			Where("start_time < ? AND end_time > ?", apt.EndTime, apt.StartTime).
			Take(&existing).Error

		if err == nil {
			conflict = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(apt).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return conflict, nil
}

func (s *SQLStore) Update(ctx context.Context, id string, fn func(apt *models.Appointment) (bool, error)) (models.Appointment, error) {
	var apt models.Appointment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&apt, "id = ?", id).Error; err != nil {
			return err
		}
		changed, err := fn(&apt)
		if err != nil || !changed {
			return err
		}
		return tx.Save(&apt).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Appointment{}, errNoAppointment
	}
	if err != nil {
		var le *Error
		if errors.As(err, &le) {
			return models.Appointment{}, err
		}
		return models.Appointment{}, fmt.Errorf("update appointment %s: %w", id, err)
	}
	return apt, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (models.Appointment, error) {
	var apt models.Appointment
	if err := s.db.WithContext(ctx).First(&apt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Appointment{}, errNoAppointment
		}
		return models.Appointment{}, fmt.Errorf("get appointment %s: %w", id, err)
	}
	return apt, nil
}

func (s *SQLStore) All(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}
