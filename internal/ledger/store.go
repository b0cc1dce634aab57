package ledger

import (
	"context"
	"errors"
	"sync"

	"hams-server/internal/models"
)

// errNoAppointment is returned by stores for an unknown id.
var errNoAppointment = errors.New("appointment not found")

// Store holds the ordered appointment sequence. Implementations must make
// CreateIfAvailable and Update atomic with respect to each other.
type Store interface {
	// CreateIfAvailable appends apt unless a slot-blocking appointment of the
	// same doctor overlaps it, in which case that appointment is returned and
	// nothing is written.
	CreateIfAvailable(ctx context.Context, apt *models.Appointment) (*models.Appointment, error)
	// Update loads the appointment, lets fn mutate it and persists the result
	// when fn reports a change. fn errors abort without writing.
	Update(ctx context.Context, id string, fn func(apt *models.Appointment) (bool, error)) (models.Appointment, error)
	Get(ctx context.Context, id string) (models.Appointment, error)
	// All returns appointments in creation order.
	All(ctx context.Context) ([]models.Appointment, error)
}

// MemoryStore is the session-scoped default store.
type MemoryStore struct {
	mu           sync.Mutex
	appointments []models.Appointment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreateIfAvailable(_ context.Context, apt *models.Appointment) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.appointments {
		existing := &s.appointments[i]
		if existing.DoctorID == apt.DoctorID && existing.BlocksSlot() && existing.Overlaps(apt.StartTime, apt.EndTime) {
			conflict := *existing
			return &conflict, nil
		}
	}
	s.appointments = append(s.appointments, *apt)
	return nil, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fn func(apt *models.Appointment) (bool, error)) (models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.appointments {
		if s.appointments[i].ID != id {
			continue
		}
		draft := s.appointments[i]
		changed, err := fn(&draft)
		if err != nil {
			return models.Appointment{}, err
		}
		if changed {
			s.appointments[i] = draft
		}
		return s.appointments[i], nil
	}
	return models.Appointment{}, errNoAppointment
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, apt := range s.appointments {
		if apt.ID == id {
			return apt, nil
		}
	}
	return models.Appointment{}, errNoAppointment
}

func (s *MemoryStore) All(_ context.Context) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.Appointment(nil), s.appointments...), nil
}
