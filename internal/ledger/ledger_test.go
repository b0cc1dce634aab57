package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hams-server/internal/models"
	"hams-server/internal/reference"
)

var (
	admin    = models.Actor{UserID: "1", Role: models.RoleAdmin}
	john     = models.Actor{UserID: "3", Role: models.RolePatient, PatientID: "p1"}
	jane     = models.Actor{UserID: "5", Role: models.RolePatient, PatientID: "p2"}
	drSmith  = models.Actor{UserID: "2", Role: models.RoleDoctor, DoctorID: "d1"}
	fixedNow = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.Local)
)

type countingRecorder struct {
	mu         sync.Mutex
	booked     int
	conflicted int
	cancelled  int
}

func (r *countingRecorder) Booked(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.booked++
}

func (r *countingRecorder) Conflicted(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicted++
}

func (r *countingRecorder) Cancelled(models.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled++
}

func testDirectory() *reference.Directory {
	return reference.New(reference.Tables{
		Departments: []models.Department{
			{ID: "dep1", Name: "Cardiology"},
			{ID: "dep2", Name: "Neurology"},
		},
		Doctors: []models.Doctor{
			{ID: "d1", DepartmentID: "dep1", FullName: "Dr. Sarah Smith"},
			{ID: "d2", DepartmentID: "dep2", FullName: "Dr. Michael Johnson"},
		},
		Patients: []models.Patient{
			{ID: "p1", FullName: "John Doe"},
			{ID: "p2", FullName: "Jane Smith"},
		},
	})
}

func setupTestLedger() (*Ledger, *countingRecorder) {
	rec := &countingRecorder{}
	l := New(NewMemoryStore(), testDirectory(), Config{
		Now:      func() time.Time { return fixedNow },
		Recorder: rec,
	})
	return l, rec
}

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 11, hour, minute, 0, 0, time.Local)
}

func slot(doctorID, patientID string, start, end time.Time) BookingRequest {
	return BookingRequest{DoctorID: doctorID, PatientID: patientID, StartTime: start, EndTime: end}
}

func assertKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	got, ok := KindOf(err)
	require.True(t, ok, "expected a ledger error, got %v", err)
	assert.Equal(t, kind, got)
}

func TestBook_WorkedExample(t *testing.T) {
	l, _ := setupTestLedger()
	ctx := context.Background()

	first, err := l.Book(ctx, admin, slot("d1", "p1", at(9, 0), at(10, 0)))
	require.NoError(t, err)

	_, err = l.Book(ctx, admin, slot("d1", "p2", at(10, 0), at(11, 0)))
	require.NoError(t, err)

	_, err = l.Book(ctx, admin, slot("d1", "p2", at(9, 30), at(10, 30)))
	assertKind(t, err, KindSlotConflict)
	assert.True(t, errors.Is(err, ErrSlotConflict))

	_, err = l.Cancel(ctx, first.ID, admin)
	require.NoError(t, err)

	_, err = l.Book(ctx, admin, slot("d1", "p2", at(9, 0), at(10, 0)))
	assert.NoError(t, err)
}

func TestBook_AbuttingSlotsSucceed(t *testing.T) {
	l, _ := setupTestLedger()
	ctx := context.Background()

	_, err := l.Book(ctx, admin, slot("d1", "p1", at(10, 0), at(11, 0)))
	require.NoError(t, err)

	_, err = l.Book(ctx, admin, slot("d1", "p2", at(11, 0), at(12, 0)))
	assert.NoError(t, err, "new start == existing end")

	_, err = l.Book(ctx, admin, slot("d1", "p2", at(9, 0), at(10, 0)))
	assert.NoError(t, err, "new end == existing start")
}

func TestBook_ConflictShapes(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
	}{
		{"fully inside", at(9, 15), at(9, 45)},
		{"identical", at(9, 0), at(10, 0)},
		{"covers existing", at(8, 0), at(11, 0)},
		{"overlaps start", at(8, 30), at(9, 30)},
		{"overlaps end", at(9, 59), at(10, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, rec := setupTestLedger()
			ctx := context.Background()

			_, err := l.Book(ctx, admin, slot("d1", "p1", at(9, 0), at(10, 0)))
			require.NoError(t, err)

			_, err = l.Book(ctx, admin, slot("d1", "p2", tt.start, tt.end))
			assertKind(t, err, KindSlotConflict)
			assert.Contains(t, err.Error(), "Dr. Sarah Smith")

			all, err := l.List(ctx, admin, Filter{})
			require.NoError(t, err)
			assert.Len(t, all, 1, "a rejected booking must not mutate the ledger")
			assert.Equal(t, 1, rec.conflicted)
		})
	}
}

func TestBook_OtherDoctorSameSlot(t *testing.T) {
	l, _ := setupTestLedger()
	ctx := context.Background()

	_, err := l.Book(ctx, admin, slot("d1", "p1", at(9, 0), at(10, 0)))
	require.NoError(t, err)
	_, err = l.Book(ctx, admin, slot("d2", "p1", at(9, 0), at(10, 0)))
	assert.NoError(t, err)
}

func TestBook_Defaults(t *testing.T) {
	l, rec := setupTestLedger()

	apt, err := l.Book(context.Background(), john, BookingRequest{
		DoctorID:  "d2",
		StartTime: at(14, 0),
		Reason:    "Consultation",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, apt.ID)
	assert.Equal(t, "p1", apt.PatientID, "patient identity is filled in from the session")
	assert.Equal(t, at(15, 0), apt.EndTime, "implicit one-hour duration")
	assert.Equal(t, "dep2", apt.DepartmentID, "department defaults to the doctor's")
	assert.Equal(t, models.StatusScheduled, apt.Status)
	assert.Equal(t, "John Doe", apt.PatientName)
	assert.Equal(t, "Dr. Michael Johnson", apt.DoctorName)
	assert.Equal(t, "Neurology", apt.DepartmentName)
	assert.Equal(t, fixedNow, apt.CreatedAt)
	assert.Equal(t, fixedNow, apt.UpdatedAt)
	assert.Equal(t, 1, rec.booked)
}

func TestBook_ConfiguredDuration(t *testing.T) {
	l := New(NewMemoryStore(), testDirectory(), Config{Duration: 30 * time.Minute})

	apt, err := l.Book(context.Background(), admin, BookingRequest{DoctorID: "d1", PatientID: "p1", StartTime: at(9, 0)})
	require.NoError(t, err)
	assert.Equal(t, at(9, 30), apt.EndTime)
}

func TestBook_Validation(t *testing.T) {
	tests := []struct {
		name  string
		actor models.Actor
		req   BookingRequest
		kind  Kind
	}{
		{"missing doctor", admin, BookingRequest{PatientID: "p1", StartTime: at(9, 0)}, KindMissingField},
		{"missing start", admin, BookingRequest{PatientID: "p1", DoctorID: "d1"}, KindMissingField},
		{"missing patient for admin", admin, BookingRequest{DoctorID: "d1", StartTime: at(9, 0)}, KindMissingField},
		{"end before start", admin, slot("d1", "p1", at(10, 0), at(9, 0)), KindInvalidInterval},
		{"empty interval", admin, slot("d1", "p1", at(10, 0), at(10, 0)), KindInvalidInterval},
		{"unknown doctor", admin, slot("d9", "p1", at(9, 0), at(10, 0)), KindInvalidReference},
		{"unknown patient", admin, slot("d1", "p9", at(9, 0), at(10, 0)), KindInvalidReference},
		{"unknown department", admin, BookingRequest{DoctorID: "d1", PatientID: "p1", DepartmentID: "dep9", StartTime: at(9, 0)}, KindInvalidReference},
		{"patient books for another", john, slot("d1", "p2", at(9, 0), at(10, 0)), KindForbidden},
		{"doctor cannot book", drSmith, slot("d1", "p1", at(9, 0), at(10, 0)), KindForbidden},
		{"patient without profile", models.Actor{UserID: "x", Role: models.RolePatient}, slot("d1", "p1", at(9, 0), at(10, 0)), KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := setupTestLedger()
			_, err := l.Book(context.Background(), tt.actor, tt.req)
			assertKind(t, err, tt.kind)

			all, err := l.List(context.Background(), admin, Filter{})
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestCancel_Authorization(t *testing.T) {
	l, rec := setupTestLedger()
	ctx := context.Background()

	johns, err := l.Book(ctx, john, slot("d1", "", at(9, 0), at(10, 0)))
	require.NoError(t, err)

	_, err = l.Cancel(ctx, johns.ID, jane)
	assertKind(t, err, KindForbidden)

	_, err = l.Cancel(ctx, johns.ID, drSmith)
	assertKind(t, err, KindForbidden)

	got, err := l.Get(ctx, johns.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, got.Status, "denied cancellation must not mutate")

	cancelled, err := l.Cancel(ctx, johns.ID, john)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	janes, err := l.Book(ctx, jane, slot("d1", "", at(11, 0), at(12, 0)))
	require.NoError(t, err)
	cancelled, err = l.Cancel(ctx, janes.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, 2, rec.cancelled)
}

func TestCancel_NotFound(t *testing.T) {
	l, _ := setupTestLedger()
	_, err := l.Cancel(context.Background(), "missing", admin)
	assertKind(t, err, KindNotFound)
}

func TestCancel_TerminalIsNoOp(t *testing.T) {
	store := NewMemoryStore()
	l := New(store, testDirectory(), Config{Now: func() time.Time { return fixedNow }})
	ctx := context.Background()

	completed := models.Appointment{
		BaseModel: models.BaseModel{ID: "done", CreatedAt: fixedNow, UpdatedAt: fixedNow},
		PatientID: "p1", DoctorID: "d1", StartTime: at(9, 0), EndTime: at(10, 0),
		Status: models.StatusCompleted,
	}
	_, err := store.CreateIfAvailable(ctx, &completed)
	require.NoError(t, err)

	got, err := l.Cancel(ctx, "done", admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status, "completed appointments never revert")

	apt, err := l.Book(ctx, admin, slot("d1", "p1", at(11, 0), at(12, 0)))
	require.NoError(t, err)

	later := fixedNow.Add(time.Hour)
	l.now = func() time.Time { return later }
	first, err := l.Cancel(ctx, apt.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, later, first.UpdatedAt)

	l.now = func() time.Time { return later.Add(time.Hour) }
	second, err := l.Cancel(ctx, apt.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, second.Status)
	assert.Equal(t, later, second.UpdatedAt, "repeat cancellation leaves the record untouched")
}

func TestCancel_StillForbiddenWhenTerminal(t *testing.T) {
	l, _ := setupTestLedger()
	ctx := context.Background()

	apt, err := l.Book(ctx, john, slot("d1", "", at(9, 0), at(10, 0)))
	require.NoError(t, err)
	_, err = l.Cancel(ctx, apt.ID, john)
	require.NoError(t, err)

	_, err = l.Cancel(ctx, apt.ID, jane)
	assertKind(t, err, KindForbidden)
}

func TestList_Scoping(t *testing.T) {
	l, _ := setupTestLedger()
	ctx := context.Background()

	_, err := l.Book(ctx, john, slot("d1", "", at(9, 0), at(10, 0)))
	require.NoError(t, err)
	_, err = l.Book(ctx, jane, slot("d2", "", at(9, 0), at(10, 0)))
	require.NoError(t, err)
	_, err = l.Book(ctx, john, slot("d2", "", at(11, 0), at(12, 0)))
	require.NoError(t, err)

	johns, err := l.List(ctx, john, Filter{})
	require.NoError(t, err)
	require.Len(t, johns, 2)
	for _, apt := range johns {
		assert.Equal(t, "p1", apt.PatientID)
	}
	assert.Equal(t, at(9, 0), johns[0].StartTime, "ledger order is preserved")

	smiths, err := l.List(ctx, drSmith, Filter{})
	require.NoError(t, err)
	require.Len(t, smiths, 1)
	assert.Equal(t, "d1", smiths[0].DoctorID)

	all, err := l.List(ctx, admin, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := l.List(ctx, models.Actor{UserID: "x", Role: "GUEST"}, Filter{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestList_SearchAndStatus(t *testing.T) {
	l, _ := setupTestLedger()
	ctx := context.Background()

	first, err := l.Book(ctx, admin, slot("d1", "p1", at(9, 0), at(10, 0)))
	require.NoError(t, err)
	_, err = l.Book(ctx, admin, slot("d2", "p2", at(9, 0), at(10, 0)))
	require.NoError(t, err)
	_, err = l.Cancel(ctx, first.ID, admin)
	require.NoError(t, err)

	byDept, err := l.List(ctx, admin, Filter{Search: "NEURO"})
	require.NoError(t, err)
	require.Len(t, byDept, 1)
	assert.Equal(t, "d2", byDept[0].DoctorID)

	byName, err := l.List(ctx, admin, Filter{Search: "smith"})
	require.NoError(t, err)
	assert.Len(t, byName, 2, "matches doctor Sarah Smith and patient Jane Smith")

	cancelled, err := l.List(ctx, admin, Filter{Status: "cancelled"})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, first.ID, cancelled[0].ID)

	all, err := l.List(ctx, admin, Filter{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	both, err := l.List(ctx, admin, Filter{Search: "john", Status: "SCHEDULED"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Dr. Michael Johnson", both[0].DoctorName)

	again, err := l.List(ctx, admin, Filter{Search: "john", Status: "SCHEDULED"})
	require.NoError(t, err)
	assert.Equal(t, both, again)
}

func TestGet_Scoping(t *testing.T) {
	l, _ := setupTestLedger()
	ctx := context.Background()

	apt, err := l.Book(ctx, john, slot("d1", "", at(9, 0), at(10, 0)))
	require.NoError(t, err)

	for _, actor := range []models.Actor{admin, john, drSmith} {
		got, err := l.Get(ctx, apt.ID, actor)
		require.NoError(t, err)
		assert.Equal(t, apt.ID, got.ID)
	}

	_, err = l.Get(ctx, apt.ID, jane)
	assertKind(t, err, KindForbidden)

	_, err = l.Get(ctx, "missing", admin)
	assertKind(t, err, KindNotFound)
}

func TestBook_ConcurrentSameSlot(t *testing.T) {
	l, _ := setupTestLedger()
	ctx := context.Background()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Book(ctx, admin, slot("d1", "p1", at(9, 0), at(10, 0)))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if errors.Is(err, ErrSlotConflict) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
}

func TestSeed_KeepsInvariant(t *testing.T) {
	l, _ := setupTestLedger()
	ctx := context.Background()
	dir := testDirectory()

	n, err := l.Seed(ctx, fixedNow, dir.Doctors(), dir.Patients(""))
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	all, err := l.List(ctx, admin, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, n)

	today := time.Date(fixedNow.Year(), fixedNow.Month(), fixedNow.Day(), 0, 0, 0, 0, fixedNow.Location())
	for i := range all {
		a := &all[i]
		wd := a.StartTime.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
		assert.True(t, a.EndTime.After(a.StartTime))
		if a.StartTime.Before(today) {
			assert.Equal(t, models.StatusCompleted, a.Status)
		}
		for j := i + 1; j < len(all); j++ {
			b := &all[j]
			if a.DoctorID == b.DoctorID && a.BlocksSlot() && b.BlocksSlot() {
				assert.False(t, a.Overlaps(b.StartTime, b.EndTime), "%s overlaps %s", a.ID, b.ID)
			}
		}
	}
}

func TestSeed_SkipsPopulatedStore(t *testing.T) {
	l, _ := setupTestLedger()
	ctx := context.Background()
	dir := testDirectory()

	first, err := l.Seed(ctx, fixedNow, dir.Doctors(), dir.Patients(""))
	require.NoError(t, err)
	require.Greater(t, first, 0)

	again, err := l.Seed(ctx, fixedNow, dir.Doctors(), dir.Patients(""))
	require.NoError(t, err)
	assert.Zero(t, again)

	all, err := l.List(ctx, admin, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, first)
}

func TestSeed_EmptyReferenceData(t *testing.T) {
	l, _ := setupTestLedger()
	n, err := l.Seed(context.Background(), fixedNow, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
