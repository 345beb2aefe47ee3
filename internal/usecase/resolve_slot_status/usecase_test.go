package resolve_slot_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nash87/parkhub-sub000/internal/domain"
	lotRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/lot"
	"github.com/nash87/parkhub-sub000/internal/occupancy"
)

// 2025-10-13 is a Monday.
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	bySlot map[string][]*domain.Booking

	calls int
}

func (f *fakeBookingRepo) GetActiveBySlot(_ context.Context, slotID string) ([]*domain.Booking, error) {
	f.calls++
	return f.bySlot[slotID], nil
}

type fakeSlotRepo struct {
	slots []*domain.ParkingSlot
}

func (f *fakeSlotRepo) GetSlotByID(_ context.Context, slotID string) (*domain.ParkingSlot, error) {
	for _, s := range f.slots {
		if s.ID == slotID {
			return s, nil
		}
	}
	return nil, lotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) GetSlotsByLot(_ context.Context, lotID string) ([]*domain.ParkingSlot, error) {
	var result []*domain.ParkingSlot
	for _, s := range f.slots {
		if s.LotID == lotID {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeLotRepo struct {
	names map[string]string
}

func (f *fakeLotRepo) GetNameByID(_ context.Context, lotID string) (string, error) {
	name, ok := f.names[lotID]
	if !ok {
		return "", lotRepo.ErrLotNotFound
	}
	return name, nil
}

type fakeAbsenceReader struct {
	awayUsers map[string]bool

	calls int
}

func (f *fakeAbsenceReader) IsAway(_ context.Context, userID string, _ time.Time) (bool, error) {
	f.calls++
	return f.awayUsers[userID], nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(bookings *fakeBookingRepo, slots *fakeSlotRepo, absences *fakeAbsenceReader) *UseCase {
	uc := NewUseCase(
		bookings,
		slots,
		&fakeLotRepo{names: map[string]string{"l1": "Main lot"}},
		absences,
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: monday.Add(10 * time.Hour)}
	return uc
}

func slot(id string, assignedUser *string) *domain.ParkingSlot {
	return &domain.ParkingSlot{
		ID:             id,
		LotID:          "l1",
		RowID:          "r1",
		Label:          "A-" + id,
		AssignedUserID: assignedUser,
	}
}

func oneTimeBooking(userID, slotID string, day time.Time) *domain.Booking {
	start := day.Add(9 * time.Hour)
	end := day.Add(17 * time.Hour)
	return &domain.Booking{
		ID:        "b-" + slotID,
		UserID:    userID,
		SlotID:    slotID,
		Kind:      domain.KindOneTime,
		StartTime: start,
		EndTime:   &end,
		Status:    domain.StatusActive,
	}
}

func TestResolveSlot_Available(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSlotRepo{slots: []*domain.ParkingSlot{slot("s1", nil)}}, &fakeAbsenceReader{})

	status, err := uc.ResolveSlot(context.Background(), &SlotRequest{SlotID: "s1", At: monday.Add(10 * time.Hour)})

	require.NoError(t, err)
	assert.Equal(t, occupancy.StatusAvailable, status.Status)
	assert.Equal(t, "A-s1", status.Label)
}

func TestResolveSlot_OccupiedForOtherViewer(t *testing.T) {
	bookings := &fakeBookingRepo{bySlot: map[string][]*domain.Booking{
		"s1": {oneTimeBooking("u1", "s1", monday)},
	}}
	uc := newTestUseCase(bookings, &fakeSlotRepo{slots: []*domain.ParkingSlot{slot("s1", nil)}}, &fakeAbsenceReader{})

	status, err := uc.ResolveSlot(context.Background(), &SlotRequest{
		SlotID:   "s1",
		At:       monday.Add(10 * time.Hour),
		ViewerID: "u2",
	})

	require.NoError(t, err)
	assert.Equal(t, occupancy.StatusOccupied, status.Status)
}

func TestResolveSlot_ReservedForOwnFutureBooking(t *testing.T) {
	tomorrow := monday.AddDate(0, 0, 1)
	bookings := &fakeBookingRepo{bySlot: map[string][]*domain.Booking{
		"s1": {oneTimeBooking("u1", "s1", tomorrow)},
	}}
	uc := newTestUseCase(bookings, &fakeSlotRepo{slots: []*domain.ParkingSlot{slot("s1", nil)}}, &fakeAbsenceReader{})

	status, err := uc.ResolveSlot(context.Background(), &SlotRequest{
		SlotID:   "s1",
		At:       tomorrow.Add(10 * time.Hour),
		ViewerID: "u1",
	})

	require.NoError(t, err)
	assert.Equal(t, occupancy.StatusReserved, status.Status)
}

func TestResolveSlot_FlagSkipsBookingReads(t *testing.T) {
	disabled := slot("s1", nil)
	disabled.Disabled = true
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeSlotRepo{slots: []*domain.ParkingSlot{disabled}}, &fakeAbsenceReader{})

	status, err := uc.ResolveSlot(context.Background(), &SlotRequest{SlotID: "s1", At: monday})

	require.NoError(t, err)
	assert.Equal(t, occupancy.StatusDisabled, status.Status)
	assert.Equal(t, 0, bookings.calls)
}

func TestResolveSlot_Homeoffice(t *testing.T) {
	owner := "u1"
	absences := &fakeAbsenceReader{awayUsers: map[string]bool{"u1": true}}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSlotRepo{slots: []*domain.ParkingSlot{slot("s1", &owner)}}, absences)

	status, err := uc.ResolveSlot(context.Background(), &SlotRequest{SlotID: "s1", At: monday.Add(10 * time.Hour)})

	require.NoError(t, err)
	assert.Equal(t, occupancy.StatusHomeoffice, status.Status)
}

func TestResolveSlot_NotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSlotRepo{}, &fakeAbsenceReader{})

	_, err := uc.ResolveSlot(context.Background(), &SlotRequest{SlotID: "missing"})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestResolveSlot_MissingSlotID(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSlotRepo{}, &fakeAbsenceReader{})

	_, err := uc.ResolveSlot(context.Background(), &SlotRequest{})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolveGrid(t *testing.T) {
	owner := "u1"
	bookings := &fakeBookingRepo{bySlot: map[string][]*domain.Booking{
		"s2": {oneTimeBooking("u2", "s2", monday)},
	}}
	slots := &fakeSlotRepo{slots: []*domain.ParkingSlot{
		slot("s1", nil),
		slot("s2", nil),
		slot("s3", &owner),
	}}
	absences := &fakeAbsenceReader{awayUsers: map[string]bool{"u1": true}}
	uc := newTestUseCase(bookings, slots, absences)

	resp, err := uc.ResolveGrid(context.Background(), &GridRequest{
		LotID:    "l1",
		At:       monday.Add(10 * time.Hour),
		ViewerID: "u9",
	})

	require.NoError(t, err)
	assert.Equal(t, "Main lot", resp.LotName)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, occupancy.StatusAvailable, resp.Slots[0].Status)
	assert.Equal(t, occupancy.StatusOccupied, resp.Slots[1].Status)
	assert.Equal(t, occupancy.StatusHomeoffice, resp.Slots[2].Status)
}

func TestResolveGrid_AbsenceCachePerOwner(t *testing.T) {
	owner := "u1"
	slots := &fakeSlotRepo{slots: []*domain.ParkingSlot{
		slot("s1", &owner),
		slot("s2", &owner),
		slot("s3", &owner),
	}}
	absences := &fakeAbsenceReader{awayUsers: map[string]bool{"u1": true}}
	uc := newTestUseCase(&fakeBookingRepo{}, slots, absences)

	_, err := uc.ResolveGrid(context.Background(), &GridRequest{LotID: "l1", At: monday})

	require.NoError(t, err)
	assert.Equal(t, 1, absences.calls)
}

func TestResolveGrid_LotNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSlotRepo{}, &fakeAbsenceReader{})

	_, err := uc.ResolveGrid(context.Background(), &GridRequest{LotID: "missing"})

	assert.ErrorIs(t, err, ErrLotNotFound)
}
