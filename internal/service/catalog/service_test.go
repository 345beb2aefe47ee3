package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nash87/parkhub-sub000/internal/domain"
	lotRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/lot"
	"github.com/nash87/parkhub-sub000/internal/service/catalog/models"
)

type fakeLotRepo struct {
	lots map[string]*domain.ParkingLot

	replaced *domain.ParkingLot
	flags    map[string]map[domain.SlotFlag]bool
	assigned map[string]*string
}

func newFakeLotRepo(lots ...*domain.ParkingLot) *fakeLotRepo {
	repo := &fakeLotRepo{
		lots:     make(map[string]*domain.ParkingLot),
		flags:    make(map[string]map[domain.SlotFlag]bool),
		assigned: make(map[string]*string),
	}
	for _, lot := range lots {
		repo.lots[lot.ID] = lot
	}
	return repo
}

func (f *fakeLotRepo) Create(_ context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	f.lots[lot.ID] = lot
	return lot, nil
}

func (f *fakeLotRepo) GetByID(_ context.Context, id string) (*domain.ParkingLot, error) {
	lot, ok := f.lots[id]
	if !ok {
		return nil, lotRepo.ErrLotNotFound
	}
	return lot, nil
}

func (f *fakeLotRepo) List(_ context.Context) ([]*domain.ParkingLot, error) {
	var result []*domain.ParkingLot
	for _, lot := range f.lots {
		result = append(result, lot)
	}
	return result, nil
}

func (f *fakeLotRepo) ReplaceLayout(_ context.Context, lot *domain.ParkingLot) error {
	existing := f.lots[lot.ID]
	existing.Name = lot.Name
	existing.Address = lot.Address
	existing.Rows = lot.Rows
	f.replaced = lot
	return nil
}

func (f *fakeLotRepo) Delete(_ context.Context, lotID string) error {
	if _, ok := f.lots[lotID]; !ok {
		return lotRepo.ErrLotNotFound
	}
	delete(f.lots, lotID)
	return nil
}

func (f *fakeLotRepo) GetSlotIDs(_ context.Context, lotID string) ([]string, error) {
	lot, ok := f.lots[lotID]
	if !ok {
		return nil, lotRepo.ErrLotNotFound
	}
	var ids []string
	for _, row := range lot.Rows {
		for _, slot := range row.Slots {
			ids = append(ids, slot.ID)
		}
	}
	return ids, nil
}

func (f *fakeLotRepo) GetSlotByID(_ context.Context, slotID string) (*domain.ParkingSlot, error) {
	for _, lot := range f.lots {
		for _, row := range lot.Rows {
			for i := range row.Slots {
				if row.Slots[i].ID == slotID {
					return &row.Slots[i], nil
				}
			}
		}
	}
	return nil, lotRepo.ErrSlotNotFound
}

func (f *fakeLotRepo) SetSlotFlag(ctx context.Context, slotID string, flag domain.SlotFlag, value bool) error {
	if _, err := f.GetSlotByID(ctx, slotID); err != nil {
		return err
	}
	if f.flags[slotID] == nil {
		f.flags[slotID] = make(map[domain.SlotFlag]bool)
	}
	f.flags[slotID][flag] = value
	return nil
}

func (f *fakeLotRepo) SetSlotAssignedUser(ctx context.Context, slotID string, userID *string) error {
	if _, err := f.GetSlotByID(ctx, slotID); err != nil {
		return err
	}
	f.assigned[slotID] = userID
	return nil
}

type fakeBookingRepo struct {
	inUse []string

	deletedLots []string
}

func (f *fakeBookingRepo) GetSlotIDsInUse(_ context.Context, slotIDs []string) ([]string, error) {
	var result []string
	for _, id := range slotIDs {
		for _, used := range f.inUse {
			if id == used {
				result = append(result, id)
			}
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) DeleteByLot(_ context.Context, lotID string) (int64, error) {
	f.deletedLots = append(f.deletedLots, lotID)
	return 2, nil
}

type fakeWaitlistRepo struct {
	deletedLots []string
}

func (f *fakeWaitlistRepo) DeleteByLot(_ context.Context, lotID string) (int64, error) {
	f.deletedLots = append(f.deletedLots, lotID)
	return 1, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(lots *fakeLotRepo, bookings *fakeBookingRepo, waitlist *fakeWaitlistRepo) *Service {
	return NewService(lots, bookings, waitlist, &fakeTxManager{}, nopLogger{})
}

func existingLot() *domain.ParkingLot {
	return &domain.ParkingLot{
		ID:      "l1",
		Name:    "Main lot",
		Address: "Hauptstr. 1",
		Rows: []domain.LotRow{
			{
				ID:   "r1",
				Side: domain.SideTop,
				Slots: []domain.ParkingSlot{
					{ID: "s1", Label: "A-01", Position: 0},
					{ID: "s2", Label: "A-02", Position: 1},
				},
			},
		},
	}
}

func layoutRequest(slotIDs ...string) []models.RowSpec {
	slots := make([]models.SlotSpec, len(slotIDs))
	for i := range slotIDs {
		id := slotIDs[i]
		slots[i] = models.SlotSpec{ID: &id, Label: "A-0" + string(rune('1'+i)), Position: i}
	}
	return []models.RowSpec{{Side: "top", Position: 0, Slots: slots}}
}

func TestCreateLot(t *testing.T) {
	repo := newFakeLotRepo()
	svc := newTestService(repo, &fakeBookingRepo{}, &fakeWaitlistRepo{})

	resp, err := svc.CreateLot(context.Background(), &models.CreateLotRequest{
		Name:    "Main lot",
		Address: "Hauptstr. 1",
		Rows: []models.RowSpec{
			{Side: "top", Position: 0, Slots: []models.SlotSpec{{Label: "A-01"}, {Label: "A-02"}}},
			{Side: "bottom", Position: 1, Slots: []models.SlotSpec{{Label: "B-01"}}},
		},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	require.Len(t, resp.Rows, 2)
	require.Len(t, resp.Rows[0].Slots, 2)
	assert.NotEmpty(t, resp.Rows[0].Slots[0].ID)
	assert.Equal(t, "A-01", resp.Rows[0].Slots[0].Label)
}

func TestCreateLot_ValidationFailures(t *testing.T) {
	svc := newTestService(newFakeLotRepo(), &fakeBookingRepo{}, &fakeWaitlistRepo{})

	cases := []struct {
		name string
		req  *models.CreateLotRequest
	}{
		{
			name: "missing name",
			req:  &models.CreateLotRequest{Rows: []models.RowSpec{{Side: "top"}}},
		},
		{
			name: "unknown row side",
			req:  &models.CreateLotRequest{Name: "Lot", Rows: []models.RowSpec{{Side: "left"}}},
		},
		{
			name: "empty slot label",
			req:  &models.CreateLotRequest{Name: "Lot", Rows: []models.RowSpec{{Side: "top", Slots: []models.SlotSpec{{}}}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateLot(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetLot_NotFound(t *testing.T) {
	svc := newTestService(newFakeLotRepo(), &fakeBookingRepo{}, &fakeWaitlistRepo{})

	_, err := svc.GetLot(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrLotNotFound)
}

func TestListLots(t *testing.T) {
	repo := newFakeLotRepo(existingLot())
	svc := newTestService(repo, &fakeBookingRepo{}, &fakeWaitlistRepo{})

	resp, err := svc.ListLots(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Lots, 1)
	assert.Equal(t, "Main lot", resp.Lots[0].Name)
}

func TestUpdateLayout_KeepsExistingSlots(t *testing.T) {
	repo := newFakeLotRepo(existingLot())
	svc := newTestService(repo, &fakeBookingRepo{}, &fakeWaitlistRepo{})

	resp, err := svc.UpdateLayout(context.Background(), &models.UpdateLayoutRequest{
		LotID:   "l1",
		Name:    "Main lot",
		Address: "Hauptstr. 1",
		Rows:    layoutRequest("s1", "s2"),
	})

	require.NoError(t, err)
	require.NotNil(t, repo.replaced)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "s1", resp.Rows[0].Slots[0].ID)
	assert.Equal(t, "s2", resp.Rows[0].Slots[1].ID)
}

func TestUpdateLayout_RemovedSlotInUse(t *testing.T) {
	repo := newFakeLotRepo(existingLot())
	bookings := &fakeBookingRepo{inUse: []string{"s2"}}
	svc := newTestService(repo, bookings, &fakeWaitlistRepo{})

	_, err := svc.UpdateLayout(context.Background(), &models.UpdateLayoutRequest{
		LotID: "l1",
		Name:  "Main lot",
		Rows:  layoutRequest("s1"),
	})

	assert.ErrorIs(t, err, ErrSlotInUse)
	assert.Nil(t, repo.replaced)
}

func TestUpdateLayout_RemovedSlotWithoutBookings(t *testing.T) {
	repo := newFakeLotRepo(existingLot())
	svc := newTestService(repo, &fakeBookingRepo{}, &fakeWaitlistRepo{})

	resp, err := svc.UpdateLayout(context.Background(), &models.UpdateLayoutRequest{
		LotID: "l1",
		Name:  "Main lot",
		Rows:  layoutRequest("s1"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Rows[0].Slots, 1)
	assert.Equal(t, "s1", resp.Rows[0].Slots[0].ID)
}

func TestUpdateLayout_LotNotFound(t *testing.T) {
	svc := newTestService(newFakeLotRepo(), &fakeBookingRepo{}, &fakeWaitlistRepo{})

	_, err := svc.UpdateLayout(context.Background(), &models.UpdateLayoutRequest{
		LotID: "missing",
		Name:  "Lot",
	})

	assert.ErrorIs(t, err, ErrLotNotFound)
}

func TestDeleteLot_CascadesCleanup(t *testing.T) {
	repo := newFakeLotRepo(existingLot())
	bookings := &fakeBookingRepo{}
	waitlist := &fakeWaitlistRepo{}
	svc := newTestService(repo, bookings, waitlist)

	require.NoError(t, svc.DeleteLot(context.Background(), "l1"))

	assert.Empty(t, repo.lots)
	assert.Equal(t, []string{"l1"}, bookings.deletedLots)
	assert.Equal(t, []string{"l1"}, waitlist.deletedLots)
}

func TestDeleteLot_NotFound(t *testing.T) {
	svc := newTestService(newFakeLotRepo(), &fakeBookingRepo{}, &fakeWaitlistRepo{})

	err := svc.DeleteLot(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrLotNotFound)
}

func TestSetSlotFlag(t *testing.T) {
	repo := newFakeLotRepo(existingLot())
	svc := newTestService(repo, &fakeBookingRepo{}, &fakeWaitlistRepo{})

	req := &models.SetSlotFlagRequest{SlotID: "s1", Flag: "blocked", Value: true}
	require.NoError(t, svc.SetSlotFlag(context.Background(), req))
	assert.True(t, repo.flags["s1"][domain.FlagBlocked])

	req.Value = false
	require.NoError(t, svc.SetSlotFlag(context.Background(), req))
	assert.False(t, repo.flags["s1"][domain.FlagBlocked])
}

func TestSetSlotFlag_UnknownFlag(t *testing.T) {
	svc := newTestService(newFakeLotRepo(existingLot()), &fakeBookingRepo{}, &fakeWaitlistRepo{})

	err := svc.SetSlotFlag(context.Background(), &models.SetSlotFlagRequest{SlotID: "s1", Flag: "frozen", Value: true})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetSlotFlag_SlotNotFound(t *testing.T) {
	svc := newTestService(newFakeLotRepo(), &fakeBookingRepo{}, &fakeWaitlistRepo{})

	err := svc.SetSlotFlag(context.Background(), &models.SetSlotFlagRequest{SlotID: "missing", Flag: "disabled", Value: true})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestAssignSlot(t *testing.T) {
	repo := newFakeLotRepo(existingLot())
	svc := newTestService(repo, &fakeBookingRepo{}, &fakeWaitlistRepo{})

	userID := "u1"
	require.NoError(t, svc.AssignSlot(context.Background(), &models.AssignSlotRequest{SlotID: "s1", UserID: &userID}))
	require.NotNil(t, repo.assigned["s1"])
	assert.Equal(t, "u1", *repo.assigned["s1"])

	// nil снимает закрепление
	require.NoError(t, svc.AssignSlot(context.Background(), &models.AssignSlotRequest{SlotID: "s1"}))
	assert.Nil(t, repo.assigned["s1"])
}

func TestAssignSlot_EmptyUserID(t *testing.T) {
	svc := newTestService(newFakeLotRepo(existingLot()), &fakeBookingRepo{}, &fakeWaitlistRepo{})

	empty := ""
	err := svc.AssignSlot(context.Background(), &models.AssignSlotRequest{SlotID: "s1", UserID: &empty})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
