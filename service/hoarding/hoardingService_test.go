package hoardingsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Swagat003/gov-billboard-portal/model"
	hoardingrepo "github.com/Swagat003/gov-billboard-portal/repository/hoarding"
)

type mockRepo struct {
	createFn    func(ctx context.Context, h *model.Hoarding) error
	listFn      func(ctx context.Context, ownerID int64, now time.Time) ([]hoardingrepo.OwnedHoarding, error)
	byIDFn      func(ctx context.Context, id, ownerID int64) (*model.Hoarding, error)
	updateFn    func(ctx context.Context, h *model.Hoarding) error
	deleteFn    func(ctx context.Context, id int64) error
	activeFn    func(ctx context.Context, id int64, now time.Time) (bool, error)
	availableFn func(ctx context.Context, now time.Time) ([]model.AvailableHoarding, error)

	deleted []int64
}

var _ hoardingrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, h *model.Hoarding) error {
	if m.createFn == nil {
		h.ID = 1
		return nil
	}
	return m.createFn(ctx, h)
}

func (m *mockRepo) ListByOwner(ctx context.Context, ownerID int64, now time.Time) ([]hoardingrepo.OwnedHoarding, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, ownerID, now)
}

func (m *mockRepo) ByIDForOwner(ctx context.Context, id, ownerID int64) (*model.Hoarding, error) {
	if m.byIDFn == nil {
		return nil, nil
	}
	return m.byIDFn(ctx, id, ownerID)
}

func (m *mockRepo) Update(ctx context.Context, h *model.Hoarding) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, h)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockRepo) HasActivePlacement(ctx context.Context, id int64, now time.Time) (bool, error) {
	if m.activeFn == nil {
		return false, nil
	}
	return m.activeFn(ctx, id, now)
}

func (m *mockRepo) ListAvailable(ctx context.Context, now time.Time) ([]model.AvailableHoarding, error) {
	if m.availableFn == nil {
		return nil, nil
	}
	return m.availableFn(ctx, now)
}

func ownedHoarding(id int64, placed bool) hoardingrepo.OwnedHoarding {
	oh := hoardingrepo.OwnedHoarding{
		Hoarding: model.Hoarding{ID: id, OwnerID: 5, Address: "MG Road"},
	}
	if placed {
		oh.CurrentPlacement = &hoardingrepo.CurrentPlacement{PlacementID: id * 100}
	}
	return oh
}

// --- tests ---

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	h, err := svc.Create(ctx, 5, CreateReq{
		Height:           20,
		Width:            10,
		Address:          "MG Road, Bhubaneswar",
		InstallationDate: "2023-06-15",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), h.ID)
	require.Equal(t, int64(5), h.OwnerID)
	require.Equal(t, 2023, h.InstallationDate.Year())
}

func TestCreate_BadDate(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	_, err := svc.Create(ctx, 5, CreateReq{
		Height:           20,
		Width:            10,
		Address:          "MG Road",
		InstallationDate: "15-06-2023",
	})
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestMyHoardings_Stats(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		listFn: func(ctx context.Context, ownerID int64, now time.Time) ([]hoardingrepo.OwnedHoarding, error) {
			return []hoardingrepo.OwnedHoarding{
				ownedHoarding(1, true),
				ownedHoarding(2, false),
				ownedHoarding(3, true),
			}, nil
		},
	}
	svc := New(m)

	rows, stats, err := svc.MyHoardings(ctx, 5)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, ListStats{Total: 3, Available: 1, Occupied: 2}, stats)
}

func TestDetail_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	_, err := svc.Detail(ctx, 99, 5)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestUpdate_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id, ownerID int64) (*model.Hoarding, error) {
			return &model.Hoarding{ID: id, OwnerID: ownerID, Address: "old address"}, nil
		},
	}
	svc := New(m)

	h, err := svc.Update(ctx, 3, 5, CreateReq{
		Height:           25,
		Width:            12,
		Address:          "new address",
		InstallationDate: "2024-01-01",
	})
	require.NoError(t, err)
	require.Equal(t, "new address", h.Address)
	require.Equal(t, float64(25), h.Height)
}

func TestDelete_RefusedWhileOccupied(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id, ownerID int64) (*model.Hoarding, error) {
			return &model.Hoarding{ID: id, OwnerID: ownerID}, nil
		},
		activeFn: func(ctx context.Context, id int64, now time.Time) (bool, error) {
			return true, nil
		},
	}
	svc := New(m)

	err := svc.Delete(ctx, 3, 5)
	require.Error(t, err)
	require.Equal(t, ErrOccupied, Code(err))
	require.Empty(t, m.deleted)
}

func TestDelete_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id, ownerID int64) (*model.Hoarding, error) {
			return &model.Hoarding{ID: id, OwnerID: ownerID}, nil
		},
	}
	svc := New(m)

	require.NoError(t, svc.Delete(ctx, 3, 5))
	require.Equal(t, []int64{3}, m.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	err := svc.Delete(ctx, 404, 5)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestMyHoardings_RepoError(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		listFn: func(ctx context.Context, ownerID int64, now time.Time) ([]hoardingrepo.OwnedHoarding, error) {
			return nil, errors.New("db down")
		},
	}
	svc := New(m)

	_, _, err := svc.MyHoardings(ctx, 5)
	require.Error(t, err)
	require.Equal(t, ErrCode(""), Code(err))
}
