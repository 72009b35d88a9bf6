package advertisementsvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Swagat003/gov-billboard-portal/model"
	adrepo "github.com/Swagat003/gov-billboard-portal/repository/advertisement"
)

type mockRepo struct {
	byIDForAdvFn func(ctx context.Context, id, advertiserID int64) (*model.Advertisement, error)
	activeFn     func(ctx context.Context, id int64, now time.Time) (bool, error)
	approvalFn   func(ctx context.Context, id int64, approved bool) (bool, error)

	updated []*model.Advertisement
	deleted []int64
}

var _ adrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, a *model.Advertisement) error {
	a.ID = 1
	return nil
}

func (m *mockRepo) ListByAdvertiser(ctx context.Context, advertiserID int64) ([]model.Advertisement, error) {
	return nil, nil
}

func (m *mockRepo) ByIDForAdvertiser(ctx context.Context, id, advertiserID int64) (*model.Advertisement, error) {
	if m.byIDForAdvFn == nil {
		return nil, nil
	}
	return m.byIDForAdvFn(ctx, id, advertiserID)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.Advertisement, error) {
	return nil, nil
}

func (m *mockRepo) Update(ctx context.Context, a *model.Advertisement) error {
	m.updated = append(m.updated, a)
	a.Approved = false
	return nil
}

func (m *mockRepo) SetApproval(ctx context.Context, id int64, approved bool) (bool, error) {
	if m.approvalFn == nil {
		return true, nil
	}
	return m.approvalFn(ctx, id, approved)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepo) HasActivePlacement(ctx context.Context, id int64, now time.Time) (bool, error) {
	if m.activeFn == nil {
		return false, nil
	}
	return m.activeFn(ctx, id, now)
}

func (m *mockRepo) ListPendingApproval(ctx context.Context) ([]model.Advertisement, error) {
	return nil, nil
}

// --- tests ---

func TestCreate_StartsUnapproved(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	a, err := svc.Create(ctx, 9, CreateReq{
		Title:       "Summer Sale",
		Description: "50% off everything",
		Category:    "RETAIL",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), a.ID)
	require.Equal(t, int64(9), a.AdvertiserID)
	require.False(t, a.Approved)
}

func TestUpdate_ResetsApproval(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDForAdvFn: func(ctx context.Context, id, advertiserID int64) (*model.Advertisement, error) {
			return &model.Advertisement{ID: id, AdvertiserID: advertiserID, Title: "old", Approved: true}, nil
		},
	}
	svc := New(m)

	a, err := svc.Update(ctx, 3, 9, CreateReq{
		Title:       "new title",
		Description: "new copy",
		Category:    "RETAIL",
	})
	require.NoError(t, err)
	require.Equal(t, "new title", a.Title)
	require.False(t, a.Approved)
	require.Len(t, m.updated, 1)
}

func TestUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	_, err := svc.Update(ctx, 404, 9, CreateReq{Title: "x", Description: "y", Category: "z"})
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestDelete_RefusedWhileInUse(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDForAdvFn: func(ctx context.Context, id, advertiserID int64) (*model.Advertisement, error) {
			return &model.Advertisement{ID: id, AdvertiserID: advertiserID}, nil
		},
		activeFn: func(ctx context.Context, id int64, now time.Time) (bool, error) {
			return true, nil
		},
	}
	svc := New(m)

	err := svc.Delete(ctx, 3, 9)
	require.Error(t, err)
	require.Equal(t, ErrInUse, Code(err))
	require.Empty(t, m.deleted)
}

func TestDelete_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDForAdvFn: func(ctx context.Context, id, advertiserID int64) (*model.Advertisement, error) {
			return &model.Advertisement{ID: id, AdvertiserID: advertiserID}, nil
		},
	}
	svc := New(m)

	require.NoError(t, svc.Delete(ctx, 3, 9))
	require.Equal(t, []int64{3}, m.deleted)
}

func TestSetApproval_NotFound(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		approvalFn: func(ctx context.Context, id int64, approved bool) (bool, error) {
			return false, nil
		},
	}
	svc := New(m)

	err := svc.SetApproval(ctx, 404, true)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}
