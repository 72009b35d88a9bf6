// service/placement/placement_service_test.go
package placement

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Swagat003/gov-billboard-portal/model"
	placementrepo "github.com/Swagat003/gov-billboard-portal/repository/placement"
)

// mockRepo keeps the placement set in memory. WithTx holds a mutex for the
// whole callback and rolls the set back on error, which mirrors the real
// repository's row-lock-then-commit behavior closely enough for the
// allocator's contract.
type mockRepo struct {
	mu         sync.Mutex
	hoardings  map[int64]*model.Hoarding
	ads        map[int64]*model.Advertisement
	placements []*model.Placement
	nextID     int64

	// blindChecks makes FindOverlap report no conflict that many times, so
	// tests can force the insert-time constraint backstop to fire.
	blindChecks int
	// txErr aborts the transaction right before commit.
	txErr error

	recomputed []int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		hoardings: map[int64]*model.Hoarding{},
		ads:       map[int64]*model.Advertisement{},
		nextID:    1,
	}
}

func (m *mockRepo) addHoarding(id int64) {
	m.hoardings[id] = &model.Hoarding{ID: id, OwnerID: 1, IsAvailable: true}
}

func (m *mockRepo) addAd(id, advertiserID int64, approved bool) {
	m.ads[id] = &model.Advertisement{ID: id, AdvertiserID: advertiserID, Approved: approved}
}

type mockTxKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(mockTxKey{}).(bool)
	return v
}

func (m *mockRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make([]*model.Placement, len(m.placements))
	copy(snapshot, m.placements)
	avail := map[int64]bool{}
	for id, h := range m.hoardings {
		avail[id] = h.IsAvailable
	}

	err := fn(context.WithValue(ctx, mockTxKey{}, true))
	if err == nil {
		err = m.txErr
	}
	if err != nil {
		m.placements = snapshot
		for id, v := range avail {
			m.hoardings[id].IsAvailable = v
		}
		return err
	}
	return nil
}

func (m *mockRepo) GetHoardingForUpdate(ctx context.Context, hoardingID int64) (*model.Hoarding, error) {
	h, ok := m.hoardings[hoardingID]
	if !ok {
		return nil, placementrepo.ErrHoardingNotFound
	}
	cp := *h
	return &cp, nil
}

func (m *mockRepo) FindAdvertisementForAdvertiser(ctx context.Context, adID, advertiserID int64) (*model.Advertisement, error) {
	a, ok := m.ads[adID]
	if !ok || a.AdvertiserID != advertiserID {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) FindOverlap(ctx context.Context, hoardingID int64, start, end time.Time) (*model.Placement, error) {
	if !inTx(ctx) {
		m.mu.Lock()
		defer m.mu.Unlock()
	}
	if m.blindChecks > 0 {
		m.blindChecks--
		return nil, nil
	}
	for _, p := range m.placements {
		if p.HoardingID == hoardingID && p.Overlaps(start, end) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockRepo) Insert(ctx context.Context, p *model.Placement) error {
	for _, q := range m.placements {
		if q.HoardingID == p.HoardingID && q.Overlaps(p.StartDate, p.EndDate) {
			return placementrepo.ErrOverlap
		}
		if q.Token == p.Token {
			return placementrepo.ErrDuplicateToken
		}
	}
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	cp := *p
	m.placements = append(m.placements, &cp)
	return nil
}

func (m *mockRepo) RecomputeAvailability(ctx context.Context, hoardingID int64, now time.Time) error {
	m.recomputed = append(m.recomputed, hoardingID)
	h, ok := m.hoardings[hoardingID]
	if !ok {
		return placementrepo.ErrHoardingNotFound
	}
	h.IsAvailable = true
	for _, p := range m.placements {
		if p.HoardingID == hoardingID && p.EndDate.After(now) {
			h.IsAvailable = false
			break
		}
	}
	return nil
}

func (m *mockRepo) ListByAdvertiser(ctx context.Context, advertiserID int64) ([]Booking, error) {
	var out []Booking
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.placements {
		if a, ok := m.ads[p.AdvertisementID]; ok && a.AdvertiserID == advertiserID {
			out = append(out, Booking{Placement: *p})
		}
	}
	return out, nil
}

func (m *mockRepo) ByToken(ctx context.Context, token string) (*model.Placement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.placements {
		if p.Token == token {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockRepo) ReleaseExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, h := range m.hoardings {
		if h.IsAvailable {
			continue
		}
		active := false
		for _, p := range m.placements {
			if p.HoardingID == id && p.EndDate.After(now) {
				active = true
				break
			}
		}
		if !active {
			h.IsAvailable = true
			n++
		}
	}
	return n, nil
}

var _ Repo = (*mockRepo)(nil)

func fixedNow() time.Time {
	return time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
}

func newService(m *mockRepo) Service {
	return NewWithClock(m, fixedNow)
}

func book(t *testing.T, s Service, start, end string) (*model.Placement, error) {
	t.Helper()
	return s.Book(context.Background(), 7, BookReq{
		HoardingID:      1,
		AdvertisementID: 10,
		StartDate:       start,
		EndDate:         end,
	})
}

func setup(t *testing.T) (*mockRepo, Service) {
	t.Helper()
	m := newMockRepo()
	m.addHoarding(1)
	m.addAd(10, 7, true)
	return m, newService(m)
}

// --- tests ---

func TestBook_InvalidRange(t *testing.T) {
	_, s := setup(t)

	for _, tc := range []struct{ start, end string }{
		{"not-a-date", "2025-02-01"},
		{"2025-01-01", "bogus"},
		{"2025-02-01", "2025-02-01"}, // zero-length
		{"2025-03-01", "2025-02-01"}, // reversed
	} {
		_, err := book(t, s, tc.start, tc.end)
		require.Error(t, err)
		require.Equal(t, ErrInvalidRange, Code(err), "start=%s end=%s", tc.start, tc.end)
	}
}

func TestBook_AdNotEligible(t *testing.T) {
	m := newMockRepo()
	m.addHoarding(1)
	m.addAd(10, 7, false) // not approved
	m.addAd(11, 99, true) // someone else's
	s := newService(m)

	_, err := book(t, s, "2025-02-01", "2025-03-01")
	require.Equal(t, ErrAdNotEligible, Code(err))

	_, err = s.Book(context.Background(), 7, BookReq{
		HoardingID: 1, AdvertisementID: 11,
		StartDate: "2025-02-01", EndDate: "2025-03-01",
	})
	require.Equal(t, ErrAdNotEligible, Code(err))

	_, err = s.Book(context.Background(), 7, BookReq{
		HoardingID: 1, AdvertisementID: 404,
		StartDate: "2025-02-01", EndDate: "2025-03-01",
	})
	require.Equal(t, ErrAdNotEligible, Code(err))

	require.Empty(t, m.placements, "no placement may be created")
	require.True(t, m.hoardings[1].IsAvailable, "availability untouched")
}

func TestBook_HoardingNotFound(t *testing.T) {
	m := newMockRepo()
	m.addAd(10, 7, true)
	s := newService(m)

	_, err := book(t, s, "2025-02-01", "2025-03-01")
	require.Equal(t, ErrHoardingNotFound, Code(err))
	require.Empty(t, m.placements)
}

func TestBook_Success(t *testing.T) {
	m, s := setup(t)

	p, err := book(t, s, "2025-01-01", "2025-02-01")
	require.NoError(t, err)
	require.NotZero(t, p.ID)
	require.NotEmpty(t, p.Token, "a placement must never exist without its token")
	require.Equal(t, "2025-01-01", p.StartDate.Format(time.DateOnly))
	require.Equal(t, "2025-02-01", p.EndDate.Format(time.DateOnly))

	// Interval covers "now" (2025-01-10), so the derived flag flips off
	// in the same transaction.
	require.Equal(t, []int64{1}, m.recomputed)
	require.False(t, m.hoardings[1].IsAvailable)

	got, err := s.ByToken(context.Background(), p.Token)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
}

func TestBook_FuturePlacementAlsoOccupies(t *testing.T) {
	m, s := setup(t)

	_, err := book(t, s, "2025-06-01", "2025-07-01")
	require.NoError(t, err)
	require.False(t, m.hoardings[1].IsAvailable, "future placement still occupies the slot")
}

func TestBook_SlotConflictCarriesInterval(t *testing.T) {
	_, s := setup(t)

	first, err := book(t, s, "2025-01-01", "2025-02-01")
	require.NoError(t, err)

	_, err = book(t, s, "2025-01-15", "2025-03-01")
	require.Equal(t, ErrSlotConflict, Code(err))

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, first.ID, ce.PlacementID)
	require.Equal(t, "2025-01-01", ce.Start.Format(time.DateOnly))
	require.Equal(t, "2025-02-01", ce.End.Format(time.DateOnly))
}

func TestBook_AdjacentIntervalsDoNotConflict(t *testing.T) {
	// Half-open intervals: [01-01, 02-01) and [02-01, 03-01) share only the
	// boundary instant, which belongs to the second one.
	_, s := setup(t)

	_, err := book(t, s, "2025-01-01", "2025-02-01")
	require.NoError(t, err)

	p, err := book(t, s, "2025-02-01", "2025-03-01")
	require.NoError(t, err)
	require.NotEmpty(t, p.Token)
}

func TestBook_RetryAfterCommitConflicts(t *testing.T) {
	// A caller that timed out after the commit landed must not double-book
	// on retry; it gets the conflict that names its own earlier placement.
	_, s := setup(t)

	first, err := book(t, s, "2025-02-01", "2025-03-01")
	require.NoError(t, err)

	_, err = book(t, s, "2025-02-01", "2025-03-01")
	require.Equal(t, ErrSlotConflict, Code(err))

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, first.ID, ce.PlacementID)
}

func TestBook_ConstraintBackstop(t *testing.T) {
	// If the in-transaction overlap check somehow misses the other row, the
	// store's exclusion constraint still rejects the insert and the caller
	// gets a conflict with the interval filled in from a re-read.
	m, s := setup(t)

	first, err := book(t, s, "2025-01-01", "2025-02-01")
	require.NoError(t, err)

	m.blindChecks = 1
	_, err = book(t, s, "2025-01-15", "2025-03-01")
	require.Equal(t, ErrSlotConflict, Code(err))

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, first.ID, ce.PlacementID)
	require.Len(t, m.placements, 1)
}

func TestBook_ConcurrentOneWinner(t *testing.T) {
	m, s := setup(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Pairwise-overlapping windows shifted by a day each.
			start := time.Date(2025, 3, 1+i, 0, 0, 0, 0, time.UTC)
			end := start.AddDate(0, 1, 0)
			_, errs[i] = s.Book(context.Background(), 7, BookReq{
				HoardingID:      1,
				AdvertisementID: 10,
				StartDate:       start.Format(time.DateOnly),
				EndDate:         end.Format(time.DateOnly),
			})
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case Code(err) == ErrSlotConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, n-1, conflicts)
	require.Len(t, m.placements, 1)
}

func TestBook_CommittedPlacementsNeverOverlap(t *testing.T) {
	m, s := setup(t)

	// A burst of random-ish windows; whatever commits must be pairwise
	// disjoint per hoarding.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start := time.Date(2025, 4, 1+(i*3)%20, 0, 0, 0, 0, time.UTC)
			end := start.AddDate(0, 0, 5+i%7)
			_, _ = s.Book(context.Background(), 7, BookReq{
				HoardingID:      1,
				AdvertisementID: 10,
				StartDate:       start.Format(time.DateOnly),
				EndDate:         end.Format(time.DateOnly),
			})
		}(i)
	}
	wg.Wait()

	for i, a := range m.placements {
		for _, b := range m.placements[i+1:] {
			require.False(t, a.Overlaps(b.StartDate, b.EndDate),
				"placements %d and %d overlap", a.ID, b.ID)
		}
	}
}

func TestBook_StoreUnavailable(t *testing.T) {
	m, s := setup(t)
	m.txErr = context.DeadlineExceeded

	_, err := book(t, s, "2025-02-01", "2025-03-01")
	require.Equal(t, ErrStoreUnavailable, Code(err))
	require.Empty(t, m.placements, "aborted commit leaves no partial state")
	require.True(t, m.hoardings[1].IsAvailable)
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrSlotConflict, Code(&ConflictError{PlacementID: 3}))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
	require.Equal(t, ErrCode(""), Code(nil))
}

func TestRefresher_ReleasesExpiredOnly(t *testing.T) {
	m := newMockRepo()
	m.addHoarding(1)
	m.addHoarding(2)
	m.addAd(10, 7, true)
	s := newService(m)

	_, err := book(t, s, "2025-01-01", "2025-02-01") // hoarding 1, expired by June
	require.NoError(t, err)
	_, err = s.Book(context.Background(), 7, BookReq{
		HoardingID: 2, AdvertisementID: 10,
		StartDate: "2025-01-01", EndDate: "2026-01-01",
	})
	require.NoError(t, err)

	require.False(t, m.hoardings[1].IsAvailable)
	require.False(t, m.hoardings[2].IsAvailable)

	n, err := m.ReleaseExpired(context.Background(), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.True(t, m.hoardings[1].IsAvailable)
	require.False(t, m.hoardings[2].IsAvailable, "still booked through 2026")
}
