// repository/placement/repo.go
package placement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Swagat003/gov-billboard-portal/model"
)

var (
	// ErrHoardingNotFound is returned by GetHoardingForUpdate for a missing row.
	ErrHoardingNotFound = errors.New("hoarding not found")
	// ErrOverlap is returned by Insert when the store's exclusion constraint
	// rejects the row. With the hoarding row locked this should not fire; it
	// is the backstop that turns any residual race into an error instead of
	// a double booking.
	ErrOverlap = errors.New("placement overlaps an existing booking")
	// ErrDuplicateToken is returned by Insert on a token collision.
	ErrDuplicateToken = errors.New("duplicate placement token")
)

// Booking is a placement joined with its hoarding and advertisement for
// advertiser-facing listings.
type Booking struct {
	model.Placement
	AdTitle         string  `json:"ad_title"`
	HoardingAddress string  `json:"hoarding_address"`
	OwnerName       string  `json:"owner_name"`
	OwnerPhone      string  `json:"owner_phone"`
	OwnerEmail      string  `json:"owner_email"`
	HoardingHeight  float64 `json:"hoarding_height"`
	HoardingWidth   float64 `json:"hoarding_width"`
}

type Repo interface {
	// WithTx runs fn inside one transaction; repository calls made with the
	// ctx passed to fn join that transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	GetHoardingForUpdate(ctx context.Context, hoardingID int64) (*model.Hoarding, error)
	FindAdvertisementForAdvertiser(ctx context.Context, adID, advertiserID int64) (*model.Advertisement, error)
	FindOverlap(ctx context.Context, hoardingID int64, start, end time.Time) (*model.Placement, error)
	Insert(ctx context.Context, p *model.Placement) error
	RecomputeAvailability(ctx context.Context, hoardingID int64, now time.Time) error

	ListByAdvertiser(ctx context.Context, advertiserID int64) ([]Booking, error)
	ByToken(ctx context.Context, token string) (*model.Placement, error)
	ReleaseExpired(ctx context.Context, now time.Time) (int64, error)
}

type repo struct{ db *pgxpool.Pool }

func New(db *pgxpool.Pool) Repo { return &repo{db: db} }

func (r *repo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.db, fn)
}

// GetHoardingForUpdate locks the hoarding row for the life of the enclosing
// transaction. Every allocation on a hoarding takes this lock first, so the
// overlap check and the insert cannot interleave between two callers, while
// allocations on different hoardings proceed in parallel.
func (r *repo) GetHoardingForUpdate(ctx context.Context, hoardingID int64) (*model.Hoarding, error) {
	const q = `
SELECT id, owner_id, height, width, address, latitude, longitude, installation_date, is_available, created_at
FROM hoardings
WHERE id = $1
FOR UPDATE`
	h := &model.Hoarding{}
	err := r.queryRow(ctx, q, hoardingID).Scan(
		&h.ID, &h.OwnerID, &h.Height, &h.Width, &h.Address, &h.Latitude, &h.Longitude,
		&h.InstallationDate, &h.IsAvailable, &h.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrHoardingNotFound
		}
		return nil, fmt.Errorf("get hoarding for update: %w", err)
	}
	return h, nil
}

func (r *repo) FindAdvertisementForAdvertiser(ctx context.Context, adID, advertiserID int64) (*model.Advertisement, error) {
	const q = `
SELECT id, advertiser_id, title, description, category, content_url, approved, created_at
FROM advertisements
WHERE id = $1 AND advertiser_id = $2`
	a := &model.Advertisement{}
	err := r.queryRow(ctx, q, adID, advertiserID).Scan(
		&a.ID, &a.AdvertiserID, &a.Title, &a.Description, &a.Category, &a.ContentURL, &a.Approved, &a.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find advertisement: %w", err)
	}
	return a, nil
}

// FindOverlap returns the first placement on the hoarding whose half-open
// interval intersects [start, end), or nil.
func (r *repo) FindOverlap(ctx context.Context, hoardingID int64, start, end time.Time) (*model.Placement, error) {
	const q = `
SELECT id, hoarding_id, advertisement_id, start_date, end_date, token, created_at
FROM placements
WHERE hoarding_id = $1 AND start_date < $3 AND $2 < end_date
ORDER BY start_date
LIMIT 1`
	p := &model.Placement{}
	err := r.queryRow(ctx, q, hoardingID, start, end).Scan(
		&p.ID, &p.HoardingID, &p.AdvertisementID, &p.StartDate, &p.EndDate, &p.Token, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find overlap: %w", err)
	}
	return p, nil
}

func (r *repo) Insert(ctx context.Context, p *model.Placement) error {
	const q = `
INSERT INTO placements (hoarding_id, advertisement_id, start_date, end_date, token)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, created_at`
	err := r.queryRow(ctx, q, p.HoardingID, p.AdvertisementID, p.StartDate, p.EndDate, p.Token).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrOverlap
		}
		if isUniqueViolation(err) {
			return ErrDuplicateToken
		}
		return fmt.Errorf("insert placement: %w", err)
	}
	return nil
}

// RecomputeAvailability re-derives the is_available cache from the placement
// set. Runs inside the allocation transaction so the flag and the placement
// row commit together.
func (r *repo) RecomputeAvailability(ctx context.Context, hoardingID int64, now time.Time) error {
	const q = `
UPDATE hoardings
SET is_available = NOT EXISTS (
	SELECT 1 FROM placements
	WHERE hoarding_id = $1 AND end_date > $2
)
WHERE id = $1`
	if _, err := r.exec(ctx, q, hoardingID, now); err != nil {
		return fmt.Errorf("recompute availability: %w", err)
	}
	return nil
}

func (r *repo) ListByAdvertiser(ctx context.Context, advertiserID int64) ([]Booking, error) {
	const q = `
	SELECT p.id, p.hoarding_id, p.advertisement_id, p.start_date, p.end_date, p.token, p.created_at,
		a.title, h.address, h.height, h.width, u.name, u.phone, u.email
	FROM placements p
	JOIN advertisements a ON a.id = p.advertisement_id
	JOIN hoardings h ON h.id = p.hoarding_id
	JOIN users u ON u.id = h.owner_id
	WHERE a.advertiser_id = $1
	ORDER BY p.start_date DESC, p.id DESC`
	rows, err := r.db.Query(ctx, q, advertiserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.HoardingID, &b.AdvertisementID, &b.StartDate, &b.EndDate, &b.Token, &b.CreatedAt,
			&b.AdTitle, &b.HoardingAddress, &b.HoardingHeight, &b.HoardingWidth,
			&b.OwnerName, &b.OwnerPhone, &b.OwnerEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) ByToken(ctx context.Context, token string) (*model.Placement, error) {
	const q = `
SELECT id, hoarding_id, advertisement_id, start_date, end_date, token, created_at
FROM placements
WHERE token = $1`
	p := &model.Placement{}
	err := r.db.QueryRow(ctx, q, token).Scan(
		&p.ID, &p.HoardingID, &p.AdvertisementID, &p.StartDate, &p.EndDate, &p.Token, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// ReleaseExpired flips is_available back on for hoardings whose placements
// have all ended. Returns the number of hoardings released.
func (r *repo) ReleaseExpired(ctx context.Context, now time.Time) (int64, error) {
	const q = `
UPDATE hoardings h
SET is_available = TRUE
WHERE NOT h.is_available
AND NOT EXISTS (
	SELECT 1 FROM placements p
	WHERE p.hoarding_id = h.id AND p.end_date > $1
)`
	tag, err := r.db.Exec(ctx, q, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repo) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *repo) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.db.QueryRow(ctx, sql, args...)
}
