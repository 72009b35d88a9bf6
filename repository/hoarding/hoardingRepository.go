package hoarding

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Swagat003/gov-billboard-portal/model"
)

// OwnedHoarding is a hoarding row joined with its current placement, if any.
type OwnedHoarding struct {
	model.Hoarding
	CurrentPlacement *CurrentPlacement `json:"current_placement,omitempty"`
}

type CurrentPlacement struct {
	PlacementID     int64     `json:"placement_id"`
	AdvertisementID int64     `json:"advertisement_id"`
	AdTitle         string    `json:"ad_title"`
	AdvertiserName  string    `json:"advertiser_name"`
	AdvertiserEmail string    `json:"advertiser_email"`
	AdvertiserPhone string    `json:"advertiser_phone"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Token           string    `json:"token"`
}

type Repo interface {
	Create(ctx context.Context, h *model.Hoarding) error
	ListByOwner(ctx context.Context, ownerID int64, now time.Time) ([]OwnedHoarding, error)
	ByIDForOwner(ctx context.Context, id, ownerID int64) (*model.Hoarding, error)
	Update(ctx context.Context, h *model.Hoarding) error
	Delete(ctx context.Context, id int64) error
	HasActivePlacement(ctx context.Context, id int64, now time.Time) (bool, error)
	ListAvailable(ctx context.Context, now time.Time) ([]model.AvailableHoarding, error)
}

type repo struct{ db *pgxpool.Pool }

func New(db *pgxpool.Pool) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, h *model.Hoarding) error {
	const q = `
INSERT INTO hoardings (owner_id, height, width, address, latitude, longitude, installation_date)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id, is_available, created_at`
	return r.db.QueryRow(ctx, q,
		h.OwnerID, h.Height, h.Width, h.Address, h.Latitude, h.Longitude, h.InstallationDate,
	).Scan(&h.ID, &h.IsAvailable, &h.CreatedAt)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, now time.Time) ([]OwnedHoarding, error) {
	const q = `
	SELECT h.id, h.owner_id, h.height, h.width, h.address, h.latitude, h.longitude,
		h.installation_date, h.is_available, h.created_at,
		p.id, p.advertisement_id, a.title, u.name, u.email, u.phone,
		p.start_date, p.end_date, p.token
	FROM hoardings h
	LEFT JOIN placements p
		ON p.hoarding_id = h.id AND p.start_date <= $2 AND p.end_date > $2
	LEFT JOIN advertisements a ON a.id = p.advertisement_id
	LEFT JOIN users u ON u.id = a.advertiser_id
	WHERE h.owner_id = $1
	ORDER BY h.created_at DESC, h.id DESC`
	rows, err := r.db.Query(ctx, q, ownerID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OwnedHoarding
	for rows.Next() {
		var h OwnedHoarding
		var (
			pid, adID               *int64
			title, name, email, tel *string
			start, end              *time.Time
			token                   *string
		)
		if err := rows.Scan(
			&h.ID, &h.OwnerID, &h.Height, &h.Width, &h.Address, &h.Latitude, &h.Longitude,
			&h.InstallationDate, &h.IsAvailable, &h.CreatedAt,
			&pid, &adID, &title, &name, &email, &tel, &start, &end, &token,
		); err != nil {
			return nil, err
		}
		if pid != nil {
			h.CurrentPlacement = &CurrentPlacement{
				PlacementID:     *pid,
				AdvertisementID: *adID,
				AdTitle:         *title,
				AdvertiserName:  *name,
				AdvertiserEmail: *email,
				AdvertiserPhone: *tel,
				StartDate:       *start,
				EndDate:         *end,
				Token:           *token,
			}
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *repo) ByIDForOwner(ctx context.Context, id, ownerID int64) (*model.Hoarding, error) {
	const q = `
SELECT id, owner_id, height, width, address, latitude, longitude, installation_date, is_available, created_at
FROM hoardings
WHERE id = $1 AND owner_id = $2`
	h := &model.Hoarding{}
	err := r.db.QueryRow(ctx, q, id, ownerID).Scan(
		&h.ID, &h.OwnerID, &h.Height, &h.Width, &h.Address, &h.Latitude, &h.Longitude,
		&h.InstallationDate, &h.IsAvailable, &h.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return h, nil
}

func (r *repo) Update(ctx context.Context, h *model.Hoarding) error {
	const q = `
UPDATE hoardings
SET height = $2, width = $3, address = $4, latitude = $5, longitude = $6, installation_date = $7
WHERE id = $1`
	_, err := r.db.Exec(ctx, q, h.ID, h.Height, h.Width, h.Address, h.Latitude, h.Longitude, h.InstallationDate)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM hoardings WHERE id = $1`, id)
	return err
}

func (r *repo) HasActivePlacement(ctx context.Context, id int64, now time.Time) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1 FROM placements
	WHERE hoarding_id = $1 AND end_date > $2
)`
	var active bool
	err := r.db.QueryRow(ctx, q, id, now).Scan(&active)
	return active, err
}

func (r *repo) ListAvailable(ctx context.Context, now time.Time) ([]model.AvailableHoarding, error) {
	// Availability is derived from the placement set, not trusted from the
	// is_available cache column.
	const q = `
	SELECT h.id, h.owner_id, h.height, h.width, h.address, h.latitude, h.longitude,
		h.installation_date, h.is_available, h.created_at,
		u.name, u.email, u.phone
	FROM hoardings h
	JOIN users u ON u.id = h.owner_id
	WHERE NOT EXISTS (
		SELECT 1 FROM placements p
		WHERE p.hoarding_id = h.id AND p.end_date > $1
	)
	ORDER BY h.created_at DESC, h.id DESC`
	rows, err := r.db.Query(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AvailableHoarding
	for rows.Next() {
		var h model.AvailableHoarding
		if err := rows.Scan(
			&h.ID, &h.OwnerID, &h.Height, &h.Width, &h.Address, &h.Latitude, &h.Longitude,
			&h.InstallationDate, &h.IsAvailable, &h.CreatedAt,
			&h.Owner.Name, &h.Owner.Email, &h.Owner.Phone,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
