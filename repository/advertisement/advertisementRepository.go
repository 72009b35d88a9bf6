// repository/advertisement/repo.go
package advertisement

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Swagat003/gov-billboard-portal/model"
)

type Repo interface {
	Create(ctx context.Context, a *model.Advertisement) error
	ListByAdvertiser(ctx context.Context, advertiserID int64) ([]model.Advertisement, error)
	ByIDForAdvertiser(ctx context.Context, id, advertiserID int64) (*model.Advertisement, error)
	ByID(ctx context.Context, id int64) (*model.Advertisement, error)
	Update(ctx context.Context, a *model.Advertisement) error
	SetApproval(ctx context.Context, id int64, approved bool) (bool, error)
	Delete(ctx context.Context, id int64) error
	HasActivePlacement(ctx context.Context, id int64, now time.Time) (bool, error)
	ListPendingApproval(ctx context.Context) ([]model.Advertisement, error)
}

type repo struct{ db *pgxpool.Pool }

func New(db *pgxpool.Pool) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, a *model.Advertisement) error {
	const q = `
INSERT INTO advertisements (advertiser_id, title, description, category, content_url)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, approved, created_at`
	return r.db.QueryRow(ctx, q,
		a.AdvertiserID, a.Title, a.Description, a.Category, a.ContentURL,
	).Scan(&a.ID, &a.Approved, &a.CreatedAt)
}

func (r *repo) ListByAdvertiser(ctx context.Context, advertiserID int64) ([]model.Advertisement, error) {
	const q = `
SELECT id, advertiser_id, title, description, category, content_url, approved, created_at
FROM advertisements
WHERE advertiser_id = $1
ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, q, advertiserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAds(rows)
}

func (r *repo) ByIDForAdvertiser(ctx context.Context, id, advertiserID int64) (*model.Advertisement, error) {
	const q = `
SELECT id, advertiser_id, title, description, category, content_url, approved, created_at
FROM advertisements
WHERE id = $1 AND advertiser_id = $2`
	return r.one(ctx, q, id, advertiserID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Advertisement, error) {
	const q = `
SELECT id, advertiser_id, title, description, category, content_url, approved, created_at
FROM advertisements
WHERE id = $1`
	return r.one(ctx, q, id)
}

func (r *repo) one(ctx context.Context, q string, args ...any) (*model.Advertisement, error) {
	a := &model.Advertisement{}
	err := r.db.QueryRow(ctx, q, args...).Scan(
		&a.ID, &a.AdvertiserID, &a.Title, &a.Description, &a.Category, &a.ContentURL, &a.Approved, &a.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// Update rewrites the creative fields and drops approval so the ad goes
// back through admin review.
func (r *repo) Update(ctx context.Context, a *model.Advertisement) error {
	const q = `
UPDATE advertisements
SET title = $2, description = $3, category = $4, content_url = $5, approved = FALSE
WHERE id = $1
RETURNING approved`
	return r.db.QueryRow(ctx, q, a.ID, a.Title, a.Description, a.Category, a.ContentURL).Scan(&a.Approved)
}

func (r *repo) SetApproval(ctx context.Context, id int64, approved bool) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE advertisements SET approved = $2 WHERE id = $1`, id, approved)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM advertisements WHERE id = $1`, id)
	return err
}

func (r *repo) HasActivePlacement(ctx context.Context, id int64, now time.Time) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1 FROM placements
	WHERE advertisement_id = $1 AND end_date > $2
)`
	var active bool
	err := r.db.QueryRow(ctx, q, id, now).Scan(&active)
	return active, err
}

func (r *repo) ListPendingApproval(ctx context.Context) ([]model.Advertisement, error) {
	const q = `
SELECT id, advertiser_id, title, description, category, content_url, approved, created_at
FROM advertisements
WHERE NOT approved
ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAds(rows)
}

func scanAds(rows pgx.Rows) ([]model.Advertisement, error) {
	var out []model.Advertisement
	for rows.Next() {
		var a model.Advertisement
		if err := rows.Scan(
			&a.ID, &a.AdvertiserID, &a.Title, &a.Description, &a.Category, &a.ContentURL, &a.Approved, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
