// repository/report/repo.go
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Swagat003/gov-billboard-portal/model"
)

type ListFilter struct {
	Status string // PENDING | REVIEWED | ACTION_TAKEN, empty for all
	Search string // matches description, phone, token
	Page   int
	Limit  int
}

type Repo interface {
	Create(ctx context.Context, rep *model.Report) error
	List(ctx context.Context, f ListFilter) ([]model.Report, int64, error)
	ByID(ctx context.Context, id int64) (*model.Report, error)
	UpdateStatus(ctx context.Context, id int64, status model.ReportStatus) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Stats(ctx context.Context) (model.ReportStats, error)
}

type repo struct{ db *pgxpool.Pool }

func New(db *pgxpool.Pool) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, rep *model.Report) error {
	const q = `
INSERT INTO reports (token, reporter_phone, issue_type, description, image_url)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, status, created_at`
	return r.db.QueryRow(ctx, q,
		rep.Token, rep.ReporterPhone, rep.IssueType, rep.Description, rep.ImageURL,
	).Scan(&rep.ID, &rep.Status, &rep.CreatedAt)
}

func (r *repo) List(ctx context.Context, f ListFilter) ([]model.Report, int64, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(description ILIKE $%d OR reporter_phone LIKE $%d OR token ILIKE $%d)", n, n, n))
	}
	cond := ""
	if len(where) > 0 {
		cond = "WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM reports "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	q := fmt.Sprintf(`
SELECT id, token, reporter_phone, issue_type, description, image_url, status, created_at
FROM reports %s
ORDER BY created_at DESC, id DESC
LIMIT $%d OFFSET $%d`, cond, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.Report
	for rows.Next() {
		var rep model.Report
		if err := rows.Scan(
			&rep.ID, &rep.Token, &rep.ReporterPhone, &rep.IssueType,
			&rep.Description, &rep.ImageURL, &rep.Status, &rep.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, rep)
	}
	return out, total, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Report, error) {
	const q = `
SELECT id, token, reporter_phone, issue_type, description, image_url, status, created_at
FROM reports
WHERE id = $1`
	rep := &model.Report{}
	err := r.db.QueryRow(ctx, q, id).Scan(
		&rep.ID, &rep.Token, &rep.ReporterPhone, &rep.IssueType,
		&rep.Description, &rep.ImageURL, &rep.Status, &rep.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return rep, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status model.ReportStatus) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE reports SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) Stats(ctx context.Context) (model.ReportStats, error) {
	const q = `
SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE status = 'PENDING'),
	COUNT(*) FILTER (WHERE status = 'REVIEWED'),
	COUNT(*) FILTER (WHERE status = 'ACTION_TAKEN')
FROM reports`
	var s model.ReportStats
	err := r.db.QueryRow(ctx, q).Scan(&s.Total, &s.Pending, &s.Reviewed, &s.ActionTaken)
	return s, err
}
