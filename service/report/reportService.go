package reportsvc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Swagat003/gov-billboard-portal/model"
	reportrepo "github.com/Swagat003/gov-billboard-portal/repository/report"
	webhookrepo "github.com/Swagat003/gov-billboard-portal/repository/webhook"
)

type ErrCode string

const (
	ErrUnknownToken ErrCode = "UNKNOWN_TOKEN"
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrBadStatus    ErrCode = "BAD_STATUS"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type SubmitReq struct {
	Token         *string `json:"token,omitempty"`
	ReporterPhone string  `json:"reporter_phone" validate:"required,min=10,max=15"`
	IssueType     string  `json:"issue_type" validate:"required,oneof=NO_QR BANNED_CONTENT ILLEGAL_INSTALLATION STRUCTURAL_HAZARD"`
	Description   string  `json:"description" validate:"required"`
	ImageURL      *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// ListFilter = repository shape
type ListFilter = reportrepo.ListFilter

// TokenResolver looks a QR token up in the placement set.
type TokenResolver interface {
	ByToken(ctx context.Context, token string) (*model.Placement, error)
}

type Service interface {
	// Submit files a citizen report. A token, when present, must resolve to
	// an existing placement.
	Submit(ctx context.Context, req SubmitReq) (*model.Report, error)

	List(ctx context.Context, f ListFilter) ([]model.Report, int64, error)
	Detail(ctx context.Context, id int64) (*model.Report, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (model.ReportStats, error)
}

// ----- Service implementation -----

type service struct {
	r      reportrepo.Repo
	tokens TokenResolver
	notify webhookrepo.Repo
	log    *slog.Logger
}

func New(r reportrepo.Repo, tokens TokenResolver, notify webhookrepo.Repo, log *slog.Logger) Service {
	return &service{r: r, tokens: tokens, notify: notify, log: log}
}

func (s *service) Submit(ctx context.Context, req SubmitReq) (*model.Report, error) {
	if req.Token != nil && *req.Token != "" {
		p, err := s.tokens.ByToken(ctx, *req.Token)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, makeErr(ErrUnknownToken)
		}
	} else {
		req.Token = nil
	}

	rep := &model.Report{
		Token:         req.Token,
		ReporterPhone: req.ReporterPhone,
		IssueType:     model.IssueType(req.IssueType),
		Description:   req.Description,
		ImageURL:      req.ImageURL,
	}
	if err := s.r.Create(ctx, rep); err != nil {
		return nil, err
	}

	// Best effort: the report is already persisted, a webhook failure only
	// delays the admin notification.
	if err := s.notify.NotifyReport(ctx, rep); err != nil {
		s.log.Warn("report webhook delivery failed", "report_id", rep.ID, "err", err)
	}

	return rep, nil
}

func (s *service) List(ctx context.Context, f ListFilter) ([]model.Report, int64, error) {
	return s.r.List(ctx, f)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Report, error) {
	rep, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, makeErr(ErrNotFound)
	}
	return rep, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status string) error {
	switch model.ReportStatus(status) {
	case model.ReportPending, model.ReportReviewed, model.ReportActionTaken:
	default:
		return makeErr(ErrBadStatus)
	}

	found, err := s.r.UpdateStatus(ctx, id, model.ReportStatus(status))
	if err != nil {
		return err
	}
	if !found {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	found, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) Stats(ctx context.Context) (model.ReportStats, error) {
	return s.r.Stats(ctx)
}
