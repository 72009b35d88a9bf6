package placement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Swagat003/gov-billboard-portal/model"
	placementrepo "github.com/Swagat003/gov-billboard-portal/repository/placement"
)

// errors used by controllers

type ErrCode string

const (
	ErrInvalidRange     ErrCode = "INVALID_RANGE"
	ErrAdNotEligible    ErrCode = "AD_NOT_ELIGIBLE"
	ErrHoardingNotFound ErrCode = "HOARDING_NOT_FOUND"
	ErrSlotConflict     ErrCode = "SLOT_CONFLICT"
	ErrStoreUnavailable ErrCode = "STORE_UNAVAILABLE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// ConflictError reports the booking that blocks the requested interval so
// the caller can suggest alternative dates.
type ConflictError struct {
	PlacementID int64
	Start       time.Time
	End         time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot conflict with placement %d [%s, %s)",
		e.PlacementID, e.Start.Format(time.DateOnly), e.End.Format(time.DateOnly))
}
func (e *ConflictError) Code() ErrCode { return ErrSlotConflict }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type BookReq struct {
	HoardingID      int64  `json:"hoarding_id" validate:"required,gt=0"`
	AdvertisementID int64  `json:"advertisement_id" validate:"required,gt=0"`
	StartDate       string `json:"start_date" validate:"required"`
	EndDate         string `json:"end_date" validate:"required"`
}

// Booking = repository shape
type Booking = placementrepo.Booking

type Repo interface {
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

type Service interface {
	// Book validates and commits one placement request. On success the
	// returned placement carries its QR token; on failure nothing was
	// written.
	Book(ctx context.Context, advertiserID int64, req BookReq) (*model.Placement, error)

	// MyBookings lists an advertiser's placements with hoarding context.
	MyBookings(ctx context.Context, advertiserID int64) ([]Booking, error)

	// ByToken resolves a QR token to its placement, nil if unknown.
	ByToken(ctx context.Context, token string) (*model.Placement, error)
}

// ----- Service implementation -----

type service struct {
	r   Repo
	now func() time.Time
}

func New(r Repo) Service { return &service{r: r, now: func() time.Time { return time.Now().UTC() }} }

// NewWithClock pins the clock; tests use it to control "now".
func NewWithClock(r Repo, now func() time.Time) Service { return &service{r: r, now: now} }

// Book runs the validate-then-commit sequence as one unit. Inside the
// transaction the hoarding row is locked first, so two concurrent requests
// for the same hoarding serialize and the loser sees the winner's row in
// the overlap check. Validation failures happen before any write, so they
// need no rollback beyond the transaction's own.
func (s *service) Book(ctx context.Context, advertiserID int64, req BookReq) (*model.Placement, error) {
	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		return nil, makeErr(ErrInvalidRange)
	}
	end, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		return nil, makeErr(ErrInvalidRange)
	}
	if !start.Before(end) {
		return nil, makeErr(ErrInvalidRange)
	}

	ad, err := s.r.FindAdvertisementForAdvertiser(ctx, req.AdvertisementID, advertiserID)
	if err != nil {
		return nil, s.classify(err)
	}
	if ad == nil || !ad.Approved {
		return nil, makeErr(ErrAdNotEligible)
	}

	// Token is fixed before the insert: a random identifier, never patched
	// in after the row exists. No reader can observe a token-less placement.
	p := &model.Placement{
		HoardingID:      req.HoardingID,
		AdvertisementID: req.AdvertisementID,
		StartDate:       start,
		EndDate:         end,
		Token:           uuid.NewString(),
	}
	now := s.now()

	err = s.r.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.r.GetHoardingForUpdate(txCtx, req.HoardingID); err != nil {
			return err
		}
		conflict, err := s.r.FindOverlap(txCtx, req.HoardingID, start, end)
		if err != nil {
			return err
		}
		if conflict != nil {
			return &ConflictError{PlacementID: conflict.ID, Start: conflict.StartDate, End: conflict.EndDate}
		}
		if err := s.r.Insert(txCtx, p); err != nil {
			return err
		}
		return s.r.RecomputeAvailability(txCtx, req.HoardingID, now)
	})
	if err != nil {
		if errors.Is(err, placementrepo.ErrHoardingNotFound) {
			return nil, makeErr(ErrHoardingNotFound)
		}
		var ce *ConflictError
		if errors.As(err, &ce) {
			return nil, ce
		}
		if errors.Is(err, placementrepo.ErrOverlap) {
			// Store constraint fired before our overlap check could see the
			// other row. Re-read outside the dead transaction to fill in the
			// conflicting interval.
			if c, ferr := s.r.FindOverlap(ctx, req.HoardingID, start, end); ferr == nil && c != nil {
				return nil, &ConflictError{PlacementID: c.ID, Start: c.StartDate, End: c.EndDate}
			}
			return nil, makeErr(ErrSlotConflict)
		}
		return nil, s.classify(err)
	}

	return p, nil
}

func (s *service) MyBookings(ctx context.Context, advertiserID int64) ([]Booking, error) {
	return s.r.ListByAdvertiser(ctx, advertiserID)
}

func (s *service) ByToken(ctx context.Context, token string) (*model.Placement, error) {
	return s.r.ByToken(ctx, token)
}

// classify separates transient store trouble, which the caller may retry
// whole, from everything else. The allocator itself never retries: after an
// ambiguous commit a blind retry could double-book.
func (s *service) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || pgconn.Timeout(err) {
		return makeErr(ErrStoreUnavailable)
	}
	return err
}
