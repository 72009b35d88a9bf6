package hoardingsvc

import (
	"context"
	"errors"
	"time"

	"github.com/Swagat003/gov-billboard-portal/model"
	hoardingrepo "github.com/Swagat003/gov-billboard-portal/repository/hoarding"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrOccupied ErrCode = "OCCUPIED"
	ErrBadInput ErrCode = "BAD_INPUT"
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

type CreateReq struct {
	Height           float64  `json:"height" validate:"required,gt=0"`
	Width            float64  `json:"width" validate:"required,gt=0"`
	Address          string   `json:"address" validate:"required"`
	Latitude         *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude        *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	InstallationDate string   `json:"installation_date" validate:"required"`
}

type ListStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

// OwnedHoarding = repository shape
type OwnedHoarding = hoardingrepo.OwnedHoarding

type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateReq) (*model.Hoarding, error)
	MyHoardings(ctx context.Context, ownerID int64) ([]OwnedHoarding, ListStats, error)
	Detail(ctx context.Context, id, ownerID int64) (*model.Hoarding, error)
	Update(ctx context.Context, id, ownerID int64, req CreateReq) (*model.Hoarding, error)
	Delete(ctx context.Context, id, ownerID int64) error
	Available(ctx context.Context) ([]model.AvailableHoarding, error)
}

type service struct{ r hoardingrepo.Repo }

func New(r hoardingrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, ownerID int64, req CreateReq) (*model.Hoarding, error) {
	installed, err := time.Parse(time.DateOnly, req.InstallationDate)
	if err != nil {
		return nil, makeErr(ErrBadInput)
	}

	h := &model.Hoarding{
		OwnerID:          ownerID,
		Height:           req.Height,
		Width:            req.Width,
		Address:          req.Address,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		InstallationDate: installed,
	}
	if err := s.r.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) MyHoardings(ctx context.Context, ownerID int64) ([]OwnedHoarding, ListStats, error) {
	rows, err := s.r.ListByOwner(ctx, ownerID, time.Now().UTC())
	if err != nil {
		return nil, ListStats{}, err
	}

	stats := ListStats{Total: len(rows)}
	for _, h := range rows {
		if h.CurrentPlacement == nil {
			stats.Available++
		}
	}
	stats.Occupied = stats.Total - stats.Available
	return rows, stats, nil
}

func (s *service) Detail(ctx context.Context, id, ownerID int64) (*model.Hoarding, error) {
	h, err := s.r.ByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, makeErr(ErrNotFound)
	}
	return h, nil
}

func (s *service) Update(ctx context.Context, id, ownerID int64, req CreateReq) (*model.Hoarding, error) {
	h, err := s.Detail(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	installed, err := time.Parse(time.DateOnly, req.InstallationDate)
	if err != nil {
		return nil, makeErr(ErrBadInput)
	}

	h.Height = req.Height
	h.Width = req.Width
	h.Address = req.Address
	h.Latitude = req.Latitude
	h.Longitude = req.Longitude
	h.InstallationDate = installed

	if err := s.r.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Delete refuses while a current or future placement exists; advertisers
// hold contracts against the slot.
func (s *service) Delete(ctx context.Context, id, ownerID int64) error {
	h, err := s.r.ByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if h == nil {
		return makeErr(ErrNotFound)
	}

	active, err := s.r.HasActivePlacement(ctx, id, time.Now().UTC())
	if err != nil {
		return err
	}
	if active {
		return makeErr(ErrOccupied)
	}
	return s.r.Delete(ctx, id)
}

func (s *service) Available(ctx context.Context) ([]model.AvailableHoarding, error) {
	return s.r.ListAvailable(ctx, time.Now().UTC())
}
