package advertisementsvc

import (
	"context"
	"errors"
	"time"

	"github.com/Swagat003/gov-billboard-portal/model"
	adrepo "github.com/Swagat003/gov-billboard-portal/repository/advertisement"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrInUse    ErrCode = "IN_USE"
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
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	ContentURL  *string `json:"content_url,omitempty" validate:"omitempty,url"`
}

type Service interface {
	Create(ctx context.Context, advertiserID int64, req CreateReq) (*model.Advertisement, error)
	Mine(ctx context.Context, advertiserID int64) ([]model.Advertisement, error)
	Detail(ctx context.Context, id, advertiserID int64) (*model.Advertisement, error)
	// Update rewrites the creative and resets approval for re-review.
	Update(ctx context.Context, id, advertiserID int64, req CreateReq) (*model.Advertisement, error)
	Delete(ctx context.Context, id, advertiserID int64) error

	// Admin review surface.
	PendingApproval(ctx context.Context) ([]model.Advertisement, error)
	SetApproval(ctx context.Context, id int64, approved bool) error
}

type service struct{ r adrepo.Repo }

func New(r adrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, advertiserID int64, req CreateReq) (*model.Advertisement, error) {
	a := &model.Advertisement{
		AdvertiserID: advertiserID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		ContentURL:   req.ContentURL,
	}
	if err := s.r.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Mine(ctx context.Context, advertiserID int64) ([]model.Advertisement, error) {
	return s.r.ListByAdvertiser(ctx, advertiserID)
}

func (s *service) Detail(ctx context.Context, id, advertiserID int64) (*model.Advertisement, error) {
	a, err := s.r.ByIDForAdvertiser(ctx, id, advertiserID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, makeErr(ErrNotFound)
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, id, advertiserID int64, req CreateReq) (*model.Advertisement, error) {
	a, err := s.Detail(ctx, id, advertiserID)
	if err != nil {
		return nil, err
	}

	a.Title = req.Title
	a.Description = req.Description
	a.Category = req.Category
	a.ContentURL = req.ContentURL

	if err := s.r.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id, advertiserID int64) error {
	a, err := s.r.ByIDForAdvertiser(ctx, id, advertiserID)
	if err != nil {
		return err
	}
	if a == nil {
		return makeErr(ErrNotFound)
	}

	active, err := s.r.HasActivePlacement(ctx, id, time.Now().UTC())
	if err != nil {
		return err
	}
	if active {
		return makeErr(ErrInUse)
	}
	return s.r.Delete(ctx, id)
}

func (s *service) PendingApproval(ctx context.Context) ([]model.Advertisement, error) {
	return s.r.ListPendingApproval(ctx)
}

func (s *service) SetApproval(ctx context.Context, id int64, approved bool) error {
	found, err := s.r.SetApproval(ctx, id, approved)
	if err != nil {
		return err
	}
	if !found {
		return makeErr(ErrNotFound)
	}
	return nil
}
