package booking

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	ps "github.com/Swagat003/gov-billboard-portal/service/placement"
)

type Controller struct {
	Svc ps.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/advertiser/bookings
func (h *Controller) Create(c echo.Context) error {
	var req ps.BookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Book(c.Request().Context(), uid, req)
	if err != nil {
		switch ps.Code(err) {
		case ps.ErrInvalidRange:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid date range"})
		case ps.ErrAdNotEligible:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "advertisement not found or not approved"})
		case ps.ErrHoardingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hoarding not found"})
		case ps.ErrSlotConflict:
			body := echo.Map{"message": "hoarding is already booked for the selected dates"}
			var ce *ps.ConflictError
			if errors.As(err, &ce) {
				body["conflict"] = echo.Map{
					"placement_id": ce.PlacementID,
					"start_date":   ce.Start.Format(time.DateOnly),
					"end_date":     ce.End.Format(time.DateOnly),
				}
			}
			return c.JSON(http.StatusConflict, body)
		case ps.ErrStoreUnavailable:
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "temporary failure, retry the booking"})
		default:
			h.Log.Error("booking create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "advertisement booked on hoarding",
		"data": echo.Map{
			"placement_id": out.ID,
			"token":        out.Token,
			"start_date":   out.StartDate.Format(time.DateOnly),
			"end_date":     out.EndDate.Format(time.DateOnly),
		},
	})
}

// GET /v1/advertiser/bookings
func (h *Controller) List(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	rows, err := h.Svc.MyBookings(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("booking list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
