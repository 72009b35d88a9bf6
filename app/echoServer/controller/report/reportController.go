package report

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	rs "github.com/Swagat003/gov-billboard-portal/service/report"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/reports: public citizen intake, no account needed.
func (h *Controller) Submit(c echo.Context) error {
	var req rs.SubmitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Svc.Submit(c.Request().Context(), req)
	if err != nil {
		if rs.Code(err) == rs.ErrUnknownToken {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "unknown QR token"})
		}
		h.Log.Error("report submit", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "report submitted",
		"data":    out,
	})
}
