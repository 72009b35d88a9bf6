package hoarding

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	hs "github.com/Swagat003/gov-billboard-portal/service/hoarding"
)

type Controller struct {
	Svc hs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/owner/hoardings
func (h *Controller) Create(c echo.Context) error {
	var req hs.CreateReq
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

	out, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		if hs.Code(err) == hs.ErrBadInput {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid installation date"})
		}
		h.Log.Error("hoarding create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "hoarding created",
		"data":    out,
	})
}

// GET /v1/owner/hoardings
func (h *Controller) List(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	rows, stats, err := h.Svc.MyHoardings(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("hoarding list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":  rows,
		"stats": stats,
	})
}

// GET /v1/owner/hoardings/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Detail(c.Request().Context(), id, uid)
	if err != nil {
		if hs.Code(err) == hs.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hoarding not found"})
		}
		h.Log.Error("hoarding detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// PUT /v1/owner/hoardings/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req hs.CreateReq
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

	out, err := h.Svc.Update(c.Request().Context(), id, uid, req)
	if err != nil {
		switch hs.Code(err) {
		case hs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hoarding not found"})
		case hs.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid installation date"})
		default:
			h.Log.Error("hoarding update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "hoarding updated",
		"data":    out,
	})
}

// DELETE /v1/owner/hoardings/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.Delete(c.Request().Context(), id, uid); err != nil {
		switch hs.Code(err) {
		case hs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hoarding not found"})
		case hs.ErrOccupied:
			return c.JSON(http.StatusConflict, echo.Map{"message": "hoarding has an active booking"})
		default:
			h.Log.Error("hoarding delete", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "hoarding deleted"})
}

// GET /v1/advertiser/hoardings
func (h *Controller) Available(c echo.Context) error {
	rows, err := h.Svc.Available(c.Request().Context())
	if err != nil {
		h.Log.Error("available hoardings", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
