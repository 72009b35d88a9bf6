package advertisement

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	as "github.com/Swagat003/gov-billboard-portal/service/advertisement"
)

type Controller struct {
	Svc as.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/advertiser/advertisements
func (h *Controller) Create(c echo.Context) error {
	var req as.CreateReq
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
		h.Log.Error("advertisement create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "advertisement created, pending approval",
		"data":    out,
	})
}

// GET /v1/advertiser/advertisements
func (h *Controller) List(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	rows, err := h.Svc.Mine(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("advertisement list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/advertiser/advertisements/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Detail(c.Request().Context(), id, uid)
	if err != nil {
		if as.Code(err) == as.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "advertisement not found"})
		}
		h.Log.Error("advertisement detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// PUT /v1/advertiser/advertisements/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req as.CreateReq
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
		if as.Code(err) == as.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "advertisement not found"})
		}
		h.Log.Error("advertisement update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "advertisement updated, approval reset",
		"data":    out,
	})
}

// DELETE /v1/advertiser/advertisements/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.Delete(c.Request().Context(), id, uid); err != nil {
		switch as.Code(err) {
		case as.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "advertisement not found"})
		case as.ErrInUse:
			return c.JSON(http.StatusConflict, echo.Map{"message": "advertisement has active bookings"})
		default:
			h.Log.Error("advertisement delete", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "advertisement deleted"})
}
