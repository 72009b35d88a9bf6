package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	as "github.com/Swagat003/gov-billboard-portal/service/advertisement"
	rs "github.com/Swagat003/gov-billboard-portal/service/report"
)

type Controller struct {
	Reports rs.Service
	Ads     as.Service
	Log     *slog.Logger
}

// GET /v1/admin/reports?status=&search=&page=&limit=
func (h *Controller) ListReports(c echo.Context) error {
	f := rs.ListFilter{
		Search: c.QueryParam("search"),
	}
	if s := c.QueryParam("status"); s != "" && s != "all" {
		f.Status = s
	}
	f.Page, _ = strconv.Atoi(c.QueryParam("page"))
	f.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	rows, total, err := h.Reports.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("report list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	pages := (total + int64(f.Limit) - 1) / int64(f.Limit)

	return c.JSON(http.StatusOK, echo.Map{
		"data": rows,
		"pagination": echo.Map{
			"page":        f.Page,
			"limit":       f.Limit,
			"total":       total,
			"total_pages": pages,
		},
	})
}

// GET /v1/admin/reports/:id
func (h *Controller) ReportDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	out, err := h.Reports.Detail(c.Request().Context(), id)
	if err != nil {
		if rs.Code(err) == rs.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "report not found"})
		}
		h.Log.Error("report detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// PUT /v1/admin/reports/:id
func (h *Controller) UpdateReportStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	if err := h.Reports.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		switch rs.Code(err) {
		case rs.ErrBadStatus:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid status, use PENDING, REVIEWED or ACTION_TAKEN"})
		case rs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "report not found"})
		default:
			h.Log.Error("report status update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "report status updated to " + req.Status})
}

// DELETE /v1/admin/reports/:id
func (h *Controller) DeleteReport(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Reports.Delete(c.Request().Context(), id); err != nil {
		if rs.Code(err) == rs.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "report not found"})
		}
		h.Log.Error("report delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "report deleted"})
}

// GET /v1/admin/stats
func (h *Controller) Stats(c echo.Context) error {
	stats, err := h.Reports.Stats(c.Request().Context())
	if err != nil {
		h.Log.Error("admin stats", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": stats})
}

// GET /v1/admin/advertisements
func (h *Controller) PendingAdvertisements(c echo.Context) error {
	rows, err := h.Ads.PendingApproval(c.Request().Context())
	if err != nil {
		h.Log.Error("pending advertisements", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

type approvalReq struct {
	Approved bool `json:"approved"`
}

// PUT /v1/admin/advertisements/:id/approval
func (h *Controller) SetAdvertisementApproval(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req approvalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	if err := h.Ads.SetApproval(c.Request().Context(), id, req.Approved); err != nil {
		if as.Code(err) == as.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "advertisement not found"})
		}
		h.Log.Error("advertisement approval", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "advertisement approval updated"})
}
