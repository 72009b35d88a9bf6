package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Swagat003/gov-billboard-portal/app/echoServer/controller/admin"
	"github.com/Swagat003/gov-billboard-portal/app/echoServer/controller/advertisement"
	"github.com/Swagat003/gov-billboard-portal/app/echoServer/controller/auth"
	"github.com/Swagat003/gov-billboard-portal/app/echoServer/controller/booking"
	"github.com/Swagat003/gov-billboard-portal/app/echoServer/controller/hoarding"
	"github.com/Swagat003/gov-billboard-portal/app/echoServer/controller/report"
	"github.com/Swagat003/gov-billboard-portal/model"
)

type C struct {
	Auth          *auth.Controller
	Hoarding      *hoarding.Controller
	Advertisement *advertisement.Controller
	Booking       *booking.Controller
	Report        *report.Controller
	Admin         *admin.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)

	// Citizen report intake needs no account.
	pub.POST("/reports", c.Report.Submit)

	// Auth
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// user_id + role extraction from verified claims
	authed.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tokenObj := ctx.Get("user")
			if tokenObj == nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}

			tok, ok := tokenObj.(*jwt.Token)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}

			sub, ok := claims["sub"].(float64)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			role, _ := claims["role"].(string)

			ctx.Set("user_id", int64(sub))
			ctx.Set("role", role)
			return next(ctx)
		}
	})

	authed.GET("/auth/verify", c.Auth.Verify)

	// Owner
	owner := authed.Group("/owner", RequireRole(string(model.RoleOwner)))
	owner.GET("/hoardings", c.Hoarding.List)
	owner.POST("/hoardings", c.Hoarding.Create)
	owner.GET("/hoardings/:id", c.Hoarding.Detail)
	owner.PUT("/hoardings/:id", c.Hoarding.Update)
	owner.DELETE("/hoardings/:id", c.Hoarding.Delete)

	// Advertiser
	adv := authed.Group("/advertiser", RequireRole(string(model.RoleAdvertiser)))
	adv.GET("/advertisements", c.Advertisement.List)
	adv.POST("/advertisements", c.Advertisement.Create)
	adv.GET("/advertisements/:id", c.Advertisement.Detail)
	adv.PUT("/advertisements/:id", c.Advertisement.Update)
	adv.DELETE("/advertisements/:id", c.Advertisement.Delete)

	adv.GET("/hoardings", c.Hoarding.Available)
	adv.POST("/bookings", c.Booking.Create)
	adv.GET("/bookings", c.Booking.List)

	// Admin
	adm := authed.Group("/admin", RequireRole(string(model.RoleAdmin)))
	adm.GET("/reports", c.Admin.ListReports)
	adm.GET("/reports/:id", c.Admin.ReportDetail)
	adm.PUT("/reports/:id", c.Admin.UpdateReportStatus)
	adm.DELETE("/reports/:id", c.Admin.DeleteReport)
	adm.GET("/stats", c.Admin.Stats)
	adm.GET("/advertisements", c.Admin.PendingAdvertisements)
	adm.PUT("/advertisements/:id/approval", c.Admin.SetAdvertisementApproval)
}
