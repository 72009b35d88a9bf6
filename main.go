// Package main billboard portal API.
//
// @title           Government Billboard Portal API
// @version         1.0
// @description     Hoarding inventory, advertisement booking and citizen report triage.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Swagat003/gov-billboard-portal/app/echoServer"
	adminctrl "github.com/Swagat003/gov-billboard-portal/app/echoServer/controller/admin"
	adctrl "github.com/Swagat003/gov-billboard-portal/app/echoServer/controller/advertisement"
	authctrl "github.com/Swagat003/gov-billboard-portal/app/echoServer/controller/auth"
	bookingctrl "github.com/Swagat003/gov-billboard-portal/app/echoServer/controller/booking"
	hoardingctrl "github.com/Swagat003/gov-billboard-portal/app/echoServer/controller/hoarding"
	reportctrl "github.com/Swagat003/gov-billboard-portal/app/echoServer/controller/report"
	"github.com/Swagat003/gov-billboard-portal/app/echoServer/validation"
	"github.com/Swagat003/gov-billboard-portal/config"
	"github.com/Swagat003/gov-billboard-portal/migrations"
	adrepo "github.com/Swagat003/gov-billboard-portal/repository/advertisement"
	authrepo "github.com/Swagat003/gov-billboard-portal/repository/auth"
	hoardingrepo "github.com/Swagat003/gov-billboard-portal/repository/hoarding"
	placementrepo "github.com/Swagat003/gov-billboard-portal/repository/placement"
	reportrepo "github.com/Swagat003/gov-billboard-portal/repository/report"
	webhookrepo "github.com/Swagat003/gov-billboard-portal/repository/webhook"
	advertisementsvc "github.com/Swagat003/gov-billboard-portal/service/advertisement"
	authsvc "github.com/Swagat003/gov-billboard-portal/service/auth"
	hoardingsvc "github.com/Swagat003/gov-billboard-portal/service/hoarding"
	placementsvc "github.com/Swagat003/gov-billboard-portal/service/placement"
	reportsvc "github.com/Swagat003/gov-billboard-portal/service/report"
	"github.com/Swagat003/gov-billboard-portal/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := migrations.Apply(ctx, db.Pool); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	// repos
	ar := authrepo.New(db.Pool)
	hr := hoardingrepo.New(db.Pool)
	adr := adrepo.New(db.Pool)
	pr := placementrepo.New(db.Pool)
	rr := reportrepo.New(db.Pool)
	wh := webhookrepo.NewHTTP(cfg.ReportWebhookURL)

	// services
	as := authsvc.New(ar, cfg.JWTSecret)
	hs := hoardingsvc.New(hr)
	ads := advertisementsvc.New(adr)
	ps := placementsvc.New(pr)
	rs := reportsvc.New(rr, ps, wh, log)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	hoardingC := &hoardingctrl.Controller{Svc: hs, V: v, Log: log}
	adC := &adctrl.Controller{Svc: ads, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: ps, V: v, Log: log}
	reportC := &reportctrl.Controller{Svc: rs, V: v, Log: log}
	adminC := &adminctrl.Controller{Reports: rs, Ads: ads, Log: log}

	// availability refresher: re-derives is_available as placements expire
	refresher := placementsvc.NewRefresher(pr)
	go func() {
		t := time.NewTicker(time.Hour)
		defer t.Stop()
		for range t.C {
			n, err := refresher.ReleaseExpired(ctx)
			if err != nil {
				log.Error("availability refresh failed", "err", err)
				continue
			}
			if n > 0 {
				log.Info("hoardings released", "count", n)
			}
		}
	}()

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:          authC,
		Hoarding:      hoardingC,
		Advertisement: adC,
		Booking:       bookingC,
		Report:        reportC,
		Admin:         adminC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "chosen_port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
