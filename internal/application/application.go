package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/maintdesk/workorder-service/internal/config"
	"github.com/maintdesk/workorder-service/internal/database"
	"github.com/maintdesk/workorder-service/internal/handler"
	"github.com/maintdesk/workorder-service/internal/kv"
	"github.com/maintdesk/workorder-service/internal/logging"
	"github.com/maintdesk/workorder-service/internal/router"
	"github.com/maintdesk/workorder-service/internal/service"
	"github.com/sirupsen/logrus"
)

// API приложение: HTTP-сервер поверх локального хранилища (режим api).
type API struct {
	cfg     *config.Config
	log     *logrus.Logger
	httpSrv *http.Server
}

// NewAPI открывает базу, применяет миграции и собирает сервисы с роутером.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log := logging.New(cfg.LogLevel)

	db, err := database.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := database.MigrateUp(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	store := kv.NewGormStore(db)
	workOrderSvc := service.NewWorkOrderService(store, log)
	vendorSvc := service.NewVendorService(store, log, cfg.PhoneRegion)
	importSvc := service.NewImportService(workOrderSvc, log)

	h := router.New(cfg,
		handler.NewWorkOrderHandler(workOrderSvc),
		handler.NewVendorHandler(vendorSvc),
		handler.NewImportHandler(importSvc),
	)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, log: log, httpSrv: httpSrv}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены ctx.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	a.log.WithField("addr", a.httpSrv.Addr).Info("HTTP server listening")
	a.log.Infof("  Swagger UI:  %s/swagger", base)
	a.log.Infof("  Health:      %s/health", base)
	a.log.Infof("  API v1:      %s/api/v1/", base)
	a.log.Infof("  Data file:   %s", a.cfg.DBPath())

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.WithError(err).Error("http server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
