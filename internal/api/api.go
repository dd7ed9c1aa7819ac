package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/videra/data-server/internal/api/dashboard"
	"github.com/videra/data-server/internal/config"
	"github.com/videra/data-server/internal/storage"
)

// Service represents the dashboard API service
type Service struct {
	Config    *config.Config
	Storage   storage.Driver
	dashboard *dashboard.Service
}

// Startup starts up the dashboard API; errors raised while serving are sent to errs
func (service *Service) Startup(errs chan<- error) {
	dashboardService := &dashboard.Service{
		Config:  service.Config,
		Storage: service.Storage,
	}
	service.dashboard = dashboardService
	go func() {
		if err := dashboardService.Startup(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// Shutdown gracefully shuts down the dashboard API
func (service *Service) Shutdown(ctx context.Context) error {
	if service.dashboard == nil {
		return nil
	}
	err := service.dashboard.Shutdown(ctx)
	service.dashboard = nil
	return err
}
