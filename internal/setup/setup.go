package setup

import (
	"github.com/kalendo/kalendo/internal/config"
	"github.com/kalendo/kalendo/internal/handler"
	"github.com/kalendo/kalendo/internal/middleware"
	"github.com/kalendo/kalendo/internal/service"
	"github.com/kalendo/kalendo/internal/storage/pg"
)

// Dependencies holds all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
}

// SetupDependencies initializes the full dependency graph.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	auth := service.NewAuth(storage, cfg)
	calendar := service.NewCalendar(storage, cfg)
	event := service.NewEvent(storage)

	h := handler.New(auth, calendar, event, storage)
	authMw := middleware.NewAuth(storage)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: authMw,
	}, nil
}
