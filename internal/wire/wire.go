package wire

import (
	"restaurant-booking/internal/adaptor"
	"restaurant-booking/internal/data/repository"
	"restaurant-booking/internal/usecase"
	"restaurant-booking/pkg/middleware"
	"restaurant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes on top of the given repositories
// and outside integrations.
func Wiring(
	repo *repository.Repository,
	ext usecase.Integrations,
	checks map[string]adaptor.HealthCheck,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, ext, config, logger)
	handler := adaptor.NewHandler(service, checks, logger)

	return &App{
		Router: setupRouter(handler, config, logger),
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.NewRateLimiter(config.App.RateLimit, logger).Middleware)

	wireWebhook(r, handler.Webhook, config, logger)
	wireAdmin(r, handler.Booking, handler.Restaurant, config, logger)

	r.Get("/health", handler.Health.Health)

	return r
}
