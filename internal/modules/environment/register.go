package environment

import (
	"log/slog"
	"net/http"

	"environapi/internal/config"
	"environapi/internal/modules/environment/controller"
	"environapi/internal/modules/environment/service"
)

func RegisterFeature(mux *http.ServeMux, cfg config.Config, logger *slog.Logger) *service.Service {
	environmentService := service.NewService(logger.With("module", "environment"))
	environmentController := controller.NewEnvironmentController(environmentService, cfg)
	environmentController.RegisterRoutes(mux)
	return environmentService
}
