package server

import (
	"github.com/google/wire"
	"github.com/ncobase/tasklist/config"
	"github.com/ncobase/tasklist/data"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/server/handler"
	"github.com/ncobase/tasklist/server/service"
)

// ProviderSet wires the service, handler and server layers.
var ProviderSet = wire.NewSet(
	service.NewTaskService,
	ProvideHealthChecker,
	handler.NewHandler,
	ProvideServer,
)

// ProvideHealthChecker exposes the data layer as the health checker.
func ProvideHealthChecker(d *data.Data) handler.HealthChecker {
	return d
}

// ProvideServer builds the server from the loaded configuration.
func ProvideServer(cfg *config.Config, l *logger.Logger, h *handler.Handler) *Server {
	return New(cfg.Server, cfg.RunMode, l, h)
}
