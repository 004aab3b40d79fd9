package commands

import (
	"github.com/ncobase/tasklist/config"
	"github.com/ncobase/tasklist/data"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/server"
)

// App is the assembled persistence endpoint.
type App struct {
	Config *config.Config
	Logger *logger.Logger
	Data   *data.Data
	Server *server.Server
}

func NewApp(cfg *config.Config, l *logger.Logger, d *data.Data, s *server.Server) *App {
	return &App{
		Config: cfg,
		Logger: l,
		Data:   d,
		Server: s,
	}
}
