//go:build wireinject
// +build wireinject

package commands

import (
	"github.com/google/wire"
	"github.com/ncobase/tasklist/client"
	"github.com/ncobase/tasklist/config"
	"github.com/ncobase/tasklist/data"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/server"
	"github.com/ncobase/tasklist/store"
)

// initServer wires the persistence endpoint.
func initServer(p config.Path) (*App, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		data.ProviderSet,
		server.ProviderSet,
		NewApp,
	))
}

// initStore wires a task store talking to the configured endpoint.
func initStore(p config.Path) (*store.Store, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		client.ProviderSet,
		wire.Bind(new(store.TaskService), new(*client.Client)),
		store.ProviderSet,
	))
}
