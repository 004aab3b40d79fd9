package data

import (
	"context"

	"github.com/google/wire"
	"github.com/ncobase/tasklist/data/config"
	"github.com/ncobase/tasklist/data/repository"
	"github.com/ncobase/tasklist/logging/logger"
)

// ProviderSet is the wire provider set for the data package.
// It provides *Data with a cleanup function that closes the backend connection,
// and the task repository built on it.
var ProviderSet = wire.NewSet(ProvideData, ProvideTaskRepository)

// ProvideData initializes and returns the data layer with cleanup function.
func ProvideData(cfg *config.Config, l *logger.Logger) (*Data, func(), error) {
	return New(context.Background(), cfg, l)
}

// ProvideTaskRepository extracts the task repository.
func ProvideTaskRepository(d *Data) repository.TaskRepository {
	return d.TaskRepo
}
