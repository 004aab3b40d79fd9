package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/tasklist/data/config"
	"github.com/ncobase/tasklist/data/repository"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Data represents the data layer implementation
type Data struct {
	Driver   string
	DB       *sql.DB
	Gorm     *gorm.DB
	RC       *redis.Client
	TaskRepo repository.TaskRepository

	closer func() error
	pinger func(context.Context) error
}

// New opens the backend selected by cfg.Driver and builds the task repository.
// Drivers other than memory must have been registered by importing their package.
func New(ctx context.Context, cfg *config.Config, l *logger.Logger, opts ...repository.Option) (*Data, func(), error) {
	if cfg == nil {
		return nil, nil, errors.New("data: config is nil")
	}
	if l == nil {
		l = logger.StdLogger()
	}
	opts = append([]repository.Option{repository.WithLogger(l)}, opts...)

	d := &Data{Driver: cfg.Driver}
	switch cfg.Driver {
	case "", config.DriverMemory:
		d.Driver = config.DriverMemory
		d.TaskRepo = repository.NewMemory(opts...)

	case config.DriverRedis:
		if cfg.Redis == nil {
			return nil, nil, errors.New("data: redis config is missing")
		}
		drv, err := GetCacheDriver(cfg.Driver)
		if err != nil {
			return nil, nil, err
		}
		conn, err := drv.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		d.RC = conn.(*redis.Client)
		d.TaskRepo = repository.NewRedis(d.RC, cfg.Redis.KeyPrefix, opts...)
		d.closer = func() error { return drv.Close(conn) }
		d.pinger = func(ctx context.Context) error { return drv.Ping(ctx, conn) }

	default:
		if cfg.Database == nil || cfg.Database.Master == nil {
			return nil, nil, fmt.Errorf("data: database config is missing for driver %q", cfg.Driver)
		}
		drv, err := GetDatabaseDriver(cfg.Driver)
		if err != nil {
			return nil, nil, err
		}
		conn, err := drv.Connect(ctx, cfg.Database.Master)
		if err != nil {
			return nil, nil, err
		}
		d.DB = conn.(*sql.DB)
		d.closer = func() error { return drv.Close(conn) }
		d.pinger = func(ctx context.Context) error { return drv.Ping(ctx, conn) }

		if d.Gorm, err = openGorm(drv, conn); err != nil {
			_ = d.Close()
			return nil, nil, err
		}
		if cfg.Database.Migrate {
			if err := repository.Migrate(ctx, d.Gorm); err != nil {
				_ = d.Close()
				return nil, nil, err
			}
		}
		d.TaskRepo = repository.NewGorm(d.Gorm, opts...)
	}

	l.Info(ctx, "data layer ready", "driver", d.Driver)

	cleanup := func() {
		if err := d.Close(); err != nil {
			l.Error(context.Background(), "failed to close data layer", "driver", d.Driver, "error", err)
		}
	}
	return d, cleanup, nil
}

// openGorm wraps an open connection in gorm. Query errors are logged by the repository,
// so gorm's own logger stays silent.
func openGorm(drv DatabaseDriver, conn any) (*gorm.DB, error) {
	gd, ok := drv.(GormDriver)
	if !ok {
		return nil, fmt.Errorf("data: driver %q has no gorm dialect", drv.Name())
	}
	dialector, err := gd.Dialector(conn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("data: failed to initialize gorm for %q: %w", drv.Name(), err)
	}
	return db, nil
}

// Ping checks the backend connection. The memory backend is always reachable.
func (d *Data) Ping(ctx context.Context) error {
	if d.pinger == nil {
		return nil
	}
	return d.pinger(ctx)
}

// Health reports the backend status for the health endpoint.
func (d *Data) Health(ctx context.Context) map[string]any {
	start := time.Now()
	health := map[string]any{
		"driver": d.Driver,
		"status": "healthy",
	}
	if err := d.Ping(ctx); err != nil {
		health["status"] = "unhealthy"
		health["error"] = err.Error()
	}
	health["latency"] = time.Since(start).String()
	return health
}

// Close releases the backend connection.
func (d *Data) Close() error {
	if d.closer == nil {
		return nil
	}
	closer := d.closer
	d.closer = nil
	return closer()
}
