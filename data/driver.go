package data

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"
)

// Backends register themselves from init() the way database/sql drivers do and are
// looked up by the name in data.driver.

// DatabaseDriver opens *sql.DB handles for a relational backend.
type DatabaseDriver interface {
	// Name returns the driver identifier (e.g., "postgres", "mysql", "sqlite")
	Name() string

	// Connect opens and pings a connection described by a *config.DBNode.
	Connect(ctx context.Context, cfg any) (any, error)

	// Close terminates the connection and releases resources.
	Close(conn any) error

	// Ping verifies the connection is alive.
	Ping(ctx context.Context, conn any) error
}

// GormDriver is implemented by database drivers that hand their connection to gorm.
type GormDriver interface {
	// Dialector wraps a connection returned by Connect.
	Dialector(conn any) (gorm.Dialector, error)
}

// CacheDriver opens key-value store clients.
type CacheDriver interface {
	// Name returns the driver identifier (e.g., "redis")
	Name() string

	// Connect opens and pings a client described by a *config.Redis.
	Connect(ctx context.Context, cfg any) (any, error)

	// Close terminates the client.
	Close(conn any) error

	// Ping verifies the client is alive.
	Ping(ctx context.Context, conn any) error
}

var (
	databaseDrivers   = make(map[string]DatabaseDriver)
	databaseDriversMu sync.RWMutex

	cacheDrivers   = make(map[string]CacheDriver)
	cacheDriversMu sync.RWMutex
)

// RegisterDatabaseDriver makes a database driver available by the provided name.
// It panics if driver is nil, unnamed or registered twice.
//
//	func init() {
//	    data.RegisterDatabaseDriver(&driver{})
//	}
func RegisterDatabaseDriver(driver DatabaseDriver) {
	databaseDriversMu.Lock()
	defer databaseDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterDatabaseDriver driver is nil")
	}
	name := driver.Name()
	if name == "" {
		panic("data: RegisterDatabaseDriver driver name is empty")
	}
	if _, exists := databaseDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterDatabaseDriver called twice for driver %s", name))
	}
	databaseDrivers[name] = driver
}

// RegisterCacheDriver makes a cache driver available by the provided name.
func RegisterCacheDriver(driver CacheDriver) {
	cacheDriversMu.Lock()
	defer cacheDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterCacheDriver driver is nil")
	}
	name := driver.Name()
	if name == "" {
		panic("data: RegisterCacheDriver driver name is empty")
	}
	if _, exists := cacheDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterCacheDriver called twice for driver %s", name))
	}
	cacheDrivers[name] = driver
}

// GetDatabaseDriver retrieves a registered database driver by name.
func GetDatabaseDriver(name string) (DatabaseDriver, error) {
	databaseDriversMu.RLock()
	defer databaseDriversMu.RUnlock()

	driver, ok := databaseDrivers[name]
	if !ok {
		return nil, fmt.Errorf(
			"data: database driver %q not registered (import _ \"github.com/ncobase/tasklist/data/%s\"), available: %v",
			name, name, sortedKeys(databaseDrivers),
		)
	}
	return driver, nil
}

// GetCacheDriver retrieves a registered cache driver by name.
func GetCacheDriver(name string) (CacheDriver, error) {
	cacheDriversMu.RLock()
	defer cacheDriversMu.RUnlock()

	driver, ok := cacheDrivers[name]
	if !ok {
		return nil, fmt.Errorf(
			"data: cache driver %q not registered (import _ \"github.com/ncobase/tasklist/data/%s\"), available: %v",
			name, name, sortedKeys(cacheDrivers),
		)
	}
	return driver, nil
}

// ListRegisteredDrivers returns a snapshot of all registered drivers.
func ListRegisteredDrivers() map[string][]string {
	result := make(map[string][]string, 2)

	databaseDriversMu.RLock()
	result["database"] = sortedKeys(databaseDrivers)
	databaseDriversMu.RUnlock()

	cacheDriversMu.RLock()
	result["cache"] = sortedKeys(cacheDrivers)
	cacheDriversMu.RUnlock()

	return result
}

func sortedKeys[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
