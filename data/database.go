package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ncobase/tasklist/data/config"
)

// PoolDefaults are applied when the node leaves a pool setting at zero.
type PoolDefaults struct {
	MaxIdleConn int
	MaxOpenConn int
}

// OpenDB opens a database/sql handle for sqlDriver, applies the node's pool settings and pings it.
// name prefixes error messages.
func OpenDB(ctx context.Context, name, sqlDriver string, cfg any, defaults PoolDefaults) (*sql.DB, error) {
	node, ok := cfg.(*config.DBNode)
	if !ok {
		return nil, fmt.Errorf("%s: invalid configuration type, expected *config.DBNode", name)
	}
	if node.Source == "" {
		return nil, fmt.Errorf("%s: connection source is empty", name)
	}

	db, err := sql.Open(sqlDriver, node.Source)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open connection: %w", name, err)
	}

	maxIdle, maxOpen := node.MaxIdleConn, node.MaxOpenConn
	if maxIdle <= 0 {
		maxIdle = defaults.MaxIdleConn
	}
	if maxOpen <= 0 {
		maxOpen = defaults.MaxOpenConn
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if node.ConnMaxLifeTime > 0 {
		db.SetConnMaxLifetime(node.ConnMaxLifeTime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", name, err)
	}
	return db, nil
}

// SQLDB asserts that conn is a handle returned by OpenDB.
func SQLDB(name string, conn any) (*sql.DB, error) {
	db, ok := conn.(*sql.DB)
	if !ok {
		return nil, fmt.Errorf("%s: invalid connection type, expected *sql.DB", name)
	}
	return db, nil
}

// CloseDB closes a handle returned by OpenDB.
func CloseDB(name string, conn any) error {
	db, err := SQLDB(name, conn)
	if err != nil {
		return err
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("%s: failed to close connection: %w", name, err)
	}
	return nil
}

// PingDB pings a handle returned by OpenDB.
func PingDB(ctx context.Context, name string, conn any) error {
	db, err := SQLDB(name, conn)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: ping failed: %w", name, err)
	}
	return nil
}
