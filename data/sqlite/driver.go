// Package sqlite registers the "sqlite" task backend, built on mattn/go-sqlite3 (CGO).
//
//	import _ "github.com/ncobase/tasklist/data/sqlite"
//
// Example sources:
//
//	"tasks.db"
//	"file:tasks.db?_journal_mode=WAL&_busy_timeout=5000"
//	"file::memory:?cache=shared"
package sqlite

import (
	"context"

	"github.com/ncobase/tasklist/data"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "github.com/mattn/go-sqlite3"
)

// Name is the value of data.driver selecting this backend.
const Name = "sqlite"

type driver struct{}

func (d *driver) Name() string {
	return Name
}

// Connect opens a *sql.DB. Writers serialize on one connection unless max_open_conn says otherwise.
func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	return data.OpenDB(ctx, Name, "sqlite3", cfg, data.PoolDefaults{MaxIdleConn: 2, MaxOpenConn: 1})
}

func (d *driver) Close(conn any) error {
	return data.CloseDB(Name, conn)
}

func (d *driver) Ping(ctx context.Context, conn any) error {
	return data.PingDB(ctx, Name, conn)
}

// Dialector hands the *sql.DB to gorm's sqlite dialect.
func (d *driver) Dialector(conn any) (gorm.Dialector, error) {
	db, err := data.SQLDB(Name, conn)
	if err != nil {
		return nil, err
	}
	return &sqlite.Dialector{DriverName: "sqlite3", Conn: db}, nil
}

func init() {
	data.RegisterDatabaseDriver(&driver{})
}
