// Package mysql registers the "mysql" task backend, built on go-sql-driver/mysql.
//
//	import _ "github.com/ncobase/tasklist/data/mysql"
//
// Sources use the driver's DSN format:
//
//	"user:pass@tcp(localhost:3306)/tasks"
package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/ncobase/tasklist/data"
	"github.com/ncobase/tasklist/data/config"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Name is the value of data.driver selecting this backend.
const Name = "mysql"

type driver struct{}

func (d *driver) Name() string {
	return Name
}

// Connect normalizes the DSN to UTC with a bounded dial timeout, then opens the pool.
func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	if node, ok := cfg.(*config.DBNode); ok && node.Source != "" {
		dsn, err := normalizeDSN(node.Source)
		if err != nil {
			return nil, err
		}
		cp := *node
		cp.Source = dsn
		cfg = &cp
	}
	return data.OpenDB(ctx, Name, "mysql", cfg, data.PoolDefaults{MaxIdleConn: 5, MaxOpenConn: 20})
}

func normalizeDSN(source string) (string, error) {
	mc, err := mysql.ParseDSN(source)
	if err != nil {
		return "", fmt.Errorf("%s: invalid connection source: %w", Name, err)
	}
	mc.Loc = time.UTC
	if mc.Timeout == 0 {
		mc.Timeout = 10 * time.Second
	}
	return mc.FormatDSN(), nil
}

func (d *driver) Close(conn any) error {
	return data.CloseDB(Name, conn)
}

func (d *driver) Ping(ctx context.Context, conn any) error {
	return data.PingDB(ctx, Name, conn)
}

// Dialector hands the *sql.DB to gorm's mysql dialect.
func (d *driver) Dialector(conn any) (gorm.Dialector, error) {
	db, err := data.SQLDB(Name, conn)
	if err != nil {
		return nil, err
	}
	return gormmysql.New(gormmysql.Config{Conn: db}), nil
}

func init() {
	data.RegisterDatabaseDriver(&driver{})
}
