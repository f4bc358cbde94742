package repository

import (
	"database/sql"
	"fmt"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Open connects with the given driver and wraps the connection in a bun client.
func Open(driver, url string) (*bun.DB, error) {
	switch driver {
	case DriverPostgres:
		conn, err := sql.Open("pgx", url)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(conn, pgdialect.New()), nil
	case DriverSQLite:
		conn, err := sql.Open(sqliteshim.ShimName, url)
		if err != nil {
			return nil, err
		}
		// an in-memory database only lives as long as its connection
		conn.SetMaxOpenConns(1)
		return bun.NewDB(conn, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
