package main

import (
	"context"
	"fmt"

	"github.com/aliskhannn/lingua/internal/config"
	"github.com/aliskhannn/lingua/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/lingua/internal/infra/postgres/repository"
	"github.com/aliskhannn/lingua/internal/infra/sqlite"
	sqliterepo "github.com/aliskhannn/lingua/internal/infra/sqlite/repository"
	"github.com/aliskhannn/lingua/internal/service"
)

// openStore connects to the configured driver. The returned func releases
// the connection.
func openStore(ctx context.Context, db config.DB, migrate bool) (service.Store, func(), error) {
	dsn, err := db.DSN()
	if err != nil {
		return service.Store{}, nil, err
	}

	switch db.Driver {
	case config.DriverSQLite:
		conn, err := sqlite.Open(ctx, dsn)
		if err != nil {
			return service.Store{}, nil, err
		}
		if migrate {
			if err := sqlite.Migrate(ctx, conn); err != nil {
				_ = conn.Close()
				return service.Store{}, nil, err
			}
		}
		return sqliterepo.NewStore(conn), func() { _ = conn.Close() }, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(db.MaxConnections),
			MaxConnLifetime: db.MaxConnLifetime,
		})
		if err != nil {
			return service.Store{}, nil, err
		}
		if migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return service.Store{}, nil, err
			}
		}
		return pgrepo.NewStore(pool), pool.Close, nil

	default:
		return service.Store{}, nil, fmt.Errorf("unsupported database driver %q", db.Driver)
	}
}
