package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

func Connect(ctx context.Context, driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s database", driverName)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "could not reach %s database", driverName)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return db, nil
}
