package database

import (
	"context"
	_ "embed"
)

//go:embed schema.sql
var schema string

// Migrate applies schema.sql. Every statement is idempotent.
func Migrate(ctx context.Context, db DBTX) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
