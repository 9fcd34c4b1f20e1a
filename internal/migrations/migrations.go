// Package migrations applies the embedded Postgres schema with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

func init() {
	goose.SetBaseFS(files)
	if err := goose.SetDialect("postgres"); err != nil {
		panic(err)
	}
}

func Up(ctx context.Context, db *sql.DB) error {
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

func Down(ctx context.Context, db *sql.DB) error {
	if err := goose.DownContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

func Status(ctx context.Context, db *sql.DB) error {
	return goose.StatusContext(ctx, db, dir)
}

// Versions lists the embedded migration versions, lowest first.
func Versions() ([]int64, error) {
	ms, err := goose.CollectMigrations(dir, 0, goose.MaxVersion)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(ms))
	for i, m := range ms {
		out[i] = m.Version
	}
	return out, nil
}
