package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para un único proceso
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// seq conserva el orden de inserción, que es el orden de listado.
const schema = `
CREATE TABLE IF NOT EXISTS patients (
	seq        BIGSERIAL PRIMARY KEY,
	id         TEXT NOT NULL UNIQUE,
	full_name  TEXT NOT NULL,
	birth_date TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS schedules (
	seq             BIGSERIAL PRIMARY KEY,
	id              TEXT NOT NULL UNIQUE,
	pacient_id      TEXT NOT NULL,
	schedule_date   TEXT NOT NULL,
	schedule_time   TEXT NOT NULL,
	schedule_status TEXT NOT NULL,
	conclusion      TEXT NULL
);

CREATE INDEX IF NOT EXISTS schedules_pacient_id_idx ON schedules (pacient_id);
CREATE INDEX IF NOT EXISTS schedules_date_idx ON schedules (schedule_date);
`

// Migrate crea las tablas si no existen. Es idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
