package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"clinic-scheduling/internal/domain/patients"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

func (r *PatientsRepo) Insert(ctx context.Context, p patients.Patient) error {
	return insertPatient(ctx, r.db, p)
}

func (r *PatientsRepo) List(ctx context.Context) ([]patients.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, full_name, birth_date
		FROM patients
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		var p patients.Patient
		if err := rows.Scan(&p.ID, &p.FullName, &p.BirthDate); err != nil {
			return nil, err
		}
		p.BirthDate = p.BirthDate.UTC()
		out = append(out, p)
	}

	return out, rows.Err()
}

// ReplaceAll borra y reinserta en una transacción, en el orden recibido.
func (r *PatientsRepo) ReplaceAll(ctx context.Context, ps []patients.Patient) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM patients`); err != nil {
		return err
	}
	for _, p := range ps {
		if err := insertPatient(ctx, tx, p); err != nil {
			return fmt.Errorf("reinsert patient %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (r *PatientsRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return err
}

// execer lo cumplen *sql.DB y *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertPatient(ctx context.Context, db execer, p patients.Patient) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO patients (id, full_name, birth_date)
		VALUES ($1,$2,$3)
	`,
		p.ID,
		p.FullName,
		p.BirthDate,
	)
	return err
}

var _ patients.Repository = (*PatientsRepo)(nil)
