package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"clinic-scheduling/internal/domain/schedules"
)

type SchedulesRepo struct {
	db *sql.DB
}

func NewSchedulesRepo(db *sql.DB) *SchedulesRepo {
	return &SchedulesRepo{db: db}
}

func (r *SchedulesRepo) Insert(ctx context.Context, s schedules.Schedule) error {
	return insertSchedule(ctx, r.db, s)
}

func (r *SchedulesRepo) List(ctx context.Context) ([]schedules.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pacient_id, schedule_date, schedule_time, schedule_status, conclusion
		FROM schedules
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedules.Schedule, 0)
	for rows.Next() {
		var (
			s          schedules.Schedule
			status     string
			conclusion sql.NullString
		)
		if err := rows.Scan(
			&s.ID,
			&s.PacientID,
			&s.ScheduleDate,
			&s.ScheduleTime,
			&status,
			&conclusion,
		); err != nil {
			return nil, err
		}
		s.ScheduleStatus = schedules.Status(status)
		if conclusion.Valid {
			c := conclusion.String
			s.Conclusion = &c
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *SchedulesRepo) ReplaceAll(ctx context.Context, ss []schedules.Schedule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedules`); err != nil {
		return err
	}
	for _, s := range ss {
		if err := insertSchedule(ctx, tx, s); err != nil {
			return fmt.Errorf("reinsert schedule %s: %w", s.ID, err)
		}
	}
	return tx.Commit()
}

func (r *SchedulesRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	return err
}

func (r *SchedulesRepo) DeleteByPatientID(ctx context.Context, patientID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE pacient_id = $1`, patientID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func insertSchedule(ctx context.Context, db execer, s schedules.Schedule) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO schedules (
			id, pacient_id,
			schedule_date, schedule_time,
			schedule_status, conclusion
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		s.ID,
		s.PacientID,
		s.ScheduleDate,
		s.ScheduleTime,
		string(s.ScheduleStatus),
		toNullString(s.Conclusion),
	)
	return err
}

// conclusion es nullable
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

var _ schedules.Repository = (*SchedulesRepo)(nil)
