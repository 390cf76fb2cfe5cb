package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lumen-lang/lumen/internal/constdep"
)

// Row is one stored analysis run.
type Row struct {
	RunID        string `json:"run_id" yaml:"run_id"`
	Unit         string `json:"unit" yaml:"unit"`
	OrderedCount int    `json:"ordered_count" yaml:"ordered_count"`
	CycleCount   int    `json:"cycle_count" yaml:"cycle_count"`
	CreatedAt    string `json:"created_at" yaml:"created_at"`
}

// WriteReport appends one analysis report. Inserts are idempotent on run
// ID: replaying the same run is silently ignored.
func (s *Store) WriteReport(ctx context.Context, r *constdep.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (run_id, unit, ordered_count, cycle_count, report)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO NOTHING
	`,
		r.RunID,
		r.Unit,
		len(r.Ordered),
		len(r.Cycles),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ListRows returns stored runs, newest first. An empty unit matches all
// units.
func (s *Store) ListRows(ctx context.Context, unit string) ([]Row, error) {
	query := `
		SELECT run_id, unit, ordered_count, cycle_count, created_at
		FROM analyses
	`
	var args []any
	if unit != "" {
		query += ` WHERE unit = ?`
		args = append(args, unit)
	}
	query += ` ORDER BY created_at DESC, run_id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.RunID, &r.Unit, &r.OrderedCount, &r.CycleCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return out, nil
}

// GetReport loads one full report by run ID. Returns nil when the run is
// unknown.
func (s *Store) GetReport(ctx context.Context, runID string) (*constdep.Report, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM analyses WHERE run_id = ?`, runID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report: %w", err)
	}

	var r constdep.Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &r, nil
}
