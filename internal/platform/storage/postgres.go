package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PostgresStore is the relational store variant, backed by a pgx pool.
// Every mutation runs inside its own transaction: committed on success,
// rolled back and re-signaled on any failure.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewPostgres opens a connection pool and verifies it with a ping. The
// caller decides what to do when the connection cannot be established;
// this constructor never falls back on its own.
func NewPostgres(ctx context.Context, databaseURL string, maxConns, minConns int32, log zerolog.Logger) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = minConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{
		pool: pool,
		log:  log.With().Str("store", "postgres").Logger(),
	}, nil
}

func (s *PostgresStore) Insert(ctx context.Context, table string, row Row) (int64, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return 0, &UnknownTableError{Table: table}
	}

	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[col]
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) RETURNING id`,
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *PostgresStore) SelectAll(ctx context.Context, table string) ([]Row, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return nil, &UnknownTableError{Table: table}
	}

	query := fmt.Sprintf(`SELECT id, %s FROM %s ORDER BY id`, strings.Join(cols, ", "), table)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRows(rows, cols)
}

func (s *PostgresStore) SelectByID(ctx context.Context, table string, id int64) (Row, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return nil, &UnknownTableError{Table: table}
	}

	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE id = $1`, strings.Join(cols, ", "), table)
	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collected, err := collectRows(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(collected) == 0 {
		return nil, ErrNotFound
	}
	return collected[0], nil
}

func (s *PostgresStore) Update(ctx context.Context, table string, id int64, row Row) (int64, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return 0, &UnknownTableError{Table: table}
	}

	assignments := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	args = append(args, id)
	for i, col := range cols {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+2)
		args = append(args, row[col])
	}
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $1`, table, strings.Join(assignments, ", "))

	return s.exec(ctx, query, args...)
}

func (s *PostgresStore) Delete(ctx context.Context, table string, id int64) (int64, error) {
	if _, ok := tableColumns[table]; !ok {
		return 0, &UnknownTableError{Table: table}
	}

	return s.exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
}

func (s *PostgresStore) SelectBills(ctx context.Context, f BillFilter) ([]Row, error) {
	cols := tableColumns["billing"]
	selected := make([]string, 0, len(cols)+2)
	selected = append(selected, "b.id")
	for _, col := range cols {
		selected = append(selected, "b."+col)
	}
	selected = append(selected, "p.name AS patient_name")

	query := `SELECT ` + strings.Join(selected, ", ") + `
		FROM billing b
		JOIN patients p ON b.patient_id = p.id`
	var args []any
	var where []string
	if f.PatientID != 0 {
		args = append(args, f.PatientID)
		where = append(where, fmt.Sprintf("b.patient_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("b.payment_status = $%d", len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if f.OldestFirst {
		query += " ORDER BY b.date_issued ASC"
	} else {
		query += " ORDER BY b.date_issued DESC"
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRows(rows, append(append([]string{}, cols...), "patient_name"))
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// exec runs one mutation inside its own transaction and returns the
// affected count.
func (s *PostgresStore) exec(ctx context.Context, query string, args ...any) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// collectRows zips scanned values into Rows. The first selected column is
// always id, followed by cols in order.
func collectRows(rows pgx.Rows, cols []string) ([]Row, error) {
	var out []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		if len(values) != len(cols)+1 {
			return nil, errors.New("column count mismatch")
		}
		row := make(Row, len(cols)+1)
		row["id"] = values[0]
		for i, col := range cols {
			if values[i+1] == nil {
				continue
			}
			row[col] = values[i+1]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
