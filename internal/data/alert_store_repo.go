package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tablewatch/tablewatch/internal/data/pgxutil"
	"github.com/tablewatch/tablewatch/internal/domain/model"
)

// Suppression status values persisted in the alert tables.
const (
	suppressionStatusPending = "pending"
	suppressionStatusSent    = "sent"
	suppressionStatusSkipped = "skipped"
)

// alertColumns defines the column list for pending-alert SELECT queries to
// ensure consistent field mapping.
const alertColumns = `id, identity_key, table_name, column_name, check_name, detected_at, data`

// tableNamePattern restricts configured table names to plain (optionally
// schema-qualified) identifiers. Table names are interpolated into SQL text,
// so anything else is rejected at construction time.
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// AlertStoreRepoOptions groups dependencies for AlertStoreRepo.
type AlertStoreRepoOptions struct {
	DB     *sql.DB
	Tables map[model.AlertKind]string // alert table per kind
}

// AlertStoreRepo reads pending alerts and last-sent times from the backing
// alert store, one table per alert kind.
type AlertStoreRepo struct {
	db     *sql.DB
	tables map[model.AlertKind]string
}

// NewAlertStoreRepo creates a new AlertStoreRepo and validates the configured
// table names.
func NewAlertStoreRepo(opts AlertStoreRepoOptions) (*AlertStoreRepo, error) {
	if opts.DB == nil {
		return nil, errors.New("database connection is required")
	}
	if len(opts.Tables) == 0 {
		return nil, errors.New("at least one alerts table is required")
	}

	tables := make(map[model.AlertKind]string, len(opts.Tables))
	for kind, table := range opts.Tables {
		if !kind.Valid() {
			return nil, fmt.Errorf("invalid alert kind %q", kind)
		}
		if !tableNamePattern.MatchString(table) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, table)
		}
		tables[kind] = table
	}

	return &AlertStoreRepo{db: opts.DB, tables: tables}, nil
}

func (r *AlertStoreRepo) tableFor(kind model.AlertKind) (string, error) {
	table, ok := r.tables[kind]
	if !ok {
		return "", fmt.Errorf("no alerts table configured for kind %q", kind)
	}
	return table, nil
}

// QueryPendingAlerts returns alerts of the given kind that have not been
// notified yet, ordered by detection time.
func (r *AlertStoreRepo) QueryPendingAlerts(ctx context.Context, kind model.AlertKind) ([]model.PendingAlert, error) {
	table, err := r.tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + alertColumns + ` FROM ` + table + `
		WHERE suppression_status = $1
		ORDER BY detected_at, id`

	var alerts []model.PendingAlert
	err = pgxutil.WithPgxConn(ctx, r.db, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, suppressionStatusPending)
		if err != nil {
			return err
		}
		defer rows.Close()

		alerts, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.PendingAlert])
		return err
	})
	if err != nil {
		return nil, classifyStoreError("query pending alerts", err)
	}

	// Kind is implied by the table, not stored per row.
	for i := range alerts {
		alerts[i].Kind = kind
	}

	return alerts, nil
}

// QueryLastSentTimes returns the most recent successful notification time per
// identity key for the given kind.
func (r *AlertStoreRepo) QueryLastSentTimes(ctx context.Context, kind model.AlertKind) (model.LastSentTimes, error) {
	table, err := r.tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := `SELECT identity_key, MAX(sent_at) AS sent_at FROM ` + table + `
		WHERE suppression_status = $1 AND sent_at IS NOT NULL AND identity_key <> ''
		GROUP BY identity_key`

	lastSent := make(model.LastSentTimes)
	err = pgxutil.WithPgxConn(ctx, r.db, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, suppressionStatusSent)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				identityKey string
				sentAt      time.Time
			)
			if scanErr := rows.Scan(&identityKey, &sentAt); scanErr != nil {
				return scanErr
			}
			lastSent[identityKey] = sentAt
		}
		return rows.Err()
	})
	if err != nil {
		return nil, classifyStoreError("query last sent times", err)
	}

	return lastSent, nil
}
