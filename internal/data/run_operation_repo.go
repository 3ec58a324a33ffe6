package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tablewatch/tablewatch/internal/core"
	"github.com/tablewatch/tablewatch/internal/data/pgxutil"
)

// Operation names re-exported from core for callers wiring this repo directly.
const (
	OperationMarkAlertsSent    = core.OperationMarkAlertsSent
	OperationMarkAlertsSkipped = core.OperationMarkAlertsSkipped
)

// runOperationArgs is the JSON argument payload carried by one invocation.
// AlertIDs accepts either bare ID strings or full alert records carrying an
// "id" field; the skip operation dispatches full records.
type runOperationArgs struct {
	AlertIDs  []json.RawMessage `json:"alert_ids"`
	TableName string            `json:"table_name"`
}

// RunOperationRepoOptions groups dependencies for RunOperationRepo.
type RunOperationRepoOptions struct {
	DB            *sql.DB
	AllowedTables []string // tables remote operations may mutate
	TimeProvider  TimeProvider
}

// RunOperationRepo executes named remote operations against the alert store.
// Each invocation is bounded by the dispatcher's chunk size, keeping lock and
// transaction duration per call small.
type RunOperationRepo struct {
	db            *sql.DB
	allowedTables map[string]struct{}
	timeProvider  TimeProvider
}

// NewRunOperationRepo creates a new RunOperationRepo.
func NewRunOperationRepo(opts RunOperationRepoOptions) (*RunOperationRepo, error) {
	if opts.DB == nil {
		return nil, errors.New("database connection is required")
	}
	if len(opts.AllowedTables) == 0 {
		return nil, errors.New("at least one allowed table is required")
	}

	allowed := make(map[string]struct{}, len(opts.AllowedTables))
	for _, table := range opts.AllowedTables {
		if !tableNamePattern.MatchString(table) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, table)
		}
		allowed[table] = struct{}{}
	}

	tp := opts.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}

	return &RunOperationRepo{
		db:            opts.DB,
		allowedTables: allowed,
		timeProvider:  tp,
	}, nil
}

// Invoke runs the named operation with the given JSON arguments and returns a
// JSON result reporting the number of affected rows. Argument validation
// failures are returned before any store statement executes.
func (r *RunOperationRepo) Invoke(ctx context.Context, operation string, args json.RawMessage) (json.RawMessage, error) {
	var status string
	switch operation {
	case OperationMarkAlertsSent:
		status = suppressionStatusSent
	case OperationMarkAlertsSkipped:
		status = suppressionStatusSkipped
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, operation)
	}

	decoded, err := r.decodeArgs(operation, args)
	if err != nil {
		return nil, err
	}

	ids, err := extractAlertIDs(decoded.AlertIDs)
	if err != nil {
		return nil, fmt.Errorf("operation %q: %w", operation, err)
	}

	affected, err := r.updateSuppressionStatus(ctx, decoded.TableName, status, ids)
	if err != nil {
		return nil, classifyStoreError(fmt.Sprintf("operation %q", operation), err)
	}

	result, err := json.Marshal(struct {
		RowsAffected int64 `json:"rows_affected"`
	}{RowsAffected: affected})
	if err != nil {
		return nil, fmt.Errorf("encode operation result: %w", err)
	}
	return result, nil
}

func (r *RunOperationRepo) decodeArgs(operation string, args json.RawMessage) (runOperationArgs, error) {
	var decoded runOperationArgs
	if len(args) == 0 {
		return decoded, fmt.Errorf("operation %q: arguments are required", operation)
	}
	if err := json.Unmarshal(args, &decoded); err != nil {
		return decoded, fmt.Errorf("operation %q: decode arguments: %w", operation, err)
	}
	if len(decoded.AlertIDs) == 0 {
		return decoded, fmt.Errorf("operation %q: %w", operation, ErrEmptyAlertIDs)
	}
	if _, ok := r.allowedTables[decoded.TableName]; !ok {
		return decoded, fmt.Errorf("operation %q: %w: %q", operation, ErrUnknownAlertsTable, decoded.TableName)
	}
	return decoded, nil
}

// extractAlertIDs accepts either "a1" or {"id": "a1", ...} elements.
func extractAlertIDs(raw []json.RawMessage) ([]string, error) {
	ids := make([]string, 0, len(raw))
	for i, element := range raw {
		var id string
		if err := json.Unmarshal(element, &id); err == nil {
			ids = append(ids, id)
			continue
		}

		var record struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(element, &record); err != nil {
			return nil, fmt.Errorf("alert_ids[%d]: expected id string or alert record: %w", i, err)
		}
		if record.ID == "" {
			return nil, fmt.Errorf("alert_ids[%d]: alert record has no id", i)
		}
		ids = append(ids, record.ID)
	}
	return ids, nil
}

func (r *RunOperationRepo) updateSuppressionStatus(
	ctx context.Context,
	table, status string,
	ids []string,
) (int64, error) {
	// sent_at records the notification time and is only meaningful for the
	// sent transition; skip leaves it untouched.
	query := `UPDATE ` + table + ` SET suppression_status = $1 WHERE id = ANY($2)`
	queryArgs := []any{status, ids}
	if status == suppressionStatusSent {
		query = `UPDATE ` + table + ` SET suppression_status = $1, sent_at = $3 WHERE id = ANY($2)`
		queryArgs = append(queryArgs, r.timeProvider.Now().UTC())
	}

	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.db, func(pgxConn *pgx.Conn) error {
		tag, execErr := pgxConn.Exec(ctx, query, queryArgs...)
		if execErr != nil {
			return execErr
		}
		affected = tag.RowsAffected()
		return nil
	})
	return affected, err
}
