package data

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Shared sentinel errors for data-layer repositories.
var (
	// Operation invoker sentinels.
	ErrUnknownOperation   = errors.New("unknown remote operation")
	ErrUnknownAlertsTable = errors.New("alerts table is not allowlisted")
	ErrEmptyAlertIDs      = errors.New("alert_ids are required")

	// Alert store sentinels.
	ErrInvalidTableName   = errors.New("invalid alerts table name")
	ErrMissingAlertsTable = errors.New("alerts table does not exist")
	ErrStorePermission    = errors.New("insufficient privileges on alert store")
)

// classifyStoreError maps well-known postgres failures onto stable sentinels
// so callers can branch with errors.Is instead of matching SQLSTATE codes.
func classifyStoreError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UndefinedTable:
			return fmt.Errorf("%s: %w", op, ErrMissingAlertsTable)
		case pgerrcode.InsufficientPrivilege:
			return fmt.Errorf("%s: %w", op, ErrStorePermission)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
