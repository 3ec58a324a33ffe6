package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablewatch/tablewatch/internal/domain/model"
	"github.com/tablewatch/tablewatch/internal/testutil"
)

func TestNewAlertStoreRepoValidation(t *testing.T) {
	tables := map[model.AlertKind]string{model.AlertKindTest: "alerts"}

	_, err := NewAlertStoreRepo(AlertStoreRepoOptions{Tables: tables})
	assert.ErrorContains(t, err, "database connection is required")

	_, err = NewAlertStoreRepo(AlertStoreRepoOptions{DB: openLazyDB(t)})
	assert.ErrorContains(t, err, "at least one alerts table")

	_, err = NewAlertStoreRepo(AlertStoreRepoOptions{
		DB:     openLazyDB(t),
		Tables: map[model.AlertKind]string{model.AlertKind("snapshot"): "alerts"},
	})
	assert.ErrorContains(t, err, `invalid alert kind "snapshot"`)

	_, err = NewAlertStoreRepo(AlertStoreRepoOptions{
		DB:     openLazyDB(t),
		Tables: map[model.AlertKind]string{model.AlertKindTest: "alerts where 1=1"},
	})
	assert.ErrorIs(t, err, ErrInvalidTableName)

	repo, err := NewAlertStoreRepo(AlertStoreRepoOptions{
		DB:     openLazyDB(t),
		Tables: map[model.AlertKind]string{model.AlertKindTest: "public.alerts"},
	})
	require.NoError(t, err)

	_, err = repo.QueryPendingAlerts(context.Background(), model.AlertKindModel)
	assert.ErrorContains(t, err, `no alerts table configured for kind "model"`)
}

func defaultTables() map[model.AlertKind]string {
	return map[model.AlertKind]string{
		model.AlertKindTest:  "alerts",
		model.AlertKindModel: "alerts_models",
	}
}

type alertRow struct {
	id          string
	identityKey string
	tableName   string
	columnName  *string
	checkName   string
	detectedAt  time.Time
	status      string
	sentAt      *time.Time
}

func insertAlertRow(t *testing.T, db *sql.DB, table string, row alertRow) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO `+table+` (id, identity_key, table_name, column_name, check_name, detected_at, suppression_status, sent_at, data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '{}'::jsonb)`,
		row.id, row.identityKey, row.tableName, row.columnName, row.checkName, row.detectedAt, row.status, row.sentAt)
	require.NoError(t, err)
}

func TestAlertStoreRepo_Integration_QueryPendingAlerts(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo, err := NewAlertStoreRepo(AlertStoreRepoOptions{DB: db, Tables: defaultTables()})
		require.NoError(t, err)

		base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
		column := "order_id"

		insertAlertRow(t, db, "alerts", alertRow{
			id: "a2", identityKey: "orders.order_id.not_null", tableName: "orders",
			columnName: &column, checkName: "not_null", detectedAt: base.Add(time.Minute), status: "pending",
		})
		insertAlertRow(t, db, "alerts", alertRow{
			id: "a1", identityKey: "orders..row_count", tableName: "orders",
			checkName: "row_count", detectedAt: base, status: "pending",
		})
		// Already handled rows must not reappear as pending.
		insertAlertRow(t, db, "alerts", alertRow{
			id: "a3", identityKey: "orders..freshness", tableName: "orders",
			checkName: "freshness", detectedAt: base, status: "sent", sentAt: testutil.TimePtr(base),
		})
		// Model alerts live in their own table and never leak across kinds.
		insertAlertRow(t, db, "alerts_models", alertRow{
			id: "m1", identityKey: "dim_users", tableName: "dim_users",
			checkName: "model_run", detectedAt: base, status: "pending",
		})

		pending, err := repo.QueryPendingAlerts(context.Background(), model.AlertKindTest)
		require.NoError(t, err)
		require.Len(t, pending, 2)

		// Detection order, oldest first.
		assert.Equal(t, "a1", pending[0].ID)
		assert.Equal(t, "a2", pending[1].ID)
		assert.Equal(t, model.AlertKindTest, pending[0].Kind)
		assert.Equal(t, "orders..row_count", pending[0].IdentityKey)
		require.NotNil(t, pending[1].ColumnName)
		assert.Equal(t, "order_id", *pending[1].ColumnName)
		assert.True(t, pending[0].DetectedAt.Equal(base))

		modelPending, err := repo.QueryPendingAlerts(context.Background(), model.AlertKindModel)
		require.NoError(t, err)
		require.Len(t, modelPending, 1)
		assert.Equal(t, "m1", modelPending[0].ID)
		assert.Equal(t, model.AlertKindModel, modelPending[0].Kind)
	})
}

func TestAlertStoreRepo_Integration_QueryLastSentTimes(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo, err := NewAlertStoreRepo(AlertStoreRepoOptions{DB: db, Tables: defaultTables()})
		require.NoError(t, err)

		base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

		// Two sends for the same identity key; only the newest counts.
		insertAlertRow(t, db, "alerts", alertRow{
			id: "a1", identityKey: "orders..row_count", tableName: "orders",
			checkName: "row_count", detectedAt: base.Add(-2 * time.Hour), status: "sent",
			sentAt: testutil.TimePtr(base.Add(-2 * time.Hour)),
		})
		insertAlertRow(t, db, "alerts", alertRow{
			id: "a2", identityKey: "orders..row_count", tableName: "orders",
			checkName: "row_count", detectedAt: base.Add(-time.Hour), status: "sent",
			sentAt: testutil.TimePtr(base.Add(-time.Hour)),
		})
		// Rows without an identity key never contribute to suppression.
		insertAlertRow(t, db, "alerts", alertRow{
			id: "a3", tableName: "orders",
			checkName: "row_count", detectedAt: base, status: "sent",
			sentAt: testutil.TimePtr(base),
		})
		// Pending and skipped rows do not count as sent.
		insertAlertRow(t, db, "alerts", alertRow{
			id: "a4", identityKey: "orders..freshness", tableName: "orders",
			checkName: "freshness", detectedAt: base, status: "pending",
		})
		insertAlertRow(t, db, "alerts", alertRow{
			id: "a5", identityKey: "orders..freshness", tableName: "orders",
			checkName: "freshness", detectedAt: base, status: "skipped",
		})

		lastSent, err := repo.QueryLastSentTimes(context.Background(), model.AlertKindTest)
		require.NoError(t, err)
		require.Len(t, lastSent, 1)

		sentAt, ok := lastSent.SentAt("orders..row_count")
		require.True(t, ok)
		assert.True(t, sentAt.Equal(base.Add(-time.Hour)))
	})
}

func TestRunOperationRepo_Integration_MarkSentAndSkipped(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
		repo, err := NewRunOperationRepo(RunOperationRepoOptions{
			DB:            db,
			AllowedTables: []string{"alerts", "alerts_models"},
			TimeProvider:  NewFixedTimeProvider(now),
		})
		require.NoError(t, err)

		base := now.Add(-time.Hour)
		for _, id := range []string{"a1", "a2", "a3"} {
			insertAlertRow(t, db, "alerts", alertRow{
				id: id, identityKey: "orders..row_count", tableName: "orders",
				checkName: "row_count", detectedAt: base, status: "pending",
			})
		}

		result, err := repo.Invoke(context.Background(), OperationMarkAlertsSent,
			json.RawMessage(`{"alert_ids": ["a1", "a2"], "table_name": "alerts"}`))
		require.NoError(t, err)

		var sentResult struct {
			RowsAffected int64 `json:"rows_affected"`
		}
		require.NoError(t, json.Unmarshal(result, &sentResult))
		assert.Equal(t, int64(2), sentResult.RowsAffected)

		var (
			status string
			sentAt time.Time
		)
		err = db.QueryRowContext(context.Background(),
			`SELECT suppression_status, sent_at FROM alerts WHERE id = $1`, "a1").Scan(&status, &sentAt)
		require.NoError(t, err)
		assert.Equal(t, "sent", status)
		assert.True(t, sentAt.Equal(now))

		// Skip dispatches full alert records, not bare IDs.
		result, err = repo.Invoke(context.Background(), OperationMarkAlertsSkipped,
			json.RawMessage(`{"alert_ids": [{"id": "a3", "check_name": "row_count"}], "table_name": "alerts"}`))
		require.NoError(t, err)

		var skipResult struct {
			RowsAffected int64 `json:"rows_affected"`
		}
		require.NoError(t, json.Unmarshal(result, &skipResult))
		assert.Equal(t, int64(1), skipResult.RowsAffected)

		var skipSentAt sql.NullTime
		err = db.QueryRowContext(context.Background(),
			`SELECT suppression_status, sent_at FROM alerts WHERE id = $1`, "a3").Scan(&status, &skipSentAt)
		require.NoError(t, err)
		assert.Equal(t, "skipped", status)
		assert.False(t, skipSentAt.Valid)
	})
}
