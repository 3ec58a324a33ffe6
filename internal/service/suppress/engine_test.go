package suppress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablewatch/tablewatch/internal/domain/model"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func pendingAlert(id, identityKey string, detectedAt time.Time) model.PendingAlert {
	return model.PendingAlert{
		ID:          id,
		Kind:        model.AlertKindTest,
		IdentityKey: identityKey,
		TableName:   "analytics.orders",
		CheckName:   "not_null",
		DetectedAt:  detectedAt,
	}
}

func TestEngine_Suppress_AlreadyNotified(t *testing.T) {
	t.Parallel()
	engine := NewEngine(Options{})

	pending := []model.PendingAlert{
		pendingAlert("a1", "k1", baseTime),
		pendingAlert("a2", "k2", baseTime),
	}
	lastSent := model.LastSentTimes{
		"k1": baseTime.Add(time.Hour), // notified after detection
	}

	suppressed, summary := engine.Suppress(pending, lastSent)

	assert.Equal(t, []string{"a1"}, suppressed)
	assert.Equal(t, 2, summary.Pending)
	assert.Equal(t, 1, summary.Suppressed)
	assert.Zero(t, summary.MissingIdentityKey)
}

func TestEngine_Suppress_NoRecordNeverSuppresses(t *testing.T) {
	t.Parallel()
	engine := NewEngine(Options{})

	pending := []model.PendingAlert{pendingAlert("a1", "k1", baseTime)}

	suppressed, summary := engine.Suppress(pending, model.LastSentTimes{})
	assert.Empty(t, suppressed)
	assert.Zero(t, summary.Suppressed)

	suppressed, _ = engine.Suppress(pending, nil)
	assert.Empty(t, suppressed)
}

func TestEngine_Suppress_StaleRecordNotSuppressed(t *testing.T) {
	t.Parallel()
	engine := NewEngine(Options{})

	// The logical check was notified before this occurrence was detected:
	// new information, must surface.
	pending := []model.PendingAlert{pendingAlert("a1", "k1", baseTime)}
	lastSent := model.LastSentTimes{"k1": baseTime.Add(-time.Minute)}

	suppressed, _ := engine.Suppress(pending, lastSent)
	assert.Empty(t, suppressed)
}

func TestEngine_Suppress_BoundaryEquality(t *testing.T) {
	t.Parallel()

	pending := []model.PendingAlert{pendingAlert("a1", "k1", baseTime)}
	lastSent := model.LastSentTimes{"k1": baseTime} // sentAt == detectedAt

	suppressed, _ := NewEngine(Options{}).Suppress(pending, lastSent)
	assert.Equal(t, []string{"a1"}, suppressed, "not_earlier boundary suppresses on equality")

	suppressed, _ = NewEngine(Options{Boundary: BoundaryStrict}).Suppress(pending, lastSent)
	assert.Empty(t, suppressed, "strict boundary requires sentAt > detectedAt")
}

func TestEngine_Suppress_InputOrderPreserved(t *testing.T) {
	t.Parallel()
	engine := NewEngine(Options{})

	pending := []model.PendingAlert{
		pendingAlert("a3", "k3", baseTime),
		pendingAlert("a1", "k1", baseTime),
		pendingAlert("a2", "k2", baseTime),
	}
	lastSent := model.LastSentTimes{
		"k1": baseTime.Add(time.Hour),
		"k2": baseTime.Add(time.Hour),
		"k3": baseTime.Add(time.Hour),
	}

	suppressed, _ := engine.Suppress(pending, lastSent)
	assert.Equal(t, []string{"a3", "a1", "a2"}, suppressed)
}

func TestEngine_Suppress_SharedIdentityKeyUniformDecision(t *testing.T) {
	t.Parallel()
	engine := NewEngine(Options{})

	// The same check re-triggered within one run: both occurrences are
	// evaluated against the same snapshot, so the decision is all-or-none.
	pending := []model.PendingAlert{
		pendingAlert("a1", "k1", baseTime),
		pendingAlert("a2", "k1", baseTime),
	}

	suppressed, _ := engine.Suppress(pending, model.LastSentTimes{"k1": baseTime.Add(time.Hour)})
	assert.Equal(t, []string{"a1", "a2"}, suppressed)

	suppressed, _ = engine.Suppress(pending, model.LastSentTimes{"k1": baseTime.Add(-time.Hour)})
	assert.Empty(t, suppressed)
}

func TestEngine_Suppress_PartitionIndependence(t *testing.T) {
	t.Parallel()
	engine := NewEngine(Options{})

	// Identity keys collide across kinds; each kind is evaluated only
	// against its own last-sent snapshot.
	testPending := []model.PendingAlert{pendingAlert("t1", "k1", baseTime)}
	modelPending := []model.PendingAlert{
		{
			ID:          "m1",
			Kind:        model.AlertKindModel,
			IdentityKey: "k1",
			TableName:   "analytics.orders",
			CheckName:   "model_run",
			DetectedAt:  baseTime,
		},
	}

	testLastSent := model.LastSentTimes{"k1": baseTime.Add(time.Hour)}
	modelLastSent := model.LastSentTimes{}

	suppressedTest, _ := engine.Suppress(testPending, testLastSent)
	suppressedModel, _ := engine.Suppress(modelPending, modelLastSent)

	assert.Equal(t, []string{"t1"}, suppressedTest)
	assert.Empty(t, suppressedModel, "test-kind record must not suppress a model alert")
}

func TestEngine_Suppress_MissingIdentityKeyFailsOpen(t *testing.T) {
	t.Parallel()
	engine := NewEngine(Options{})

	noKey := model.PendingAlert{
		ID:         "a1",
		Kind:       model.AlertKindTest,
		DetectedAt: baseTime,
	}

	suppressed, summary := engine.Suppress([]model.PendingAlert{noKey}, model.LastSentTimes{"": baseTime.Add(time.Hour)})
	assert.Empty(t, suppressed)
	assert.Equal(t, 1, summary.MissingIdentityKey)
}

func TestEngine_Suppress_DerivedIdentityKey(t *testing.T) {
	t.Parallel()
	engine := NewEngine(Options{})

	column := "amount"
	alert := model.PendingAlert{
		ID:         "a1",
		Kind:       model.AlertKindTest,
		TableName:  "Analytics.Orders",
		ColumnName: &column,
		CheckName:  "not_null",
		DetectedAt: baseTime,
	}
	require.Equal(t, "analytics.orders.amount.not_null", alert.EffectiveIdentityKey())

	lastSent := model.LastSentTimes{"analytics.orders.amount.not_null": baseTime.Add(time.Hour)}
	suppressed, _ := engine.Suppress([]model.PendingAlert{alert}, lastSent)
	assert.Equal(t, []string{"a1"}, suppressed)
}

func TestEngine_Suppress_EmptyInput(t *testing.T) {
	t.Parallel()
	engine := NewEngine(Options{})

	suppressed, summary := engine.Suppress(nil, model.LastSentTimes{"k1": baseTime})
	assert.Empty(t, suppressed)
	assert.Zero(t, summary.Pending)
}
