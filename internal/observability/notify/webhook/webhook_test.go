package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablewatch/tablewatch/internal/observability/notify"
)

func TestNewSinkValidation(t *testing.T) {
	t.Parallel()

	_, err := NewSink(Config{})
	assert.Error(t, err)

	_, err = NewSink(Config{URL: "ftp://example.com/hook"})
	assert.Error(t, err)

	_, err = NewSink(Config{URL: "https://"})
	assert.Error(t, err)

	_, err = NewSink(Config{URL: "https://example.com/hook", BodyExpr: "not ( valid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JMESPath")
}

func TestSendAlertPostsCanonicalDocument(t *testing.T) {
	t.Parallel()

	var got map[string]any
	var header http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink, err := NewSink(Config{
		URL:     srv.URL,
		Headers: map[string]string{"X-Api-Key": "secret"},
	})
	require.NoError(t, err)

	err = sink.SendAlert(context.Background(), notify.AlertPayload{
		AlertID:     "alert-1",
		Kind:        "model",
		IdentityKey: "orders.not_null",
		TableName:   "orders",
		CheckName:   "not_null",
		Severity:    notify.SeverityCritical,
		DetectedAt:  time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC),
		Metadata:    map[string]string{"owner": "data-eng"},
	})
	require.NoError(t, err)

	assert.Equal(t, "secret", header.Get("X-Api-Key"))
	assert.Equal(t, "application/json", header.Get("Content-Type"))
	assert.Equal(t, "alert-1", got["alert_id"])
	assert.Equal(t, "model", got["kind"])
	assert.Equal(t, "2026-08-25T09:30:00Z", got["detected_at"])
	meta, ok := got["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "data-eng", meta["owner"])
}

func TestSendAlertAppliesBodyExpression(t *testing.T) {
	t.Parallel()

	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink, err := NewSink(Config{
		URL:      srv.URL,
		BodyExpr: `{summary: join('.', [table_name, check_name]), id: alert_id}`,
	})
	require.NoError(t, err)

	err = sink.SendAlert(context.Background(), notify.AlertPayload{
		AlertID:   "alert-2",
		TableName: "orders",
		CheckName: "not_null",
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "orders.not_null", got["summary"])
	assert.Equal(t, "alert-2", got["id"])
}

func TestSendAlertChecksExpectedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	strict, err := NewSink(Config{URL: srv.URL})
	require.NoError(t, err)
	err = strict.SendAlert(context.Background(), notify.AlertPayload{AlertID: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "202")

	relaxed, err := NewSink(Config{URL: srv.URL, OkStatus: http.StatusAccepted})
	require.NoError(t, err)
	assert.NoError(t, relaxed.SendAlert(context.Background(), notify.AlertPayload{AlertID: "a"}))
}

func TestSendAlertUsesConfiguredMethod(t *testing.T) {
	t.Parallel()

	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink, err := NewSink(Config{URL: srv.URL, Method: "put"})
	require.NoError(t, err)
	require.NoError(t, sink.SendAlert(context.Background(), notify.AlertPayload{AlertID: "a"}))
	assert.Equal(t, http.MethodPut, method)
}
