// Package webhook delivers alert notifications to an arbitrary HTTP endpoint,
// with an optional JMESPath expression to reshape the outgoing body.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/tablewatch/tablewatch/internal/observability/notify"
)

// Evaluator abstracts JMESPath operations for testability.
type Evaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

type libEvaluator struct{}

func (libEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (libEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// Config describes the target endpoint and how to shape the request.
type Config struct {
	URL     string
	Method  string
	Headers map[string]string
	// BodyExpr is an optional JMESPath expression applied to the canonical
	// alert document. When empty the document is sent as-is.
	BodyExpr  string
	OkStatus  int
	Timeout   time.Duration
	Client    *http.Client
	Evaluator Evaluator
}

// Sink posts alert notifications to a configured HTTP endpoint.
type Sink struct {
	url      string
	method   string
	headers  map[string]string
	bodyExpr string
	okStatus int
	client   *http.Client
	eval     Evaluator
}

// NewSink validates the config and builds a webhook sink.
func NewSink(cfg Config) (*Sink, error) {
	eval := cfg.Evaluator
	if eval == nil {
		eval = libEvaluator{}
	}

	endpoint := strings.TrimSpace(cfg.URL)
	if endpoint == "" {
		return nil, errors.New("webhook url is required")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid webhook url scheme: %s", u.Scheme)
	}
	if strings.TrimSpace(u.Host) == "" {
		return nil, errors.New("invalid webhook url: missing host")
	}

	if err := eval.Validate(cfg.BodyExpr); err != nil {
		return nil, fmt.Errorf("invalid body JMESPath: %w", err)
	}

	method := strings.ToUpper(strings.TrimSpace(cfg.Method))
	if method == "" {
		method = http.MethodPost
	}

	okStatus := cfg.OkStatus
	if okStatus == 0 {
		okStatus = http.StatusOK
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Sink{
		url:      endpoint,
		method:   method,
		headers:  cfg.Headers,
		bodyExpr: strings.TrimSpace(cfg.BodyExpr),
		okStatus: okStatus,
		client:   hc,
		eval:     eval,
	}, nil
}

// SendAlert posts the alert document to the configured endpoint.
func (s *Sink) SendAlert(ctx context.Context, payload notify.AlertPayload) error {
	body, err := s.deriveBody(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, s.method, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range s.headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != s.okStatus {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("webhook %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	return nil
}

func (s *Sink) deriveBody(payload notify.AlertPayload) ([]byte, error) {
	doc := alertDocument(payload)

	if s.bodyExpr == "" {
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshal alert document: %w", err)
		}
		return b, nil
	}

	res, err := s.eval.Evaluate(s.bodyExpr, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluate body JMESPath: %w", err)
	}
	b, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("marshal derived body: %w", err)
	}
	return b, nil
}

// alertDocument builds the canonical JSON-friendly document JMESPath
// expressions are evaluated against.
func alertDocument(payload notify.AlertPayload) map[string]any {
	doc := map[string]any{
		"alert_id":     payload.AlertID,
		"kind":         payload.Kind,
		"identity_key": payload.IdentityKey,
		"table_name":   payload.TableName,
		"column_name":  payload.ColumnName,
		"check_name":   payload.CheckName,
		"severity":     payload.Severity,
	}
	if !payload.DetectedAt.IsZero() {
		doc["detected_at"] = payload.DetectedAt.UTC().Format(time.RFC3339)
	}
	if len(payload.Metadata) > 0 {
		meta := make(map[string]any, len(payload.Metadata))
		for k, v := range payload.Metadata {
			meta[k] = v
		}
		doc["metadata"] = meta
	}
	return doc
}
