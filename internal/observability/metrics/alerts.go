package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/tablewatch/tablewatch/internal/observability/errors"
	"github.com/tablewatch/tablewatch/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// SuppressionMetric captures the outcome of one suppression pass over a
// single alert kind.
type SuppressionMetric struct {
	Kind               string
	Pending            int
	Suppressed         int
	MissingIdentityKey int
	Duration           time.Duration
}

// EmitSuppression emits counters describing how many pending alerts were
// examined and how many the suppression pass filtered out.
func EmitSuppression(sink statsd.Sink, in SuppressionMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{"kind": in.Kind}

	sink.Count("suppression.pending", int64(in.Pending), tags)
	sink.Count("suppression.suppressed", int64(in.Suppressed), tags)
	if in.MissingIdentityKey > 0 {
		sink.Count("suppression.missing_identity_key", int64(in.MissingIdentityKey), tags)
	}
	if in.Duration > 0 {
		sink.Timing("suppression.duration", in.Duration, CloneTags(tags))
	}
}

// DispatchMetric captures details about one dispatch call for metric emission.
type DispatchMetric struct {
	Operation    string
	Kind         string
	Items        int
	Chunks       int
	FailedChunks int
	Result       string
	Duration     time.Duration
	Err          error
}

// EmitDispatch emits standardised dispatch outcome metrics.
func EmitDispatch(sink statsd.Sink, in DispatchMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"operation": in.Operation,
		"kind":      in.Kind,
		"result":    in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("dispatch.calls", 1, tags)
	sink.Count("dispatch.items", int64(in.Items), CloneTags(tags))
	sink.Gauge("dispatch.chunks", float64(in.Chunks), CloneTags(tags))

	if in.FailedChunks > 0 {
		failTags := CloneTags(tags)
		failTags["failed_chunks"] = strconv.Itoa(in.FailedChunks)
		sink.Count("dispatch.failed_chunks", int64(in.FailedChunks), failTags)
	}

	if in.Duration > 0 {
		sink.Timing("dispatch.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		if k == "" {
			continue
		}
		out[k] = v
	}
	return out
}
