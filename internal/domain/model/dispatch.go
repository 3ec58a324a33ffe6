//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ChunkOutcome records the result of one remote operation invocation.
// Response holds the raw collaborator response on success; Err is set on
// failure. Exactly one of the two is meaningful.
type ChunkOutcome struct {
	Index    int
	Size     int
	Response json.RawMessage
	Err      error
}

// Succeeded returns true when the chunk's remote call completed without error.
func (o ChunkOutcome) Succeeded() bool {
	return o.Err == nil
}

// DispatchOutcome aggregates per-chunk outcomes of one dispatch call, in
// chunk order. Callers that want an all-or-nothing boolean reduce it with
// Succeeded; callers that retry inspect FailedChunks.
type DispatchOutcome struct {
	Operation string
	Chunks    []ChunkOutcome
}

// Succeeded returns true when every chunk succeeded (vacuously true for an
// empty dispatch).
func (d DispatchOutcome) Succeeded() bool {
	for _, c := range d.Chunks {
		if !c.Succeeded() {
			return false
		}
	}
	return true
}

// FailedChunks returns the indexes of failed chunks, in chunk order.
func (d DispatchOutcome) FailedChunks() []int {
	var failed []int
	for _, c := range d.Chunks {
		if !c.Succeeded() {
			failed = append(failed, c.Index)
		}
	}
	return failed
}

// Err returns nil when the dispatch fully succeeded, otherwise an error that
// reports how many chunks failed and joins the per-chunk failures.
func (d DispatchOutcome) Err() error {
	var errs []error
	for _, c := range d.Chunks {
		if c.Err != nil {
			errs = append(errs, fmt.Errorf("chunk %d: %w", c.Index, c.Err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("operation %q: %d of %d chunks failed: %w",
		d.Operation, len(errs), len(d.Chunks), errors.Join(errs...))
}
