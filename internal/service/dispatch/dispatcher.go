// Package dispatch splits large alert batches into bounded chunks and issues
// one remote operation call per chunk through the command collaborator.
//
// The remote command interface has a practical limit on payload size and on
// contention for the underlying store; bounding batch size keeps each call
// within that limit and keeps lock duration per call small.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tablewatch/tablewatch/internal/core"
	"github.com/tablewatch/tablewatch/internal/domain/model"
)

// DefaultChunkSize bounds one remote call's payload when the caller does not
// override it.
const DefaultChunkSize = 50

// DefaultItemsKey is the payload field that carries the chunked collection.
const DefaultItemsKey = "alert_ids"

// Request describes one dispatch call.
type Request struct {
	// Operation is the remote operation name. Required.
	Operation string

	// Items is the collection to chunk. Elements must be JSON-encodable.
	Items []any

	// ChunkSize bounds each chunk. Zero means DefaultChunkSize; negative
	// values are rejected.
	ChunkSize int

	// ItemsKey overrides the payload field holding the chunk contents.
	// Empty means DefaultItemsKey.
	ItemsKey string

	// FixedArgs are replicated verbatim onto every chunk's payload.
	FixedArgs map[string]any

	// MaxInFlight bounds concurrent chunk calls. Values <= 1 run chunks
	// sequentially. Outcomes are reported in chunk order either way.
	MaxInFlight int
}

// Options configures the dispatcher.
type Options struct {
	Invoker core.OperationInvoker // Required: command collaborator
	Logger  *slog.Logger          // Optional: structured logger
}

// Dispatcher issues chunked remote operation calls. One chunk's failure never
// prevents the remaining chunks from being attempted; the aggregate outcome
// reports which chunks failed so the caller can retry selectively.
type Dispatcher struct {
	invoker core.OperationInvoker
	logger  *slog.Logger
}

// NewDispatcher constructs a dispatcher.
func NewDispatcher(opts Options) (*Dispatcher, error) {
	if opts.Invoker == nil {
		return nil, errors.New("operation invoker is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "dispatcher")
	}

	return &Dispatcher{
		invoker: opts.Invoker,
		logger:  logger,
	}, nil
}

// Dispatch partitions the request's items into consecutive chunks and invokes
// the remote operation once per chunk. The returned error covers request
// validation only; per-chunk remote failures are recorded in the outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (model.DispatchOutcome, error) {
	outcome := model.DispatchOutcome{Operation: req.Operation}

	chunkSize, itemsKey, err := normalizeRequest(&req)
	if err != nil {
		return outcome, err
	}

	if len(req.Items) == 0 {
		return outcome, nil
	}

	chunks := chunkItems(req.Items, chunkSize)
	outcome.Chunks = make([]model.ChunkOutcome, len(chunks))

	if req.MaxInFlight > 1 {
		d.dispatchParallel(ctx, req, chunks, itemsKey, outcome.Chunks)
	} else {
		for i, chunk := range chunks {
			outcome.Chunks[i] = d.invokeChunk(ctx, req, i, chunk, itemsKey)
		}
	}

	if d.logger != nil {
		d.logger.DebugContext(ctx, "dispatch completed",
			"operation", req.Operation,
			"items", len(req.Items),
			"chunks", len(chunks),
			"failed_chunks", len(outcome.FailedChunks()),
		)
	}

	return outcome, nil
}

// normalizeRequest validates the request and resolves defaults. Validation
// failures are rejected before any remote call is attempted.
func normalizeRequest(req *Request) (chunkSize int, itemsKey string, err error) {
	if req.Operation == "" {
		return 0, "", errors.New("operation name is required")
	}
	if req.ChunkSize < 0 {
		return 0, "", fmt.Errorf("chunk size must be positive, got %d", req.ChunkSize)
	}

	chunkSize = req.ChunkSize
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}

	itemsKey = req.ItemsKey
	if itemsKey == "" {
		itemsKey = DefaultItemsKey
	}
	if _, clash := req.FixedArgs[itemsKey]; clash {
		return 0, "", fmt.Errorf("fixed argument %q conflicts with the items key", itemsKey)
	}

	return chunkSize, itemsKey, nil
}

// chunkItems partitions items into consecutive slices of at most size
// elements, preserving order. The last chunk may be smaller.
func chunkItems(items []any, size int) [][]any {
	chunks := make([][]any, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// dispatchParallel runs chunk calls concurrently with a bounded worker count.
// Outcomes land in their original slot, so ordering is preserved, and a
// failed chunk never cancels its siblings.
func (d *Dispatcher) dispatchParallel(
	ctx context.Context,
	req Request,
	chunks [][]any,
	itemsKey string,
	outcomes []model.ChunkOutcome,
) {
	var g errgroup.Group
	g.SetLimit(req.MaxInFlight)

	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			outcomes[i] = d.invokeChunk(ctx, req, i, chunk, itemsKey)
			return nil
		})
	}

	// Goroutines never return errors; failures live in the outcome slots.
	_ = g.Wait()
}

func (d *Dispatcher) invokeChunk(
	ctx context.Context,
	req Request,
	index int,
	chunk []any,
	itemsKey string,
) model.ChunkOutcome {
	out := model.ChunkOutcome{Index: index, Size: len(chunk)}

	payload := make(map[string]any, len(req.FixedArgs)+1)
	for k, v := range req.FixedArgs {
		payload[k] = v
	}
	payload[itemsKey] = chunk

	args, err := json.Marshal(payload)
	if err != nil {
		out.Err = fmt.Errorf("encode chunk %d payload: %w", index, err)
		return out
	}

	resp, err := d.invoker.Invoke(ctx, req.Operation, args)
	if err != nil {
		out.Err = err
		if d.logger != nil {
			d.logger.ErrorContext(ctx, "chunk invocation failed",
				"operation", req.Operation,
				"chunk", index,
				"size", len(chunk),
				"error", err,
			)
		}
		return out
	}

	out.Response = resp
	return out
}
