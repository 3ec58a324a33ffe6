package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchOutcomeSucceeded(t *testing.T) {
	empty := DispatchOutcome{Operation: "update_sent_alerts"}
	assert.True(t, empty.Succeeded())
	assert.NoError(t, empty.Err())
	assert.Empty(t, empty.FailedChunks())

	allOK := DispatchOutcome{
		Operation: "update_sent_alerts",
		Chunks: []ChunkOutcome{
			{Index: 0, Size: 50},
			{Index: 1, Size: 12},
		},
	}
	assert.True(t, allOK.Succeeded())
	assert.NoError(t, allOK.Err())
}

func TestDispatchOutcomePartialFailure(t *testing.T) {
	chunkErr := errors.New("connection reset")
	outcome := DispatchOutcome{
		Operation: "update_skipped_alerts",
		Chunks: []ChunkOutcome{
			{Index: 0, Size: 50},
			{Index: 1, Size: 50, Err: chunkErr},
			{Index: 2, Size: 7},
		},
	}

	assert.False(t, outcome.Succeeded())
	assert.Equal(t, []int{1}, outcome.FailedChunks())

	err := outcome.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, chunkErr)
	assert.Contains(t, err.Error(), `operation "update_skipped_alerts"`)
	assert.Contains(t, err.Error(), "1 of 3 chunks failed")
}

func TestChunkOutcomeSucceeded(t *testing.T) {
	assert.True(t, ChunkOutcome{Index: 0, Size: 1}.Succeeded())
	assert.False(t, ChunkOutcome{Index: 0, Size: 1, Err: errors.New("boom")}.Succeeded())
}
