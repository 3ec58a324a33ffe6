package errors

import (
	"context"
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Classify(nil))
	assert.Equal(t, "context_canceled", Classify(fmt.Errorf("run: %w", context.Canceled)))
	assert.Equal(t, "deadline_exceeded", Classify(context.DeadlineExceeded))
	assert.Equal(t, "errors_errorstring", Classify(goerrors.New("boom")))
	assert.Equal(t, "errors_errorstring", Classify(fmt.Errorf("wrapped: %w", goerrors.New("boom"))))
}
