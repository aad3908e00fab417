package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"drishti-notifier/internal/observability"
)

func TestGracefulShutdownDeadline(t *testing.T) {
	ctx, cancel := GracefulShutdown(observability.NewNopLogger(), 20*time.Millisecond)
	defer cancel()

	select {
	case <-ctx.Done():
		assert.True(t, errors.Is(ctx.Err(), context.DeadlineExceeded))
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled after run timeout")
	}
}

func TestGracefulShutdownCancel(t *testing.T) {
	ctx, cancel := GracefulShutdown(observability.NewNopLogger(), time.Minute)
	cancel()

	assert.True(t, errors.Is(ctx.Err(), context.Canceled))
}
