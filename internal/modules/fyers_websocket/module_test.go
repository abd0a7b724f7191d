package fyers_websocket

import (
	"context"
	"testing"
	"time"

	"live_trader/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForward(t *testing.T) {
	in := make(chan models.Tick, 2)
	out := make(chan models.Tick, 2)
	in <- models.Tick{Symbol: "NSE:SBIN-EQ", LTP: 600}
	close(in)

	done := make(chan struct{})
	go func() {
		Forward(context.Background(), in, out)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Forward did not return on closed input")
	}
	require.Len(t, out, 1)
	assert.Equal(t, 600.0, (<-out).LTP)
}

func TestForwardStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Forward(ctx, make(chan models.Tick), make(chan models.Tick))
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Forward did not stop")
	}
}
