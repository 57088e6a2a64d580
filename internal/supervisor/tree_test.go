// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package supervisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/reelmatch/internal/logging"
)

func newTestTree(t *testing.T, cfg TreeConfig) *SupervisorTree {
	t.Helper()
	tree, err := NewSupervisorTree(logging.NewSlogLogger(), cfg)
	require.NoError(t, err)
	return tree
}

func waitStarted(t *testing.T, svc *mockService) {
	t.Helper()
	select {
	case <-svc.started:
	case <-time.After(2 * time.Second):
		t.Fatalf("service %s did not start", svc.name)
	}
}

func TestDefaultTreeConfig(t *testing.T) {
	cfg := DefaultTreeConfig()
	assert.InDelta(t, 5.0, cfg.FailureThreshold, 0)
	assert.InDelta(t, 30.0, cfg.FailureDecay, 0)
	assert.Equal(t, 15*time.Second, cfg.FailureBackoff)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestNewSupervisorTree_FillsDefaults(t *testing.T) {
	tree := newTestTree(t, TreeConfig{FailureBackoff: time.Second})

	assert.Equal(t, time.Second, tree.config.FailureBackoff)
	assert.Equal(t, 10*time.Second, tree.config.ShutdownTimeout)
	assert.InDelta(t, 5.0, tree.config.FailureThreshold, 0)
	require.NotNil(t, tree.Root())
	assert.Equal(t, "reelmatch", tree.Root().String())
}

func TestSupervisorTree_RunsBothLayers(t *testing.T) {
	tree := newTestTree(t, TreeConfig{ShutdownTimeout: time.Second})

	gc := newMockService("cache-gc")
	http := newMockService("http-server")
	tree.AddMaintenanceService(gc)
	tree.AddAPIService(http)

	ctx, cancel := context.WithCancel(context.Background())
	done := tree.ServeBackground(ctx)

	waitStarted(t, gc)
	waitStarted(t, http)

	cancel()
	select {
	case err := <-done:
		assert.True(t, err == nil || errors.Is(err, context.Canceled), "unexpected error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not stop")
	}

	assert.Equal(t, int32(1), http.stops.Load())
	assert.Equal(t, int32(1), gc.stops.Load())

	report, err := tree.UnstoppedServiceReport()
	require.NoError(t, err)
	assert.Empty(t, report)
}

func TestSupervisorTree_RestartsFailedService(t *testing.T) {
	tree := newTestTree(t, TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	flaky := newMockService("flaky")
	flaky.setFailCount(2)
	steady := newMockService("steady")
	tree.AddMaintenanceService(flaky)
	tree.AddAPIService(steady)

	ctx, cancel := context.WithCancel(context.Background())
	done := tree.ServeBackground(ctx)
	defer func() {
		cancel()
		<-done
	}()

	require.Eventually(t, func() bool {
		return flaky.starts.Load() >= 3
	}, 5*time.Second, 10*time.Millisecond)

	// The API layer is not restarted by a maintenance failure.
	assert.Equal(t, int32(1), steady.starts.Load())
}
