// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"go.amzn.com/rwsim/sim/config"
	"go.amzn.com/rwsim/sim/core"
	"go.amzn.com/rwsim/sim/eventbus"
	"go.amzn.com/rwsim/sim/model"
	"go.amzn.com/rwsim/sim/resource"
	"go.amzn.com/rwsim/sim/worker"
)

const (
	waitFor = 2 * time.Second
	tick    = 2 * time.Millisecond
)

func newSupervisor(t *testing.T, readers, writers int) *Supervisor {
	t.Helper()
	cfg := config.Simulation{
		Readers:   readers,
		Writers:   writers,
		ReadHold:  2 * time.Millisecond,
		WriteHold: 2 * time.Millisecond,
		ReadIdle:  time.Millisecond,
		WriteIdle: time.Millisecond,
		Policy:    model.ReaderPriority,
	}
	conf, err := config.NewHolder(cfg)
	require.NoError(t, err)

	bus := eventbus.NewBus()
	ctrl := core.NewController(cfg.Policy, bus)
	return New(ctrl, resource.NewStore("seed"), conf, worker.NewGate(), clock.New())
}

func TestStartSpawnsConfiguredWorkers(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newSupervisor(t, 3, 2)
	s.Start()
	assert.True(t, s.Running())
	assert.Len(t, s.Workers(), 5)

	// Start again is a no-op.
	s.Start()
	assert.Len(t, s.Workers(), 5)

	s.Stop()
	assert.False(t, s.Running())
	assert.Empty(t, s.Workers())
}

func TestSetCountsReconcilesOnceOnly(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newSupervisor(t, 0, 0)
	s.Start()
	defer s.Stop()

	spawned, cancelled, err := s.SetCounts(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, spawned)
	assert.Equal(t, 0, cancelled)

	// Identical targets are a round trip with zero churn.
	spawned, cancelled, err = s.SetCounts(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, spawned)
	assert.Equal(t, 0, cancelled)

	spawned, cancelled, err = s.SetCounts(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, spawned)
	assert.Equal(t, 3, cancelled)
	assert.Len(t, s.Workers(), 2)
}

func TestSetCountsRejectsNegative(t *testing.T) {
	s := newSupervisor(t, 1, 1)
	_, _, err := s.SetCounts(-1, 0)
	assert.ErrorIs(t, err, config.ErrInvalidConfiguration)
}

func TestPauseIdempotence(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newSupervisor(t, 2, 1)
	s.Start()
	defer s.Stop()

	s.Pause()
	paused := s.Paused()
	s.Pause()
	assert.Equal(t, paused, s.Paused())
	assert.True(t, s.Paused())

	s.Resume()
	assert.False(t, s.Paused())
}

func TestStopZeroesResourceState(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newSupervisor(t, 3, 1)
	s.Start()

	// Let the workers generate some traffic first.
	require.Eventually(t, func() bool {
		st := s.ctrl.State()
		return st.ActiveReaders > 0 || st.ActiveWriter
	}, waitFor, tick)

	s.Stop()
	assert.Equal(t, model.ResourceSnapshot{}, s.ctrl.State())
	assert.Empty(t, s.Workers())

	// Stop again in the same state is a no-op.
	s.Stop()
	assert.Equal(t, model.ResourceSnapshot{}, s.ctrl.State())
}

func TestResetRespawnsIdleWorkers(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newSupervisor(t, 2, 2)
	s.Start()
	require.Len(t, s.Workers(), 4)

	s.Reset()
	assert.True(t, s.Paused())
	assert.Len(t, s.Workers(), 4)
	assert.Equal(t, model.ResourceSnapshot{}, s.ctrl.State())
	for _, desc := range s.Workers() {
		assert.Equal(t, model.WorkerIdleStateName, desc.State)
	}

	// Resume releases the respawned workers.
	s.Resume()
	require.Eventually(t, func() bool {
		st := s.ctrl.State()
		return st.ActiveReaders > 0 || st.ActiveWriter
	}, waitFor, tick)

	s.Stop()
}

func TestCommandsBeforeStartAreNoOps(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newSupervisor(t, 2, 1)
	s.Pause()
	s.Resume()
	s.Stop()
	assert.False(t, s.Running())
	assert.Empty(t, s.Workers())
}
