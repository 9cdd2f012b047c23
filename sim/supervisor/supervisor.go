// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package supervisor reconciles the live worker set against the requested
// reader/writer counts and propagates the operator commands (start, pause,
// resume, stop, reset) to all workers cooperatively.
package supervisor

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/rwsim/sim/config"
	"go.amzn.com/rwsim/sim/core"
	"go.amzn.com/rwsim/sim/model"
	"go.amzn.com/rwsim/sim/resource"
	"go.amzn.com/rwsim/sim/worker"
)

type managed struct {
	worker *worker.Worker
	cancel context.CancelFunc
}

// Supervisor owns worker lifecycle. All commands are idempotent when
// re-issued in the same state.
type Supervisor struct {
	ctrl  *core.Controller
	store *resource.Store
	conf  *config.Holder
	gate  *worker.Gate
	clk   clock.Clock

	mu      sync.Mutex
	running bool
	readers []*managed
	writers []*managed
}

// New returns a supervisor with no live workers.
func New(ctrl *core.Controller, store *resource.Store, conf *config.Holder, gate *worker.Gate, clk clock.Clock) *Supervisor {
	return &Supervisor{
		ctrl:  ctrl,
		store: store,
		conf:  conf,
		gate:  gate,
		clk:   clk,
	}
}

// Start spawns workers to the configured counts and opens the pause gate.
// A second Start while running is a logged no-op.
func (s *Supervisor) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		log.Info("supervisor: already running, start ignored")
		s.gate.Resume()
		return
	}
	s.running = true
	cfg := s.conf.Snapshot()
	s.reconcileLocked(cfg.Readers, cfg.Writers)
	s.gate.Resume()
	log.Infof("supervisor: started %d readers and %d writers", cfg.Readers, cfg.Writers)
}

// Pause closes the gate. Workers finish their current hold/idle step and
// block before the next acquire attempt. Idempotent.
func (s *Supervisor) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		log.Info("supervisor: not running, pause ignored")
		return
	}
	s.gate.Pause()
	log.Info("supervisor: paused")
}

// Resume reopens the gate. Idempotent.
func (s *Supervisor) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		log.Info("supervisor: not running, resume ignored")
		return
	}
	s.gate.Resume()
	log.Info("supervisor: resumed")
}

// Stop cancels every worker, waits until all have reached Stopped, then
// zeroes the resource state. Idempotent.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Reset stops the simulation and re-spawns workers to the last requested
// counts, idle behind a closed gate until the next start or resume.
func (s *Supervisor) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.gate.Pause()
	cfg := s.conf.Snapshot()
	s.running = true
	s.reconcileLocked(cfg.Readers, cfg.Writers)
	log.Infof("supervisor: reset to %d readers and %d writers", cfg.Readers, cfg.Writers)
}

// SetCounts records the requested counts and, when running, reconciles the
// live worker set. Excess workers are cancelled most-recently-spawned first
// to keep behavior deterministic. It reports the resulting churn.
func (s *Supervisor) SetCounts(readers, writers int) (spawned, cancelled int, err error) {
	if err := s.conf.SetCounts(readers, writers); err != nil {
		return 0, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return 0, 0, nil
	}
	spawned, cancelled = s.reconcileLocked(readers, writers)
	return spawned, cancelled, nil
}

// Running reports whether the simulation has been started and not stopped.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Paused reports whether the pause gate is closed.
func (s *Supervisor) Paused() bool {
	return s.gate.Paused()
}

// Workers returns descriptors for every live worker, readers first.
func (s *Supervisor) Workers() []model.WorkerDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()

	descs := make([]model.WorkerDescriptor, 0, len(s.readers)+len(s.writers))
	for _, m := range s.readers {
		descs = append(descs, m.worker.Describe())
	}
	for _, m := range s.writers {
		descs = append(descs, m.worker.Describe())
	}
	return descs
}

func (s *Supervisor) stopLocked() {
	if !s.running && len(s.readers) == 0 && len(s.writers) == 0 {
		log.Info("supervisor: already stopped")
		return
	}

	all := append(append([]*managed{}, s.readers...), s.writers...)
	for _, m := range all {
		m.cancel()
	}
	// Resume after cancelling so workers parked at the gate wake and observe
	// cancellation; a blocked acquire wakes through its own context.
	s.gate.Resume()
	for _, m := range all {
		<-m.worker.Done()
	}
	s.readers = nil
	s.writers = nil
	s.ctrl.Reset()
	s.running = false
	log.Info("supervisor: stopped")
}

func (s *Supervisor) reconcileLocked(readers, writers int) (spawned, cancelled int) {
	sp, ca := s.resizeLocked(&s.readers, model.RoleReader, readers)
	spawned, cancelled = spawned+sp, cancelled+ca
	sp, ca = s.resizeLocked(&s.writers, model.RoleWriter, writers)
	return spawned + sp, cancelled + ca
}

func (s *Supervisor) resizeLocked(pool *[]*managed, role model.Role, target int) (spawned, cancelled int) {
	for len(*pool) < target {
		ctx, cancel := context.WithCancel(context.Background())
		w := worker.New(role, s.ctrl, s.store, s.conf, s.gate, s.clk)
		*pool = append(*pool, &managed{worker: w, cancel: cancel})
		go w.Run(ctx)
		spawned++
		log.Debugf("supervisor: spawned %s %s", role, w.ID())
	}
	for len(*pool) > target {
		last := (*pool)[len(*pool)-1]
		*pool = (*pool)[:len(*pool)-1]
		last.cancel()
		<-last.worker.Done()
		cancelled++
		log.Debugf("supervisor: cancelled %s %s", role, last.worker.ID())
	}
	return spawned, cancelled
}
