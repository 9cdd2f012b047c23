// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package worker drives one simulated reader or writer through its
// request/hold/release/idle cycle until cancelled.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/rwsim/sim/config"
	"go.amzn.com/rwsim/sim/core"
	"go.amzn.com/rwsim/sim/model"
	"go.amzn.com/rwsim/sim/resource"
)

// Worker is one simulated unit of concurrent execution. The configuration
// is re-read at the top of every cycle, so operator changes apply on the
// next iteration without a restart.
type Worker struct {
	id   string
	role model.Role

	ctrl  *core.Controller
	store *resource.Store
	conf  *config.Holder
	gate  *Gate
	clk   clock.Clock

	mu   sync.Mutex
	desc model.WorkerDescriptor

	done chan struct{}
}

// New returns a worker with a fresh identifier in the Idle state.
func New(role model.Role, ctrl *core.Controller, store *resource.Store, conf *config.Holder, gate *Gate, clk clock.Clock) *Worker {
	id := uuid.NewString()
	return &Worker{
		id:    id,
		role:  role,
		ctrl:  ctrl,
		store: store,
		conf:  conf,
		gate:  gate,
		clk:   clk,
		desc: model.WorkerDescriptor{
			ID:    id,
			Role:  role,
			State: model.WorkerIdleStateName,
		},
		done: make(chan struct{}),
	}
}

// ID returns the worker identifier.
func (w *Worker) ID() string {
	return w.id
}

// Role returns the worker role.
func (w *Worker) Role() model.Role {
	return w.role
}

// Describe returns a copy of the worker descriptor.
func (w *Worker) Describe() model.WorkerDescriptor {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.desc
}

// Done is closed when the worker has reached Stopped.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Run executes the worker loop until ctx is cancelled. It is meant to be
// called on its own goroutine by the supervisor.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)
	defer w.setState(model.WorkerStoppedStateName)

	for {
		if ctx.Err() != nil {
			return
		}

		// One config snapshot per iteration, never mid-cycle.
		cfg := w.conf.Snapshot()
		w.setDurations(cfg.Hold(w.role), cfg.Idle(w.role))

		if err := w.gate.Await(ctx); err != nil {
			return
		}

		w.setState(model.WorkerWaitingStateName)
		if err := w.acquire(ctx); err != nil {
			// Cancellation during a wait is a normal, silent stop.
			return
		}

		w.setState(model.WorkerActiveStateName)
		w.access()
		if err := w.sleep(ctx, cfg.Hold(w.role)); err != nil {
			// Cancelled mid-hold: release before stopping so the
			// resource state stays consistent.
			w.release()
			return
		}
		w.release()

		w.setState(model.WorkerIdleStateName)
		if err := w.sleep(ctx, cfg.Idle(w.role)); err != nil {
			return
		}
	}
}

func (w *Worker) acquire(ctx context.Context) error {
	if w.role == model.RoleWriter {
		return w.ctrl.AcquireWrite(ctx, w.id)
	}
	return w.ctrl.AcquireRead(ctx, w.id)
}

func (w *Worker) release() {
	if w.role == model.RoleWriter {
		w.ctrl.ReleaseWrite(w.id)
		return
	}
	w.ctrl.ReleaseRead(w.id)
}

func (w *Worker) access() {
	if w.role == model.RoleWriter {
		n := w.store.Write(fmt.Sprintf("data written by %s at %s", w.id, w.clk.Now().Format(time.RFC3339Nano)))
		log.Debugf("worker %s: write access #%d", w.id, n)
		return
	}
	_, n := w.store.Read()
	log.Debugf("worker %s: read access #%d", w.id, n)
}

// sleep blocks for d outside the controller lock so it never delays other
// workers' admission checks.
func (w *Worker) sleep(ctx context.Context, d time.Duration) error {
	t := w.clk.Timer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) setState(state model.WorkerState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.desc.State = state
}

func (w *Worker) setDurations(hold, idle time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.desc.HoldDuration = hold
	w.desc.IdleDuration = idle
}
