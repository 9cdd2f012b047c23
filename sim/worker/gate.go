// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package worker

import (
	"context"
	"sync"
)

// Gate suspends workers while the simulation is paused. A paused worker
// finishes its current hold/idle step and then blocks in Await before its
// next acquire attempt; resources are never released mid-hold.
type Gate struct {
	cond   *sync.Cond
	paused bool
}

// NewGate returns an open gate.
func NewGate() *Gate {
	return &Gate{cond: sync.NewCond(&sync.Mutex{})}
}

// Pause closes the gate. Idempotent.
func (g *Gate) Pause() {
	g.cond.L.Lock()
	defer g.cond.L.Unlock()
	g.paused = true
}

// Resume opens the gate and wakes every blocked worker. Idempotent.
func (g *Gate) Resume() {
	g.cond.L.Lock()
	defer g.cond.L.Unlock()
	g.paused = false
	g.cond.Broadcast()
}

// Paused reports whether the gate is currently closed.
func (g *Gate) Paused() bool {
	g.cond.L.Lock()
	defer g.cond.L.Unlock()
	return g.paused
}

// Await blocks while the gate is paused. It returns ctx.Err() if ctx is
// cancelled, waking immediately rather than waiting for a resume.
func (g *Gate) Await(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		g.cond.L.Lock()
		g.cond.Broadcast()
		g.cond.L.Unlock()
	})
	defer stop()

	g.cond.L.Lock()
	defer g.cond.L.Unlock()
	for g.paused {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.cond.Wait()
	}
	return ctx.Err()
}
