// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package stats folds the event stream into aggregate counters. The
// aggregator is a pure consumer: it never pushes state back into the
// controller.
package stats

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"go.amzn.com/rwsim/sim/eventbus"
	"go.amzn.com/rwsim/sim/model"
)

// Waiting counts on both sides above this threshold suggest the operator has
// configured the simulation into heavy contention.
const starvationThreshold = 5

// Aggregator consumes the bus on its own goroutine and exposes an immutable
// snapshot on demand.
type Aggregator struct {
	sub  *eventbus.Subscription
	done chan struct{}

	mu     sync.Mutex
	snap   model.StatsSnapshot
	warned bool
}

// NewAggregator subscribes to bus and starts folding.
func NewAggregator(bus *eventbus.Bus) *Aggregator {
	a := &Aggregator{
		sub:  bus.Subscribe(256),
		done: make(chan struct{}),
	}
	go a.run()
	return a
}

// Snapshot returns a copy of the current counters.
func (a *Aggregator) Snapshot() model.StatsSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snap
}

// Close detaches from the bus and stops the fold goroutine.
func (a *Aggregator) Close() {
	a.sub.Close()
	<-a.done
}

func (a *Aggregator) run() {
	defer close(a.done)
	for ev := range a.sub.Events() {
		a.apply(ev)
	}
}

func (a *Aggregator) apply(ev model.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Events are emitted under the controller lock in transition order, so
	// the snapshot on the newest event is the authoritative live state.
	// Deriving counts from it instead of folding deltas keeps them exact
	// across cancellations, which produce Abandoned rather than Granted.
	a.snap.ActiveReaders = ev.Resource.ActiveReaders
	a.snap.ActiveWriters = 0
	if ev.Resource.ActiveWriter {
		a.snap.ActiveWriters = 1
	}
	a.snap.WaitingReaders = ev.Resource.WaitingReaders
	a.snap.WaitingWriters = ev.Resource.WaitingWriters

	switch ev.Kind {
	case model.KindReleased:
		if ev.Role == model.RoleWriter {
			a.snap.CompletedWrites++
		} else {
			a.snap.CompletedReads++
		}
	case model.KindConflictDetected:
		a.snap.Conflicts++
	}

	a.checkPressureLocked()
}

// checkPressureLocked logs once per episode when both roles queue deeply,
// the sign of an operator-induced contention storm.
func (a *Aggregator) checkPressureLocked() {
	pressured := a.snap.WaitingReaders > starvationThreshold && a.snap.WaitingWriters > starvationThreshold
	if pressured && !a.warned {
		a.warned = true
		log.Warnf("stats: %d readers and %d writers waiting, possible starvation",
			a.snap.WaitingReaders, a.snap.WaitingWriters)
	}
	if !pressured {
		a.warned = false
	}
}
