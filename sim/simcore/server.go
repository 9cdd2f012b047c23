// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package simcore wires the admission controller, event bus, worker pool and
// statistics into one simulation and exposes the operator command surface.
package simcore

import (
	"fmt"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/rwsim/sim/config"
	"go.amzn.com/rwsim/sim/core"
	"go.amzn.com/rwsim/sim/eventbus"
	"go.amzn.com/rwsim/sim/model"
	"go.amzn.com/rwsim/sim/resource"
	"go.amzn.com/rwsim/sim/stats"
	"go.amzn.com/rwsim/sim/supervisor"
	"go.amzn.com/rwsim/sim/worker"
)

const initialStoreContent = "initial datastore content"

// Simulation is the assembled readers-writers simulation.
type Simulation struct {
	bus    *eventbus.Bus
	ctrl   *core.Controller
	store  *resource.Store
	conf   *config.Holder
	sup    *supervisor.Supervisor
	stats  *stats.Aggregator
	events *EventLog
}

// NewSimulation validates cfg and builds a stopped simulation. The admission
// policy is fixed here; later reconfiguration may change counts and
// durations but not the policy.
func NewSimulation(cfg config.Simulation) (*Simulation, error) {
	return newSimulation(cfg, clock.New())
}

func newSimulation(cfg config.Simulation, clk clock.Clock) (*Simulation, error) {
	conf, err := config.NewHolder(cfg)
	if err != nil {
		return nil, err
	}

	bus := eventbus.NewBus()
	ctrl := core.NewController(cfg.Policy, bus)
	store := resource.NewStore(initialStoreContent)
	gate := worker.NewGate()
	sup := supervisor.New(ctrl, store, conf, gate, clk)

	return &Simulation{
		bus:    bus,
		ctrl:   ctrl,
		store:  store,
		conf:   conf,
		sup:    sup,
		stats:  stats.NewAggregator(bus),
		events: NewEventLog(bus, defaultEventLogCapacity),
	}, nil
}

// Bus exposes the event stream for external renderers.
func (s *Simulation) Bus() *eventbus.Bus {
	return s.bus
}

// Start begins (or resumes) the simulation.
func (s *Simulation) Start() {
	s.sup.Start()
}

// Pause suspends workers before their next acquire attempt.
func (s *Simulation) Pause() {
	s.sup.Pause()
}

// Resume reopens the pause gate.
func (s *Simulation) Resume() {
	s.sup.Resume()
}

// Stop cancels all workers and zeroes the resource state.
func (s *Simulation) Stop() {
	s.sup.Stop()
}

// Reset stops and re-spawns workers to the last requested counts.
func (s *Simulation) Reset() {
	s.sup.Reset()
}

// SetCounts reconciles the worker pool to the requested sizes.
func (s *Simulation) SetCounts(readers, writers int) (spawned, cancelled int, err error) {
	return s.sup.SetCounts(readers, writers)
}

// Configure applies a validated configuration update. The policy cannot be
// changed after construction.
func (s *Simulation) Configure(next config.Simulation) error {
	if next.Policy != s.ctrl.Policy() {
		return fmt.Errorf("%w: policy is fixed at construction", config.ErrInvalidConfiguration)
	}
	prev := s.conf.Snapshot()
	if err := s.conf.Update(next); err != nil {
		return err
	}
	if next.Readers != prev.Readers || next.Writers != prev.Writers {
		if _, _, err := s.sup.SetCounts(next.Readers, next.Writers); err != nil {
			return err
		}
	}
	return nil
}

// Config returns the current configuration snapshot.
func (s *Simulation) Config() config.Simulation {
	return s.conf.Snapshot()
}

// Stats returns the aggregate counters derived from the event stream.
func (s *Simulation) Stats() model.StatsSnapshot {
	return s.stats.Snapshot()
}

// RecentEvents returns the bounded tail of the event stream.
func (s *Simulation) RecentEvents() []model.Event {
	return s.events.Recent()
}

// InternalState returns the full simulation state for debugging.
func (s *Simulation) InternalState() model.InternalStateDescription {
	return model.InternalStateDescription{
		Resource: s.ctrl.State(),
		Workers:  s.sup.Workers(),
		Policy:   s.ctrl.Policy(),
		Running:  s.sup.Running(),
		Paused:   s.sup.Paused(),
	}
}

// StoreStatus describes the simulated datastore.
func (s *Simulation) StoreStatus() model.StoreStatus {
	return s.store.Status()
}

// Shutdown stops the workers and tears down the consumers and the bus.
func (s *Simulation) Shutdown() {
	s.sup.Stop()
	s.bus.Close()
	s.stats.Close()
	s.events.Close()
}

// SetLogLevel configures the process-wide log level.
func SetLogLevel(logLevel string) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.WithError(err).Fatal("Failed to set log level. Valid log levels are:", log.AllLevels)
	}
	log.SetLevel(level)
}
