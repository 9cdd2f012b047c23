// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"sync"
)

// Holder hands out immutable configuration snapshots and applies validated
// updates atomically. It is safe for concurrent use by workers and the
// control surface.
type Holder struct {
	mu      sync.RWMutex
	current Simulation
}

// NewHolder validates initial and returns a holder seeded with it.
func NewHolder(initial Simulation) (*Holder, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	return &Holder{current: initial}, nil
}

// Snapshot returns the current configuration by value.
func (h *Holder) Snapshot() Simulation {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Update replaces the configuration with next if it validates. On error the
// previous configuration remains in effect.
func (h *Holder) Update(next Simulation) error {
	if err := next.Validate(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = next
	return nil
}

// SetCounts updates only the reader/writer targets, keeping everything else.
func (h *Holder) SetCounts(readers, writers int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	next := h.current
	next.Readers = readers
	next.Writers = writers
	if err := next.Validate(); err != nil {
		return err
	}
	h.current = next
	return nil
}
