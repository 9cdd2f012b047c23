// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resource simulates the shared datastore the workers operate on.
// Admission is the controller's job; the store only guards its own payload
// so concurrent readers can copy it safely.
package resource

import (
	"fmt"
	"sync"

	"go.amzn.com/rwsim/sim/model"
)

const previewLength = 50

// Store is the simulated shared datastore.
type Store struct {
	mu       sync.Mutex
	data     string
	accesses int
}

// NewStore returns a store seeded with initial content.
func NewStore(initial string) *Store {
	return &Store{data: initial}
}

// Read returns the current content and the access sequence number.
func (s *Store) Read() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accesses++
	return s.data, s.accesses
}

// Write replaces the content and returns the access sequence number.
func (s *Store) Write(data string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.accesses++
	return s.accesses
}

// Status describes the store for state reporting.
func (s *Store) Status() model.StoreStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	preview := s.data
	if len(preview) > previewLength {
		preview = fmt.Sprintf("%s...", preview[:previewLength])
	}
	return model.StoreStatus{
		DataPreview: preview,
		Accesses:    s.accesses,
		DataLength:  len(s.data),
	}
}
