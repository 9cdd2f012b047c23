// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"go.amzn.com/rwsim/sim/model"
)

// ResourceState is the shared-resource bookkeeping owned by the Controller.
// All mutation happens under the controller's lock.
type ResourceState struct {
	ActiveReaders  int
	ActiveWriter   bool
	WaitingReaders int
	WaitingWriters int
}

// Valid reports whether the state satisfies mutual exclusion.
func (s ResourceState) Valid() bool {
	if s.ActiveWriter && s.ActiveReaders > 0 {
		return false
	}
	return s.ActiveReaders >= 0 && s.WaitingReaders >= 0 && s.WaitingWriters >= 0
}

// Snapshot copies the state into its wire representation.
func (s ResourceState) Snapshot() model.ResourceSnapshot {
	return model.ResourceSnapshot{
		ActiveReaders:  s.ActiveReaders,
		ActiveWriter:   s.ActiveWriter,
		WaitingReaders: s.WaitingReaders,
		WaitingWriters: s.WaitingWriters,
	}
}
