// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"time"
)

// Role identifies which side of the readers-writers problem a worker plays.
type Role string

const (
	// RoleReader workers share the resource with other readers.
	RoleReader Role = "reader"
	// RoleWriter workers require exclusive access to the resource.
	RoleWriter Role = "writer"
)

// EventKind identifies a state transition reported by the admission controller.
type EventKind string

const (
	// KindRequestEnter is emitted when a worker starts waiting for admission.
	KindRequestEnter EventKind = "RequestEnter"
	// KindGranted is emitted when a worker is admitted into the resource.
	KindGranted EventKind = "Granted"
	// KindReleased is emitted when a worker leaves the resource.
	KindReleased EventKind = "Released"
	// KindAbandoned is emitted when a waiting worker is cancelled and backed
	// out of the wait queue without ever having been admitted.
	KindAbandoned EventKind = "Abandoned"
	// KindConflictDetected is emitted when the controller observes a state
	// that violates mutual exclusion. It never fires under correct locking.
	KindConflictDetected EventKind = "ConflictDetected"
)

// ResourceSnapshot is a copy of the controller counters taken at emission time.
type ResourceSnapshot struct {
	ActiveReaders  int  `json:"activeReaders"`
	ActiveWriter   bool `json:"activeWriter"`
	WaitingReaders int  `json:"waitingReaders"`
	WaitingWriters int  `json:"waitingWriters"`
}

// Event is an immutable state-change record broadcast to all subscribers.
type Event struct {
	Time     time.Time        `json:"time"`
	WorkerID string           `json:"workerId"`
	Role     Role             `json:"role"`
	Kind     EventKind        `json:"kind"`
	Resource ResourceSnapshot `json:"resource"`
}

// Policy selects the admission rule set. Fixed at controller construction.
type Policy string

const (
	// ReaderPriority admits readers whenever no writer is active. Writers can
	// starve under sustained reader arrival; that is the documented behavior.
	ReaderPriority Policy = "reader-priority"
	// WriterPriority queues new readers behind any waiting writer. Readers can
	// starve under sustained writer arrival; also documented behavior.
	WriterPriority Policy = "writer-priority"
)

// Valid reports whether p names a known policy.
func (p Policy) Valid() bool {
	return p == ReaderPriority || p == WriterPriority
}
