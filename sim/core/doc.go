// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package core implements the admission controller for the readers-writers
simulation.

# Resource state

ResourceState is the only mutable state shared across workers. It is owned by
the Controller and mutated exclusively while holding the controller's lock.
The core invariant:

	not (activeWriter and activeReaders > 0)

and at most one writer is active at any time.

# Admission

Workers block inside AcquireRead/AcquireWrite on a condition variable until
the selected policy admits them (classic monitor wait/notify, not a busy
spin). Every release broadcasts so waiters re-check their conditions.

Within one role, admission is FIFO by arrival order: each waiter takes a
ticket and only the head ticket of its role's queue may be admitted. Across
roles, ordering is governed entirely by the policy.

# Policies

Reader-priority: a reader enters whenever no writer is active, regardless of
waiting writers. Writers can starve; that is the documented behavior of the
policy, not a bug.

Writer-priority: a reader enters only when no writer is active and no writer
is waiting. Readers can starve under sustained writer arrival; also
documented behavior.

The decision functions are pure over (Policy, ResourceState), so they are
unit-testable without spinning goroutines.
*/
package core
