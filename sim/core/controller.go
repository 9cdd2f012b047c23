// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.amzn.com/rwsim/sim/eventbus"
	"go.amzn.com/rwsim/sim/model"
)

// Controller is the single owner of the shared-resource state. Workers call
// the blocking Acquire/Release operations; every state transition is
// published to the event bus while the controller lock is held, so the
// stream order matches the transition order.
type Controller struct {
	policy model.Policy
	bus    *eventbus.Bus

	cond  *sync.Cond
	state ResourceState

	// FIFO tickets per role. A waiter may only be admitted while it holds
	// the head ticket of its role's queue.
	readQueue  []uint64
	writeQueue []uint64
	nextTicket uint64
}

// NewController returns a controller for the given policy, publishing state
// transitions to bus.
func NewController(policy model.Policy, bus *eventbus.Bus) *Controller {
	return &Controller{
		policy: policy,
		bus:    bus,
		cond:   sync.NewCond(&sync.Mutex{}),
	}
}

// Policy returns the admission policy selected at construction.
func (c *Controller) Policy() model.Policy {
	return c.policy
}

// State returns a copy of the current resource counters.
func (c *Controller) State() model.ResourceSnapshot {
	c.cond.L.Lock()
	defer c.cond.L.Unlock()
	return c.state.Snapshot()
}

// AcquireRead blocks the calling reader until the policy admits it, then
// counts it active and emits Granted. If ctx is cancelled while waiting the
// reader is removed from the wait queue without ever having been counted
// active, and ctx.Err() is returned.
func (c *Controller) AcquireRead(ctx context.Context, workerID string) error {
	stop := context.AfterFunc(ctx, c.wakeAll)
	defer stop()

	c.cond.L.Lock()
	defer c.cond.L.Unlock()

	ticket := c.enqueue(&c.readQueue)
	c.state.WaitingReaders++
	c.emitLocked(workerID, model.RoleReader, model.KindRequestEnter)

	for !headOf(c.readQueue, ticket) || !CanAdmitReader(c.policy, c.state) {
		if err := ctx.Err(); err != nil {
			c.abandonRead(workerID, ticket)
			return err
		}
		c.cond.Wait()
	}
	if err := ctx.Err(); err != nil {
		c.abandonRead(workerID, ticket)
		return err
	}

	c.remove(&c.readQueue, ticket)
	c.state.WaitingReaders--
	c.state.ActiveReaders++
	c.selfCheckLocked(workerID, model.RoleReader)
	c.emitLocked(workerID, model.RoleReader, model.KindGranted)
	// The next queued reader may be admissible too.
	c.cond.Broadcast()
	return nil
}

// ReleaseRead counts the reader out and wakes waiters for re-evaluation.
// Releasing without a matching grant is a logic bug and is reported as a
// conflict instead of corrupting the counters.
func (c *Controller) ReleaseRead(workerID string) {
	c.cond.L.Lock()
	defer c.cond.L.Unlock()

	if c.state.ActiveReaders <= 0 {
		c.conflictLocked(workerID, model.RoleReader, "release without active read")
		return
	}
	c.state.ActiveReaders--
	c.emitLocked(workerID, model.RoleReader, model.KindReleased)
	c.cond.Broadcast()
}

// AcquireWrite blocks the calling writer until it can hold the resource
// exclusively, then marks it active and emits Granted. Cancellation behaves
// as for AcquireRead.
func (c *Controller) AcquireWrite(ctx context.Context, workerID string) error {
	stop := context.AfterFunc(ctx, c.wakeAll)
	defer stop()

	c.cond.L.Lock()
	defer c.cond.L.Unlock()

	ticket := c.enqueue(&c.writeQueue)
	c.state.WaitingWriters++
	c.emitLocked(workerID, model.RoleWriter, model.KindRequestEnter)

	for !headOf(c.writeQueue, ticket) || !CanAdmitWriter(c.state) {
		if err := ctx.Err(); err != nil {
			c.abandonWrite(workerID, ticket)
			return err
		}
		c.cond.Wait()
	}
	if err := ctx.Err(); err != nil {
		c.abandonWrite(workerID, ticket)
		return err
	}

	c.remove(&c.writeQueue, ticket)
	c.state.WaitingWriters--
	c.state.ActiveWriter = true
	c.selfCheckLocked(workerID, model.RoleWriter)
	c.emitLocked(workerID, model.RoleWriter, model.KindGranted)
	return nil
}

// ReleaseWrite gives up exclusive access and wakes all waiters.
func (c *Controller) ReleaseWrite(workerID string) {
	c.cond.L.Lock()
	defer c.cond.L.Unlock()

	if !c.state.ActiveWriter {
		c.conflictLocked(workerID, model.RoleWriter, "release without active write")
		return
	}
	c.state.ActiveWriter = false
	c.emitLocked(workerID, model.RoleWriter, model.KindReleased)
	c.cond.Broadcast()
}

// Reset zeroes the resource state and clears the wait queues. The supervisor
// calls this only after every worker has reached Stopped.
func (c *Controller) Reset() {
	c.cond.L.Lock()
	defer c.cond.L.Unlock()

	if len(c.readQueue) > 0 || len(c.writeQueue) > 0 {
		log.Warnf("controller: reset with %d readers and %d writers still queued",
			len(c.readQueue), len(c.writeQueue))
	}
	c.state = ResourceState{}
	c.readQueue = nil
	c.writeQueue = nil
	c.cond.Broadcast()
}

func (c *Controller) wakeAll() {
	c.cond.L.Lock()
	c.cond.Broadcast()
	c.cond.L.Unlock()
}

func headOf(queue []uint64, ticket uint64) bool {
	return len(queue) > 0 && queue[0] == ticket
}

func (c *Controller) enqueue(queue *[]uint64) uint64 {
	ticket := c.nextTicket
	c.nextTicket++
	*queue = append(*queue, ticket)
	return ticket
}

func (c *Controller) remove(queue *[]uint64, ticket uint64) {
	for i, t := range *queue {
		if t == ticket {
			*queue = append((*queue)[:i], (*queue)[i+1:]...)
			return
		}
	}
}

// abandonRead backs a cancelled reader out of the wait queue. The reader was
// never counted active, so only the waiting count changes. The Abandoned
// event tells stream consumers the waiter is gone; without it their waiting
// counts would drift after every cancellation. Waiters are woken because
// removing a queue head can make the next waiter admissible.
func (c *Controller) abandonRead(workerID string, ticket uint64) {
	c.remove(&c.readQueue, ticket)
	c.state.WaitingReaders--
	c.emitLocked(workerID, model.RoleReader, model.KindAbandoned)
	c.cond.Broadcast()
}

// abandonWrite backs a cancelled writer out. Under writer priority, removing
// the last waiting writer also unblocks queued readers.
func (c *Controller) abandonWrite(workerID string, ticket uint64) {
	c.remove(&c.writeQueue, ticket)
	c.state.WaitingWriters--
	c.emitLocked(workerID, model.RoleWriter, model.KindAbandoned)
	c.cond.Broadcast()
}

func (c *Controller) selfCheckLocked(workerID string, role model.Role) {
	if !c.state.Valid() {
		c.conflictLocked(workerID, role, "mutual exclusion violated")
	}
}

func (c *Controller) conflictLocked(workerID string, role model.Role, reason string) {
	log.Errorf("controller: conflict detected (%s) worker=%s role=%s state=%+v",
		reason, workerID, role, c.state)
	c.emitLocked(workerID, role, model.KindConflictDetected)
}

func (c *Controller) emitLocked(workerID string, role model.Role, kind model.EventKind) {
	c.bus.Publish(model.Event{
		Time:     time.Now(),
		WorkerID: workerID,
		Role:     role,
		Kind:     kind,
		Resource: c.state.Snapshot(),
	})
}
