// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package simcore

import (
	"sync"

	"go.amzn.com/rwsim/sim/eventbus"
	"go.amzn.com/rwsim/sim/model"
)

const defaultEventLogCapacity = 512

// EventLog keeps the bounded tail of the event stream so the control API can
// serve it without replaying the whole run.
type EventLog struct {
	sub  *eventbus.Subscription
	done chan struct{}

	mu     sync.Mutex
	ring   []model.Event
	next   int
	filled bool
}

// NewEventLog subscribes to bus and retains the last capacity events.
func NewEventLog(bus *eventbus.Bus, capacity int) *EventLog {
	if capacity <= 0 {
		capacity = defaultEventLogCapacity
	}
	l := &EventLog{
		sub:  bus.Subscribe(capacity),
		done: make(chan struct{}),
		ring: make([]model.Event, capacity),
	}
	go l.run()
	return l
}

// Recent returns the retained events in emission order.
func (l *EventLog) Recent() []model.Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.filled {
		out := make([]model.Event, l.next)
		copy(out, l.ring[:l.next])
		return out
	}
	out := make([]model.Event, 0, len(l.ring))
	out = append(out, l.ring[l.next:]...)
	out = append(out, l.ring[:l.next]...)
	return out
}

// Close detaches from the bus.
func (l *EventLog) Close() {
	l.sub.Close()
	<-l.done
}

func (l *EventLog) run() {
	defer close(l.done)
	for ev := range l.sub.Events() {
		l.mu.Lock()
		l.ring[l.next] = ev
		l.next++
		if l.next == len(l.ring) {
			l.next = 0
			l.filled = true
		}
		l.mu.Unlock()
	}
}
