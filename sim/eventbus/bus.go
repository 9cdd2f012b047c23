// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package eventbus provides the ordered broadcast channel that carries
// admission state changes from the controller to its consumers. Every
// subscriber sees every event in emission order; subscribers never compete
// for events.
package eventbus

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"go.amzn.com/rwsim/sim/model"
)

const defaultSubscriberBuffer = 64

// Subscription is one subscriber's private, ordered view of the event stream.
type Subscription struct {
	bus     *Bus
	out     chan model.Event
	dropped int
}

// Events returns the channel events are delivered on. The channel is closed
// when the subscription is closed or the bus shuts down.
func (s *Subscription) Events() <-chan model.Event {
	return s.out
}

// Close detaches the subscription from the bus and closes its channel.
func (s *Subscription) Close() {
	s.bus.removeSub(s)
}

// Bus is a broadcast event bus. Publish never blocks: when a subscriber's
// buffer is full the oldest buffered event is dropped to make room, so a slow
// consumer can stall only its own view of the stream.
type Bus struct {
	mu     sync.Mutex
	subs   []*Subscription
	closed bool
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a new subscriber with the given buffer size.
// A non-positive buffer selects the default.
func (b *Bus) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	sub := &Subscription{
		bus: b,
		out: make(chan model.Event, buffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(sub.out)
		return sub
	}
	b.subs = append(b.subs, sub)
	return sub
}

// Publish delivers ev to every live subscriber. The controller publishes
// under its own lock, which serializes emissions and fixes the stream order.
func (b *Bus) Publish(ev model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	for _, sub := range b.subs {
		select {
		case sub.out <- ev:
		default:
			// Buffer full: evict the oldest event, then retry once. The
			// second send can only fail if the consumer drained the channel
			// in between, in which case it succeeds on the fast path anyway.
			select {
			case <-sub.out:
			default:
			}
			select {
			case sub.out <- ev:
			default:
			}
			sub.dropped++
			if sub.dropped%100 == 1 {
				log.Warnf("eventbus: slow consumer, %d events dropped", sub.dropped)
			}
		}
	}
}

// Close shuts the bus down and closes every subscriber channel.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, sub := range b.subs {
		close(sub.out)
	}
	b.subs = nil
}

func (b *Bus) removeSub(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(sub.out)
			return
		}
	}
}
