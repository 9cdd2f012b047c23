// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package eventbus

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.amzn.com/rwsim/sim/model"
)

func publishN(b *Bus, n int) {
	for i := 0; i < n; i++ {
		b.Publish(model.Event{WorkerID: strconv.Itoa(i), Kind: model.KindGranted})
	}
}

func collect(sub *Subscription) []model.Event {
	var events []model.Event
	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestBroadcastToAllSubscribersInOrder(t *testing.T) {
	b := NewBus()
	first := b.Subscribe(16)
	second := b.Subscribe(16)

	publishN(b, 10)

	for _, sub := range []*Subscription{first, second} {
		events := collect(sub)
		require.Len(t, events, 10)
		for i, ev := range events {
			assert.Equal(t, strconv.Itoa(i), ev.WorkerID)
		}
	}
}

func TestOverflowDropsOldest(t *testing.T) {
	b := NewBus()
	sub := b.Subscribe(2)

	publishN(b, 5)

	events := collect(sub)
	require.Len(t, events, 2)
	// The newest event always survives an overflow.
	assert.Equal(t, "4", events[len(events)-1].WorkerID)
}

func TestSlowSubscriberDoesNotStallOthers(t *testing.T) {
	b := NewBus()
	slow := b.Subscribe(1)
	fast := b.Subscribe(64)

	publishN(b, 20)

	assert.Len(t, collect(fast), 20)
	assert.Len(t, collect(slow), 1)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()
	sub := b.Subscribe(16)
	sub.Close()

	publishN(b, 3)

	_, ok := <-sub.Events()
	assert.False(t, ok)
}

func TestCloseTerminatesSubscribers(t *testing.T) {
	b := NewBus()
	sub := b.Subscribe(16)
	b.Close()

	_, ok := <-sub.Events()
	assert.False(t, ok)

	// Publishing after close is a no-op, not a panic.
	publishN(b, 1)

	// Subscribing after close yields a closed channel.
	late := b.Subscribe(16)
	_, ok = <-late.Events()
	assert.False(t, ok)
}
