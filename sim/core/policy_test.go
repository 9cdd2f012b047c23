// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.amzn.com/rwsim/sim/model"
)

func TestCanAdmitReader(t *testing.T) {
	tests := []struct {
		name     string
		policy   model.Policy
		state    ResourceState
		admitted bool
	}{
		{"idle resource", model.ReaderPriority, ResourceState{}, true},
		{"other readers active", model.ReaderPriority, ResourceState{ActiveReaders: 3}, true},
		{"writer active", model.ReaderPriority, ResourceState{ActiveWriter: true}, false},
		{"reader priority ignores waiting writers", model.ReaderPriority, ResourceState{ActiveReaders: 1, WaitingWriters: 4}, true},
		{"writer priority defers to waiting writers", model.WriterPriority, ResourceState{ActiveReaders: 1, WaitingWriters: 1}, false},
		{"writer priority with no writers around", model.WriterPriority, ResourceState{ActiveReaders: 2}, true},
		{"writer priority with writer active", model.WriterPriority, ResourceState{ActiveWriter: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.admitted, CanAdmitReader(tt.policy, tt.state))
		})
	}
}

func TestCanAdmitWriter(t *testing.T) {
	assert.True(t, CanAdmitWriter(ResourceState{}))
	assert.True(t, CanAdmitWriter(ResourceState{WaitingReaders: 5, WaitingWriters: 2}))
	assert.False(t, CanAdmitWriter(ResourceState{ActiveReaders: 1}))
	assert.False(t, CanAdmitWriter(ResourceState{ActiveWriter: true}))
}

func TestResourceStateValid(t *testing.T) {
	assert.True(t, ResourceState{}.Valid())
	assert.True(t, ResourceState{ActiveReaders: 4}.Valid())
	assert.True(t, ResourceState{ActiveWriter: true}.Valid())
	assert.False(t, ResourceState{ActiveWriter: true, ActiveReaders: 1}.Valid())
	assert.False(t, ResourceState{ActiveReaders: -1}.Valid())
}
