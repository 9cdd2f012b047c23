// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"go.amzn.com/rwsim/sim/model"
)

// CanAdmitReader decides whether the head waiting reader may enter under the
// given policy. Pure over its inputs.
func CanAdmitReader(policy model.Policy, s ResourceState) bool {
	if s.ActiveWriter {
		return false
	}
	if policy == model.WriterPriority && s.WaitingWriters > 0 {
		return false
	}
	return true
}

// CanAdmitWriter decides whether the head waiting writer may enter. The rule
// is the same under both policies: exclusive access only.
func CanAdmitWriter(s ResourceState) bool {
	return !s.ActiveWriter && s.ActiveReaders == 0
}
