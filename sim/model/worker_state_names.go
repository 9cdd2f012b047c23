// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

// WorkerState is the lifecycle state of a simulated worker.
type WorkerState string

// String values of possible worker states
const (
	// WorkerIdleStateName: between cycles, not requesting access.
	WorkerIdleStateName WorkerState = "Idle"
	// WorkerWaitingStateName: blocked inside an acquire call.
	WorkerWaitingStateName WorkerState = "Waiting"
	// WorkerActiveStateName: admitted, holding the resource.
	WorkerActiveStateName WorkerState = "Active"
	// WorkerStoppedStateName: cancelled, terminal.
	WorkerStoppedStateName WorkerState = "Stopped"
)
