// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"time"
)

// WorkerDescriptor describes one simulated worker for state reporting.
// Created by the supervisor on spawn, mutated by the worker as it transitions.
type WorkerDescriptor struct {
	ID           string        `json:"id"`
	Role         Role          `json:"role"`
	State        WorkerState   `json:"state"`
	HoldDuration time.Duration `json:"holdDuration"`
	IdleDuration time.Duration `json:"idleDuration"`
}

// StatsSnapshot is the read-only aggregate rebuilt from the event stream.
type StatsSnapshot struct {
	ActiveReaders   int `json:"activeReaders"`
	ActiveWriters   int `json:"activeWriters"`
	WaitingReaders  int `json:"waitingReaders"`
	WaitingWriters  int `json:"waitingWriters"`
	CompletedReads  int `json:"completedReads"`
	CompletedWrites int `json:"completedWrites"`
	Conflicts       int `json:"conflicts"`
}

// CompletedOperations is the total of finished read and write holds.
func (s StatsSnapshot) CompletedOperations() int {
	return s.CompletedReads + s.CompletedWrites
}

// InternalStateDescription is the full simulation state exposed for debugging.
type InternalStateDescription struct {
	Resource ResourceSnapshot   `json:"resource"`
	Workers  []WorkerDescriptor `json:"workers"`
	Policy   Policy             `json:"policy"`
	Running  bool               `json:"running"`
	Paused   bool               `json:"paused"`
}

// StoreStatus describes the simulated datastore contents.
type StoreStatus struct {
	DataPreview string `json:"dataPreview"`
	Accesses    int    `json:"accesses"`
	DataLength  int    `json:"dataLength"`
}
