// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config holds the operator-facing simulation configuration.
// Updates are validated before they are applied; a rejected update leaves
// the previous valid configuration in effect. Workers read one immutable
// snapshot per cycle, so slider changes take effect on the next iteration
// without mid-cycle races.
package config

import (
	"errors"
	"fmt"
	"time"

	"go.amzn.com/rwsim/sim/model"
)

// ErrInvalidConfiguration wraps every configuration validation failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Simulation is the full operator configuration.
type Simulation struct {
	Readers int `json:"readers"`
	Writers int `json:"writers"`

	ReadHold  time.Duration `json:"readHold"`
	WriteHold time.Duration `json:"writeHold"`
	ReadIdle  time.Duration `json:"readIdle"`
	WriteIdle time.Duration `json:"writeIdle"`

	Policy model.Policy `json:"policy"`
}

// Default returns the configuration used when the operator supplies nothing.
func Default() Simulation {
	return Simulation{
		Readers:   5,
		Writers:   3,
		ReadHold:  1 * time.Second,
		WriteHold: 2 * time.Second,
		ReadIdle:  500 * time.Millisecond,
		WriteIdle: 500 * time.Millisecond,
		Policy:    model.ReaderPriority,
	}
}

// Validate checks counts, durations and the policy name.
func (c Simulation) Validate() error {
	if c.Readers < 0 {
		return fmt.Errorf("%w: negative reader count %d", ErrInvalidConfiguration, c.Readers)
	}
	if c.Writers < 0 {
		return fmt.Errorf("%w: negative writer count %d", ErrInvalidConfiguration, c.Writers)
	}
	for name, d := range map[string]time.Duration{
		"readHold":  c.ReadHold,
		"writeHold": c.WriteHold,
		"readIdle":  c.ReadIdle,
		"writeIdle": c.WriteIdle,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: non-positive duration %s=%v", ErrInvalidConfiguration, name, d)
		}
	}
	if !c.Policy.Valid() {
		return fmt.Errorf("%w: unknown policy %q", ErrInvalidConfiguration, c.Policy)
	}
	return nil
}

// Hold returns the hold duration for the given role.
func (c Simulation) Hold(role model.Role) time.Duration {
	if role == model.RoleWriter {
		return c.WriteHold
	}
	return c.ReadHold
}

// Idle returns the idle duration for the given role.
func (c Simulation) Idle(role model.Role) time.Duration {
	if role == model.RoleWriter {
		return c.WriteIdle
	}
	return c.ReadIdle
}
