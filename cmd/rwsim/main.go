// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/rwsim/sim/config"
	"go.amzn.com/rwsim/sim/model"
	"go.amzn.com/rwsim/sim/simcore"
)

type options struct {
	LogLevel  string        `long:"log-level" default:"info" description:"log level"`
	Listen    string        `long:"listen" default:"0.0.0.0:8080" description:"control API listen address"`
	Readers   int           `long:"readers" default:"5" description:"initial reader count"`
	Writers   int           `long:"writers" default:"3" description:"initial writer count"`
	ReadHold  time.Duration `long:"read-hold" default:"1s" description:"simulated read duration"`
	WriteHold time.Duration `long:"write-hold" default:"2s" description:"simulated write duration"`
	ReadIdle  time.Duration `long:"read-idle" default:"500ms" description:"reader idle time between cycles"`
	WriteIdle time.Duration `long:"write-idle" default:"500ms" description:"writer idle time between cycles"`
	Policy    string        `long:"policy" default:"reader-priority" choice:"reader-priority" choice:"writer-priority" description:"admission policy"`
	AutoStart bool          `long:"auto-start" description:"start the simulation immediately"`
}

func main() {
	opts := getCLIArgs()
	simcore.SetLogLevel(opts.LogLevel)

	cfg := config.Simulation{
		Readers:   opts.Readers,
		Writers:   opts.Writers,
		ReadHold:  opts.ReadHold,
		WriteHold: opts.WriteHold,
		ReadIdle:  opts.ReadIdle,
		WriteIdle: opts.WriteIdle,
		Policy:    model.Policy(opts.Policy),
	}

	sim, err := simcore.NewSimulation(cfg)
	if err != nil {
		log.WithError(err).Fatal("Invalid simulation configuration")
	}

	if opts.AutoStart {
		sim.Start()
	}

	startHTTPServer(opts.Listen, sim)
}

func getCLIArgs() options {
	var opts options
	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(os.Args); err != nil {
		log.WithError(err).Fatal("Failed to parse command line arguments:", os.Args)
	}
	return opts
}
