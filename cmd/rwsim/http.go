// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"go.amzn.com/rwsim/sim/simcore"
	"go.amzn.com/rwsim/sim/simcore/standalone"
)

func startHTTPServer(ipport string, sim *simcore.Simulation) {
	srv := &http.Server{
		Addr:    ipport,
		Handler: standalone.NewHTTPRouter(sim),
	}

	log.Infof("Listening on %s", ipport)
	if err := srv.ListenAndServe(); err != nil {
		log.Panic(err)
	}
}
