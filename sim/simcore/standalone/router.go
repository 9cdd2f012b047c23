// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package standalone exposes the simulation command surface over HTTP for
// harnesses and renderers. It is the external-collaborator boundary: no
// synchronization logic lives here.
package standalone

import (
	"net/http"

	"github.com/go-chi/chi"

	"go.amzn.com/rwsim/sim/config"
	"go.amzn.com/rwsim/sim/model"
)

// SimulationAPI is the surface the handlers need from the simulation core.
type SimulationAPI interface {
	Start()
	Pause()
	Resume()
	Stop()
	Reset()
	SetCounts(readers, writers int) (spawned, cancelled int, err error)
	Configure(next config.Simulation) error
	Config() config.Simulation
	Stats() model.StatsSnapshot
	InternalState() model.InternalStateDescription
	StoreStatus() model.StoreStatus
	RecentEvents() []model.Event
}

// NewHTTPRouter routes the standalone control API.
func NewHTTPRouter(sim SimulationAPI) *chi.Mux {
	r := chi.NewRouter()
	r.Use(standaloneAccessLogDecorator)

	r.Get("/test/ping", PingHandler)
	r.Post("/test/start", func(w http.ResponseWriter, r *http.Request) { CommandHandler(w, r, sim.Start) })
	r.Post("/test/pause", func(w http.ResponseWriter, r *http.Request) { CommandHandler(w, r, sim.Pause) })
	r.Post("/test/resume", func(w http.ResponseWriter, r *http.Request) { CommandHandler(w, r, sim.Resume) })
	r.Post("/test/stop", func(w http.ResponseWriter, r *http.Request) { CommandHandler(w, r, sim.Stop) })
	r.Post("/test/reset", func(w http.ResponseWriter, r *http.Request) { CommandHandler(w, r, sim.Reset) })
	r.Post("/test/counts", func(w http.ResponseWriter, r *http.Request) { CountsHandler(w, r, sim) })
	r.Post("/test/configure", func(w http.ResponseWriter, r *http.Request) { ConfigureHandler(w, r, sim) })
	r.Get("/test/internalState", func(w http.ResponseWriter, r *http.Request) { InternalStateHandler(w, r, sim) })
	r.Get("/test/stats", func(w http.ResponseWriter, r *http.Request) { StatsHandler(w, r, sim) })
	r.Get("/test/eventLog", func(w http.ResponseWriter, r *http.Request) { EventLogHandler(w, r, sim) })
	return r
}
