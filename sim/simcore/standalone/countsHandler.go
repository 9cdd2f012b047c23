// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"net/http"

	"github.com/go-chi/render"
)

type countsRequest struct {
	Readers int `json:"readers"`
	Writers int `json:"writers"`
}

type countsResponse struct {
	Spawned   int `json:"spawned"`
	Cancelled int `json:"cancelled"`
}

// CountsHandler reconciles the worker pool to the requested sizes.
func CountsHandler(w http.ResponseWriter, r *http.Request, sim SimulationAPI) {
	var req countsRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	spawned, cancelled, err := sim.SetCounts(req.Readers, req.Writers)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	render.JSON(w, r, countsResponse{Spawned: spawned, Cancelled: cancelled})
}
