// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"net/http"

	"github.com/go-chi/render"
)

// ConfigureHandler applies a full configuration update. Invalid
// configurations are rejected and the previous one stays in effect.
func ConfigureHandler(w http.ResponseWriter, r *http.Request, sim SimulationAPI) {
	next := sim.Config()
	if err := render.DecodeJSON(r.Body, &next); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := sim.Configure(next); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	render.JSON(w, r, sim.Config())
}
