// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"net/http"

	"github.com/go-chi/render"
)

// StatsHandler serves the aggregate counters as JSON.
func StatsHandler(w http.ResponseWriter, r *http.Request, sim SimulationAPI) {
	render.JSON(w, r, sim.Stats())
}
