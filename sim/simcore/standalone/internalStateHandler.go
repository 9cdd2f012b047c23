// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"net/http"

	"github.com/go-chi/render"

	"go.amzn.com/rwsim/sim/model"
)

type internalStateResponse struct {
	model.InternalStateDescription
	Store model.StoreStatus `json:"store"`
}

// InternalStateHandler reports the full simulation state for debugging.
func InternalStateHandler(w http.ResponseWriter, r *http.Request, sim SimulationAPI) {
	render.JSON(w, r, internalStateResponse{
		InternalStateDescription: sim.InternalState(),
		Store:                    sim.StoreStatus(),
	})
}
