// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EventLogHandler streams the retained tail of the event log.
func EventLogHandler(w http.ResponseWriter, r *http.Request, sim SimulationAPI) {
	body, err := json.Marshal(sim.RecentEvents())
	if err != nil {
		log.WithError(err).Error("Failed to marshal event log")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
