// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"bytes"
	stdjson "encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.amzn.com/rwsim/sim/config"
	"go.amzn.com/rwsim/sim/model"
	"go.amzn.com/rwsim/sim/simcore"
)

func newTestServer(t *testing.T) (*httptest.Server, *simcore.Simulation) {
	t.Helper()
	cfg := config.Simulation{
		Readers:   2,
		Writers:   1,
		ReadHold:  2 * time.Millisecond,
		WriteHold: 2 * time.Millisecond,
		ReadIdle:  time.Millisecond,
		WriteIdle: time.Millisecond,
		Policy:    model.ReaderPriority,
	}
	sim, err := simcore.NewSimulation(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(NewHTTPRouter(sim))
	t.Cleanup(func() {
		srv.Close()
		sim.Shutdown()
	})
	return srv, sim
}

func post(t *testing.T, url string, body []byte) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestPing(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/test/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestCommandRoundTrip(t *testing.T) {
	srv, sim := newTestServer(t)

	resp := post(t, srv.URL+"/test/start", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, sim.InternalState().Running)

	resp = post(t, srv.URL+"/test/pause", nil)
	resp.Body.Close()
	assert.True(t, sim.InternalState().Paused)

	resp = post(t, srv.URL+"/test/stop", nil)
	resp.Body.Close()
	assert.False(t, sim.InternalState().Running)
}

func TestCountsHandlerValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := post(t, srv.URL+"/test/counts", []byte(`{"readers":-1,"writers":0}`))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCountsHandlerReportsChurn(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := post(t, srv.URL+"/test/start", nil)
	resp.Body.Close()

	resp = post(t, srv.URL+"/test/counts", []byte(`{"readers":3,"writers":1}`))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var churn struct {
		Spawned   int `json:"spawned"`
		Cancelled int `json:"cancelled"`
	}
	require.NoError(t, stdjson.NewDecoder(resp.Body).Decode(&churn))
	assert.Equal(t, 1, churn.Spawned)
	assert.Equal(t, 0, churn.Cancelled)
}

func TestStatsAndStateEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := post(t, srv.URL+"/test/start", nil)
	resp.Body.Close()

	require.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL + "/test/stats")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var snap model.StatsSnapshot
		if err := stdjson.NewDecoder(resp.Body).Decode(&snap); err != nil {
			return false
		}
		return snap.CompletedOperations() > 0
	}, 2*time.Second, 5*time.Millisecond)

	resp, err := http.Get(srv.URL + "/test/internalState")
	require.NoError(t, err)
	defer resp.Body.Close()

	var state struct {
		model.InternalStateDescription
		Store model.StoreStatus `json:"store"`
	}
	require.NoError(t, stdjson.NewDecoder(resp.Body).Decode(&state))
	assert.Len(t, state.Workers, 3)
	assert.Equal(t, model.ReaderPriority, state.Policy)
}

func TestEventLogEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := post(t, srv.URL+"/test/start", nil)
	resp.Body.Close()

	require.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL + "/test/eventLog")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var events []model.Event
		if err := stdjson.NewDecoder(resp.Body).Decode(&events); err != nil {
			return false
		}
		return len(events) > 0
	}, 2*time.Second, 5*time.Millisecond)
}

func TestConfigureEndpointRejectsInvalid(t *testing.T) {
	srv, sim := newTestServer(t)

	prev := sim.Config()
	resp := post(t, srv.URL+"/test/configure", []byte(`{"readHold":0}`))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, prev, sim.Config())
}
