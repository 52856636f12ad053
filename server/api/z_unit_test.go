// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zintix-labs/minelab"
	"github.com/zintix-labs/minelab/demo/presets"
	"github.com/zintix-labs/minelab/dto"
	"github.com/zintix-labs/minelab/server/logger"
	"github.com/zintix-labs/minelab/server/netsvr"
	"github.com/zintix-labs/minelab/server/svrcfg"
	"github.com/zintix-labs/minelab/spec"
)

func newTestServer(t *testing.T, maxSessions int) *httptest.Server {
	t.Helper()
	lab, err := minelab.New(nil, minelab.Configs(presets.FS))
	require.NoError(t, err)
	cfg := &svrcfg.SvrCfg{
		Log:         logger.NewDefaultLogger(logger.ModeSilence),
		Lab:         lab,
		MaxSessions: maxSessions,
		TTL:         time.Minute,
	}
	require.NoError(t, cfg.Valid())
	svr := netsvr.NewChiServer(":0")
	require.NoError(t, RegisterRoutes(svr, cfg))
	ts := httptest.NewServer(svr.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string, out any) int {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestIndexAndPresets(t *testing.T) {
	ts := newTestServer(t, 10)
	resp, err := ts.Client().Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var ps []spec.Preset
	require.Equal(t, http.StatusOK, do(t, ts, "GET", "/v1/presets", "", &ps))
	require.NotEmpty(t, ps)
	assert.Equal(t, "beginner", ps[0].Name)
}

func TestGameLifecycle(t *testing.T) {
	ts := newTestServer(t, 10)

	var sum dto.SessionSummary
	require.Equal(t, http.StatusCreated, do(t, ts, "POST", "/v1/games", `{"preset":"beginner","seed":42}`, &sum))
	assert.Equal(t, int64(42), sum.Seed)
	assert.False(t, sum.Generated)
	base := "/v1/games/" + sum.ID

	// 尚未佈雷：沒有佈局碼
	assert.Equal(t, http.StatusBadRequest, do(t, ts, "GET", base+"/layout", "", nil))

	var tile dto.TileResult
	require.Equal(t, http.StatusOK, do(t, ts, "POST", base+"/flag", `{"x":0,"y":0}`, &tile))
	assert.Equal(t, "flag", tile.State)

	var rr dto.RevealResult
	require.Equal(t, http.StatusOK, do(t, ts, "POST", base+"/reveal", `{"x":4,"y":4}`, &rr))
	assert.True(t, rr.Revealed)
	require.NotNil(t, rr.Count)
	assert.Equal(t, 0, *rr.Count)

	// 再翻一次沒有效果
	require.Equal(t, http.StatusOK, do(t, ts, "POST", base+"/reveal", `{"x":4,"y":4}`, &rr))
	assert.False(t, rr.Revealed)

	require.Equal(t, http.StatusOK, do(t, ts, "POST", base+"/setflag", `{"x":0,"y":0,"flag":false}`, &tile))
	assert.Equal(t, "hidden", tile.State)
	assert.Equal(t, http.StatusBadRequest, do(t, ts, "POST", base+"/setflag", `{"x":0,"y":0}`, nil))

	var view dto.BoardView
	require.Equal(t, http.StatusOK, do(t, ts, "GET", base, "", &view))
	assert.True(t, view.Generated)
	assert.Equal(t, byte('0'), view.Rows[4][4])
	assert.Equal(t, 1, view.Counts.Open)

	var lay dto.LayoutResult
	require.Equal(t, http.StatusOK, do(t, ts, "GET", base+"/layout", "", &lay))
	assert.True(t, strings.HasPrefix(lay.Layout, "9x9:"))

	// 佈局碼重建同一盤：已產生、全部 Hidden
	var replay dto.SessionSummary
	require.Equal(t, http.StatusCreated, do(t, ts, "POST", "/v1/games", `{"layout":"`+lay.Layout+`"}`, &replay))
	assert.True(t, replay.Generated)
	assert.Equal(t, "replay", replay.Preset)
	assert.Equal(t, 10, replay.Bombs)
	require.Equal(t, http.StatusOK, do(t, ts, "POST", "/v1/games/"+replay.ID+"/reveal", `{"x":4,"y":4}`, &rr))
	require.NotNil(t, rr.Count)
	assert.Equal(t, 0, *rr.Count)
	assert.Equal(t, http.StatusBadRequest, do(t, ts, "POST", "/v1/games", `{"layout":"9x9:!!"}`, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, ts, "POST", "/v1/games", `{"layout":"`+lay.Layout+`","seed":1}`, nil))

	assert.Equal(t, http.StatusBadRequest, do(t, ts, "POST", base+"/reveal", `{"x":9,"y":0}`, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, ts, "POST", base+"/reveal", `{"x":1,"y":1,"z":2}`, nil))

	assert.Equal(t, http.StatusNoContent, do(t, ts, "DELETE", base, "", nil))
	assert.Equal(t, http.StatusNotFound, do(t, ts, "GET", base, "", nil))
	assert.Equal(t, http.StatusNotFound, do(t, ts, "DELETE", base, "", nil))
}

func TestCreateErrors(t *testing.T) {
	ts := newTestServer(t, 1)
	assert.Equal(t, http.StatusNotFound, do(t, ts, "POST", "/v1/games", `{"preset":"nope"}`, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, ts, "POST", "/v1/games", `{}`, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, ts, "POST", "/v1/games",
		`{"custom":{"width":3,"height":3,"bombs":1,"safety":"zero"}}`, nil))

	var sum dto.SessionSummary
	require.Equal(t, http.StatusCreated, do(t, ts, "POST", "/v1/games",
		`{"custom":{"width":5,"height":4,"bombs":3,"safety":"cell"}}`, &sum))
	assert.Equal(t, "custom", sum.Preset)
	assert.Equal(t, spec.SafetyCell, sum.Safety)

	// 容量 1：第二局被拒
	assert.Equal(t, http.StatusBadRequest, do(t, ts, "POST", "/v1/games", `{"preset":"beginner"}`, nil))
}

func TestCreateRejectsOversizedBoard(t *testing.T) {
	ts := newTestServer(t, 4)
	for _, body := range []string{
		fmt.Sprintf(`{"custom":{"width":%d,"height":2,"bombs":1}}`, spec.MaxSide+1),
		`{"custom":{"width":50000,"height":50000,"bombs":1}}`,
		`{"custom":{"width":2147483648,"height":2147483648,"bombs":0}}`,
		`{"custom":{"width":4294967296,"height":4294967296,"bombs":0}}`,
	} {
		assert.Equal(t, http.StatusBadRequest, do(t, ts, "POST", "/v1/games", body, nil), body)
	}
	var sum dto.SessionSummary
	require.Equal(t, http.StatusCreated, do(t, ts, "POST", "/v1/games",
		fmt.Sprintf(`{"custom":{"width":%d,"height":%d,"bombs":1}}`, spec.MaxSide, spec.MaxSide), &sum))
	assert.Equal(t, spec.MaxSide, sum.Width)
}

func TestSim(t *testing.T) {
	ts := newTestServer(t, 1)
	var out struct {
		Stats struct {
			Summary struct {
				Boards int `json:"Boards"`
				Seed   int64
			}
			Heat [][]int
		} `json:"stats"`
	}
	require.Equal(t, http.StatusOK, do(t, ts, "POST", "/v1/sim", `{"preset":"beginner","boards":50,"workers":2,"seed":5}`, &out))
	assert.Equal(t, 50, out.Stats.Summary.Boards)
	assert.Equal(t, int64(5), out.Stats.Summary.Seed)
	assert.Len(t, out.Stats.Heat, 9)

	assert.Equal(t, http.StatusBadRequest, do(t, ts, "POST", "/v1/sim", `{"preset":"beginner","boards":0}`, nil))
	assert.Equal(t, http.StatusNotFound, do(t, ts, "POST", "/v1/sim", `{"preset":"nope","boards":1}`, nil))
}
