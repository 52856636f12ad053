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

package v1

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/zintix-labs/minelab"
	"github.com/zintix-labs/minelab/dto"
	"github.com/zintix-labs/minelab/server/httperr"
	"github.com/zintix-labs/minelab/server/netsvr/middleware"
	"github.com/zintix-labs/minelab/stats"
)

const simTimeout = 30 * time.Second

type SimHandler struct {
	lab *minelab.Lab
	log *slog.Logger
}

func NewSimHandler(lab *minelab.Lab, log *slog.Logger) *SimHandler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &SimHandler{lab: lab, log: log}
}

// SimResponse 模擬結果
type SimResponse struct {
	Stats    *stats.Report `json:"stats"`
	UsedTime int64         `json:"used_ms"`
}

// Sim POST /v1/sim
func (sh *SimHandler) Sim(w http.ResponseWriter, r *http.Request) {
	req := new(dto.SimRequest)
	if err := dto.DecodeJSON(w, r, req); err != nil {
		httperr.Errs(w, err)
		return
	}
	if err := req.Valid(); err != nil {
		httperr.Errs(w, err)
		return
	}
	sim, err := sh.lab.NewSimulator(req.Preset, req.Seed)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	sim.SetLogger(sh.log.With(slog.String("req_id", middleware.ReqID(r))))

	ctx, cancel := context.WithTimeout(r.Context(), simTimeout)
	defer cancel()
	rep, used, err := sim.Sim(ctx, req.Boards, req.Workers, false)
	if err != nil {
		httperr.Log(sh.log, "sim", err)
		httperr.Errs(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SimResponse{Stats: rep, UsedTime: used.Milliseconds()})
}
