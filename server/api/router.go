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

// Package api 掛載 middleware 與所有路由。
package api

import (
	"io"
	"log/slog"
	"net/http"

	v1 "github.com/zintix-labs/minelab/server/api/v1"
	"github.com/zintix-labs/minelab/server/netsvr"
	"github.com/zintix-labs/minelab/server/netsvr/middleware"
	"github.com/zintix-labs/minelab/server/svrcfg"
)

// RegisterRoutes sCfg 需已通過 Valid()。
func RegisterRoutes(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) error {
	registerMiddleware(svr, sCfg.Log)
	svr.Get("/", index)
	return registerV1API(svr, sCfg)
}

func registerMiddleware(svr netsvr.NetRouter, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Compression)
	svr.Use(middleware.Recover(log))
}

const indexText = `minelab: minesweeper rules engine

GET    /v1/presets
POST   /v1/games               {"preset":"beginner","seed":42} | {"custom":{...}} | {"layout":"9x9:..."}
GET    /v1/games/{id}
POST   /v1/games/{id}/reveal   {"x":0,"y":0}
POST   /v1/games/{id}/flag     {"x":0,"y":0}
POST   /v1/games/{id}/setflag  {"x":0,"y":0,"flag":true}
GET    /v1/games/{id}/layout
DELETE /v1/games/{id}
POST   /v1/sim                 {"preset":"beginner","boards":1000,"workers":4,"seed":1}
`

func index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, indexText)
}

func registerV1API(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) error {
	g, err := v1.NewGameHandler(sCfg.Lab, sCfg.Store, sCfg.Log)
	if err != nil {
		return err
	}
	p := v1.NewPresetHandler(sCfg.Lab)
	s := v1.NewSimHandler(sCfg.Lab, sCfg.Log)
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/presets", p.List)

		vOne.Post("/games", g.Create)
		vOne.Get("/games/{id}", g.View)
		vOne.Post("/games/{id}/reveal", g.Reveal)
		vOne.Post("/games/{id}/flag", g.Flag)
		vOne.Post("/games/{id}/setflag", g.SetFlag)
		vOne.Get("/games/{id}/layout", g.Layout)
		vOne.Delete("/games/{id}", g.Delete)

		vOne.Post("/sim", s.Sim)
	})
	return nil
}
