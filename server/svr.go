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

// Package server 是 HTTP 服務的預設組裝入口。
package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/server/api"
	"github.com/zintix-labs/minelab/server/app"
	"github.com/zintix-labs/minelab/server/netsvr"
	"github.com/zintix-labs/minelab/server/svrcfg"
)

// Run 驗證設定、建立 chi server、掛上路由，並與清理過期對局的 janitor 一起交給 app 管理。
// 阻塞直到收到終止信號或任一元件失敗。
func Run(sCfg *svrcfg.SvrCfg) error {
	if err := sCfg.Valid(); err != nil {
		// logger 可能就是出錯的那個
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return RunWithSvr(sCfg, netsvr.NewChiServer(sCfg.Addr))
}

// RunWithSvr 同 Run，但使用呼叫端提供的 NetSvr。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if err := sCfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if svr == nil {
		return errs.NewFatal("svr is required")
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		return errs.NewFatal("chi server is not ready")
	}
	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		return err
	}
	defer sCfg.Store.Close()

	a := app.NewWith(svr, app.NewJanitor(sCfg.Store, sCfg.SweepEvery, sCfg.Log))
	a.SetLogger(sCfg.Log)
	sCfg.Log.Info("[minelab] listening",
		slog.String("addr", sCfg.Addr),
		slog.Int("max_sessions", sCfg.Store.Capacity()),
		slog.Duration("ttl", sCfg.Store.TTL()))
	if err := a.Run(); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}
