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

// Package svrcfg 定義 HTTP 服務的組裝設定。
package svrcfg

import (
	"log/slog"
	"time"

	"github.com/zintix-labs/minelab"
	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/server/logger"
)

const (
	DefaultAddr        = ":5808"
	DefaultMaxSessions = 10000
	DefaultTTL         = 30 * time.Minute
)

type SvrCfg struct {
	Log         *slog.Logger
	Lab         *minelab.Lab
	Store       *minelab.Store // nil 時依 MaxSessions / TTL 建立
	Addr        string
	MaxSessions int
	TTL         time.Duration
	SweepEvery  time.Duration // 0 時為 TTL/4（至少 1 秒）
}

// Valid 檢查必要依賴並補上預設值。
func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("async log handler is not ready")
		}
	} else {
		sc.Log = logger.NewDefaultLogger(logger.ModeDev)
	}
	if sc.Lab == nil {
		return errs.NewFatal("lab is required")
	}
	if sc.Addr == "" {
		sc.Addr = DefaultAddr
	}
	if sc.MaxSessions <= 0 {
		sc.MaxSessions = DefaultMaxSessions
	}
	if sc.TTL < 0 {
		return errs.NewWarn("ttl must not be negative")
	}
	if sc.TTL == 0 {
		sc.TTL = DefaultTTL
	}
	if sc.SweepEvery <= 0 {
		sc.SweepEvery = max(sc.TTL/4, time.Second)
	}
	if sc.Store == nil {
		sc.Store = minelab.NewStore(sc.MaxSessions, sc.TTL, sc.Log)
	}
	return nil
}
