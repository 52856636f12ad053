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

// Package app 管理長期運行元件（HTTP server、背景 janitor）的啟動與關閉。
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

const defaultShutdownTimeout = 5 * time.Second

// App 並行啟動所有 Component；收到 SIGINT/SIGTERM、ctx 結束或任一元件返回時，
// 在期限內依序呼叫所有元件的 Shutdown。
type App struct {
	comps   []Component
	log     *slog.Logger
	timeout time.Duration
}

func New() *App {
	return &App{log: slog.New(slog.DiscardHandler), timeout: defaultShutdownTimeout}
}

// NewWith 建立並註冊元件。
func NewWith(comps ...Component) *App {
	a := New()
	for _, c := range comps {
		a.Register(c)
	}
	return a
}

func (a *App) Register(c Component) {
	a.comps = append(a.comps, c)
}

// SetLogger nil 代表不輸出。
func (a *App) SetLogger(log *slog.Logger) {
	if log != nil {
		a.log = log
	}
}

// Run 阻塞直到收到終止信號（回傳 nil）或任一元件返回（回傳其錯誤）。
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext 同 Run，但以 ctx 取代 OS 信號。
func (a *App) RunContext(ctx context.Context) error {
	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) {
			errCh <- c.Run()
		}(c)
	}

	var err error
	select {
	case <-ctx.Done():
		a.log.Info("app.stop", slog.String("reason", "signal"))
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		a.log.Info("app.stop", slog.String("reason", "component exit"), slog.Any("err", err))
	}
	a.shutdown()
	return err
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	for _, c := range a.comps {
		if err := c.Shutdown(ctx); err != nil {
			a.log.Error("app.shutdown", slog.Any("err", err))
		}
	}
}
