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

package app

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sweeper 可依時間回收過期資源的對象，例如 minelab.Store。
type Sweeper interface {
	Sweep(now time.Time) int
}

// Janitor 以固定間隔呼叫 Sweeper 的背景元件。
type Janitor struct {
	target Sweeper
	every  time.Duration
	log    *slog.Logger
	stop   chan struct{}
	once   sync.Once
}

func NewJanitor(target Sweeper, every time.Duration, log *slog.Logger) *Janitor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if every <= 0 {
		every = time.Minute
	}
	return &Janitor{target: target, every: every, log: log, stop: make(chan struct{})}
}

// Run 阻塞直到 Shutdown。
func (j *Janitor) Run() error {
	t := time.NewTicker(j.every)
	defer t.Stop()
	j.log.Debug("janitor.start", slog.Duration("every", j.every))
	for {
		select {
		case now := <-t.C:
			j.target.Sweep(now)
		case <-j.stop:
			return nil
		}
	}
}

func (j *Janitor) Shutdown(ctx context.Context) error {
	j.once.Do(func() { close(j.stop) })
	return nil
}
