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

package minelab

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/recorder"
	"github.com/zintix-labs/minelab/sdk/core"
	"github.com/zintix-labs/minelab/sdk/minefield"
	"github.com/zintix-labs/minelab/spec"
	"github.com/zintix-labs/minelab/stats"
)

// Simulator 依同一預設批次產生盤面並統計。
//
// 每個 worker 有自己的 PRNG（seed 由 seedMaker 依序派發），盤數依 worker 靜態切分，
// 因此相同 (seed, workers, boards) 的報表完全相同。
type Simulator struct {
	Preset   spec.Preset
	initSeed int64
	pf       core.PRNGFactory
	firstX   int
	firstY   int
	log      *slog.Logger
}

func newSimulator(p spec.Preset, pf core.PRNGFactory, seed int64) *Simulator {
	if pf == nil {
		pf = core.Default()
	}
	return &Simulator{
		Preset:   p,
		initSeed: seed,
		pf:       pf,
		firstX:   p.Width / 2,
		firstY:   p.Height / 2,
		log:      slog.New(slog.DiscardHandler),
	}
}

func (s *Simulator) Seed() int64 {
	return s.initSeed
}

// SetLogger 設定日誌；nil 代表不輸出。
func (s *Simulator) SetLogger(log *slog.Logger) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s.log = log
}

// SetFirstClick 指定每盤的第一次點擊（預設為盤面中心）。
func (s *Simulator) SetFirstClick(x, y int) error {
	if x < 0 || y < 0 || x >= s.Preset.Width || y >= s.Preset.Height {
		return errs.WrapWithExtra(ErrOutOfRange, "first click", s.Preset.Name)
	}
	s.firstX, s.firstY = x, y
	return nil
}

// Sim 以 workers 個 goroutine 產生 boards 盤，回傳報表與用時。
// ctx 取消時會停止並回傳 ctx 的錯誤。
func (s *Simulator) Sim(ctx context.Context, boards int, workers int, showpb bool) (*stats.Report, time.Duration, error) {
	if boards < 1 {
		return nil, 0, errs.NewWarn("boards must > 0")
	}
	if workers < 1 {
		return nil, 0, errs.NewWarn("workers must > 0")
	}
	workers = min(workers, boards)

	sm := newSeedMaker(s.initSeed)
	rBuf := make([]*recorder.BoardRecorder, workers)
	cBuf := make([]*core.Core, workers)
	for i := range workers {
		r, err := recorder.NewBoardRecorder(s.Preset, s.firstX, s.firstY)
		if err != nil {
			return nil, 0, err
		}
		rBuf[i] = r
		cBuf[i] = core.New(s.pf, sm.next())
	}

	s.log.Info("sim.start",
		slog.String("preset", s.Preset.Name),
		slog.Int("boards", boards),
		slog.Int("workers", workers),
		slog.Int64("seed", s.initSeed))

	bar := pb.StartNew(boards)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	errBuf := make([]error, workers)

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	share, rem := boards/workers, boards%workers
	for i := range workers {
		n := share
		if i < rem {
			n++
		}
		go func(i, n int) {
			defer wg.Done()
			errBuf[i] = s.run(ctx, cBuf[i], rBuf[i], n, bar)
		}(i, n)
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	if err := ctx.Err(); err != nil {
		s.log.Warn("sim.abort", slog.String("preset", s.Preset.Name), slog.Any("err", err))
		return nil, used, errs.Wrap(err, "sim canceled")
	}

	merged, err := recorder.Merge(rBuf)
	if err != nil {
		return nil, used, err
	}
	if merged.Boards == 0 {
		for _, err := range errBuf {
			if err != nil {
				return nil, used, err
			}
		}
	}
	rep := merged.Done(s.initSeed, workers)
	s.log.Info("sim.done",
		slog.String("preset", s.Preset.Name),
		slog.Int("boards", rep.Summary.Boards),
		slog.Int("failures", rep.Summary.Failures),
		slog.Duration("used", used))
	return rep, used, nil
}

// run 跑 n 盤。建盤失敗記為 failure 並回傳第一個錯誤，但不中止其餘盤數。
func (s *Simulator) run(ctx context.Context, c *core.Core, r *recorder.BoardRecorder, n int, bar *pb.ProgressBar) error {
	p := s.Preset
	rule := p.Safety.Rule(s.firstX, s.firstY)
	var first error
	for range n {
		if err := ctx.Err(); err != nil {
			return err
		}
		g, err := minefield.NewWith(p.Width, p.Height, p.Bombs, c, rule)
		bar.Increment()
		if err != nil {
			r.RecordFailure()
			if first == nil {
				first = err
			}
			continue
		}
		r.Record(g)
	}
	return first
}

// ============================================================
// ** seedMaker **
// ============================================================

const mask63 = uint64(1<<63) - 1

type seedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// next 以全週期 LCG 推進 state，再用可逆的 mix63 打散。可併發呼叫。
func (s *seedMaker) next() int64 {
	for {
		old := s.state.Load()
		next := (old*6364136223846793005 + 1442695040888963407) & mask63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next))
		}
	}
}

// mix63：只用可逆的 bit 操作與乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
