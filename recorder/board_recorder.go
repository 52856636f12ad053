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

// Package recorder 累計批次佈雷的原始計數，最後交給 stats 產生報表。
//
// 紀錄過程只做整數累加；浮點與統計量在 Done 時一次計算。
package recorder

import (
	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/sdk/minefield"
	"github.com/zintix-labs/minelab/spec"
	"github.com/zintix-labs/minelab/stats"
)

// BoardRecorder 單一 worker 的紀錄員，不可跨 goroutine 共用。
type BoardRecorder struct {
	Preset   spec.Preset
	FirstX   int
	FirstY   int
	Boards   int
	Failures int
	Heat     []int     // 每格落雷次數（row-major）
	Expect   []float64 // 每格期望落雷次數
	Values   [9]int    // Safe(0)..Safe(8) 出現次數
	Zeros    []float64 // 每盤 Safe(0) 格數

	free []bool // 首擊固定，可放雷的格子也固定
	rate float64
}

// NewBoardRecorder 建立紀錄員；(cx, cy) 為每盤的第一次點擊。
func NewBoardRecorder(p spec.Preset, cx, cy int) (*BoardRecorder, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, errs.Fatalf("recorder: invalid size %dx%d", p.Width, p.Height)
	}
	if cx < 0 || cy < 0 || cx >= p.Width || cy >= p.Height {
		return nil, errs.Fatalf("recorder: first click (%d,%d) out of range", cx, cy)
	}
	n := p.Width * p.Height
	r := &BoardRecorder{
		Preset: p,
		FirstX: cx,
		FirstY: cy,
		Heat:   make([]int, n),
		Expect: make([]float64, n),
		free:   make([]bool, n),
	}
	rule := p.Safety.Rule(cx, cy)
	eligible := 0
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			if rule(x, y) {
				r.free[x+y*p.Width] = true
				eligible++
			}
		}
	}
	if eligible > 0 {
		r.rate = float64(p.Bombs) / float64(eligible)
	}
	return r, nil
}

// Record 紀錄一盤。
func (r *BoardRecorder) Record(g *minefield.Game) {
	w := r.Preset.Width
	zeros := 0
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			v := g.Value(x, y)
			if v.IsBomb() {
				r.Heat[x+y*w]++
				continue
			}
			n, _ := v.Count()
			r.Values[n]++
			if n == 0 {
				zeros++
			}
		}
	}
	for i, ok := range r.free {
		if ok {
			r.Expect[i] += r.rate
		}
	}
	r.Zeros = append(r.Zeros, float64(zeros))
	r.Boards++
}

// RecordFailure 紀錄一次建盤失敗。
func (r *BoardRecorder) RecordFailure() {
	r.Failures++
}

// Merge 合併多個紀錄員（須同預設、同首擊），依傳入順序串接樣本。
func Merge(rs []*BoardRecorder) (*BoardRecorder, error) {
	if len(rs) == 0 {
		return nil, errs.NewFatal("merge board recorder: empty")
	}
	r0 := rs[0]
	out, err := NewBoardRecorder(r0.Preset, r0.FirstX, r0.FirstY)
	if err != nil {
		return nil, err
	}
	for _, r := range rs {
		if r.Preset != r0.Preset {
			return nil, errs.NewFatal("merge board recorder: different preset")
		}
		if r.FirstX != r0.FirstX || r.FirstY != r0.FirstY {
			return nil, errs.NewFatal("merge board recorder: different first click")
		}
		out.Boards += r.Boards
		out.Failures += r.Failures
		for i := range out.Heat {
			out.Heat[i] += r.Heat[i]
			out.Expect[i] += r.Expect[i]
		}
		for i := range out.Values {
			out.Values[i] += r.Values[i]
		}
		out.Zeros = append(out.Zeros, r.Zeros...)
	}
	return out, nil
}

// Done 產出報表。seed 與 workers 只寫入摘要。
func (r *BoardRecorder) Done(seed int64, workers int) *stats.Report {
	p := r.Preset
	sum := stats.SummaryReport{
		Preset:   p.Name,
		Width:    p.Width,
		Height:   p.Height,
		Bombs:    p.Bombs,
		Safety:   p.Safety.String(),
		Density:  p.Density(),
		FirstX:   r.FirstX,
		FirstY:   r.FirstY,
		Seed:     seed,
		Workers:  workers,
		Boards:   r.Boards,
		Failures: r.Failures,
	}
	rep := stats.NewReport(sum, r.Values, r.Zeros, r.Heat, r.Expect)
	rep.Done()
	return rep
}
