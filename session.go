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
	"fmt"
	"sync"
	"time"

	"github.com/zintix-labs/minelab/corefmt"
	"github.com/zintix-labs/minelab/dto"
	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/sdk/core"
	"github.com/zintix-labs/minelab/sdk/grid"
	"github.com/zintix-labs/minelab/sdk/minefield"
	"github.com/zintix-labs/minelab/spec"
)

var (
	// ErrOutOfRange 座標超出盤面。
	ErrOutOfRange = errs.NewWarn("coordinate out of range")
	// ErrNotGenerated 盤面尚未產生（第一次翻格前）。
	ErrNotGenerated = errs.NewWarn("board not generated yet")
)

// Session 一局可供宿主操作的遊戲。
//
// 盤面延遲到第一次 Reveal 才產生，並依預設的 Safety 保護該次點擊的座標。
// 產生前的插旗記在 flags 上，產生後套回盤面。
// 所有方法都持有同一把鎖，一次操作整局互斥。
type Session struct {
	mu      sync.Mutex
	id      string
	preset  spec.Preset
	seed    int64
	pf      core.PRNGFactory
	game    *minefield.Game
	flags   *grid.Grid[bool]
	created time.Time
	touched time.Time
}

func newSession(id string, p spec.Preset, pf core.PRNGFactory, seed int64) *Session {
	now := time.Now()
	return &Session{
		id:      id,
		preset:  p,
		seed:    seed,
		pf:      pf,
		flags:   grid.New[bool](p.Width, p.Height),
		created: now,
		touched: now,
	}
}

func (s *Session) ID() string          { return s.id }
func (s *Session) Preset() spec.Preset { return s.preset }
func (s *Session) Seed() int64         { return s.seed }
func (s *Session) Created() time.Time  { return s.created }

// Touched 最後一次操作的時間。
func (s *Session) Touched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// Generated 盤面是否已產生。
func (s *Session) Generated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game != nil
}

func (s *Session) check(x, y int) error {
	if x < 0 || y < 0 || x >= s.preset.Width || y >= s.preset.Height {
		return errs.WrapWithExtra(ErrOutOfRange, s.id,
			fmt.Sprintf("(%d,%d) on %dx%d", x, y, s.preset.Width, s.preset.Height))
	}
	s.touched = time.Now()
	return nil
}

func (s *Session) generate(cx, cy int) error {
	p := s.preset
	g, err := minefield.NewWith(p.Width, p.Height, p.Bombs, core.New(s.pf, s.seed), p.Safety.Rule(cx, cy))
	if err != nil {
		return errs.Wrap(err, "session "+s.id+" generate failed")
	}
	s.flags.Each(func(x, y int, f *bool) {
		if *f {
			g.SetFlag(x, y, true)
		}
	})
	s.game = g
	s.flags = nil
	return nil
}

// Reveal 翻開 (x, y)。第一次有效的翻格會先產生盤面。
// 已翻開或插旗的格子回傳 ok=false，盤面不變。
func (s *Session) Reveal(x, y int) (v minefield.Value, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(x, y); err != nil {
		return 0, false, err
	}
	if s.game == nil {
		if s.flags.Get(x, y) {
			return 0, false, nil
		}
		if err := s.generate(x, y); err != nil {
			return 0, false, err
		}
	}
	v, ok = s.game.Reveal(x, y)
	return v, ok, nil
}

// Flag 切換 Hidden/Flag，回傳操作後的狀態。
func (s *Session) Flag(x, y int) (minefield.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(x, y); err != nil {
		return minefield.Hidden, err
	}
	if s.game == nil {
		f := s.flags.Ptr(x, y)
		*f = !*f
		return pendingState(*f), nil
	}
	s.game.Flag(x, y)
	st, _, _ := s.game.Get(x, y)
	return st, nil
}

// SetFlag 指定插旗與否，回傳操作後的狀態。
func (s *Session) SetFlag(x, y int, flag bool) (minefield.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(x, y); err != nil {
		return minefield.Hidden, err
	}
	if s.game == nil {
		s.flags.Set(x, y, flag)
		return pendingState(flag), nil
	}
	s.game.SetFlag(x, y, flag)
	st, _, _ := s.game.Get(x, y)
	return st, nil
}

// Tile 查詢單格；只有已翻開的格子會帶值。
func (s *Session) Tile(x, y int) (minefield.State, minefield.Value, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(x, y); err != nil {
		return minefield.Hidden, 0, false, err
	}
	if s.game == nil {
		return pendingState(s.flags.Get(x, y)), 0, false, nil
	}
	st, v, ok := s.game.Get(x, y)
	return st, v, ok, nil
}

func pendingState(flag bool) minefield.State {
	if flag {
		return minefield.Flag
	}
	return minefield.Hidden
}

// Layout 回傳佈局碼，可用 corefmt.DecodeLayout + minefield.FromLayout 重建盤面。
func (s *Session) Layout() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		return "", errs.WrapWithExtra(ErrNotGenerated, "layout", s.id)
	}
	return corefmt.EncodeLayout(s.game.Width(), s.game.Height(), s.game.Layout()), nil
}

// Counts 各狀態格數（不是勝負判定）。
func (s *Session) Counts() dto.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts()
}

func (s *Session) counts() dto.Counts {
	var c dto.Counts
	s.each(func(_, _ int, st minefield.State, _ minefield.Value, _ bool) {
		switch st {
		case minefield.Flag:
			c.Flagged++
		case minefield.Open:
			c.Open++
		default:
			c.Hidden++
		}
	})
	return c
}

func (s *Session) each(fn func(x, y int, st minefield.State, v minefield.Value, ok bool)) {
	for y := 0; y < s.preset.Height; y++ {
		for x := 0; x < s.preset.Width; x++ {
			if s.game == nil {
				fn(x, y, pendingState(s.flags.Get(x, y)), 0, false)
				continue
			}
			st, v, ok := s.game.Get(x, y)
			fn(x, y, st, v, ok)
		}
	}
}

// Summary 建局摘要。
func (s *Session) Summary() dto.SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary()
}

func (s *Session) summary() dto.SessionSummary {
	return dto.SessionSummary{
		ID:        s.id,
		Preset:    s.preset.Name,
		Width:     s.preset.Width,
		Height:    s.preset.Height,
		Bombs:     s.preset.Bombs,
		Safety:    s.preset.Safety,
		Seed:      s.seed,
		Generated: s.game != nil,
	}
}

// View 玩家視角的完整盤面。未翻開格子的值不會出現在輸出中。
func (s *Session) View() dto.BoardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([][]byte, s.preset.Height)
	for y := range rows {
		rows[y] = make([]byte, s.preset.Width)
	}
	s.each(func(x, y int, st minefield.State, v minefield.Value, ok bool) {
		rows[y][x] = dto.CellCode(st, v, ok)
	})
	view := dto.BoardView{
		SessionSummary: s.summary(),
		Counts:         s.counts(),
		Rows:           make([]string, len(rows)),
	}
	for y, r := range rows {
		view.Rows[y] = string(r)
	}
	return view
}
