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

// Package minefield 是踩地雷的規則引擎：佈雷、鄰雷數推導與單格狀態機。
//
// 引擎只提供單格原語（Reveal / Flag / SetFlag / Get）。
// 連鎖展開（翻開 Safe(0) 自動翻開鄰格）刻意不做：那會改變 Reveal 的可觀察行為，
// 由呼叫端視需要自行組合。勝負判定、計時與計分同樣屬於呼叫端。
//
// 座標以 0 起算，x 為欄 [0,width)，y 為列 [0,height)。越界屬於呼叫端違約，會 panic；
// 需要回傳 error 的宿主請使用 minelab.Session。
//
// Game 不是併發安全的；多 goroutine 存取時請以單一互斥鎖保護整個 Game。
package minefield

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/sdk/core"
	"github.com/zintix-labs/minelab/sdk/grid"
)

var (
	// ErrInfeasiblePlacement 地雷數超過約束允許的格數。
	ErrInfeasiblePlacement = errs.NewWarn("minefield: infeasible bomb placement")
	// ErrInvalidSize 寬或高為負。
	ErrInvalidSize = errs.NewWarn("minefield: invalid board size")
	// ErrInvalidBombs 地雷數為負。
	ErrInvalidBombs = errs.NewWarn("minefield: invalid bomb count")
)

// Source 佈雷所需的亂數來源：回傳 [0,n) 的均勻整數。core.Core 滿足此介面。
type Source interface {
	IntN(n int) int
}

// Game 一局踩地雷。建立後地雷集合與所有 Safe 值不再改變，只有狀態會變。
type Game struct {
	board *grid.Grid[Tile]
	bombs int
}

// New 無約束佈雷，亂數來源為系統熵。
func New(width, height, bombs int) (*Game, error) {
	return newEntropy(width, height, bombs, Anywhere())
}

// NewSafe 保證 (cx, cy) 不是雷。
func NewSafe(width, height, bombs, cx, cy int) (*Game, error) {
	return newEntropy(width, height, bombs, ExcludeCell(cx, cy))
}

// NewSafeZero 保證 (cx, cy) 及其 8 鄰格都不是雷，即 (cx, cy) 為 Safe(0)。
func NewSafeZero(width, height, bombs, cx, cy int) (*Game, error) {
	return newEntropy(width, height, bombs, ExcludeNeighborhood(cx, cy))
}

// NewSafeZeroSeeded 同 NewSafeZero，但以 seed 建立決定性的 PCG64：
// 相同參數 + 相同 seed 必得相同盤面。
func NewSafeZeroSeeded(width, height, bombs, cx, cy int, seed int64) (*Game, error) {
	return NewWith(width, height, bombs, core.New(core.Default(), seed), ExcludeNeighborhood(cx, cy))
}

func newEntropy(width, height, bombs int, rule Rule) (*Game, error) {
	c, err := core.NewEntropy(core.Default())
	if err != nil {
		return nil, err
	}
	return NewWith(width, height, bombs, c, rule)
}

// NewWith 是所有建構子的共用流程。
//
// 對每一顆雷，重複抽 [0,width)×[0,height) 的均勻座標，直到該格尚未有雷且 rule 允許；
// 全部放完後一次計算所有 Safe 格的鄰雷數。
// 抽樣前先計算 rule 允許的格數，bombs 超過時直接回傳 ErrInfeasiblePlacement。
// rule 為 nil 視同 Anywhere。
func NewWith(width, height, bombs int, src Source, rule Rule) (*Game, error) {
	if !grid.SizeOK(width, height) {
		return nil, errs.WrapWithExtra(ErrInvalidSize, "new minefield", fmt.Sprintf("%dx%d", width, height))
	}
	if bombs < 0 {
		return nil, errs.WrapWithExtra(ErrInvalidBombs, "new minefield", fmt.Sprintf("bombs=%d", bombs))
	}
	if src == nil {
		return nil, errs.NewFatal("minefield: nil random source")
	}
	if rule == nil {
		rule = Anywhere()
	}
	if free := eligible(width, height, rule); bombs > free {
		return nil, errs.WrapWithExtra(ErrInfeasiblePlacement, "new minefield",
			fmt.Sprintf("%dx%d bombs=%d eligible=%d", width, height, bombs, free))
	}

	board := grid.New[Tile](width, height)
	for i := 0; i < bombs; i++ {
		var x, y int
		for {
			x = src.IntN(width)
			y = src.IntN(height)
			if !board.Get(x, y).Value.IsBomb() && rule(x, y) {
				break
			}
		}
		board.Set(x, y, Tile{Value: Bomb, State: Hidden})
	}
	countNeighbors(board)

	return &Game{board: board, bombs: bombs}, nil
}

// countNeighbors 為每個非雷格計算 8 鄰格（在盤面內，不繞回）的雷數。
func countNeighbors(board *grid.Grid[Tile]) {
	w, h := board.Width(), board.Height()
	board.Each(func(x, y int, t *Tile) {
		if t.Value.IsBomb() {
			return
		}
		n := 0
		for iy := max(y-1, 0); iy < min(y+2, h); iy++ {
			for ix := max(x-1, 0); ix < min(x+2, w); ix++ {
				if board.Get(ix, iy).Value.IsBomb() {
					n++
				}
			}
		}
		t.Value = Safe(n)
	})
}

// Reveal 翻開 Hidden 格並回傳底值。
// Flag 或已 Open 的格子不會改變，回傳 (0, false)。不做連鎖展開。
func (g *Game) Reveal(x, y int) (Value, bool) {
	t := g.board.Ptr(x, y)
	if t.State != Hidden {
		return 0, false
	}
	t.State = Open
	return t.Value, true
}

// Flag 在 Hidden 與 Flag 之間切換；Open 不受影響。
func (g *Game) Flag(x, y int) {
	t := g.board.Ptr(x, y)
	switch t.State {
	case Hidden:
		t.State = Flag
	case Flag:
		t.State = Hidden
	}
}

// SetFlag 直接設定旗標（冪等版的 Flag）；Open 不受影響。
func (g *Game) SetFlag(x, y int, flag bool) {
	t := g.board.Ptr(x, y)
	if t.State == Open {
		return
	}
	if flag {
		t.State = Flag
	} else {
		t.State = Hidden
	}
}

// Get 回傳狀態；只有 Open 時才一併回傳底值。
// Hidden / Flag 永遠不透露底值。
func (g *Game) Get(x, y int) (State, Value, bool) {
	t := g.board.Get(x, y)
	if t.State != Open {
		return t.State, 0, false
	}
	return t.State, t.Value, true
}

// Value 回傳底值，不論狀態。只給統計與回放工具使用，不可轉給玩家。
func (g *Game) Value(x, y int) Value {
	return g.board.Get(x, y).Value
}

func (g *Game) Width() int {
	return g.board.Width()
}

func (g *Game) Height() int {
	return g.board.Height()
}

// Bombs 建立時放置的地雷數。
func (g *Game) Bombs() int {
	return g.bombs
}

func (g *Game) InBounds(x, y int) bool {
	return g.board.InBounds(x, y)
}

// String 以玩家視角輸出盤面：未開 "-"，旗 "F"，雷 "*"，0 為 "."。
func (g *Game) String() string {
	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			state, v, ok := g.Get(x, y)
			switch {
			case state == Flag:
				sb.WriteByte('F')
			case !ok:
				sb.WriteByte('-')
			case v.IsBomb():
				sb.WriteByte('*')
			case v == Safe(0):
				sb.WriteByte('.')
			default:
				sb.WriteByte(byte('0' + v))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
