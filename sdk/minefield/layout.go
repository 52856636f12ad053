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

package minefield

import (
	"fmt"

	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/sdk/grid"
)

// ErrBadLayout 佈局 bitset 長度與盤面大小不符。
var ErrBadLayout = errs.NewWarn("minefield: layout does not match board size")

// LayoutLen 回傳 width*height 格所需的 bitset 位元組數。
func LayoutLen(width, height int) int {
	return (width*height + 7) / 8
}

// Layout 匯出地雷位置：row-major、每格 1 bit、LSB 先。
//
// 這會透露底值，只應交給宿主做存檔/回放，不應交給玩家端。
func (g *Game) Layout() []byte {
	bits := make([]byte, LayoutLen(g.Width(), g.Height()))
	w := g.Width()
	g.board.Each(func(x, y int, t *Tile) {
		if t.Value.IsBomb() {
			i := x + y*w
			bits[i>>3] |= 1 << (i & 7)
		}
	})
	return bits
}

// FromLayout 依 bitset 重建一局（所有格 Hidden），並重新計算鄰雷數。
func FromLayout(width, height int, bits []byte) (*Game, error) {
	if !grid.SizeOK(width, height) {
		return nil, errs.WrapWithExtra(ErrInvalidSize, "minefield from layout", fmt.Sprintf("%dx%d", width, height))
	}
	if len(bits) != LayoutLen(width, height) {
		return nil, errs.WrapWithExtra(ErrBadLayout, "minefield from layout",
			fmt.Sprintf("%dx%d want %d bytes, got %d", width, height, LayoutLen(width, height), len(bits)))
	}
	cells := width * height
	if tail := cells & 7; tail != 0 && bits[len(bits)-1]>>tail != 0 {
		return nil, errs.WrapWithExtra(ErrBadLayout, "minefield from layout", "padding bits set")
	}

	board := grid.New[Tile](width, height)
	bombs := 0
	board.Each(func(x, y int, t *Tile) {
		i := x + y*width
		if bits[i>>3]&(1<<(i&7)) != 0 {
			t.Value = Bomb
			bombs++
		}
	})
	countNeighbors(board)
	return &Game{board: board, bombs: bombs}, nil
}
