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

// Package dto 定義 HTTP 邊界的請求/回應結構。
package dto

import (
	"github.com/zintix-labs/minelab/sdk/minefield"
	"github.com/zintix-labs/minelab/spec"
)

// 盤面視圖的格子代碼
const (
	CellHidden = '-'
	CellFlag   = 'F'
	CellBomb   = '*'
)

// SessionSummary 建局回應
type SessionSummary struct {
	ID        string      `json:"id"`
	Preset    string      `json:"preset"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Bombs     int         `json:"bombs"`
	Safety    spec.Safety `json:"safety"`
	Seed      int64       `json:"seed"`
	Generated bool        `json:"generated"`
}

// Counts 各狀態格數
type Counts struct {
	Hidden  int `json:"hidden"`
	Flagged int `json:"flagged"`
	Open    int `json:"open"`
}

// BoardView 玩家視角盤面。
//
// Rows[y][x]：'-' 未開、'F' 旗、'*' 已翻開的雷、'0'..'8' 已翻開的安全格。
// 未翻開格子的底值永遠不會出現在這裡。
type BoardView struct {
	SessionSummary
	Counts Counts   `json:"counts"`
	Rows   []string `json:"rows"`
}

// RevealResult 翻格結果。Revealed=false 代表無效果（已開或有旗）。
type RevealResult struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Revealed bool   `json:"revealed"`
	Bomb     bool   `json:"bomb,omitempty"`
	Count    *int   `json:"count,omitempty"`
	State    string `json:"state"`
}

// TileResult 單格查詢 / 插旗結果
type TileResult struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	State string `json:"state"`
	Bomb  bool   `json:"bomb,omitempty"`
	Count *int   `json:"count,omitempty"`
}

// LayoutResult 佈局碼回應
type LayoutResult struct {
	ID     string `json:"id"`
	Layout string `json:"layout"`
}

// NewRevealResult 由引擎回傳值組出回應。
func NewRevealResult(x, y int, v minefield.Value, ok bool) RevealResult {
	r := RevealResult{X: x, Y: y, Revealed: ok, State: minefield.Open.String()}
	if !ok {
		r.State = ""
		return r
	}
	if v.IsBomb() {
		r.Bomb = true
		return r
	}
	n, _ := v.Count()
	r.Count = &n
	return r
}

// NewTileResult 由 Get 的回傳組出回應。
func NewTileResult(x, y int, state minefield.State, v minefield.Value, ok bool) TileResult {
	r := TileResult{X: x, Y: y, State: state.String()}
	if !ok {
		return r
	}
	if v.IsBomb() {
		r.Bomb = true
		return r
	}
	n, _ := v.Count()
	r.Count = &n
	return r
}

// CellCode 把一格轉成視圖代碼。
func CellCode(state minefield.State, v minefield.Value, ok bool) byte {
	switch {
	case state == minefield.Flag:
		return CellFlag
	case !ok:
		return CellHidden
	case v.IsBomb():
		return CellBomb
	default:
		n, _ := v.Count()
		return byte('0' + n)
	}
}
