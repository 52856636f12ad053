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

import "strconv"

// Value 格子的底值：Bomb，或 Safe(n)（n 為 8 鄰格中的地雷數，0..8）。
// 零值即 Safe(0)。
type Value int8

// Bomb 地雷
const Bomb Value = -1

// Safe 建立 Safe(n)。
func Safe(n int) Value {
	return Value(n)
}

func (v Value) IsBomb() bool {
	return v == Bomb
}

// Count 回傳 Safe 的鄰雷數；Bomb 回傳 (0, false)。
func (v Value) Count() (int, bool) {
	if v.IsBomb() {
		return 0, false
	}
	return int(v), true
}

func (v Value) String() string {
	if v.IsBomb() {
		return "Bomb"
	}
	return "Safe(" + strconv.Itoa(int(v)) + ")"
}

// State 格子的可見狀態。零值為 Hidden。
type State uint8

const (
	Hidden State = iota
	Flag
	Open
)

var stateNames = [...]string{
	Hidden: "hidden",
	Flag:   "flag",
	Open:   "open",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Tile 一格 = 底值 + 狀態。零值為 Safe(0)+Hidden。
type Tile struct {
	Value Value
	State State
}
