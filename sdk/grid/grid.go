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

// Package grid 提供固定寬高、row-major 的泛型二維容器。
//
// index(x, y) = x + y*width。容器建立後不可改變大小，只能就地讀寫。
// 越界存取視為呼叫端違約，直接 panic（不回傳 error）；需要優雅降級的呼叫端請先用 InBounds 檢查。
package grid

import (
	"fmt"
	"math"
)

// Grid 固定大小的二維容器，元素初值為 T 的零值。
type Grid[T any] struct {
	width  int
	height int
	data   []T
}

// New 配置 width*height 個零值元素。寬或高為負，或 width*height 溢位時 panic。
func New[T any](width, height int) *Grid[T] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("grid: negative size %dx%d", width, height))
	}
	if !SizeOK(width, height) {
		panic(fmt.Sprintf("grid: size %dx%d overflows int", width, height))
	}
	return &Grid[T]{
		width:  width,
		height: height,
		data:   make([]T, width*height),
	}
}

// SizeOK 非負的 width*height 不會溢位。
func SizeOK(width, height int) bool {
	if width < 0 || height < 0 {
		return false
	}
	return width == 0 || height <= math.MaxInt/width
}

func (g *Grid[T]) Width() int {
	return g.width
}

func (g *Grid[T]) Height() int {
	return g.height
}

// Len 元素總數
func (g *Grid[T]) Len() int {
	return len(g.data)
}

// InBounds 0 <= x < width 且 0 <= y < height
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get 回傳 (x, y) 的元素值。
func (g *Grid[T]) Get(x, y int) T {
	return g.data[g.index(x, y)]
}

// Ptr 回傳 (x, y) 元素的指標，供就地修改。
func (g *Grid[T]) Ptr(x, y int) *T {
	return &g.data[g.index(x, y)]
}

// Set 覆寫 (x, y) 的元素。
func (g *Grid[T]) Set(x, y int, val T) {
	g.data[g.index(x, y)] = val
}

// Each 依 row-major 順序走訪所有元素。
func (g *Grid[T]) Each(fn func(x, y int, v *T)) {
	for y := 0; y < g.height; y++ {
		row := y * g.width
		for x := 0; x < g.width; x++ {
			fn(x, y, &g.data[row+x])
		}
	}
}

// index 只靠 slice 邊界無法擋下 x >= width（會落到下一列），所以逐軸檢查。
func (g *Grid[T]) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: index (%d,%d) out of range %dx%d", x, y, g.width, g.height))
	}
	return x + y*g.width
}
