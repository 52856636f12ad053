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

// Rule 佈雷約束：回傳 true 代表 (x, y) 可以放雷。
// 約束與抽樣迴圈正交：抽樣只負責「抽到可用的格子為止」。
type Rule func(x, y int) bool

// Anywhere 無約束，第一次點擊也可能是雷。
func Anywhere() Rule {
	return func(int, int) bool { return true }
}

// ExcludeCell 排除單一格 (cx, cy)：保證第一次點擊不是雷。
func ExcludeCell(cx, cy int) Rule {
	return func(x, y int) bool {
		return x != cx || y != cy
	}
}

// ExcludeNeighborhood 排除以 (cx, cy) 為中心的 3x3 區塊（Chebyshev 距離 <= 1）：
// 保證第一次點擊開出 Safe(0)。
func ExcludeNeighborhood(cx, cy int) Rule {
	return func(x, y int) bool {
		return absDiff(x, cx) > 1 || absDiff(y, cy) > 1
	}
}

// eligible 計算 rule 允許的格數。佈雷前先確認容量，避免拒絕採樣永不結束。
func eligible(width, height int, rule Rule) int {
	n := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if rule(x, y) {
				n++
			}
		}
	}
	return n
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
