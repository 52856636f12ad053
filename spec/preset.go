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

// Package spec 定義盤面預設（Preset）設定檔格式與基本檢查。
package spec

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/sdk/minefield"
)

// MaxSide 盤面單邊上限。寬高都受限，所以 Width*Height 不會溢位。
const MaxSide = 512

// PID 預設編號（Catalog 內唯一）
type PID uint

// Safety 第一次點擊的保護等級，對應三種佈雷約束。
type Safety uint8

const (
	// SafetyNone 不保護：第一次點擊也可能是雷。
	SafetyNone Safety = iota
	// SafetyCell 保證第一次點擊的格子不是雷。
	SafetyCell
	// SafetyZero 保證第一次點擊開出 Safe(0)（3x3 內無雷）。
	SafetyZero
)

var safetyNames = map[Safety]string{
	SafetyNone: "none",
	SafetyCell: "cell",
	SafetyZero: "zero",
}

func (s Safety) String() string {
	if str, ok := safetyNames[s]; ok {
		return str
	}
	return fmt.Sprintf("safety(%d)", uint8(s))
}

// ParseSafety 不分大小寫解析 none|cell|zero；空字串視為 zero。
func ParseSafety(s string) (Safety, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return SafetyNone, nil
	case "cell":
		return SafetyCell, nil
	case "zero", "":
		return SafetyZero, nil
	default:
		return 0, errs.Warnf("unknown safety %q (want none|cell|zero)", s)
	}
}

func (s Safety) MarshalText() ([]byte, error) {
	if _, ok := safetyNames[s]; !ok {
		return nil, errs.Warnf("unknown safety %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Safety) UnmarshalText(b []byte) error {
	v, err := ParseSafety(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Rule 第一次點擊在 (cx, cy) 時對應的佈雷約束。
func (s Safety) Rule(cx, cy int) minefield.Rule {
	switch s {
	case SafetyCell:
		return minefield.ExcludeCell(cx, cy)
	case SafetyZero:
		return minefield.ExcludeNeighborhood(cx, cy)
	default:
		return minefield.Anywhere()
	}
}

// Excluded 第一次點擊在 (cx, cy) 時，被排除不放雷的格數（已裁切盤面邊界）。
func (s Safety) Excluded(width, height, cx, cy int) int {
	switch s {
	case SafetyCell:
		return 1
	case SafetyZero:
		w := min(cx+2, width) - max(cx-1, 0)
		h := min(cy+2, height) - max(cy-1, 0)
		return w * h
	default:
		return 0
	}
}

// Preset 一組盤面預設。
type Preset struct {
	Name   string `yaml:"preset_name" json:"preset_name"`
	ID     PID    `yaml:"preset_id"   json:"preset_id"`
	Width  int    `yaml:"width"       json:"width"`
	Height int    `yaml:"height"      json:"height"`
	Bombs  int    `yaml:"bombs"       json:"bombs"`
	Safety Safety `yaml:"safety"      json:"safety"`
}

// Valid 基本檢查。
//
// 容量檢查採「最壞情況」：SafetyZero 以完整 3x3 計算，確保任何第一次點擊位置都可行。
func (p *Preset) Valid() error {
	p.Name = strings.ToLower(strings.TrimSpace(p.Name))
	if p.Name == "" {
		return errs.NewWarn("preset name required")
	}
	if p.Width <= 0 || p.Height <= 0 {
		return errs.Warnf("preset %s: invalid size %dx%d", p.Name, p.Width, p.Height)
	}
	if p.Width > MaxSide || p.Height > MaxSide {
		return errs.Warnf("preset %s: size %dx%d exceeds %dx%d", p.Name, p.Width, p.Height, MaxSide, MaxSide)
	}
	if p.Bombs < 0 {
		return errs.Warnf("preset %s: negative bombs %d", p.Name, p.Bombs)
	}
	if _, ok := safetyNames[p.Safety]; !ok {
		return errs.Warnf("preset %s: unknown safety %d", p.Name, uint8(p.Safety))
	}
	// (1,1) 的鄰域在任何盤面上都是裁切後最大的一塊。
	worst := p.Safety.Excluded(p.Width, p.Height, 1, 1)
	if p.Bombs > p.Width*p.Height-worst {
		return errs.Warnf("preset %s: %d bombs do not fit %dx%d with safety %s",
			p.Name, p.Bombs, p.Width, p.Height, p.Safety)
	}
	return nil
}

// Density 地雷密度
func (p *Preset) Density() float64 {
	cells := p.Width * p.Height
	if cells == 0 {
		return 0
	}
	return float64(p.Bombs) / float64(cells)
}
