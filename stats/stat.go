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

// Package stats 把批次佈雷的累計資料整理成報表：
// 值分佈、每盤 Safe(0) 數量的平均與標準差、以及佈雷位置的卡方均勻性檢定。
package stats

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var lang language.Tag = language.English

// 值分佈的欄位名：Safe(0)..Safe(8)
var ValueLabels = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8"}

// Report 批次佈雷統計報表
type Report struct {
	Summary    *SummaryReport    `json:"Summary"`
	Values     *ValueReport      `json:"Values"`
	Zeros      *ZeroReport       `json:"Zeros"`
	Uniformity *UniformityReport `json:"Uniformity"`
	Heat       [][]int           `json:"Heat"`

	zeros  []float64 // 每盤 Safe(0) 數
	expect []float64 // 每格期望落雷次數（row-major）
	isDone bool
}

type SummaryReport struct {
	Preset   string  `json:"Preset"`
	Width    int     `json:"Width"`
	Height   int     `json:"Height"`
	Bombs    int     `json:"Bombs"`
	Safety   string  `json:"Safety"`
	Density  float64 `json:"Density"`
	FirstX   int     `json:"FirstX"`
	FirstY   int     `json:"FirstY"`
	Seed     int64   `json:"Seed"`
	Workers  int     `json:"Workers"`
	Boards   int     `json:"Boards"`
	Failures int     `json:"Failures"`
}

// ValueReport Safe 值分佈（不含雷）
type ValueReport struct {
	Labels []string  `json:"Labels"`
	Count  []int     `json:"Count"`
	Ratio  []float64 `json:"Ratio"`
}

// ZeroReport 每盤 Safe(0) 格數
type ZeroReport struct {
	Mean float64 `json:"Mean"`
	Std  float64 `json:"Std"`
	Min  int     `json:"Min"`
	Max  int     `json:"Max"`
}

// UniformityReport 落雷位置卡方檢定（只計入可放雷的格子）
type UniformityReport struct {
	Cells  int     `json:"Cells"`
	ChiSq  float64 `json:"ChiSq"`
	DoF    float64 `json:"DoF"`
	PValue float64 `json:"PValue"`
}

// NewReport 由累計資料建立報表；heat 與 expect 皆為 row-major，長度 width*height。
func NewReport(sum SummaryReport, values [9]int, zeros []float64, heat []int, expect []float64) *Report {
	r := &Report{
		Summary: &sum,
		Values: &ValueReport{
			Labels: ValueLabels,
			Count:  append([]int(nil), values[:]...),
			Ratio:  make([]float64, len(values)),
		},
		Zeros:      &ZeroReport{},
		Uniformity: &UniformityReport{},
		Heat:       make([][]int, sum.Height),
		zeros:      zeros,
		expect:     expect,
	}
	for y := range r.Heat {
		r.Heat[y] = append([]int(nil), heat[y*sum.Width:(y+1)*sum.Width]...)
	}
	return r
}

// Done 一次性計算衍生欄位；重複呼叫無副作用。
func (r *Report) Done() {
	if r.isDone {
		return
	}
	total := 0
	for _, c := range r.Values.Count {
		total += c
	}
	if total > 0 {
		for i, c := range r.Values.Count {
			r.Values.Ratio[i] = float64(c) / float64(total)
		}
	}
	r.Zeros = zeroReport(r.zeros)
	r.Uniformity = r.uniformity()
	r.isDone = true
}

func zeroReport(zeros []float64) *ZeroReport {
	z := &ZeroReport{}
	if len(zeros) == 0 {
		return z
	}
	if len(zeros) == 1 {
		z.Mean = zeros[0]
	} else {
		z.Mean, z.Std = stat.MeanStdDev(zeros, nil)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range zeros {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	z.Min, z.Max = int(lo), int(hi)
	return z
}

func (r *Report) uniformity() *UniformityReport {
	u := &UniformityReport{}
	obs := make([]float64, 0, len(r.expect))
	exp := make([]float64, 0, len(r.expect))
	w := r.Summary.Width
	for i, e := range r.expect {
		if e <= 0 {
			continue
		}
		obs = append(obs, float64(r.Heat[i/w][i%w]))
		exp = append(exp, e)
	}
	u.Cells = len(obs)
	if u.Cells < 2 {
		u.PValue = 1
		return u
	}
	u.ChiSq = stat.ChiSquare(obs, exp)
	u.DoF = float64(u.Cells - 1)
	u.PValue = 1 - distuv.ChiSquared{K: u.DoF}.CDF(u.ChiSq)
	return u
}

// StdOut 輸出用時與摘要表
func (r *Report) StdOut(ut time.Duration) {
	r.Done()
	fmt.Print(formatDuration(ut, r.Summary.Boards))
	fmt.Println(r.Table())
}

// Table 主控台表格（摘要 + 值分佈）
func (r *Report) Table() string {
	r.Done()
	sk, sm := r.fmtBasic()
	vk, vm := r.fmtValues()
	return fmtTable(r.Summary.Preset, sk, sm) + fmtTable("Safe Value Distribution", vk, vm)
}

// ============================================================
// ** 內部方法 **
// ============================================================

func formatDuration(d time.Duration, boards int) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	bps := int(float64(boards) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\nbps : %d boards/sec\n", sec, bps)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\nbps : %d boards/sec\n", m, s, bps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\nbps : %d boards/sec\n", h, m, s, bps)
}

func (r *Report) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	s := r.Summary
	basic := map[string]string{
		"Preset":      s.Preset,
		"Board":       fmt.Sprintf("%dx%d", s.Width, s.Height),
		"Bombs":       p.Sprintf("%d", s.Bombs),
		"Density":     p.Sprintf("%.2f %%", 100.0*s.Density),
		"Safety":      s.Safety,
		"First Click": fmt.Sprintf("(%d,%d)", s.FirstX, s.FirstY),
		"Seed":        fmt.Sprintf("%d", s.Seed),
		"Workers":     p.Sprintf("%d", s.Workers),
		"Boards":      p.Sprintf("%d", s.Boards),
		"Failures":    p.Sprintf("%d", s.Failures),
		"Zeros Mean":  p.Sprintf("%.3f", r.Zeros.Mean),
		"Zeros STD":   p.Sprintf("%.3f", r.Zeros.Std),
		"Zeros Range": p.Sprintf("[%d,%d]", r.Zeros.Min, r.Zeros.Max),
		"Chi-Square":  p.Sprintf("%.2f (dof %.0f)", r.Uniformity.ChiSq, r.Uniformity.DoF),
		"P-Value":     p.Sprintf("%.4f", r.Uniformity.PValue),
	}
	keys := []string{"Preset", "Board", "Bombs", "Density", "Safety", "First Click", "Seed", "Workers",
		"Boards", "Failures", "Zeros Mean", "Zeros STD", "Zeros Range", "Chi-Square", "P-Value"}
	return keys, basic
}

func (r *Report) fmtValues() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	keys := make([]string, len(r.Values.Labels))
	m := make(map[string]string, len(keys))
	for i, l := range r.Values.Labels {
		k := "Safe(" + l + ")"
		keys[i] = k
		m[k] = p.Sprintf("%d (%.2f %%)", r.Values.Count[i], 100.0*r.Values.Ratio[i])
	}
	return keys, m
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := runewidth.StringWidth(title)
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString(p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k]))))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
