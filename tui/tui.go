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

// Package tui 以 tcell 在終端機上操作一局 Session。
//
// 只畫 Session 提供的玩家視角：沒有連鎖展開、沒有勝負判定，翻到雷只會在狀態列提示。
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/zintix-labs/minelab"
	"github.com/zintix-labs/minelab/sdk/minefield"
)

// 盤面左上角與每格寬度（字元 + 空白）
const (
	originX = 2
	originY = 2
	cellW   = 2
)

var (
	styleBase   = tcell.StyleDefault
	styleHidden = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFlag   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleBomb   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
	styleInfo   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// 數字顏色，依 Safe(1)..Safe(8)
var digitColors = [...]tcell.Color{
	tcell.ColorDefault,
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorRed,
	tcell.ColorNavy,
	tcell.ColorMaroon,
	tcell.ColorTeal,
	tcell.ColorPurple,
	tcell.ColorGray,
}

// Client 終端機前端。不是併發安全的；所有事件在同一個 goroutine 處理。
type Client struct {
	screen tcell.Screen
	s      *minelab.Session
	cx, cy int
	status string
	booms  int
}

// New screen 需已 Init。游標從盤面中心開始。
func New(screen tcell.Screen, s *minelab.Session) *Client {
	p := s.Preset()
	return &Client{
		screen: screen,
		s:      s,
		cx:     p.Width / 2,
		cy:     p.Height / 2,
		status: "arrows/hjkl move  space reveal  f flag  q quit",
	}
}

// Cursor 目前游標位置。
func (c *Client) Cursor() (int, int) {
	return c.cx, c.cy
}

// CellPos 盤面座標在螢幕上的位置。
func CellPos(x, y int) (int, int) {
	return originX + x*cellW, originY + y
}

// Run 事件迴圈，直到使用者離開或 screen 結束。
func (c *Client) Run() error {
	c.Draw()
	for {
		ev := c.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if c.Handle(ev) {
			return nil
		}
		c.Draw()
	}
}

// Handle 處理單一事件，回傳是否離開。
func (c *Client) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return c.key(ev)
	case *tcell.EventResize:
		c.screen.Sync()
	}
	return false
}

func (c *Client) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		c.move(-1, 0)
	case tcell.KeyRight:
		c.move(1, 0)
	case tcell.KeyUp:
		c.move(0, -1)
	case tcell.KeyDown:
		c.move(0, 1)
	case tcell.KeyEnter:
		c.reveal()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'h':
			c.move(-1, 0)
		case 'l':
			c.move(1, 0)
		case 'k':
			c.move(0, -1)
		case 'j':
			c.move(0, 1)
		case ' ':
			c.reveal()
		case 'f':
			c.flag()
		}
	}
	return false
}

func (c *Client) move(dx, dy int) {
	p := c.s.Preset()
	c.cx = min(max(c.cx+dx, 0), p.Width-1)
	c.cy = min(max(c.cy+dy, 0), p.Height-1)
}

func (c *Client) reveal() {
	v, ok, err := c.s.Reveal(c.cx, c.cy)
	switch {
	case err != nil:
		c.status = err.Error()
	case !ok:
		c.status = fmt.Sprintf("(%d,%d) unchanged", c.cx, c.cy)
	case v.IsBomb():
		c.booms++
		c.status = fmt.Sprintf("boom at (%d,%d)", c.cx, c.cy)
	default:
		c.status = fmt.Sprintf("(%d,%d) = %s", c.cx, c.cy, v)
	}
}

func (c *Client) flag() {
	st, err := c.s.Flag(c.cx, c.cy)
	if err != nil {
		c.status = err.Error()
		return
	}
	c.status = fmt.Sprintf("(%d,%d) %s", c.cx, c.cy, st)
}

// Draw 重畫整個畫面。
func (c *Client) Draw() {
	c.screen.Clear()
	p := c.s.Preset()
	cnt := c.s.Counts()
	c.text(0, 0, styleInfo, fmt.Sprintf("minelab %s %dx%d bombs=%d seed=%d", p.Name, p.Width, p.Height, p.Bombs, c.s.Seed()))
	c.text(0, 1, styleBase, fmt.Sprintf("open=%d flags=%d booms=%d", cnt.Open, cnt.Flagged, c.booms))

	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			st, v, ok, err := c.s.Tile(x, y)
			if err != nil {
				continue
			}
			r, style := glyph(st, v, ok)
			if x == c.cx && y == c.cy {
				style = style.Reverse(true)
			}
			sx, sy := CellPos(x, y)
			c.screen.SetContent(sx, sy, r, nil, style)
		}
	}
	c.text(0, originY+p.Height+1, styleBase, c.status)
	c.screen.Show()
}

func (c *Client) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		c.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// glyph Hidden '·'、Flag 'F'、Bomb '*'、Safe(0) 空白、其餘為數字。
func glyph(st minefield.State, v minefield.Value, ok bool) (rune, tcell.Style) {
	switch {
	case st == minefield.Flag:
		return 'F', styleFlag
	case !ok:
		return '·', styleHidden
	case v.IsBomb():
		return '*', styleBomb
	}
	n, _ := v.Count()
	if n == 0 {
		return ' ', styleBase
	}
	return rune('0' + n), styleBase.Foreground(digitColors[n])
}
