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
	"context"
	"errors"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zintix-labs/minelab/corefmt"
	"github.com/zintix-labs/minelab/demo/presets"
	"github.com/zintix-labs/minelab/dto"
	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/sdk/core"
	"github.com/zintix-labs/minelab/sdk/minefield"
	"github.com/zintix-labs/minelab/spec"
)

func newTestLab(t *testing.T) *Lab {
	t.Helper()
	lab, err := New(core.Default(), Configs(presets.FS))
	require.NoError(t, err)
	return lab
}

func TestLabPresets(t *testing.T) {
	lab := newTestLab(t)
	ps := lab.Presets()
	require.NotEmpty(t, ps)
	for i := 1; i < len(ps); i++ {
		assert.Less(t, ps[i-1].ID, ps[i].ID)
	}
	p, err := lab.Preset("Beginner")
	require.NoError(t, err)
	assert.Equal(t, 9, p.Width)
	assert.Equal(t, 10, p.Bombs)

	_, err = lab.Preset("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestLabNewErrors(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)

	bad := fstest.MapFS{"x.yaml": {Data: []byte("preset_name: x\npreset_id: 1\nwidth: 2\nheight: 2\nbombs: 9\n")}}
	_, err = New(nil, Configs(bad))
	require.Error(t, err)
	assert.Equal(t, errs.Warn, errs.Level(err))
}

func TestSessionDeferredGeneration(t *testing.T) {
	lab := newTestLab(t)
	s, err := lab.NewSession("beginner", 42)
	require.NoError(t, err)
	assert.False(t, s.Generated())
	_, err = s.Layout()
	assert.True(t, errors.Is(err, ErrNotGenerated))

	v, ok, err := s.Reveal(4, 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, minefield.Safe(0), v)
	assert.True(t, s.Generated())

	// 同 seed 同首擊 => 同盤面
	s2, err := lab.NewSession("beginner", 42)
	require.NoError(t, err)
	_, _, err = s2.Reveal(4, 4)
	require.NoError(t, err)
	l1, err := s.Layout()
	require.NoError(t, err)
	l2, err := s2.Layout()
	require.NoError(t, err)
	assert.Equal(t, l1, l2)
	assert.NotEqual(t, s.ID(), s2.ID())

	// 佈局碼可重建同一盤
	w, h, bits, err := corefmt.DecodeLayout(l1)
	require.NoError(t, err)
	g, err := minefield.FromLayout(w, h, bits)
	require.NoError(t, err)
	assert.Equal(t, 10, g.Bombs())
}

func TestReplaySession(t *testing.T) {
	lab := newTestLab(t)
	s, err := lab.NewSession("expert", 99)
	require.NoError(t, err)
	_, _, err = s.Reveal(10, 5)
	require.NoError(t, err)
	code, err := s.Layout()
	require.NoError(t, err)

	r, err := lab.ReplaySession(code)
	require.NoError(t, err)
	assert.True(t, r.Generated())
	assert.Equal(t, 30, r.Preset().Width)
	assert.Equal(t, 99, r.Preset().Bombs)
	assert.Equal(t, dto.Counts{Hidden: 30 * 16}, r.Counts())
	again, err := r.Layout()
	require.NoError(t, err)
	assert.Equal(t, code, again)

	for y := 0; y < 16; y++ {
		for x := 0; x < 30; x++ {
			v1, _, err := s.Reveal(x, y)
			require.NoError(t, err)
			v2, _, err := r.Reveal(x, y)
			require.NoError(t, err)
			if x == 10 && y == 5 {
				continue // 原局這格已翻開
			}
			require.Equal(t, v1, v2, "(%d,%d)", x, y)
		}
	}

	_, err = lab.ReplaySession("garbage")
	assert.ErrorIs(t, err, corefmt.ErrBadCode)
	big := corefmt.EncodeLayout(spec.MaxSide+1, 1, make([]byte, minefield.LayoutLen(spec.MaxSide+1, 1)))
	_, err = lab.ReplaySession(big)
	assert.Error(t, err)
	short := corefmt.EncodeLayout(9, 9, []byte{0x01})
	_, err = lab.ReplaySession(short)
	assert.ErrorIs(t, err, minefield.ErrBadLayout)
}

func TestSessionSafetyModes(t *testing.T) {
	lab := newTestLab(t)
	for seed := int64(0); seed < 30; seed++ {
		s, err := lab.NewCustomSession(spec.Preset{Name: "dense", Width: 4, Height: 4, Bombs: 15, Safety: spec.SafetyCell}, seed)
		require.NoError(t, err)
		v, ok, err := s.Reveal(0, 0)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, minefield.Safe(3), v)
	}
	s, err := lab.NewCustomSession(spec.Preset{Name: "full", Width: 2, Height: 2, Bombs: 4, Safety: spec.SafetyNone}, 1)
	require.NoError(t, err)
	v, ok, err := s.Reveal(1, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, v.IsBomb())

	_, err = lab.NewCustomSession(spec.Preset{Name: "bad", Width: 3, Height: 3, Bombs: 1, Safety: spec.SafetyZero}, 1)
	require.Error(t, err)
}

func TestSessionPendingFlags(t *testing.T) {
	lab := newTestLab(t)
	s, err := lab.NewSession("beginner", 7)
	require.NoError(t, err)

	st, err := s.Flag(0, 0)
	require.NoError(t, err)
	assert.Equal(t, minefield.Flag, st)
	st, err = s.SetFlag(8, 8, true)
	require.NoError(t, err)
	assert.Equal(t, minefield.Flag, st)
	st, err = s.SetFlag(8, 8, false)
	require.NoError(t, err)
	assert.Equal(t, minefield.Hidden, st)

	// 插旗格不會觸發佈雷
	_, ok, err := s.Reveal(0, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.Generated())

	_, ok, err = s.Reveal(4, 4)
	require.NoError(t, err)
	assert.True(t, ok)
	st, _, ok, err = s.Tile(0, 0)
	require.NoError(t, err)
	assert.Equal(t, minefield.Flag, st)
	assert.False(t, ok)

	c := s.Counts()
	assert.Equal(t, 81, c.Hidden+c.Flagged+c.Open)
	assert.Equal(t, 1, c.Flagged)
	assert.GreaterOrEqual(t, c.Open, 1)
}

func TestSessionOutOfRange(t *testing.T) {
	lab := newTestLab(t)
	s, err := lab.NewSession("beginner", 1)
	require.NoError(t, err)
	for _, xy := range [][2]int{{-1, 0}, {0, -1}, {9, 0}, {0, 9}} {
		_, _, err := s.Reveal(xy[0], xy[1])
		assert.True(t, errors.Is(err, ErrOutOfRange), "reveal %v", xy)
		_, err = s.Flag(xy[0], xy[1])
		assert.True(t, errors.Is(err, ErrOutOfRange), "flag %v", xy)
		_, _, _, err = s.Tile(xy[0], xy[1])
		assert.Equal(t, errs.Warn, errs.Level(err))
	}
	assert.False(t, s.Generated())
}

func TestSessionView(t *testing.T) {
	lab := newTestLab(t)
	s, err := lab.NewSession("classic", 3)
	require.NoError(t, err)
	_, err = s.Flag(7, 7)
	require.NoError(t, err)
	v := s.View()
	require.Len(t, v.Rows, 8)
	assert.Equal(t, "-------F", v.Rows[7])
	assert.False(t, v.Generated)

	_, _, err = s.Reveal(0, 0)
	require.NoError(t, err)
	v = s.View()
	assert.True(t, v.Generated)
	assert.NotEqual(t, byte('-'), v.Rows[0][0])
	for y, row := range v.Rows {
		for x := range row {
			if x == 0 && y == 0 || x == 7 && y == 7 {
				continue
			}
			assert.Equal(t, byte('-'), row[x], "hidden cell (%d,%d) leaked", x, y)
		}
	}
}

func TestSessionConcurrentAccess(t *testing.T) {
	lab := newTestLab(t)
	s, err := lab.NewSession("expert", 11)
	require.NoError(t, err)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 60; i++ {
				x, y := (w*7+i)%30, (w+i)%16
				if i%3 == 0 {
					_, _ = s.Flag(x, y)
					continue
				}
				_, _, _ = s.Reveal(x, y)
			}
		}(w)
	}
	wg.Wait()
	c := s.Counts()
	assert.Equal(t, 30*16, c.Hidden+c.Flagged+c.Open)
}

func TestStore(t *testing.T) {
	lab := newTestLab(t)
	st := NewStore(2, time.Minute, nil)
	a, _ := lab.NewSession("beginner", 1)
	b, _ := lab.NewSession("beginner", 2)
	c, _ := lab.NewSession("beginner", 3)
	require.NoError(t, st.Put(a))
	require.NoError(t, st.Put(b))
	err := st.Put(c)
	assert.True(t, errors.Is(err, ErrStoreFull))
	assert.Error(t, st.Put(a))

	got, err := st.Get(a.ID())
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = st.Get("missing")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	require.NoError(t, st.Delete(b.ID()))
	assert.True(t, errors.Is(st.Delete(b.ID()), errs.ErrNotFound))
	assert.Equal(t, 1, st.Len())

	assert.Equal(t, 0, st.Sweep(time.Now()))
	assert.Equal(t, 1, st.Sweep(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, st.Len())

	m := st.Metrics()
	assert.Equal(t, 2, m.Created)
	assert.Equal(t, 1, m.Evicted)
	assert.Equal(t, 1, m.Deleted)
	assert.Equal(t, 1, m.Rejected)

	st.Close()
	st.Close()
	assert.True(t, errors.Is(st.Put(c), ErrStoreClosed))
	_, err = st.Get(a.ID())
	assert.Error(t, err)
}

func TestSimulatorDeterministic(t *testing.T) {
	lab := newTestLab(t)
	sim, err := lab.NewSimulator("beginner", 99)
	require.NoError(t, err)

	r1, _, err := sim.Sim(context.Background(), 200, 3, false)
	require.NoError(t, err)
	r2, _, err := sim.Sim(context.Background(), 200, 3, false)
	require.NoError(t, err)
	assert.Equal(t, r1.Heat, r2.Heat)
	assert.Equal(t, r1.Values.Count, r2.Values.Count)

	assert.Equal(t, 200, r1.Summary.Boards)
	assert.Equal(t, 0, r1.Summary.Failures)
	bombs := 0
	for _, row := range r1.Heat {
		for _, h := range row {
			bombs += h
		}
	}
	assert.Equal(t, 200*10, bombs)
	// 中心首擊：中心 3x3 永遠無雷，中心必為 Safe(0)
	for y := 3; y <= 5; y++ {
		for x := 3; x <= 5; x++ {
			assert.Zero(t, r1.Heat[y][x])
		}
	}
	assert.GreaterOrEqual(t, r1.Zeros.Min, 1)
	assert.Equal(t, 81-9, r1.Uniformity.Cells)
}

func TestSimulatorErrors(t *testing.T) {
	lab := newTestLab(t)
	sim, err := lab.NewSimulator("beginner", 1)
	require.NoError(t, err)
	_, _, err = sim.Sim(context.Background(), 0, 1, false)
	assert.Error(t, err)
	_, _, err = sim.Sim(context.Background(), 1, 0, false)
	assert.Error(t, err)
	assert.Error(t, sim.SetFirstClick(9, 0))
	require.NoError(t, sim.SetFirstClick(0, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = sim.Sim(ctx, 100, 2, false)
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = lab.NewSimulator("nope", 1)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestSeedMaker(t *testing.T) {
	a, b := newSeedMaker(5), newSeedMaker(5)
	seen := map[int64]bool{}
	for i := 0; i < 1000; i++ {
		x := a.next()
		assert.Equal(t, x, b.next())
		assert.GreaterOrEqual(t, x, int64(0))
		assert.False(t, seen[x])
		seen[x] = true
	}
}
