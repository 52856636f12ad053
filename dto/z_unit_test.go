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

package dto

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zintix-labs/minelab/sdk/minefield"
	"github.com/zintix-labs/minelab/spec"
)

func TestCreateRequestValid(t *testing.T) {
	if err := (&CreateRequest{}).Valid(); err == nil {
		t.Fatalf("expected error when neither preset nor custom")
	}
	both := &CreateRequest{Preset: "beginner", Custom: &spec.Preset{Width: 3, Height: 3}}
	if err := both.Valid(); err == nil {
		t.Fatalf("expected error when both given")
	}
	seed := int64(1)
	if err := (&CreateRequest{Preset: "beginner", Layout: "2x2:AA"}).Valid(); err == nil {
		t.Fatalf("expected error when preset and layout given")
	}
	if err := (&CreateRequest{Layout: "2x2:AA", Seed: &seed}).Valid(); err == nil {
		t.Fatalf("expected error for seed with layout")
	}
	if err := (&CreateRequest{Layout: "2x2:AA"}).Valid(); err != nil {
		t.Fatalf("layout alone should pass: %v", err)
	}
	c := &CreateRequest{Custom: &spec.Preset{Width: 5, Height: 5, Bombs: 3, Safety: spec.SafetyZero}}
	if err := c.Valid(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.Custom.Name != "custom" {
		t.Fatalf("expected default custom name, got %q", c.Custom.Name)
	}
}

func TestSimRequestValid(t *testing.T) {
	s := &SimRequest{Preset: "beginner", Boards: 10}
	if err := s.Valid(); err != nil || s.Workers != 1 {
		t.Fatalf("unexpected: %v workers=%d", err, s.Workers)
	}
	if err := (&SimRequest{Preset: "x", Boards: MaxSimBoards + 1}).Valid(); err == nil {
		t.Fatalf("expected boards limit error")
	}
}

func TestDecodeJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"x":1,"y":2,"flag":true}`))
	var m MoveRequest
	if err := DecodeJSON(httptest.NewRecorder(), r, &m); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if m.X != 1 || m.Y != 2 || m.Flag == nil || !*m.Flag {
		t.Fatalf("unexpected move: %+v", m)
	}

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"x":1,"z":2}`))
	if err := DecodeJSON(httptest.NewRecorder(), r, &m); err == nil {
		t.Fatalf("expected unknown field error")
	}
	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"x":1}{"x":2}`))
	if err := DecodeJSON(httptest.NewRecorder(), r, &m); err == nil {
		t.Fatalf("expected trailing data error")
	}
}

func TestResultsHideHiddenValues(t *testing.T) {
	tr := NewTileResult(1, 1, minefield.Hidden, 0, false)
	if tr.Count != nil || tr.Bomb {
		t.Fatalf("hidden tile leaked value: %+v", tr)
	}
	rr := NewRevealResult(0, 0, minefield.Safe(3), true)
	if rr.Count == nil || *rr.Count != 3 || rr.State != "open" {
		t.Fatalf("unexpected reveal result: %+v", rr)
	}
	rr = NewRevealResult(0, 0, minefield.Bomb, true)
	if !rr.Bomb || rr.Count != nil {
		t.Fatalf("unexpected bomb result: %+v", rr)
	}
	if CellCode(minefield.Flag, 0, false) != 'F' || CellCode(minefield.Open, minefield.Safe(4), true) != '4' ||
		CellCode(minefield.Hidden, 0, false) != '-' || CellCode(minefield.Open, minefield.Bomb, true) != '*' {
		t.Fatalf("unexpected cell codes")
	}
}
