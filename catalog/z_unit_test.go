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

package catalog

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/spec"
)

func yamlPreset(name string, id int) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("preset_name: " + name + "\npreset_id: " + string(rune('0'+id)) + "\nwidth: 9\nheight: 9\nbombs: 10\nsafety: zero\n")}
}

func TestRegisterAll(t *testing.T) {
	fsys := fstest.MapFS{
		"b.yaml":    yamlPreset("Beginner", 1),
		"i.json":    {Data: []byte(`{"preset_name":"intermediate","preset_id":2,"width":16,"height":16,"bombs":40,"safety":"zero"}`)},
		"README.md": {Data: []byte("ignored")},
	}
	c, err := New(fsys)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.RegisterAll(); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	all := c.All()
	if len(all) != 2 || all[0].Name != "beginner" || all[1].Name != "intermediate" {
		t.Fatalf("unexpected presets: %+v", all)
	}
	p, err := c.Preset(" BEGINNER ")
	if err != nil || p.Bombs != 10 {
		t.Fatalf("Preset lookup failed: %+v %v", p, err)
	}
	if _, err := c.Preset("expert"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegisterAllIsAtomic(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": yamlPreset("alpha", 1),
		"b.yaml": yamlPreset("alpha", 2),
	}
	c, err := New(fsys)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.RegisterAll(); !errors.Is(err, ErrDupName) {
		t.Fatalf("expected ErrDupName, got %v", err)
	}
	if len(c.All()) != 0 {
		t.Fatalf("catalog must stay empty after failed RegisterAll")
	}
}

func TestRejectNestedFS(t *testing.T) {
	fsys := fstest.MapFS{"sub/a.yaml": yamlPreset("a", 1)}
	if _, err := New(fsys); err == nil {
		t.Fatalf("expected flat fs error")
	}
}

func TestFrozenCatalog(t *testing.T) {
	c, err := New(fstest.MapFS{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Freeze()
	if err := c.Register(spec.Preset{Name: "x", ID: 1, Width: 2, Height: 2}); err == nil {
		t.Fatalf("expected error on frozen catalog")
	}
}

func TestRegisterDuplicateID(t *testing.T) {
	c, _ := New(fstest.MapFS{})
	if err := c.Register(spec.Preset{Name: "x", ID: 1, Width: 2, Height: 2}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := c.Register(spec.Preset{Name: "y", ID: 1, Width: 2, Height: 2}); !errors.Is(err, ErrDupID) {
		t.Fatalf("expected ErrDupID, got %v", err)
	}
}
