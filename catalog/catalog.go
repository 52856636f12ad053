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

// Package catalog 是盤面預設的目錄（Single Source of Truth）。
//
// 預設檔來源一律以 fs.FS 注入，且必須是扁平目錄（不含子目錄）；
// 只索引 .yaml/.yml/.json，其餘檔案忽略。
package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/spec"
)

var (
	ErrDupID   = errs.NewFatal("duplicate preset id")
	ErrDupName = errs.NewFatal("duplicate preset name")
)

type Entry struct {
	ID         spec.PID
	Name       string
	ConfigName string
}

type Catalog struct {
	byID    map[spec.PID]Entry
	byName  map[string]Entry
	presets map[spec.PID]spec.Preset
	ids     []spec.PID
	config  *multiFS
	frozen  bool
}

func New(cfg ...fs.FS) (*Catalog, error) {
	m, err := newMultiFS(cfg...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	return &Catalog{
		byID:    map[spec.PID]Entry{},
		byName:  map[string]Entry{},
		presets: map[spec.PID]spec.Preset{},
		ids:     make([]spec.PID, 0, 16),
		config:  m,
	}, nil
}

// RegisterAll 解析所有預設檔並一次性註冊。
//
//  1. Fail-fast：任何檔案讀取/解析/檢查失敗即回傳 error。
//  2. 原子性：全部成功才寫入，不會留下半註冊的目錄。
//  3. 依檔名排序處理，行為可重現。
func (c *Catalog) RegisterAll() error {
	if c.frozen {
		return errs.NewWarn("can not register when catalog already frozen")
	}
	names := c.config.Names()
	entries := make([]Entry, 0, len(names))
	parsed := make([]*spec.Preset, 0, len(names))
	for _, name := range names {
		p, err := c.load(name)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{ID: p.ID, Name: p.Name, ConfigName: name})
		parsed = append(parsed, p)
	}
	if err := c.check(entries); err != nil {
		return err
	}
	for i, e := range entries {
		c.add(e, *parsed[i])
	}
	return nil
}

// Register 登記單一預設（不經檔案，例如測試或程式內建的自訂盤面）。
func (c *Catalog) Register(p spec.Preset) error {
	if c.frozen {
		return errs.NewWarn("can not register when catalog already frozen")
	}
	if err := p.Valid(); err != nil {
		return err
	}
	e := Entry{ID: p.ID, Name: p.Name}
	if err := c.check([]Entry{e}); err != nil {
		return err
	}
	c.add(e, p)
	return nil
}

func (c *Catalog) check(entries []Entry) error {
	seenID := map[spec.PID]struct{}{}
	seenName := map[string]struct{}{}
	for _, e := range entries {
		if _, ok := c.byID[e.ID]; ok {
			return errs.WrapWithExtra(ErrDupID, "register preset", fmt.Sprintf("id=%d", e.ID))
		}
		if _, ok := c.byName[e.Name]; ok {
			return errs.WrapWithExtra(ErrDupName, "register preset", e.Name)
		}
		if _, ok := seenID[e.ID]; ok {
			return errs.WrapWithExtra(ErrDupID, "register preset", fmt.Sprintf("id=%d", e.ID))
		}
		if _, ok := seenName[e.Name]; ok {
			return errs.WrapWithExtra(ErrDupName, "register preset", e.Name)
		}
		seenID[e.ID] = struct{}{}
		seenName[e.Name] = struct{}{}
	}
	return nil
}

func (c *Catalog) add(e Entry, p spec.Preset) {
	c.byID[e.ID] = e
	c.byName[e.Name] = e
	c.presets[e.ID] = p
	c.ids = append(c.ids, e.ID)
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
}

func (c *Catalog) load(name string) (*spec.Preset, error) {
	src, ok := c.config.GetFS(name)
	if !ok {
		return nil, errs.WrapWithExtra(errs.ErrNotFound, "preset file not in catalog", name)
	}
	raw, err := fs.ReadFile(src, name)
	if err != nil {
		return nil, errs.Wrap(err, "read preset failed: "+name)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return spec.GetPresetByYAML(raw)
	case ".json":
		return spec.GetPresetByJSON(raw)
	default:
		return nil, errs.NewFatal(fmt.Sprintf("unsupported config format: %q", name))
	}
}

func (c *Catalog) GetByID(id spec.PID) (Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

func (c *Catalog) GetByName(name string) (Entry, bool) {
	e, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// Preset 依名稱回傳預設（值拷貝）。
func (c *Catalog) Preset(name string) (spec.Preset, error) {
	e, ok := c.GetByName(name)
	if !ok {
		return spec.Preset{}, errs.WrapWithExtra(errs.ErrNotFound, "preset not found", name)
	}
	return c.presets[e.ID], nil
}

func (c *Catalog) IDs() []spec.PID {
	if len(c.ids) == 0 {
		return nil
	}
	return append([]spec.PID(nil), c.ids...)
}

// All 依 ID 排序回傳所有預設。
func (c *Catalog) All() []spec.Preset {
	out := make([]spec.Preset, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.presets[id])
	}
	return out
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

type multiFS struct {
	src   []fs.FS
	index map[string]int // name -> src index
}

func newMultiFS(src ...fs.FS) (*multiFS, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("no fs provided")
	}
	for i, s := range src {
		if s == nil {
			return nil, errs.NewFatal(fmt.Sprintf("fs[%d] is nil", i))
		}
	}
	m := &multiFS{
		src:   src,
		index: make(map[string]int, 16),
	}
	for i := range src {
		err := fs.WalkDir(src[i], ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == "." {
					return nil
				}
				return errs.NewFatal(fmt.Sprintf("config FS must be flat (no subdirectories): %q", path))
			}
			if strings.HasPrefix(path, ".") {
				return nil
			}
			lower := strings.ToLower(path)
			if !(strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")) {
				return nil
			}
			if prev, ok := m.index[path]; ok {
				return errs.NewFatal(fmt.Sprintf("duplicate config %q in fs[%d] and fs[%d]", path, prev, i))
			}
			m.index[path] = i
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *multiFS) GetFS(name string) (fs.FS, bool) {
	if id, ok := m.index[name]; ok {
		return m.src[id], true
	}
	return nil, false
}

// Names 依檔名排序
func (m *multiFS) Names() []string {
	out := make([]string, 0, len(m.index))
	for name := range m.index {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
