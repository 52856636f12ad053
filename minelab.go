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

// Package minelab 是踩地雷規則引擎的組裝入口。
//
// Lab 把兩個地基組在一起，並提供建立 Session / Simulator 的入口：
//  1. Catalog：盤面預設目錄，定義有哪些預設（尺寸、雷數、首擊保護模式）。
//  2. PRNGFactory：亂數核心工廠，(預設, seed, 第一次點擊) 可完整重現一個盤面。
//
// Lab 不綁定檔案路徑：預設檔一律以 fs.FS 注入（go:embed 或 os.DirFS 皆可）。
// 規則本身在 sdk/minefield；這一層只負責宿主需要的東西：延遲佈雷、越界回 error、
// 互斥保護、批次模擬。
package minelab

import (
	"io/fs"

	"github.com/zintix-labs/minelab/catalog"
	"github.com/zintix-labs/minelab/corefmt"
	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/sdk/core"
	"github.com/zintix-labs/minelab/sdk/minefield"
	"github.com/zintix-labs/minelab/spec"
)

// Configs 把一或多個預設檔來源打包成 New() 需要的參數。
func Configs(cfgs ...fs.FS) []fs.FS {
	return cfgs
}

// Lab 組裝器。建立後目錄即凍結，可安全地被多個 goroutine 共用。
type Lab struct {
	cat *catalog.Catalog
	pf  core.PRNGFactory
}

// New 建立 Lab：載入所有預設檔（fail-fast、原子註冊）後凍結目錄。
// pf 為 nil 時使用預設的 PCG64。
func New(pf core.PRNGFactory, cfgs []fs.FS) (*Lab, error) {
	if len(cfgs) == 0 {
		return nil, errs.NewFatal("configs required")
	}
	if pf == nil {
		pf = core.Default()
	}
	cat, err := catalog.New(cfgs...)
	if err != nil {
		return nil, err
	}
	if err := cat.RegisterAll(); err != nil {
		return nil, err
	}
	cat.Freeze()
	return &Lab{cat: cat, pf: pf}, nil
}

// Presets 依 ID 排序回傳所有預設。
func (l *Lab) Presets() []spec.Preset {
	return l.cat.All()
}

// Preset 依名稱取得預設；找不到時回傳包著 errs.ErrNotFound 的錯誤。
func (l *Lab) Preset(name string) (spec.Preset, error) {
	return l.cat.Preset(name)
}

// NewSession 以具名預設與指定 seed 開一局。
func (l *Lab) NewSession(name string, seed int64) (*Session, error) {
	p, err := l.cat.Preset(name)
	if err != nil {
		return nil, err
	}
	return l.open(p, seed)
}

// NewSessionAuto 以系統熵產生 seed 開一局；seed 可由 Session.Seed() 取回。
func (l *Lab) NewSessionAuto(name string) (*Session, error) {
	seed, err := core.EntropySeed()
	if err != nil {
		return nil, err
	}
	return l.NewSession(name, seed)
}

// NewCustomSession 以臨時盤面（不進目錄）開一局。
func (l *Lab) NewCustomSession(p spec.Preset, seed int64) (*Session, error) {
	if err := p.Valid(); err != nil {
		return nil, err
	}
	return l.open(p, seed)
}

// ReplaySession 依佈局碼（Session.Layout 的輸出）重建一局。
// 盤面已產生、全部 Hidden，沒有第一次點擊保護；seed 為 0。
func (l *Lab) ReplaySession(code string) (*Session, error) {
	w, h, bits, err := corefmt.DecodeLayout(code)
	if err != nil {
		return nil, err
	}
	p := spec.Preset{Name: "replay", Width: w, Height: h}
	if err := p.Valid(); err != nil {
		return nil, err
	}
	g, err := minefield.FromLayout(w, h, bits)
	if err != nil {
		return nil, err
	}
	p.Bombs = g.Bombs()
	s, err := l.open(p, 0)
	if err != nil {
		return nil, err
	}
	s.game = g
	s.flags = nil
	return s, nil
}

func (l *Lab) open(p spec.Preset, seed int64) (*Session, error) {
	id, err := corefmt.NewID()
	if err != nil {
		return nil, err
	}
	return newSession(id, p, l.pf, seed), nil
}

// NewSimulator 建立具名預設的批次模擬器。
func (l *Lab) NewSimulator(name string, seed int64) (*Simulator, error) {
	p, err := l.cat.Preset(name)
	if err != nil {
		return nil, err
	}
	return newSimulator(p, l.pf, seed), nil
}
