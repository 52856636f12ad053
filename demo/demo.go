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

// Package demo 以內建預設組出可直接使用的 Lab，供 cmd/* 與範例使用。
package demo

import (
	"io/fs"
	"os"

	"github.com/zintix-labs/minelab"
	"github.com/zintix-labs/minelab/demo/presets"
	"github.com/zintix-labs/minelab/sdk/core"
)

// NewLab 內建預設 + dirs 內的預設檔（每個目錄需為扁平結構）。
// prng 為 "" / "pcg64" / "pcg32"。
func NewLab(prng string, dirs ...string) (*minelab.Lab, error) {
	pf, err := core.ByName(prng)
	if err != nil {
		return nil, err
	}
	cfgs := []fs.FS{presets.FS}
	for _, d := range dirs {
		if d != "" {
			cfgs = append(cfgs, os.DirFS(d))
		}
	}
	return minelab.New(pf, cfgs)
}
