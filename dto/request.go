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
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/spec"
)

// maxBodyBytes 請求 body 上限
const maxBodyBytes = 1 << 20

// CreateRequest 建局請求：Preset、Custom、Layout 三擇一。
// Seed 省略時由伺服器以系統熵產生（回應中會回傳，可用於回放）；Layout 不使用 Seed。
type CreateRequest struct {
	Preset string       `json:"preset,omitempty"`
	Custom *spec.Preset `json:"custom,omitempty"`
	Layout string       `json:"layout,omitempty"`
	Seed   *int64       `json:"seed,omitempty"`
}

// MoveRequest 翻格/插旗請求。Flag 只在 setflag 使用。
type MoveRequest struct {
	X    int   `json:"x"`
	Y    int   `json:"y"`
	Flag *bool `json:"flag,omitempty"`
}

// SimRequest 模擬請求
type SimRequest struct {
	Preset  string `json:"preset"`
	Boards  int    `json:"boards"`
	Workers int    `json:"workers"`
	Seed    int64  `json:"seed"`
}

// 模擬請求上限（HTTP 端，CLI 不受限）
const (
	MaxSimBoards  = 200000
	MaxSimWorkers = 16
)

func (c *CreateRequest) Valid() error {
	n := 0
	for _, set := range []bool{c.Preset != "", c.Custom != nil, c.Layout != ""} {
		if set {
			n++
		}
	}
	if n != 1 {
		return errs.NewWarn("exactly one of preset, custom or layout is required")
	}
	if c.Layout != "" && c.Seed != nil {
		return errs.NewWarn("seed does not apply to layout")
	}
	if c.Custom != nil {
		if c.Custom.Name == "" {
			c.Custom.Name = "custom"
		}
		return c.Custom.Valid()
	}
	return nil
}

func (m *MoveRequest) ValidFlag() error {
	if m.Flag == nil {
		return errs.NewWarn("flag is required")
	}
	return nil
}

func (s *SimRequest) Valid() error {
	if s.Preset == "" {
		return errs.NewWarn("preset is required")
	}
	if s.Boards < 1 || s.Boards > MaxSimBoards {
		return errs.Warnf("boards must be in [1,%d]", MaxSimBoards)
	}
	if s.Workers == 0 {
		s.Workers = 1
	}
	if s.Workers < 1 || s.Workers > MaxSimWorkers {
		return errs.Warnf("workers must be in [1,%d]", MaxSimWorkers)
	}
	return nil
}

// DecodeJSON 從 POST body 解碼，嚴格拒絕未知欄位與多餘內容。
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, out *T) error {
	if r == nil || r.Body == nil {
		return errs.NewWarn("empty request body")
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return errs.NewWithExtra(errs.Warn, "invalid json body", err.Error())
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errs.NewWarn("invalid json body: trailing data")
	}
	return nil
}
