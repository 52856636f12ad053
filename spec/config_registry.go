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

package spec

import (
	"bytes"
	"encoding/json"

	"github.com/zintix-labs/minelab/errs"
	"gopkg.in/yaml.v3"
)

// GetPresetByYAML 解析 YAML 預設並執行基本檢查。未知欄位直接報錯。
func GetPresetByYAML(data []byte) (*Preset, error) {
	p := &Preset{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshall yaml")
	}
	if err := p.Valid(); err != nil {
		return nil, errs.Wrap(err, "preset initialized err")
	}
	return p, nil
}

// GetPresetByJSON 解析 JSON 預設並執行基本檢查。未知欄位直接報錯。
func GetPresetByJSON(data []byte) (*Preset, error) {
	p := &Preset{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, errs.Wrap(err, "can not unmarshall json byte")
	}
	if err := p.Valid(); err != nil {
		return nil, errs.Wrap(err, "preset initialized err")
	}
	return p, nil
}
