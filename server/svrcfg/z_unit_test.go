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

package svrcfg

import (
	"testing"
	"time"

	"github.com/zintix-labs/minelab"
	"github.com/zintix-labs/minelab/demo/presets"
)

func TestValidDefaults(t *testing.T) {
	if err := (&SvrCfg{}).Valid(); err == nil {
		t.Fatalf("expected error without lab")
	}
	lab, err := minelab.New(nil, minelab.Configs(presets.FS))
	if err != nil {
		t.Fatalf("lab: %v", err)
	}
	c := &SvrCfg{Lab: lab}
	if err := c.Valid(); err != nil {
		t.Fatalf("valid: %v", err)
	}
	if c.Addr != DefaultAddr || c.TTL != DefaultTTL || c.SweepEvery != DefaultTTL/4 || c.Store == nil || c.Log == nil {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.Store.Capacity() != DefaultMaxSessions {
		t.Fatalf("store capacity %d", c.Store.Capacity())
	}

	c = &SvrCfg{Lab: lab, TTL: 2 * time.Second}
	if err := c.Valid(); err != nil || c.SweepEvery != time.Second {
		t.Fatalf("sweep interval %v err %v", c.SweepEvery, err)
	}
	if err := (&SvrCfg{Lab: lab, TTL: -1}).Valid(); err == nil {
		t.Fatalf("expected negative ttl error")
	}
}
