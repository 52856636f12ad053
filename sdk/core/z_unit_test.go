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

package core

import (
	"testing"
)

func TestCoreDeterminism(t *testing.T) {
	for _, name := range []string{"pcg64", "pcg32"} {
		pf, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%s): %v", name, err)
		}
		c1 := New(pf, 7)
		c2 := New(pf, 7)
		for i := 0; i < 16; i++ {
			if c1.Uint64() != c2.Uint64() {
				t.Fatalf("%s: Uint64 mismatch at %d", name, i)
			}
		}
		if c1.IntN(10) != c2.IntN(10) {
			t.Fatalf("%s: IntN mismatch", name)
		}
		if c1.Seed() != 7 {
			t.Fatalf("%s: seed not recorded", name)
		}
	}
}

func TestIntNRange(t *testing.T) {
	c := New(Default(), 3)
	for _, n := range []int{1, 2, 3, 7, 16, 30, 1000} {
		for i := 0; i < 500; i++ {
			v := c.IntN(n)
			if v < 0 || v >= n {
				t.Fatalf("IntN(%d) out of range: %d", n, v)
			}
		}
	}
	if c.IntN(0) != -1 || c.IntN(-5) != -1 {
		t.Fatalf("expected -1 for non-positive bound")
	}
	if c.UintN(0) != 0 {
		t.Fatalf("expected 0 for UintN(0)")
	}
}

func TestSnapshotRestore(t *testing.T) {
	for _, pf := range []PRNGFactory{Default(), &PCG32Factory{}} {
		c := New(pf, 99)
		c.Uint64()
		snap, err := c.Snapshot()
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		want := []uint64{c.Uint64(), c.Uint64(), c.Uint64()}
		if err := c.Restore(snap); err != nil {
			t.Fatalf("restore: %v", err)
		}
		for i, w := range want {
			if got := c.Uint64(); got != w {
				t.Fatalf("after restore mismatch at %d: %d != %d", i, got, w)
			}
		}
	}
}

func TestPCG32RestoreRejectsBadState(t *testing.T) {
	r := newPCG32WithSeed(1)
	if err := r.Restore([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short state")
	}
	bad := make([]byte, pcg32StateLen)
	if err := r.Restore(bad); err == nil {
		t.Fatalf("expected error for even increment")
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("xorshift"); err == nil {
		t.Fatalf("expected error for unknown prng")
	}
}

func TestEntropySeedNonNegative(t *testing.T) {
	c, err := NewEntropy(nil)
	if err != nil {
		t.Fatalf("NewEntropy: %v", err)
	}
	if c.Seed() < 0 {
		t.Fatalf("negative entropy seed %d", c.Seed())
	}
}
