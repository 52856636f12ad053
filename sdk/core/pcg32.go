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
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/zintix-labs/minelab/errs"
)

const (
	pcg32Multiplier = 6364136223846793005
	pcg32FloatUnit  = 1.0 / (1 << 32)
	pcg32StateLen   = 16
)

// PCG32 為 64-bit 狀態、32-bit 輸出的 PCG (XSH RR) 產生器。
type PCG32 struct {
	state uint64
	inc   uint64
}

func newPCG32WithSeed(seed int64) *PCG32 {
	r := &PCG32{inc: 1<<1 | 1}
	// PCG 建議流程：stream 初始化後 step，加 seed，再 step。
	r.step()
	r.state += uint64(seed)
	r.step()
	return r
}

func (r *PCG32) Uint32() uint32 {
	return r.step()
}

func (r *PCG32) Uint64() uint64 {
	return uint64(r.step())<<32 | uint64(r.step())
}

// UintN 產出 [0,n)，n == 0 回傳 0
func (r *PCG32) UintN(n uint) uint {
	if n == 0 {
		return 0
	}
	if uint64(n) <= math.MaxUint32 {
		return uint(r.below32(uint32(n)))
	}
	return uint(r.below64(uint64(n)))
}

// IntN 產出 [0,n)，n <= 0 回傳 -1
func (r *PCG32) IntN(n int) int {
	if n <= 0 {
		return -1
	}
	if uint64(n) <= math.MaxUint32 {
		return int(r.below32(uint32(n)))
	}
	return int(r.below64(uint64(n)))
}

// Float64 32-bit 精度
func (r *PCG32) Float64() float64 {
	return float64(r.step()) * pcg32FloatUnit
}

// Snapshot state||inc，big-endian。
func (r *PCG32) Snapshot() ([]byte, error) {
	b := make([]byte, 0, pcg32StateLen)
	b = binary.BigEndian.AppendUint64(b, r.state)
	b = binary.BigEndian.AppendUint64(b, r.inc)
	return b, nil
}

func (r *PCG32) Restore(data []byte) error {
	if len(data) != pcg32StateLen {
		return errs.Warnf("pcg32 restore: want %d bytes, got %d", pcg32StateLen, len(data))
	}
	inc := binary.BigEndian.Uint64(data[8:])
	if inc&1 == 0 {
		return errs.NewWarn("pcg32 restore: increment must be odd")
	}
	r.state = binary.BigEndian.Uint64(data[:8])
	r.inc = inc
	return nil
}

func (r *PCG32) step() uint32 {
	old := r.state
	r.state = old*pcg32Multiplier + r.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return bits.RotateLeft32(xorshifted, -int(rot))
}

func (r *PCG32) below32(bound uint32) uint32 {
	threshold := -bound % bound
	for {
		v := r.step()
		if v >= threshold {
			return v % bound
		}
	}
}

func (r *PCG32) below64(bound uint64) uint64 {
	threshold := -bound % bound
	for {
		v := r.Uint64()
		if v >= threshold {
			return v % bound
		}
	}
}
