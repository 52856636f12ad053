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

// Package core 提供 minelab 使用的亂數核心：PRNG 合約、工廠與 Core 包裝。
//
// 佈雷演算法只需要「[0,n) 的均勻整數」，但 Core 仍保留完整的 RAND 合約，
// 讓同一套工廠同時服務可重現（指定 seed）與不可預測（系統熵 seed）兩種呼叫端。
package core

import (
	"crypto/rand"
	"math"
	"math/big"

	"github.com/zintix-labs/minelab/errs"
)

// PRNG 定義 Core 所需的亂數來源，需同時支援取樣與狀態保存/還原。
type PRNG interface {
	RAND
	Restorable
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	// Snapshot 回傳可用於還原的序列化狀態。
	Snapshot() ([]byte, error)
	// Restore 依序列化狀態還原 PRNG 內部狀態。
	Restore([]byte) error
}

// RAND 定義核心亂數取樣能力。
//
// 由 PRNG 自己提供 bounded 取樣（IntN/UintN），讓 32-bit 與 64-bit 原生輸出的實作
// 各自使用最合適的無偏策略。
type RAND interface {
	// Uint64 回傳 uint64 亂數。
	Uint64() uint64
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
	// UintN 回傳 [0,max) 的 uint 亂數，若 max == 0 回傳 0。
	UintN(uint) uint
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 回傳 -1。
	IntN(int) int
}

// PRNGFactory 以 seed 建立 PRNG。
//
// 合約：同一實作、同一版本下，New(seed) 必須是決定性的。
// 相同 seed 產生相同輸出序列，盤面回放依賴這一點。
type PRNGFactory interface {
	New(int64) PRNG
}

// DefaultPRNG 預設工廠（PCG64）。
type DefaultPRNG struct{}

func (d *DefaultPRNG) New(seed int64) PRNG {
	return newPCG64WithSeed(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// PCG32Factory 32-bit 輸出的 PCG 工廠，適合 32-bit 平台。
type PCG32Factory struct{}

func (f *PCG32Factory) New(seed int64) PRNG {
	return newPCG32WithSeed(seed)
}

// ByName 依名稱取得工廠：""/"pcg64" 或 "pcg32"。
func ByName(name string) (PRNGFactory, error) {
	switch name {
	case "", "pcg64":
		return Default(), nil
	case "pcg32":
		return &PCG32Factory{}, nil
	default:
		return nil, errs.Warnf("unknown prng %q (want pcg64|pcg32)", name)
	}
}

// EntropySeed 由 crypto/rand 取得非負 int63 seed。
func EntropySeed() (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return 0, errs.Wrap(err, "new crypto seed error in go std lib")
	}
	return n.Int64(), nil
}

// Core 封裝 PRNG，並記錄出生 seed 以便追溯。
type Core struct {
	PRNG
	seed int64
}

// New 以指定 seed 由工廠建立 Core。
func New(pf PRNGFactory, seed int64) *Core {
	if pf == nil {
		pf = Default()
	}
	return &Core{PRNG: pf.New(seed), seed: seed}
}

// NewEntropy 以系統熵 seed 建立 Core（不可預測；seed 仍會被記錄）。
func NewEntropy(pf PRNGFactory) (*Core, error) {
	seed, err := EntropySeed()
	if err != nil {
		return nil, err
	}
	return New(pf, seed), nil
}

// Seed 回傳建立時的 seed。
func (c *Core) Seed() int64 {
	return c.seed
}
