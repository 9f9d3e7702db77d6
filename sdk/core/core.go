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
	"crypto/rand"
	"math"
	"math/big"
)

// PRNG 定義 Core 所需的亂數來源，需同時支援取樣與狀態保存/還原。
type PRNG interface {
	RAND
	Restorable
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	Snapshot() ([]byte, error)
	Restore([]byte) error
}

// RAND 定義核心亂數取樣能力。
//
// 所有牌桌的規則都以 Float64 的 [0,1) 均勻亂數描述（骰子、輪盤、賽馬步距），
// Uint64 / UintN / IntN 留給需要整數取樣的工具（洗牌、LUT）。
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
// 合約：同一實作下 New(seed) 必須是決定性的，相同 seed 產生相同序列。
// 模擬器靠這個合約從 base seed 派生每個 worker 的子 seed。
type PRNGFactory interface {
	New(int64) PRNG
}

// DefaultPRNG 預設工廠，產生 PCG64。
type DefaultPRNG struct{}

func (d *DefaultPRNG) New(seed int64) PRNG {
	return newPCG64WithSeed(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// RandomSeed 由加密亂數來源產生非負 seed，僅用於「呼叫端沒有指定 seed」的情境。
func RandomSeed() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return 1
	}
	return n.Int64()
}

// Core 封裝 PRNG，並提供牌桌常用的取樣方法。
type Core struct {
	PRNG
}

// New 允許使用外部自實現的 PRNG 建立 Core。
func New(rng PRNG) *Core {
	return &Core{rng}
}

// ============================================================
// ** 以 [0,1) 亂數定義的取樣 **
// ============================================================

// Chance 以機率 p 回傳 true（Float64() < p）。
func (c *Core) Chance(p float64) bool {
	return c.Float64() < p
}

// Index 回傳 floor(u*n)，u 為 [0,1) 亂數；n <= 0 回傳 -1。
func (c *Core) Index(n int) int {
	if n <= 0 {
		return -1
	}
	i := int(c.Float64() * float64(n))
	if i >= n { // 浮點邊界保護
		i = n - 1
	}
	return i
}

// Between 回傳 [lo,hi] 的整數（含兩端），hi < lo 時回傳 lo。
func (c *Core) Between(lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + c.Index(hi-lo+1)
}

// Die 擲一顆六面骰，回傳 1..6。
func (c *Core) Die() int {
	return c.Between(1, 6)
}

// Uniform 回傳 [lo, lo+width) 的浮點數。
func (c *Core) Uniform(lo, width float64) float64 {
	return lo + c.Float64()*width
}

// ============================================================
// ** 整數取樣工具 **
// ============================================================

// Pick 從列表中隨機選取一個元素，若列表為空回傳 -1
func (c *Core) Pick(src []int) int {
	if len(src) == 0 {
		return -1
	}
	return src[c.IntN(len(src))]
}

// ShuffleInts 以 Fisher-Yates 就地重排，所有排列等機率。
func (c *Core) ShuffleInts(src []int) {
	Shuffle(c, src)
}

// Shuffle 任意型別的 Fisher-Yates（牌組）。
func Shuffle[T any](c *Core, src []T) {
	for i := len(src) - 1; i > 0; i-- {
		j := c.IntN(i + 1)
		src[i], src[j] = src[j], src[i]
	}
}
