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

	"github.com/zintix-labs/parlor/errs"
)

// Scripted 依序回放預先給定的 [0,1) 亂數，用盡後從頭循環。
//
// 用途：回放一局的抽樣紀錄，或在測試中強制走到某個偏差分支。
// 整數取樣皆由 Float64 推得（floor(u*n)），與牌桌規則的定義一致。
type Scripted struct {
	draws []float64
	pos   int
}

// NewScripted 建立回放來源；draws 為空時永遠回傳 0。
func NewScripted(draws ...float64) *Scripted {
	return &Scripted{draws: draws}
}

func (s *Scripted) Float64() float64 {
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[s.pos%len(s.draws)]
	s.pos++
	return v
}

func (s *Scripted) Uint64() uint64 {
	return uint64(s.Float64()*(1<<53)) << 11
}

func (s *Scripted) UintN(n uint) uint {
	if n == 0 {
		return 0
	}
	v := uint(s.Float64() * float64(n))
	return min(v, n-1)
}

func (s *Scripted) IntN(n int) int {
	if n <= 0 {
		return -1
	}
	v := int(s.Float64() * float64(n))
	return min(v, n-1)
}

// Used 回傳目前已消耗的亂數數量。
func (s *Scripted) Used() int { return s.pos }

func (s *Scripted) Snapshot() ([]byte, error) {
	return binary.BigEndian.AppendUint64(nil, uint64(s.pos)), nil
}

func (s *Scripted) Restore(b []byte) error {
	if len(b) != 8 {
		return errs.NewFatal("scripted: snapshot must be 8 bytes")
	}
	s.pos = int(binary.BigEndian.Uint64(b))
	return nil
}
