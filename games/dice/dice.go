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

// Package dice 押兩顆骰子的總和：大（8-12）、小（2-6）或 7。
//
// 七成的局從刻意避開玩家選項的範圍擲骰，其餘三成公平擲。
package dice

import (
	"strings"

	"github.com/zintix-labs/parlor/sdk/core"
)

// Selection 玩家押注項目
type Selection string

const (
	None  Selection = ""
	High  Selection = "high"
	Low   Selection = "low"
	Seven Selection = "seven"
)

// ParseSelection 不分大小寫；無法辨識時回傳 None, false
func ParseSelection(s string) (Selection, bool) {
	switch sel := Selection(strings.ToLower(strings.TrimSpace(s))); sel {
	case High, Low, Seven:
		return sel, true
	}
	return None, false
}

// Label 顯示用名稱
func (s Selection) Label() string {
	switch s {
	case High:
		return "High (8-12)"
	case Low:
		return "Low (2-6)"
	case Seven:
		return "Seven (7)"
	}
	return "-"
}

// Hits 判定總和是否命中
func (s Selection) Hits(sum int) bool {
	switch s {
	case High:
		return sum >= 8 && sum <= 12
	case Low:
		return sum >= 2 && sum <= 6
	case Seven:
		return sum == 7
	}
	return false
}

// Roll 兩顆骰子
type Roll struct {
	D1 int `json:"d1"`
	D2 int `json:"d2"`
}

func (r Roll) Sum() int { return r.D1 + r.D2 }

// Fixed 骰子專屬設定
type Fixed struct {
	BiasP     float64 `yaml:"bias_p"`
	HighMult  int     `yaml:"high_mult"`
	LowMult   int     `yaml:"low_mult"`
	SevenMult int     `yaml:"seven_mult"`
}

func DefaultFixed() Fixed {
	return Fixed{BiasP: 0.7, HighMult: 2, LowMult: 2, SevenMult: 5}
}

// Mult 命中時的倍數
func (f *Fixed) Mult(s Selection) int {
	switch s {
	case High:
		return f.HighMult
	case Low:
		return f.LowMult
	case Seven:
		return f.SevenMult
	}
	return 0
}

// Throw 依選項擲骰。
//
// 偏差分支（機率 BiasP）：
//   - High：d1 1..3、d2 1..4
//   - Low：兩顆 3..5（3+3=6 仍會命中 Low）
//   - Seven：各半機率兩顆 1..3 或兩顆 4..6
//
// 其他情況兩顆 1..6。
func Throw(c *core.Core, s Selection, biasP float64) Roll {
	if !c.Chance(biasP) {
		return Roll{D1: c.Die(), D2: c.Die()}
	}
	switch s {
	case High:
		return Roll{D1: c.Between(1, 3), D2: c.Between(1, 4)}
	case Low:
		return Roll{D1: c.Between(3, 5), D2: c.Between(3, 5)}
	case Seven:
		if c.Chance(0.5) {
			return Roll{D1: c.Between(1, 3), D2: c.Between(1, 3)}
		}
		return Roll{D1: c.Between(4, 6), D2: c.Between(4, 6)}
	}
	return Roll{D1: c.Die(), D2: c.Die()}
}

// Resolve 純結算：命中回傳 bet*倍數，否則 0
func Resolve(f *Fixed, s Selection, bet int, r Roll) int {
	if !s.Hits(r.Sum()) {
		return 0
	}
	return bet * f.Mult(s)
}
