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

// Package arcade 單輪街機拉霸：九格轉輪停在中間一格，
// 倍數可為小數或負數，結果以 decimal 精確相乘後無條件捨去。
package arcade

import (
	"github.com/shopspring/decimal"
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
)

// Kind 格子類型，也是結果分類
type Kind string

const (
	KindJackpot Kind = "jackpot"
	KindWin     Kind = "win"
	KindLose    Kind = "lose"
	KindBigLose Kind = "biglose"
)

// Item 轉輪上的一格
type Item struct {
	Name string          `yaml:"name" json:"name"`
	Kind Kind            `yaml:"kind" json:"kind"`
	Mult decimal.Decimal `yaml:"mult" json:"mult"`
}

// Fixed 街機專屬設定
type Fixed struct {
	Items   []Item  `yaml:"items"`
	Strip   int     `yaml:"strip"`
	RigP    float64 `yaml:"rig_p"`
	RigItem string  `yaml:"rig_item"`
}

func DefaultFixed() Fixed {
	return Fixed{
		Items: []Item{
			{Name: "Jackpot", Kind: KindJackpot, Mult: decimal.NewFromInt(10)},
			{Name: "Diamond", Kind: KindWin, Mult: decimal.NewFromInt(5)},
			{Name: "Cherry", Kind: KindWin, Mult: decimal.NewFromInt(3)},
			{Name: "Bell", Kind: KindWin, Mult: decimal.NewFromInt(2)},
			{Name: "Star", Kind: KindWin, Mult: decimal.NewFromFloat(1.5)},
			{Name: "Lemon", Kind: KindLose, Mult: decimal.NewFromInt(-1)},
			{Name: "X", Kind: KindLose, Mult: decimal.NewFromInt(-1)},
			{Name: "Bomb", Kind: KindBigLose, Mult: decimal.NewFromInt(-2)},
		},
		Strip:   9,
		RigP:    0.8,
		RigItem: "Bomb",
	}
}

// rig 回傳強制結果對應的格子
func (f *Fixed) rig() (Item, error) {
	for _, it := range f.Items {
		if it.Name == f.RigItem {
			return it, nil
		}
	}
	return Item{}, errs.Fatalf("arcade: rig item %q not on reel", f.RigItem)
}

// valid 檢查設定並回傳強制格
func (f *Fixed) valid() (Item, error) {
	if len(f.Items) == 0 {
		return Item{}, errs.NewFatal("arcade: empty reel")
	}
	for _, it := range f.Items {
		switch it.Kind {
		case KindJackpot, KindWin, KindLose, KindBigLose:
		default:
			return Item{}, errs.Fatalf("arcade: unknown kind %q on %s", it.Kind, it.Name)
		}
	}
	if f.Strip < 1 {
		return Item{}, errs.NewFatal("arcade: strip must show at least one item")
	}
	if f.RigP < 0 || f.RigP > 1 {
		return Item{}, errs.Fatalf("arcade: rig_p %v out of [0,1]", f.RigP)
	}
	return f.rig()
}

// Spin 依序抽出整條轉輪，停在中間一格；之後以 RigP 機率把結果換成強制格。
func Spin(c *core.Core, f *Fixed, rigged Item) (strip []Item, landed Item, forced bool) {
	strip = make([]Item, f.Strip)
	for i := range strip {
		strip[i] = f.Items[c.Index(len(f.Items))]
	}
	landed = strip[len(strip)/2]
	if c.Chance(f.RigP) {
		landed = rigged
		forced = true
	}
	return strip, landed, forced
}

// Winnings bet * mult，捨去小數（向零）
func Winnings(bet int, it Item) int {
	return int(decimal.NewFromInt(int64(bet)).Mul(it.Mult).Truncate(0).IntPart())
}
