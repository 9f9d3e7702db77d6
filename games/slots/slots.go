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

// Package slots 三輪拉霸：加權符號、七成機率強制前兩輪不同、累積彩池。
package slots

import (
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/sampler"
)

// Symbol 輪上的符號名稱
type Symbol string

const (
	Hat     Symbol = "hat"
	Whiskey Symbol = "whiskey"
	Dice    Symbol = "dice"
	Joker   Symbol = "joker"
	Masks   Symbol = "masks"
	Diamond Symbol = "diamond"
	Seven   Symbol = "seven"
)

// Reels 一次拉霸的三個停輪結果
type Reels [3]Symbol

// Category 拉霸結果分類
const (
	CatJackpot = "jackpot"
	CatThree   = "three"
	CatPair    = "pair"
	CatNone    = "none"
)

// ============================================================
// ** Fixed 設定 **
// ============================================================

// SymbolSetting 單一符號的權重與三連倍數
type SymbolSetting struct {
	Name   Symbol `yaml:"name"`
	Weight int    `yaml:"weight"`
	Mult   int    `yaml:"mult"`
}

// Fixed 拉霸專屬設定
type Fixed struct {
	Symbols       []SymbolSetting `yaml:"symbols"`
	JackpotSymbol Symbol          `yaml:"jackpot_symbol"`
	JackpotBase   int             `yaml:"jackpot_base"`
	JackpotMult   int             `yaml:"jackpot_mult"`
	PairMult      int             `yaml:"pair_mult"`
	ForceDifferP  float64         `yaml:"force_differ_p"`
}

// DefaultFixed 預設賠率表
func DefaultFixed() Fixed {
	return Fixed{
		Symbols: []SymbolSetting{
			{Name: Hat, Weight: 20, Mult: 50},
			{Name: Whiskey, Weight: 20, Mult: 40},
			{Name: Dice, Weight: 20, Mult: 30},
			{Name: Joker, Weight: 20, Mult: 20},
			{Name: Masks, Weight: 20, Mult: 15},
			{Name: Diamond, Weight: 5, Mult: 100},
			{Name: Seven, Weight: 1, Mult: 200},
		},
		JackpotSymbol: Seven,
		JackpotBase:   50000,
		JackpotMult:   200,
		PairMult:      2,
		ForceDifferP:  0.7,
	}
}

// fill 以預設值補齊未設定的欄位
func (f *Fixed) fill() {
	d := DefaultFixed()
	if len(f.Symbols) == 0 {
		f.Symbols = d.Symbols
	}
	if f.JackpotSymbol == "" {
		f.JackpotSymbol = d.JackpotSymbol
	}
	if f.JackpotBase == 0 {
		f.JackpotBase = d.JackpotBase
	}
	if f.JackpotMult == 0 {
		f.JackpotMult = d.JackpotMult
	}
	if f.PairMult == 0 {
		f.PairMult = d.PairMult
	}
}

func (f *Fixed) valid() error {
	live := 0
	seen := make(map[Symbol]bool, len(f.Symbols))
	for _, s := range f.Symbols {
		if seen[s.Name] {
			return errs.Fatalf("slots: duplicate symbol %q", s.Name)
		}
		seen[s.Name] = true
		if s.Weight < 0 || s.Mult < 0 {
			return errs.Fatalf("slots: negative weight or mult on %q", s.Name)
		}
		if s.Weight > 0 {
			live++
		}
	}
	// 強制不同需要至少兩個可抽到的符號，否則重抽不會結束
	if live < 2 {
		return errs.NewFatal("slots: need at least two symbols with positive weight")
	}
	if !seen[f.JackpotSymbol] {
		return errs.Fatalf("slots: jackpot symbol %q not on reel", f.JackpotSymbol)
	}
	if f.ForceDifferP < 0 || f.ForceDifferP > 1 {
		return errs.Fatalf("slots: force_differ_p %v out of [0,1]", f.ForceDifferP)
	}
	if f.JackpotBase < 0 {
		return errs.NewFatal("slots: negative jackpot base")
	}
	return nil
}

// ============================================================
// ** 抽輪 **
// ============================================================

// Reel 依權重抽符號
type Reel struct {
	symbols []Symbol
	picker  sampler.Picker
	forceP  float64
}

func NewReel(f *Fixed) (*Reel, error) {
	ws := make([]int, len(f.Symbols))
	syms := make([]Symbol, len(f.Symbols))
	for i, s := range f.Symbols {
		ws[i] = s.Weight
		syms[i] = s.Name
	}
	p, err := sampler.Build(ws)
	if err != nil {
		return nil, errs.Wrap(err, "slots: build reel")
	}
	return &Reel{symbols: syms, picker: p, forceP: f.ForceDifferP}, nil
}

func (r *Reel) pick(c *core.Core) Symbol {
	return r.symbols[r.picker.Pick(c)]
}

// Spin 抽出三輪。
// 順序：先決定是否強制，再抽第一輪；強制時第二輪重抽到與第一輪不同；第三輪自由抽。
func (r *Reel) Spin(c *core.Core) Reels {
	force := c.Chance(r.forceP)
	var out Reels
	out[0] = r.pick(c)
	out[1] = r.pick(c)
	for force && out[1] == out[0] {
		out[1] = r.pick(c)
	}
	out[2] = r.pick(c)
	return out
}

// ============================================================
// ** 賠率 **
// ============================================================

// Paytable 三連倍數、對子倍數與彩池規則
type Paytable struct {
	mults         map[Symbol]int
	jackpotSymbol Symbol
	jackpotMult   int
	jackpotBase   int
	pairMult      int
}

func NewPaytable(f *Fixed) *Paytable {
	m := make(map[Symbol]int, len(f.Symbols))
	for _, s := range f.Symbols {
		m[s.Name] = s.Mult
	}
	return &Paytable{
		mults:         m,
		jackpotSymbol: f.JackpotSymbol,
		jackpotMult:   f.JackpotMult,
		jackpotBase:   f.JackpotBase,
		pairMult:      f.PairMult,
	}
}

// Resolution 一次拉霸的結算
type Resolution struct {
	Category string `json:"category"`
	Symbol   Symbol `json:"symbol,omitempty"`
	Payout   int    `json:"payout"`
	Pool     int    `json:"pool"`
}

// Resolve 結算一次拉霸。pool 為本次開始前的彩池，押注先加進彩池再判斷。
// 回傳的 Pool 為結算後的彩池（中彩池時回到底數）。
func (p *Paytable) Resolve(bet int, r Reels, pool int) Resolution {
	pool += bet
	switch {
	case r[0] == r[1] && r[1] == r[2] && r[0] == p.jackpotSymbol:
		return Resolution{Category: CatJackpot, Symbol: r[0], Payout: bet*p.jackpotMult + pool, Pool: p.jackpotBase}
	case r[0] == r[1] && r[1] == r[2]:
		return Resolution{Category: CatThree, Symbol: r[0], Payout: bet * p.mults[r[0]], Pool: pool}
	}
	if s, ok := pairOf(r); ok {
		return Resolution{Category: CatPair, Symbol: s, Payout: bet * p.pairMult, Pool: pool}
	}
	return Resolution{Category: CatNone, Pool: pool}
}

// pairOf 任兩個位置相同即成對
func pairOf(r Reels) (Symbol, bool) {
	switch {
	case r[0] == r[1], r[0] == r[2]:
		return r[0], true
	case r[1] == r[2]:
		return r[1], true
	}
	return "", false
}

// Message 結算訊息
func (res Resolution) Message() string {
	switch res.Category {
	case CatJackpot:
		return display.Sprintf("MEGA JACKPOT! You won %d credits!", res.Payout)
	case CatThree:
		return display.Sprintf("Three %s! You won %d credits!", res.Symbol, res.Payout)
	case CatPair:
		return display.Sprintf("Two %s! You won %d credits!", res.Symbol, res.Payout)
	default:
		return "Try again!"
	}
}
