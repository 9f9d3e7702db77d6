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

// Package horse 五匹馬的賽跑。玩家押的那匹步距較小，
// 每個 tick 有很小的機率得到一次大步補償。
package horse

import (
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
)

// Stride 每 tick 前進距離的範圍 [Lo, Lo+Width)
type Stride struct {
	Lo    float64 `yaml:"lo"    json:"lo"`
	Width float64 `yaml:"width" json:"width"`
}

func (s Stride) draw(c *core.Core) float64 { return c.Uniform(s.Lo, s.Width) }

// HorseSetting 單匹馬的設定
type HorseSetting struct {
	Name   string `yaml:"name"`
	Odds   int    `yaml:"odds"`
	Picked Stride `yaml:"picked"` // 被玩家押中時的步距
	Field  Stride `yaml:"field"`  // 其他情況的步距
}

// Fixed 賽馬專屬設定
type Fixed struct {
	Horses   []HorseSetting `yaml:"horses"`
	Finish   float64        `yaml:"finish"`
	Placings int            `yaml:"placings"`
	BoostP   float64        `yaml:"boost_p"`
	Boost    Stride         `yaml:"boost"`
	MaxTicks int            `yaml:"max_ticks"`
}

func DefaultFixed() Fixed {
	return Fixed{
		Horses: []HorseSetting{
			{Name: "Thunder", Odds: 6, Picked: Stride{1, 3}, Field: Stride{3, 6}},
			{Name: "Lightning", Odds: 8, Picked: Stride{1, 3}, Field: Stride{4, 7}},
			{Name: "Rocket", Odds: 5, Picked: Stride{1, 2}, Field: Stride{5, 8}},
			{Name: "Blizzard", Odds: 10, Picked: Stride{1, 2.5}, Field: Stride{3, 6}},
			{Name: "Hurricane", Odds: 12, Picked: Stride{1, 3}, Field: Stride{3, 5}},
		},
		Finish:   570,
		Placings: 3,
		BoostP:   0.01,
		Boost:    Stride{5, 8},
		MaxTicks: 100000,
	}
}

func (f *Fixed) valid() error {
	if len(f.Horses) < 2 {
		return errs.NewFatal("horse: need at least two horses")
	}
	for _, h := range f.Horses {
		// 步距下限為正，比賽一定會結束
		if h.Picked.Lo <= 0 || h.Field.Lo <= 0 || h.Picked.Width < 0 || h.Field.Width < 0 {
			return errs.Fatalf("horse: %s needs positive strides", h.Name)
		}
		if h.Odds < 0 {
			return errs.Fatalf("horse: %s has negative odds", h.Name)
		}
	}
	if f.Finish <= 0 {
		return errs.NewFatal("horse: finish distance must be positive")
	}
	if f.Placings < 1 || f.Placings > len(f.Horses) {
		return errs.Fatalf("horse: placings %d out of [1,%d]", f.Placings, len(f.Horses))
	}
	if f.BoostP < 0 || f.BoostP > 1 || f.Boost.Lo < 0 {
		return errs.NewFatal("horse: bad boost setting")
	}
	if f.MaxTicks < 1 {
		return errs.NewFatal("horse: max_ticks must be positive")
	}
	return nil
}

// Race 一場比賽的狀態。馬匹編號由 1 開始。
type Race struct {
	Positions []float64 `json:"positions"`
	Finished  []bool    `json:"finished"`
	Order     []int     `json:"order"`
	Ticks     int       `json:"ticks"`
	Boosts    int       `json:"boosts,omitempty"`
}

func newRace(n int) *Race {
	return &Race{Positions: make([]float64, n), Finished: make([]bool, n), Order: make([]int, 0, n)}
}

// Done 全部到達，或到達的馬達到名次數
func (r *Race) Done(placings int) bool {
	return len(r.Order) >= placings || len(r.Order) == len(r.Positions)
}

// Winner 第一匹到達的馬，尚未有馬到達時回傳 0
func (r *Race) Winner() int {
	if len(r.Order) == 0 {
		return 0
	}
	return r.Order[0]
}

// Tick 依跑道順序推進每匹未完賽的馬。
// 每匹馬都先抽一次補償亂數，再抽步距；同一 tick 內的到達順序即跑道順序。
func (r *Race) Tick(c *core.Core, f *Fixed, pick int) {
	r.Ticks++
	for i, h := range f.Horses {
		if r.Finished[i] {
			continue
		}
		picked := i+1 == pick
		var move float64
		switch lucky := c.Chance(f.BoostP); {
		case lucky && picked:
			move = f.Boost.draw(c)
			r.Boosts++
		case picked:
			move = h.Picked.draw(c)
		default:
			move = h.Field.draw(c)
		}
		r.Positions[i] += move
		if r.Positions[i] >= f.Finish {
			r.Positions[i] = f.Finish
			r.Finished[i] = true
			r.Order = append(r.Order, i+1)
		}
	}
}

// Run 跑完整場比賽，最多 MaxTicks 個 tick。
func Run(c *core.Core, f *Fixed, pick int) *Race {
	r := newRace(len(f.Horses))
	for !r.Done(f.Placings) && r.Ticks < f.MaxTicks {
		r.Tick(c, f, pick)
	}
	return r
}

// Resolve 押中的馬第一個到達時派 bet*odds
func Resolve(f *Fixed, pick, winner, bet int) int {
	if pick < 1 || pick > len(f.Horses) || pick != winner {
		return 0
	}
	return bet * f.Horses[pick-1].Odds
}
