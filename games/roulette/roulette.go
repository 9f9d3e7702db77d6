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

// Package roulette 歐式單零輪盤：押單一號碼、紅黑或單雙，每次只押一種。
package roulette

import (
	"strconv"
	"strings"

	"github.com/zintix-labs/parlor/sdk/core"
)

// Color 格子顏色
type Color string

const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

// Pocket 輪盤上的一格
type Pocket struct {
	Number int   `json:"number"`
	Color  Color `json:"color"`
}

// Wheel 歐式輪盤的實際排列，依序為輪上位置。
var Wheel = [37]Pocket{
	{0, Green},
	{32, Red}, {15, Black}, {19, Red}, {4, Black}, {21, Red}, {2, Black},
	{25, Red}, {17, Black}, {34, Red}, {6, Black}, {27, Red}, {13, Black},
	{36, Red}, {11, Black}, {30, Red}, {8, Black}, {23, Red}, {10, Black},
	{5, Red}, {24, Black}, {16, Red}, {33, Black}, {1, Red}, {20, Black},
	{14, Red}, {31, Black}, {9, Red}, {22, Black}, {18, Red}, {29, Black},
	{7, Red}, {28, Black}, {12, Red}, {35, Black}, {3, Red}, {26, Black},
}

// Spin 均勻選一個位置，回傳位置索引與格子
func Spin(c *core.Core) (int, Pocket) {
	i := c.Index(len(Wheel))
	return i, Wheel[i]
}

// Kind 押注種類
type Kind string

const (
	KindNumber Kind = "number"
	KindColor  Kind = "color"
	KindParity Kind = "parity"
)

// Wager 一個押注：號碼 0..36、red / black、even / odd
type Wager struct {
	Kind   Kind   `json:"kind"`
	Number int    `json:"number,omitempty"`
	Color  Color  `json:"color,omitempty"`
	Even   bool   `json:"even,omitempty"`
	Raw    string `json:"raw"`
}

// ParseWager 解析押注文字，無法辨識時回傳 false
func ParseWager(s string) (Wager, bool) {
	raw := strings.ToLower(strings.TrimSpace(s))
	switch raw {
	case "red":
		return Wager{Kind: KindColor, Color: Red, Raw: raw}, true
	case "black":
		return Wager{Kind: KindColor, Color: Black, Raw: raw}, true
	case "even":
		return Wager{Kind: KindParity, Even: true, Raw: raw}, true
	case "odd":
		return Wager{Kind: KindParity, Raw: raw}, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 36 {
		return Wager{}, false
	}
	return Wager{Kind: KindNumber, Number: n, Raw: raw}, true
}

// Hits 判定押注是否命中；0 不算任何顏色或單雙
func (w Wager) Hits(p Pocket) bool {
	switch w.Kind {
	case KindNumber:
		return p.Number == w.Number
	case KindColor:
		return p.Color == w.Color
	case KindParity:
		return p.Number != 0 && (p.Number%2 == 0) == w.Even
	}
	return false
}

// Fixed 輪盤專屬設定
type Fixed struct {
	NumberMult int `yaml:"number_mult"`
	ColorMult  int `yaml:"color_mult"`
	ParityMult int `yaml:"parity_mult"`
}

func DefaultFixed() Fixed {
	return Fixed{NumberMult: 35, ColorMult: 2, ParityMult: 2}
}

// Resolve 純結算
func Resolve(f *Fixed, w Wager, bet int, p Pocket) int {
	if !w.Hits(p) {
		return 0
	}
	switch w.Kind {
	case KindNumber:
		return bet * f.NumberMult
	case KindColor:
		return bet * f.ColorMult
	default:
		return bet * f.ParityMult
	}
}
