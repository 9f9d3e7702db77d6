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

package poker

import "github.com/zintix-labs/parlor/sdk/core"

// DealFair 從牌頂發五張
func DealFair(d *Deck) Hand {
	var h Hand
	for i := range h {
		h[i] = d.Pop()
	}
	return h
}

// DealBiased 每張牌最多試 attempts 次隨機位置，避開：
// 已出現的點數、已出現的花色、以及手上點數少於兩種時的 J/Q/K/A。
// 試完仍找不到時改取一張隨機位置的牌。發出的牌會從 d 移除。
func DealBiased(c *core.Core, d *Deck, attempts int) Hand {
	var h Hand
	ranks := make(map[Rank]bool, 5)
	seen := make(map[Suit]bool, 4)
	for i := range h {
		idx := -1
		for a := 0; idx < 0 && a < attempts; a++ {
			j := c.Index(d.Len())
			card := d.Peek(j)
			if ranks[card.Rank] || seen[card.Suit] || (card.Rank.High() && len(ranks) < 2) {
				continue
			}
			idx = j
		}
		if idx < 0 {
			idx = c.Index(d.Len())
		}
		h[i] = d.Take(idx)
		ranks[h[i].Rank] = true
		seen[h[i].Suit] = true
	}
	return h
}

// Redraw 以牌頂替換未保留的位置
func Redraw(d *Deck, h Hand, held [5]bool) Hand {
	for i := range h {
		if !held[i] {
			h[i] = d.Pop()
		}
	}
	return h
}
