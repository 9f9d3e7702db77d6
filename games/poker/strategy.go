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

import (
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/spec"
)

// HoldStrategy 簡單保留策略：
// 已成順子以上全留；有對子、三條、四條留同點數的牌；否則留 J 以上的高牌。
func HoldStrategy(h Hand) []int {
	switch Classify(h) {
	case RoyalFlush, StraightFlush, FourKind, FullHouse, Flush, Straight:
		return []int{0, 1, 2, 3, 4}
	}
	var counts [Ace + 1]int
	for _, c := range h {
		counts[c.Rank]++
	}
	held := make([]int, 0, 5)
	for i, c := range h {
		if counts[c.Rank] >= 2 {
			held = append(held, i)
		}
	}
	if len(held) > 0 {
		return held
	}
	for i, c := range h {
		if c.Rank.High() {
			held = append(held, i)
		}
	}
	return held
}

// NewBot 發牌後依 HoldStrategy 換牌
func NewBot(*spec.TableSetting) game.Bot {
	return game.BotFunc(func(last *game.Outcome) *game.Request {
		if last != nil && last.Result == game.Pending {
			if d, ok := last.Detail.(Detail); ok {
				return &game.Request{Action: game.ActDraw, Holds: HoldStrategy(d.Hand)}
			}
		}
		return &game.Request{Action: game.ActPlay}
	})
}
