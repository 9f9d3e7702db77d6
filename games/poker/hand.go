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
	"slices"
	"strings"
)

// Hand 五張牌，順序即位置（保留以位置指定）。
type Hand [5]Card

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Category 牌型
type Category string

const (
	RoyalFlush    Category = "royal_flush"
	StraightFlush Category = "straight_flush"
	FourKind      Category = "four_of_a_kind"
	FullHouse     Category = "full_house"
	Flush         Category = "flush"
	Straight      Category = "straight"
	ThreeKind     Category = "three_of_a_kind"
	TwoPair       Category = "two_pair"
	JacksOrBetter Category = "jacks_or_better"
	NoWin         Category = "no_win"
)

// Categories 由高到低
var Categories = []Category{
	RoyalFlush, StraightFlush, FourKind, FullHouse, Flush,
	Straight, ThreeKind, TwoPair, JacksOrBetter, NoWin,
}

var labels = map[Category]string{
	RoyalFlush:    "Royal Flush",
	StraightFlush: "Straight Flush",
	FourKind:      "Four of a Kind",
	FullHouse:     "Full House",
	Flush:         "Flush",
	Straight:      "Straight",
	ThreeKind:     "Three of a Kind",
	TwoPair:       "Two Pair",
	JacksOrBetter: "Jacks or Better",
	NoWin:         "No Win",
}

func (c Category) Label() string { return labels[c] }

// DefaultPayouts 牌型倍數
func DefaultPayouts() map[Category]int {
	return map[Category]int{
		RoyalFlush:    800,
		StraightFlush: 200,
		FourKind:      100,
		FullHouse:     50,
		Flush:         30,
		Straight:      25,
		ThreeKind:     15,
		TwoPair:       10,
		JacksOrBetter: 5,
		NoWin:         0,
	}
}

// Classify 依固定優先序判定牌型，與牌的順序無關。
func Classify(h Hand) Category {
	var counts [Ace + 1]int
	flush := true
	for _, c := range h {
		counts[c.Rank]++
		if c.Suit != h[0].Suit {
			flush = false
		}
	}

	// groups: 每個出現點數的張數，由多到少
	groups := make([]int, 0, 5)
	pairRank := Rank(0)
	for r := Rank(2); r <= Ace; r++ {
		if counts[r] > 0 {
			groups = append(groups, counts[r])
		}
		if counts[r] == 2 {
			pairRank = r
		}
	}
	slices.SortFunc(groups, func(a, b int) int { return b - a })

	straight, low := straightOf(counts[:], len(groups))
	switch {
	case flush && straight && low == 10:
		return RoyalFlush
	case flush && straight:
		return StraightFlush
	case groups[0] == 4:
		return FourKind
	case groups[0] == 3 && groups[1] == 2:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case groups[0] == 3:
		return ThreeKind
	case groups[0] == 2 && groups[1] == 2:
		return TwoPair
	case groups[0] == 2 && pairRank.High():
		return JacksOrBetter
	}
	return NoWin
}

// straightOf 五個不同點數且連續；A-2-3-4-5 視為順子，low 回傳 1。
func straightOf(counts []int, distinct int) (bool, Rank) {
	if distinct != 5 {
		return false, 0
	}
	lo, hi := Ace, Rank(2)
	for r := Rank(2); r <= Ace; r++ {
		if counts[r] > 0 {
			lo = min(lo, r)
			hi = max(hi, r)
		}
	}
	if hi-lo == 4 {
		return true, lo
	}
	if counts[Ace] > 0 && counts[2] > 0 && counts[3] > 0 && counts[4] > 0 && counts[5] > 0 {
		return true, 1
	}
	return false, 0
}
