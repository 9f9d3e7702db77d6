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

// Package poker 五張抽牌撲克（Jacks or Better）：發牌、選擇保留、換牌、依牌型派彩。
package poker

import (
	"strconv"

	"github.com/zintix-labs/parlor/sdk/core"
)

// Rank 2..14，A = 14
type Rank int

const (
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// High J / Q / K / A
func (r Rank) High() bool { return r >= Jack }

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	return strconv.Itoa(int(r))
}

// Suit 花色
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

var suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

// Red 紅心、方塊
func (s Suit) Red() bool { return s == Hearts || s == Diamonds }

// Card 一張牌
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string { return c.Rank.String() + string(c.Suit) }

// Deck 牌組，最後一張為牌頂。
type Deck struct {
	cards []Card
}

// NewDeck 未洗牌的 52 張，依花色再依點數排列。
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for _, s := range suits {
		for r := Rank(2); r <= Ace; r++ {
			d.cards = append(d.cards, Card{Rank: r, Suit: s})
		}
	}
	return d
}

// NewShuffledDeck 洗好的 52 張
func NewShuffledDeck(c *core.Core) *Deck {
	d := NewDeck()
	core.Shuffle(c, d.cards)
	return d
}

func (d *Deck) Len() int { return len(d.cards) }

// Peek 看第 i 張，不取出
func (d *Deck) Peek(i int) Card { return d.cards[i] }

// Pop 從牌頂取一張
func (d *Deck) Pop() Card {
	n := len(d.cards) - 1
	c := d.cards[n]
	d.cards = d.cards[:n]
	return c
}

// Take 取出第 i 張，其餘牌保持順序
func (d *Deck) Take(i int) Card {
	c := d.cards[i]
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return c
}

// Cards 剩餘牌的副本
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
