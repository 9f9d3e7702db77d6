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

package roulette

import (
	"errors"
	"testing"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/spec"
)

// slotOf 讓 Spin 落在輪上第 i 格的亂數
func slotOf(i int) float64 { return (float64(i) + 0.5) / 37 }

func indexOf(n int) int {
	for i, p := range Wheel {
		if p.Number == n {
			return i
		}
	}
	return -1
}

func newTable(t *testing.T, draws ...float64) *Table {
	t.Helper()
	ts := &spec.TableSetting{
		TableName: "roulette",
		LogicKey:  spec.LogicRoulette,
		Wager:     spec.WagerSetting{MinBet: 5, Step: 5, Initial: 10},
	}
	tb, err := Build(ts, core.New(core.NewScripted(draws...)))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return tb.(*Table)
}

func TestWheelLayout(t *testing.T) {
	seen := map[int]bool{}
	reds := 0
	for _, p := range Wheel {
		if seen[p.Number] {
			t.Fatalf("duplicate number %d", p.Number)
		}
		seen[p.Number] = true
		if p.Color == Red {
			reds++
		}
	}
	if len(seen) != 37 || reds != 18 || Wheel[0] != (Pocket{0, Green}) {
		t.Fatalf("wheel layout broken: %d numbers %d reds", len(seen), reds)
	}
}

func TestRedAlwaysPaysDoubleOnRed(t *testing.T) {
	f := DefaultFixed()
	w, _ := ParseWager("red")
	for _, p := range Wheel {
		got := Resolve(&f, w, 10, p)
		if p.Color == Red && got != 20 {
			t.Fatalf("red pocket %d paid %d", p.Number, got)
		}
		if p.Color != Red && got != 0 {
			t.Fatalf("non-red pocket %d paid %d", p.Number, got)
		}
	}
}

func TestZeroNeverSatisfiesOutsideBets(t *testing.T) {
	f := DefaultFixed()
	for _, s := range []string{"red", "black", "even", "odd"} {
		w, _ := ParseWager(s)
		if Resolve(&f, w, 10, Wheel[0]) != 0 {
			t.Fatalf("%s should lose on zero", s)
		}
	}
	w, _ := ParseWager("0")
	if Resolve(&f, w, 10, Wheel[0]) != 350 {
		t.Fatalf("straight bet on zero should pay 35x")
	}
}

func TestNumberSeventeenPays35(t *testing.T) {
	tb := newTable(t, slotOf(indexOf(17)))
	o, err := tb.Play(&game.Request{Action: game.ActPlay, Wager: "17"}, 1000)
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	if o.Payout != 350 || o.Delta != 340 || o.Result != game.Win {
		t.Fatalf("17 on 17 should pay 35x: %+v", o)
	}
	if o.Message != "Lucky number 17! You won 350 credits!" {
		t.Fatalf("unexpected message %q", o.Message)
	}
}

func TestWagerStaysSelected(t *testing.T) {
	tb := newTable(t, slotOf(indexOf(32)), slotOf(indexOf(15)))
	if _, err := tb.Play(&game.Request{Action: game.ActPlay}, 1000); !errors.Is(err, errs.ErrNoSelection) {
		t.Fatalf("want no selection, got %v", err)
	}
	if _, err := tb.Play(&game.Request{Action: game.ActSelect, Wager: "Red"}, 1000); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	o, _ := tb.Play(&game.Request{Action: game.ActPlay}, 1000)
	if o.Payout != 20 || o.Message != "Red wins! You won 20 credits!" {
		t.Fatalf("32 is red: %+v", o)
	}
	o, _ = tb.Play(&game.Request{Action: game.ActPlay}, 1010)
	if o.Result != game.Lose || o.Delta != -10 {
		t.Fatalf("15 is black: %+v", o)
	}
	if _, err := tb.Play(&game.Request{Action: game.ActSelect, Wager: "37"}, 1000); !errors.Is(err, errs.ErrBadWager) {
		t.Fatalf("37 is not on the wheel, got %v", err)
	}
}

func TestParityWins(t *testing.T) {
	tb := newTable(t, slotOf(indexOf(4)))
	o, _ := tb.Play(&game.Request{Action: game.ActPlay, Wager: "even"}, 1000)
	if o.Payout != 20 || o.Message != "Even wins! You won 20 credits!" {
		t.Fatalf("4 is even: %+v", o)
	}
}
