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

package slots

import (
	"errors"
	"testing"
	"time"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/spec"
)

// 預設權重展開後共 106 格：
// hat [0,20) whiskey [20,40) dice [40,60) joker [60,80) masks [80,100) diamond [100,105) seven 105
func newTable(t *testing.T, draws ...float64) (*Table, *core.Scripted) {
	t.Helper()
	ts := &spec.TableSetting{
		TableName: "slots",
		LogicKey:  spec.LogicSlots,
		Wager:     spec.WagerSetting{MinBet: 5, Step: 5, Initial: 10},
	}
	src := core.NewScripted(draws...)
	tb, err := Build(ts, core.New(src))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return tb.(*Table), src
}

func play(t *testing.T, tb *Table, balance int) *game.Outcome {
	t.Helper()
	o, err := tb.Play(&game.Request{Action: game.ActPlay}, balance)
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	return o
}

func TestPairAnywherePaysDouble(t *testing.T) {
	// 不強制；hat hat dice
	tb, _ := newTable(t, 0.9, 0.0, 0.0, 0.5)
	o := play(t, tb, 1000)
	if o.Category != CatPair || o.Payout != 20 || o.Delta != 10 {
		t.Fatalf("unexpected outcome: %+v", o)
	}
	if 1000+o.Delta != 1010 {
		t.Fatalf("balance should end at 1010")
	}
	if o.Message != "Two hat! You won 20 credits!" {
		t.Fatalf("unexpected message %q", o.Message)
	}
	// 強制不同；hat，重抽 hat hat 後得到 whiskey，第三輪 hat
	tb, src := newTable(t, 0.1, 0.0, 0.0, 0.1, 0.2, 0.0)
	o = play(t, tb, 1000)
	d := o.Detail.(Detail)
	if d.Reels != (Reels{Hat, Whiskey, Hat}) {
		t.Fatalf("unexpected reels %v", d.Reels)
	}
	if o.Category != CatPair || o.Payout != 20 {
		t.Fatalf("first and third reel should pair: %+v", o)
	}
	if src.Used() != 6 {
		t.Fatalf("expected 6 draws, used %d", src.Used())
	}
}

func TestThreeOfAKindUsesSymbolMult(t *testing.T) {
	tb, _ := newTable(t, 0.9, 0.95, 0.95, 0.95)
	o := play(t, tb, 1000)
	if o.Category != CatThree || o.Payout != 1000 {
		t.Fatalf("diamond triple should pay 100x: %+v", o)
	}
}

func TestJackpotPaysPoolAndResets(t *testing.T) {
	tb, _ := newTable(t, 0.9, 0.999, 0.999, 0.999)
	o := play(t, tb, 1000)
	if o.Category != CatJackpot {
		t.Fatalf("want jackpot, got %+v", o)
	}
	if o.Payout != 10*200+50010 {
		t.Fatalf("jackpot should include the grown pool, got %d", o.Payout)
	}
	if tb.Pool() != 50000 {
		t.Fatalf("pool should reset, got %d", tb.Pool())
	}
	if o.Emphasis != display.Jackpot || o.Sound != display.EvJackpot {
		t.Fatalf("jackpot should be emphasised: %+v", o)
	}
}

func TestLosingSpinGrowsPool(t *testing.T) {
	tb, _ := newTable(t, 0.9, 0.0, 0.2, 0.4)
	o := play(t, tb, 1000)
	if o.Result != game.Lose || o.Delta != -10 || o.Message != "Try again!" {
		t.Fatalf("unexpected outcome: %+v", o)
	}
	if tb.Pool() != 50010 {
		t.Fatalf("pool should grow by the bet, got %d", tb.Pool())
	}
}

func TestRefusedSpinTouchesNothing(t *testing.T) {
	tb, src := newTable(t, 0.9, 0.0, 0.0, 0.5)
	_, err := tb.Play(&game.Request{Action: game.ActPlay}, 5)
	if !errors.Is(err, errs.ErrInsufficientCredits) {
		t.Fatalf("want insufficient credits, got %v", err)
	}
	if src.Used() != 0 || tb.Pool() != 50000 || tb.Bet() != 10 {
		t.Fatalf("refusal must not draw or mutate: used=%d pool=%d bet=%d", src.Used(), tb.Pool(), tb.Bet())
	}
	if _, err = tb.Play(&game.Request{Action: game.ActDraw}, 1000); !errors.Is(err, errs.ErrPhase) {
		t.Fatalf("draw is not a slots action, got %v", err)
	}
}

func TestSpinPlan(t *testing.T) {
	tb, _ := newTable(t, 0.9, 0.0, 0.2, 0.4)
	o := play(t, tb, 1000)
	if len(o.Plan) != 5 || o.Plan.Total() != 1500*time.Millisecond {
		t.Fatalf("unexpected plan %+v", o.Plan)
	}
}

func TestFixedValidation(t *testing.T) {
	f := DefaultFixed()
	f.Symbols = []SymbolSetting{{Name: Seven, Weight: 1, Mult: 200}, {Name: Hat, Weight: 0, Mult: 50}}
	if err := f.valid(); err == nil {
		t.Fatalf("single live symbol must be rejected")
	}
	f = DefaultFixed()
	f.JackpotSymbol = "cherry"
	if err := f.valid(); err == nil {
		t.Fatalf("unknown jackpot symbol must be rejected")
	}
}

func TestSpinDistribution(t *testing.T) {
	f := DefaultFixed()
	r, err := NewReel(&f)
	if err != nil {
		t.Fatalf("reel: %v", err)
	}
	c := core.New(core.Default().New(7))
	same := 0
	n := 20000
	for range n {
		rs := r.Spin(c)
		if rs[0] == rs[1] {
			same++
		}
	}
	// 不強制時前兩輪相同機率約 0.2045，強制後約 0.3 倍
	if rate := float64(same) / float64(n); rate > 0.09 || rate < 0.03 {
		t.Fatalf("forced differ rate looks wrong: %v", rate)
	}
}
