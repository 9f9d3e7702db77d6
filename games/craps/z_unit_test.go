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

package craps

import (
	"errors"
	"testing"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/sdk/phase"
	"github.com/zintix-labs/parlor/spec"
)

// face 讓 Die() 回傳 v 的 [0,1) 亂數
func face(v int) float64 { return (float64(v) - 0.5) / 6 }

func dice(vs ...int) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = face(v)
	}
	return out
}

func newTable(t *testing.T, faces ...int) *Table {
	t.Helper()
	ts := &spec.TableSetting{
		TableName: "craps",
		LogicKey:  spec.LogicCraps,
		Wager:     spec.WagerSetting{MinBet: 5, Step: 5, Initial: 10},
	}
	tb, err := Build(ts, core.New(core.NewScripted(dice(faces...)...)))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return tb.(*Table)
}

func roll(t *testing.T, tb *Table, balance int) *game.Outcome {
	t.Helper()
	o, err := tb.Play(&game.Request{Action: game.ActPlay}, balance)
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	return o
}

func TestComeOutVerdicts(t *testing.T) {
	cases := []struct {
		total int
		want  Verdict
	}{
		{7, Natural}, {11, Natural}, {2, Craps}, {3, Craps}, {12, Craps},
		{4, PointSet}, {5, PointSet}, {6, PointSet}, {8, PointSet}, {9, PointSet}, {10, PointSet},
	}
	for _, c := range cases {
		if got := ComeOut(c.total); got != c.want {
			t.Fatalf("total %d: want %s got %s", c.total, c.want, got)
		}
	}
	if PointRoll(6, 6) != PointMade || PointRoll(6, 7) != SevenOut || PointRoll(6, 8) != RollAgain {
		t.Fatalf("point roll verdicts are wrong")
	}
}

func TestSevenOnComeOutWins(t *testing.T) {
	tb := newTable(t, 3, 4)
	o := roll(t, tb, 1000)
	if o.Result != game.Win || o.Delta != 10 || tb.Phase() != StateBetting {
		t.Fatalf("unexpected outcome: %+v phase=%s", o, tb.Phase())
	}
	if o.Plan.Last() != phase.Settled {
		t.Fatalf("natural should settle, plan=%v", o.Plan)
	}
}

func TestSnakeEyesLoses(t *testing.T) {
	tb := newTable(t, 1, 1)
	o := roll(t, tb, 1000)
	if o.Result != game.Lose || o.Delta != -10 || tb.Phase() != StateBetting {
		t.Fatalf("unexpected outcome: %+v", o)
	}
}

func TestFiveSetsPoint(t *testing.T) {
	tb := newTable(t, 2, 3)
	o := roll(t, tb, 1000)
	if o.Result != game.Pending || tb.Phase() != StatePoint || tb.Point() != 5 {
		t.Fatalf("want point 5, got %+v phase=%s point=%d", o, tb.Phase(), tb.Point())
	}
	if o.Delta != -10 || o.Plan.Last() != phase.Point {
		t.Fatalf("stake is charged on come-out: %+v", o)
	}
}

func TestSevenOutAfterPointSix(t *testing.T) {
	tb := newTable(t, 2, 4, 3, 5, 3, 4)
	balance := 1000
	o := roll(t, tb, balance)
	balance += o.Delta
	if tb.Point() != 6 {
		t.Fatalf("want point 6, got %d", tb.Point())
	}
	// 8：繼續擲，不重扣
	o = roll(t, tb, balance)
	if o.Result != game.Pending || o.Delta != 0 || o.Message != "Roll again! Point is 6" {
		t.Fatalf("unexpected roll again outcome: %+v", o)
	}
	balance += o.Delta
	o = roll(t, tb, balance)
	balance += o.Delta
	if o.Result != game.Lose || o.Delta != 0 || tb.Phase() != StateBetting || tb.Point() != 0 {
		t.Fatalf("seven out should lose and reset: %+v", o)
	}
	if balance != 990 {
		t.Fatalf("bet should not be returned, balance=%d", balance)
	}
}

func TestPointMadePaysDouble(t *testing.T) {
	tb := newTable(t, 4, 4, 5, 3)
	o := roll(t, tb, 1000)
	o2 := roll(t, tb, 1000+o.Delta)
	if o2.Result != game.Win || o2.Payout != 20 || o2.Stake != 0 {
		t.Fatalf("point made should pay 2x the come-out bet: %+v", o2)
	}
	if 1000+o.Delta+o2.Delta != 1010 {
		t.Fatalf("net should be +10")
	}
}

func TestBetLockedDuringPoint(t *testing.T) {
	tb := newTable(t, 2, 3)
	roll(t, tb, 1000)
	_, err := tb.Play(&game.Request{Action: game.ActUp}, 1000)
	if !errors.Is(err, errs.ErrBetLocked) {
		t.Fatalf("want bet locked, got %v", err)
	}
	if tb.Bet() != 10 {
		t.Fatalf("bet must not change during point")
	}
	// 點數階段即使餘額低於押注也能繼續擲
	o := roll(t, tb, 0)
	if o.Stake != 0 {
		t.Fatalf("point roll must not stake")
	}
}

func TestComeOutRefusedWithoutCredits(t *testing.T) {
	tb := newTable(t, 3, 4)
	_, err := tb.Play(&game.Request{Action: game.ActPlay}, 5)
	if !errors.Is(err, errs.ErrInsufficientCredits) {
		t.Fatalf("want insufficient credits, got %v", err)
	}
	if tb.Phase() != StateBetting {
		t.Fatalf("refusal must not move the table")
	}
}
