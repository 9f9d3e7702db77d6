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

package recorder

import (
	"math"
	"testing"

	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/spec"
)

var crapsTable = &spec.TableSetting{TableName: "craps", TableID: 2, LogicKey: spec.LogicCraps}

func TestRoundSpansSeveralActions(t *testing.T) {
	var rd Round
	// craps：建立點數時收注，點數命中時派彩
	point := &game.Outcome{Result: game.Pending, Category: "point_set"}
	point.Settle(10, 0)
	if rd.Add(point) {
		t.Fatalf("pending outcome should not close the round")
	}
	made := &game.Outcome{Result: game.Win, Category: "point_made", Emphasis: display.Win}
	made.Settle(0, 20)
	if !rd.Add(made) {
		t.Fatalf("win should close the round")
	}
	if rd.Bet != 10 || rd.Win != 20 || rd.Category != "point_made" || rd.Jackpot {
		t.Fatalf("unexpected round %+v", rd)
	}
}

func TestRecordAndDone(t *testing.T) {
	r, err := NewRoundRecorder(crapsTable, 10, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	r.Record(Round{Bet: 10, Win: 20, Category: "natural"})
	r.Record(Round{Bet: 10, Win: 0, Category: "craps"})
	r.Record(Round{Bet: 10, Win: 0, Category: "craps"})
	r.Record(Round{Bet: 10, Win: 500, Category: "natural", Jackpot: true})

	rep := r.Done()
	if rep.Summary.Rounds != 4 || rep.Summary.TotalBet != 40 || rep.Summary.TotalWin != 520 {
		t.Fatalf("unexpected summary %+v", rep.Summary)
	}
	if math.Abs(rep.Summary.RTP-13) > 1e-12 {
		t.Fatalf("want RTP 13 got %v", rep.Summary.RTP)
	}
	if rep.Summary.HitRate != 0.5 || rep.Summary.NoWinRounds != 2 || rep.Summary.Jackpots != 1 {
		t.Fatalf("unexpected hit stats %+v", rep.Summary)
	}
	if rep.Dist.Categories["craps"] != 2 || rep.Dist.Categories["natural"] != 2 {
		t.Fatalf("unexpected categories %v", rep.Dist.Categories)
	}
	if rep.Player != nil {
		t.Fatalf("player report only when tracking a bankroll")
	}
}

func TestPlayerBankroll(t *testing.T) {
	r, _ := NewRoundRecorder(crapsTable, 10, 3)
	if !r.Affordable() {
		t.Fatalf("30 credits should afford a 10 bet")
	}
	if r.RecordWithPlayer(Round{Bet: 10, Win: 0}) {
		t.Fatalf("20 left should keep playing")
	}
	// 炸彈這類負派彩也不會讓資金低於 0
	if !r.RecordWithPlayer(Round{Bet: 10, Win: -20}) {
		t.Fatalf("player should bust")
	}
	if r.Player.Balance != 0 || !r.Player.Bust || r.Player.MinBalance != 0 {
		t.Fatalf("unexpected player %+v", r.Player)
	}

	c, _ := NewRoundRecorder(crapsTable, 10, 3)
	if !c.RecordWithPlayer(Round{Bet: 10, Win: 70}) {
		t.Fatalf("reaching 3x should cash out")
	}
	rep := c.Done()
	if !rep.Player.Cashout || rep.Player.Alive || rep.Player.MaxBalance != 90 {
		t.Fatalf("unexpected player report %+v", rep.Player)
	}
}

func TestMerge(t *testing.T) {
	a, _ := NewRoundRecorder(crapsTable, 10, 0)
	b, _ := NewRoundRecorder(crapsTable, 10, 0)
	a.Record(Round{Bet: 10, Win: 20, Category: "natural"})
	b.Record(Round{Bet: 10, Win: 0, Category: "craps"})
	m, err := MergeRoundRecorder([]*RoundRecorder{a, b})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if m.Basic.Rounds != 2 || m.Basic.TotalWin != 20 || m.Dist.Categories["craps"] != 1 {
		t.Fatalf("unexpected merge %+v", m.Basic)
	}
	other, _ := NewRoundRecorder(crapsTable, 20, 0)
	if _, err := MergeRoundRecorder([]*RoundRecorder{a, other}); err == nil {
		t.Fatalf("different bet units should not merge")
	}
	if _, err := NewRoundRecorder(crapsTable, 0, 0); err == nil {
		t.Fatalf("zero bet unit should fail")
	}
}
