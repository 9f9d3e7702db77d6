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
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/sdk/phase"
	"github.com/zintix-labs/parlor/spec"
)

// 牌桌狀態
const (
	StateBetting = "betting"
	StatePoint   = "point"
)

// 狀態事件
const (
	evEstablish = "establish"
	evResolve   = "resolve"
)

// Fixed craps 專屬設定
type Fixed struct {
	WinMult int `yaml:"win_mult"`
}

func Register(r *game.LogicRegistry) error {
	return r.Register(spec.LogicCraps, Build, nil)
}

// Table 一張 craps 桌。點數階段押注鎖定，且不再重扣押注。
type Table struct {
	game.Desk
	core    *core.Core
	fixed   Fixed
	timing  spec.TimingSetting
	machine *fsm.FSM
	point   int
	staked  int
	last    Roll
}

// Detail 放進 Outcome.Detail 的擲骰細節
type Detail struct {
	Roll    Roll    `json:"roll"`
	Total   int     `json:"total"`
	Verdict Verdict `json:"verdict"`
	Point   int     `json:"point,omitempty"`
}

// State 牌桌快照
type State struct {
	Bet   int    `json:"bet"`
	Phase string `json:"phase"`
	Point int    `json:"point,omitempty"`
	Last  Roll   `json:"last"`
}

func Build(ts *spec.TableSetting, c *core.Core) (game.Table, error) {
	f := Fixed{}
	if err := spec.DecodeFixed(ts, &f); err != nil {
		return nil, err
	}
	if f.WinMult == 0 {
		f.WinMult = 2
	}
	if f.WinMult < 0 {
		return nil, errs.Fatalf("craps: negative win_mult %d", f.WinMult)
	}
	t := &Table{
		Desk:   game.NewDesk(ts),
		core:   c,
		fixed:  f,
		timing: ts.Timing,
	}
	t.machine = fsm.NewFSM(
		StateBetting,
		fsm.Events{
			{Name: evEstablish, Src: []string{StateBetting}, Dst: StatePoint},
			{Name: evResolve, Src: []string{StatePoint}, Dst: StateBetting},
		},
		fsm.Callbacks{
			"enter_" + StatePoint: func(_ context.Context, e *fsm.Event) {
				t.point = e.Args[0].(int)
			},
			"enter_" + StateBetting: func(_ context.Context, _ *fsm.Event) {
				t.point = 0
				t.staked = 0
			},
		},
	)
	return t, nil
}

// Phase 目前狀態：betting 或 point
func (t *Table) Phase() string { return t.machine.Current() }

// Point 目前點數，betting 階段為 0
func (t *Table) Point() int { return t.point }

func (t *Table) State() any {
	return State{Bet: t.Bet(), Phase: t.Phase(), Point: t.point, Last: t.last}
}

func (t *Table) Play(req *game.Request, balance int) (*game.Outcome, error) {
	if req.Action != game.ActPlay {
		if t.machine.Is(StatePoint) {
			return nil, errs.Reject(errs.ErrBetLocked, t.Name(), fmt.Sprintf("point=%d", t.point))
		}
		if o, ok := t.Adjust(req, balance); ok {
			return o, nil
		}
		return nil, errs.Reject(errs.ErrPhase, t.Name(), string(req.Action))
	}
	if t.machine.Is(StatePoint) {
		return t.pointRoll()
	}
	return t.comeOut(req, balance)
}

// comeOut 出場擲：唯一扣押注的時機
func (t *Table) comeOut(req *game.Request, balance int) (*game.Outcome, error) {
	bet, err := t.Stake(req, balance)
	if err != nil {
		return nil, err
	}
	t.Wager.Commit(bet)

	roll := RollDice(t.core)
	total := roll.Sum()
	v := ComeOut(total)
	t.last = roll

	o := t.Outcome(game.ActPlay, bet)
	switch v {
	case Natural:
		o.Settle(bet, bet*t.fixed.WinMult)
		o.Result = game.Win
		o.Message = fmt.Sprintf("Lucky %d! Pass line wins!", total)
	case Craps:
		o.Settle(bet, 0)
		o.Result = game.Lose
		o.Message = "Craps! Pass line loses!"
	default:
		if err := t.machine.Event(context.Background(), evEstablish, total); err != nil {
			return nil, errs.Wrap(err, "craps: establish point")
		}
		t.staked = bet
		o.Settle(bet, 0)
		o.Result = game.Pending
		o.Message = fmt.Sprintf("Point is %d! Roll again!", total)
	}
	return t.finish(o, roll, v), nil
}

// pointRoll 點數階段：不扣押注，擲回點數派彩，擲出 7 輸掉出場押注
func (t *Table) pointRoll() (*game.Outcome, error) {
	bet := t.staked
	point := t.point
	roll := RollDice(t.core)
	total := roll.Sum()
	v := PointRoll(point, total)
	t.last = roll

	o := t.Outcome(game.ActPlay, bet)
	switch v {
	case PointMade:
		o.Settle(0, bet*t.fixed.WinMult)
		o.Result = game.Win
		o.Message = "Point made! You win!"
	case SevenOut:
		o.Settle(0, 0)
		o.Result = game.Lose
		o.Message = "Seven out! Pass line loses!"
	default:
		o.Settle(0, 0)
		o.Result = game.Pending
		o.Message = fmt.Sprintf("Roll again! Point is %d", point)
	}
	if v.Ends() {
		if err := t.machine.Event(context.Background(), evResolve); err != nil {
			return nil, errs.Wrap(err, "craps: resolve point")
		}
	}
	o = t.finish(o, roll, v)
	o.Detail = Detail{Roll: roll, Total: total, Verdict: v, Point: point}
	return o, nil
}

func (t *Table) finish(o *game.Outcome, roll Roll, v Verdict) *game.Outcome {
	o.Category = string(v)
	o.Emphasis = game.EmphasisOf(o.Result)
	o.Sound = game.SoundOf(o.Result)
	o.Detail = Detail{Roll: roll, Total: roll.Sum(), Verdict: v, Point: t.point}
	last := phase.Settled
	if t.machine.Is(StatePoint) {
		last = phase.Point
	}
	o.Plan = phase.Plan{
		{Phase: phase.Rolling, Delay: phase.Ms(t.timing.SpinMs, 0)},
		{Phase: last, Delay: phase.Ms(t.timing.StepMs, 1000)},
	}
	return o
}
