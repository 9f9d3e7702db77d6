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

package dice

import (
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/sdk/phase"
	"github.com/zintix-labs/parlor/spec"
)

func Register(r *game.LogicRegistry) error {
	return r.Register(spec.LogicDice, Build, NewBot)
}

// NewBot 依序輪流押 high / low / seven
func NewBot(*spec.TableSetting) game.Bot {
	order := []Selection{High, Low, Seven}
	i := 0
	return game.BotFunc(func(*game.Outcome) *game.Request {
		s := order[i%len(order)]
		i++
		return &game.Request{Action: game.ActPlay, Wager: string(s)}
	})
}

// Table 骰子桌。選項只對下一次擲骰有效。
type Table struct {
	game.Desk
	core   *core.Core
	fixed  Fixed
	timing spec.TimingSetting
	sel    Selection
	last   Roll
}

// Detail 放進 Outcome.Detail 的擲骰細節
type Detail struct {
	Selection Selection `json:"selection"`
	Roll      Roll      `json:"roll"`
	Sum       int       `json:"sum"`
}

type State struct {
	Bet       int       `json:"bet"`
	Selection Selection `json:"selection,omitempty"`
	Last      Roll      `json:"last"`
}

func Build(ts *spec.TableSetting, c *core.Core) (game.Table, error) {
	f := DefaultFixed()
	if err := spec.DecodeFixed(ts, &f); err != nil {
		return nil, err
	}
	if f.BiasP < 0 || f.BiasP > 1 {
		return nil, errs.Fatalf("dice: bias_p %v out of [0,1]", f.BiasP)
	}
	if f.HighMult < 0 || f.LowMult < 0 || f.SevenMult < 0 {
		return nil, errs.NewFatal("dice: negative multiplier")
	}
	return &Table{Desk: game.NewDesk(ts), core: c, fixed: f, timing: ts.Timing}, nil
}

// Selected 目前選項
func (t *Table) Selected() Selection { return t.sel }

func (t *Table) State() any {
	return State{Bet: t.Bet(), Selection: t.sel, Last: t.last}
}

func (t *Table) Play(req *game.Request, balance int) (*game.Outcome, error) {
	if o, ok := t.Adjust(req, balance); ok {
		return o, nil
	}
	switch req.Action {
	case game.ActSelect:
		return t.selectWager(req)
	case game.ActPlay:
		return t.roll(req, balance)
	}
	return nil, errs.Reject(errs.ErrPhase, t.Name(), string(req.Action))
}

func (t *Table) selectWager(req *game.Request) (*game.Outcome, error) {
	sel, ok := ParseSelection(req.Wager)
	if !ok {
		return nil, errs.Reject(errs.ErrBadWager, t.Name(), req.Wager)
	}
	t.sel = sel
	o := t.Outcome(game.ActSelect, t.Bet())
	o.Result = game.Idle
	o.Category = "select"
	o.Message = display.Sprintf("Betting %s for %d credits", sel.Label(), t.Bet())
	o.Emphasis = display.Info
	o.Sound = display.EvClick
	return o, nil
}

func (t *Table) roll(req *game.Request, balance int) (*game.Outcome, error) {
	sel := t.sel
	if req.Wager != "" {
		s, ok := ParseSelection(req.Wager)
		if !ok {
			return nil, errs.Reject(errs.ErrBadWager, t.Name(), req.Wager)
		}
		sel = s
	}
	if sel == None {
		return nil, errs.Reject(errs.ErrNoSelection, t.Name(), "")
	}
	bet, err := t.Stake(req, balance)
	if err != nil {
		return nil, err
	}
	t.Wager.Commit(bet)

	r := Throw(t.core, sel, t.fixed.BiasP)
	payout := Resolve(&t.fixed, sel, bet, r)
	t.last = r
	t.sel = None

	o := t.Outcome(game.ActPlay, bet)
	o.Settle(bet, payout)
	o.Category = string(sel)
	if payout > 0 {
		o.Result = game.Win
		o.Message = display.Sprintf("You won %d credits! Sum is %d!", payout, r.Sum())
	} else {
		o.Result = game.Lose
		o.Message = display.Sprintf("You lost! Sum is %d", r.Sum())
	}
	o.Emphasis = game.EmphasisOf(o.Result)
	o.Sound = game.SoundOf(o.Result)
	o.Detail = Detail{Selection: sel, Roll: r, Sum: r.Sum()}
	o.Plan = phase.Plan{
		{Phase: phase.Rolling, Delay: phase.Ms(t.timing.SpinMs, 0)},
		{Phase: phase.Settled, Delay: phase.Ms(t.timing.StepMs, 1000)},
	}
	return o, nil
}
