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

package arcade

import (
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/sdk/phase"
	"github.com/zintix-labs/parlor/spec"
)

func Register(r *game.LogicRegistry) error {
	return r.Register(spec.LogicArcade, Build, nil)
}

// Table 街機桌
type Table struct {
	game.Desk
	core   *core.Core
	fixed  Fixed
	rigged Item
	timing spec.TimingSetting
	last   *Item
}

// Detail 放進 Outcome.Detail 的轉輪細節
type Detail struct {
	Strip    []Item `json:"strip"`
	Landed   Item   `json:"landed"`
	Forced   bool   `json:"forced,omitempty"`
	Winnings int    `json:"winnings"`
}

type State struct {
	Bet  int   `json:"bet"`
	Last *Item `json:"last,omitempty"`
}

func Build(ts *spec.TableSetting, c *core.Core) (game.Table, error) {
	f := DefaultFixed()
	if err := spec.DecodeFixed(ts, &f); err != nil {
		return nil, err
	}
	rigged, err := f.valid()
	if err != nil {
		return nil, errs.WrapWithExtra(err, "arcade: invalid fixed", ts.TableName)
	}
	return &Table{Desk: game.NewDesk(ts), core: c, fixed: f, rigged: rigged, timing: ts.Timing}, nil
}

func (t *Table) State() any {
	return State{Bet: t.Bet(), Last: t.last}
}

// Play 扣押注後加回 bet*mult；負倍數會再扣，最終由 Ledger 夾到 0。
func (t *Table) Play(req *game.Request, balance int) (*game.Outcome, error) {
	if o, ok := t.Adjust(req, balance); ok {
		return o, nil
	}
	if req.Action != game.ActPlay {
		return nil, errs.Reject(errs.ErrPhase, t.Name(), string(req.Action))
	}
	bet, err := t.Stake(req, balance)
	if err != nil {
		return nil, err
	}
	t.Wager.Commit(bet)

	strip, it, forced := Spin(t.core, &t.fixed, t.rigged)
	win := Winnings(bet, it)
	t.last = &it

	o := t.Outcome(game.ActPlay, bet)
	o.Settle(bet, win)
	o.Category = string(it.Kind)
	o.Message = message(it, bet, win)
	switch it.Kind {
	case KindJackpot:
		o.Result = game.Win
		o.Emphasis = display.Jackpot
		o.Sound = display.EvJackpot
	case KindWin:
		o.Result = game.Win
		o.Emphasis = display.Win
		o.Sound = display.EvWin
	default:
		o.Result = game.Lose
		o.Emphasis = display.Lose
		o.Sound = display.EvLose
	}
	o.Detail = Detail{Strip: strip, Landed: it, Forced: forced, Winnings: win}
	o.Plan = phase.Plan{
		{Phase: phase.Spinning, Delay: 0},
		{Phase: phase.Stopping, Delay: phase.Ms(t.timing.SpinMs, 2000)},
		{Phase: phase.Settled, Delay: phase.Ms(t.timing.StepMs, 500)},
	}
	return o, nil
}

func message(it Item, bet, win int) string {
	switch it.Kind {
	case KindJackpot:
		return display.Sprintf("JACKPOT! You won %d credits!", win)
	case KindWin:
		return display.Sprintf("WIN! %s pays %sx! You won %d credits!", it.Name, it.Mult.String(), win)
	case KindBigLose:
		return display.Sprintf("BOOM! %s costs %sx! You lost %d credits!", it.Name, it.Mult.Abs().String(), -win)
	default:
		return display.Sprintf("LOSS! %s - You lost your bet of %d credits!", it.Name, bet)
	}
}
