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
	"strings"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/sdk/phase"
	"github.com/zintix-labs/parlor/spec"
)

func Register(r *game.LogicRegistry) error {
	return r.Register(spec.LogicRoulette, Build, NewBot)
}

// NewBot 輪流押紅、單、17
func NewBot(*spec.TableSetting) game.Bot {
	order := []string{"red", "odd", "17"}
	i := 0
	return game.BotFunc(func(*game.Outcome) *game.Request {
		w := order[i%len(order)]
		i++
		return &game.Request{Action: game.ActPlay, Wager: w}
	})
}

// Table 輪盤桌。押注項目在換押前一直有效。
type Table struct {
	game.Desk
	core   *core.Core
	fixed  Fixed
	timing spec.TimingSetting
	wager  *Wager
	last   *Pocket
}

// Detail 放進 Outcome.Detail 的輪盤細節
type Detail struct {
	Wager  Wager  `json:"wager"`
	Slot   int    `json:"slot"`
	Pocket Pocket `json:"pocket"`
}

type State struct {
	Bet   int     `json:"bet"`
	Wager string  `json:"wager,omitempty"`
	Last  *Pocket `json:"last,omitempty"`
}

func Build(ts *spec.TableSetting, c *core.Core) (game.Table, error) {
	f := DefaultFixed()
	if err := spec.DecodeFixed(ts, &f); err != nil {
		return nil, err
	}
	if f.NumberMult < 0 || f.ColorMult < 0 || f.ParityMult < 0 {
		return nil, errs.NewFatal("roulette: negative multiplier")
	}
	return &Table{Desk: game.NewDesk(ts), core: c, fixed: f, timing: ts.Timing}, nil
}

func (t *Table) State() any {
	s := State{Bet: t.Bet(), Last: t.last}
	if t.wager != nil {
		s.Wager = t.wager.Raw
	}
	return s
}

func (t *Table) Play(req *game.Request, balance int) (*game.Outcome, error) {
	if o, ok := t.Adjust(req, balance); ok {
		return o, nil
	}
	switch req.Action {
	case game.ActSelect:
		w, ok := ParseWager(req.Wager)
		if !ok {
			return nil, errs.Reject(errs.ErrBadWager, t.Name(), req.Wager)
		}
		t.wager = &w
		o := t.Outcome(game.ActSelect, t.Bet())
		o.Result = game.Idle
		o.Category = "select"
		o.Message = display.Sprintf("Betting %d credits on %s", t.Bet(), w.Raw)
		o.Emphasis = display.Info
		o.Sound = display.EvChips
		return o, nil
	case game.ActPlay:
		return t.spin(req, balance)
	}
	return nil, errs.Reject(errs.ErrPhase, t.Name(), string(req.Action))
}

func (t *Table) spin(req *game.Request, balance int) (*game.Outcome, error) {
	w := t.wager
	if req.Wager != "" {
		pw, ok := ParseWager(req.Wager)
		if !ok {
			return nil, errs.Reject(errs.ErrBadWager, t.Name(), req.Wager)
		}
		w = &pw
	}
	if w == nil {
		return nil, errs.Reject(errs.ErrNoSelection, t.Name(), "")
	}
	bet, err := t.Stake(req, balance)
	if err != nil {
		return nil, err
	}
	t.Wager.Commit(bet)
	t.wager = w

	slot, p := Spin(t.core)
	payout := Resolve(&t.fixed, *w, bet, p)
	t.last = &p

	o := t.Outcome(game.ActPlay, bet)
	o.Settle(bet, payout)
	o.Category = string(w.Kind)
	if payout > 0 {
		o.Result = game.Win
		o.Message = winMessage(*w, p, payout)
	} else {
		o.Result = game.Lose
		o.Message = "Try again!"
	}
	o.Emphasis = game.EmphasisOf(o.Result)
	o.Sound = game.SoundOf(o.Result)
	o.Detail = Detail{Wager: *w, Slot: slot, Pocket: p}
	o.Plan = phase.Plan{
		{Phase: phase.Spinning, Delay: 0},
		{Phase: phase.Settled, Delay: phase.Ms(t.timing.SpinMs, 5000)},
	}
	return o, nil
}

func winMessage(w Wager, p Pocket, payout int) string {
	switch w.Kind {
	case KindNumber:
		return display.Sprintf("Lucky number %d! You won %d credits!", p.Number, payout)
	case KindColor:
		return display.Sprintf("%s wins! You won %d credits!", title(string(w.Color)), payout)
	default:
		return display.Sprintf("%s wins! You won %d credits!", title(w.Raw), payout)
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
