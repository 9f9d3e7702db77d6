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

package horse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/sdk/phase"
	"github.com/zintix-labs/parlor/spec"
)

func Register(r *game.LogicRegistry) error {
	return r.Register(spec.LogicHorse, Build, NewBot)
}

// NewBot 每場押 1 號
func NewBot(*spec.TableSetting) game.Bot {
	return game.Always(game.Request{Action: game.ActPlay, Wager: "1"})
}

// Table 賽馬桌。選定的馬在換押前一直有效。
type Table struct {
	game.Desk
	core   *core.Core
	fixed  Fixed
	timing spec.TimingSetting
	pick   int
	last   *Race
}

// Detail 放進 Outcome.Detail 的比賽細節
type Detail struct {
	Pick   int      `json:"pick"`
	Winner int      `json:"winner"`
	Names  []string `json:"names"`
	Race   *Race    `json:"race"`
}

type State struct {
	Bet    int      `json:"bet"`
	Pick   int      `json:"pick,omitempty"`
	Names  []string `json:"names"`
	Finish float64  `json:"finish"`
	Last   *Race    `json:"last,omitempty"`
}

func Build(ts *spec.TableSetting, c *core.Core) (game.Table, error) {
	f := DefaultFixed()
	if err := spec.DecodeFixed(ts, &f); err != nil {
		return nil, err
	}
	if err := f.valid(); err != nil {
		return nil, errs.WrapWithExtra(err, "horse: invalid fixed", ts.TableName)
	}
	return &Table{Desk: game.NewDesk(ts), core: c, fixed: f, timing: ts.Timing}, nil
}

func (t *Table) names() []string {
	out := make([]string, len(t.fixed.Horses))
	for i, h := range t.fixed.Horses {
		out[i] = h.Name
	}
	return out
}

// Picked 目前押的馬，0 代表尚未選
func (t *Table) Picked() int { return t.pick }

func (t *Table) State() any {
	return State{Bet: t.Bet(), Pick: t.pick, Names: t.names(), Finish: t.fixed.Finish, Last: t.last}
}

// ParsePick 接受 1 起算的號碼或馬名（不分大小寫）
func (t *Table) ParsePick(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, n >= 1 && n <= len(t.fixed.Horses)
	}
	for i, h := range t.fixed.Horses {
		if strings.EqualFold(h.Name, s) {
			return i + 1, true
		}
	}
	return 0, false
}

func (t *Table) Play(req *game.Request, balance int) (*game.Outcome, error) {
	if o, ok := t.Adjust(req, balance); ok {
		return o, nil
	}
	switch req.Action {
	case game.ActSelect:
		n, ok := t.ParsePick(req.Wager)
		if !ok {
			return nil, errs.Reject(errs.ErrBadWager, t.Name(), req.Wager)
		}
		t.pick = n
		h := t.fixed.Horses[n-1]
		o := t.Outcome(game.ActSelect, t.Bet())
		o.Result = game.Idle
		o.Category = "select"
		o.Message = fmt.Sprintf("%s looks ready to race! Odds %d:1", h.Name, h.Odds)
		o.Emphasis = display.Info
		o.Sound = display.EvClick
		return o, nil
	case game.ActPlay:
		return t.race(req, balance)
	}
	return nil, errs.Reject(errs.ErrPhase, t.Name(), string(req.Action))
}

func (t *Table) race(req *game.Request, balance int) (*game.Outcome, error) {
	pick := t.pick
	if req.Wager != "" {
		n, ok := t.ParsePick(req.Wager)
		if !ok {
			return nil, errs.Reject(errs.ErrBadWager, t.Name(), req.Wager)
		}
		pick = n
	}
	if pick == 0 {
		return nil, errs.Reject(errs.ErrNoSelection, t.Name(), "")
	}
	bet, err := t.Stake(req, balance)
	if err != nil {
		return nil, err
	}
	t.Wager.Commit(bet)
	t.pick = pick

	r := Run(t.core, &t.fixed, pick)
	winner := r.Winner()
	payout := Resolve(&t.fixed, pick, winner, bet)
	t.last = r

	names := t.names()
	o := t.Outcome(game.ActPlay, bet)
	o.Settle(bet, payout)
	o.Category = "race"
	if payout > 0 {
		o.Result = game.Win
		o.Message = display.Sprintf("Against all odds, your horse %s won! You bet %d and won %d!", names[pick-1], bet, payout)
		o.Emphasis = display.Jackpot
		o.Sound = display.EvJackpot
	} else {
		o.Result = game.Lose
		o.Message = display.Sprintf("Horse #%d (%s) won the race! You bet on %s and lost %d.", winner, nameOf(names, winner), names[pick-1], bet)
		o.Emphasis = display.Lose
		o.Sound = display.EvLose
	}
	o.Detail = Detail{Pick: pick, Winner: winner, Names: names, Race: r}
	tick := phase.Ms(t.timing.StepMs, 50)
	o.Plan = phase.Plan{
		{Phase: phase.Racing, Delay: 0, Note: display.EvGallop},
		{Phase: phase.Settled, Delay: time.Duration(r.Ticks) * tick, Note: fmt.Sprintf("%d ticks", r.Ticks)},
	}
	return o, nil
}

func nameOf(names []string, n int) string {
	if n < 1 || n > len(names) {
		return "-"
	}
	return names[n-1]
}
