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
	"fmt"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/sdk/phase"
	"github.com/zintix-labs/parlor/spec"
)

// Register 把拉霸邏輯註冊進 r
func Register(r *game.LogicRegistry) error {
	return r.Register(spec.LogicSlots, Build, nil)
}

// Table 拉霸牌桌，持有彩池。
type Table struct {
	game.Desk
	core   *core.Core
	reel   *Reel
	pay    *Paytable
	timing spec.TimingSetting
	pool   int
	last   Reels
}

// Detail 放進 Outcome.Detail 的拉霸細節
type Detail struct {
	Reels Reels `json:"reels"`
	Pool  int   `json:"pool"`
}

// State 牌桌快照
type State struct {
	Bet  int   `json:"bet"`
	Pool int   `json:"pool"`
	Last Reels `json:"last"`
}

func Build(ts *spec.TableSetting, c *core.Core) (game.Table, error) {
	f := Fixed{ForceDifferP: -1}
	if err := spec.DecodeFixed(ts, &f); err != nil {
		return nil, err
	}
	if f.ForceDifferP < 0 {
		f.ForceDifferP = DefaultFixed().ForceDifferP
	}
	f.fill()
	if err := f.valid(); err != nil {
		return nil, errs.WrapWithExtra(err, "slots: invalid fixed", ts.TableName)
	}
	reel, err := NewReel(&f)
	if err != nil {
		return nil, err
	}
	return &Table{
		Desk:   game.NewDesk(ts),
		core:   c,
		reel:   reel,
		pay:    NewPaytable(&f),
		timing: ts.Timing,
		pool:   f.JackpotBase,
	}, nil
}

func (t *Table) Pool() int { return t.pool }

func (t *Table) State() any {
	return State{Bet: t.Bet(), Pool: t.pool, Last: t.last}
}

// Play 拉一次。押注先扣、彩池先加，再依三輪結果派彩。
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

	// 1. 抽輪
	reels := t.reel.Spin(t.core)

	// 2. 結算
	res := t.pay.Resolve(bet, reels, t.pool)
	t.pool = res.Pool
	t.last = reels

	// 3. 組結果
	o := t.Outcome(game.ActPlay, bet)
	o.Settle(bet, res.Payout)
	o.Category = res.Category
	o.Message = res.Message()
	o.Result = game.Lose
	if res.Payout > 0 {
		o.Result = game.Win
	}
	o.Emphasis = game.EmphasisOf(o.Result)
	o.Sound = game.SoundOf(o.Result)
	if res.Category == CatJackpot {
		o.Emphasis = display.Jackpot
		o.Sound = display.EvJackpot
	}
	o.Detail = Detail{Reels: reels, Pool: res.Pool}
	o.Plan = t.plan()
	return o, nil
}

// plan Spinning -> 三輪依序停 -> Settled
func (t *Table) plan() phase.Plan {
	step := phase.Ms(t.timing.StepMs, 500)
	p := phase.Plan{{Phase: phase.Spinning, Delay: phase.Ms(t.timing.SpinMs, 0)}}
	for i := range len(t.last) {
		p = append(p, phase.Step{Phase: phase.Stopping, Delay: step, Note: fmt.Sprintf("reel %d", i+1)})
	}
	return append(p, phase.Step{Phase: phase.Settled, Delay: phase.Ms(t.timing.SettleMs, 0)})
}
