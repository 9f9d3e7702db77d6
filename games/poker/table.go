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

package poker

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/sdk/phase"
	"github.com/zintix-labs/parlor/spec"
)

const (
	StateBetting = "betting"
	StateHolding = "holding"

	evDeal = "deal"
	evDraw = "draw"
)

// Fixed 撲克專屬設定
type Fixed struct {
	BiasP     float64          `yaml:"bias_p"`
	Attempts  int              `yaml:"attempts"`
	Reshuffle int              `yaml:"reshuffle"`
	Payouts   map[Category]int `yaml:"payouts"`
}

func DefaultFixed() Fixed {
	return Fixed{BiasP: 0.8, Attempts: 20, Reshuffle: 10}
}

func (f *Fixed) valid() error {
	if f.BiasP < 0 || f.BiasP > 1 {
		return errs.Fatalf("poker: bias_p %v out of [0,1]", f.BiasP)
	}
	if f.Attempts < 0 {
		return errs.NewFatal("poker: negative attempts")
	}
	// 一局最多用掉 10 張
	if f.Reshuffle < 10 || f.Reshuffle > 52 {
		return errs.Fatalf("poker: reshuffle %d out of [10,52]", f.Reshuffle)
	}
	for k, v := range f.Payouts {
		if _, ok := labels[k]; !ok {
			return errs.Fatalf("poker: unknown hand %q", k)
		}
		if v < 0 {
			return errs.Fatalf("poker: negative payout on %q", k)
		}
	}
	return nil
}

func Register(r *game.LogicRegistry) error {
	return r.Register(spec.LogicPoker, Build, NewBot)
}

// Table 撲克桌：betting 階段發牌並扣押注，holding 階段換牌並派彩。
type Table struct {
	game.Desk
	core    *core.Core
	fixed   Fixed
	timing  spec.TimingSetting
	machine *fsm.FSM
	deck    *Deck
	hand    Hand
	held    [5]bool
	staked  int
}

// Detail 放進 Outcome.Detail 的牌局細節
type Detail struct {
	Hand     Hand     `json:"hand"`
	Held     []int    `json:"held,omitempty"`
	Category Category `json:"category"`
	Biased   bool     `json:"biased,omitempty"`
}

type State struct {
	Bet   int    `json:"bet"`
	Phase string `json:"phase"`
	Hand  *Hand  `json:"hand,omitempty"`
	Held  []int  `json:"held,omitempty"`
	Deck  int    `json:"deck"`
}

func Build(ts *spec.TableSetting, c *core.Core) (game.Table, error) {
	f := DefaultFixed()
	if err := spec.DecodeFixed(ts, &f); err != nil {
		return nil, err
	}
	pay := DefaultPayouts()
	for k, v := range f.Payouts {
		pay[k] = v
	}
	if err := f.valid(); err != nil {
		return nil, errs.WrapWithExtra(err, "poker: invalid fixed", ts.TableName)
	}
	f.Payouts = pay
	t := &Table{
		Desk:   game.NewDesk(ts),
		core:   c,
		fixed:  f,
		timing: ts.Timing,
		deck:   NewShuffledDeck(c),
	}
	t.machine = fsm.NewFSM(
		StateBetting,
		fsm.Events{
			{Name: evDeal, Src: []string{StateBetting}, Dst: StateHolding},
			{Name: evDraw, Src: []string{StateHolding}, Dst: StateBetting},
		},
		fsm.Callbacks{
			"enter_" + StateBetting: func(_ context.Context, _ *fsm.Event) {
				t.held = [5]bool{}
				t.staked = 0
			},
		},
	)
	return t, nil
}

func (t *Table) Phase() string { return t.machine.Current() }

// Hand 目前手牌
func (t *Table) Hand() Hand { return t.hand }

func (t *Table) State() any {
	s := State{Bet: t.Bet(), Phase: t.Phase(), Deck: t.deck.Len()}
	if t.machine.Is(StateHolding) {
		h := t.hand
		s.Hand = &h
		s.Held = heldList(t.held)
	}
	return s
}

func (t *Table) Play(req *game.Request, balance int) (*game.Outcome, error) {
	holding := t.machine.Is(StateHolding)
	switch req.Action {
	case game.ActPlay:
		if holding {
			return nil, errs.Reject(errs.ErrPhase, t.Name(), "hand already dealt")
		}
		return t.deal(req, balance)
	case game.ActSelect:
		if !holding {
			return nil, errs.Reject(errs.ErrPhase, t.Name(), "no hand to hold")
		}
		return t.hold(req)
	case game.ActDraw:
		if !holding {
			return nil, errs.Reject(errs.ErrPhase, t.Name(), "draw before deal")
		}
		return t.draw(req)
	}
	if holding {
		return nil, errs.Reject(errs.ErrBetLocked, t.Name(), "hand in progress")
	}
	if o, ok := t.Adjust(req, balance); ok {
		return o, nil
	}
	return nil, errs.Reject(errs.ErrPhase, t.Name(), string(req.Action))
}

func (t *Table) deal(req *game.Request, balance int) (*game.Outcome, error) {
	bet, err := t.Stake(req, balance)
	if err != nil {
		return nil, err
	}
	t.Wager.Commit(bet)
	if t.deck.Len() < t.fixed.Reshuffle {
		t.deck = NewShuffledDeck(t.core)
	}

	biased := t.core.Chance(t.fixed.BiasP)
	if biased {
		t.hand = DealBiased(t.core, t.deck, t.fixed.Attempts)
	} else {
		t.hand = DealFair(t.deck)
	}
	if err := t.machine.Event(context.Background(), evDeal); err != nil {
		return nil, errs.Wrap(err, "poker: deal")
	}
	t.staked = bet

	o := t.Outcome(game.ActPlay, bet)
	o.Settle(bet, 0)
	o.Result = game.Pending
	o.Category = evDeal
	o.Message = "Select cards to hold, then click Draw"
	o.Emphasis = display.Info
	o.Sound = display.EvCard
	o.Detail = Detail{Hand: t.hand, Category: Classify(t.hand), Biased: biased}
	o.Plan = t.cards(phase.Dealing)
	return o, nil
}

// hold 以 req.Holds 取代目前的保留位置
func (t *Table) hold(req *game.Request) (*game.Outcome, error) {
	held, err := heldOf(req.Holds)
	if err != nil {
		return nil, errs.Reject(errs.ErrBadWager, t.Name(), err.Error())
	}
	t.held = held
	o := t.Outcome(game.ActSelect, t.staked)
	o.Result = game.Pending
	o.Category = "hold"
	o.Message = fmt.Sprintf("Holding %d card(s)", len(heldList(held)))
	o.Emphasis = display.Info
	o.Sound = display.EvClick
	o.Detail = Detail{Hand: t.hand, Held: heldList(held), Category: Classify(t.hand)}
	return o, nil
}

// draw 換掉未保留的牌並派彩。req.Holds 非 nil 時以它為準。
func (t *Table) draw(req *game.Request) (*game.Outcome, error) {
	held := t.held
	if req.Holds != nil {
		h, err := heldOf(req.Holds)
		if err != nil {
			return nil, errs.Reject(errs.ErrBadWager, t.Name(), err.Error())
		}
		held = h
	}
	bet := t.staked
	hand := Redraw(t.deck, t.hand, held)
	cat := Classify(hand)
	payout := bet * t.fixed.Payouts[cat]
	if err := t.machine.Event(context.Background(), evDraw); err != nil {
		return nil, errs.Wrap(err, "poker: draw")
	}
	t.hand = hand
	if t.deck.Len() < t.fixed.Reshuffle {
		t.deck = NewShuffledDeck(t.core)
	}

	o := t.Outcome(game.ActDraw, bet)
	o.Settle(0, payout)
	o.Category = string(cat)
	if payout > 0 {
		o.Result = game.Win
		o.Message = display.Sprintf("%s! You won %d credits!", cat.Label(), payout)
	} else {
		o.Result = game.Lose
		o.Message = "No win. Try again!"
	}
	o.Emphasis = game.EmphasisOf(o.Result)
	o.Sound = game.SoundOf(o.Result)
	if cat == RoyalFlush {
		o.Emphasis = display.Jackpot
		o.Sound = display.EvJackpot
	}
	o.Detail = Detail{Hand: hand, Held: heldList(held), Category: cat}
	o.Plan = append(t.cards(phase.Drawing), phase.Step{Phase: phase.Settled, Delay: phase.Ms(t.timing.SettleMs, 0)})
	return o, nil
}

// cards 每張牌翻開一步
func (t *Table) cards(p phase.Phase) phase.Plan {
	step := phase.Ms(t.timing.StepMs, 100)
	plan := make(phase.Plan, 0, 6)
	for i := range len(t.hand) {
		plan = append(plan, phase.Step{Phase: p, Delay: step, Note: fmt.Sprintf("card %d", i+1)})
	}
	return plan
}

func heldOf(holds []int) ([5]bool, error) {
	var held [5]bool
	for _, i := range holds {
		if i < 0 || i >= len(held) {
			return held, fmt.Errorf("hold position %d out of range", i)
		}
		held[i] = true
	}
	return held, nil
}

func heldList(held [5]bool) []int {
	out := make([]int, 0, len(held))
	for i, h := range held {
		if h {
			out = append(out, i)
		}
	}
	return out
}
