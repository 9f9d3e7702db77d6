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

package parlor

import (
	"github.com/zintix-labs/parlor/corefmt"
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/game"
)

const maxAuditRounds = 5000

// Auditor 單線、可重現的稽核器：每次都從一張剛建好的桌開始，
// 並在建桌之前記下亂數核心快照，拿快照就能把整段重播出來。
type Auditor struct {
	seat *Seat
}

// AuditReport Before 是建桌前的核心快照，After 是結束時的核心快照（Base64URL）。
type AuditReport struct {
	Before   string          `json:"before_b64u"`
	After    string          `json:"after_b64u"`
	Rounds   int             `json:"rounds"`
	Rtp      float64         `json:"rtp"`
	TotalBet int             `json:"total_bet"`
	TotalWin int             `json:"total_win"`
	Results  []*game.Outcome `json:"results"`
}

func (p *Parlor) NewAuditor(name string, seed int64) (*Auditor, error) {
	seat, err := p.NewSeatWithSeed(name, seed)
	if err != nil {
		return nil, err
	}
	return &Auditor{seat: seat}, nil
}

// Rounds 換一個派生 seed 建新桌後打 n 局。
func (a *Auditor) Rounds(n int) (AuditReport, error) {
	if err := validAuditRounds(n); err != nil {
		return AuditReport{}, err
	}
	c := core.New(a.seat.cf.New(a.seat.seeds.next()))
	return a.run(c, n)
}

// Replay 從 Rounds 回傳的 Before 快照重播 n 局；n 相同時結果逐局相同。
func (a *Auditor) Replay(before string, n int) (AuditReport, error) {
	if err := validAuditRounds(n); err != nil {
		return AuditReport{}, err
	}
	src, err := corefmt.DecodeBase64URL(before)
	if err != nil {
		return AuditReport{}, err
	}
	c := core.New(a.seat.cf.New(0))
	if err := c.Restore(src); err != nil {
		return AuditReport{}, errs.WrapWithExtra(err, "restore core failed", a.seat.Name())
	}
	return a.run(c, n)
}

func (a *Auditor) run(c *core.Core, n int) (AuditReport, error) {
	be, err := c.Snapshot()
	if err != nil {
		return AuditReport{}, errs.Wrap(err, "snapshot core failed")
	}
	if err := a.seat.mount(c); err != nil {
		return AuditReport{}, err
	}

	rep := AuditReport{Before: corefmt.EncodeBase64URL(be), Results: make([]*game.Outcome, 0, n)}
	bot := a.seat.Bot()
	var last *game.Outcome
	for range n {
		rd, o, err := a.seat.Round(bot, last, houseBalance)
		if err != nil {
			return AuditReport{}, errs.Wrap(err, "audit round failed")
		}
		last = o
		rep.TotalBet += rd.Bet
		rep.TotalWin += rd.Win
		rep.Results = append(rep.Results, o)
	}
	rep.Rounds = n
	if rep.TotalBet > 0 {
		rep.Rtp = 100.0 * float64(rep.TotalWin) / float64(rep.TotalBet)
	}

	af, err := a.seat.SnapshotCore()
	if err != nil {
		return AuditReport{}, errs.Wrap(err, "snapshot core failed")
	}
	rep.After = corefmt.EncodeBase64URL(af)
	return rep, nil
}

func validAuditRounds(n int) error {
	if n < 1 || n > maxAuditRounds {
		return errs.Warnf("rounds must be between 1 and %d", maxAuditRounds)
	}
	return nil
}
