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

// Package recorder 把一局一局的押注與派彩累積成 stats.StatReport。
package recorder

import (
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/spec"
	"github.com/zintix-labs/parlor/stats"
)

// Round 一局的總押注與總派彩。craps / poker 一局會跨好幾個動作，用 Add 逐步累積。
type Round struct {
	Bet      int
	Win      int
	Category string
	Jackpot  bool
}

// Add 累積一個動作的結果，回傳這局是否已結算。
func (rd *Round) Add(o *game.Outcome) bool {
	rd.Bet += o.Stake
	rd.Win += o.Payout
	if !o.Settled() {
		return false
	}
	rd.Category = o.Category
	rd.Jackpot = o.Emphasis == display.Jackpot
	return true
}

type RoundRecorder struct {
	Table    string
	TableId  spec.GID
	Logic    spec.LogicKey
	BetUnit  int
	InitBets int
	Basic    *BasicRecord
	Dist     *DistRecord
	Player   *PlayerRecord
}

type BasicRecord struct {
	TotalBet      int
	TotalWin      int
	TotalWinSqSum int // 平方和
	Jackpots      int
	Rounds        int
}

type DistRecord struct {
	Bucket     *stats.WinBucket
	WinCollect []int
	Categories map[string]int
}

type PlayerRecord struct {
	leaveLine   int
	InitBalance int
	Balance     int
	MaxBalance  int
	MinBalance  int
	Bust        bool
	Cashout     bool
}

// NewRoundRecorder initBets 為玩家帶入的押注次數（本金 = initBets * betUnit），0 表示不追蹤玩家。
func NewRoundRecorder(ts *spec.TableSetting, betUnit int, initBets int) (*RoundRecorder, error) {
	if betUnit <= 0 {
		return nil, errs.Fatalf("bet unit must be positive, got: %d", betUnit)
	}
	if initBets < 0 {
		return nil, errs.Fatalf("init bets must not be negative, got: %d", initBets)
	}
	return &RoundRecorder{
		Table:    ts.TableName,
		TableId:  ts.TableID,
		Logic:    ts.LogicKey,
		BetUnit:  betUnit,
		InitBets: initBets,
		Basic:    new(BasicRecord),
		Dist:     newDistRecord(betUnit),
		Player:   newPlayerRecord(betUnit, initBets),
	}, nil
}

// MergeRoundRecorder 合併同一張桌、同一押注單位的紀錄（玩家資料不合併）
func MergeRoundRecorder(rs []*RoundRecorder) (*RoundRecorder, error) {
	if len(rs) == 0 {
		return nil, errs.NewFatal("merge round record err : empty input")
	}
	r0 := rs[0]
	m := &RoundRecorder{
		Table:    r0.Table,
		TableId:  r0.TableId,
		Logic:    r0.Logic,
		BetUnit:  r0.BetUnit,
		InitBets: r0.InitBets,
		Basic:    new(BasicRecord),
		Dist:     newDistRecord(r0.BetUnit),
		Player:   newPlayerRecord(r0.BetUnit, r0.InitBets),
	}
	for _, r := range rs {
		if r.TableId != r0.TableId || r.Table != r0.Table {
			return nil, errs.NewFatal("merge round record err : different table")
		}
		if r.BetUnit != r0.BetUnit {
			return nil, errs.NewFatal("merge round record err : different bet unit")
		}
		m.Basic.TotalBet += r.Basic.TotalBet
		m.Basic.TotalWin += r.Basic.TotalWin
		m.Basic.TotalWinSqSum += r.Basic.TotalWinSqSum
		m.Basic.Jackpots += r.Basic.Jackpots
		m.Basic.Rounds += r.Basic.Rounds
		for i, c := range r.Dist.WinCollect {
			m.Dist.WinCollect[i] += c
		}
		for k, c := range r.Dist.Categories {
			m.Dist.Categories[k] += c
		}
	}
	return m, nil
}

func (r *RoundRecorder) Record(rd Round) {
	b := r.Basic
	b.TotalBet += rd.Bet
	b.TotalWin += rd.Win
	b.TotalWinSqSum += rd.Win * rd.Win
	if rd.Jackpot {
		b.Jackpots++
	}
	b.Rounds++

	r.Dist.WinCollect[r.Dist.Bucket.Index(rd.Win)]++
	if rd.Category != "" {
		r.Dist.Categories[rd.Category]++
	}
}

// Affordable 玩家本金還夠不夠押下一局
func (r *RoundRecorder) Affordable() bool {
	return r.Player.Balance >= r.BetUnit
}

// RecordWithPlayer 記錄一局並更新玩家資金，回傳玩家是否離場（破產或贏到 3 倍本金）。
func (r *RoundRecorder) RecordWithPlayer(rd Round) bool {
	r.Record(rd)
	p := r.Player
	// 與 Ledger 相同，資金不會低於 0
	p.Balance = max(0, p.Balance-rd.Bet+rd.Win)
	p.MaxBalance = max(p.MaxBalance, p.Balance)
	p.MinBalance = min(p.MinBalance, p.Balance)

	leave := false
	if p.Balance < r.BetUnit {
		p.Bust = true
		leave = true
	}
	if p.Balance >= p.leaveLine {
		p.Cashout = true
		leave = true
	}
	return leave
}

// Bust 玩家被拒絕押注時直接判定破產
func (r *RoundRecorder) Bust() {
	r.Player.Bust = true
}

func (r *RoundRecorder) Done() *stats.StatReport {
	b := r.Basic
	bu := float64(r.BetUnit)
	rounds := float64(max(b.Rounds, 1))

	cats := make(map[string]int, len(r.Dist.Categories))
	for k, v := range r.Dist.Categories {
		cats[k] = v
	}
	dist := make([]float64, len(r.Dist.WinCollect))
	for i, c := range r.Dist.WinCollect {
		dist[i] = float64(c) / rounds
	}

	rep := &stats.StatReport{
		Summary: &stats.SummaryReport{
			Table:       r.Table,
			TableId:     r.TableId,
			Logic:       r.Logic,
			BetUnit:     r.BetUnit,
			TotalBet:    b.TotalBet,
			TotalWin:    b.TotalWin,
			Jackpots:    b.Jackpots,
			JackpotRate: float64(b.Jackpots) / rounds,
			NoWinRounds: r.Dist.WinCollect[0],
			HitRate:     1 - float64(r.Dist.WinCollect[0])/rounds,
			Rounds:      b.Rounds,
		},
		Mult: &stats.MultReport{
			TotalWinMult:      float64(b.TotalWin) / bu,
			TotalWinMultSqSum: float64(b.TotalWinSqSum) / (bu * bu),
		},
		Dist: &stats.DistReport{
			WinBucket:  stats.Buckets.WinBucketStr(),
			WinCollect: append([]int(nil), r.Dist.WinCollect...),
			WinDist:    dist,
			Categories: cats,
		},
	}
	if r.InitBets > 0 {
		p := r.Player
		rep.Player = &stats.PlayerReport{
			InitBalance: p.InitBalance,
			Balance:     p.Balance,
			MaxBalance:  p.MaxBalance,
			MinBalance:  p.MinBalance,
			Bust:        p.Bust,
			Cashout:     p.Cashout,
		}
	}
	if b.Rounds == 0 {
		rep.Summary.HitRate = 0
	}
	rep.Done()
	return rep
}

func newDistRecord(bu int) *DistRecord {
	return &DistRecord{
		Bucket:     stats.Buckets.GetBucketByBetUnit(bu),
		WinCollect: make([]int, len(stats.Buckets.WinBucketStr())),
		Categories: make(map[string]int, 8),
	}
}

func newPlayerRecord(bu int, initBets int) *PlayerRecord {
	b := bu * initBets
	return &PlayerRecord{
		leaveLine:   3 * b,
		InitBalance: b,
		Balance:     b,
		MaxBalance:  b,
		MinBalance:  b,
	}
}
