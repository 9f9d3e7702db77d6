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
	"sync"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/recorder"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/spec"
)

// maxActions 一局最多幾個動作（craps 點數局理論上可以無限長）
const maxActions = 1 << 16

// Seat 一張牌桌的外殼：持有自己的亂數核心，並保證同一時間只有一個動作在桌上執行。
//
// 牌桌在 Play 時 panic 會被視為壞桌：以 seed 派生器給的新 seed 重建一張新桌，
// 該次動作回傳 Fatal，Ledger 不會被動到。
type Seat struct {
	ts       *spec.TableSetting
	reg      *game.LogicRegistry
	cf       core.PRNGFactory
	mu       sync.Mutex
	core     *core.Core
	table    game.Table
	initseed int64
	seeds    *seedMaker
	rebuild  int
}

func newSeat(ts *spec.TableSetting, reg *game.LogicRegistry, cf core.PRNGFactory, seed int64) (*Seat, error) {
	s := &Seat{
		ts:       ts,
		reg:      reg,
		cf:       cf,
		initseed: seed,
		seeds:    newSeedMaker(seed),
	}
	if err := s.build(seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Seat) build(seed int64) error {
	return s.buildOn(core.New(s.cf.New(seed)))
}

func (s *Seat) buildOn(c *core.Core) error {
	t, err := s.reg.Build(s.ts, c)
	if err != nil {
		return err
	}
	s.core = c
	s.table = t
	return nil
}

func (s *Seat) Name() string         { return s.ts.TableName }
func (s *Seat) ID() spec.GID         { return s.ts.TableID }
func (s *Seat) Logic() spec.LogicKey { return s.ts.LogicKey }
func (s *Seat) Seed() int64          { return s.initseed }

func (s *Seat) Setting() *spec.TableSetting { return s.ts }

func (s *Seat) Bet() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Bet()
}

func (s *Seat) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.State()
}

// Rebuilds 壞桌重建次數
func (s *Seat) Rebuilds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuild
}

// Bot 模擬用自動玩家
func (s *Seat) Bot() game.Bot {
	return s.reg.Bot(s.ts)
}

func (s *Seat) Play(req *game.Request, balance int) (*game.Outcome, error) {
	if req == nil {
		return nil, errs.Reject(errs.ErrBadWager, s.ts.TableName, "nil request")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.play(req, balance)
}

func (s *Seat) play(req *game.Request, balance int) (o *game.Outcome, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		o = nil
		err = errs.Fatalf("%s: table panic: %v", s.ts.TableName, r)
		if e := s.build(s.seeds.next()); e == nil {
			s.rebuild++
		}
	}()
	return s.table.Play(req, balance)
}

// Round 讓 bot 打完一局，回傳累積的押注/派彩與最後一個 Outcome。
//
// 桌面拒絕（例如餘額不足）時原樣回傳錯誤，已經累積的部分仍在 rd 裡。
func (s *Seat) Round(bot game.Bot, last *game.Outcome, balance int) (rd recorder.Round, out *game.Outcome, err error) {
	out = last
	for range maxActions {
		o, err := s.Play(bot.Next(out), balance)
		if err != nil {
			return rd, out, err
		}
		out = o
		balance = max(0, balance+o.Delta)
		if rd.Add(o) {
			return rd, out, nil
		}
	}
	return rd, out, errs.Fatalf("%s: round did not settle within %d actions", s.ts.TableName, maxActions)
}

// mount 在給定的亂數核心上重建牌桌
func (s *Seat) mount(c *core.Core) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildOn(c)
}

// SnapshotCore 取得亂數核心狀態，搭配 RestoreCore 可重播任意一局。
func (s *Seat) SnapshotCore() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.Snapshot()
}

func (s *Seat) RestoreCore(src []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.Restore(src)
}
