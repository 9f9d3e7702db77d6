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
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/recorder"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/spec"
	"github.com/zintix-labs/parlor/stats"
)

const capPrepare int = 16

// houseBalance 不追蹤玩家時傳給牌桌的餘額，足夠讓任何押注通過
const houseBalance = math.MaxInt32

// Simulator 以 Bot 驅動一張桌大量開局，統計 RTP 與玩家體驗（house edge 稽核）。
//
// 每個 worker 各自持有一張桌（Seat），seed 由 initSeed 派生，同一組參數結果可重現。
type Simulator struct {
	Table     string
	TableId   spec.GID
	ts        *spec.TableSetting
	logic     *game.LogicRegistry
	cf        core.PRNGFactory
	initSeed  int64
	seedmaker *seedMaker
	seats     []*Seat
	rBuf      []*recorder.RoundRecorder
}

func newSimulator(ts *spec.TableSetting, reg *game.LogicRegistry, cf core.PRNGFactory, seed int64) (*Simulator, error) {
	s := &Simulator{
		Table:     ts.TableName,
		TableId:   ts.TableID,
		ts:        ts,
		logic:     reg,
		cf:        cf,
		initSeed:  seed,
		seedmaker: newSeedMaker(seed),
		seats:     make([]*Seat, 1, capPrepare),
		rBuf:      make([]*recorder.RoundRecorder, 0, capPrepare),
	}
	seat, err := newSeat(ts, reg, cf, seed)
	if err != nil {
		return nil, err
	}
	s.seats[0] = seat
	return s, nil
}

func (s *Simulator) Seed() int64 { return s.initSeed }

// Sim 單線：一張桌連續打 rounds 局
func (s *Simulator) Sim(rounds int, showpb bool) (*stats.StatReport, time.Duration, error) {
	return s.SimMP(rounds, 1, showpb)
}

// SimMP 平行 mp 張桌各打 rounds 局，合併後回傳報表與用時
func (s *Simulator) SimMP(rounds int, mp int, showpb bool) (*stats.StatReport, time.Duration, error) {
	defer s.reset()
	if mp <= 0 {
		return nil, 0, errs.NewWarn("workers must > 0")
	}
	if rounds < 1 {
		return nil, 0, errs.NewWarn("round must > 0")
	}
	if err := s.prepare(mp, mp, 0); err != nil {
		return nil, 0, err
	}

	bar := newBar(rounds*mp, showpb)
	ab := newAbort()
	wg := new(sync.WaitGroup)
	wg.Add(mp)
	for i := 0; i < mp; i++ {
		go func(seat *Seat, rec *recorder.RoundRecorder) {
			defer wg.Done()
			bot := seat.Bot()
			var last *game.Outcome
			for r := 0; r < rounds && !ab.stopped(); r++ {
				rd, o, err := seat.Round(bot, last, houseBalance)
				if err != nil {
					ab.fail(err)
					return
				}
				last = o
				rec.Record(rd)
				bar.Increment()
			}
		}(s.seats[i], s.rBuf[i])
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()
	if err := ab.err(); err != nil {
		return nil, used, err
	}

	merged, err := recorder.MergeRoundRecorder(s.rBuf)
	if err != nil {
		return nil, used, err
	}
	return merged.Done(), used, nil
}

// SimPlayers 模擬 players 位玩家各帶 initBets 注的本金，最多打 rounds 局；
// 破產或贏到 3 倍本金即離場。回傳整體報表、玩家體驗估計與用時。
func (s *Simulator) SimPlayers(mp int, players int, initBets int, rounds int, showpb bool) (*stats.StatReport, *stats.EstimatorPlayers, time.Duration, error) {
	defer s.reset()
	if players < 1 || initBets < 1 || rounds < 1 || mp < 1 {
		return nil, nil, 0, errs.NewWarn("invalid param")
	}
	if err := s.prepare(mp, players, initBets); err != nil {
		return nil, nil, 0, err
	}

	jobs := make(chan *recorder.RoundRecorder, 2048)
	ab := newAbort()
	bar := newBar(players, showpb)
	wg := new(sync.WaitGroup)
	wg.Add(mp)
	for w := 0; w < mp; w++ {
		go play(wg, s.seats[w], jobs, rounds, bar, ab)
	}
dispatch:
	for _, j := range s.rBuf {
		select {
		case jobs <- j:
		case <-ab.done:
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()
	if err := ab.err(); err != nil {
		return nil, nil, used, err
	}

	merged, err := recorder.MergeRoundRecorder(s.rBuf)
	if err != nil {
		return nil, nil, used, err
	}
	reps := make([]*stats.StatReport, len(s.rBuf))
	for i, r := range s.rBuf {
		reps[i] = r.Done()
	}
	return merged.Done(), stats.EstimatorPlayerExp(reps), used, nil
}

// play 一個 worker 依序服務佇列裡的玩家。
// 每位玩家都從一張剛重建的桌開始，避免上一位玩家留下的點數或手牌。
// 任何 worker 出錯後，其餘 worker 把佇列剩下的玩家略過。
func play(wg *sync.WaitGroup, seat *Seat, jobs <-chan *recorder.RoundRecorder, rounds int, bar *pb.ProgressBar, ab *abort) {
	defer wg.Done()
	for j := range jobs {
		if ab.stopped() {
			continue
		}
		if err := playOne(seat, j, rounds); err != nil {
			ab.fail(err)
			continue
		}
		bar.Increment()
	}
}

// playOne 一位玩家：破產、達標離場或打滿 rounds 局
func playOne(seat *Seat, j *recorder.RoundRecorder, rounds int) error {
	if err := seat.reset(); err != nil {
		return err
	}
	bot := seat.Bot()
	var last *game.Outcome
	for range rounds {
		if !j.Affordable() {
			j.Bust()
			return nil
		}
		rd, o, err := seat.Round(bot, last, j.Player.Balance)
		if errs.Level(err) == errs.Warn {
			// 牌桌拒絕（例如押注高於剩餘資金）視同破產離場
			j.Bust()
			return nil
		}
		if err != nil {
			return err
		}
		last = o
		if j.RecordWithPlayer(rd) {
			return nil
		}
	}
	return nil
}

// abort 第一個錯誤關閉 done，通知派工端與其他 worker 停手。
// err 只在所有 worker 結束後讀取。
type abort struct {
	done  chan struct{}
	once  sync.Once
	first error
}

func newAbort() *abort {
	return &abort{done: make(chan struct{})}
}

func (a *abort) fail(err error) {
	a.once.Do(func() {
		a.first = err
		close(a.done)
	})
}

func (a *abort) stopped() bool {
	select {
	case <-a.done:
		return true
	default:
		return false
	}
}

func (a *abort) err() error { return a.first }

// prepare 補足 mp 張桌與 n 個紀錄員，押注單位取桌上的初始押注。
func (s *Simulator) prepare(mp int, n int, initBets int) error {
	for len(s.seats) < mp {
		seat, err := newSeat(s.ts, s.logic, s.cf, s.seedmaker.next())
		if err != nil {
			return err
		}
		s.seats = append(s.seats, seat)
	}
	bet := s.seats[0].Bet()
	for len(s.rBuf) < n {
		r, err := recorder.NewRoundRecorder(s.ts, bet, initBets)
		if err != nil {
			return err
		}
		s.rBuf = append(s.rBuf, r)
	}
	return nil
}

func (s *Simulator) reset() {
	s.rBuf = s.rBuf[:0]
}

func newBar(total int, show bool) *pb.ProgressBar {
	bar := pb.StartNew(total)
	if !show {
		bar.SetWriter(io.Discard)
	}
	return bar
}

// reset 以派生 seed 換一張新桌（模擬新玩家入座）
func (s *Seat) reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.build(s.seeds.next())
}

// ============================================================
// ** seed 派生 **
// ============================================================

const mask63 = uint64(1<<63) - 1

type seedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// next 以全週期 LCG（mod 2^63）推進，再經可逆的 mix63 打散；可併發呼叫，回傳值一定非負。
func (s *seedMaker) next() int64 {
	for {
		old := s.state.Load()
		next := (old*6364136223846793005 + 1442695040888963407) & mask63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next))
		}
	}
}

// mix63 只用可逆的 xor-shift 與乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
