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
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/zintix-labs/parlor/configs"
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/games"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/spec"
)

// scripted 每張桌都拿到同一串回放亂數，seed 被忽略
type scripted []float64

func (s scripted) New(int64) core.PRNG { return core.NewScripted(s...) }

// face 讓 Die() 回傳 v
func face(v int) float64 { return (float64(v) - 0.5) / 6 }

func newParlor(t *testing.T, cf core.PRNGFactory) *Parlor {
	t.Helper()
	p, err := NewAuto(cf, Configs(configs.FS), Logics(games.Logics))
	if err != nil {
		t.Fatalf("new parlor: %v", err)
	}
	return p
}

func newSession(t *testing.T, p *Parlor, opts ...SessionOption) *Session {
	t.Helper()
	s, err := p.NewSession(opts...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestNewValidates(t *testing.T) {
	if _, err := New(nil, Configs(configs.FS), Logics(games.Logics)); err == nil {
		t.Fatalf("nil factory should fail")
	}
	if _, err := New(core.Default(), nil, Logics(games.Logics)); err == nil {
		t.Fatalf("missing configs should fail")
	}
	if _, err := New(core.Default(), Configs(configs.FS), nil); err == nil {
		t.Fatalf("missing logics should fail")
	}
	if _, err := New(core.Default(), Configs(configs.FS), Logics(games.Logics, games.Logics)); err == nil {
		t.Fatalf("duplicate logic keys should fail")
	}

	p, err := New(core.Default(), Configs(configs.FS), Logics(games.Logics))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.NewSession(); err == nil {
		t.Fatalf("session before freeze should fail")
	}
	if _, err := p.Summary(); err == nil {
		t.Fatalf("summary before freeze should fail")
	}
}

func TestRegisterUnknownLogic(t *testing.T) {
	fsys := fstest.MapFS{
		"bingo.yaml": {Data: []byte("table_name: bingo\ntable_id: 9\nlogic_key: bingo\n")},
	}
	p, err := New(core.Default(), Configs(fsys), Logics(games.Logics))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.RegisterAll(); err == nil {
		t.Fatalf("config with an unregistered logic should fail")
	}
}

func TestSummary(t *testing.T) {
	p := newParlor(t, core.Default())
	sum, err := p.Summary()
	if err != nil {
		t.Fatal(err)
	}
	if len(sum) != 7 {
		t.Fatalf("want 7 tables, got %d", len(sum))
	}
	for i, s := range sum {
		if int(s.GID) != i+1 || s.MinBet != 5 || s.Step != 5 || s.Initial != 10 {
			t.Fatalf("unexpected summary %+v", s)
		}
	}
	again, _ := p.Summary()
	if &again[0] != &sum[0] {
		t.Fatalf("summary should be cached")
	}
}

// ============================================================
// ** Session **
// ============================================================

func TestSessionSlotsPair(t *testing.T) {
	// 不強制；hat hat dice
	p := newParlor(t, scripted{0.9, 0.0, 0.0, 0.5})
	memo := display.NewMemo(0)
	s := newSession(t, p, WithSound(memo))
	if s.Credits() != 1000 {
		t.Fatalf("fresh session should hold 1000, got %d", s.Credits())
	}

	o, err := s.Play(context.Background(), "slots", &game.Request{Action: game.ActPlay})
	if err != nil {
		t.Fatalf("play slots: %v", err)
	}
	if o.Stake != 10 || o.Payout != 20 || o.Balance != 1010 || s.Credits() != 1010 {
		t.Fatalf("1000 - 10 + 20 should be 1010: %+v", o)
	}
	if o.RoundID == "" {
		t.Fatalf("settled round should get an id")
	}
	st := s.Snapshot()
	if st.Last.Msg != "Two hat! You won 20 credits!" || st.Last.Category != display.Win {
		t.Fatalf("unexpected last note %+v", st.Last)
	}
	snd := memo.Sounds()
	if len(snd) != 2 || snd[0] != display.EvClick || snd[1] != display.EvWin {
		t.Fatalf("want click then win, got %v", snd)
	}

	// 名稱大小寫與空白不影響
	if _, err := s.Play(context.Background(), " Slots ", nil); err != nil {
		t.Fatalf("table names should be normalised: %v", err)
	}
	if s.Credits() != 1020 {
		t.Fatalf("second pair should land at 1020, got %d", s.Credits())
	}
}

func TestSessionCrapsSevenOut(t *testing.T) {
	p := newParlor(t, scripted{face(2), face(4), face(3), face(5), face(3), face(4)})
	s := newSession(t, p)
	ctx := context.Background()
	play := &game.Request{Action: game.ActPlay}

	o, err := s.Play(ctx, "craps", play)
	if err != nil || o.Result != game.Pending || s.Credits() != 990 {
		t.Fatalf("point 6 should charge the stake: %+v %v", o, err)
	}
	if o.RoundID == "" {
		t.Fatalf("every table action gets a round id")
	}

	_, err = s.Play(ctx, "craps", &game.Request{Action: game.ActUp})
	if !errors.Is(err, errs.ErrBetLocked) {
		t.Fatalf("bet change during point should be locked, got %v", err)
	}
	if s.Snapshot().Last.Msg != "Bet is locked until the point is resolved" {
		t.Fatalf("refusal should surface a notice, got %+v", s.Snapshot().Last)
	}

	if o, err = s.Play(ctx, "craps", play); err != nil || o.Result != game.Pending {
		t.Fatalf("8 should roll again: %+v %v", o, err)
	}
	if o, err = s.Play(ctx, "craps", play); err != nil || o.Result != game.Lose {
		t.Fatalf("7 should seven out: %+v %v", o, err)
	}
	if s.Credits() != 990 || o.Message != "Seven out! Pass line loses!" {
		t.Fatalf("seven out keeps 990: credits=%d msg=%q", s.Credits(), o.Message)
	}
}

func TestSessionRefusals(t *testing.T) {
	p := newParlor(t, core.Default())
	s := newSession(t, p, WithCredits(5), WithSeed(1))
	ctx := context.Background()

	_, err := s.Play(ctx, "slots", &game.Request{Action: game.ActPlay})
	if !errors.Is(err, errs.ErrInsufficientCredits) {
		t.Fatalf("want insufficient credits, got %v", err)
	}
	if s.Credits() != 5 || s.Snapshot().Last.Msg != "Not enough credits for that bet" {
		t.Fatalf("refusal must not move credits: %d %+v", s.Credits(), s.Snapshot().Last)
	}

	if _, err := s.Play(ctx, "bingo", nil); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("unknown table should be not found, got %v", err)
	}

	s.mu.Lock()
	_, err = s.Play(ctx, "slots", nil)
	s.mu.Unlock()
	if !errors.Is(err, errs.ErrBusy) {
		t.Fatalf("re-entrant play should be busy, got %v", err)
	}
	if Notice(err) != "Please wait for the current round to finish" {
		t.Fatalf("unexpected busy notice %q", Notice(err))
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := s.Play(cctx, "slots", nil); !errors.Is(err, context.Canceled) || errs.Level(err) != errs.Warn {
		t.Fatalf("canceled context should be a warn, got %v", err)
	}
}

func TestNotice(t *testing.T) {
	cases := map[*errs.E]string{
		errs.ErrNoSelection: "Please select a bet first",
		errs.ErrPhase:       "That move is not available right now",
		errs.ErrBadWager:    "Invalid bet selection",
	}
	for sentinel, want := range cases {
		if got := Notice(errs.Reject(sentinel, "dice", "")); got != want {
			t.Fatalf("notice for %v: %q, want %q", sentinel, got, want)
		}
	}
	if got := Notice(errs.NewWarn("custom")); got != "custom" {
		t.Fatalf("plain warn should show its message, got %q", got)
	}
}

func TestSessionSeedReproducible(t *testing.T) {
	p := newParlor(t, core.Default())
	a := newSession(t, p, WithSeed(77))
	b := newSession(t, p, WithSeed(77))
	ctx := context.Background()
	for range 30 {
		oa, errA := a.Play(ctx, "roulette", &game.Request{Action: game.ActSelect, Wager: "red"})
		ob, errB := b.Play(ctx, "roulette", &game.Request{Action: game.ActSelect, Wager: "red"})
		if (errA == nil) != (errB == nil) {
			t.Fatalf("same seed should agree on errors: %v vs %v", errA, errB)
		}
		if errA == nil && oa.Delta != ob.Delta {
			t.Fatalf("same seed should agree on deltas")
		}
		oa, errA = a.Play(ctx, "roulette", nil)
		ob, errB = b.Play(ctx, "roulette", nil)
		if errA != nil || errB != nil {
			t.Fatalf("spin failed: %v %v", errA, errB)
		}
		if oa.Delta != ob.Delta || oa.Category != ob.Category {
			t.Fatalf("same seed should spin the same: %+v vs %+v", oa, ob)
		}
	}
	if a.Credits() != b.Credits() {
		t.Fatalf("same seed should end on the same credits")
	}
}

// ============================================================
// ** Seat **
// ============================================================

// fragile 收到 input=boom 時 panic
type fragile struct{ bet int }

func (f *fragile) Name() string         { return "fragile" }
func (f *fragile) Logic() spec.LogicKey { return "fragile" }
func (f *fragile) Bet() int             { return f.bet }
func (f *fragile) State() any           { return nil }

func (f *fragile) Play(req *game.Request, balance int) (*game.Outcome, error) {
	if req.Input == "boom" {
		panic("table exploded")
	}
	o := &game.Outcome{Table: "fragile", Logic: "fragile", Action: req.Action, Bet: f.bet, Result: game.Lose}
	o.Settle(f.bet, 0)
	return o, nil
}

func fragileParlor(t *testing.T, bot game.BotBuilder) *Parlor {
	t.Helper()
	reg := game.NewLogicRegistry()
	err := reg.Register("fragile", func(ts *spec.TableSetting, c *core.Core) (game.Table, error) {
		return &fragile{bet: ts.Wager.Initial}, nil
	}, bot)
	if err != nil {
		t.Fatal(err)
	}
	fsys := fstest.MapFS{
		"fragile.yaml": {Data: []byte("table_name: fragile\ntable_id: 1\nlogic_key: fragile\n")},
	}
	p, err := NewAuto(core.Default(), Configs(fsys), Logics(reg))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSeatPanicRebuilds(t *testing.T) {
	s := newSession(t, fragileParlor(t, nil))
	ctx := context.Background()

	_, err := s.Play(ctx, "fragile", &game.Request{Action: game.ActPlay, Input: "boom"})
	if err == nil || errs.Level(err) != errs.Fatal {
		t.Fatalf("panic should surface as fatal, got %v", err)
	}
	if s.Credits() != 1000 {
		t.Fatalf("panic must not touch credits, got %d", s.Credits())
	}
	seat, _ := s.Seat("fragile")
	if seat.Rebuilds() != 1 {
		t.Fatalf("seat should be rebuilt once, got %d", seat.Rebuilds())
	}
	if _, err := s.Play(ctx, "fragile", nil); err != nil || s.Credits() != 995 {
		t.Fatalf("rebuilt seat should play again: %v credits=%d", err, s.Credits())
	}
}

func TestSeatRoundSettles(t *testing.T) {
	p := newParlor(t, core.Default())
	seat, err := p.NewSeatWithSeed("poker", 5)
	if err != nil {
		t.Fatal(err)
	}
	var last *game.Outcome
	bot := seat.Bot()
	for range 20 {
		rd, o, err := seat.Round(bot, last, 1000)
		if err != nil {
			t.Fatalf("round failed: %v", err)
		}
		if !o.Settled() || rd.Bet != seat.Bet() {
			t.Fatalf("poker round should deal and draw: %+v %+v", rd, o)
		}
		last = o
	}
}

// ============================================================
// ** Simulator / Auditor **
// ============================================================

func TestSimulatorDeterministic(t *testing.T) {
	p := newParlor(t, core.Default())
	run := func() (int, int) {
		sim, err := p.NewSimulatorWithSeed("dice", 9)
		if err != nil {
			t.Fatal(err)
		}
		st, _, err := sim.SimMP(500, 3, false)
		if err != nil {
			t.Fatalf("sim: %v", err)
		}
		if st.Summary.Rounds != 1500 {
			t.Fatalf("want 1500 rounds, got %d", st.Summary.Rounds)
		}
		return st.Summary.TotalBet, st.Summary.TotalWin
	}
	b1, w1 := run()
	b2, w2 := run()
	if b1 != b2 || w1 != w2 {
		t.Fatalf("same seed should reproduce: %d/%d vs %d/%d", b1, w1, b2, w2)
	}

	sim, _ := p.NewSimulatorWithSeed("dice", 9)
	if _, _, err := sim.Sim(0, false); err == nil {
		t.Fatalf("zero rounds should fail")
	}
	if _, _, err := sim.SimMP(10, 0, false); err == nil {
		t.Fatalf("zero workers should fail")
	}
}

func TestSimulatorEveryTable(t *testing.T) {
	p := newParlor(t, core.Default())
	for _, e := range p.All() {
		sim, err := p.NewSimulatorWithSeed(e.Name, 11)
		if err != nil {
			t.Fatalf("%s: %v", e.Name, err)
		}
		st, _, err := sim.Sim(200, false)
		if err != nil {
			t.Fatalf("%s sim: %v", e.Name, err)
		}
		if st.Summary.Rounds != 200 || st.Summary.TotalBet <= 0 || st.Summary.RTP < 0 {
			t.Fatalf("%s: unexpected summary %+v", e.Name, st.Summary)
		}
	}
}

func TestSimPlayers(t *testing.T) {
	p := newParlor(t, core.Default())
	sim, err := p.NewSimulatorWithSeed("roulette", 21)
	if err != nil {
		t.Fatal(err)
	}
	st, est, _, err := sim.SimPlayers(2, 10, 10, 30, false)
	if err != nil {
		t.Fatalf("sim players: %v", err)
	}
	if est.Players != 10 || st.Summary.Rounds < 1 || st.Summary.Rounds > 300 {
		t.Fatalf("unexpected estimator %d rounds %d", est.Players, st.Summary.Rounds)
	}
	if _, _, _, err := sim.SimPlayers(1, 0, 10, 30, false); err == nil {
		t.Fatalf("zero players should fail")
	}
}

func TestSimStopsOnTableError(t *testing.T) {
	boom := func(*spec.TableSetting) game.Bot {
		return game.Always(game.Request{Action: game.ActPlay, Input: "boom"})
	}
	sim, err := fragileParlor(t, boom).NewSimulatorWithSeed("fragile", 3)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 2)
	go func() {
		// 玩家數遠大於佇列容量，所有 worker 出錯後派工端也必須收手
		_, _, _, err := sim.SimPlayers(2, 5000, 10, 10, false)
		done <- err
	}()
	select {
	case err := <-done:
		if err == nil || errs.Level(err) != errs.Fatal {
			t.Fatalf("players: want fatal err, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("SimPlayers did not return after every worker failed")
	}

	go func() {
		_, _, err := sim.SimMP(100, 2, false)
		done <- err
	}()
	select {
	case err := <-done:
		if err == nil || errs.Level(err) != errs.Fatal {
			t.Fatalf("mp: want fatal err, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("SimMP did not return after a worker failed")
	}
}

func TestSimulatorByYAML(t *testing.T) {
	p := newParlor(t, core.Default())
	raw := []byte("table_name: craps\ntable_id: 2\nlogic_key: craps\nfixed:\n  win_mult: 3\n")
	sim, err := p.NewSimulatorByYAML(raw, 3)
	if err != nil {
		t.Fatalf("by yaml: %v", err)
	}
	if _, _, err := sim.Sim(100, false); err != nil {
		t.Fatalf("sim: %v", err)
	}
	bad := []byte("table_name: craps\ntable_id: 3\nlogic_key: craps\n")
	if _, err := p.NewSimulatorByYAML(bad, 3); err == nil {
		t.Fatalf("mismatched id and name should fail")
	}
}

func TestAuditorReplay(t *testing.T) {
	p := newParlor(t, core.Default())
	a, err := p.NewAuditor("poker", 4)
	if err != nil {
		t.Fatal(err)
	}
	first, err := a.Rounds(25)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if first.Rounds != 25 || len(first.Results) != 25 || first.Before == "" || first.After == "" {
		t.Fatalf("unexpected report %+v", first)
	}
	again, err := a.Replay(first.Before, 25)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if again.TotalWin != first.TotalWin || again.After != first.After {
		t.Fatalf("replay should match: %d/%s vs %d/%s", again.TotalWin, again.After, first.TotalWin, first.After)
	}
	for i := range first.Results {
		if first.Results[i].Category != again.Results[i].Category {
			t.Fatalf("round %d differs", i)
		}
	}
	if _, err := a.Rounds(0); err == nil {
		t.Fatalf("zero rounds should fail")
	}
	if _, err := a.Replay("%%%", 5); err == nil {
		t.Fatalf("bad snapshot should fail")
	}
}

func TestSeedMaker(t *testing.T) {
	a, b := newSeedMaker(-5), newSeedMaker(-5)
	seen := map[int64]bool{}
	for range 1000 {
		x, y := a.next(), b.next()
		if x != y || x < 0 {
			t.Fatalf("seed maker must be deterministic and non-negative: %d %d", x, y)
		}
		if seen[x] {
			t.Fatalf("seed %d repeated", x)
		}
		seen[x] = true
	}
}

// ============================================================
// ** Runtime **
// ============================================================

func TestRuntime(t *testing.T) {
	p := newParlor(t, core.Default())
	rt, err := p.BuildRuntime(2, nil)
	if err != nil {
		t.Fatal(err)
	}
	s1, err := rt.Open(WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rt.Open(); err != nil {
		t.Fatal(err)
	}
	if _, err := rt.Open(); err == nil || errs.Level(err) != errs.Warn {
		t.Fatalf("third session over the cap should warn, got %v", err)
	}
	if ids := rt.IDs(); len(ids) != 2 || ids[0] != s1.ID {
		t.Fatalf("ids should be in creation order: %v", ids)
	}

	if _, err := rt.Play(context.Background(), s1.ID, "slots", nil); err != nil {
		t.Fatalf("runtime play: %v", err)
	}
	if _, err := rt.Play(context.Background(), "nope", "slots", nil); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("unknown session should be not found, got %v", err)
	}
	if err := rt.Drop(s1.ID); err != nil {
		t.Fatal(err)
	}
	if err := rt.Drop(s1.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second drop should be not found, got %v", err)
	}

	rt.Close()
	rt.Close()
	if !rt.Closed() || rt.ClosedReason() != "closed" || rt.Len() != 0 {
		t.Fatalf("closed runtime should be empty")
	}
	if _, err := rt.Open(); errs.Level(err) != errs.Fatal {
		t.Fatalf("open after close should be fatal, got %v", err)
	}
	if _, err := rt.Play(context.Background(), "x", "slots", nil); errs.Level(err) != errs.Fatal {
		t.Fatalf("play after close should be fatal, got %v", err)
	}
}
