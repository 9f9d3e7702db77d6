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
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/sdk/ledger"
	"github.com/zintix-labs/parlor/spec"
)

// Session 一位玩家：一個錢包，加上每種遊戲各一張桌。所有桌共用同一個 Ledger。
//
// 同一個 Session 同一時間只處理一個動作；重入直接回 errs.ErrBusy。
type Session struct {
	ID      string
	Created time.Time

	ledger   *ledger.Credits
	seats    map[string]*Seat
	order    []string
	memo     *display.Memo
	surfaces []display.Surface
	sound    display.Sound
	log      *slog.Logger
	mu       sync.Mutex
}

type sessionConfig struct {
	credits  int
	seed     int64
	seeded   bool
	surfaces []display.Surface
	sound    display.Sound
	log      *slog.Logger
}

type SessionOption func(*sessionConfig)

// WithCredits 初始餘額，預設 ledger.DefaultCredits
func WithCredits(n int) SessionOption {
	return func(c *sessionConfig) { c.credits = n }
}

// WithSeed 每張桌的 seed 由這個 seed 派生，整個 Session 可重現。
func WithSeed(seed int64) SessionOption {
	return func(c *sessionConfig) {
		c.seed = seed
		c.seeded = true
	}
}

func WithSurfaces(s ...display.Surface) SessionOption {
	return func(c *sessionConfig) { c.surfaces = append(c.surfaces, s...) }
}

func WithSound(s display.Sound) SessionOption {
	return func(c *sessionConfig) { c.sound = s }
}

// WithLogger 沒設定時使用靜默 logger
func WithLogger(l *slog.Logger) SessionOption {
	return func(c *sessionConfig) { c.log = l }
}

// NewSession 為 catalog 中的每張桌各開一個座位。
func (p *Parlor) NewSession(opts ...SessionOption) (*Session, error) {
	if !p.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	cfg := &sessionConfig{credits: ledger.DefaultCredits}
	for _, o := range opts {
		o(cfg)
	}
	if !cfg.seeded {
		cfg.seed = core.RandomSeed()
	}
	if cfg.log == nil {
		cfg.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	id := uuid.NewString()
	s := &Session{
		ID:      id,
		Created: time.Now(),
		seats:   make(map[string]*Seat, len(p.cat.IDs())),
		memo:    display.NewMemo(0),
		sound:   cfg.sound,
		log:     cfg.log.With(slog.String("session", id)),
	}
	s.surfaces = append([]display.Surface{s.memo, display.Log{L: s.log}}, cfg.surfaces...)

	seeds := newSeedMaker(cfg.seed)
	for _, e := range p.cat.All() {
		ts, err := p.cat.TableSettingById(e.GID)
		if err != nil {
			return nil, err
		}
		seat, err := newSeat(ts, p.reg, p.cf, seeds.next())
		if err != nil {
			return nil, err
		}
		s.seats[e.Name] = seat
		s.order = append(s.order, e.Name)
	}
	s.ledger = ledger.New(cfg.credits, display.Broadcast(s.surfaces...))
	s.memo.Balance(s.ledger.Get())
	return s, nil
}

func (s *Session) Credits() int {
	return s.ledger.Get()
}

// Ledger 共用錢包，可額外訂閱餘額變化
func (s *Session) Ledger() *ledger.Credits {
	return s.ledger
}

// Tables 依 table id 排序的桌名
func (s *Session) Tables() []string {
	return append([]string(nil), s.order...)
}

func (s *Session) Seat(name string) (*Seat, bool) {
	seat, ok := s.seats[name]
	return seat, ok
}

// Play 在指定的桌上執行一個動作。
//
// 流程：取得鎖 -> 找桌 -> 以目前餘額交給牌桌計算 -> 結果完整算完後才套用到 Ledger -> 顯示與音效。
// 牌桌拒絕（Warn）時只顯示提示訊息，餘額與牌桌狀態都不變。
func (s *Session) Play(ctx context.Context, table string, req *game.Request) (*game.Outcome, error) {
	if !s.mu.TryLock() {
		return nil, errs.Reject(errs.ErrBusy, table, "session="+s.ID)
	}
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &errs.E{Message: "session play canceled", Cause: err, ErrLv: errs.Warn}
	}
	seat, ok := s.seats[normTable(table)]
	if !ok {
		return nil, errs.Reject(errs.ErrNotFound, table, "unknown table")
	}
	if req == nil {
		req = &game.Request{Action: game.ActPlay}
	}
	display.Play(s.sound, display.EvClick)

	o, err := seat.Play(req, s.ledger.Get())
	if err != nil {
		if errs.Level(err) == errs.Warn {
			display.Notify(s.surfaces, Notice(err), display.Info)
			s.log.Debug("session.refused", slog.String("table", seat.Name()), slog.String("action", string(req.Action)), slog.Any("err", err))
		} else {
			s.log.Error("session.play", slog.String("table", seat.Name()), slog.Any("err", err))
		}
		return nil, err
	}

	ledger.Apply(s.ledger, o.Delta)
	o.Balance = s.ledger.Get()
	if o.Result != game.Idle {
		o.RoundID = uuid.NewString()
	}
	display.Notify(s.surfaces, o.Message, o.Emphasis)
	if o.Sound != "" {
		display.Play(s.sound, o.Sound)
	}
	s.log.Info("session.play",
		slog.String("table", seat.Name()),
		slog.String("action", string(o.Action)),
		slog.String("result", string(o.Result)),
		slog.String("category", o.Category),
		slog.Int("delta", o.Delta),
		slog.Int("balance", o.Balance),
	)
	return o, nil
}

func normTable(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Notice 把牌桌拒絕轉成給玩家看的提示
func Notice(err error) string {
	switch {
	case errors.Is(err, errs.ErrInsufficientCredits):
		return "Not enough credits for that bet"
	case errors.Is(err, errs.ErrNoSelection):
		return "Please select a bet first"
	case errors.Is(err, errs.ErrBetLocked):
		return "Bet is locked until the point is resolved"
	case errors.Is(err, errs.ErrPhase):
		return "That move is not available right now"
	case errors.Is(err, errs.ErrBadWager):
		return "Invalid bet selection"
	case errors.Is(err, errs.ErrBusy):
		return "Please wait for the current round to finish"
	}
	if e, ok := errs.AsErr(err); ok {
		return e.Message
	}
	return err.Error()
}

// TableState 單張桌的快照
type TableState struct {
	ID    spec.GID      `json:"id"`
	Logic spec.LogicKey `json:"logic"`
	Bet   int           `json:"bet"`
	State any           `json:"state"`
}

// SessionState 整個 Session 的快照（/v1/sessions/{sid}）
type SessionState struct {
	ID      string                `json:"id"`
	Credits int                   `json:"credits"`
	Tables  map[string]TableState `json:"tables"`
	Last    display.Note          `json:"last"`
	Notes   []display.Note        `json:"notes"`
}

func (s *Session) Snapshot() SessionState {
	st := SessionState{
		ID:      s.ID,
		Credits: s.ledger.Get(),
		Tables:  make(map[string]TableState, len(s.seats)),
		Last:    s.memo.Last(),
		Notes:   s.memo.Notes(),
	}
	for name, seat := range s.seats {
		st.Tables[name] = TableState{
			ID:    seat.ID(),
			Logic: seat.Logic(),
			Bet:   seat.Bet(),
			State: seat.State(),
		}
	}
	return st
}
