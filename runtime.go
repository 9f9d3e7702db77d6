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
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/game"
)

// Runtime 多個 Session 的容器，給 server 使用。
//
// Session 之間完全獨立（各自的 Ledger 與牌桌）；Runtime 只負責開、找、關，以及整體的生命週期。
type Runtime struct {
	pb *Parlor

	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
	log      *slog.Logger

	// lifecycle
	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	reason    atomic.Value // string
}

// BuildRuntime 建立 Runtime；maxSessions <= 0 表示不限制。
func (p *Parlor) BuildRuntime(maxSessions int, log *slog.Logger) (*Runtime, error) {
	if !p.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runtime{
		pb:       p,
		sessions: make(map[string]*Session),
		max:      maxSessions,
		log:      log,
		done:     make(chan struct{}),
	}, nil
}

func (rt *Runtime) Parlor() *Parlor { return rt.pb }

// Open 開一個新 Session，opts 原樣傳給 NewSession。
func (rt *Runtime) Open(opts ...SessionOption) (*Session, error) {
	if rt.Closed() {
		return nil, errs.NewFatal("runtime closed: " + rt.ClosedReason())
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.max > 0 && len(rt.sessions) >= rt.max {
		return nil, errs.Warnf("too many sessions (max %d)", rt.max)
	}
	opts = append([]SessionOption{WithLogger(rt.log)}, opts...)
	s, err := rt.pb.NewSession(opts...)
	if err != nil {
		return nil, err
	}
	rt.sessions[s.ID] = s
	return s, nil
}

func (rt *Runtime) Get(sid string) (*Session, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	s, ok := rt.sessions[sid]
	if !ok {
		return nil, errs.Reject(errs.ErrNotFound, "", "session="+sid)
	}
	return s, nil
}

// Drop 關閉一個 Session；不存在時回 ErrNotFound。
func (rt *Runtime) Drop(sid string) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if _, ok := rt.sessions[sid]; !ok {
		return errs.Reject(errs.ErrNotFound, "", "session="+sid)
	}
	delete(rt.sessions, sid)
	return nil
}

// Len 目前的 Session 數
func (rt *Runtime) Len() int {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return len(rt.sessions)
}

// IDs 依建立時間排序
func (rt *Runtime) IDs() []string {
	rt.mu.RLock()
	ss := make([]*Session, 0, len(rt.sessions))
	for _, s := range rt.sessions {
		ss = append(ss, s)
	}
	rt.mu.RUnlock()
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Created.Equal(ss[j].Created) {
			return ss[i].ID < ss[j].ID
		}
		return ss[i].Created.Before(ss[j].Created)
	})
	ids := make([]string, len(ss))
	for i, s := range ss {
		ids[i] = s.ID
	}
	return ids
}

func (rt *Runtime) Play(ctx context.Context, sid string, table string, req *game.Request) (*game.Outcome, error) {
	select {
	case <-ctx.Done():
		return nil, &errs.E{Message: "play canceled", Cause: ctx.Err(), ErrLv: errs.Warn}
	case <-rt.done:
		return nil, errs.NewFatal("runtime closed: " + rt.ClosedReason())
	default:
	}
	s, err := rt.Get(sid)
	if err != nil {
		return nil, err
	}
	return s.Play(ctx, table, req)
}

// Close 關閉 Runtime 並丟掉全部 Session；重複呼叫安全。
func (rt *Runtime) Close() {
	rt.closeWithReason("closed")
}

func (rt *Runtime) closeWithReason(reason string) {
	rt.closeOnce.Do(func() {
		if reason == "" {
			reason = "closed"
		}
		rt.reason.Store(reason)
		rt.closed.Store(true)
		close(rt.done)

		rt.mu.Lock()
		clear(rt.sessions)
		rt.mu.Unlock()
	})
}

func (rt *Runtime) Closed() bool {
	return rt.closed.Load()
}

func (rt *Runtime) ClosedReason() string {
	if v := rt.reason.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
