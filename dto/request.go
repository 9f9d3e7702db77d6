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

package dto

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"runtime"
	"strconv"
	"strings"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/server/svrcfg"
)

// MaxBody 請求 body 上限（1MiB）
const MaxBody = 1 << 20

const (
	// MaxPlayerRounds 玩家模擬時每位玩家的局數上限
	MaxPlayerRounds = 15_000
	// MaxPlayerBets 玩家本金（以注計）上限
	MaxPlayerBets = 100_000
)

// Decode 嚴格 JSON 解碼：未知欄位拒絕，空 body 視為全部預設值。
func Decode(r *http.Request, dst any) error {
	if r == nil || r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errs.NewWarn("invalid json: " + err.Error())
	}
	return nil
}

// DecodePlayRequest 把 HTTP 請求解碼成一次牌桌動作。
//
// 支援：
//   - GET：從 query string 讀取 action/bet/input/wager/holds（holds 以逗號分隔，例如 holds=0,2,4）。
//   - POST：JSON body 即 game.Request。
//
// action 缺省時視為 play。這裡只做解碼，合法性由牌桌決定。
func DecodePlayRequest(r *http.Request) (*game.Request, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	req := new(game.Request)

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Action = game.Action(q.Get("action"))
		req.Input = q.Get("input")
		req.Wager = q.Get("wager")
		if s := q.Get("bet"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, errs.Warnf("invalid bet: %v", err)
			}
			req.Bet = v
		}
		if s := q.Get("holds"); s != "" {
			for _, p := range strings.Split(s, ",") {
				v, err := strconv.Atoi(strings.TrimSpace(p))
				if err != nil {
					return nil, errs.Warnf("invalid holds: %v", err)
				}
				req.Holds = append(req.Holds, v)
			}
		}
	case http.MethodPost:
		if err := Decode(r, req); err != nil {
			return nil, err
		}
	default:
		return nil, errs.NewWarn("method not allowed")
	}

	if req.Action == "" {
		req.Action = game.ActPlay
	}
	return req, nil
}

// SeedOr nil 時給一個隨機 seed
func SeedOr(p *int64) int64 {
	if p != nil {
		return *p
	}
	return core.RandomSeed()
}

// ============================================================
// ** 各端點請求 **
// ============================================================

// OpenRequest POST /v1/sessions
type OpenRequest struct {
	Credits int    `json:"credits,omitempty"`
	Seed    *int64 `json:"seed,omitempty"`
}

// SimRequest POST /v1/sim；players > 0 時走玩家模擬。
type SimRequest struct {
	Table   string `json:"table"`
	Rounds  int    `json:"rounds"`
	Workers int    `json:"workers,omitempty"`
	Players int    `json:"players,omitempty"`
	Bets    int    `json:"bets,omitempty"`
	Seed    *int64 `json:"seed,omitempty"`
	Format  string `json:"format,omitempty"`
}

// Valid 檢查範圍，workers 會被夾在 1..NumCPU
func (req *SimRequest) Valid() error {
	if req.Table == "" {
		return errs.NewWarn("table is required")
	}
	if req.Workers <= 0 {
		req.Workers = 1
	}
	req.Workers = min(req.Workers, runtime.NumCPU())
	if req.Players > 0 {
		if req.Players > svrcfg.MaxPlayers {
			return errs.Warnf("players must be between 1 and %d", svrcfg.MaxPlayers)
		}
		if req.Bets < 1 || req.Bets > MaxPlayerBets {
			return errs.Warnf("bets must be between 1 and %d", MaxPlayerBets)
		}
		if req.Rounds < 1 || req.Rounds > MaxPlayerRounds {
			return errs.Warnf("rounds must be between 1 and %d in player mode", MaxPlayerRounds)
		}
		return nil
	}
	// 以除法比較，避免 rounds x workers 溢位
	if req.Rounds < 1 || req.Rounds > svrcfg.MaxSimRounds/req.Workers {
		return errs.Warnf("rounds x workers must be between 1 and %d", svrcfg.MaxSimRounds)
	}
	return nil
}

// CfgRequest POST /v1/simbycfg，Cfg 為一份完整的牌桌設定（YAML 或 JSON）
type CfgRequest struct {
	Cfg    string `json:"cfg"`
	Rounds int    `json:"rounds"`
	Seed   *int64 `json:"seed,omitempty"`
	Format string `json:"format,omitempty"`
}

func (req *CfgRequest) Valid() error {
	if req.Cfg == "" {
		return errs.NewWarn("cfg is required")
	}
	if req.Rounds < 1 || req.Rounds > svrcfg.MaxSimRounds {
		return errs.Warnf("rounds must be between 1 and %d", svrcfg.MaxSimRounds)
	}
	return nil
}

// AuditRequest POST /v1/audit
//
// Before 缺省：從一張新桌開始，回應帶 before_b64u / after_b64u。
// Before 有值：從該快照重播，相同 rounds 會得到完全相同的結果。
type AuditRequest struct {
	Table  string `json:"table"`
	Rounds int    `json:"rounds"`
	Seed   *int64 `json:"seed,omitempty"`
	Before string `json:"before_b64u,omitempty"`
}

func (req *AuditRequest) Valid() error {
	if req.Table == "" {
		return errs.NewWarn("table is required")
	}
	return nil
}
