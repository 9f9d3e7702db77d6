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

// Package game 定義所有牌桌共用的合約：請求、結果、牌桌介面與邏輯註冊表。
//
// 牌桌（Table）持有自己的押注控制器與遊戲內狀態（彩池、craps 的點數、撲克的手牌），
// 但從不持有或修改餘額：Play 只讀入目前餘額，回傳一個已完整計算的 Outcome，
// 由呼叫端把 Outcome.Delta 套用到 Ledger。
package game

import (
	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/phase"
	"github.com/zintix-labs/parlor/spec"
)

// Action 牌桌動作
type Action string

const (
	ActPlay   Action = "play"   // 主要動作：spin / roll / deal / race
	ActDraw   Action = "draw"   // 撲克換牌
	ActSelect Action = "select" // 選擇押注項目（骰子）
	ActBet    Action = "bet"    // 設定押注金額
	ActUp     Action = "up"     // 押注 +step
	ActDown   Action = "down"   // 押注 -step
)

// Request 一次牌桌動作。
//
// Bet 為 0 時沿用目前押注；Input 為自由輸入的押注文字，優先於 Bet。
// Wager 依遊戲而異：骰子 high/low/seven、輪盤 0..36/red/black/even/odd、賽馬 1..5。
type Request struct {
	Action Action `json:"action"`
	Bet    int    `json:"bet,omitempty"`
	Input  string `json:"input,omitempty"`
	Wager  string `json:"wager,omitempty"`
	Holds  []int  `json:"holds,omitempty"`
}

// Result 一次動作的結論
type Result string

const (
	Win     Result = "win"
	Lose    Result = "lose"
	Pending Result = "pending" // 局未結束：craps 建立點數、撲克發完牌
	Idle    Result = "idle"    // 沒有開局：調整押注、選擇項目
)

// Outcome 一次動作的完整結果。
//
// Stake 為本次實際扣的押注（craps 點數階段為 0），Payout 為本次派彩，
// Delta = Payout - Stake 是呼叫端要套用到 Ledger 的淨額。
type Outcome struct {
	RoundID  string           `json:"round_id,omitempty"`
	Table    string           `json:"table"`
	Logic    spec.LogicKey    `json:"logic"`
	Action   Action           `json:"action"`
	Category string           `json:"category"`
	Result   Result           `json:"result"`
	Bet      int              `json:"bet"`
	Stake    int              `json:"stake"`
	Payout   int              `json:"payout"`
	Delta    int              `json:"delta"`
	Balance  int              `json:"balance"`
	Message  string           `json:"message"`
	Emphasis display.Category `json:"emphasis"`
	Sound    string           `json:"sound,omitempty"`
	Detail   any              `json:"detail,omitempty"`
	Plan     phase.Plan       `json:"plan,omitempty"`
}

// Settle 記錄押注與派彩並算出淨額。
func (o *Outcome) Settle(stake, payout int) {
	o.Stake = stake
	o.Payout = payout
	o.Delta = payout - stake
}

// Settled 回傳這一輪押注是否已結束（Win / Lose）。
func (o *Outcome) Settled() bool {
	return o.Result == Win || o.Result == Lose
}

// Table 一張牌桌。實作不需自行加鎖，由 Session 保證同一時間只有一個動作。
type Table interface {
	Name() string
	Logic() spec.LogicKey
	Bet() int
	// Play 依目前餘額處理動作。拒絕時回傳 Warn 等級錯誤，且不得改動任何狀態。
	Play(req *Request, balance int) (*Outcome, error)
	// State 回傳可序列化的牌桌狀態快照。
	State() any
}

// Bot 模擬用自動玩家：依上一個結果決定下一個請求。
// last 為 nil 代表新一輪開始。
type Bot interface {
	Next(last *Outcome) *Request
}

// BotFunc 讓函式直接滿足 Bot。
type BotFunc func(last *Outcome) *Request

func (f BotFunc) Next(last *Outcome) *Request { return f(last) }

// Always 每一輪都送出同一個請求的 Bot。
func Always(req Request) Bot {
	return BotFunc(func(*Outcome) *Request {
		r := req
		return &r
	})
}

// EmphasisOf 依結果給預設的顯示強調。
func EmphasisOf(r Result) display.Category {
	switch r {
	case Win:
		return display.Win
	case Lose:
		return display.Lose
	default:
		return display.Info
	}
}

// SoundOf 依結果給預設音效。
func SoundOf(r Result) string {
	switch r {
	case Win:
		return display.EvWin
	case Lose:
		return display.EvLose
	default:
		return ""
	}
}
