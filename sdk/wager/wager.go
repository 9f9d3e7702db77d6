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

// Package wager 是所有牌桌共用的押注控制器。
//
// 押注金額永遠落在 [MinBet, 目前餘額]；不合法的輸入一律夾回最近的合法值，不回錯誤。
// 只有「餘額不足以下注」會由 Check 回傳 errs.ErrInsufficientCredits。
package wager

import (
	"strconv"
	"strings"

	"github.com/zintix-labs/parlor/errs"
)

const (
	DefaultMinBet = 5
	DefaultStep   = 5
)

// Validator 在開局前檢查押注，回傳非 nil 代表拒絕開局。
type Validator func(bet, balance int) error

// Affordable 預設驗證：餘額需 >= 押注。
func Affordable(bet, balance int) error {
	if bet > balance {
		return errs.ErrInsufficientCredits
	}
	return nil
}

// Controller 記住一張牌桌目前的押注。
type Controller struct {
	MinBet   int
	Step     int
	Validate Validator
	bet      int
}

// New 建立控制器，min/step <= 0 時使用預設值。
func New(minBet, step, initial int, v Validator) *Controller {
	if minBet <= 0 {
		minBet = DefaultMinBet
	}
	if step <= 0 {
		step = DefaultStep
	}
	if v == nil {
		v = Affordable
	}
	return &Controller{MinBet: minBet, Step: step, Validate: v, bet: max(minBet, initial)}
}

// Clamp 把 raw 夾進 [minBet, balance]；餘額低於 minBet 時回傳 minBet（交給 Check 拒絕）。
func Clamp(raw, minBet, balance int) int {
	v := min(raw, balance)
	return max(v, minBet)
}

func (c *Controller) Bet() int { return c.bet }

// Set 以數值設定押注並回傳夾值後的結果。
func (c *Controller) Set(raw, balance int) int {
	c.bet = Clamp(raw, c.MinBet, balance)
	return c.bet
}

// Parse 以文字設定押注：非數字視為 MinBet。
func (c *Controller) Parse(s string, balance int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		n = c.MinBet
	}
	return c.Set(n, balance)
}

// Up 加一個 Step；超過餘額時不動並回傳 false。
func (c *Controller) Up(balance int) (int, bool) {
	next := c.bet + c.Step
	if next > balance {
		return c.bet, false
	}
	c.bet = next
	return c.bet, true
}

// Down 減一個 Step；低於 MinBet 時不動並回傳 false。
func (c *Controller) Down() (int, bool) {
	next := c.bet - c.Step
	if next < c.MinBet {
		return c.bet, false
	}
	c.bet = next
	return c.bet, true
}

// Preview 算出這次請求會用的押注但不寫回：input 優先，其次 raw != 0（負數夾到 MinBet），
// raw == 0 沿用目前押注。沿用的押注不重新夾值，餘額不足時交給 Check 拒絕。
func (c *Controller) Preview(raw int, input string, balance int) int {
	switch {
	case strings.TrimSpace(input) != "":
		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			n = c.MinBet
		}
		return Clamp(n, c.MinBet, balance)
	case raw != 0:
		return Clamp(raw, c.MinBet, balance)
	default:
		return c.bet
	}
}

// Commit 寫回已通過驗證的押注。
func (c *Controller) Commit(bet int) {
	c.bet = max(c.MinBet, bet)
}

// Check 以目前押注與餘額執行 Validator。
func (c *Controller) Check(balance int) error {
	return c.Validate(c.bet, balance)
}
