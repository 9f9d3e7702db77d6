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

// Package display 定義牌桌與外部呈現層之間的邊界：
// 餘額顯示、結果訊息、音效觸發。
//
// 呈現端缺席（nil）時一律略過，不影響結算。
package display

import "github.com/zintix-labs/parlor/sdk/ledger"

// Category 訊息分類，呈現端據此決定強調樣式。
type Category string

const (
	Info    Category = "info"
	Win     Category = "win"
	Lose    Category = "lose"
	Jackpot Category = "jackpot"
)

// 音效事件名稱
const (
	EvClick   = "buttonClick"
	EvWin     = "win"
	EvLose    = "lose"
	EvJackpot = "jackpot"
	EvSpin    = "spin"
	EvDice    = "diceRoll"
	EvCard    = "cardFlip"
	EvGallop  = "horseGallop"
	EvChips   = "chipStack"
)

// Surface 顯示端。
type Surface interface {
	Balance(credits int)
	Message(msg string, cat Category)
}

// Sound 音效觸發，fire-and-forget。
type Sound interface {
	Trigger(event string)
}

// Broadcast 把多個顯示端包成 ledger.Subscriber。
func Broadcast(surfaces ...Surface) ledger.Subscriber {
	return func(credits int) {
		for _, s := range surfaces {
			if s != nil {
				s.Balance(credits)
			}
		}
	}
}

// Notify 對每個非 nil 顯示端送出訊息。
func Notify(surfaces []Surface, msg string, cat Category) {
	for _, s := range surfaces {
		if s != nil {
			s.Message(msg, cat)
		}
	}
}

// Play 觸發音效；s 為 nil 或播放失敗（panic）都靜默忽略。
func Play(s Sound, event string) {
	if s == nil {
		return
	}
	defer func() { _ = recover() }()
	s.Trigger(event)
}
