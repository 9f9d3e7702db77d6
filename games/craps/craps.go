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

// Package craps 過關線（pass line）擲骰：出場擲決定自然贏、擲輸或建立點數，
// 點數階段擲回點數贏、擲出 7 輸。
package craps

import "github.com/zintix-labs/parlor/sdk/core"

// Roll 兩顆骰子
type Roll struct {
	D1 int `json:"d1"`
	D2 int `json:"d2"`
}

func (r Roll) Sum() int { return r.D1 + r.D2 }

// RollDice 兩顆獨立的 1..6
func RollDice(c *core.Core) Roll {
	return Roll{D1: c.Die(), D2: c.Die()}
}

// Verdict 一次擲骰的判定
type Verdict string

const (
	Natural   Verdict = "natural"    // 出場 7 / 11
	Craps     Verdict = "craps"      // 出場 2 / 3 / 12
	PointSet  Verdict = "point_set"  // 出場其他點數
	PointMade Verdict = "point_made" // 點數階段擲回點數
	SevenOut  Verdict = "seven_out"  // 點數階段擲出 7
	RollAgain Verdict = "roll_again" // 點數階段其他點數
)

// ComeOut 出場擲的判定
func ComeOut(total int) Verdict {
	switch total {
	case 7, 11:
		return Natural
	case 2, 3, 12:
		return Craps
	default:
		return PointSet
	}
}

// PointRoll 點數階段的判定
func PointRoll(point, total int) Verdict {
	switch total {
	case point:
		return PointMade
	case 7:
		return SevenOut
	default:
		return RollAgain
	}
}

// Wins 判定是否派彩
func (v Verdict) Wins() bool { return v == Natural || v == PointMade }

// Ends 判定這一輪是否結束
func (v Verdict) Ends() bool { return v != PointSet && v != RollAgain }
