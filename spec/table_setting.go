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

// Package spec 定義牌桌設定檔（YAML / JSON）與其驗證。
//
// 共用欄位（名稱、編號、邏輯鍵、押注規則、節奏）放在 TableSetting；
// 各遊戲專屬的賠率表與偏差參數放在 Fixed，由遊戲邏輯以 DecodeFixed 解成自己的型別。
package spec

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/parlor/errs"
)

// GID 牌桌編號
type GID uint

// LogicKey 遊戲邏輯鍵，對應 game.LogicRegistry 中的 builder。
type LogicKey string

const (
	LogicSlots    LogicKey = "slots"
	LogicCraps    LogicKey = "craps"
	LogicDice     LogicKey = "dice"
	LogicPoker    LogicKey = "poker"
	LogicRoulette LogicKey = "roulette"
	LogicHorse    LogicKey = "horse"
	LogicArcade   LogicKey = "arcade"
)

// TableSetting 建立一張牌桌所需的設定。
type TableSetting struct {
	TableName string         `yaml:"table_name" json:"table_name"`
	TableID   GID            `yaml:"table_id"   json:"table_id"`
	LogicKey  LogicKey       `yaml:"logic_key"  json:"logic_key"`
	Wager     WagerSetting   `yaml:"wager"      json:"wager"`
	Timing    TimingSetting  `yaml:"timing"     json:"timing"`
	Fixed     map[string]any `yaml:"fixed"      json:"fixed"`
}

// WagerSetting 押注規則
type WagerSetting struct {
	MinBet  int `yaml:"min_bet" json:"min_bet"`
	Step    int `yaml:"step"    json:"step"`
	Initial int `yaml:"initial" json:"initial"`
}

// TimingSetting 呈現節奏（毫秒），只影響 phase plan。
type TimingSetting struct {
	SpinMs   int `yaml:"spin_ms"   json:"spin_ms"`
	StepMs   int `yaml:"step_ms"   json:"step_ms"`
	SettleMs int `yaml:"settle_ms" json:"settle_ms"`
}

// init 補預設值後驗證
func (ts *TableSetting) init() error {
	ts.TableName = strings.TrimSpace(ts.TableName)
	if ts.Wager.MinBet == 0 {
		ts.Wager.MinBet = 5
	}
	if ts.Wager.Step == 0 {
		ts.Wager.Step = 5
	}
	if ts.Wager.Initial == 0 {
		ts.Wager.Initial = ts.Wager.MinBet
	}
	if ts.Fixed == nil {
		ts.Fixed = map[string]any{}
	}
	return ts.valid()
}

func (ts *TableSetting) valid() error {
	if ts.TableName == "" {
		return errs.NewFatal("table_name required")
	}
	if ts.LogicKey == "" {
		return errs.NewFatal(fmt.Sprintf("table_name: %s err: logic_key required", ts.TableName))
	}
	w := ts.Wager
	if w.MinBet < 1 || w.Step < 1 {
		return errs.NewFatal(fmt.Sprintf("table_name: %s err: min_bet and step must be positive", ts.TableName))
	}
	if w.Initial < w.MinBet {
		return errs.NewFatal(fmt.Sprintf("table_name: %s err: initial bet below min_bet", ts.TableName))
	}
	t := ts.Timing
	if t.SpinMs < 0 || t.StepMs < 0 || t.SettleMs < 0 {
		return errs.NewFatal(fmt.Sprintf("table_name: %s err: negative timing", ts.TableName))
	}
	return nil
}
