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

package game

import (
	"fmt"
	"sort"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/spec"
)

// LogicBuilder 依設定與亂數核心建立一張牌桌。
type LogicBuilder func(ts *spec.TableSetting, c *core.Core) (Table, error)

// BotBuilder 建立模擬用自動玩家，ts 讓 Bot 讀得到押注規則。
type BotBuilder func(ts *spec.TableSetting) Bot

type logic struct {
	build LogicBuilder
	bot   BotBuilder
}

// LogicRegistry LogicKey -> builder
type LogicRegistry struct {
	logics map[spec.LogicKey]logic
}

func NewLogicRegistry() *LogicRegistry {
	return &LogicRegistry{logics: make(map[spec.LogicKey]logic, 8)}
}

// Register 註冊牌桌 builder 與模擬用 Bot，重複的 key 回傳 Fatal。
func (r *LogicRegistry) Register(lkey spec.LogicKey, b LogicBuilder, bot BotBuilder) error {
	if b == nil {
		return errs.NewFatal(fmt.Sprintf("nil logic builder: %s", lkey))
	}
	if _, ok := r.logics[lkey]; ok {
		return errs.NewFatal(fmt.Sprintf("duplicate logic builder: %s", lkey))
	}
	r.logics[lkey] = logic{build: b, bot: bot}
	return nil
}

func (r *LogicRegistry) Build(ts *spec.TableSetting, c *core.Core) (Table, error) {
	l, ok := r.logics[ts.LogicKey]
	if !ok {
		return nil, errs.NewFatal(fmt.Sprintf("logic is not exist: %s", ts.LogicKey))
	}
	t, err := l.build(ts, c)
	if err != nil {
		return nil, errs.WrapWithExtra(err, "build table failed", ts.TableName)
	}
	return t, nil
}

// Bot 回傳該邏輯的自動玩家；沒有註冊時回傳一直送 ActPlay 的 Bot。
func (r *LogicRegistry) Bot(ts *spec.TableSetting) Bot {
	l, ok := r.logics[ts.LogicKey]
	if !ok || l.bot == nil {
		return Always(Request{Action: ActPlay})
	}
	return l.bot(ts)
}

func (r *LogicRegistry) IsExist(lkey spec.LogicKey) bool {
	_, ok := r.logics[lkey]
	return ok
}

// Keys 依字母序回傳已註冊的 key。
func (r *LogicRegistry) Keys() []spec.LogicKey {
	ks := make([]spec.LogicKey, 0, len(r.logics))
	for k := range r.logics {
		ks = append(ks, k)
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i] < ks[j] })
	return ks
}

// MergeLogicRegistry 合併多個註冊表，重複 key 一律視為錯誤。
func MergeLogicRegistry(regs ...*LogicRegistry) (*LogicRegistry, error) {
	lr := NewLogicRegistry()
	origin := make(map[spec.LogicKey]int, 8)
	for i, r := range regs {
		if r == nil {
			continue
		}
		for k, l := range r.logics {
			if prev, ok := origin[k]; ok {
				return nil, errs.NewFatal(fmt.Sprintf("duplicate logic key %s (registry #%d and #%d)", k, prev, i))
			}
			lr.logics[k] = l
			origin[k] = i
		}
	}
	return lr, nil
}
