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

// Package games 彙整所有牌桌邏輯。
//
// 匯入本套件即可取得完整的 LogicRegistry，組裝端直接把 Logics 交給 parlor.Logics(...)。
package games

import (
	"log"

	"github.com/zintix-labs/parlor/games/arcade"
	"github.com/zintix-labs/parlor/games/craps"
	"github.com/zintix-labs/parlor/games/dice"
	"github.com/zintix-labs/parlor/games/horse"
	"github.com/zintix-labs/parlor/games/poker"
	"github.com/zintix-labs/parlor/games/roulette"
	"github.com/zintix-labs/parlor/games/slots"
	"github.com/zintix-labs/parlor/sdk/game"
)

// Logics 內建七種牌桌的註冊表。
var Logics = game.NewLogicRegistry()

var registers = []struct {
	name string
	fn   func(*game.LogicRegistry) error
}{
	{"slots", slots.Register},
	{"craps", craps.Register},
	{"dice", dice.Register},
	{"poker", poker.Register},
	{"roulette", roulette.Register},
	{"horse", horse.Register},
	{"arcade", arcade.Register},
}

func init() {
	for _, r := range registers {
		if err := r.fn(Logics); err != nil {
			log.Fatalf("%s register failed: %v", r.name, err)
		}
	}
}
