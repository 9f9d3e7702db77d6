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

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/wager"
	"github.com/zintix-labs/parlor/spec"
)

// Desk 牌桌共用的押注部分，各遊戲嵌入使用。
type Desk struct {
	TableName string
	Key       spec.LogicKey
	Wager     *wager.Controller
}

// NewDesk 依設定建立押注控制器。
func NewDesk(ts *spec.TableSetting) Desk {
	w := ts.Wager
	return Desk{
		TableName: ts.TableName,
		Key:       ts.LogicKey,
		Wager:     wager.New(w.MinBet, w.Step, w.Initial, nil),
	}
}

func (d *Desk) Name() string         { return d.TableName }
func (d *Desk) Logic() spec.LogicKey { return d.Key }
func (d *Desk) Bet() int             { return d.Wager.Bet() }

// Outcome 建立一個帶有牌桌資訊的空結果。
func (d *Desk) Outcome(act Action, bet int) *Outcome {
	return &Outcome{Table: d.TableName, Logic: d.Key, Action: act, Bet: bet}
}

// Adjust 處理 ActBet / ActUp / ActDown；其他動作回傳 false。
func (d *Desk) Adjust(req *Request, balance int) (*Outcome, bool) {
	var msg string
	switch req.Action {
	case ActBet:
		d.Wager.Commit(d.Wager.Preview(req.Bet, req.Input, balance))
		msg = fmt.Sprintf("Bet: %d", d.Wager.Bet())
	case ActUp:
		if _, ok := d.Wager.Up(balance); !ok {
			msg = "Maximum bet reached"
		} else {
			msg = fmt.Sprintf("Bet: %d", d.Wager.Bet())
		}
	case ActDown:
		if _, ok := d.Wager.Down(); !ok {
			msg = fmt.Sprintf("Minimum bet is %d", d.Wager.MinBet)
		} else {
			msg = fmt.Sprintf("Bet: %d", d.Wager.Bet())
		}
	default:
		return nil, false
	}
	o := d.Outcome(req.Action, d.Wager.Bet())
	o.Result = Idle
	o.Category = "bet"
	o.Message = msg
	o.Emphasis = EmphasisOf(Idle)
	return o, true
}

// Stake 算出開局押注並驗證餘額，不寫回；通過後由呼叫端 Commit。
func (d *Desk) Stake(req *Request, balance int) (int, error) {
	bet := d.Wager.Preview(req.Bet, req.Input, balance)
	if err := d.Wager.Validate(bet, balance); err != nil {
		return bet, errs.WrapWithExtra(err, d.TableName+": bet refused", fmt.Sprintf("bet=%d credits=%d", bet, balance))
	}
	return bet, nil
}
