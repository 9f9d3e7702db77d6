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

package main

import (
	"strconv"
	"strings"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/game"
)

const usage = `commands:
  <table>                       main action (spin / roll / deal / race)
  <table> <wager>               play with a wager, e.g. roulette red, horse 3
  <table> select <wager>        pick a selection (dice: high | low | seven)
  <table> bet <amount>          set the bet
  <table> up | down             step the bet
  poker select 0 2 4            hold cards by position
  poker draw [0..4 ...]         hold the listed cards and draw the rest
  balance | help | quit
`

type cmdKind int

const (
	cmdNone cmdKind = iota
	cmdPlay
	cmdBalance
	cmdHelp
	cmdQuit
)

type command struct {
	kind  cmdKind
	table string
	req   *game.Request
}

// parseLine 把一行輸入轉成牌桌動作
func parseLine(line string) (command, error) {
	f := strings.Fields(strings.ToLower(line))
	if len(f) == 0 {
		return command{kind: cmdNone}, nil
	}
	switch f[0] {
	case "quit", "exit", "q":
		return command{kind: cmdQuit}, nil
	case "help", "?":
		return command{kind: cmdHelp}, nil
	case "balance", "credits":
		return command{kind: cmdBalance}, nil
	}

	c := command{kind: cmdPlay, table: f[0], req: &game.Request{Action: game.ActPlay}}
	if len(f) == 1 {
		return c, nil
	}
	switch f[1] {
	case "up":
		c.req.Action = game.ActUp
	case "down":
		c.req.Action = game.ActDown
	case "bet":
		if len(f) < 3 {
			return command{}, errs.NewWarn("usage: <table> bet <amount>")
		}
		c.req.Action = game.ActBet
		c.req.Input = f[2]
	case "select":
		if len(f) < 3 {
			return command{}, errs.NewWarn("usage: <table> select <wager>")
		}
		c.req.Action = game.ActSelect
		// poker select 0 2 4 為保留牌位，其他桌是押注項目
		if _, err := strconv.Atoi(f[2]); err != nil {
			c.req.Wager = f[2]
			break
		}
		holds, err := cardIndexes(f[2:])
		if err != nil {
			return command{}, err
		}
		c.req.Holds = holds
	case "draw":
		c.req.Action = game.ActDraw
		holds, err := cardIndexes(f[2:])
		if err != nil {
			return command{}, err
		}
		c.req.Holds = holds
	default:
		c.req.Wager = f[1]
	}
	return c, nil
}

func cardIndexes(fs []string) ([]int, error) {
	holds := make([]int, 0, len(fs))
	for _, s := range fs {
		i, err := strconv.Atoi(s)
		if err != nil {
			return nil, errs.Warnf("bad card index %q", s)
		}
		holds = append(holds, i)
	}
	return holds, nil
}

func isRefusal(err error) bool {
	return errs.Level(err) == errs.Warn
}
