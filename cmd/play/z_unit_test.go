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
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/server/logger"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		line   string
		kind   cmdKind
		table  string
		action game.Action
	}{
		{"", cmdNone, "", ""},
		{"quit", cmdQuit, "", ""},
		{"help", cmdHelp, "", ""},
		{"balance", cmdBalance, "", ""},
		{"slots", cmdPlay, "slots", game.ActPlay},
		{"Roulette RED", cmdPlay, "roulette", game.ActPlay},
		{"dice select high", cmdPlay, "dice", game.ActSelect},
		{"craps bet 20", cmdPlay, "craps", game.ActBet},
		{"arcade up", cmdPlay, "arcade", game.ActUp},
		{"poker draw 0 2", cmdPlay, "poker", game.ActDraw},
	}
	for _, c := range cases {
		cmd, err := parseLine(c.line)
		if err != nil {
			t.Fatalf("%q: unexpected err %v", c.line, err)
		}
		if cmd.kind != c.kind || cmd.table != c.table {
			t.Fatalf("%q: got kind=%d table=%q", c.line, cmd.kind, cmd.table)
		}
		if c.kind == cmdPlay && cmd.req.Action != c.action {
			t.Fatalf("%q: action=%s want %s", c.line, cmd.req.Action, c.action)
		}
	}

	cmd, _ := parseLine("roulette red")
	if cmd.req.Wager != "red" {
		t.Fatalf("wager=%q", cmd.req.Wager)
	}
	cmd, _ = parseLine("poker draw 0 2")
	if len(cmd.req.Holds) != 2 || cmd.req.Holds[1] != 2 {
		t.Fatalf("holds=%v", cmd.req.Holds)
	}
	cmd, _ = parseLine("poker select 1 3")
	if cmd.req.Wager != "" || len(cmd.req.Holds) != 2 || cmd.req.Holds[0] != 1 {
		t.Fatalf("poker select should hold cards: %+v", cmd.req)
	}
	cmd, _ = parseLine("craps bet 20")
	if cmd.req.Input != "20" {
		t.Fatalf("input=%q", cmd.req.Input)
	}
}

func TestParseLineErrors(t *testing.T) {
	for _, line := range []string{"craps bet", "dice select", "poker draw x"} {
		if _, err := parseLine(line); err == nil || !isRefusal(err) {
			t.Fatalf("%q: want warn err, got %v", line, err)
		}
	}
}

func TestRunScript(t *testing.T) {
	in := strings.NewReader("help\nslots\npoker draw\nnope\nbalance\nquit\n")
	var out bytes.Buffer
	if err := run(context.Background(), in, &out, 500, 7, true, logger.ModeSilence); err != nil {
		t.Fatalf("run: %v", err)
	}
	s := out.String()
	for _, want := range []string{"PARLOR", "commands:", "credits: 500"} {
		if !strings.Contains(s, want) {
			t.Fatalf("output missing %q:\n%s", want, s)
		}
	}
}

func TestRunShowsPhasesBeforeResult(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), strings.NewReader("slots\nquit\n"), &out, 500, 11, true, logger.ModeSilence); err != nil {
		t.Fatalf("run: %v", err)
	}
	s := out.String()
	i := strings.Index(s, ".. reel 1")
	if i < 0 {
		t.Fatalf("slots phases missing:\n%s", s)
	}
	before, after := s[:i], s[i:]
	for _, msg := range []string{"Try again!", "You won"} {
		if strings.Contains(before, msg) {
			t.Fatalf("result %q printed before the reels stopped:\n%s", msg, s)
		}
	}
	if !strings.Contains(after, "Try again!") && !strings.Contains(after, "You won") {
		t.Fatalf("result missing after the reels:\n%s", s)
	}
}

func TestRunEOF(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), strings.NewReader("slots\n"), &out, 0, 1, true, logger.ModeSilence); err != nil {
		t.Fatalf("run: %v", err)
	}
}
