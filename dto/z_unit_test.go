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

package dto

import (
	"bytes"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/server/svrcfg"
	"github.com/zintix-labs/parlor/stats"
)

func TestDecodePlayRequestGET(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/play?action=draw&bet=10&holds=0,2,%204", nil)
	req, err := DecodePlayRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Action != game.ActDraw || req.Bet != 10 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if len(req.Holds) != 3 || req.Holds[2] != 4 {
		t.Fatalf("unexpected holds: %v", req.Holds)
	}
}

func TestDecodePlayRequestDefaults(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/play", nil)
	req, err := DecodePlayRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Action != game.ActPlay {
		t.Fatalf("empty body should be play, got %q", req.Action)
	}

	r = httptest.NewRequest(http.MethodPost, "/play", bytes.NewReader([]byte(`{"action":"select","wager":"high"}`)))
	req, err = DecodePlayRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Action != game.ActSelect || req.Wager != "high" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestDecodePlayRequestRejects(t *testing.T) {
	cases := []*http.Request{
		httptest.NewRequest(http.MethodPost, "/play", bytes.NewReader([]byte(`{"action":"play","unknown":true}`))),
		httptest.NewRequest(http.MethodPost, "/play", bytes.NewReader([]byte(`{"bet":`))),
		httptest.NewRequest(http.MethodGet, "/play?bet=ten", nil),
		httptest.NewRequest(http.MethodGet, "/play?holds=1,x", nil),
		httptest.NewRequest(http.MethodPut, "/play", nil),
	}
	for i, r := range cases {
		_, err := DecodePlayRequest(r)
		if err == nil {
			t.Fatalf("case %d: expected error", i)
		}
		if errs.Level(err) != errs.Warn {
			t.Fatalf("case %d: decode errors are client errors, got %v", i, errs.Level(err))
		}
	}
}

func TestSimRequestValid(t *testing.T) {
	req := &SimRequest{Table: "slots", Rounds: 100}
	if err := req.Valid(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Workers != 1 {
		t.Fatalf("workers should default to 1, got %d", req.Workers)
	}

	bad := []SimRequest{
		{Rounds: 10},
		{Table: "slots"},
		{Table: "slots", Rounds: svrcfg.MaxSimRounds + 1},
		{Table: "slots", Rounds: 10, Players: 5},
		{Table: "slots", Rounds: MaxPlayerRounds + 1, Players: 5, Bets: 10},
		{Table: "slots", Rounds: 10, Players: svrcfg.MaxPlayers + 1, Bets: 10},
		{Table: "slots", Rounds: 10, Players: 5, Bets: MaxPlayerBets + 1},
		{Table: "slots", Rounds: math.MaxInt/4 + 1, Workers: 4},
		{Table: "slots", Rounds: math.MaxInt/2 + 1, Workers: 2},
	}
	for i := range bad {
		if err := bad[i].Valid(); err == nil {
			t.Fatalf("case %d: expected error for %+v", i, bad[i])
		}
	}
}

func TestSimRequestWorkerBudget(t *testing.T) {
	req := &SimRequest{Table: "slots", Rounds: svrcfg.MaxSimRounds, Workers: 1}
	if err := req.Valid(); err != nil {
		t.Fatalf("full budget on one worker should pass: %v", err)
	}
	req = &SimRequest{Table: "slots", Rounds: svrcfg.MaxSimRounds, Workers: 64}
	err := req.Valid()
	if req.Workers > 1 && err == nil {
		t.Fatalf("rounds x %d workers over the budget should fail", req.Workers)
	}
	if req.Workers == 1 && err != nil {
		t.Fatalf("single cpu host clamps workers to 1: %v", err)
	}
}

func TestCfgAndAuditRequestValid(t *testing.T) {
	if err := (&CfgRequest{Rounds: 10}).Valid(); err == nil {
		t.Fatalf("missing cfg should fail")
	}
	if err := (&CfgRequest{Cfg: "table_name: x", Rounds: 0}).Valid(); err == nil {
		t.Fatalf("zero rounds should fail")
	}
	if err := (&AuditRequest{Rounds: 10}).Valid(); err == nil {
		t.Fatalf("missing table should fail")
	}
}

func TestSeedOr(t *testing.T) {
	v := int64(42)
	if SeedOr(&v) != 42 {
		t.Fatalf("explicit seed must be kept")
	}
	if SeedOr(nil) < 0 {
		t.Fatalf("random seed must be non-negative")
	}
}

func TestNewSimResponse(t *testing.T) {
	st := &stats.StatReport{Summary: &stats.SummaryReport{}}
	resp := NewSimResponse(7, st, nil, 1500*time.Millisecond)
	if resp.Seed != 7 || resp.UsedTime != 1500 || resp.Stats != st {
		t.Fatalf("unexpected response: %+v", resp)
	}
	pr := NewPlayResponse(&game.Outcome{Balance: 990})
	if pr.Credits != 990 {
		t.Fatalf("credits should follow balance, got %d", pr.Credits)
	}
	pr.Attach(nil)
	if pr.Session != nil {
		t.Fatalf("nil session must not attach")
	}
}
