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

package spec

import (
	"testing"
)

const slotsYAML = `
table_name: slots
table_id: 1
logic_key: slots
wager:
  initial: 10
timing:
  step_ms: 500
fixed:
  jackpot_base: 50000
`

func TestYAMLDefaults(t *testing.T) {
	ts, err := GetTableSettingByYAML([]byte(slotsYAML))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ts.Wager.MinBet != 5 || ts.Wager.Step != 5 || ts.Wager.Initial != 10 {
		t.Fatalf("unexpected wager defaults: %+v", ts.Wager)
	}
	if ts.TableID != 1 || ts.LogicKey != LogicSlots {
		t.Fatalf("unexpected header: %+v", ts)
	}
}

func TestJSONAndExt(t *testing.T) {
	raw := []byte(`{"table_name":"dice","table_id":3,"logic_key":"dice"}`)
	ts, err := GetTableSettingByExt("dice.json", raw)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ts.Wager.Initial != 5 {
		t.Fatalf("initial should default to min bet, got %d", ts.Wager.Initial)
	}
	if _, err := GetTableSettingByExt("dice.toml", raw); err == nil {
		t.Fatalf("unsupported ext should fail")
	}
}

func TestInvalidSettings(t *testing.T) {
	bad := []string{
		"logic_key: slots\n",
		"table_name: x\n",
		"table_name: x\nlogic_key: slots\nwager: {min_bet: 10, initial: 5}\n",
		"table_name: x\nlogic_key: slots\ntiming: {step_ms: -1}\n",
	}
	for _, b := range bad {
		if _, err := GetTableSettingByYAML([]byte(b)); err == nil {
			t.Fatalf("expected error for %q", b)
		}
	}
}

type fixedProbe struct {
	JackpotBase int `yaml:"jackpot_base"`
}

func TestDecodeFixedStrict(t *testing.T) {
	ts, _ := GetTableSettingByYAML([]byte(slotsYAML))
	var f fixedProbe
	if err := DecodeFixed(ts, &f); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.JackpotBase != 50000 {
		t.Fatalf("want 50000 got %d", f.JackpotBase)
	}
	ts.Fixed["typo"] = 1
	if err := DecodeFixed(ts, &f); err == nil {
		t.Fatalf("unknown field should fail")
	}
}
