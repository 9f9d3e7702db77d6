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

package display

import (
	"context"
	"log/slog"
)

// Log 以 slog 記錄餘額與訊息，適合 server 與模擬。
type Log struct {
	L *slog.Logger
}

func (l Log) Balance(credits int) {
	if l.L == nil {
		return
	}
	l.L.LogAttrs(context.Background(), slog.LevelDebug, "ledger.balance", slog.Int("credits", credits))
}

func (l Log) Message(msg string, cat Category) {
	if l.L == nil {
		return
	}
	lv := slog.LevelInfo
	if cat == Info {
		lv = slog.LevelDebug
	}
	l.L.LogAttrs(context.Background(), lv, "table.message", slog.String("category", string(cat)), slog.String("msg", msg))
}

// LogSound 把音效事件記成 debug log。
type LogSound struct {
	L *slog.Logger
}

func (s LogSound) Trigger(event string) {
	if s.L == nil {
		return
	}
	s.L.Debug("sound", slog.String("event", event))
}
