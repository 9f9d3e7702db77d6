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

package svrcfg

import (
	"log/slog"
	"time"

	"github.com/zintix-labs/parlor"
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/ledger"
	"github.com/zintix-labs/parlor/server/logger"
)

const (
	DefaultMaxSessions = 1024
	// MaxSimRounds 單一 /v1/sim 請求的上限
	MaxSimRounds = 1_000_000
	MaxPlayers   = 100_000
)

type SvrCfg struct {
	Log         *slog.Logger
	Addr        string
	MaxSessions int
	// Credits 新 Session 的預設餘額
	Credits int
	// PlayTimeout 單一 play 請求的期限
	PlayTimeout time.Duration
	Parlor      *parlor.Parlor
}

func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("async log handler is not ready")
		}
	} else {
		sc.Log = logger.New(logger.ModeSilence)
	}
	if sc.MaxSessions <= 0 {
		sc.MaxSessions = DefaultMaxSessions
	}
	if sc.Credits <= 0 {
		sc.Credits = ledger.DefaultCredits
	}
	if sc.PlayTimeout <= 0 {
		sc.PlayTimeout = 2 * time.Second
	}
	if sc.Parlor == nil {
		return errs.NewFatal("parlor is required")
	}
	return nil
}
