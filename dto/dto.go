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
	"time"

	"github.com/zintix-labs/parlor"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/stats"
)

// PlayResponse Session 只有在 ?snapshot=1 時才附上
type PlayResponse struct {
	Outcome *game.Outcome        `json:"outcome"`
	Credits int                  `json:"credits"`
	Session *parlor.SessionState `json:"session,omitempty"`
}

func NewPlayResponse(o *game.Outcome) PlayResponse {
	return PlayResponse{Outcome: o, Credits: o.Balance}
}

// Attach 附上整個 Session 的快照
func (pr *PlayResponse) Attach(s *parlor.Session) {
	if s == nil {
		return
	}
	st := s.Snapshot()
	pr.Session = &st
}

// SimResponse /v1/sim 與 /v1/simbycfg 的 json 回應
type SimResponse struct {
	Seed      int64                   `json:"seed"`
	Stats     *stats.StatReport       `json:"stats"`
	Estimator *stats.EstimatorPlayers `json:"est,omitempty"`
	UsedTime  int64                   `json:"used_ms"`
}

// NewSimResponse 同時完成報表的衍生指標
func NewSimResponse(seed int64, st *stats.StatReport, est *stats.EstimatorPlayers, used time.Duration) SimResponse {
	if st != nil {
		st.Done()
	}
	return SimResponse{Seed: seed, Stats: st, Estimator: est, UsedTime: used.Milliseconds()}
}

// Index GET /
type Index struct {
	Service  string   `json:"service"`
	Tables   []string `json:"tables"`
	Sessions int      `json:"sessions"`
}
