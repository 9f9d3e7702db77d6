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

// Package phase 把一局的動畫節奏表示成有名字的階段序列，
// 由單一 Scheduler 依序推進，而不是層層巢狀的延遲回呼。
//
// 結果在進入任何階段前就已經算完；階段只負責呈現節奏。
package phase

import (
	"context"
	"time"
)

type Phase string

const (
	Spinning Phase = "spinning"
	Stopping Phase = "stopping"
	Rolling  Phase = "rolling"
	Dealing  Phase = "dealing"
	Drawing  Phase = "drawing"
	Racing   Phase = "racing"
	Point    Phase = "point"
	Settled  Phase = "settled"
)

// Step 進入 Phase 前先等待 Delay。
type Step struct {
	Phase Phase         `json:"phase"`
	Delay time.Duration `json:"delay"`
	Note  string        `json:"note,omitempty"`
}

// Plan 一局的階段序列。
type Plan []Step

// Total 回傳整個序列的總延遲。
func (p Plan) Total() time.Duration {
	var d time.Duration
	for _, s := range p {
		d += s.Delay
	}
	return d
}

// Last 回傳最後一個階段，空序列回傳 ""。
func (p Plan) Last() Phase {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1].Phase
}

// Ms 把設定檔的毫秒數轉成 Duration，v 為 0 時使用 def。
func Ms(v, def int) time.Duration {
	if v == 0 {
		v = def
	}
	return time.Duration(v) * time.Millisecond
}

// Clock 時間來源。
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// Real 使用 time.After。
type Real struct{}

func (Real) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Instant 立即觸發並記下被要求等待的時間，用於測試或不需要節奏的場合。
type Instant struct {
	Waited []time.Duration
}

func (i *Instant) After(d time.Duration) <-chan time.Time {
	i.Waited = append(i.Waited, d)
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

// Scheduler 依序推進 Plan。
type Scheduler struct {
	clock Clock
}

// NewScheduler clock 為 nil 時使用 Real。
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = Real{}
	}
	return &Scheduler{clock: clock}
}

// Run 逐一等待每個 Step 的 Delay 後呼叫 enter。
// ctx 結束時停止推進並回傳 ctx.Err()；已算好的結果不受影響。
func (s *Scheduler) Run(ctx context.Context, p Plan, enter func(Step)) error {
	for _, st := range p {
		if st.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-s.clock.After(st.Delay):
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if enter != nil {
			enter(st)
		}
	}
	return nil
}
