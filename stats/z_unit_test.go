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

package stats_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/zintix-labs/parlor/stats"
)

// buildStatReport 以固定押注單位與每局派彩組出報表
func buildStatReport(bet int, wins []int) *stats.StatReport {
	L := len(stats.Buckets.WinBucketStr())
	bucket := stats.Buckets.GetBucketByBetUnit(bet)
	collect := make([]int, L+1)

	var totalWin, totalWinSq int
	for _, w := range wins {
		collect[bucket.Index(w)]++
		totalWin += w
		totalWinSq += w * w
	}
	report := &stats.StatReport{
		Summary: &stats.SummaryReport{
			Table:       "dice",
			TableId:     3,
			BetUnit:     bet,
			TotalBet:    bet * len(wins),
			TotalWin:    totalWin,
			NoWinRounds: collect[0],
			Rounds:      len(wins),
		},
		Mult: &stats.MultReport{
			TotalWinMult:      float64(totalWin) / float64(bet),
			TotalWinMultSqSum: float64(totalWinSq) / float64(bet*bet),
		},
		Dist: &stats.DistReport{
			WinBucket:  stats.Buckets.WinBucketStr(),
			WinCollect: collect[:L],
			Categories: map[string]int{"win": len(wins) - collect[0], "lose": collect[0]},
		},
		Player: &stats.PlayerReport{},
	}
	report.Done()
	return report
}

func TestStatReportCoreMetrics(t *testing.T) {
	bu := 40
	rep := buildStatReport(bu, []int{bu, 2 * bu})

	wantRTP := 1.5
	if got := rep.Rtp(); math.Abs(got-wantRTP) > 1e-12 {
		t.Fatalf("RTP got %.12f want %.12f", got, wantRTP)
	}
	// 贏倍 1 與 2，樣本變異數 0.5
	wantStd := math.Sqrt(0.5)
	if got := rep.Std(); math.Abs(got-wantStd) > 1e-12 {
		t.Fatalf("Std got %.12f want %.12f", got, wantStd)
	}
	if got := rep.Cv(); math.Abs(got-wantStd/wantRTP) > 1e-12 {
		t.Fatalf("CV got %.12f", got)
	}
	ci := rep.Summary.RtpCI
	half := 1.959963984540054 * wantStd / math.Sqrt(2)
	if math.Abs(ci.Hi-(wantRTP+half)) > 1e-9 || math.Abs(ci.Lo-(wantRTP-half)) > 1e-9 {
		t.Fatalf("unexpected CI %+v", ci)
	}
	if !rep.Player.Alive {
		t.Fatalf("player without bust or cashout should be alive")
	}
	rep.Done()
	if rep.Rtp() != wantRTP {
		t.Fatalf("RTP changed after second Done")
	}
}

func TestBucketIndex(t *testing.T) {
	b := stats.Buckets.GetBucketByBetUnit(10)
	labels := stats.Buckets.WinBucketStr()
	cases := map[int]string{
		-20:    "[0,0]",
		0:      "[0,0]",
		5:      "(0,1)",
		10:     "[1,2)",
		49:     "[2,5)",
		50:     "[5,10)",
		19999:  "[1000,2000)",
		20000:  "[2000,10000)",
		100000: "[10000,+inf)",
	}
	for win, want := range cases {
		idx := b.Index(win)
		if idx >= len(labels) {
			if want != "[10000,+inf)" {
				t.Fatalf("win %d: index %d out of labels", win, idx)
			}
			continue
		}
		if labels[idx] != want {
			t.Fatalf("win %d: want %s got %s", win, want, labels[idx])
		}
	}
	if stats.Buckets.GetBucketByBetUnit(10) != b {
		t.Fatalf("bucket should be cached per bet unit")
	}
}

func TestPercentIsExact(t *testing.T) {
	if got := stats.Percent(0.9734); got != "97.34 %" {
		t.Fatalf("want 97.34 %% got %q", got)
	}
	if got := stats.Percent(1); got != "100.00 %" {
		t.Fatalf("want 100.00 %% got %q", got)
	}
}

func TestRenders(t *testing.T) {
	rep := buildStatReport(10, []int{0, 20, 0, 10})
	var buf bytes.Buffer
	if err := rep.WriteWith(&buf, stats.RenderOf("json")); err != nil {
		t.Fatalf("json render failed: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("render is not json: %v", err)
	}
	buf.Reset()
	if err := rep.WriteWith(&buf, stats.RenderOf("yaml")); err != nil {
		t.Fatalf("yaml render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "WinBucket: [") {
		t.Fatalf("leaf sequences should be flow style:\n%s", buf.String())
	}
	buf.Reset()
	if err := rep.WriteWith(&buf, stats.RenderOf("table")); err != nil {
		t.Fatalf("table render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "75.00 %") || !strings.Contains(buf.String(), "# lose") {
		t.Fatalf("unexpected table:\n%s", buf.String())
	}
	if stats.RenderOf("xml") != nil {
		t.Fatalf("unknown render should be nil")
	}
}

func TestEstimatorRtpAndSession(t *testing.T) {
	reports := make([]*stats.StatReport, 0, 100)
	for i := 0; i < 100; i++ {
		reports = append(reports, buildStatReport(100, []int{i}))
	}
	est := stats.EstimatorPlayerExp(reports)
	if math.Abs(est.RtpStat.ExpMedian.Hat-0.5) > 0.05 {
		t.Fatalf("median RTP expected ~0.5, got %.3f", est.RtpStat.ExpMedian.Hat)
	}
	if math.Abs(est.RtpStat.ExpPerc.ExpP90.Hat-0.9) > 0.05 {
		t.Fatalf("P90 RTP expected ~0.9, got %.3f", est.RtpStat.ExpPerc.ExpP90.Hat)
	}
	if est.RtpStat.RtpPerc.Rtp30.Hat != 0.31 {
		t.Fatalf("31 players at or below 30%%, got %.2f", est.RtpStat.RtpPerc.Rtp30.Hat)
	}
	ci := est.RtpStat.ExpMedian.CI
	if ci.Lo > est.RtpStat.ExpMedian.Hat || ci.Hi < est.RtpStat.ExpMedian.Hat {
		t.Fatalf("median CI %+v should cover the estimate", ci)
	}

	samples := make([]*stats.StatReport, 10)
	for i := range samples {
		r := buildStatReport(100, []int{0})
		switch {
		case i < 3:
			r.Player.Bust = true
			r.Player.Alive = false
		case i < 5:
			r.Player.Cashout = true
			r.Player.Alive = false
		}
		samples[i] = r
	}
	est2 := stats.EstimatorPlayerExp(samples)
	if est2.SessionStat.Bust.Hat != 0.3 || est2.SessionStat.Cashout.Hat != 0.2 || est2.SessionStat.Alive.Hat != 0.5 {
		t.Fatalf("unexpected session stat %+v", est2.SessionStat)
	}
	var buf bytes.Buffer
	if err := (&stats.TableEstimatorRender{}).Write(&buf, est2); err != nil {
		t.Fatalf("table render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "30.00%") {
		t.Fatalf("bust share missing:\n%s", buf.String())
	}
}
