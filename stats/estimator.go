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

package stats

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ============================================================
// ** 結構宣告 **
// ============================================================

// EstimatorPlayers 玩家體驗評估
type EstimatorPlayers struct {
	Players     int         `json:"Players"     yaml:"Players"`
	RtpStat     RtpStat     `json:"RtpStat"     yaml:"RtpStat"`
	EventStat   EventStat   `json:"EventStat"   yaml:"EventStat"`
	SessionStat SessionStat `json:"SessionStat" yaml:"SessionStat"`
}

// RtpStat 玩家各自體驗到的 RTP 分布
type RtpStat struct {
	ExpMedian PointStat `json:"ExpMedian" yaml:"ExpMedian"`
	ExpPerc   ExpPerc   `json:"ExpPerc"   yaml:"ExpPerc"`
	RtpPerc   RtpPerc   `json:"RtpPerc"   yaml:"RtpPerc"`
}

// ExpPerc 最差 10% / 33% ... 玩家的 RTP
type ExpPerc struct {
	ExpP10 PointStat `json:"ExpP10" yaml:"ExpP10"`
	ExpP33 PointStat `json:"ExpP33" yaml:"ExpP33"`
	ExpP67 PointStat `json:"ExpP67" yaml:"ExpP67"`
	ExpP90 PointStat `json:"ExpP90" yaml:"ExpP90"`
}

// RtpPerc RTP 不超過 30% / 50% ... 的玩家比例
type RtpPerc struct {
	Rtp30  PointStat `json:"Rtp30"  yaml:"Rtp30"`
	Rtp50  PointStat `json:"Rtp50"  yaml:"Rtp50"`
	Rtp70  PointStat `json:"Rtp70"  yaml:"Rtp70"`
	Rtp100 PointStat `json:"Rtp100" yaml:"Rtp100"`
}

// PointStat 點估計與 95% 信賴區間
type PointStat struct {
	Hat float64 `json:"Hat" yaml:"Hat"`
	CI  CI      `json:"CI"  yaml:"CI"`
}

type EventStat struct {
	Jackpot EventCount  `json:"Jackpot" yaml:"Jackpot"`
	Bucket  BucketEvent `json:"Bucket"  yaml:"Bucket"`
}

// EventCount 每位玩家遇到某事件 0 / 1 / 2 / 3+ 次的比例
type EventCount struct {
	Zero PointStat `json:"Zero" yaml:"Zero"`
	One  PointStat `json:"One"  yaml:"One"`
	Two  PointStat `json:"Two"  yaml:"Two"`
	More PointStat `json:"More" yaml:"More"`
}

type BucketEvent struct {
	BucketLabel []string     `json:"BucketLabel" yaml:"BucketLabel"`
	BucketCount []EventCount `json:"BucketCount" yaml:"BucketCount"`
}

// SessionStat 玩家離場原因
type SessionStat struct {
	Bust    PointStat `json:"Bust"    yaml:"Bust"`    // 破產
	Cashout PointStat `json:"Cashout" yaml:"Cashout"` // 贏到 3 倍本金離場
	Alive   PointStat `json:"Alive"   yaml:"Alive"`   // 打完局數還在
}

// ============================================================
// ** 對外 : 玩家體驗評估 **
// ============================================================

// EstimatorPlayerExp 由每位玩家的報表估計整體體驗：RTP 分布、事件次數、離場原因。
func EstimatorPlayerExp(sts []*StatReport) *EstimatorPlayers {
	n := len(sts)
	out := &EstimatorPlayers{Players: n}
	if n == 0 {
		return out
	}

	rtp := make([]float64, n)
	for i, s := range sts {
		rtp[i] = s.Rtp()
	}
	sort.Float64s(rtp)

	out.RtpStat = RtpStat{
		ExpMedian: quantileStat(rtp, 0.5),
		ExpPerc: ExpPerc{
			ExpP10: quantileStat(rtp, 0.10),
			ExpP33: quantileStat(rtp, 1.0/3.0),
			ExpP67: quantileStat(rtp, 2.0/3.0),
			ExpP90: quantileStat(rtp, 0.90),
		},
		RtpPerc: RtpPerc{
			Rtp30:  shareAtMost(rtp, 0.30),
			Rtp50:  shareAtMost(rtp, 0.50),
			Rtp70:  shareAtMost(rtp, 0.70),
			Rtp100: shareAtMost(rtp, 1.00),
		},
	}

	out.EventStat.Jackpot = countEvents(sts, func(s *StatReport) int { return s.Summary.Jackpots })

	labels := Buckets.WinBucketStr()
	out.EventStat.Bucket = BucketEvent{BucketLabel: labels, BucketCount: make([]EventCount, len(labels))}
	for bi := range labels {
		out.EventStat.Bucket.BucketCount[bi] = countEvents(sts, func(s *StatReport) int {
			if bi < len(s.Dist.WinCollect) {
				return s.Dist.WinCollect[bi]
			}
			return 0
		})
	}

	var bust, cash, alive int
	for _, s := range sts {
		if s.Player == nil {
			continue
		}
		if s.Player.Bust {
			bust++
		}
		if s.Player.Cashout {
			cash++
		}
		if s.Player.Alive {
			alive++
		}
	}
	out.SessionStat = SessionStat{
		Bust:    proportion(bust, n),
		Cashout: proportion(cash, n),
		Alive:   proportion(alive, n),
	}
	return out
}

// Write 以表格輸出
func (est *EstimatorPlayers) Write(w io.Writer) error {
	rtpKeys := []string{"Median RTP", "P10 RTP", "P33 RTP", "P67 RTP", "P90 RTP", "≤30% RTP (players)", "≤50% RTP (players)", "≤70% RTP (players)", "≤100% RTP (players)"}
	r := est.RtpStat
	rtpMsg := map[string]string{
		"Median RTP":          fmtPoint(r.ExpMedian),
		"P10 RTP":             fmtPoint(r.ExpPerc.ExpP10),
		"P33 RTP":             fmtPoint(r.ExpPerc.ExpP33),
		"P67 RTP":             fmtPoint(r.ExpPerc.ExpP67),
		"P90 RTP":             fmtPoint(r.ExpPerc.ExpP90),
		"≤30% RTP (players)":  fmtPoint(r.RtpPerc.Rtp30),
		"≤50% RTP (players)":  fmtPoint(r.RtpPerc.Rtp50),
		"≤70% RTP (players)":  fmtPoint(r.RtpPerc.Rtp70),
		"≤100% RTP (players)": fmtPoint(r.RtpPerc.Rtp100),
	}
	jp := est.EventStat.Jackpot
	evKeys := []string{"0 times", "1 time", "2 times", "3+ times"}
	evMsg := map[string]string{
		"0 times":  fmtPoint(jp.Zero),
		"1 time":   fmtPoint(jp.One),
		"2 times":  fmtPoint(jp.Two),
		"3+ times": fmtPoint(jp.More),
	}
	ss := est.SessionStat
	sessKeys := []string{"Bust", "Cashout", "Alive"}
	sessMsg := map[string]string{
		"Bust":    fmtPoint(ss.Bust),
		"Cashout": fmtPoint(ss.Cashout),
		"Alive":   fmtPoint(ss.Alive),
	}

	out := fmtTable(fmt.Sprintf("RTP (%d players)", est.Players), rtpKeys, rtpMsg)
	out += fmtTable("Jackpots per player", evKeys, evMsg)
	out += fmtTable("Session Outcome", sessKeys, sessMsg)
	for i, label := range est.EventStat.Bucket.BucketLabel {
		out += fmt.Sprintf("%-14s : %s\n", label, fmtEventCount(est.EventStat.Bucket.BucketCount[i]))
	}
	_, err := io.WriteString(w, out)
	return err
}

// ============================================================
// ** 內部統計函數 **
// ============================================================

func countEvents(sts []*StatReport, count func(*StatReport) int) EventCount {
	var c [4]int
	for _, s := range sts {
		c[min(count(s), 3)]++
	}
	n := len(sts)
	return EventCount{
		Zero: proportion(c[0], n),
		One:  proportion(c[1], n),
		Two:  proportion(c[2], n),
		More: proportion(c[3], n),
	}
}

func proportion(k, n int) PointStat {
	hat, ci := proportionCICP(k, n, 0.95)
	return PointStat{Hat: hat, CI: ci}
}

// proportionCICP Clopper–Pearson 二項比例信賴區間
func proportionCICP(k int, n int, confidence float64) (float64, CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	ci := CI{Lo: 0, Hi: 1}
	if k > 0 {
		ci.Lo = distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}.Quantile(alpha / 2)
	}
	if k < n {
		ci.Hi = distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}.Quantile(1 - alpha/2)
	}
	return float64(k) / float64(n), ci
}

// shareAtMost P(X <= x0) 的點估計與區間，sorted 需已排序
func shareAtMost(sorted []float64, x0 float64) PointStat {
	k := sort.Search(len(sorted), func(i int) bool { return sorted[i] > x0 })
	return proportion(k, len(sorted))
}

// quantileStat 第 q 分位的點估計（gonum 經驗分位）與順序統計量區間，sorted 需已排序
func quantileStat(sorted []float64, q float64) PointStat {
	n := len(sorted)
	if n == 0 {
		return PointStat{}
	}
	hat := stat.Quantile(q, stat.Empirical, sorted, nil)
	if n < 2 {
		return PointStat{Hat: hat, CI: CI{Lo: hat, Hi: hat}}
	}

	// 把秩視為二項，反推 p 的區間後再換回樣本位置
	k := min(max(int(q*float64(n)), 1), n-1)
	pLo := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}.Quantile(0.025)
	pHi := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}.Quantile(0.975)
	lo := min(max(int(pLo*float64(n)), 0), n-1)
	hi := min(max(int(pHi*float64(n))-1, 0), n-1)
	return PointStat{Hat: hat, CI: CI{Lo: sorted[lo], Hi: sorted[hi]}}
}

func fmtPoint(p PointStat) string {
	return fmt.Sprintf("%.2f%% [%.2f%%, %.2f%%]", p.Hat*100, p.CI.Lo*100, p.CI.Hi*100)
}

func fmtEventCount(ec EventCount) string {
	return fmt.Sprintf("0x: %s | 1x: %s | 2x: %s | 3+x: %s", fmtPoint(ec.Zero), fmtPoint(ec.One), fmtPoint(ec.Two), fmtPoint(ec.More))
}
