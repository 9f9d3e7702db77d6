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

// Package stats 模擬結果的統計報表：RTP、信賴區間、命中率、贏倍分桶與玩家體驗估計。
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"github.com/zintix-labs/parlor/spec"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat/distuv"
)

var lang language.Tag = language.English

// z95 雙尾 95% 的常態分位數（約 1.96）
var z95 = distuv.UnitNormal.Quantile(0.975)

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo" yaml:"Lo"`
	Hi float64 `json:"Hi" yaml:"Hi"`
}

// StatReport 牌桌統計報告
type StatReport struct {
	Summary *SummaryReport `json:"Summary" yaml:"Summary"`
	Mult    *MultReport    `json:"Mult"    yaml:"Mult"`
	Dist    *DistReport    `json:"Dist"    yaml:"Dist"`
	Player  *PlayerReport  `json:"Player,omitzero" yaml:"Player,omitempty"`
	isDone  bool
}

type SummaryReport struct {
	Table       string        `json:"Table"       yaml:"Table"`
	TableId     spec.GID      `json:"TableId"     yaml:"TableId"`
	Logic       spec.LogicKey `json:"Logic"       yaml:"Logic"`
	BetUnit     int           `json:"BetUnit"     yaml:"BetUnit"`
	TotalBet    int           `json:"TotalBet"    yaml:"TotalBet"`
	TotalWin    int           `json:"TotalWin"    yaml:"TotalWin"`
	RTP         float64       `json:"RTP"         yaml:"RTP"`
	RtpCI       CI            `json:"RtpCI"       yaml:"RtpCI"`
	Std         float64       `json:"Std"         yaml:"Std"`
	Cv          float64       `json:"Cv"          yaml:"Cv"`
	Jackpots    int           `json:"Jackpots"    yaml:"Jackpots"`
	JackpotRate float64       `json:"JackpotRate" yaml:"JackpotRate"`
	NoWinRounds int           `json:"NoWinRounds" yaml:"NoWinRounds"`
	HitRate     float64       `json:"HitRate"     yaml:"HitRate"`
	Rounds      int           `json:"Rounds"      yaml:"Rounds"`
}

// MultReport 贏倍統計（以 BetUnit 為 1 倍）
type MultReport struct {
	TotalWinMult      float64 `json:"TotalWinMult"      yaml:"TotalWinMult"`
	TotalWinMultSqSum float64 `json:"TotalWinMultSqSum" yaml:"TotalWinMultSqSum"` // 平方和
}

// DistReport 贏倍區間落點與結果分類次數
type DistReport struct {
	WinBucket  []string       `json:"WinBucket"  yaml:"WinBucket"`
	WinCollect []int          `json:"WinCollect" yaml:"WinCollect"`
	WinDist    []float64      `json:"WinDist"    yaml:"WinDist"`
	Categories map[string]int `json:"Categories" yaml:"Categories"`
}

// PlayerReport 玩家資金歷程，只有 SimPlayers 會填
type PlayerReport struct {
	InitBalance int  `json:"InitBalance" yaml:"InitBalance"`
	Balance     int  `json:"Balance"     yaml:"Balance"`
	MaxBalance  int  `json:"MaxBalance"  yaml:"MaxBalance"`
	MinBalance  int  `json:"MinBalance"  yaml:"MinBalance"`
	Bust        bool `json:"Bust"        yaml:"Bust"`
	Cashout     bool `json:"Cashout"     yaml:"Cashout"`
	Alive       bool `json:"Alive"       yaml:"Alive"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 一次性算出衍生指標，重複呼叫無作用。
func (s *StatReport) Done() {
	if s.isDone {
		return
	}
	s.Summary.RTP = s.Rtp()
	s.Summary.RtpCI = s.Ci()
	s.Summary.Std = s.Std()
	s.Summary.Cv = s.Cv()
	if s.Player != nil {
		s.Player.Alive = !(s.Player.Bust || s.Player.Cashout)
	}
	s.isDone = true
}

// Rtp 總派彩 / 總押注
func (s *StatReport) Rtp() float64 {
	if s.Summary.Rounds == 0 || s.Summary.TotalBet == 0 {
		return 0
	}
	return float64(s.Summary.TotalWin) / float64(s.Summary.TotalBet)
}

// Std 單局贏倍的樣本標準差
func (s *StatReport) Std() float64 {
	if s.Summary.Rounds < 2 || s.Summary.BetUnit == 0 {
		return 0
	}
	n := float64(s.Summary.Rounds)
	sum := s.Mult.TotalWinMult
	variance := (s.Mult.TotalWinMultSqSum - sum*sum/n) / (n - 1)
	return math.Sqrt(max(variance, 0))
}

// Cv 變異係數
func (s *StatReport) Cv() float64 {
	rtp := s.Rtp()
	if rtp <= 0 {
		return 0
	}
	return s.Std() / rtp
}

// Ci RTP 的 95% 信賴區間（常態近似）
func (s *StatReport) Ci() CI {
	rtp := s.Rtp()
	se := 0.0
	if s.Summary.Rounds > 1 {
		se = s.Std() / math.Sqrt(float64(s.Summary.Rounds))
	}
	return CI{Lo: max(rtp-z95*se, 0), Hi: rtp + z95*se}
}

func (s *StatReport) WriteWith(w io.Writer, rep StatReportRender) error {
	s.Done()
	return rep.Write(w, s)
}

// StdOut 印出用時與摘要表
func (s *StatReport) StdOut(ut time.Duration) {
	var b strings.Builder
	s.Done()
	writeDuration(&b, ut, s.Summary.Rounds)
	b.WriteString(s.table())
	fmt.Print(b.String())
}

// Percent 以十進位精確格式化比例，例如 0.9734 -> "97.34 %"
func Percent(x float64) string {
	return decimal.NewFromFloat(x).Shift(2).StringFixed(2) + " %"
}

// ============================================================
// ** 內部方法 **
// ============================================================

func writeDuration(w io.Writer, d time.Duration, rounds int) {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := max(d.Seconds(), 1e-9)
	rps := int(float64(rounds) / sec)
	switch {
	case sec < 60:
		p.Fprintf(w, "used: %.2f seconds\nrps : %d rounds/sec\n", sec, rps)
	case d < time.Hour:
		p.Fprintf(w, "used: %dm %ds\nrps : %d rounds/sec\n", int(d.Minutes()), int(d.Seconds())%60, rps)
	default:
		p.Fprintf(w, "used: %dh:%dm:%ds\nrps : %d rounds/sec\n", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60, rps)
	}
}

func (s *StatReport) table() string {
	p := message.NewPrinter(lang)
	sm := s.Summary
	msg := map[string]string{
		"Table":        sm.Table,
		"Table ID":     fmt.Sprintf("%d", sm.TableId),
		"Logic":        string(sm.Logic),
		"Bet":          p.Sprintf("%d", sm.BetUnit),
		"Total Rounds": p.Sprintf("%d", sm.Rounds),
		"Total RTP":    Percent(sm.RTP),
		"RTP 95% CI":   "[" + Percent(sm.RtpCI.Lo) + ", " + Percent(sm.RtpCI.Hi) + "]",
		"Total Bet":    p.Sprintf("%d", sm.TotalBet),
		"Total Win":    p.Sprintf("%d", sm.TotalWin),
		"Hit Rate":     Percent(sm.HitRate),
		"NoWin Rounds": p.Sprintf("%d", sm.NoWinRounds),
		"Jackpots":     p.Sprintf("%d", sm.Jackpots),
		"STD":          p.Sprintf("%.3f", sm.Std),
		"CV":           p.Sprintf("%.3f", sm.Cv),
	}
	keys := []string{"Table", "Table ID", "Logic", "Bet", "Total Rounds", "Total RTP", "RTP 95% CI", "Total Bet", "Total Win", "Hit Rate", "NoWin Rounds", "Jackpots", "STD", "CV"}

	cats := make([]string, 0, len(s.Dist.Categories))
	for c := range s.Dist.Categories {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		k := "# " + c
		msg[k] = p.Sprintf("%d", s.Dist.Categories[c])
		keys = append(keys, k)
	}
	return fmtTable(sm.Table, keys, msg)
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	kw, vw := runewidth.StringWidth(title), 0
	for _, k := range keys {
		kw = max(kw, runewidth.StringWidth(k))
		vw = max(vw, runewidth.StringWidth(msg[k]))
	}
	kw += 2
	vw += 2

	inner := kw + vw + 1
	divider := "+" + strings.Repeat("-", kw) + "+" + strings.Repeat("-", vw) + "+\n"

	var b strings.Builder
	b.WriteString("+" + strings.Repeat("-", inner) + "+\n")
	b.WriteString("|" + runewidth.FillRight(runewidth.FillLeft(title, (inner+runewidth.StringWidth(title))/2), inner) + "|\n")
	b.WriteString(divider)
	for _, k := range keys {
		b.WriteString("| " + runewidth.FillRight(k, kw-2) + " | " + runewidth.FillRight(msg[k], vw-2) + " |\n")
	}
	b.WriteString(divider)
	return b.String()
}
