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
	"encoding/json"
	"errors"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/zintix-labs/parlor"
	"github.com/zintix-labs/parlor/corefmt"
	"github.com/zintix-labs/parlor/house"
	"github.com/zintix-labs/parlor/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var headline = color.New(color.FgGreen, color.Bold)

// execute 解析設定並分支：單桌模擬 / 多玩家模擬 / 稽核
func execute() {
	cfg.valid()

	p, err := house.New()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.audit > 0 {
		runAudit(p)
		return
	}
	s, err := p.NewSimulatorWithSeed(cfg.game, cfg.seed)
	if err != nil {
		log.Fatal(err)
	}
	pr := message.NewPrinter(language.English)
	show := cfg.output == "table"

	if cfg.player == 1 {
		headline.Println(pr.Sprintf("[TABLE:%s] [WORKERS:%d] [ROUNDS:%d] [SEED:%d]", cfg.game, cfg.worker, cfg.worker*cfg.rounds, cfg.seed))
		st, used, err := s.SimMP(cfg.rounds, cfg.worker, show)
		if err != nil {
			log.Fatal(err)
		}
		report(st, nil, used.Milliseconds())
		if show {
			st.StdOut(used)
		}
		return
	}

	headline.Println(pr.Sprintf("[TABLE:%s] [WORKERS:%d] [PLAYERS:%d BETS:%d ROUNDS:%d] [SEED:%d]", cfg.game, cfg.worker, cfg.player, cfg.bets, cfg.rounds, cfg.seed))
	st, est, used, err := s.SimPlayers(cfg.worker, cfg.player, cfg.bets, cfg.rounds, show)
	if err != nil {
		log.Fatal(err)
	}
	report(st, est, used.Milliseconds())
	if show {
		st.StdOut(used)
		if err := est.Write(os.Stdout); err != nil {
			log.Fatal(err)
		}
	}
}

// report json / yaml 輸出；table 由 StdOut 處理
func report(st *stats.StatReport, est *stats.EstimatorPlayers, usedMs int64) {
	switch cfg.output {
	case "json":
		out := struct {
			Seed      int64                   `json:"seed"`
			Stats     *stats.StatReport       `json:"stats"`
			Estimator *stats.EstimatorPlayers `json:"est,omitempty"`
			UsedTime  int64                   `json:"used_ms"`
		}{cfg.seed, st, est, usedMs}
		st.Done()
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			log.Fatal(err)
		}
	case "yaml":
		if err := st.WriteWith(os.Stdout, &stats.YAMLStatReportRender{}); err != nil {
			log.Fatal(err)
		}
		if est != nil {
			if err := (&stats.YAMLEstimatorRender{}).Write(os.Stdout, est); err != nil {
				log.Fatal(err)
			}
		}
	}
}

// runAudit -snap 指向的檔案存在時重播，否則從新桌開始並把 Before 快照寫進去。
func runAudit(p *parlor.Parlor) {
	a, err := p.NewAuditor(cfg.game, cfg.seed)
	if err != nil {
		log.Fatal(err)
	}
	var rep parlor.AuditReport
	raw, rerr := readSnap(cfg.snapFile)
	switch {
	case rerr == nil && raw != nil:
		rep, err = a.Replay(corefmt.EncodeBase64URL(raw), cfg.audit)
	case rerr != nil:
		log.Fatal(rerr)
	default:
		rep, err = a.Rounds(cfg.audit)
	}
	if err != nil {
		log.Fatal(err)
	}
	if cfg.snapFile != "" && raw == nil {
		if err := writeSnap(cfg.snapFile, rep.Before); err != nil {
			log.Fatal(err)
		}
	}
	pr := message.NewPrinter(language.English)
	headline.Println(pr.Sprintf("[AUDIT:%s] [ROUNDS:%d] [BET:%d] [WIN:%d] [RTP:%s]", cfg.game, rep.Rounds, rep.TotalBet, rep.TotalWin, stats.Percent(rep.Rtp/100)))
	pr.Printf("before: %s\nafter:  %s\n", rep.Before, rep.After)
	if cfg.output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			log.Fatal(err)
		}
	}
}

// readSnap 檔案不存在時回傳 nil, nil
func readSnap(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return corefmt.ReadFrame(bytes.NewReader(b), 0)
}

func writeSnap(path string, b64 string) error {
	raw, err := corefmt.DecodeBase64URL(b64)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := corefmt.WriteFrame(&buf, raw); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func (cfg *config) valid() {
	pr := message.NewPrinter(language.English)
	if cfg.worker < 1 {
		log.Fatal("value err : workers must > 0")
	}
	if cfg.player < 1 {
		log.Fatal("value err : player must > 0")
	}
	if cfg.player > 100_000 {
		pr.Printf("too many players: %d resized to 100k players\n", cfg.player)
		cfg.player = 100_000
	}
	if cfg.player > 1 && cfg.bets < 1 {
		log.Fatal("value err : bets must >= 1")
	}
	if cfg.rounds < 1 {
		log.Fatal("value err : rounds must > 0")
	}
	// 一位玩家 15k 局已經是長期體驗，再多直接看單桌模擬
	if cfg.player > 1 && cfg.rounds > 15_000 {
		pr.Printf("too many rounds per player: %d resized to 15k\n", cfg.rounds)
		cfg.rounds = 15_000
	}
	switch cfg.output {
	case "table", "json", "yaml":
	default:
		log.Fatal("value err : -o must be table, json or yaml")
	}
}
