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

// run 命令列模擬器：對一張桌跑大量局數，輸出 RTP 報表與玩家體驗估計。
//
//	go run ./cmd/run -game slots -rounds 1000000 -worker 8
//	go run ./cmd/run -game roulette -player 10000 -bets 100 -rounds 500 -o yaml
package main

import (
	"flag"
	"log"

	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/perf"
)

var cfg = new(config)

type config struct {
	game      string
	worker    int
	player    int
	bets      int
	rounds    int
	seed      int64
	output    string
	pprofmode string
	audit     int
	snapFile  string
}

func bindVar() {
	flag.StringVar(&cfg.game, "game", "slots", "table name")
	flag.IntVar(&cfg.worker, "worker", 1, "number of workers")
	flag.IntVar(&cfg.player, "player", 1, "number of players (>1 simulates player sessions)")
	flag.IntVar(&cfg.bets, "bets", 100, "initial bankroll per player, in bets")
	flag.IntVar(&cfg.rounds, "rounds", 1_000_000, "rounds per worker, or per player")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed, negative for a random one")
	flag.StringVar(&cfg.output, "o", "table", "report format: table|json|yaml")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")
	flag.IntVar(&cfg.audit, "audit", 0, "audit N rounds instead of simulating")
	flag.StringVar(&cfg.snapFile, "snap", "", "audit: write the core snapshot to this file, or replay from it when it exists")
	flag.Parse()

	if cfg.seed < 0 {
		cfg.seed = core.RandomSeed()
	}
}

func main() {
	bindVar()
	if err := perf.Run(execute, cfg.pprofmode); err != nil {
		log.Fatal(err)
	}
}
