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

// svr 啟動 parlor HTTP 服務。
//
//	go run ./cmd/svr -addr :5808 -log-mode dev -sessions 2048
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/zintix-labs/parlor/house"
	"github.com/zintix-labs/parlor/server"
	"github.com/zintix-labs/parlor/server/logger"
	"github.com/zintix-labs/parlor/server/svrcfg"
)

func main() {
	cfg, closeLog, err := loadConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	err = server.Run(context.Background(), cfg)
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type config struct {
	Addr        string
	LogMode     string
	LogBuf      int
	MaxSessions int
	Credits     int
	PlayTimeout time.Duration
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, func(), error) {
	cfg := new(config)
	flag.StringVar(&cfg.Addr, "addr", "", "listen address, default :5808")
	flag.StringVar(&cfg.LogMode, "log-mode", "dev", "log mode: dev|prod|silence")
	flag.IntVar(&cfg.LogBuf, "log-buf", 4096, "async log queue size")
	flag.IntVar(&cfg.MaxSessions, "sessions", svrcfg.DefaultMaxSessions, "max concurrent sessions")
	flag.IntVar(&cfg.Credits, "credits", 0, "starting credits of a new session, 0 for default")
	flag.DurationVar(&cfg.PlayTimeout, "play-timeout", 2*time.Second, "deadline of a single play request")
	flag.Parse()

	mode, err := logger.ParseMode(cfg.LogMode)
	if err != nil {
		return nil, nil, err
	}
	log, ah := logger.NewAsync(cfg.LogBuf, mode)

	p, err := house.New()
	if err != nil {
		ah.Close()
		return nil, nil, err
	}
	sCfg := &svrcfg.SvrCfg{
		Log:         log,
		Addr:        cfg.Addr,
		MaxSessions: cfg.MaxSessions,
		Credits:     cfg.Credits,
		PlayTimeout: cfg.PlayTimeout,
		Parlor:      p,
	}
	return sCfg, ah.Close, nil
}
