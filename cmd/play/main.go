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

// play 終端機互動遊玩：所有桌共用同一份餘額。
//
//	go run ./cmd/play -credits 1000
//	> slots
//	> dice select high
//	> dice
//	> poker draw 0 2 4
package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/zintix-labs/parlor"
	"github.com/zintix-labs/parlor/house"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/display"
	"github.com/zintix-labs/parlor/sdk/phase"
	"github.com/zintix-labs/parlor/server/logger"
)

func main() {
	credits := flag.Int("credits", 0, "starting credits, 0 for default")
	seed := flag.Int64("seed", -1, "int64 seed, negative for a random one")
	fast := flag.Bool("fast", false, "skip phase delays")
	logMode := flag.String("log-mode", "silence", "log mode: dev|prod|silence")
	flag.Parse()

	mode, err := logger.ParseMode(*logMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *seed < 0 {
		*seed = core.RandomSeed()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, *credits, *seed, *fast, mode); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, in io.Reader, out io.Writer, credits int, seed int64, fast bool, mode logger.LogMode) error {
	p, err := house.New()
	if err != nil {
		return err
	}
	con := display.NewConsole(out)
	// Session 的訊息與餘額先寫進 pending，階段動畫跑完才輸出
	var pending bytes.Buffer
	opts := []parlor.SessionOption{
		parlor.WithSeed(seed),
		parlor.WithSurfaces(display.NewConsole(&pending)),
		parlor.WithLogger(logger.NewWith(os.Stderr, mode)),
	}
	if credits > 0 {
		opts = append(opts, parlor.WithCredits(credits))
	}
	s, err := p.NewSession(opts...)
	if err != nil {
		return err
	}

	var clock phase.Clock = phase.Real{}
	if fast {
		clock = &phase.Instant{}
	}
	sch := phase.NewScheduler(clock)

	con.Banner("PARLOR", 40)
	fmt.Fprintf(out, "tables: %s\n", strings.Join(s.Tables(), " "))
	fmt.Fprintln(out, "type 'help' for commands, 'quit' to leave")
	con.Balance(s.Credits())

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		cmd, err := parseLine(sc.Text())
		if err != nil {
			con.Message(err.Error(), display.Info)
			continue
		}
		switch cmd.kind {
		case cmdNone:
			continue
		case cmdQuit:
			return nil
		case cmdHelp:
			fmt.Fprint(out, usage)
			continue
		case cmdBalance:
			con.Balance(s.Credits())
			continue
		}

		o, err := s.Play(ctx, cmd.table, cmd.req)
		if err != nil {
			// 拒絕的提示已經由 Session 送到 pending
			_, _ = pending.WriteTo(out)
			if !isRefusal(err) {
				con.Message(err.Error(), display.Lose)
			}
			continue
		}
		if len(o.Plan) > 1 {
			err := sch.Run(ctx, o.Plan, func(st phase.Step) {
				if st.Note != "" {
					fmt.Fprintf(out, "  .. %s\n", st.Note)
				}
			})
			if err != nil {
				return nil
			}
		}
		_, _ = pending.WriteTo(out)
	}
}
