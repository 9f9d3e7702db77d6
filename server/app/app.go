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

// Package app 管理長時間運行的元件：一起啟動，收到訊號或任一元件結束時一起關閉。
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const DefaultShutdown = 5 * time.Second

// Component 長時間運行的元件。Run 會阻塞到元件結束；Shutdown 要在 ctx 期限內收尾。
type Component interface {
	Run() error
	Shutdown(ctx context.Context) error
}

// Closer 關機最後階段呼叫（例如 Runtime 與 async logger）
type Closer func()

type App struct {
	comps   []Component
	closers []Closer
	log     *slog.Logger
	grace   time.Duration
}

func New(log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	return &App{log: log, grace: DefaultShutdown}
}

func NewWith(log *slog.Logger, comps ...Component) *App {
	a := New(log)
	for _, c := range comps {
		a.Register(c)
	}
	return a
}

func (a *App) Register(c Component) {
	a.comps = append(a.comps, c)
}

// OnClose 依註冊的反序執行
func (a *App) OnClose(fn Closer) {
	a.closers = append(a.closers, fn)
}

func (a *App) SetGrace(d time.Duration) {
	if d > 0 {
		a.grace = d
	}
}

// Run 阻塞到 SIGINT/SIGTERM、ctx 結束，或任一元件 Run 回傳。
// 訊號與 ctx 結束視為正常關機回 nil；元件先結束時回傳它的錯誤（http.ErrServerClosed 除外）。
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) { errc <- c.Run() }(c)
	}

	var err error
	select {
	case <-ctx.Done():
		a.log.Info("app.shutdown", slog.String("reason", "signal"))
	case err = <-errc:
		a.log.Info("app.shutdown", slog.String("reason", "component stopped"), slog.Any("err", err))
	}
	a.shutdown()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.grace)
	defer cancel()
	for _, c := range a.comps {
		if err := c.Shutdown(ctx); err != nil {
			a.log.Error("app.shutdown", slog.Any("err", err))
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
