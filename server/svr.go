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

// Package server 把 Parlor 組成 HTTP 服務。
//
// 所有依賴（logger、Parlor、上限）都由 SvrCfg 注入；server 不讀檔也不讀環境變數。
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/parlor"
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/server/api"
	"github.com/zintix-labs/parlor/server/app"
	"github.com/zintix-labs/parlor/server/netsvr"
	"github.com/zintix-labs/parlor/server/svrcfg"
)

// Build 驗證設定、建立 Runtime 並註冊路由，回傳尚未啟動的 server。測試可直接拿 Handler()。
func Build(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) (netsvr.NetSvr, *parlor.Runtime, error) {
	if err := sCfg.Valid(); err != nil {
		return nil, nil, err
	}
	if svr == nil {
		svr = netsvr.NewChiServer(sCfg.Addr, netsvr.DefaultTimeouts)
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		return nil, nil, errs.NewFatal("chi server is not ready")
	}
	rt, err := sCfg.Parlor.BuildRuntime(sCfg.MaxSessions, sCfg.Log)
	if err != nil {
		return nil, nil, errs.Wrap(err, "build runtime failed")
	}
	api.RegisterRoutes(svr, sCfg, rt)
	return svr, rt, nil
}

// Run 組裝並阻塞執行，直到收到訊號或 server 停止。
func Run(ctx context.Context, sCfg *svrcfg.SvrCfg) error {
	return RunWithSvr(ctx, sCfg, nil)
}

// RunWithSvr 同 Run，但使用呼叫端注入的 NetSvr（例如自訂 listener 或 timeout）。
func RunWithSvr(ctx context.Context, sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	svr, rt, err := Build(sCfg, svr)
	if err != nil {
		// logger 可能也沒組好，stderr 一定看得到
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	a := app.NewWith(sCfg.Log, svr)
	a.OnClose(func() { rt.Close() })

	if c, ok := svr.(*netsvr.ChiAdapter); ok {
		sCfg.Log.Info("[parlor] listening", slog.String("addr", c.Address()))
	}
	if err := a.Run(ctx); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}
