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

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/parlor"
	"github.com/zintix-labs/parlor/dto"
	v1 "github.com/zintix-labs/parlor/server/api/v1"
	"github.com/zintix-labs/parlor/server/netsvr"
	"github.com/zintix-labs/parlor/server/netsvr/middleware"
	"github.com/zintix-labs/parlor/server/svrcfg"
)

// RegisterRoutes 註冊 middleware、首頁與 v1 api。
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg, rt *parlor.Runtime) {
	registerMiddleware(svr, sCfg.Log)
	svr.Get("/", indexHandler(rt))
	registerV1API(svr, sCfg, rt)
}

func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.EchoRequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover(log))
	svr.Use(middleware.Compression)
}

func registerV1API(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg, rt *parlor.Runtime) {
	th := v1.NewTablesHandler(sCfg.Parlor)
	sh := v1.NewSessionHandler(rt, sCfg)
	sim := v1.NewSimHandler(sCfg.Parlor)

	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/tables", th.List)

		vOne.Post("/sessions", sh.Open)
		vOne.Get("/sessions/{sid}", sh.Get)
		vOne.Delete("/sessions/{sid}", sh.Drop)
		vOne.Post("/sessions/{sid}/tables/{table}/play", sh.Play)
		vOne.Get("/sessions/{sid}/tables/{table}/play", sh.Play)

		vOne.Post("/sim", sim.Sim)
		vOne.Post("/simbycfg", sim.SimByCfg)
		vOne.Post("/audit", sim.Audit)
	})
}

func indexHandler(rt *parlor.Runtime) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ents := rt.Parlor().All()
		idx := dto.Index{Service: "parlor", Tables: make([]string, len(ents)), Sessions: rt.Len()}
		for i, e := range ents {
			idx.Tables[i] = e.Name
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(idx)
	}
}
