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

package v1

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/parlor"
	"github.com/zintix-labs/parlor/dto"
	"github.com/zintix-labs/parlor/server/httperr"
	"github.com/zintix-labs/parlor/server/netsvr"
	"github.com/zintix-labs/parlor/server/svrcfg"
)

// ============================================================
// ** SessionHandler **
// ============================================================

type SessionHandler struct {
	rt  *parlor.Runtime
	cfg *svrcfg.SvrCfg
	log *slog.Logger
}

func NewSessionHandler(rt *parlor.Runtime, cfg *svrcfg.SvrCfg) *SessionHandler {
	return &SessionHandler{rt: rt, cfg: cfg, log: cfg.Log}
}

// Open POST /v1/sessions
func (sh *SessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	req := new(dto.OpenRequest)
	if err := decode(w, r, req); err != nil {
		fail(w, err)
		return
	}
	credits := sh.cfg.Credits
	if req.Credits > 0 {
		credits = req.Credits
	}
	opts := []parlor.SessionOption{parlor.WithCredits(credits)}
	if req.Seed != nil {
		opts = append(opts, parlor.WithSeed(*req.Seed))
	}
	s, err := sh.rt.Open(opts...)
	if err != nil {
		httperr.Log(sh.log, "session.open", err)
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.Snapshot())
}

// Get GET /v1/sessions/{sid}
func (sh *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := sh.rt.Get(netsvr.Param(r, "sid"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// Drop DELETE /v1/sessions/{sid}
func (sh *SessionHandler) Drop(w http.ResponseWriter, r *http.Request) {
	if err := sh.rt.Drop(netsvr.Param(r, "sid")); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Play POST|GET /v1/sessions/{sid}/tables/{table}/play
//
// POST body 是 game.Request，空 body 等同 {"action":"play"}；GET 走 query string。
// 牌桌拒絕回 400，並帶 notice。
func (sh *SessionHandler) Play(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, dto.MaxBody)
	}
	req, err := dto.DecodePlayRequest(r)
	if err != nil {
		fail(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), sh.cfg.PlayTimeout)
	defer cancel()

	sid := netsvr.Param(r, "sid")
	o, err := sh.rt.Play(ctx, sid, netsvr.Param(r, "table"), req)
	if err != nil {
		httperr.Log(sh.log, "session.play", err)
		httperr.Errs(w, err, parlor.Notice(err))
		return
	}
	resp := dto.NewPlayResponse(o)
	if r.URL.Query().Get("snapshot") == "1" {
		if s, err := sh.rt.Get(sid); err == nil {
			resp.Attach(s)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
