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
	"bytes"
	"net/http"

	"github.com/zintix-labs/parlor"
	"github.com/zintix-labs/parlor/dto"
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/stats"
)

type SimHandler struct {
	pb *parlor.Parlor
}

func NewSimHandler(pb *parlor.Parlor) *SimHandler {
	return &SimHandler{pb: pb}
}

// Sim POST /v1/sim
//
// players > 0 時走玩家模擬（每位玩家 bets 注本金）；format 為 yaml 或 table 時回傳文字。
func (sh *SimHandler) Sim(w http.ResponseWriter, r *http.Request) {
	req := new(dto.SimRequest)
	if err := decode(w, r, req); err != nil {
		fail(w, err)
		return
	}
	if err := req.Valid(); err != nil {
		fail(w, err)
		return
	}
	seed := dto.SeedOr(req.Seed)
	sim, err := sh.pb.NewSimulatorWithSeed(req.Table, seed)
	if err != nil {
		fail(w, err)
		return
	}
	var resp dto.SimResponse
	if req.Players > 0 {
		st, est, used, err := sim.SimPlayers(req.Workers, req.Players, req.Bets, req.Rounds, false)
		if err != nil {
			fail(w, errs.Wrap(err, "simulate players failed"))
			return
		}
		resp = dto.NewSimResponse(seed, st, est, used)
	} else {
		st, used, err := sim.SimMP(req.Rounds, req.Workers, false)
		if err != nil {
			fail(w, errs.Wrap(err, "simulate failed"))
			return
		}
		resp = dto.NewSimResponse(seed, st, nil, used)
	}
	writeReport(w, req.Format, &resp)
}

// SimByCfg POST /v1/simbycfg，cfg 為一份完整的牌桌設定（YAML 或 JSON 皆可）
func (sh *SimHandler) SimByCfg(w http.ResponseWriter, r *http.Request) {
	req := new(dto.CfgRequest)
	if err := decode(w, r, req); err != nil {
		fail(w, err)
		return
	}
	if err := req.Valid(); err != nil {
		fail(w, err)
		return
	}
	seed := dto.SeedOr(req.Seed)
	sim, err := sh.pb.NewSimulatorByYAML([]byte(req.Cfg), seed)
	if err != nil {
		fail(w, err)
		return
	}
	st, used, err := sim.Sim(req.Rounds, false)
	if err != nil {
		fail(w, errs.Wrap(err, "simulate failed"))
		return
	}
	resp := dto.NewSimResponse(seed, st, nil, used)
	writeReport(w, req.Format, &resp)
}

// Audit POST /v1/audit：before 為空時從新桌開始，否則重播該快照。
func (sh *SimHandler) Audit(w http.ResponseWriter, r *http.Request) {
	req := new(dto.AuditRequest)
	if err := decode(w, r, req); err != nil {
		fail(w, err)
		return
	}
	if err := req.Valid(); err != nil {
		fail(w, err)
		return
	}
	a, err := sh.pb.NewAuditor(req.Table, dto.SeedOr(req.Seed))
	if err != nil {
		fail(w, err)
		return
	}
	var rep parlor.AuditReport
	if req.Before != "" {
		rep, err = a.Replay(req.Before, req.Rounds)
	} else {
		rep, err = a.Rounds(req.Rounds)
	}
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// writeReport 先寫進 buffer，避免寫到一半才失敗
func writeReport(w http.ResponseWriter, format string, resp *dto.SimResponse) {
	switch format {
	case "", "json":
		writeJSON(w, http.StatusOK, resp)
		return
	}
	ren := stats.RenderOf(format)
	if ren == nil {
		fail(w, errs.Warnf("unknown format %q (json|yaml|table)", format))
		return
	}
	var b bytes.Buffer
	if err := resp.Stats.WriteWith(&b, ren); err != nil {
		fail(w, errs.Wrap(err, "render report failed"))
		return
	}
	if resp.Estimator != nil {
		var er stats.EstimatorRender = &stats.TableEstimatorRender{}
		if format != "table" {
			er = &stats.YAMLEstimatorRender{}
		}
		if err := er.Write(&b, resp.Estimator); err != nil {
			fail(w, errs.Wrap(err, "render estimator failed"))
			return
		}
	}
	ct := "text/plain; charset=utf-8"
	if format == "yaml" || format == "yml" {
		ct = "application/yaml"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Bytes())
}
