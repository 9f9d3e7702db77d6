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

// Package parlor 把牌桌設定、牌桌邏輯與亂數工廠組裝成可執行的賭場。
//
// Parlor 持有三個必需的地基：
//  1. Catalog：牌桌目錄，定義有哪些牌桌以及各自的設定檔名稱。
//  2. LogicRegistry：LogicKey -> 牌桌 builder。
//  3. PRNGFactory：亂數工廠，同一個 seed 一定得到同一條序列。
//
// 使用流程分成兩階段：
//   - 組裝階段：建立 catalog、合併 registries、掃描設定檔並檢查重複與缺漏，最後 Freeze。
//   - 執行階段：開 Session（一個錢包 + 每種遊戲一張桌）或 Simulator（RTP 稽核）。
//
//	p, _ := parlor.NewAuto(core.Default(), parlor.Configs(configs.FS), parlor.Logics(games.Logics))
//	s, _ := p.NewSession()
//	o, _ := s.Play(ctx, "slots", &game.Request{Action: game.ActPlay})
package parlor

import (
	"io/fs"

	"github.com/zintix-labs/parlor/catalog"
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/sdk/game"
	"github.com/zintix-labs/parlor/spec"
)

// Configs 把一或多個設定檔來源打包成 New() 的參數（go:embed 或 os.DirFS 都可以）。
func Configs(cfgs ...fs.FS) []fs.FS {
	return cfgs
}

// Logics 把一或多個邏輯註冊表打包成 New() 的參數；重複的 LogicKey 在 New() 直接失敗。
func Logics(regs ...*game.LogicRegistry) []*game.LogicRegistry {
	return regs
}

type Parlor struct {
	cat *catalog.Catalog
	reg *game.LogicRegistry
	cf  core.PRNGFactory
	sum []catalog.Summary
}

// New 組裝階段入口。cf、cfgs、logics 缺一不可。
func New(cf core.PRNGFactory, cfgs []fs.FS, logics []*game.LogicRegistry) (*Parlor, error) {
	if cf == nil {
		return nil, errs.NewFatal("prng factory required")
	}
	if len(cfgs) == 0 {
		return nil, errs.NewFatal("configs required")
	}
	if len(logics) == 0 {
		return nil, errs.NewFatal("logic registry required")
	}
	cat, err := catalog.New(cfgs...)
	if err != nil {
		return nil, err
	}
	reg, err := game.MergeLogicRegistry(logics...)
	if err != nil {
		return nil, err
	}
	return &Parlor{cat: cat, reg: reg, cf: cf}, nil
}

// NewAuto 註冊所有設定檔並 Freeze，直接進入執行階段。
func NewAuto(cf core.PRNGFactory, cfgs []fs.FS, logics []*game.LogicRegistry) (*Parlor, error) {
	p, err := New(cf, cfgs, logics)
	if err != nil {
		return nil, err
	}
	if err := p.RegisterAll(); err != nil {
		return nil, err
	}
	p.Freeze()
	return p, nil
}

func (p *Parlor) Register(ents ...catalog.Entry) error {
	for _, e := range ents {
		if !p.reg.IsExist(e.Logic) {
			return errs.Fatalf("logic not registered: logic_key=%s (config=%s)", e.Logic, e.ConfigName)
		}
	}
	return p.cat.Register(ents...)
}

// RegisterAll 掃描所有設定檔，全部解析成功且邏輯都存在時才一次寫入 catalog。
func (p *Parlor) RegisterAll() error {
	ents, err := p.cat.Scan()
	if err != nil {
		return err
	}
	if len(ents) == 0 {
		return errs.NewFatal("no config files found to register")
	}
	return p.Register(ents...)
}

func (p *Parlor) Freeze() {
	p.cat.Freeze()
}

func (p *Parlor) EntryById(id spec.GID) (catalog.Entry, bool) {
	return p.cat.GetByID(id)
}

func (p *Parlor) EntryByName(name string) (catalog.Entry, bool) {
	return p.cat.GetByName(name)
}

func (p *Parlor) IDs() []spec.GID {
	return p.cat.IDs()
}

func (p *Parlor) All() []catalog.Entry {
	return p.cat.All()
}

// Summary 牌桌摘要，Freeze 後才可呼叫，結果會被快取。
func (p *Parlor) Summary() ([]catalog.Summary, error) {
	if !p.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	if p.sum != nil {
		return p.sum, nil
	}
	out := make([]catalog.Summary, 0, len(p.cat.IDs()))
	for _, e := range p.cat.All() {
		ts, err := p.cat.TableSettingById(e.GID)
		if err != nil {
			return nil, errs.Wrap(err, "parse table setting failed")
		}
		out = append(out, catalog.Summary{
			GID:     e.GID,
			Name:    ts.TableName,
			Logic:   ts.LogicKey,
			MinBet:  ts.Wager.MinBet,
			Step:    ts.Wager.Step,
			Initial: ts.Wager.Initial,
		})
	}
	p.sum = out
	return p.sum, nil
}

// TableSetting 依名稱取得一份新解析的設定
func (p *Parlor) TableSetting(name string) (*spec.TableSetting, error) {
	if !p.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	return p.cat.TableSettingByName(name)
}

// NewSeat 以 crypto/rand seed 開一張桌
func (p *Parlor) NewSeat(name string) (*Seat, error) {
	return p.NewSeatWithSeed(name, core.RandomSeed())
}

// NewSeatWithSeed 同一張桌 + 同一個 seed 得到同一串結果
func (p *Parlor) NewSeatWithSeed(name string, seed int64) (*Seat, error) {
	ts, err := p.TableSetting(name)
	if err != nil {
		return nil, err
	}
	return newSeat(ts, p.reg, p.cf, seed)
}

func (p *Parlor) NewSimulator(name string) (*Simulator, error) {
	return p.NewSimulatorWithSeed(name, core.RandomSeed())
}

func (p *Parlor) NewSimulatorWithSeed(name string, seed int64) (*Simulator, error) {
	ts, err := p.TableSetting(name)
	if err != nil {
		return nil, err
	}
	return newSimulator(ts, p.reg, p.cf, seed)
}

// NewSimulatorByYAML 以一份臨時設定（例如調整過的賠率）模擬，桌名與 id 必須對得上 catalog。
func (p *Parlor) NewSimulatorByYAML(raw []byte, seed int64) (*Simulator, error) {
	if !p.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	ts, err := spec.GetTableSettingByYAML(raw)
	if err != nil {
		return nil, err
	}
	if err := p.validCfg(ts); err != nil {
		return nil, err
	}
	return newSimulator(ts, p.reg, p.cf, seed)
}

func (p *Parlor) validCfg(ts *spec.TableSetting) error {
	byID, ok := p.cat.GetByID(ts.TableID)
	if !ok {
		return errs.Reject(errs.ErrNotFound, "parlor", "table id")
	}
	byName, ok := p.cat.GetByName(ts.TableName)
	if !ok {
		return errs.Reject(errs.ErrNotFound, "parlor", "table name")
	}
	if byID.GID != byName.GID {
		return errs.NewWarn("table id is not matched table name")
	}
	if !p.reg.IsExist(ts.LogicKey) {
		return errs.NewWarn("table logic not exist")
	}
	return nil
}
