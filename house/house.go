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

// Package house 內建的賭場：七張桌的設定檔加上七種牌桌邏輯，cmd 與測試都從這裡取。
package house

import (
	"github.com/zintix-labs/parlor"
	"github.com/zintix-labs/parlor/configs"
	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/games"
	"github.com/zintix-labs/parlor/sdk/core"
	"github.com/zintix-labs/parlor/server/logger"
	"github.com/zintix-labs/parlor/server/svrcfg"
)

// New 以預設 PCG64 亂數工廠組裝並 Freeze
func New() (*parlor.Parlor, error) {
	return NewWithFactory(core.Default())
}

// NewWithFactory 測試時可換成腳本化的亂數
func NewWithFactory(cf core.PRNGFactory) (*parlor.Parlor, error) {
	p, err := parlor.NewAuto(cf, parlor.Configs(configs.FS), parlor.Logics(games.Logics))
	if err != nil {
		return nil, errs.Wrap(err, "new parlor failed")
	}
	return p, nil
}

// NewServerConfig addr 為空時使用預設 :5808
func NewServerConfig(addr string, mode logger.LogMode, maxSessions int) (*svrcfg.SvrCfg, error) {
	p, err := New()
	if err != nil {
		return nil, err
	}
	return &svrcfg.SvrCfg{
		Log:         logger.New(mode),
		Addr:        addr,
		MaxSessions: maxSessions,
		Parlor:      p,
	}, nil
}
