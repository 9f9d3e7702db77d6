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

// Package catalog 牌桌目錄：table id / 名稱 -> 設定檔。
//
// 設定檔一律來自 fs.FS（go:embed 或 os.DirFS），目錄必須是平的，不允許子資料夾。
package catalog

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/spec"
)

var (
	ErrDupID   = errs.NewFatal("duplicate table id")
	ErrDupName = errs.NewFatal("duplicate table name")
)

type Entry struct {
	GID        spec.GID
	Name       string
	Logic      spec.LogicKey
	ConfigName string
}

// Summary 對外公開的牌桌摘要（/v1/tables）
type Summary struct {
	GID     spec.GID      `json:"gid"     yaml:"gid"`
	Name    string        `json:"name"    yaml:"name"`
	Logic   spec.LogicKey `json:"logic"   yaml:"logic"`
	MinBet  int           `json:"min_bet" yaml:"min_bet"`
	Step    int           `json:"step"    yaml:"step"`
	Initial int           `json:"initial" yaml:"initial"`
}

type Catalog struct {
	byID   map[spec.GID]Entry
	byName map[string]Entry
	ids    []spec.GID
	files  map[string]struct{} // 已註冊的設定檔名
	src    *multiFS
	frozen bool
}

func New(cfg ...fs.FS) (*Catalog, error) {
	m, err := newMultiFS(cfg...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	return &Catalog{
		byID:   map[spec.GID]Entry{},
		byName: map[string]Entry{},
		ids:    make([]spec.GID, 0, 8),
		files:  map[string]struct{}{},
		src:    m,
	}, nil
}

// Register 一次寫入多筆；任何一筆不合法就全部不寫。
func (c *Catalog) Register(ents ...Entry) error {
	if c.frozen {
		return errs.NewWarn("can not register when catalog already frozen")
	}
	batchID := map[spec.GID]struct{}{}
	batchName := map[string]struct{}{}
	batchFile := map[string]struct{}{}
	for i := range ents {
		e := &ents[i]
		e.Name = normName(e.Name)
		if e.Name == "" {
			return errs.NewFatal("table name required")
		}
		if err := validFileName(e.ConfigName); err != nil {
			return err
		}
		if _, ok := c.src.index[e.ConfigName]; !ok {
			return errs.Fatalf("config file not found: %s", e.ConfigName)
		}
		if _, ok := c.byID[e.GID]; ok {
			return ErrDupID
		}
		if _, ok := batchID[e.GID]; ok {
			return ErrDupID
		}
		if _, ok := c.byName[e.Name]; ok {
			return ErrDupName
		}
		if _, ok := batchName[e.Name]; ok {
			return ErrDupName
		}
		_, used := c.files[e.ConfigName]
		_, dup := batchFile[e.ConfigName]
		if used || dup {
			return errs.Fatalf("duplicate config name: %s", e.ConfigName)
		}
		batchID[e.GID] = struct{}{}
		batchName[e.Name] = struct{}{}
		batchFile[e.ConfigName] = struct{}{}
	}
	for _, e := range ents {
		c.files[e.ConfigName] = struct{}{}
		c.byID[e.GID] = e
		c.byName[e.Name] = e
		c.ids = append(c.ids, e.GID)
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	return nil
}

// Scan 解析每個來源裡的設定檔，依檔名排序回傳對應的 Entry（不寫入）。
//
// 任何一個檔案讀取或解析失敗立即回傳 Fatal。
func (c *Catalog) Scan() ([]Entry, error) {
	names := make([]string, 0, len(c.src.index))
	for n := range c.src.index {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]Entry, 0, len(names))
	for _, n := range names {
		ts, err := c.read(n)
		if err != nil {
			return nil, errs.WrapWithExtra(err, "parse table setting failed", n)
		}
		out = append(out, Entry{
			GID:        ts.TableID,
			Name:       ts.TableName,
			Logic:      ts.LogicKey,
			ConfigName: n,
		})
	}
	return out, nil
}

func (c *Catalog) GetByID(id spec.GID) (Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

func (c *Catalog) GetByName(name string) (Entry, bool) {
	e, ok := c.byName[normName(name)]
	return e, ok
}

func (c *Catalog) IDs() []spec.GID {
	if len(c.ids) == 0 {
		return nil
	}
	return append([]spec.GID(nil), c.ids...)
}

func (c *Catalog) All() []Entry {
	out := make([]Entry, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

// TableSettingById
//
// 每次呼叫都重新讀檔解析，回傳的設定由呼叫端獨佔。
func (c *Catalog) TableSettingById(id spec.GID) (*spec.TableSetting, error) {
	e, ok := c.GetByID(id)
	if !ok {
		return nil, errs.Reject(errs.ErrNotFound, "catalog", fmt.Sprintf("id=%d", id))
	}
	return c.read(e.ConfigName)
}

// TableSettingByName 名稱不分大小寫
func (c *Catalog) TableSettingByName(name string) (*spec.TableSetting, error) {
	e, ok := c.GetByName(name)
	if !ok {
		return nil, errs.Reject(errs.ErrNotFound, "catalog", "name="+name)
	}
	return c.read(e.ConfigName)
}

func (c *Catalog) read(file string) (*spec.TableSetting, error) {
	src, ok := c.src.get(file)
	if !ok {
		return nil, errs.NewWarn("file name does not exist in catalog")
	}
	raw, err := fs.ReadFile(src, file)
	if err != nil {
		return nil, errs.Wrap(err, "catalog read file error")
	}
	return spec.GetTableSettingByExt(file, raw)
}

func normName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isConfigFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")
}

func validFileName(file string) error {
	if file == "" {
		return errs.NewFatal("empty config filename")
	}
	if strings.ContainsAny(file, `/\:`) {
		return errs.Fatalf("invalid config filename: %q (must be a basename)", file)
	}
	if !isConfigFile(file) {
		return errs.Fatalf("invalid config filename: %q (must end with .yaml, .yml, or .json)", file)
	}
	if strings.HasPrefix(file, ".") {
		return errs.Fatalf("invalid config filename: %q (cannot start with '.')", file)
	}
	return nil
}

// multiFS 多個平面設定來源；同名檔案跨來源重複直接視為錯誤。
type multiFS struct {
	src   []fs.FS
	index map[string]int
}

func newMultiFS(src ...fs.FS) (*multiFS, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("no fs provided")
	}
	m := &multiFS{src: src, index: make(map[string]int, 16)}
	for i, s := range src {
		if s == nil {
			return nil, errs.Fatalf("fs[%d] is nil", i)
		}
		err := fs.WalkDir(s, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == "." {
					return nil
				}
				return errs.Fatalf("config FS must be flat (no subdirectories): %q", path)
			}
			if strings.HasPrefix(path, ".") || !isConfigFile(path) {
				return nil
			}
			if prev, ok := m.index[path]; ok {
				return errs.Fatalf("duplicate config %q in fs[%d] and fs[%d]", path, prev, i)
			}
			m.index[path] = i
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *multiFS) get(name string) (fs.FS, bool) {
	if i, ok := m.index[name]; ok {
		return m.src[i], true
	}
	return nil, false
}
