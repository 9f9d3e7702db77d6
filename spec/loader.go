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

package spec

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/zintix-labs/parlor/errs"
	"gopkg.in/yaml.v3"
)

// GetTableSettingByYAML 讀取 YAML 設定、補預設值並執行基本檢查後回傳。
func GetTableSettingByYAML(data []byte) (*TableSetting, error) {
	ts := &TableSetting{}
	if err := yaml.Unmarshal(data, ts); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal yaml")
	}
	if err := ts.init(); err != nil {
		return nil, errs.Wrap(err, "table setting initialized err")
	}
	return ts, nil
}

// GetTableSettingByJSON 同 GetTableSettingByYAML，來源為 JSON。
func GetTableSettingByJSON(data []byte) (*TableSetting, error) {
	ts := &TableSetting{}
	if err := json.Unmarshal(data, ts); err != nil {
		return nil, errs.Wrap(err, "can not unmarshal json")
	}
	if err := ts.init(); err != nil {
		return nil, errs.Wrap(err, "table setting initialized err")
	}
	return ts, nil
}

// GetTableSettingByExt 依副檔名選擇解析方式。
func GetTableSettingByExt(filename string, raw []byte) (*TableSetting, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return GetTableSettingByYAML(raw)
	case ".json":
		return GetTableSettingByJSON(raw)
	default:
		return nil, errs.Fatalf("unsupported config format: %q", filename)
	}
}

// DecodeFixed 把 ts.Fixed 轉成遊戲自己的型別。
// 拼錯或多寫的欄位直接報錯。
func DecodeFixed[T any](ts *TableSetting, out *T) error {
	bs, err := yaml.Marshal(ts.Fixed)
	if err != nil {
		return errs.Wrap(err, "spec.fixed: marshal failed")
	}
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	if err = dec.Decode(out); err != nil {
		return errs.WrapWithExtra(err, "spec.fixed: decode failed", ts.TableName)
	}
	return nil
}
