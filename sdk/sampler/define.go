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

// Package sampler 提供牌桌使用的加權抽樣。
//
//   - LUT：權重總和小（例如拉霸符號權重 20/20/20/20/20/5/1），O(1) 抽樣只用一次 IntN。
//   - AliasTable：權重總和大時避免展開巨大切片，O(1) 抽樣用兩次 IntN。
//
// Build 會依權重總和自動挑選。
package sampler

import (
	"github.com/zintix-labs/parlor/sdk/core"
)

// Integers 定義所有底層實現為整數型別的集合
type Integers interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Picker 依權重回傳索引。
type Picker interface {
	Pick(c *core.Core) int
}

// lutThreshold 以下使用 LUT，超過改用 AliasTable。
const lutThreshold = 100_000

// Build 驗證權重後建立 Picker。
func Build[T Integers](weights []T) (Picker, error) {
	total, err := sum(weights)
	if err != nil {
		return nil, err
	}
	if total <= lutThreshold {
		lut, err := BuildLUT(weights)
		if err != nil {
			return nil, err
		}
		return lut, nil
	}
	ws := make([]int, len(weights))
	for i, w := range weights {
		ws[i] = int(w)
	}
	at, err := BuildAliasTable(ws)
	if err != nil {
		return nil, err
	}
	return at, nil
}
