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

package sampler

import (
	"fmt"
	"math"

	"github.com/zintix-labs/parlor/errs"
	"github.com/zintix-labs/parlor/sdk/core"
)

const maxLUTCap uint64 = 10_000_000

// LUT 查找表：把權重展開，索引 i 重複 w[i] 次，抽樣時直接取一格。
//
// 例：權重 [3,5,0] 展開為 [0,0,0,1,1,1,1,1]。
type LUT []int

// BuildLUT 根據權重列表建立查找表，負權重、全零或總和過大回傳 Fatal。
func BuildLUT[T Integers](src []T) (LUT, error) {
	acc, err := sum(src)
	if err != nil {
		return nil, err
	}
	if acc > maxLUTCap {
		return nil, errs.Fatalf("lut: total weight %d exceeds limit %d, use alias table instead", acc, maxLUTCap)
	}
	lut := make(LUT, 0, int(acc))
	for i, v := range src {
		for j := T(0); j < v; j++ {
			lut = append(lut, i)
		}
	}
	return lut, nil
}

// Pick 若 lut 為空，回傳 -1
func (l LUT) Pick(c *core.Core) int {
	return c.Pick(l)
}

func sum[T Integers](src []T) (uint64, error) {
	if len(src) == 0 {
		return 0, errs.NewFatal("sampler: empty weights")
	}
	acc := uint64(0)
	for _, v := range src {
		if v < 0 {
			return 0, errs.NewFatal("sampler: negative weight")
		}
		uv := uint64(v)
		if acc > math.MaxInt64-uv {
			return 0, errs.NewFatal("sampler: total weight overflow")
		}
		acc += uv
	}
	if acc == 0 {
		return 0, errs.NewFatal(fmt.Sprintf("sampler: all weights are zero %v", src))
	}
	return acc, nil
}
