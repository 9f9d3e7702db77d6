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

package stats

import "sync"

const (
	maxLutMult int = 2000
	maxMult    int = 10000
)

type WinBuckets struct {
	mu     sync.Mutex
	bounds []int
	labels []string
	byUnit map[int]*WinBucket
}

// WinBucket 某個押注單位下：派彩 -> 分桶索引，O(1)
type WinBucket struct {
	lut     []int
	lutMax  int
	capWin  int
	overIdx int
	maxIdx  int
}

// Buckets
//
// 贏倍區間: [0,0], (0,1), [1,2), [2,5), ..., [2000,10000), [10000, +inf)
// 負派彩（例如街機的炸彈）一律落在 [0,0]。
var Buckets = &WinBuckets{
	bounds: []int{0, 1, 2, 5, 10, 20, 50, 100, 300, 500, 1000, 2000, 10000},
	labels: []string{"[0,0]", "(0,1)", "[1,2)", "[2,5)", "[5,10)", "[10,20)", "[20,50)", "[50,100)", "[100,300)", "[300,500)", "[500,1000)", "[1000,2000)", "[2000,10000)", "[10000,+inf)"},
	byUnit: make(map[int]*WinBucket),
}

func (b *WinBuckets) WinBucketStr() []string {
	return b.labels
}

// GetBucketByBetUnit 建過的押注單位直接重用，可併發呼叫。
func (b *WinBuckets) GetBucketByBetUnit(bu int) *WinBucket {
	bu = max(bu, 1)
	b.mu.Lock()
	defer b.mu.Unlock()
	if wb, ok := b.byUnit[bu]; ok {
		return wb
	}
	wb := b.build(bu)
	b.byUnit[bu] = wb
	return wb
}

func (b *WinBuckets) build(bu int) *WinBucket {
	edges := make([]int, len(b.bounds))
	for i, v := range b.bounds {
		edges[i] = bu * v
	}
	lutMax := bu * maxLutMult
	lut := make([]int, lutMax)
	idx, last := 1, len(edges)-1
	for w := 1; w < lutMax; w++ {
		for idx < last && w >= edges[idx] {
			idx++
		}
		lut[w] = idx
	}
	return &WinBucket{
		lut:     lut,
		lutMax:  lutMax,
		capWin:  bu * maxMult,
		overIdx: last,
		maxIdx:  len(edges),
	}
}

func (wb *WinBucket) Index(win int) int {
	switch {
	case win <= 0:
		return 0
	case win >= wb.capWin:
		return wb.maxIdx
	case win >= wb.lutMax:
		return wb.overIdx
	default:
		return wb.lut[win]
	}
}
