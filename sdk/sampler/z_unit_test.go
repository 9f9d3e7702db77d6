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
	"math"
	"slices"
	"testing"

	"github.com/zintix-labs/parlor/sdk/core"
)

// checkDistribution 驗證抽樣結果的分佈是否符合預期權重
func checkDistribution(t *testing.T, name string, weights []int, p Picker, samples int, tolerance float64) {
	t.Helper()
	c := core.New(core.Default().New(42))
	totalW := 0
	for _, w := range weights {
		totalW += w
	}
	counts := make([]int, len(weights))
	for i := 0; i < samples; i++ {
		counts[p.Pick(c)]++
	}
	for i, w := range weights {
		want := float64(w) / float64(totalW)
		got := float64(counts[i]) / float64(samples)
		if math.Abs(want-got) > tolerance {
			t.Errorf("[%s] index %d: expected prob %.4f, got %.4f", name, i, want, got)
		}
	}
}

func TestBuildLUTExpands(t *testing.T) {
	lut, err := BuildLUT([]int{3, 5, 0})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !slices.Equal(lut, LUT{0, 0, 0, 1, 1, 1, 1, 1}) {
		t.Fatalf("unexpected lut: %v", lut)
	}
}

func TestBuildRejectsBadWeights(t *testing.T) {
	cases := map[string][]int{
		"empty":    {},
		"zero":     {0, 0},
		"negative": {1, -1},
	}
	for name, ws := range cases {
		if _, err := Build(ws); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestBuildChoosesByTotal(t *testing.T) {
	small, err := Build([]int{20, 20, 20, 20, 20, 5, 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := small.(LUT); !ok {
		t.Fatalf("small totals should build a LUT, got %T", small)
	}
	big, err := Build([]int{500_000, 250_000, 250_000})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := big.(*AliasTable); !ok {
		t.Fatalf("large totals should build an alias table, got %T", big)
	}
}

func TestDistribution(t *testing.T) {
	slotWeights := []int{20, 20, 20, 20, 20, 5, 1}
	lut, _ := Build(slotWeights)
	checkDistribution(t, "lut", slotWeights, lut, 200_000, 0.005)

	at, err := BuildAliasTable(slotWeights)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	checkDistribution(t, "alias", slotWeights, at, 200_000, 0.005)
}

func TestLUTFollowsUnitDraw(t *testing.T) {
	// floor(u*106)：u*106 < 100 為前五個符號，100..104 為第六個，105 為最後一個
	lut, _ := BuildLUT([]int{20, 20, 20, 20, 20, 5, 1})
	c := core.New(core.NewScripted(0.0, 0.95, 0.995))
	if got := lut.Pick(c); got != 0 {
		t.Fatalf("u=0.0 want 0 got %d", got)
	}
	if got := lut.Pick(c); got != 5 {
		t.Fatalf("u=0.95 want 5 got %d", got)
	}
	if got := lut.Pick(c); got != 6 {
		t.Fatalf("u=0.995 want 6 got %d", got)
	}
}
