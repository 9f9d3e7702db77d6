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

package perf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunModes(t *testing.T) {
	Dir = t.TempDir()
	for _, m := range Modes {
		ran := false
		if err := Run(func() { ran = true }, m); err != nil {
			t.Fatalf("mode %q: %v", m, err)
		}
		if !ran {
			t.Fatalf("mode %q did not run exe", m)
		}
	}
	for _, name := range []string{"cpu.pprof", "heap.pprof", "allocs.pprof"} {
		if _, err := os.Stat(filepath.Join(Dir, name)); err != nil {
			t.Fatalf("%s missing: %v", name, err)
		}
	}
	if err := Run(func() {}, "trace"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}
