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

// Package perf 以 runtime/pprof 包住一段執行，給 cmd/run 做效能分析。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/parlor/errs"
)

// Dir 輸出目錄
var Dir = "build/profiling"

// Modes -p 旗標可用的值
var Modes = []string{"", "cpu", "heap", "allocs"}

// Run 依 mode 執行 exe；mode 為空時直接執行。
//
//	go run ./cmd/run -game slots -p cpu
func Run(exe func(), mode string) error {
	switch mode {
	case "":
		exe()
		return nil
	case "cpu":
		return CPU(exe)
	case "heap":
		return snapshot(exe, "heap", true)
	case "allocs":
		return snapshot(exe, "allocs", false)
	}
	return errs.Warnf("unknown pprof mode %q", mode)
}

// CPU 執行期間開 CPU profile，輸出 cpu.pprof（也可當 PGO 的 default.pgo）。
func CPU(exe func()) error {
	f, err := create("cpu.pprof")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "start cpu profile failed")
	}
	defer pprof.StopCPUProfile()
	exe()
	return nil
}

// snapshot exe 結束後寫一次 profile；heap 先 GC 讓 in-use 數字準確。
func snapshot(exe func(), name string, gc bool) error {
	exe()
	if gc {
		runtime.GC()
	}
	f, err := create(name + ".pprof")
	if err != nil {
		return err
	}
	defer f.Close()
	p := pprof.Lookup(name)
	if p == nil {
		return errs.Fatalf("no %s profile", name)
	}
	if err := p.WriteTo(f, 0); err != nil {
		return errs.Wrap(err, "write "+name+" profile failed")
	}
	return nil
}

func create(name string) (*os.File, error) {
	if err := os.MkdirAll(Dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "create profiling dir failed")
	}
	f, err := os.Create(filepath.Join(Dir, name))
	if err != nil {
		return nil, errs.Wrap(err, "create "+name+" failed")
	}
	return f, nil
}
