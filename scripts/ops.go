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

// ops 開發用的任務腳本：
//
//	go run ./scripts test         只列出每個套件的 ok / FAIL
//	go run ./scripts test-all     含 coverage
//	go run ./scripts test-detail  verbose，略過沒有測試的套件
//	go run ./scripts smoke        每張桌各跑一小段模擬
package main

import (
	"fmt"
	"os"
)

var tasks = map[string]func() error{
	"test":        runTest,
	"test-all":    runTestAll,
	"test-detail": runTestDetail,
	"smoke":       runSmoke,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./scripts [test|test-all|test-detail|smoke]")
		os.Exit(1)
	}
	task, ok := tasks[os.Args[1]]
	if !ok {
		warn.Printf("Unknown task: %s\n", os.Args[1])
		os.Exit(1)
	}
	if err := task(); err != nil {
		bad.Printf("\n%s finished with errors: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}
