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

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
)

var (
	good = color.New(color.FgGreen)
	bad  = color.New(color.FgRed)
	warn = color.New(color.FgYellow)
)

// smokeTables 與 configs/ 下的牌桌一致
var smokeTables = []string{"slots", "craps", "dice", "roulette", "poker", "horse", "arcade"}

func cleanCache() error {
	c := exec.Command("go", "clean", "-testcache")
	c.Stdout, c.Stderr = os.Stdout, os.Stderr
	return c.Run()
}

// runTest go test ./... -cover -count=1，只留 ok / FAIL 與建置錯誤
func runTest() error {
	good.Println("running tests")
	if err := cleanCache(); err != nil {
		bad.Println(err.Error())
	}
	return stream(exec.Command("go", "test", "./...", "-cover", "-count=1"), func(line string) {
		switch {
		case strings.HasPrefix(line, "ok"):
			good.Println(line)
		case strings.HasPrefix(line, "FAIL"),
			strings.Contains(line, "build failed"),
			strings.Contains(line, "setup failed"):
			bad.Println(line)
		}
	})
}

func runTestAll() error {
	good.Println("running tests (all with coverage)")
	if err := cleanCache(); err != nil {
		return err
	}
	c := exec.Command("go", "test", "./...", "-cover")
	c.Stdout, c.Stderr = os.Stdout, os.Stderr
	return c.Run()
}

func runTestDetail() error {
	good.Println("running tests (detail)")
	if err := cleanCache(); err != nil {
		return err
	}
	return stream(exec.Command("go", "test", "./...", "-v", "-count=1"), func(line string) {
		switch {
		case strings.Contains(line, "[no test files]"):
		case strings.HasPrefix(line, "ok"):
			good.Println(line)
		case strings.HasPrefix(line, "FAIL"):
			bad.Println(line)
		default:
			fmt.Println(line)
		}
	})
}

// runSmoke 每張桌 2 workers x 20k 局，只看有沒有跑完
func runSmoke() error {
	for _, name := range smokeTables {
		warn.Printf("== %s ==\n", name)
		c := exec.Command("go", "run", "./cmd/run", "-game", name, "-rounds", "20000", "-worker", "2", "-seed", "1")
		c.Stdout, c.Stderr = os.Stdout, os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	good.Println("smoke ok")
	return nil
}

// stream 合併 stdout/stderr，一行一行交給 fn
func stream(cmd *exec.Cmd, fn func(line string)) error {
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return err
	}
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		fn(sc.Text())
	}
	if err := sc.Err(); err != nil {
		bad.Printf("scanner error: %v\n", err)
	}
	return cmd.Wait()
}
