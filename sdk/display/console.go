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

package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Console 終端機顯示端：餘額以千分位輸出，訊息依分類上色。
type Console struct {
	w io.Writer
	p *message.Printer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w, p: message.NewPrinter(language.English)}
}

var palette = map[Category]*color.Color{
	Info:    color.New(color.FgCyan),
	Win:     color.New(color.FgGreen, color.Bold),
	Lose:    color.New(color.FgRed),
	Jackpot: color.New(color.FgYellow, color.Bold),
}

func (c *Console) Balance(credits int) {
	c.p.Fprintf(c.w, "credits: %d\n", credits)
}

func (c *Console) Message(msg string, cat Category) {
	col, ok := palette[cat]
	if !ok {
		fmt.Fprintln(c.w, msg)
		return
	}
	col.Fprintln(c.w, msg)
}

// Banner 以方框置中輸出標題（寬字元以 runewidth 計算）。
func (c *Console) Banner(title string, width int) {
	tw := runewidth.StringWidth(title)
	width = max(width, tw+4)
	left := (width - 2 - tw) / 2
	right := width - 2 - tw - left
	line := "+" + strings.Repeat("-", width-2) + "+"
	fmt.Fprintln(c.w, line)
	fmt.Fprintln(c.w, "|"+strings.Repeat(" ", left)+title+strings.Repeat(" ", right)+"|")
	fmt.Fprintln(c.w, line)
}

// Sprintf 以英文格式輸出（整數帶千分位），牌桌訊息共用。
func Sprintf(format string, a ...any) string {
	return message.NewPrinter(language.English).Sprintf(format, a...)
}
