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

// Package errs 定義 parlor 全域共用的分級錯誤。
//
// 分級讓最外層（HTTP / CLI）決定處理方式：
//   - Fatal: 設定錯誤、系統錯誤，需中止。
//   - Warn : 玩家操作可預期的拒絕（餘額不足、階段錯誤），不改動任何狀態。
//   - Log  : 僅需記錄。
package errs

import (
	"errors"
	"fmt"
)

// ErrLevel 錯誤等級
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

func (lv ErrLevel) String() string {
	switch lv {
	case Fatal:
		return "fatal"
	case Warn:
		return "warn"
	case Log:
		return "log"
	default:
		return ""
	}
}

// 牌桌拒絕動作時回傳的哨兵錯誤，皆為 Warn。
// 以 errors.Is 判斷；被 Wrap 過仍可命中。
var (
	ErrInsufficientCredits = NewWarn("insufficient credits")
	ErrNoSelection         = NewWarn("no wager selected")
	ErrPhase               = NewWarn("action not allowed in current phase")
	ErrBetLocked           = NewWarn("bet is locked until the point resolves")
	ErrBusy                = NewWarn("table is busy")
	ErrBadWager            = NewWarn("invalid wager")
	ErrNotFound            = NewWarn("not found")
)

// E 是統一的錯誤型別。
// Extra 為呼叫端追加的上下文，不影響 Message；Cause 串接下層錯誤。
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
}

func (e *E) Error() string {
	s := fmt.Sprintf("errlv=%s %s", e.ErrLv, e.Message)
	if e.Extra != "" {
		s += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		s += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return s
}

func (e *E) Unwrap() error { return e.Cause }

func New(lv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: lv}
}

func NewFatal(msg string) *E { return New(Fatal, msg) }
func NewWarn(msg string) *E  { return New(Warn, msg) }
func NewLog(msg string) *E   { return New(Log, msg) }

func Fatalf(format string, a ...any) *E { return NewFatal(fmt.Sprintf(format, a...)) }
func Warnf(format string, a ...any) *E  { return NewWarn(fmt.Sprintf(format, a...)) }
func Logf(format string, a ...any) *E   { return NewLog(fmt.Sprintf(format, a...)) }

// Wrap 包裝底層錯誤。
//
// 若 cause 鏈上已有 *E，沿用其等級；否則（標準庫或三方錯誤）一律視為 Fatal。
// 可預期的情境請直接建立 *E，不要 Wrap。
func Wrap(cause error, msg string) *E {
	return WrapWithExtra(cause, msg, "")
}

// WrapWithExtra 同 Wrap，另外附上上下文字串。
func WrapWithExtra(cause error, msg string, extra string) *E {
	lv := Fatal
	if e, ok := AsErr(cause); ok {
		lv = e.ErrLv
	}
	return &E{Message: msg, Extra: extra, Cause: cause, ErrLv: lv}
}

// Reject 以哨兵錯誤為 cause 建立帶上下文的拒絕錯誤。
//
//	return errs.Reject(errs.ErrInsufficientCredits, "slots", "bet=10 credits=3")
func Reject(sentinel *E, table string, extra string) *E {
	return &E{Message: table + ": " + sentinel.Message, Extra: extra, Cause: sentinel, ErrLv: sentinel.ErrLv}
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Level 回傳 err 鏈上第一個 *E 的等級，非 *E 視為 Fatal，nil 為 None。
func Level(err error) ErrLevel {
	if err == nil {
		return None
	}
	if e, ok := AsErr(err); ok {
		return e.ErrLv
	}
	return Fatal
}
