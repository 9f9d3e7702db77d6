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

// Package httperr 把 errs 的分級映射成 HTTP 狀態碼；只在 server 邊界使用。
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/parlor/errs"
)

// Body 錯誤回應。Notice 是給玩家看的提示（牌桌拒絕時才有）。
type Body struct {
	Error  string `json:"error"`
	Level  string `json:"level"`
	Notice string `json:"notice,omitempty"`
}

// StatusCode
//   - ctx deadline/cancel → 504/408
//   - ErrNotFound → 404，ErrBusy → 409
//   - 其他 Warn → 400（請求或規則拒絕）
//   - Fatal 與未分級 → 500
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrBusy):
		return http.StatusConflict
	}
	switch errs.Level(err) {
	case errs.Warn, errs.Log:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Errs 寫 JSON 錯誤；notice 可為空。
func Errs(w http.ResponseWriter, err error, notice string) {
	if err == nil {
		return
	}
	status := StatusCode(err)
	body := Body{Error: err.Error(), Level: errs.Level(err).String(), Notice: notice}
	if status >= 500 {
		// 不把內部細節丟給外部
		body.Error = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Log 只記 408/409/5xx；400/404 屬於正常的請求錯誤，交給 access log。
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	status := StatusCode(err)
	switch {
	case status >= 500:
		log.Error(msg, slog.Int("status", status), slog.Any("err", err))
	case status == http.StatusRequestTimeout || status == http.StatusConflict:
		log.Warn(msg, slog.Int("status", status), slog.Any("err", err))
	}
}
