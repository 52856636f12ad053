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

// Package httperr 把 errs 的分級錯誤映射成 HTTP 回應。
// 放在 server 底下，核心的 errs 不依賴 net/http。
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/minelab/errs"
)

// StatusCode 錯誤對應的狀態碼：
//   - ctx 超時 / 取消     → 504 / 408
//   - errs.ErrNotFound    → 404
//   - errs.Warn           → 400
//   - errs.Fatal 與其他   → 500
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	}
	if errs.Level(err) == errs.Warn {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Body 錯誤回應內容
type Body struct {
	Error string `json:"error"`
	Level string `json:"level,omitempty"`
}

// Errs 以 JSON 寫回錯誤。500 不回傳內部細節。
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	status := StatusCode(err)
	body := Body{Error: err.Error(), Level: errs.ErrLv(errs.Level(err))}
	if status == http.StatusInternalServerError {
		body.Error = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Log 只記錄值得注意的錯誤：5xx 記 Error，408/409/429 記 Warn，其餘交給 access log。
func Log(log *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	if err == nil || log == nil {
		return
	}
	attrs = append(attrs, slog.Any("err", err))
	switch status := StatusCode(err); {
	case status >= 500:
		log.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
	case status == 408 || status == 409 || status == 429:
		log.LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
	}
}
