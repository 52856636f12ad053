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

// Package corefmt 處理對外傳輸用的文字編碼：session id 與盤面佈局碼。
package corefmt

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/minelab/errs"
)

// maxLayoutBytes 解碼上限，防止不可信輸入造成大量配置（約 2M 格）。
const maxLayoutBytes = 1 << 18

// ErrBadCode 佈局碼格式錯誤。
var ErrBadCode = errs.NewWarn("corefmt: malformed layout code")

var (
	encOnce sync.Once
	enc     *zstd.Encoder
	dec     *zstd.Decoder
)

func codec() (*zstd.Encoder, *zstd.Decoder) {
	encOnce.Do(func() {
		var err error
		enc, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression), zstd.WithEncoderConcurrency(1))
		if err != nil {
			panic(err)
		}
		dec, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(maxLayoutBytes))
		if err != nil {
			panic(err)
		}
	})
	return enc, dec
}

func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func DecodeBase64URL(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.WrapWithExtra(ErrBadCode, "decode base64url failed", err.Error())
	}
	return b, nil
}

func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// NewID 16 個隨機位元組的 hex 字串。
func NewID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", errs.Wrap(err, "new id failed")
	}
	return EncodeHex(b[:]), nil
}

// EncodeLayout 把佈局 bitset 編成 "WxH:" + base64url(zstd(bits))。
func EncodeLayout(width, height int, bits []byte) string {
	e, _ := codec()
	packed := e.EncodeAll(bits, make([]byte, 0, len(bits)/2+16))
	return fmt.Sprintf("%dx%d:%s", width, height, EncodeBase64URL(packed))
}

// DecodeLayout 是 EncodeLayout 的反向。bitset 長度由呼叫端（minefield.FromLayout）檢查。
func DecodeLayout(code string) (width, height int, bits []byte, err error) {
	head, body, ok := strings.Cut(code, ":")
	if !ok {
		return 0, 0, nil, errs.WrapWithExtra(ErrBadCode, "decode layout", "missing ':'")
	}
	ws, hs, ok := strings.Cut(head, "x")
	if !ok {
		return 0, 0, nil, errs.WrapWithExtra(ErrBadCode, "decode layout", "missing size")
	}
	if width, err = strconv.Atoi(ws); err != nil || width < 0 {
		return 0, 0, nil, errs.WrapWithExtra(ErrBadCode, "decode layout", "bad width "+ws)
	}
	if height, err = strconv.Atoi(hs); err != nil || height < 0 {
		return 0, 0, nil, errs.WrapWithExtra(ErrBadCode, "decode layout", "bad height "+hs)
	}
	packed, err := DecodeBase64URL(body)
	if err != nil {
		return 0, 0, nil, err
	}
	_, d := codec()
	bits, err = d.DecodeAll(packed, nil)
	if err != nil {
		return 0, 0, nil, errs.WrapWithExtra(ErrBadCode, "decode layout", err.Error())
	}
	return width, height, bits, nil
}
