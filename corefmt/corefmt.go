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

// Package corefmt 亂數核心快照的文字與檔案格式。
//
// 快照本身是 []byte；HTTP/JSON 走 Base64URL，檔案走 zstd 壓縮後的長度前綴 frame。
package corefmt

import (
	"bufio"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/parlor/errs"
)

// MaxFrame 讀檔時單一 frame 的上限（解壓前）
const MaxFrame uint64 = 1 << 20

func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func DecodeBase64URL(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.NewWarn("decode base64url failed: " + err.Error())
	}
	return b, nil
}

// EncodeHex 給 log 用，好複製
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errs.Wrap(err, "decode hex failed")
	}
	return b, nil
}

// WriteFrame 把快照壓縮後寫成一個 frame：
//
//	frame := uvarint(len(zstd(payload))) || zstd(payload)
func WriteFrame(w io.Writer, payload []byte) error {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return errs.Wrap(err, "new zstd encoder failed")
	}
	defer enc.Close()
	z := enc.EncodeAll(payload, nil)

	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], uint64(len(z)))
	if _, err := w.Write(hdr[:n]); err != nil {
		return errs.Wrap(err, "write frame header failed")
	}
	if _, err := w.Write(z); err != nil {
		return errs.Wrap(err, "write frame payload failed")
	}
	return nil
}

// ReadFrame 讀回 WriteFrame 寫的一個 frame。maxBytes 為 0 時使用 MaxFrame。
func ReadFrame(r io.Reader, maxBytes uint64) ([]byte, error) {
	if maxBytes == 0 {
		maxBytes = MaxFrame
	}
	br := bufio.NewReader(r)
	ln, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, errs.Wrap(err, "read frame header failed")
	}
	if ln > maxBytes {
		return nil, errs.NewWarn("read frame failed: payload exceeds maxBytes")
	}
	z := make([]byte, ln)
	if _, err := io.ReadFull(br, z); err != nil {
		return nil, errs.Wrap(err, "read frame payload failed")
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxBytes*16))
	if err != nil {
		return nil, errs.Wrap(err, "new zstd decoder failed")
	}
	defer dec.Close()
	out, err := dec.DecodeAll(z, nil)
	if err != nil {
		return nil, errs.Wrap(err, "decode frame failed")
	}
	return out, nil
}
