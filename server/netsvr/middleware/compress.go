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

package middleware

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// 只壓縮這些 Content-Type；回應都是 JSON/YAML/文字表格
var compressible = []string{"application/json", "application/yaml", "text/"}

var (
	gzipPool = sync.Pool{New: func() any {
		gw, _ := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
		return gw
	}}
	zstdPool = sync.Pool{New: func() any {
		zw, _ := zstd.NewWriter(io.Discard, zstd.WithEncoderLevel(zstd.SpeedFastest), zstd.WithEncoderConcurrency(1))
		return zw
	}}
)

// encoder gzip.Writer 與 zstd.Encoder 的共同面
type encoder interface {
	io.Writer
	Reset(w io.Writer)
	Flush() error
	Close() error
}

type compressWriter struct {
	http.ResponseWriter
	enc     encoder
	name    string
	decided bool
	on      bool
}

// decide 第一次寫 header 時決定要不要壓縮：無 body 的狀態碼與非文字內容都直接放行。
func (cw *compressWriter) decide(code int) {
	if cw.decided {
		return
	}
	cw.decided = true
	if code < 200 || code == http.StatusNoContent || code == http.StatusNotModified {
		return
	}
	h := cw.Header()
	if h.Get("Content-Encoding") != "" {
		return
	}
	ct := h.Get("Content-Type")
	ok := false
	for _, p := range compressible {
		if strings.HasPrefix(ct, p) {
			ok = true
			break
		}
	}
	if !ok {
		return
	}
	h.Del("Content-Length")
	h.Set("Content-Encoding", cw.name)
	h.Add("Vary", "Accept-Encoding")
	cw.enc.Reset(cw.ResponseWriter)
	cw.on = true
}

func (cw *compressWriter) WriteHeader(code int) {
	cw.decide(code)
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	if !cw.decided {
		if cw.Header().Get("Content-Type") == "" {
			cw.Header().Set("Content-Type", http.DetectContentType(b))
		}
		cw.WriteHeader(http.StatusOK)
	}
	if cw.on {
		return cw.enc.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}

func (cw *compressWriter) Flush() {
	if cw.on {
		_ = cw.enc.Flush()
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Compression 依 Accept-Encoding 選 zstd 或 gzip（klauspost/compress）。
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		accept := r.Header.Get("Accept-Encoding")
		var (
			enc  encoder
			name string
			pool *sync.Pool
		)
		switch {
		case strings.Contains(accept, "zstd"):
			enc, name, pool = zstdPool.Get().(*zstd.Encoder), "zstd", &zstdPool
		case strings.Contains(accept, "gzip"):
			enc, name, pool = gzipPool.Get().(*gzip.Writer), "gzip", &gzipPool
		default:
			next.ServeHTTP(w, r)
			return
		}

		cw := &compressWriter{ResponseWriter: w, enc: enc, name: name}
		defer func() {
			if cw.on {
				_ = enc.Close()
			}
			enc.Reset(io.Discard)
			pool.Put(enc)
		}()
		next.ServeHTTP(cw, r)
	})
}
