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

package corefmt

import (
	"bytes"
	"testing"
)

func TestBase64URLRoundTrip(t *testing.T) {
	src := []byte{0, 1, 2, 250, 251, 252, 253, 254, 255}
	s := EncodeBase64URL(src)
	got, err := DecodeBase64URL(s)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip mismatch: %v vs %v", got, src)
	}
	if _, err := DecodeBase64URL("***"); err == nil {
		t.Fatalf("invalid input should fail")
	}
}

func TestFrame(t *testing.T) {
	payload := bytes.Repeat([]byte("pcg64-state"), 64)
	var buf bytes.Buffer
	if err := WriteFrame(&buf, payload); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if buf.Len() >= len(payload) {
		t.Fatalf("repetitive payload should compress, %d >= %d", buf.Len(), len(payload))
	}
	got, err := ReadFrame(&buf, 0)
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("frame payload mismatch")
	}
}

func TestFrameLimits(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, bytes.Repeat([]byte{7}, 32)); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	raw := buf.Bytes()
	if _, err := ReadFrame(bytes.NewReader(raw), 1); err == nil {
		t.Fatalf("frame above maxBytes should fail")
	}
	if _, err := ReadFrame(bytes.NewReader(raw[:len(raw)-1]), 0); err == nil {
		t.Fatalf("truncated frame should fail")
	}
}
