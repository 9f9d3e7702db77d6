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

package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zintix-labs/parlor/errs"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.Reject(errs.ErrNotFound, "bingo", "unknown table"), http.StatusNotFound},
		{errs.Reject(errs.ErrBusy, "craps", ""), http.StatusConflict},
		{errs.Reject(errs.ErrInsufficientCredits, "slots", "bet=10 credits=3"), http.StatusBadRequest},
		{errs.NewWarn("rounds must > 0"), http.StatusBadRequest},
		{errs.NewFatal("table panic"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{&errs.E{Message: "play canceled", Cause: context.Canceled, ErrLv: errs.Warn}, http.StatusRequestTimeout},
		{errs.Wrap(context.DeadlineExceeded, "sim"), http.StatusGatewayTimeout},
	}
	for i, c := range cases {
		if got := StatusCode(c.err); got != c.want {
			t.Fatalf("case %d: status %d, want %d (%v)", i, got, c.want, c.err)
		}
	}
}

func TestErrsBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Errs(rec, errs.Reject(errs.ErrInsufficientCredits, "slots", ""), "Not enough credits for that bet")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	var b Body
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatal(err)
	}
	if b.Level != "warn" || b.Notice != "Not enough credits for that bet" {
		t.Fatalf("unexpected body %+v", b)
	}

	rec = httptest.NewRecorder()
	Errs(rec, errs.NewFatal("secret detail"), "")
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatal(err)
	}
	if b.Error != "Internal Server Error" {
		t.Fatalf("5xx should hide details, got %q", b.Error)
	}
}
