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

package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWrapInheritsLevel(t *testing.T) {
	w := Wrap(ErrInsufficientCredits, "spin refused")
	if w.ErrLv != Warn {
		t.Fatalf("expected warn, got %s", w.ErrLv)
	}
	if !errors.Is(w, ErrInsufficientCredits) {
		t.Fatalf("wrapped sentinel should match errors.Is")
	}

	plain := Wrap(fmt.Errorf("disk"), "load failed")
	if plain.ErrLv != Fatal {
		t.Fatalf("foreign cause should be fatal, got %s", plain.ErrLv)
	}
}

func TestRejectKeepsSentinel(t *testing.T) {
	err := Reject(ErrNoSelection, "dice", "wager=")
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("reject should keep sentinel in chain")
	}
	if Level(err) != Warn {
		t.Fatalf("reject should be warn")
	}
	if !strings.Contains(err.Error(), "dice: no wager selected") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestLevel(t *testing.T) {
	if Level(nil) != None {
		t.Fatalf("nil should be None")
	}
	if Level(errors.New("x")) != Fatal {
		t.Fatalf("foreign error should be Fatal")
	}
	if Level(NewLog("x")) != Log {
		t.Fatalf("log error should be Log")
	}
}

func TestErrorFormat(t *testing.T) {
	e := WrapWithExtra(NewWarn("inner"), "outer", "k=v")
	got := e.Error()
	want := "errlv=warn outer | extra: k=v (cause: errlv=warn inner)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
