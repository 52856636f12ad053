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
	"io"
	"strings"
	"testing"
)

func TestWrapKeepsLevelAndIdentity(t *testing.T) {
	sentinel := NewWarn("bad input")
	err := WrapWithExtra(sentinel, "reveal failed", "x=3 y=4")
	if err.ErrLv != Warn {
		t.Fatalf("expected warn level, got %s", ErrLv(err.ErrLv))
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected errors.Is to find sentinel")
	}
	if !strings.Contains(err.Error(), "x=3 y=4") {
		t.Fatalf("missing extra in %q", err.Error())
	}
}

func TestWrapForeignIsFatal(t *testing.T) {
	err := Wrap(io.ErrUnexpectedEOF, "read preset")
	if err.ErrLv != Fatal {
		t.Fatalf("expected fatal for foreign cause, got %s", ErrLv(err.ErrLv))
	}
	if Level(err) != Fatal {
		t.Fatalf("Level mismatch")
	}
	if Level(nil) != None {
		t.Fatalf("nil should be None")
	}
}

func TestNotFoundSentinel(t *testing.T) {
	err := WrapWithExtra(ErrNotFound, "session not found", "abc")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound in chain")
	}
	e, ok := AsErr(err)
	if !ok || e.ErrLv != Warn {
		t.Fatalf("expected warn *E, got %v", e)
	}
}
