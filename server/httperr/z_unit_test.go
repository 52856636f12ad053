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
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zintix-labs/minelab/errs"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 200},
		{errs.NewWarn("bad x"), 400},
		{errs.Wrap(errs.NewWarn("bad x"), "reveal"), 400},
		{errs.WrapWithExtra(errs.ErrNotFound, "session not found", "abc"), 404},
		{errs.NewFatal("boom"), 500},
		{errors.New("plain"), 500},
		{errs.Wrap(context.DeadlineExceeded, "sim"), 504},
		{context.Canceled, 408},
	}
	for _, c := range cases {
		if got := StatusCode(c.err); got != c.want {
			t.Fatalf("StatusCode(%v) = %d want %d", c.err, got, c.want)
		}
	}
}

func TestErrsHidesFatalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Errs(rec, errs.NewFatal("db password leaked"))
	if rec.Code != 500 || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("unexpected 500 body %q", rec.Body.String())
	}
	rec = httptest.NewRecorder()
	Errs(rec, errs.NewWarn("x out of range"))
	if rec.Code != 400 || !strings.Contains(rec.Body.String(), "x out of range") {
		t.Fatalf("unexpected 400 body %q", rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("content type %q", rec.Header().Get("Content-Type"))
	}
}
