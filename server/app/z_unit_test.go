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

package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type counter struct{ n atomic.Int32 }

func (c *counter) Sweep(time.Time) int {
	c.n.Add(1)
	return 0
}

type failing struct{ shut atomic.Bool }

func (f *failing) Run() error { return errors.New("boom") }
func (f *failing) Shutdown(context.Context) error {
	f.shut.Store(true)
	return nil
}

func TestJanitorSweepsUntilShutdown(t *testing.T) {
	c := &counter{}
	j := NewJanitor(c, 5*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewWith(j).RunContext(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for c.n.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.n.Load() < 2 {
		t.Fatalf("janitor swept %d times", c.n.Load())
	}
}

func TestAppStopsOnComponentError(t *testing.T) {
	f := &failing{}
	j := NewJanitor(&counter{}, time.Hour, nil)
	err := NewWith(f, j).RunContext(context.Background())
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
	if !f.shut.Load() {
		t.Fatalf("failing component not shut down")
	}
}
