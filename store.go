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

package minelab

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zintix-labs/minelab/errs"
)

var (
	// ErrStoreFull 存放區已達容量上限。
	ErrStoreFull = errs.NewWarn("session store full")
	// ErrStoreClosed 存放區已關閉。
	ErrStoreClosed = errs.NewFatal("session store closed")
)

// Store 管理所有存活中的 Session。
//
// 容量固定，超過即拒絕新局（ErrStoreFull）；閒置超過 ttl 的局由 Sweep 回收。
// Session 自己持有操作鎖，Store 的鎖只保護索引本身。
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	capacity int
	ttl      time.Duration
	log      *slog.Logger
	closed   bool

	created atomic.Int64 // 累計建局
	evicted atomic.Int64 // 累計因閒置被回收
	deleted atomic.Int64 // 累計主動刪除
	reject  atomic.Int64 // 因容量被拒
}

// NewStore 建立存放區。capacity 至少為 1；ttl <= 0 代表不過期。log 為 nil 時不輸出。
func NewStore(capacity int, ttl time.Duration, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{
		sessions: make(map[string]*Session, min(max(1, capacity), 1024)),
		capacity: max(1, capacity),
		ttl:      ttl,
		log:      log,
	}
}

// Put 登記一局。
func (st *Store) Put(s *Session) error {
	if s == nil {
		return errs.NewFatal("nil session")
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return ErrStoreClosed
	}
	if _, ok := st.sessions[s.ID()]; ok {
		return errs.Fatalf("duplicate session id %s", s.ID())
	}
	if len(st.sessions) >= st.capacity {
		st.reject.Add(1)
		return errs.WrapWithExtra(ErrStoreFull, "put session", s.ID())
	}
	st.sessions[s.ID()] = s
	st.created.Add(1)
	st.log.Debug("session.open", slog.String("id", s.ID()), slog.String("preset", s.Preset().Name), slog.Int64("seed", s.Seed()))
	return nil
}

// Get 取得一局；不存在時回傳包著 errs.ErrNotFound 的錯誤。
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.closed {
		return nil, ErrStoreClosed
	}
	s, ok := st.sessions[id]
	if !ok {
		return nil, errs.WrapWithExtra(errs.ErrNotFound, "session not found", id)
	}
	return s, nil
}

// Delete 移除一局；不存在時回傳包著 errs.ErrNotFound 的錯誤。
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return errs.WrapWithExtra(errs.ErrNotFound, "session not found", id)
	}
	delete(st.sessions, id)
	st.deleted.Add(1)
	st.log.Debug("session.delete", slog.String("id", id))
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *Store) Capacity() int {
	return st.capacity
}

func (st *Store) TTL() time.Duration {
	return st.ttl
}

// Sweep 回收在 now 之前已閒置超過 ttl 的局，回傳回收數量。
func (st *Store) Sweep(now time.Time) int {
	if st.ttl <= 0 {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if now.Sub(s.Touched()) > st.ttl {
			delete(st.sessions, id)
			n++
		}
	}
	if n > 0 {
		st.evicted.Add(int64(n))
		st.log.Info("session.sweep", slog.Int("evicted", n), slog.Int("alive", len(st.sessions)))
	}
	return n
}

// Close 關閉存放區並釋放所有局。重複呼叫無副作用。
func (st *Store) Close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return
	}
	st.closed = true
	st.log.Info("session.store.closed", slog.Int("dropped", len(st.sessions)))
	clear(st.sessions)
}

// StoreMetrics 拉取式觀測快照。
type StoreMetrics struct {
	Alive    int  `json:"alive"`
	Capacity int  `json:"capacity"`
	Created  int  `json:"created"`
	Evicted  int  `json:"evicted"`
	Deleted  int  `json:"deleted"`
	Rejected int  `json:"rejected"`
	Closed   bool `json:"closed"`
}

func (st *Store) Metrics() StoreMetrics {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return StoreMetrics{
		Alive:    len(st.sessions),
		Capacity: st.capacity,
		Created:  int(st.created.Load()),
		Evicted:  int(st.evicted.Load()),
		Deleted:  int(st.deleted.Load()),
		Rejected: int(st.reject.Load()),
		Closed:   st.closed,
	}
}
