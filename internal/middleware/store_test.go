package middleware

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// memStore is an in-process kvStore. Patterns support a trailing * only,
// which is all the middleware asks Redis for.
type memStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
}

type memEntry struct {
	value   string
	expires time.Time
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]memEntry)}
}

func (s *memStore) live(key string) (memEntry, bool) {
	e, ok := s.entries[key]
	if ok && !e.expires.IsZero() && time.Now().After(e.expires) {
		delete(s.entries, key)
		return memEntry{}, false
	}
	return e, ok
}

func (s *memStore) get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(key)
	return e.value, ok, nil
}

func (s *memStore) set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, _ := s.live(key)
	e.value = value
	if ttl != keepTTL {
		e.expires = time.Time{}
		if ttl > 0 {
			e.expires = time.Now().Add(ttl)
		}
	}
	s.entries[key] = e
	return nil
}

func (s *memStore) setNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.live(key); ok {
		return false, nil
	}
	e := memEntry{value: value}
	if ttl > 0 {
		e.expires = time.Now().Add(ttl)
	}
	s.entries[key] = e
	return true, nil
}

func (s *memStore) del(_ context.Context, keys ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := s.live(k); ok {
			delete(s.entries, k)
			n++
		}
	}
	return n, nil
}

func (s *memStore) keys(_ context.Context, pattern string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix, glob := strings.CutSuffix(pattern, "*")
	var out []string
	for k := range s.entries {
		if _, ok := s.live(k); !ok {
			continue
		}
		if (glob && strings.HasPrefix(k, prefix)) || k == pattern {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}
