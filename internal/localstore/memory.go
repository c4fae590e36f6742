package localstore

import "sync"

// Memory is a map-backed Store. It backs tests and any run without a
// database file; contents do not survive a restart.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *Memory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
