package config

import (
	"sync"

	"pushmic/log"
)

// Store owns the in-memory config and writes it to disk in the background.
// Saves are coalesced: only the latest value is written.
type Store struct {
	path string

	mu      sync.Mutex
	cfg     Config
	pending *Config
	writing bool
	idle    *sync.Cond
}

func NewStore(path string, cfg Config) *Store {
	s := &Store{path: path, cfg: cfg}
	s.idle = sync.NewCond(&s.mu)
	return s
}

func (s *Store) Path() string { return s.path }

func (s *Store) Get() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Update applies fn to the config and schedules a save. It never blocks on
// disk I/O.
func (s *Store) Update(fn func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cfg)
	c := s.cfg
	s.pending = &c
	if !s.writing {
		s.writing = true
		go s.writer()
	}
}

func (s *Store) writer() {
	s.mu.Lock()
	for s.pending != nil {
		c := *s.pending
		s.pending = nil
		s.mu.Unlock()
		if err := c.Save(s.path); err != nil {
			log.Errorf("saving config: %v", err)
		}
		s.mu.Lock()
	}
	s.writing = false
	s.idle.Broadcast()
	s.mu.Unlock()
}

// Flush waits for scheduled saves to reach disk.
func (s *Store) Flush() {
	s.mu.Lock()
	for s.writing {
		s.idle.Wait()
	}
	s.mu.Unlock()
}
