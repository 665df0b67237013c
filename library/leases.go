package library

import "sync"

// leases hands out at most one lease per structure name. A lease is
// a channel that is closed when its holder releases it.
type leases struct {
	mu       sync.Mutex
	shutDown bool
	held     map[string]chan struct{}
}

func newLeases() *leases {
	return &leases{held: make(map[string]chan struct{})}
}

// acquire blocks until nobody holds name and takes it. It fails with
// ErrClosed once shutdown was called, including while waiting.
func (s *leases) acquire(name string) (release func(), err error) {
	s.mu.Lock()
	for {
		if s.shutDown {
			s.mu.Unlock()
			return nil, ErrClosed
		}
		current, busy := s.held[name]
		if !busy {
			break
		}
		s.mu.Unlock()
		<-current
		s.mu.Lock()
	}

	done := make(chan struct{})
	s.held[name] = done
	s.mu.Unlock()

	return sync.OnceFunc(func() {
		s.mu.Lock()
		delete(s.held, name)
		s.mu.Unlock()
		close(done)
	}), nil
}

// shutdown refuses every later acquire and returns the leases still
// held. first is false when shutdown had already been called.
func (s *leases) shutdown() (pending []<-chan struct{}, first bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shutDown {
		return nil, false
	}
	s.shutDown = true
	for _, done := range s.held {
		pending = append(pending, done)
	}
	return pending, true
}
