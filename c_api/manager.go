package main

import "sync"

// SimpleManager hands out integer ids for Go objects, so that
// C callers can refer to them without holding Go pointers.
type SimpleManager[T any] struct {
	mu      *sync.Mutex
	nextID  int
	objects map[int]*T
}

// NewSimpleManager returns an empty SimpleManager.
func NewSimpleManager[T any]() *SimpleManager[T] {
	return &SimpleManager[T]{
		mu:      new(sync.Mutex),
		objects: make(map[int]*T),
	}
}

// AddObject stores object and returns its id. Ids are never reused.
func (s *SimpleManager[T]) AddObject(object T) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.objects[id] = &object
	s.nextID++
	return id
}

// LoadObject returns the object of id, or nil if there is none.
func (s *SimpleManager[T]) LoadObject(id int) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[id]
}

// ReleaseObject forgets the object of id.
func (s *SimpleManager[T]) ReleaseObject(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, id)
}
