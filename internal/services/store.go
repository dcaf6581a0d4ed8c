// Package services – Store
//
// Store serializes mutations of the comment pool. Every list-scoped
// mutation (add, remove, reset, lock, draw, bulk claim) holds the global
// lock in read mode plus that list's own mutex, so different lists proceed
// in parallel while the "pick unused, flip flag, record history" sequence of
// one list is indivisible. Full clears take the global lock in write mode,
// which waits for every in-flight list operation to finish.
//
// Reads take no locks; they see the latest committed database state.
package services

import "sync"

// Store holds the process-wide locks shared by the pool services.
type Store struct {
	global sync.RWMutex

	mu    sync.Mutex
	lists map[string]*listLock
}

type listLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{lists: make(map[string]*listLock)}
}

// LockList acquires the critical section for listID and returns the
// function that releases it.
func (s *Store) LockList(listID string) (unlock func()) {
	s.global.RLock()

	s.mu.Lock()
	l, ok := s.lists[listID]
	if !ok {
		l = &listLock{}
		s.lists[listID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.lists, listID)
		}
		s.mu.Unlock()

		s.global.RUnlock()
	}
}

// LockAll excludes every list operation until the returned function is called.
func (s *Store) LockAll() (unlock func()) {
	s.global.Lock()
	return s.global.Unlock
}

// held reports how many list mutexes are currently tracked.
func (s *Store) held() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lists)
}
