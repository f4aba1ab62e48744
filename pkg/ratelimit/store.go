package ratelimit

import (
	"container/list"
	"sync"
	"time"
)

// window holds the attempt timestamps recorded for one key, oldest first.
type window struct {
	key  string
	hits []time.Time
}

// newest returns the most recent attempt or the zero time.
func (w *window) newest() time.Time {
	if len(w.hits) == 0 {
		return time.Time{}
	}
	return w.hits[len(w.hits)-1]
}

// prune drops attempts that are not strictly inside (now-size, now].
func (w *window) prune(now time.Time, size time.Duration) {
	cut := 0
	for cut < len(w.hits) && now.Sub(w.hits[cut]) >= size {
		cut++
	}
	if cut > 0 {
		w.hits = append(w.hits[:0], w.hits[cut:]...)
	}
}

// store is a mutex-guarded table of windows with LRU eviction.
//
// A hash map gives O(1) lookups and a doubly-linked list keeps keys in
// recency order: the most recently touched key is at the front, the least
// recently touched at the back. A background janitor removes keys whose
// newest attempt has left the window.
type store struct {
	items    map[string]*list.Element
	eviction *list.List
	now      func() time.Time
	done     chan struct{}
	size     time.Duration
	maxKeys  int
	mu       sync.Mutex
	closed   bool
}

func newStore(size time.Duration, maxKeys int, cleanup time.Duration, now func() time.Time) *store {
	s := &store{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		now:      now,
		done:     make(chan struct{}),
		size:     size,
		maxKeys:  maxKeys,
	}
	if cleanup > 0 {
		go s.janitor(cleanup)
	}
	return s
}

// update runs fn on the pruned window for key while holding the lock.
// Check-and-record is therefore atomic per key.
func (s *store) update(key string, fn func(w *window, now time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	elem, ok := s.items[key]
	if !ok {
		if s.maxKeys > 0 && len(s.items) >= s.maxKeys {
			s.evictOldest()
		}
		elem = s.eviction.PushFront(&window{key: key})
		s.items[key] = elem
	} else {
		s.eviction.MoveToFront(elem)
	}

	w := elem.Value.(*window)
	w.prune(now, s.size)
	fn(w, now)

	if len(w.hits) == 0 {
		s.removeElement(elem)
	}
}

// count returns the number of attempts for key still inside the window.
func (s *store) count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if !ok {
		return 0
	}
	w := elem.Value.(*window)
	w.prune(s.now(), s.size)
	return len(w.hits)
}

func (s *store) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// close stops the janitor. Close is idempotent.
func (s *store) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
}

func (s *store) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.deleteIdle()
		}
	}
}

// deleteIdle removes keys with no attempt left inside the window.
func (s *store) deleteIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for elem := s.eviction.Back(); elem != nil; {
		prev := elem.Prev()
		w := elem.Value.(*window)
		if now.Sub(w.newest()) >= s.size {
			s.removeElement(elem)
		}
		elem = prev
	}
}

// evictOldest removes the least recently used key.
// Caller must hold the mutex.
func (s *store) evictOldest() {
	if elem := s.eviction.Back(); elem != nil {
		s.removeElement(elem)
	}
}

// removeElement unlinks elem from both indexes.
// Caller must hold the mutex.
func (s *store) removeElement(elem *list.Element) {
	s.eviction.Remove(elem)
	delete(s.items, elem.Value.(*window).key)
}
