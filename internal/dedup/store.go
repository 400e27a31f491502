// Package dedup tracks which messages have already been rendered.
package dedup

import "github.com/jwafle/unread/internal/message"

// Store is the set of message ids rendered during this process. It only
// grows. It is not safe for concurrent use; callers mutate it from the
// single goroutine that renders rows.
type Store struct {
	seen map[message.ID]struct{}
}

func New() *Store {
	return &Store{seen: make(map[message.ID]struct{})}
}

func (s *Store) Has(id message.ID) bool {
	_, ok := s.seen[id]
	return ok
}

func (s *Store) Add(id message.ID) {
	s.seen[id] = struct{}{}
}

// Len returns the number of ids recorded.
func (s *Store) Len() int { return len(s.seen) }
