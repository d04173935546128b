package session

import "context"

// State is everything tracked for one visitor: running score, the wrong
// book, and the shuffled draw queues keyed by mode+category.
type State struct {
	Score    int              `json:"score"`
	Total    int              `json:"total"`
	WrongIDs []int            `json:"wrong_ids"`
	Queues   map[string][]int `json:"queues"`
}

// Store persists visitor state. Get on an unknown sid returns a fresh
// default state, never an error. Mutations are not persisted implicitly;
// callers must Put after changing the state they got back.
type Store interface {
	Get(ctx context.Context, sid string) (State, error)
	Put(ctx context.Context, sid string, st State) error
}

func (s *State) normalize() {
	if s.WrongIDs == nil {
		s.WrongIDs = []int{}
	}
	if s.Queues == nil {
		s.Queues = map[string][]int{}
	}
}

// HasWrong reports whether id is in the wrong book.
func (s *State) HasWrong(id int) bool {
	for _, w := range s.WrongIDs {
		if w == id {
			return true
		}
	}
	return false
}

// AddWrong records id in the wrong book. Adding an id that is already
// present is a no-op; the wrong book has set semantics.
func (s *State) AddWrong(id int) {
	if !s.HasWrong(id) {
		s.WrongIDs = append(s.WrongIDs, id)
	}
}

// RemoveWrong drops id from the wrong book if present.
func (s *State) RemoveWrong(id int) {
	for i, w := range s.WrongIDs {
		if w == id {
			s.WrongIDs = append(s.WrongIDs[:i], s.WrongIDs[i+1:]...)
			return
		}
	}
}

func (s State) clone() State {
	out := s
	out.WrongIDs = append([]int{}, s.WrongIDs...)
	out.Queues = make(map[string][]int, len(s.Queues))
	for k, q := range s.Queues {
		out.Queues[k] = append([]int{}, q...)
	}
	return out
}
