package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/quizdrill/quizdrill/internal/catalog"
	"github.com/quizdrill/quizdrill/internal/session"
)

const (
	// ModeAll draws from the whole catalog, ModeWrong only from the
	// visitor's wrong book.
	ModeAll   = "all"
	ModeWrong = "wrong"

	// CategoryAll disables category filtering.
	CategoryAll = "all"
)

var (
	// ErrInvalidInput marks a malformed answer submission. The session is
	// left untouched when it is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExhausted means no question is eligible for the requested mode and
	// category. It is an expected condition, not a data error.
	ErrExhausted = errors.New("no eligible questions")
)

// QuestionView is what the fetch path exposes. It never carries the correct
// index or text; those are only disclosed by Answer after a submission.
type QuestionView struct {
	ID       int      `json:"id"`
	Prompt   string   `json:"prompt"`
	Choices  []string `json:"choices"`
	Category string   `json:"category"`
	Examples []string `json:"examples"`
}

type Stats struct {
	Score      int `json:"score"`
	Total      int `json:"total"`
	WrongCount int `json:"wrong_count"`
}

type Result struct {
	Correct      bool     `json:"correct"`
	CorrectIndex int      `json:"correctIndex"`
	CorrectText  string   `json:"correctText"`
	Examples     []string `json:"examples"`
	Stats        Stats    `json:"stats"`
}

// Service implements the queue picker and the answer evaluator on top of the
// immutable catalog and the per-visitor session store.
type Service struct {
	catalog  *catalog.Catalog
	sessions session.Store
}

func New(c *catalog.Catalog, s session.Store) *Service {
	return &Service{catalog: c, sessions: s}
}

// NormalizeMode coerces unknown modes to ModeAll.
func NormalizeMode(mode string) string {
	if mode == ModeWrong {
		return ModeWrong
	}
	return ModeAll
}

func (s *Service) Categories() []string {
	return s.catalog.Categories()
}

// queueKey must keep distinct (mode, category) pairs distinct; modes never
// contain "::".
func queueKey(mode, category string) string {
	return mode + "::" + category
}

func (s *Service) buildPool(st session.State, mode, category string) []int {
	var ids []int
	if mode == ModeWrong {
		for _, id := range st.WrongIDs {
			if _, ok := s.catalog.Get(id); ok {
				ids = append(ids, id)
			}
		}
	} else {
		ids = s.catalog.IDs()
	}
	if category == CategoryAll {
		return ids
	}
	filtered := make([]int, 0, len(ids))
	for _, id := range ids {
		if q, ok := s.catalog.Get(id); ok && q.Category == category {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

// NextQuestion pops the next id from the (mode, category) queue, rebuilding
// and reshuffling the queue when it runs out. Within one cycle no id is
// dispensed twice; across a cycle boundary repeats are possible. The second
// return value is the visitor's current wrong count.
func (s *Service) NextQuestion(ctx context.Context, sid, mode, category string) (QuestionView, int, error) {
	st, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return QuestionView{}, 0, err
	}

	key := queueKey(mode, category)
	q := st.Queues[key]
	for {
		if len(q) == 0 {
			pool := s.buildPool(st, mode, category)
			if len(pool) == 0 {
				return QuestionView{}, 0, ErrExhausted
			}
			rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
			q = pool
		}
		id := q[len(q)-1]
		q = q[:len(q)-1]
		qn, ok := s.catalog.Get(id)
		if !ok {
			// stale id persisted by an older dataset; drop and keep popping
			continue
		}
		st.Queues[key] = q
		if err := s.sessions.Put(ctx, sid, st); err != nil {
			return QuestionView{}, 0, err
		}
		view := QuestionView{
			ID:       qn.ID,
			Prompt:   qn.Prompt,
			Choices:  qn.Choices,
			Category: qn.Category,
			Examples: qn.Examples,
		}
		return view, len(st.WrongIDs), nil
	}
}

// Answer grades a submission. Validation happens before any mutation, so an
// invalid submission leaves score, total and the wrong book as they were.
func (s *Service) Answer(ctx context.Context, sid string, id, choice int) (Result, error) {
	q, ok := s.catalog.Get(id)
	if !ok {
		return Result{}, fmt.Errorf("%w: invalid id", ErrInvalidInput)
	}
	if len(q.Choices) == 0 {
		return Result{}, fmt.Errorf("%w: invalid question choices", ErrInvalidInput)
	}
	if choice < 0 || choice >= len(q.Choices) {
		return Result{}, fmt.Errorf("%w: invalid choice index", ErrInvalidInput)
	}

	st, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return Result{}, err
	}

	correct := choice == q.Correct
	st.Total++
	if correct {
		st.Score++
		st.RemoveWrong(id)
	} else {
		st.AddWrong(id)
	}
	if err := s.sessions.Put(ctx, sid, st); err != nil {
		return Result{}, err
	}

	return Result{
		Correct:      correct,
		CorrectIndex: q.Correct,
		CorrectText:  q.Choices[q.Correct],
		Examples:     q.Examples,
		Stats:        statsOf(st),
	}, nil
}

// Reset zeroes score and total. The wrong book and the draw queues survive a
// reset.
func (s *Service) Reset(ctx context.Context, sid string) (Stats, error) {
	st, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return Stats{}, err
	}
	st.Score = 0
	st.Total = 0
	if err := s.sessions.Put(ctx, sid, st); err != nil {
		return Stats{}, err
	}
	return statsOf(st), nil
}

// ClearWrong empties the wrong book and purges every wrong-mode queue so old
// misses cannot be dispensed afterwards.
func (s *Service) ClearWrong(ctx context.Context, sid string) error {
	st, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return err
	}
	st.WrongIDs = []int{}
	for k := range st.Queues {
		if strings.HasPrefix(k, ModeWrong+"::") {
			delete(st.Queues, k)
		}
	}
	return s.sessions.Put(ctx, sid, st)
}

func statsOf(st session.State) Stats {
	return Stats{Score: st.Score, Total: st.Total, WrongCount: len(st.WrongIDs)}
}
