package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLStore keeps one row per visitor with the whole state as a JSON blob.
// Works against sqlite and postgres; see internal/db for the schema.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, sid string) (State, error) {
	row := s.db.QueryRowContext(ctx, `SELECT state_json FROM sessions WHERE sid=$1`, sid)
	var buf string
	if err := row.Scan(&buf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			st := State{}
			st.normalize()
			return st, nil
		}
		return State{}, err
	}
	var st State
	if err := json.Unmarshal([]byte(buf), &st); err != nil {
		// unreadable row: start the visitor over rather than failing requests
		st = State{}
	}
	st.normalize()
	return st, nil
}

func (s *SQLStore) Put(ctx context.Context, sid string, st State) error {
	buf, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO sessions (sid, state_json, updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (sid) DO UPDATE SET state_json=EXCLUDED.state_json, updated_at=EXCLUDED.updated_at`,
		sid, string(buf), time.Now().Unix())
	return err
}
