package session_test

import (
	"context"
	"testing"

	"github.com/quizdrill/quizdrill/internal/db"
	"github.com/quizdrill/quizdrill/internal/session"
)

func openTestStore(t *testing.T) *session.SQLStore {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite, "file:sessions_test.db?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return session.NewSQLStore(dbh)
}

func TestSQLStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	st, err := store.Get(ctx, "unknown")
	if err != nil {
		t.Fatal(err)
	}
	if st.Score != 0 || st.Total != 0 || len(st.WrongIDs) != 0 || len(st.Queues) != 0 {
		t.Fatalf("unknown sid should yield defaults, got %#v", st)
	}

	st.Score = 2
	st.Total = 5
	st.WrongIDs = []int{1, 4}
	st.Queues = map[string][]int{"all::math": {3, 0}}
	if err := store.Put(ctx, "v1", st); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "v1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Score != 2 || got.Total != 5 {
		t.Fatalf("stats lost: %#v", got)
	}
	if len(got.WrongIDs) != 2 || got.WrongIDs[1] != 4 {
		t.Fatalf("wrong book lost: %#v", got.WrongIDs)
	}
	if q := got.Queues["all::math"]; len(q) != 2 || q[0] != 3 {
		t.Fatalf("queues lost: %#v", got.Queues)
	}

	// second Put for the same sid must update, not fail on the primary key
	got.Score = 3
	if err := store.Put(ctx, "v1", got); err != nil {
		t.Fatal(err)
	}
	again, err := store.Get(ctx, "v1")
	if err != nil {
		t.Fatal(err)
	}
	if again.Score != 3 {
		t.Fatalf("upsert did not update: %#v", again)
	}
}
