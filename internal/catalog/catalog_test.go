package catalog

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseRejectsNonArray(t *testing.T) {
	for _, src := range []string{`{"prompt":"x"}`, `"nope"`, `42`} {
		if _, err := Parse([]byte(src)); !errors.Is(err, ErrDataFormat) {
			t.Errorf("Parse(%s): want ErrDataFormat, got %v", src, err)
		}
	}
}

func TestParseSkipsNonObjectEntries(t *testing.T) {
	src := `[
		{"prompt":"q0","choices":["a","b"],"correct":0},
		"junk",
		{"prompt":"q2","choices":["a","b"],"correct":1}
	]`
	c, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	// ids keep their position in the raw array, the skipped slot included
	if got := c.IDs(); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Fatalf("IDs = %v, want [0 2]", got)
	}
	if _, ok := c.Get(1); ok {
		t.Fatal("Get(1) should miss for the skipped entry")
	}
}

func TestParseDropsOutOfRangeCorrect(t *testing.T) {
	src := `[
		{"prompt":"ok","choices":["a","b"],"correct":1},
		{"prompt":"bad","choices":["a","b"],"correct":5},
		{"prompt":"empty","choices":[],"correct":0}
	]`
	c, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	if _, ok := c.Get(0); !ok {
		t.Fatal("the valid entry should be kept")
	}
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte(`[{"prompt":"q","choices":["a"],"correct":0}]`))
	if err != nil {
		t.Fatal(err)
	}
	q, ok := c.Get(0)
	if !ok {
		t.Fatal("question missing")
	}
	if q.Category != DefaultCategory {
		t.Errorf("Category = %q, want %q", q.Category, DefaultCategory)
	}
	if q.Examples == nil || len(q.Examples) != 0 {
		t.Errorf("Examples = %#v, want empty non-nil slice", q.Examples)
	}
}

func TestParseKeepsPresentFields(t *testing.T) {
	c, err := Parse([]byte(`[{"prompt":"q","choices":["a"],"correct":0,"category":"math","examples":["e1"]}]`))
	if err != nil {
		t.Fatal(err)
	}
	q, _ := c.Get(0)
	if q.Category != "math" || len(q.Examples) != 1 || q.Examples[0] != "e1" {
		t.Errorf("fields overwritten: %#v", q)
	}
}

func TestCategoriesSortedDistinct(t *testing.T) {
	src := `[
		{"prompt":"a","choices":["x"],"correct":0,"category":"zoo"},
		{"prompt":"b","choices":["x"],"correct":0,"category":"alpha"},
		{"prompt":"c","choices":["x"],"correct":0,"category":"zoo"},
		{"prompt":"d","choices":["x"],"correct":0}
	]`
	c, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha", DefaultCategory, "zoo"}
	if got := c.Categories(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Categories = %v, want %v", got, want)
	}
}
