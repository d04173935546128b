package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
)

// ErrDataFormat means the backing question data is not a JSON array.
// Loading must fail hard on it; the server never starts with no catalog.
var ErrDataFormat = errors.New("question data must be a JSON array")

// DefaultCategory is assigned to questions whose source entry has no category.
const DefaultCategory = "uncategorized"

// Question is one multiple-choice item. ID is the entry's index in the raw
// source array and stays stable for the process lifetime.
type Question struct {
	ID       int      `json:"id"`
	Prompt   string   `json:"prompt"`
	Choices  []string `json:"choices"`
	Correct  int      `json:"correct"`
	Category string   `json:"category"`
	Examples []string `json:"examples"`
}

// Catalog is the fixed set of questions, loaded once at startup and
// read-only afterwards, so it is safe to share across handlers.
type Catalog struct {
	questions []Question
	byID      map[int]Question
}

// Load reads and parses the question file at path.
func Load(path string) (*Catalog, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(buf)
}

// Parse builds a catalog from raw JSON. The top level must be an array.
// Entries that are not objects, or whose correct index does not point into
// choices, are dropped; later entries keep their original-index ids.
func Parse(data []byte) (*Catalog, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataFormat, err)
	}

	c := &Catalog{byID: make(map[int]Question, len(raw))}
	for i, entry := range raw {
		var rec struct {
			Prompt   string   `json:"prompt"`
			Choices  []string `json:"choices"`
			Correct  int      `json:"correct"`
			Category string   `json:"category"`
			Examples []string `json:"examples"`
		}
		if err := json.Unmarshal(entry, &rec); err != nil {
			log.Printf("catalog: skipping entry %d: not an object", i)
			continue
		}
		if len(rec.Choices) == 0 || rec.Correct < 0 || rec.Correct >= len(rec.Choices) {
			log.Printf("catalog: skipping entry %d: correct=%d out of range for %d choices",
				i, rec.Correct, len(rec.Choices))
			continue
		}
		q := Question{
			ID:       i,
			Prompt:   rec.Prompt,
			Choices:  rec.Choices,
			Correct:  rec.Correct,
			Category: rec.Category,
			Examples: rec.Examples,
		}
		if q.Category == "" {
			q.Category = DefaultCategory
		}
		if q.Examples == nil {
			q.Examples = []string{}
		}
		c.questions = append(c.questions, q)
		c.byID[q.ID] = q
	}
	return c, nil
}

// Get returns the question with the given id, if it exists.
func (c *Catalog) Get(id int) (Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Len is the number of kept questions.
func (c *Catalog) Len() int { return len(c.questions) }

// IDs returns the kept question ids in ascending order. The slice is a copy;
// callers may shuffle or truncate it freely.
func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.questions))
	for i, q := range c.questions {
		ids[i] = q.ID
	}
	return ids
}

// Categories returns the distinct category labels, sorted.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	for _, q := range c.questions {
		seen[q.Category] = true
	}
	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}
