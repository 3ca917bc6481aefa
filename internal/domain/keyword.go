package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinKeywordLength is the exclusive lower bound on keyword length, in runes.
const MinKeywordLength = 3

// Count pairs a term with the number of times it was seen.
// It marshals as a two-element JSON array, ["term", n].
type Count struct {
	Term  string
	Count int
}

// MarshalJSON implements json.Marshaler.
func (c Count) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Term, c.Count})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("count: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.Term); err != nil {
		return fmt.Errorf("count term: %w", err)
	}
	if err := json.Unmarshal(pair[1], &c.Count); err != nil {
		return fmt.Errorf("count value: %w", err)
	}
	return nil
}

// TrendAnalysis summarizes a set of recent papers on a topic.
type TrendAnalysis struct {
	PapersAnalyzed   int         `json:"papers_analyzed"`
	YearDistribution map[int]int `json:"year_distribution"`
	TopAuthors       []Count     `json:"top_authors"`
	TopKeywords      []Count     `json:"top_keywords"`
}

// KeywordTokens splits text on whitespace, lowercases each token and keeps
// those longer than MinKeywordLength runes made only of letters.
// Tokens carrying punctuation, such as "learning," are dropped.
func KeywordTokens(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) > MinKeywordLength && allLetters(f) {
			out = append(out, f)
		}
	}
	return out
}

func allLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// Counter tallies terms and remembers first-seen order so that ties rank
// stably.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add counts one occurrence of term.
func (c *Counter) Add(term string) {
	if _, ok := c.counts[term]; !ok {
		c.order = append(c.order, term)
	}
	c.counts[term]++
}

// MostCommon returns up to n terms by descending count. Terms with equal
// counts keep the order in which they were first added.
func (c *Counter) MostCommon(n int) []Count {
	out := make([]Count, 0, len(c.order))
	for _, term := range c.order {
		out = append(out, Count{Term: term, Count: c.counts[term]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
