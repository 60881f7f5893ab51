package content

import (
	"context"
	"sort"
	"strings"
	"unicode"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// normalizeLimit applies the default to non-positive limits and caps the rest.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

type Result struct {
	Item
	Score float64 `json:"score"`
}

// Searcher finds site content matching a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// MemorySearcher ranks an in-process item list by token matches.
type MemorySearcher struct {
	items []Item
}

func NewMemorySearcher(items []Item) *MemorySearcher {
	if items == nil {
		items = siteContent
	}
	return &MemorySearcher{items: items}
}

const (
	titleWeight   = 3
	tagWeight     = 2
	summaryWeight = 1
)

func (m *MemorySearcher) Search(_ context.Context, query string, limit int) ([]Result, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return []Result{}, nil
	}
	limit = normalizeLimit(limit)

	results := make([]Result, 0)
	for _, item := range m.items {
		title := strings.ToLower(item.Title)
		summary := strings.ToLower(item.Summary)
		tags := strings.ToLower(strings.Join(item.Tags, " "))

		score := 0.0
		for _, term := range terms {
			if strings.Contains(title, term) {
				score += titleWeight
			}
			if strings.Contains(tags, term) {
				score += tagWeight
			}
			if strings.Contains(summary, term) {
				score += summaryWeight
			}
		}
		if score > 0 {
			results = append(results, Result{Item: item, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]struct{}, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
