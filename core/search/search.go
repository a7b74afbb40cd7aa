package search

import (
	"context"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
	// MaxPage keeps Offset within int range for any per-page size.
	MaxPage = math.MaxInt / MaxPerPage
)

// Query describes a search request.
type Query struct {
	Terms    string   `json:"q,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Page     int      `json:"page"`
	PerPage  int      `json:"per_page"`
}

// Normalize returns a copy of q with defaults applied: whitespace in terms
// collapsed, empty and repeated tags dropped, page between 1 and MaxPage, and
// per-page between 1 and MaxPerPage.
func (q Query) Normalize() Query {
	q.Terms = strings.Join(strings.Fields(q.Terms), " ")
	q.Category = strings.TrimSpace(q.Category)

	if len(q.Tags) > 0 {
		seen := make(map[string]struct{}, len(q.Tags))
		tags := make([]string, 0, len(q.Tags))
		for _, t := range q.Tags {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if _, ok := seen[Fold(t)]; ok {
				continue
			}
			seen[Fold(t)] = struct{}{}
			tags = append(tags, t)
		}
		q.Tags = tags
	}
	if len(q.Tags) == 0 {
		q.Tags = nil
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	return q
}

// Offset is the index of the first item on the query's page.
func (q Query) Offset() int {
	q = q.Normalize()
	return (q.Page - 1) * q.PerPage
}

// IsEmpty reports whether q has no terms, category or tags.
func (q Query) IsEmpty() bool {
	q = q.Normalize()
	return q.Terms == "" && q.Category == "" && len(q.Tags) == 0
}

// Values encodes the normalized query using the same keys ParseQuery reads.
func (q Query) Values() url.Values {
	q = q.Normalize()
	v := url.Values{}
	if q.Terms != "" {
		v.Set("q", q.Terms)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	for _, t := range q.Tags {
		v.Add("tag", t)
	}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("per_page", strconv.Itoa(q.PerPage))
	return v
}

// ParseQuery reads a Query from URL parameters: q, category, tag (repeated)
// or tags (comma separated), page and per_page. Malformed numbers fall back
// to the defaults.
func ParseQuery(v url.Values) Query {
	q := Query{
		Terms:    v.Get("q"),
		Category: v.Get("category"),
		Tags:     append([]string(nil), v["tag"]...),
	}
	for _, raw := range v["tags"] {
		q.Tags = append(q.Tags, strings.Split(raw, ",")...)
	}
	q.Page, _ = strconv.Atoi(v.Get("page"))
	q.PerPage, _ = strconv.Atoi(v.Get("per_page"))
	return q.Normalize()
}

// Item is a single search hit.
type Item struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary,omitempty"`
	URL      string   `json:"url,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Result is one page of matches.
type Result struct {
	Items   []Item `json:"items"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

// Pages returns the number of pages needed for Total items.
func (r Result) Pages() int {
	if r.PerPage < 1 || r.Total < 1 {
		return 0
	}
	return (r.Total + r.PerPage - 1) / r.PerPage
}

// HasNext reports whether a page follows this one.
func (r Result) HasNext() bool { return r.Page < r.Pages() }

// HasPrev reports whether a page precedes this one.
func (r Result) HasPrev() bool { return r.Page > 1 }

// Searcher answers queries.
type Searcher interface {
	Search(ctx context.Context, q Query) (Result, error)
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, q Query) (Result, error)

func (f SearcherFunc) Search(ctx context.Context, q Query) (Result, error) { return f(ctx, q) }
