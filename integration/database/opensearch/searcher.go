package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/dmitrymomot/ssrkit/core/search"
)

// Searcher answers search queries from one index.
type Searcher struct {
	client *opensearch.Client
	index  string
}

// NewSearcher creates a Searcher over index.
func NewSearcher(client *opensearch.Client, index string) *Searcher {
	return &Searcher{client: client, index: index}
}

var _ search.Searcher = (*Searcher)(nil)

func (s *Searcher) Search(ctx context.Context, q search.Query) (search.Result, error) {
	q = q.Normalize()

	body, err := json.Marshal(buildQuery(q))
	if err != nil {
		return search.Result{}, errors.Join(ErrSearchFailed, err)
	}

	res, err := opensearchapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}.Do(ctx, s.client)
	if err != nil {
		return search.Result{}, errors.Join(ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return search.Result{}, fmt.Errorf("%w: %s: %s", ErrSearchFailed, res.Status(), bytes.TrimSpace(msg))
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return search.Result{}, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	out := search.Result{
		Items:   make([]search.Item, 0, len(sr.Hits.Hits)),
		Total:   sr.Hits.Total.Value,
		Page:    q.Page,
		PerPage: q.PerPage,
	}
	for _, h := range sr.Hits.Hits {
		item := h.Source
		item.ID = h.ID
		out.Items = append(out.Items, item)
	}

	return out, nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string      `json:"_id"`
			Source search.Item `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// buildQuery translates q into the query DSL. Terms are scored across the
// text fields; category and tags filter without scoring.
func buildQuery(q search.Query) map[string]any {
	var must any = map[string]any{"match_all": map[string]any{}}
	if q.Terms != "" {
		must = map[string]any{
			"multi_match": map[string]any{
				"query":    q.Terms,
				"fields":   []string{"title^2", "summary", "tags"},
				"operator": "and",
			},
		}
	}

	filter := []any{}
	if q.Category != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"category": q.Category}})
	}
	for _, t := range q.Tags {
		filter = append(filter, map[string]any{"term": map[string]any{"tags": t}})
	}

	return map[string]any{
		"from":             q.Offset(),
		"size":             q.PerPage,
		"track_total_hits": true,
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": filter,
			},
		},
	}
}
