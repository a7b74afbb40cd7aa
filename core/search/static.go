package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Static is an in-memory Searcher over a fixed catalog. It is safe for
// concurrent use.
type Static struct {
	items []entry
}

// entry is an item with its folded fields precomputed.
type entry struct {
	item     Item
	text     string
	category string
	tags     []string
}

// NewStatic indexes items. Item IDs must be unique and non-empty.
func NewStatic(items []Item) (*Static, error) {
	s := &Static{items: make([]entry, 0, len(items))}
	seen := make(map[string]struct{}, len(items))

	for i, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("%w: item %d has no id", ErrInvalidCatalog, i)
		}
		if _, ok := seen[it.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateItem, it.ID)
		}
		seen[it.ID] = struct{}{}

		e := entry{
			item:     it,
			text:     Fold(strings.Join(append([]string{it.Title, it.Summary}, it.Tags...), " ")),
			category: Fold(it.Category),
			tags:     make([]string, len(it.Tags)),
		}
		for j, t := range it.Tags {
			e.tags[j] = Fold(t)
		}
		s.items = append(s.items, e)
	}

	return s, nil
}

// catalog is the on-disk format read by LoadStatic.
type catalog struct {
	Items []Item `json:"items"`
}

// LoadStatic reads a JSON catalog of the form {"items": [...]} from fsys.
func LoadStatic(fsys fs.FS, name string) (*Static, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("search: read catalog %s: %w", name, err)
	}

	var c catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, name, err)
	}

	return NewStatic(c.Items)
}

// LoadStaticFile reads a catalog from a path on disk.
func LoadStaticFile(path string) (*Static, error) {
	return LoadStatic(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// Len returns the catalog size.
func (s *Static) Len() int { return len(s.items) }

// Search returns the items matching every term, the category and all tags,
// in catalog order.
func (s *Static) Search(ctx context.Context, q Query) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	q = q.Normalize()
	terms := strings.Fields(Fold(q.Terms))
	category := Fold(q.Category)
	tags := make([]string, len(q.Tags))
	for i, t := range q.Tags {
		tags[i] = Fold(t)
	}

	res := Result{Items: []Item{}, Page: q.Page, PerPage: q.PerPage}
	offset := q.Offset()

	for _, e := range s.items {
		if !e.matches(terms, category, tags) {
			continue
		}
		if res.Total >= offset && len(res.Items) < q.PerPage {
			res.Items = append(res.Items, e.item)
		}
		res.Total++
	}

	return res, nil
}

func (e entry) matches(terms []string, category string, tags []string) bool {
	if category != "" && e.category != category {
		return false
	}
	for _, t := range tags {
		if !slices.Contains(e.tags, t) {
			return false
		}
	}
	for _, t := range terms {
		if !strings.Contains(e.text, t) {
			return false
		}
	}
	return true
}
