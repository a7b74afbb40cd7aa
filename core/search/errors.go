package search

import "errors"

var (
	ErrInvalidCatalog = errors.New("search: invalid catalog")
	ErrDuplicateItem  = errors.New("search: duplicate item id")
	ErrNilSearcher    = errors.New("search: nil searcher")
	ErrNilCache       = errors.New("search: nil cache client")
)
