// Package search defines the query contract used by pages and the JSON API,
// together with the backends that answer it.
//
// A Query carries free-text terms, an optional category, required tags and a
// page window. Every backend implements Searcher and returns a Result with
// the matching page of items and the total number of matches:
//
//	idx, err := search.LoadStatic(os.DirFS("data"), "catalog.json")
//	if err != nil {
//		return err
//	}
//	res, err := idx.Search(ctx, search.Query{Terms: "cafe", PerPage: 20})
//
// Backends:
//
//   - Static answers from a JSON catalog held in memory. Matching ignores
//     case and diacritics.
//   - Remote forwards the query to an upstream HTTP search API.
//   - Cached wraps any Searcher with a Redis-backed result cache.
//
// The OpenSearch backend lives in integration/database/opensearch.
package search
