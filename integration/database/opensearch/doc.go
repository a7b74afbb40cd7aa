// Package opensearch connects to an OpenSearch cluster and answers search
// queries from an index.
//
// New builds a client and verifies the cluster answers before returning it.
// Searcher implements search.Searcher on top of the client:
//
//	client, err := opensearch.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	searcher := opensearch.NewSearcher(client, cfg.Index)
//	res, err := searcher.Search(ctx, search.Query{Terms: "espresso"})
//
// Documents in the index are expected to carry the search.Item fields
// (title, summary, url, category, tags). The document _id becomes the item ID.
// Category and tags are matched exactly, so map them as keyword fields.
//
// Errors can be checked with errors.Is: ErrConnectionFailed,
// ErrHealthcheckFailed and ErrSearchFailed.
package opensearch
