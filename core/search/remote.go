package search

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/ssrkit/pkg/apiclient"
)

// DefaultRemotePath is the upstream endpoint queried by Remote.
const DefaultRemotePath = "/search"

// Remote forwards queries to an upstream search API that accepts the
// parameters produced by Query.Values and answers with a Result document.
type Remote struct {
	client *apiclient.Client
	path   string
}

// NewRemote creates a Remote calling path on client. An empty path means
// DefaultRemotePath.
func NewRemote(client *apiclient.Client, path string) *Remote {
	if path == "" {
		path = DefaultRemotePath
	}
	return &Remote{client: client, path: path}
}

func (r *Remote) Search(ctx context.Context, q Query) (Result, error) {
	q = q.Normalize()

	var res Result
	if err := r.client.GetJSON(ctx, r.path, q.Values(), &res); err != nil {
		return Result{}, fmt.Errorf("search: remote: %w", err)
	}
	if res.Items == nil {
		res.Items = []Item{}
	}
	if res.Page == 0 {
		res.Page = q.Page
	}
	if res.PerPage == 0 {
		res.PerPage = q.PerPage
	}
	return res, nil
}
