package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/ssrkit/core/render"
	"github.com/dmitrymomot/ssrkit/core/response"
	"github.com/dmitrymomot/ssrkit/core/search"
)

const styles = `body{font-family:system-ui,sans-serif;max-width:48rem;margin:0 auto;padding:1rem}` +
	`header{display:flex;gap:1rem;align-items:center}main{min-height:60vh}` +
	`.loading{color:#777}.hit{margin:1rem 0}.hit p{margin:.25rem 0;color:#444}` +
	`.pager{display:flex;gap:1rem}footer{color:#777;font-size:.875rem}`

var esc = templ.EscapeString[string]

// raw writes trusted markup.
func raw(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// layout opens the document and the main element, then renders body.
// The matching close tags come from tail.
func layout(app, title string, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>%s · %s</title><style>%s</style></head><body>`+
			`<header><a href="/"><strong>%s</strong></a><a href="/search">Search</a></header><main>`,
			esc(title), esc(app), styles, esc(app)); err != nil {
			return err
		}
		for _, c := range body {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func tail(app string) templ.Component {
	return raw(`</main><footer>` + esc(app) + `</footer></body></html>`)
}

func homePage(app string) *render.Page {
	return &render.Page{
		Shell: layout(app, "Home",
			raw(`<h1>Welcome</h1><p>Find guides, recipes and articles.</p>`),
			searchForm(search.Query{}),
		),
		Tail: tail(app),
	}
}

// searchPage renders the form inline and streams the results once the
// searcher answers.
func searchPage(app string, q search.Query, s search.Searcher) *render.Page {
	page := &render.Page{
		Inline: []render.Boundary{{ID: "form", Content: searchForm(q)}},
		Tail:   tail(app),
	}

	if q.IsEmpty() {
		page.Shell = layout(app, "Search", render.Slot("form"),
			raw(`<p>Type something to search.</p>`))
		return page
	}

	page.Shell = layout(app, "Search: "+q.Terms, render.Slot("form"), render.Slot("results"))
	page.Deferred = []render.Boundary{{
		ID:       "results",
		Content:  results(s, q),
		Fallback: raw(`<p class="loading">Searching…</p>`),
	}}
	return page
}

func notFoundPage(app, path string) *render.Page {
	return &render.Page{
		Shell: layout(app, "Not found",
			raw(`<h1>Page not found</h1><p>Nothing lives at <code>`+esc(path)+`</code>.</p>`),
			searchForm(search.Query{}),
		),
		Tail: tail(app),
	}
}

func searchForm(q search.Query) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<form action="/search" method="get" role="search">`+
			`<input type="search" name="q" value="%s" placeholder="Search" autofocus>`+
			`<input type="text" name="category" value="%s" placeholder="Category">`+
			`<button type="submit">Search</button></form>`,
			esc(q.Terms), esc(q.Category))
		return err
	})
}

// results queries s and renders one page of hits with pagination links.
func results(s search.Searcher, q search.Query) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		res, err := s.Search(ctx, q)
		if err != nil {
			return fmt.Errorf("search %q: %w", q.Terms, err)
		}

		var b strings.Builder
		if res.Total == 0 {
			b.WriteString(`<p>No results.</p>`)
		} else {
			fmt.Fprintf(&b, `<p>%d result%s</p><ol start="%d">`, res.Total, plural(res.Total), q.Offset()+1)
			for _, it := range res.Items {
				fmt.Fprintf(&b, `<li class="hit" id="hit-%s"><a href="%s">%s</a>`,
					esc(it.ID), esc(string(templ.URL(it.URL))), esc(it.Title))
				if it.Summary != "" {
					fmt.Fprintf(&b, `<p>%s</p>`, esc(it.Summary))
				}
				b.WriteString(`</li>`)
			}
			b.WriteString(`</ol>`)
		}

		if res.HasPrev() || res.HasNext() {
			b.WriteString(`<nav class="pager">`)
			if res.HasPrev() {
				fmt.Fprintf(&b, `<a rel="prev" href="%s">Previous</a>`, esc(pageURL(q, res.Page-1)))
			}
			fmt.Fprintf(&b, `<span>Page %d of %d</span>`, res.Page, res.Pages())
			if res.HasNext() {
				fmt.Fprintf(&b, `<a rel="next" href="%s">Next</a>`, esc(pageURL(q, res.Page+1)))
			}
			b.WriteString(`</nav>`)
		}

		_, err = io.WriteString(w, b.String())
		return err
	})
}

func pageURL(q search.Query, page int) string {
	v := q.Values()
	v.Set("page", strconv.Itoa(page))
	return "/search?" + v.Encode()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// errorPage renders errors raised before a document started streaming.
func errorPage(app string) func(response.HTTPError) templ.Component {
	return func(e response.HTTPError) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			body := raw(fmt.Sprintf(`<h1>%d %s</h1><p>%s</p>`,
				e.Status, esc(http.StatusText(e.Status)), esc(e.Message)))
			if err := layout(app, http.StatusText(e.Status), body).Render(ctx, w); err != nil {
				return err
			}
			return tail(app).Render(ctx, w)
		})
	}
}
