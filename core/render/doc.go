// Package render is a streaming document engine for templ components. It
// implements ssr.Renderer.
//
// A Page is rendered in two phases. The shell (the document head and the
// page skeleton) is rendered to a buffer first, together with any inline
// boundaries it references. Deferred boundaries render concurrently once the
// shell is ready and are streamed after it, each as a template chunk that
// replaces its placeholder in the browser.
//
//	page := &render.Page{
//		Shell: layout.Page("Search",
//			render.Slot("summary"),
//			render.Slot("results"),
//		),
//		Inline:   []render.Boundary{{ID: "summary", Content: summary, Fallback: summaryFallback}},
//		Deferred: []render.Boundary{{ID: "results", Content: results, Fallback: spinner}},
//	}
//
// Callback ordering:
//
//   - Inline boundary failures are reported through OnError before
//     OnShellReady; their fallback is rendered in place.
//   - Shell failures, including panics and unknown slots, are reported
//     through OnShellError and nothing is streamed.
//   - Deferred boundary failures are reported through OnError while
//     streaming, after OnShellReady; their fallback stays on the page.
package render
