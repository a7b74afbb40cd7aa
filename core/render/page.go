package render

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Page is the render context accepted by Engine.
type Page struct {
	// Shell renders the start of the document: everything up to and
	// including the page skeleton. It must not close <body> or <html>.
	Shell templ.Component
	// Inline boundaries render before the shell and are placed with Slot.
	Inline []Boundary
	// Deferred boundaries render after the shell and stream as they finish.
	// Their Fallback is shown at the Slot until then.
	Deferred []Boundary
	// Tail closes the document. Defaults to "</body></html>".
	Tail templ.Component
}

// Boundary is an independently rendered part of a page.
type Boundary struct {
	// ID names the slot; ASCII letters, digits, '-', '_', '.' and ':' only.
	ID       string
	Content  templ.Component
	Fallback templ.Component
}

type slotsKey struct{}

// Slot renders the boundary with the given id inside a shell. Rendering a
// slot outside an engine render, or for an unknown id, fails the shell.
func Slot(id string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		slots, _ := ctx.Value(slotsKey{}).(map[string]string)
		html, ok := slots[id]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSlot, id)
		}
		_, err := io.WriteString(w, html)
		return err
	})
}

func placeholderID(id string) string { return "ssr-b:" + id }
func templateID(id string) string    { return "ssr-t:" + id }

const swapScript = `<script>function __ssrSwap(id){var t=document.getElementById("ssr-t:"+id),p=document.getElementById("ssr-b:"+id);if(t&&p){p.replaceWith(t.content.cloneNode(true));}if(t){t.remove();}}</script>`

const defaultTail = "</body></html>"
