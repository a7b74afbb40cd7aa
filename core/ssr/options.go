package ssr

import "log/slog"

// Option configures a Responder.
type Option func(*Responder)

// WithLogger sets the sink for shell and render errors.
func WithLogger(l *slog.Logger) Option {
	return func(r *Responder) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithContentType overrides the HTML media type set on responses.
func WithContentType(ct string) Option {
	return func(r *Responder) {
		if ct != "" {
			r.contentType = ct
		}
	}
}
