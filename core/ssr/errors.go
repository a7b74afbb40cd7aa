package ssr

import "errors"

// ErrNoStream is reported through the body when the renderer signaled
// shell-ready but returned no stream to pipe.
var ErrNoStream = errors.New("ssr: renderer returned no stream")
