// Package apiclient is a small JSON-over-HTTP client for upstream APIs.
//
// A Client is a value constructed once at startup and passed to whatever
// needs it. There is no package-level instance.
//
//	client, err := apiclient.New("https://api.example.com",
//		apiclient.WithTimeout(5*time.Second),
//		apiclient.WithHeader("Authorization", "Bearer "+token),
//		apiclient.WithRetry(3, 100*time.Millisecond),
//	)
//	if err != nil {
//		return err
//	}
//
//	var res search.Result
//	err = client.GetJSON(ctx, "/search", url.Values{"q": {"cafe"}}, &res)
//
// Transport errors and 5xx responses are retried with exponential backoff.
// Any other non-2xx response is returned as a *StatusError without retrying.
//
// # Error Types
//
//   - ErrInvalidBaseURL: base URL is not absolute http(s)
//   - ErrRequestFailed: every attempt failed
//   - ErrDecodeResponse: the body is not the expected JSON
//   - *StatusError: upstream answered with a non-2xx status
package apiclient
