// Package apiclient is the HTTP gateway to the marketplace backend.
//
// Every call goes through Client.Do, which:
//
//   - bounds the call with a fixed timeout (DefaultTimeout, 15s);
//   - reads the bearer token from the configured TokenSource at send time
//     and sets exactly one Authorization header, or none when there is no
//     session;
//   - tags the request with an X-Request-ID;
//   - returns 2xx responses unmodified;
//   - on 401 runs every registered UnauthorizedHandler and returns an
//     *Error of KindAuthRejected, never a response;
//   - on any other failure logs it and returns an *Error whose Message is
//     the payload's "message", else the status reason phrase, else
//     FallbackMessage.
//
// The base URL is set once in New and cannot be changed.
//
//	c, err := apiclient.New(cfg.BaseURL,
//	    apiclient.WithTokenSource(sessions),
//	    apiclient.WithLogger(log),
//	)
//	c.OnUnauthorized(func(ctx context.Context) { sessions.HandleUnauthorized(ctx) })
//
//	var page ProductPage
//	err = c.GetJSON(ctx, "/admin/products", url.Values{"page": {"1"}}, &page)
//	if err != nil {
//	    fmt.Println(apiclient.MessageOf(err))
//	}
package apiclient
