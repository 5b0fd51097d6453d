// Package requestid tags outbound API calls with a correlation id.
//
// The API client calls Apply on every request: if the caller's context
// already carries an id (WithContext), it is reused, otherwise a UUIDv4 is
// generated. The id is sent in the X-Request-ID header and is available to
// structured logs through LoggerExtractor.
package requestid
