// Package http provides RoundTripper decorators for the delivery client:
// debug-level request/response dumping and User-Agent injection.
// The decorators are transparent to callers and only observe or amend
// requests; delivery semantics stay with the wrapped transport.
package http
