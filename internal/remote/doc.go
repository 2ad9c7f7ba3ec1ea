// Package remote implements the HTTP client for the session catalog
// service. It is the only component that knows the wire envelopes; the
// synchronization store sees plain sessions and errors.
package remote
