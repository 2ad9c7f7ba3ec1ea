// Package http exposes the session catalog over REST. The route shapes
// and response envelopes ({message, sessions|session|updatedSession})
// match what the planner client's remote adapter expects.
package http
