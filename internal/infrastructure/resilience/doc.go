// Package resilience implements a circuit breaker guarding calls to the
// remote session service. The synchronization store fails fast while the
// breaker is open instead of queueing doomed round-trips.
package resilience
