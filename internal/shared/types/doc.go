// Package types defines the study session model shared by the catalog
// service, the HTTP API, and the client-side synchronization store.
//
// The canonical status vocabulary is the four-value client taxonomy
// (planned, in-progress, postponed, completed). The legacy wire value
// "upcoming" is accepted on input and mapped to planned by StatusFromWire;
// it is never emitted.
package types
