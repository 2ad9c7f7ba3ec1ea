// Package catalog implements the authoritative session store served over
// HTTP. Reads are answered from an in-memory map; every mutation is
// written through a Repository (SQLite by default) before the map is
// updated.
//
// The catalog accepts the legacy "upcoming" status on input and stores
// the canonical taxonomy only.
package catalog
