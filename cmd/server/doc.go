// Package main is the entry point for the StudySync session service.
//
// The server exposes a REST API for creating, updating, completing,
// and deleting study sessions, backed by a SQLite catalog. Planner
// clients synchronize their local view against this service.
//
// Configuration comes from environment variables (12-factor), with CLI
// flags overriding them and sane defaults for development.
//
// Usage:
//
//	./studysync-server -port 8988
//
// Signals:
//   - SIGINT, SIGTERM: graceful shutdown
package main
