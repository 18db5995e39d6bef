// Package testdb provides helpers for PostgreSQL integration tests. Tests
// using it are skipped unless DATABASE_URL points at a disposable database.
package testdb
