// Package store defines the persistence ports of the recipe API: one
// interface per entity, the DBTX abstraction shared by *sql.DB and *sql.Tx,
// transaction helpers, and the sentinel errors every implementation returns.
// Services depend only on these interfaces, so they can run against
// PostgreSQL or in-memory fakes.
package store
