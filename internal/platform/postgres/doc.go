// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in internal/store, along with the embedded goose
// schema migrations. Queries are parameterized and run through store.DBTX,
// so every store works on either a *sql.DB or a *sql.Tx.
package postgres
