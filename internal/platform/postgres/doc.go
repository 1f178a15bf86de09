// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx stdlib driver. Stores accept a store.DBTX so the
// same code runs against a *sql.DB or inside a *sql.Tx obtained via WithTx.
package postgres
