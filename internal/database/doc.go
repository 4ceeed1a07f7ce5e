// Package database provides the query executor used by the book repository.
//
// Three adapters are supported behind one Executor interface: a pgx pool, a
// database/sql handle and a sqlx handle. Each adapter binds arguments as
// driver parameters and never interpolates them into the query text.
package database
