// Package sqldb implements the storage interfaces of the auth and core
// packages on database/sql. It works with SQLite and MySQL.
package sqldb

import (
	"database/sql"
)

func mustPrepare(db *sql.DB, query string) *sql.Stmt {
	stmt, err := db.Prepare(query)
	if err != nil {
		panic(err)
	}
	return stmt
}
