package sqlstore

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect captures the few places where SQLite and PostgreSQL differ for the
// statements this package issues.
type Dialect struct {
	Name string

	bindvar         func(n int) string
	insertionOrder  string
	uniqueViolation func(err error) bool
}

// SQLite is the dialect for modernc.org/sqlite.
var SQLite = Dialect{
	Name:           "sqlite",
	bindvar:        func(int) string { return "?" },
	insertionOrder: "rowid",
	uniqueViolation: func(err error) bool {
		var se *sqlite.Error
		if !errors.As(err, &se) {
			return false
		}
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	},
}

// Postgres is the dialect for the pgx stdlib driver.
var Postgres = Dialect{
	Name:           "postgres",
	bindvar:        func(n int) string { return "$" + strconv.Itoa(n) },
	insertionOrder: "seq",
	uniqueViolation: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == "23505"
	},
}

// rebind rewrites the ? placeholders of query into the dialect's form.
func (d Dialect) rebind(query string) string {
	if d.bindvar == nil {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(d.bindvar(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
