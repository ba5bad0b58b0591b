package db

import (
	"errors"
	"regexp"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// mysqlErrDupEntry is ER_DUP_ENTRY.
const mysqlErrDupEntry = 1062

// uniqueViolationRe matches the duplicate-key messages of the supported stores
// (and PostgreSQL's, for errors that arrive already stringified through a proxy).
var uniqueViolationRe = regexp.MustCompile(`duplicate key value violates unique constraint|UNIQUE constraint failed|Duplicate entry .* for key`)

// IsUniqueViolation reports whether err is a uniqueness-constraint violation
// raised by the store. Driver error types are checked first; the message
// pattern is a fallback for errors that lost their type along the way.
// Any other failure, including nil, reports false.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlErrDupEntry
	}
	return uniqueViolationRe.MatchString(err.Error())
}
