package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicateName reports a unique-index violation on a name column. The
// index is the authoritative conflict signal; any handler-level pre-check is
// advisory only.
var ErrDuplicateName = errors.New("name already exists")

const mysqlDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
