package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is the MySQL error number for unique-constraint violations
const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a unique-constraint violation
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
