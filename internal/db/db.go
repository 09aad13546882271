package db

import "database/sql"

// DB wraps *sql.DB so repositories depend on our type, not database/sql.
type DB struct {
	*sql.DB
}
