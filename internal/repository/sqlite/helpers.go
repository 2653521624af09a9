package sqlite

import (
	"database/sql"
)

// scanStrings drains a single-column result set
func scanStrings(rows *sql.Rows) ([]string, error) {
	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
