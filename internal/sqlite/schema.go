// Package sqlite exports an assembled cldflex table set into one SQLite
// database, one SQL table per output table.
package sqlite

import (
	"fmt"
	"strings"
)

// Catalog DDL. The catalog lists every exported table with its row count.
const (
	createCatalog = `CREATE TABLE cldflex_tables (
    name TEXT PRIMARY KEY,
    file TEXT NOT NULL,
    row_count INTEGER NOT NULL,
    exported_at TEXT NOT NULL
);`

	insertCatalog = `INSERT INTO cldflex_tables (name, file, row_count, exported_at) VALUES (?, ?, ?, ?)`
)

// quote returns name as a quoted SQL identifier.
func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// columnType returns the SQL type of a column.
func columnType(name string) string {
	if name == "Index" {
		return "INTEGER"
	}
	return "TEXT"
}

// createTableSQL builds the DDL for one output table. ID becomes the primary
// key when present.
func createTableSQL(name string, columns []string) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = fmt.Sprintf("    %s %s", quote(c), columnType(c))
		if c == "ID" {
			defs[i] += " PRIMARY KEY"
		}
	}
	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);", quote(name), strings.Join(defs, ",\n"))
}

// insertSQL builds a parameterized insert for all columns of a table.
func insertSQL(name string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quote(c)
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(name), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}
