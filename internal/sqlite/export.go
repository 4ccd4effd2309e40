package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/cldflex/internal/table"
)

// Export writes every non-empty table of set to a new SQLite database at
// path. The database is built next to path and renamed into place, so an
// existing file is only replaced by a complete export. All inserts run in
// one transaction.
func Export(ctx context.Context, path string, set *table.Set) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".sqlite-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	tmp.Close()

	if err := exportTo(ctx, tmpName, set); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func exportTo(ctx context.Context, dbPath string, set *table.Set) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning export transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createCatalog); err != nil {
		return fmt.Errorf("creating catalog: %w", err)
	}
	exportedAt := time.Now().UTC().Format(time.RFC3339)
	for _, t := range set.Tables() {
		if t.Len() == 0 {
			continue
		}
		if err := insertTable(ctx, tx, t); err != nil {
			return fmt.Errorf("exporting %s: %w", t.Name, err)
		}
		if _, err := tx.ExecContext(ctx, insertCatalog, t.Name, t.Name+".csv", t.Len(), exportedAt); err != nil {
			return fmt.Errorf("cataloging %s: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export transaction: %w", err)
	}
	return nil
}

// insertTable creates the SQL table for t and inserts its rows with one
// prepared statement.
func insertTable(ctx context.Context, tx *sql.Tx, t *table.Table) error {
	if _, err := tx.ExecContext(ctx, createTableSQL(t.Name, t.Columns)); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertSQL(t.Name, t.Columns))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	for n, r := range t.Rows {
		for i, c := range t.Columns {
			args[i] = cellValue(c, r[c])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", n+1, err)
		}
	}
	return nil
}

// cellValue converts a CSV cell to its SQL value. Empty cells become NULL.
func cellValue(column, v string) any {
	if v == "" {
		return nil
	}
	if columnType(column) == "INTEGER" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return v
}
