package cldf

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/cldflex/internal/table"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// ValidationError lists every problem found in a dataset.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "cldf validation: " + e.Problems[0]
	}
	return fmt.Sprintf("cldf validation: %d problems, first: %s", len(e.Problems), e.Problems[0])
}

// Is makes errors.Is(err, types.ErrValidation) hold.
func (e *ValidationError) Is(target error) bool {
	return target == types.ErrValidation
}

// Validate checks primary keys, required columns, foreign keys and the
// alignment of analyzed-word and gloss tiers. It returns a
// *ValidationError or nil.
func (d *Dataset) Validate() error {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	ids := map[string]map[string]bool{}
	for i, t := range d.tables {
		c := d.Metadata.Tables[i]
		seen := map[string]bool{}
		for n, r := range t.Rows {
			id := r["ID"]
			if c.Schema.PrimaryKey != nil {
				switch {
				case id == "":
					report("%s row %d: empty ID", c.URL, n+1)
				case seen[id]:
					report("%s row %d: duplicate ID %q", c.URL, n+1, id)
				}
			}
			seen[id] = true
		}
		ids[c.URL] = seen

		for _, col := range c.Schema.Columns {
			if !col.Required {
				continue
			}
			for n, r := range t.Rows {
				if r[col.Name] == "" {
					report("%s row %d: missing required %s", c.URL, n+1, col.Name)
				}
			}
		}
		for _, col := range d.specs[i].required {
			if !t.HasColumn(col) {
				report("%s: missing required column %s", c.URL, col)
			}
		}
		checkTiers(c, t, report)
	}

	for i, t := range d.tables {
		c := d.Metadata.Tables[i]
		for _, fk := range c.Schema.ForeignKeys {
			col := fk.ColumnReference[0]
			target := ids[fk.Reference.Resource]
			sep := separatorOf(c, col)
			for n, r := range t.Rows {
				for _, v := range values(r[col], sep) {
					if !target[v] {
						report("%s row %d: %s %q not found in %s", c.URL, n+1, col, v, fk.Reference.Resource)
					}
				}
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func checkTiers(c Component, t *table.Table, report func(string, ...any)) {
	if !t.HasColumn("Analyzed_Word") || !t.HasColumn("Gloss") {
		return
	}
	for n, r := range t.Rows {
		words, glosses := r["Analyzed_Word"], r["Gloss"]
		if words == "" || glosses == "" {
			continue
		}
		if a, b := len(strings.Split(words, "\t")), len(strings.Split(glosses, "\t")); a != b {
			report("%s row %d: %d analyzed words but %d glosses", c.URL, n+1, a, b)
		}
	}
}

func separatorOf(c Component, name string) string {
	for _, col := range c.Schema.Columns {
		if col.Name == name {
			return col.Separator
		}
	}
	return ""
}

func values(cell, sep string) []string {
	if cell == "" {
		return nil
	}
	if sep == "" {
		return []string{cell}
	}
	return table.Split(cell, sep)
}
