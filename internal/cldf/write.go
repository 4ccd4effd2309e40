package cldf

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/cldflex/internal/table"
)

// MetadataFile is the name of the dataset description.
const MetadataFile = "metadata.json"

// Write validates the dataset and writes it to dir. Nothing is written when
// validation fails. It returns the paths of the written files.
func (d *Dataset) Write(dir string) ([]string, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cldf directory: %w", err)
	}

	var written []string
	for i, t := range d.tables {
		path := filepath.Join(dir, d.Metadata.Tables[i].URL)
		if err := t.WriteFile(path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	mdPath := filepath.Join(dir, MetadataFile)
	err := table.WriteAtomic(mdPath, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(d.Metadata); err != nil {
			return fmt.Errorf("encoding metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		return written, err
	}
	written = append(written, mdPath)

	readmePath := filepath.Join(dir, "README.md")
	err = table.WriteAtomic(readmePath, func(w io.Writer) error {
		_, err := io.WriteString(w, d.Readme())
		return err
	})
	if err != nil {
		return written, fmt.Errorf("writing README: %w", err)
	}
	return append(written, readmePath), nil
}

// Write builds, validates and writes a dataset in one step.
func Write(set *table.Set, dir string, opts Options) (*Dataset, []string, error) {
	d, err := Build(set, opts)
	if err != nil {
		return nil, nil, err
	}
	files, err := d.Write(dir)
	if err != nil {
		return d, files, err
	}
	opts.Logger.Info().Str("dir", dir).Int("tables", len(d.tables)).Msg("wrote CLDF dataset")
	return d, files, nil
}

// Readme renders a markdown description of the dataset.
func (d *Dataset) Readme() string {
	md := d.Metadata
	var b strings.Builder
	fmt.Fprintf(&b, "**This dataset was automatically created by [cldflex](%s).**\n\n", ToolURL)
	title := md.Title
	if title == "" {
		title = "CLDF dataset"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if md.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", md.Description)
	}
	if md.Citation != "" {
		fmt.Fprintf(&b, "**Cite as**\n\n> %s\n\n", md.Citation)
	}
	fmt.Fprintf(&b, "**CLDF Metadata**: [%s](./%s)\n\n", MetadataFile, MetadataFile)

	b.WriteString("property | value\n --- | ---\n")
	fmt.Fprintf(&b, "[dc:conformsTo](http://purl.org/dc/terms/conformsTo) | [CLDF %s](%s)\n",
		strings.TrimPrefix(md.ConformsTo, termsURI), md.ConformsTo)
	if len(md.Contributors) > 0 {
		fmt.Fprintf(&b, "[dc:contributor](http://purl.org/dc/terms/contributor) | %s\n", strings.Join(md.Contributors, ", "))
	}
	if md.License != "" {
		fmt.Fprintf(&b, "[dc:license](http://purl.org/dc/terms/license) | %s\n", md.License)
	}
	if md.AccessURL != "" {
		fmt.Fprintf(&b, "[dcat:accessURL](http://www.w3.org/ns/dcat#accessURL) | %s\n", md.AccessURL)
	}
	for _, p := range md.GeneratedBy {
		fmt.Fprintf(&b, "[prov:wasGeneratedBy](http://www.w3.org/ns/prov#wasGeneratedBy) | [%s](%s) %s\n", p.Title, p.URL, p.Description)
	}
	fmt.Fprintf(&b, "[rdf:ID](http://www.w3.org/1999/02/22-rdf-syntax-ns#ID) | %s\n", md.ID)

	for i, c := range md.Tables {
		fmt.Fprintf(&b, "\n## <a name=\"table-%s\"></a>Table [%s](./%s)\n\n", anchor(c.URL), c.URL, c.URL)
		b.WriteString("property | value\n --- | ---\n")
		if c.ConformsTo != "" {
			fmt.Fprintf(&b, "[dc:conformsTo](http://purl.org/dc/terms/conformsTo) | [CLDF %s](%s)\n", c.label, c.ConformsTo)
		}
		fmt.Fprintf(&b, "[dc:extent](http://purl.org/dc/terms/extent) | %d\n", d.tables[i].Len())

		b.WriteString("\n### Columns\n\nName/Property | Datatype | Description\n --- | --- | --- \n")
		fks := map[string]string{}
		for _, fk := range c.Schema.ForeignKeys {
			fks[fk.ColumnReference[0]] = fk.Reference.Resource
		}
		for _, col := range c.Schema.Columns {
			name := col.Name
			if col.PropertyURL != "" {
				name = fmt.Sprintf("[%s](%s)", col.Name, col.PropertyURL)
			}
			datatype := "`" + col.Datatype + "`"
			if col.Separator != "" {
				datatype = fmt.Sprintf("list of `%s` (separated by `%s`)", col.Datatype, strings.ReplaceAll(col.Separator, "\t", `\t`))
			}
			var desc []string
			if col.Name == "ID" && c.Schema.PrimaryKey != nil {
				desc = append(desc, "Primary key")
			}
			if target, ok := fks[col.Name]; ok {
				desc = append(desc, fmt.Sprintf("References [%s](#table-%s)", target, anchor(target)))
			}
			fmt.Fprintf(&b, "%s | %s | %s\n", name, datatype, strings.Join(desc, "<br>"))
		}
	}
	return b.String()
}

func anchor(url string) string {
	return strings.NewReplacer(".", "", "_", "").Replace(url)
}
