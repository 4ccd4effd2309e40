package cldf

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/cldflex/internal/table"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// ToolURL identifies cldflex in provenance and README.
const ToolURL = "https://pypi.org/project/cldflex"

// Options configures dataset creation.
type Options struct {
	Module Module
	// Parameters is multi, single or none; "" means multi.
	Parameters   string
	Separator    string
	Metadata     map[string]string
	Contributors []string
	// Languages is used as LanguageTable when set. Otherwise a single row
	// is derived from Glottocode or LanguageID.
	Languages  *table.Table
	LanguageID string
	Glottocode string
	Version    string
	Logger     zerolog.Logger
}

// Dataset is a CLDF dataset ready to be validated and written.
type Dataset struct {
	Metadata Metadata

	tables []*table.Table
	specs  []componentSpec
}

// Tables returns the dataset tables in metadata order.
func (d *Dataset) Tables() []*table.Table {
	return d.tables
}

// Build maps the tables of set onto the components of opts.Module. The
// input tables are not modified.
func Build(set *table.Set, opts Options) (*Dataset, error) {
	specs, ok := components[opts.Module]
	if !ok {
		return nil, fmt.Errorf("%w: unknown CLDF module %q", types.ErrConfiguration, opts.Module)
	}
	mode := opts.Parameters
	if mode == "" {
		mode = types.ParametersMulti
	}
	switch mode {
	case types.ParametersMulti, types.ParametersSingle, types.ParametersNone:
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownParameterMode, mode)
	}
	sep := opts.Separator
	if sep == "" {
		sep = types.DefaultSeparator
	}

	selected := map[string]*table.Table{}
	for _, t := range set.Tables() {
		if _, ok := specs[t.Name]; ok && t.Len() > 0 {
			selected[t.Name] = t.Clone()
		}
	}
	if langs := languageTable(opts); langs != nil {
		selected[types.LanguagesTable] = langs
	}
	if _, ok := selected[types.ExamplesTable]; !ok && opts.Module == Generic {
		return nil, fmt.Errorf("%w: no examples to package", types.ErrNoInput)
	}

	if langs := selected[types.LanguagesTable]; langs != nil && langs.Len() == 1 {
		id := langs.Rows[0]["ID"]
		for name, t := range selected {
			if name != types.LanguagesTable && t.HasColumn("Language_ID") {
				t.Set("Language_ID", id)
			}
		}
	}
	if opts.Module == Dictionary {
		if entries := selected[types.MorphemesTable]; entries != nil && !entries.HasColumn("Headword") {
			entries.AddColumn("Headword")
			for _, r := range entries.Rows {
				r["Headword"] = r["Name"]
			}
		}
	} else {
		applyParameterMode(selected, mode, sep)
	}

	d := &Dataset{Metadata: metadata(opts)}
	for _, name := range moduleOrder {
		t, ok := selected[name]
		if !ok {
			continue
		}
		spec := specs[name]
		d.tables = append(d.tables, t)
		d.specs = append(d.specs, spec)
		d.Metadata.Tables = append(d.Metadata.Tables, component(opts.Module, name, t, selected, mode, sep))
	}
	return d, nil
}

// languageTable returns the configured languages table or derives one row
// from the glottocode or language ID. It returns nil when neither exists.
func languageTable(opts Options) *table.Table {
	if opts.Languages != nil && opts.Languages.Len() > 0 {
		t := opts.Languages.Clone()
		t.Name = types.LanguagesTable
		return t
	}
	id := opts.Glottocode
	if id == "" {
		id = opts.LanguageID
	}
	if id == "" {
		return nil
	}
	t := table.New(types.LanguagesTable, "ID", "Name", "Glottocode")
	name := opts.Metadata["language"]
	if name == "" {
		name = id
	}
	t.Append(table.Row{"ID": id, "Name": name, "Glottocode": opts.Glottocode})
	return t
}

// applyParameterMode rewrites Parameter_ID columns. In single mode only the
// first value is kept; in none mode the IDs are replaced by the meanings
// they stand for and the senses table is dropped.
func applyParameterMode(tables map[string]*table.Table, mode, sep string) {
	if mode == types.ParametersMulti {
		return
	}
	names := map[string]string{}
	if senses := tables[types.SensesTable]; senses != nil {
		for _, r := range senses.Rows {
			names[r["ID"]] = r["Name"]
		}
	}
	for name, t := range tables {
		if name == types.SensesTable || !t.HasColumn("Parameter_ID") {
			continue
		}
		for _, r := range t.Rows {
			ids := table.Split(r["Parameter_ID"], sep)
			switch {
			case len(ids) == 0:
			case mode == types.ParametersSingle:
				r["Parameter_ID"] = ids[0]
			default:
				meanings := make([]string, len(ids))
				for i, id := range ids {
					meanings[i] = names[id]
					if meanings[i] == "" {
						meanings[i] = "unknown meaning"
					}
				}
				r["Parameter_ID"] = strings.Join(meanings, ", ")
			}
		}
	}
	if mode == types.ParametersNone {
		delete(tables, types.SensesTable)
	}
}

// component builds the CSVW description of one table. Foreign keys are
// only declared when the referenced table is part of the dataset.
func component(module Module, name string, t *table.Table, present map[string]*table.Table, mode, sep string) Component {
	spec := components[module][name]
	c := Component{URL: spec.url, name: name, label: name}
	if spec.component != "" {
		c.ConformsTo = termsURI + spec.component
		c.label = spec.component
	}
	required := map[string]bool{}
	for _, col := range spec.required {
		required[col] = true
	}
	multi := map[string]bool{}
	for _, col := range spec.multi {
		multi[col] = true
	}
	for _, col := range t.Columns {
		cc := Column{Name: col, Required: required[col], Datatype: "string"}
		if term, ok := properties[col]; ok {
			cc.PropertyURL = termsURI + term
		}
		switch col {
		case "Index":
			cc.Datatype = "integer"
		case "Latitude", "Longitude":
			cc.Datatype = "decimal"
		}
		switch {
		case tierColumns[col]:
			cc.Separator = "\t"
		case col == "Parameter_ID":
			if mode == types.ParametersMulti && multi[col] {
				cc.Separator = sep
			}
		case multi[col]:
			cc.Separator = sep
		}
		c.Schema.Columns = append(c.Schema.Columns, cc)
	}
	if t.HasColumn("ID") {
		c.Schema.PrimaryKey = []string{"ID"}
	}
	for _, col := range t.Columns {
		target, ok := spec.foreign[col]
		if !ok {
			continue
		}
		if _, ok := present[target]; !ok {
			continue
		}
		targetSpec := components[module][target]
		c.Schema.ForeignKeys = append(c.Schema.ForeignKeys, ForeignKey{
			ColumnReference: []string{col},
			Reference:       Reference{Resource: targetSpec.url, ColumnReference: []string{"ID"}},
		})
	}
	return c
}

func metadata(opts Options) Metadata {
	md := opts.Metadata
	m := Metadata{
		Context:      []any{"http://www.w3.org/ns/csvw", map[string]string{"@language": "en"}},
		ConformsTo:   termsURI + string(opts.Module),
		ID:           md["id"],
		Title:        md["title"],
		Description:  md["description"],
		License:      strings.ReplaceAll(md["license"], " ", "-"),
		Citation:     md["citation"],
		AccessURL:    md["url"],
		Contributors: opts.Contributors,
		GeneratedBy: []Provenance{{
			Title:       "cldflex",
			Description: opts.Version,
			URL:         ToolURL,
		}},
	}
	if m.ID == "" {
		m.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(ToolURL+"/"+string(opts.Module)+"/"+m.Title)).String()
	}
	if m.License == "" {
		opts.Logger.Warn().Msg("no license specified in the CLDF metadata")
	}
	return m
}
