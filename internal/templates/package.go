package templates

import (
	"fmt"
	"sort"
	"time"
)

// Row is one template row: ESA column code -> cell value. Rows are
// created through NewRow so that a key outside the template's declared
// columns is caught at construction time rather than at serialization.
type Row map[string]string

// NewRow validates cells against the template schema and returns the
// row. Unknown column codes are an integration bug, not user data, so
// they come back as an error the caller should treat as fatal.
func NewRow(id ID, cells map[string]string) (Row, error) {
	t, err := Get(id)
	if err != nil {
		return nil, err
	}
	for code := range cells {
		if t.Column(code) == nil {
			return nil, fmt.Errorf("templates: column %q is not declared in template %s", code, id)
		}
	}
	row := make(Row, len(cells))
	for code, value := range cells {
		row[code] = value
	}
	return row, nil
}

// Meta carries the package-level reporting parameters.
type Meta struct {
	// EntityLEI is the LEI of the entity maintaining the register.
	EntityLEI string

	// EntityCountry is the ISO country code used in the package name.
	EntityCountry string

	// RefPeriod is the reporting reference date.
	RefPeriod time.Time

	// BaseCurrency is the ISO 4217 currency of monetary cells.
	BaseCurrency string

	// DecimalsInteger and DecimalsMonetary are the xBRL-CSV decimal
	// precision parameters.
	DecimalsInteger  int
	DecimalsMonetary int
}

// Package is one complete export unit: every template's rows plus the
// reporting parameters. It is built once per export and never mutated
// after serialization; a new export supersedes it.
type Package struct {
	Meta Meta

	rows map[ID][]Row
}

// NewPackage returns an empty package for the given parameters.
func NewPackage(meta Meta) *Package {
	return &Package{Meta: meta, rows: make(map[ID][]Row)}
}

// Append validates the cells and appends the row to the template.
// Rows keep insertion order; the serializer writes them exactly in the
// order they were appended because the regulator's sample comparisons
// are sequence-sensitive.
func (p *Package) Append(id ID, cells map[string]string) error {
	row, err := NewRow(id, cells)
	if err != nil {
		return err
	}
	p.rows[id] = append(p.rows[id], row)
	return nil
}

// Rows returns the rows of one template in insertion order.
func (p *Package) Rows(id ID) []Row {
	return p.rows[id]
}

// RowCount returns the number of rows held for the template.
func (p *Package) RowCount(id ID) int {
	return len(p.rows[id])
}

// TotalRows returns the number of rows across all templates.
func (p *Package) TotalRows() int {
	n := 0
	for _, rows := range p.rows {
		n += len(rows)
	}
	return n
}

// FilingIndicator is the per-template reported flag. It is derived
// from row counts on every call, never stored.
type FilingIndicator struct {
	Template ID
	Reported bool
}

// FilingIndicators returns one indicator per template in annex order:
// reported is true iff the template holds at least one row.
func (p *Package) FilingIndicators() []FilingIndicator {
	out := make([]FilingIndicator, 0, len(All()))
	for _, t := range All() {
		out = append(out, FilingIndicator{Template: t.ID, Reported: len(p.rows[t.ID]) > 0})
	}
	return out
}

// ReportedTemplates returns the ids of the templates with rows, sorted.
func (p *Package) ReportedTemplates() []ID {
	var ids []ID
	for id, rows := range p.rows {
		if len(rows) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
