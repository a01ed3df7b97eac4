// Package templates defines the Register of Information template set:
// the fixed template identifiers, the ordered column layout of each
// template, and the typed row/package model built on top of them.
//
// The schema declared here is the single source of truth for both the
// package serializer (column order, CSV headers, file names) and the
// validation engine (required fields, enumerated cells, cross-template
// references). Neither side carries its own copy.
package templates

import (
	"fmt"
	"strings"

	"dora-roi/internal/esa"
)

// ID identifies one of the fixed RoI templates. The set is defined by
// the ESA taxonomy and never changes at runtime.
type ID string

const (
	B0101 ID = "B_01.01"
	B0102 ID = "B_01.02"
	B0103 ID = "B_01.03"
	B0201 ID = "B_02.01"
	B0202 ID = "B_02.02"
	B0203 ID = "B_02.03"
	B0301 ID = "B_03.01"
	B0302 ID = "B_03.02"
	B0303 ID = "B_03.03"
	B0401 ID = "B_04.01"
	B0501 ID = "B_05.01"
	B0502 ID = "B_05.02"
	B0601 ID = "B_06.01"
	B0701 ID = "B_07.01"
	B9901 ID = "B_99.01"
	B9902 ID = "B_99.02"
)

// FileName returns the CSV file name for the template. The id is
// lowercased and the dot between the two number segments is kept as a
// literal dot: B_01.01 -> b_01.01.csv. External validators reject
// packages where the dot was replaced, so this mapping is load-bearing.
func (id ID) FileName() string {
	return strings.ToLower(string(id)) + ".csv"
}

// Column describes one template column.
type Column struct {
	// Code is the ESA column code, e.g. c0010.
	Code string

	// Description is the human-readable column label from the annex.
	Description string

	// Required marks columns that must be non-empty in every row.
	Required bool

	// Enum, when set, names the controlled vocabulary the cell value
	// must come from.
	Enum esa.Category
}

// Template is the declarative schema of one RoI template.
type Template struct {
	ID      ID
	Name    string
	Columns []Column
}

// Codes returns the column codes in declared order. This is the CSV
// header of the template file.
func (t *Template) Codes() []string {
	codes := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		codes[i] = c.Code
	}
	return codes
}

// Column returns the column with the given code, or nil.
func (t *Template) Column(code string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Code == code {
			return &t.Columns[i]
		}
	}
	return nil
}

// Required returns the codes of the required columns in declared order.
func (t *Template) Required() []string {
	var codes []string
	for _, c := range t.Columns {
		if c.Required {
			codes = append(codes, c.Code)
		}
	}
	return codes
}

// Reference declares a cross-template foreign key: every non-empty
// value of From.Column must appear as a To.Column value.
type Reference struct {
	FromTemplate ID
	FromColumn   string
	ToTemplate   ID
	ToColumn     string
}

// registry holds the full template set, keyed and in annex order.
var registry = buildRegistry()

// All returns every template in annex order.
func All() []*Template {
	return registry.ordered
}

// Get returns the template schema for id. Unknown ids are a programmer
// error, reported as a non-nil error the caller should treat as fatal.
func Get(id ID) (*Template, error) {
	t, ok := registry.byID[id]
	if !ok {
		return nil, fmt.Errorf("templates: unknown template id %q", id)
	}
	return t, nil
}

// MustGet is Get for static ids known at compile time.
func MustGet(id ID) *Template {
	t, err := Get(id)
	if err != nil {
		panic(err)
	}
	return t
}

// References returns the declared cross-template foreign keys.
func References() []Reference {
	return registry.references
}

type registryData struct {
	ordered    []*Template
	byID       map[ID]*Template
	references []Reference
}

func buildRegistry() *registryData {
	r := &registryData{byID: make(map[ID]*Template)}

	add := func(id ID, name string, cols ...Column) {
		t := &Template{ID: id, Name: name, Columns: cols}
		r.ordered = append(r.ordered, t)
		r.byID[id] = t
	}

	add(B0101, "Entity maintaining the register of information",
		Column{Code: "c0010", Description: "LEI of the entity maintaining the register", Required: true},
		Column{Code: "c0020", Description: "Name of the entity", Required: true},
		Column{Code: "c0030", Description: "Country of the entity", Required: true, Enum: esa.Country},
		Column{Code: "c0040", Description: "Type of entity", Required: true, Enum: esa.EntityType},
		Column{Code: "c0050", Description: "Competent authority", Required: true},
		Column{Code: "c0060", Description: "Date of the reporting", Required: true},
	)

	add(B0102, "Entities within the scope of the register",
		Column{Code: "c0010", Description: "LEI of the entity", Required: true},
		Column{Code: "c0020", Description: "Name of the entity", Required: true},
		Column{Code: "c0030", Description: "Country of the entity", Required: true, Enum: esa.Country},
		Column{Code: "c0040", Description: "Type of entity", Required: true, Enum: esa.EntityType},
		Column{Code: "c0050", Description: "Hierarchy of the entity within the group"},
		Column{Code: "c0060", Description: "LEI of the direct parent undertaking"},
		Column{Code: "c0070", Description: "Date of last update", Required: true},
		Column{Code: "c0080", Description: "Date of integration in the register"},
		Column{Code: "c0090", Description: "Date of deletion from the register"},
		Column{Code: "c0100", Description: "Currency", Enum: esa.Currency},
		Column{Code: "c0110", Description: "Value of total assets of the financial entity"},
	)

	add(B0103, "Branches of the entities in scope",
		Column{Code: "c0010", Description: "Identification code of the branch", Required: true},
		Column{Code: "c0020", Description: "LEI of the head office of the branch", Required: true},
		Column{Code: "c0030", Description: "Name of the branch"},
		Column{Code: "c0040", Description: "Country of the branch", Required: true, Enum: esa.Country},
	)

	add(B0201, "Contractual arrangements - general information",
		Column{Code: "c0010", Description: "Contractual arrangement reference number", Required: true},
		Column{Code: "c0020", Description: "Type of contractual arrangement", Required: true, Enum: esa.ContractType},
		Column{Code: "c0030", Description: "Overarching contractual arrangement reference number"},
		Column{Code: "c0040", Description: "Currency of the annual expense", Enum: esa.Currency},
		Column{Code: "c0050", Description: "Annual expense or estimated cost of the arrangement"},
	)

	add(B0202, "Contractual arrangements - specific information",
		Column{Code: "c0010", Description: "Contractual arrangement reference number", Required: true},
		Column{Code: "c0020", Description: "LEI of the entity making use of the ICT services", Required: true},
		Column{Code: "c0030", Description: "Identification code of the ICT third-party service provider", Required: true},
		Column{Code: "c0040", Description: "Type of code of the provider", Required: true, Enum: esa.IdentifierType},
		Column{Code: "c0050", Description: "Type of ICT services", Enum: esa.ServiceType},
		Column{Code: "c0060", Description: "Start date of the contractual arrangement", Required: true},
		Column{Code: "c0070", Description: "End date of the contractual arrangement"},
		Column{Code: "c0080", Description: "Country of the governing law", Required: true, Enum: esa.Country},
		Column{Code: "c0090", Description: "Notice period for the financial entity"},
		Column{Code: "c0100", Description: "Notice period for the ICT third-party service provider"},
		Column{Code: "c0110", Description: "Storage of data", Enum: esa.Boolean},
		Column{Code: "c0120", Description: "Location of the data at rest", Enum: esa.Country},
		Column{Code: "c0130", Description: "Location of management of the data", Enum: esa.Country},
		Column{Code: "c0140", Description: "Sensitiveness of the data stored", Enum: esa.Sensitiveness},
	)

	add(B0203, "Intra-group contractual arrangements",
		Column{Code: "c0010", Description: "Contractual arrangement reference number", Required: true},
		Column{Code: "c0020", Description: "LEI of the entity providing the ICT services", Required: true},
		Column{Code: "c0030", Description: "Nature of the intra-group arrangement"},
	)

	add(B0301, "ICT third-party service providers per contractual arrangement",
		Column{Code: "c0010", Description: "Identification code of the ICT third-party service provider", Required: true},
		Column{Code: "c0020", Description: "Contractual arrangement reference number", Required: true},
		Column{Code: "c0030", Description: "Type of code of the provider", Required: true, Enum: esa.IdentifierType},
		Column{Code: "c0040", Description: "Name of the ICT third-party service provider", Required: true},
		Column{Code: "c0050", Description: "Country of the provider's headquarters", Required: true, Enum: esa.Country},
		Column{Code: "c0060", Description: "Currency of the total annual expense", Enum: esa.Currency},
		Column{Code: "c0070", Description: "Total annual expense paid to the provider"},
	)

	add(B0302, "Ultimate parent undertakings of the ICT third-party service providers",
		Column{Code: "c0010", Description: "Identification code of the ICT third-party service provider", Required: true},
		Column{Code: "c0020", Description: "Identification code of the ultimate parent undertaking"},
		Column{Code: "c0030", Description: "Type of code of the ultimate parent undertaking", Enum: esa.IdentifierType},
		Column{Code: "c0040", Description: "Name of the ultimate parent undertaking"},
		Column{Code: "c0050", Description: "Country of the ultimate parent undertaking", Enum: esa.Country},
	)

	add(B0303, "Entities signing the contractual arrangements",
		Column{Code: "c0010", Description: "Contractual arrangement reference number", Required: true},
		Column{Code: "c0020", Description: "LEI of the entity signing the contractual arrangement", Required: true},
	)

	add(B0401, "ICT services provided under the contractual arrangements",
		Column{Code: "c0010", Description: "Identification code of the ICT service", Required: true},
		Column{Code: "c0020", Description: "Identification code of the ICT third-party service provider", Required: true},
		Column{Code: "c0030", Description: "Type of ICT services", Required: true, Enum: esa.ServiceType},
		Column{Code: "c0040", Description: "Supporting a critical or important function", Required: true, Enum: esa.Boolean},
		Column{Code: "c0050", Description: "Currency of the annual cost", Enum: esa.Currency},
		Column{Code: "c0060", Description: "Annual expense or estimated cost of the ICT service"},
	)

	add(B0501, "ICT third-party service providers - identity",
		Column{Code: "c0010", Description: "Identification code of the ICT third-party service provider", Required: true},
		Column{Code: "c0020", Description: "LEI of the ICT third-party service provider"},
		Column{Code: "c0030", Description: "Name of the ICT third-party service provider", Required: true},
		Column{Code: "c0040", Description: "Country of the provider's headquarters", Required: true, Enum: esa.Country},
		Column{Code: "c0050", Description: "Type of person of the provider", Enum: esa.EntityType},
	)

	add(B0502, "ICT service supply chains",
		Column{Code: "c0010", Description: "Identification code of the subcontractor", Required: true},
		Column{Code: "c0020", Description: "Contractual arrangement reference number", Required: true},
		Column{Code: "c0030", Description: "Name of the subcontractor", Required: true},
		Column{Code: "c0040", Description: "Type of code of the subcontractor", Enum: esa.IdentifierType},
		Column{Code: "c0050", Description: "Rank of the subcontractor in the ICT service supply chain", Required: true},
		Column{Code: "c0060", Description: "Country of the subcontractor", Enum: esa.Country},
	)

	add(B0601, "Functions identification",
		Column{Code: "c0010", Description: "Function identifier", Required: true},
		Column{Code: "c0020", Description: "Function name", Required: true},
		Column{Code: "c0030", Description: "Licensed activity"},
		Column{Code: "c0040", Description: "Criticality or importance assessment", Required: true, Enum: esa.Boolean},
		Column{Code: "c0050", Description: "Reasons for criticality or importance"},
		Column{Code: "c0060", Description: "Date of the last assessment of criticality or importance"},
		Column{Code: "c0070", Description: "Recovery time objective of the function"},
		Column{Code: "c0080", Description: "Recovery point objective of the function"},
		Column{Code: "c0090", Description: "Impact of discontinuing the function", Enum: esa.ImpactLevel},
	)

	add(B0701, "Assessment of the ICT services",
		Column{Code: "c0010", Description: "Assessment identifier", Required: true},
		Column{Code: "c0020", Description: "Function identifier", Required: true},
		Column{Code: "c0030", Description: "Identification code of the ICT service", Required: true},
		Column{Code: "c0040", Description: "Substitutability of the ICT third-party service provider", Enum: esa.Substitutability},
		Column{Code: "c0050", Description: "Reason if the provider is considered not substitutable"},
		Column{Code: "c0060", Description: "Date of the last audit on the ICT third-party service provider"},
		Column{Code: "c0070", Description: "Existence of an exit plan", Enum: esa.Boolean},
		Column{Code: "c0080", Description: "Possibility of reintegration of the contracted ICT service", Enum: esa.Reintegration},
		Column{Code: "c0090", Description: "Impact of discontinuing the ICT service", Enum: esa.ImpactLevel},
		Column{Code: "c0100", Description: "Alternative ICT third-party service providers identified", Enum: esa.Boolean},
	)

	add(B9901, "Definitions and alternative identification codes",
		Column{Code: "c0010", Description: "Identification code of the entity or provider", Required: true},
		Column{Code: "c0020", Description: "Type of code", Required: true, Enum: esa.IdentifierType},
		Column{Code: "c0030", Description: "Alternative identification code"},
		Column{Code: "c0040", Description: "Definition or description"},
	)

	add(B9902, "Locations of the data",
		Column{Code: "c0010", Description: "Location identifier", Required: true},
		Column{Code: "c0020", Description: "Identification code of the ICT service"},
		Column{Code: "c0030", Description: "Country of the data location", Required: true, Enum: esa.Country},
		Column{Code: "c0040", Description: "Sensitiveness of the data stored", Enum: esa.Sensitiveness},
	)

	r.references = []Reference{
		{FromTemplate: B0301, FromColumn: "c0020", ToTemplate: B0202, ToColumn: "c0010"},
		{FromTemplate: B0401, FromColumn: "c0020", ToTemplate: B0301, ToColumn: "c0010"},
		{FromTemplate: B0701, FromColumn: "c0020", ToTemplate: B0601, ToColumn: "c0010"},
		{FromTemplate: B0701, FromColumn: "c0030", ToTemplate: B0401, ToColumn: "c0010"},
	}

	return r
}
