// Package validate implements the pre-submission validation engine for
// Register of Information packages. It runs a fixed synchronous
// pipeline over an assembled package:
//
//	stage A - per-template structure (primary keys, duplicates)
//	stage B - per-cell formats (required fields, LEIs, dates, vocabularies)
//	stage C - cross-template referential integrity
//
// Findings are data, never errors: the engine enumerates every defect
// in one pass and partitions them by severity using the taxonomy
// catalogue. Only a package that violates the schema contract itself
// aborts validation.
package validate

import (
	"fmt"
	"regexp"
	"time"

	"dora-roi/internal/esa"
	"dora-roi/internal/lei"
	"dora-roi/internal/taxonomy"
	"dora-roi/internal/templates"
)

// Issue is one validation finding, addressed by (template, row, column)
// coordinates into the package. Row is 1-based over the template's data
// rows; 0 means the finding is not row-scoped.
type Issue struct {
	Code     string            `json:"code"`
	Severity taxonomy.Severity `json:"severity"`
	Template templates.ID      `json:"template"`
	Row      int               `json:"row,omitempty"`
	Column   string            `json:"column,omitempty"`
	Message  string            `json:"message"`
	Value    string            `json:"value,omitempty"`
}

// Summary aggregates a validation run.
type Summary struct {
	TotalErrors      int                  `json:"totalErrors"`
	TotalWarnings    int                  `json:"totalWarnings"`
	ErrorsByTemplate map[templates.ID]int `json:"errorsByTemplate"`
	ErrorsByCode     map[string]int       `json:"errorsByCode"`
}

// Result is the outcome of one validation run. Valid is true iff no
// rejection-class finding was raised; warnings never block.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
	Summary  Summary `json:"summary"`
}

// Engine validates packages against the template schema, the ESA
// vocabularies and the rule catalogue. It is stateless between runs
// and safe for concurrent use once constructed.
type Engine struct {
	enums *esa.Registry
	rules *taxonomy.Catalogue
}

// NewEngine wires the shared read-only registries into an engine.
func NewEngine(enums *esa.Registry, rules *taxonomy.Catalogue) *Engine {
	return &Engine{enums: enums, rules: rules}
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidatePackage runs stages A-C over an in-memory package.
func (e *Engine) ValidatePackage(p *templates.Package) *Result {
	var issues []Issue
	for _, tmpl := range templates.All() {
		issues = append(issues, e.checkStructure(tmpl, p.Rows(tmpl.ID))...)
		issues = append(issues, e.checkCells(tmpl, p.Rows(tmpl.ID))...)
	}
	issues = append(issues, e.checkReferences(p)...)
	return e.collect(issues)
}

// checkStructure is stage A: primary key presence and uniqueness.
func (e *Engine) checkStructure(tmpl *templates.Template, rows []templates.Row) []Issue {
	var issues []Issue
	seen := make(map[string]int)

	for i, row := range rows {
		pk := row["c0010"]
		if pk == "" {
			issues = append(issues, e.issue(taxonomy.CodeStructure, tmpl.ID, i+1, "c0010",
				"primary key column c0010 is empty", ""))
			continue
		}
		if first, dup := seen[pk]; dup {
			issues = append(issues, e.issue(taxonomy.CodeDuplicateKey, tmpl.ID, i+1, "c0010",
				fmt.Sprintf("duplicate primary key, first used in row %d", first), pk))
			continue
		}
		seen[pk] = i + 1
	}
	return issues
}

// checkCells is stage B: required fields, LEI checksums, date ranges
// and controlled-vocabulary membership.
func (e *Engine) checkCells(tmpl *templates.Template, rows []templates.Row) []Issue {
	var issues []Issue

	for i, row := range rows {
		for _, col := range tmpl.Columns {
			value := row[col.Code]

			if value == "" {
				if col.Required {
					issues = append(issues, e.issue(taxonomy.CodeMissingRequired, tmpl.ID, i+1, col.Code,
						fmt.Sprintf("required field %q is empty", col.Description), ""))
				}
				continue
			}

			if lei.IsShaped(value) && !lei.Valid(value) {
				issues = append(issues, e.issue(taxonomy.CodeBadLEI, tmpl.ID, i+1, col.Code,
					"LEI fails the ISO 17442 checksum", value))
			}

			if datePattern.MatchString(value) {
				if msg := checkDate(value); msg != "" {
					issues = append(issues, e.issue(taxonomy.CodeBadDate, tmpl.ID, i+1, col.Code, msg, value))
				}
			}

			if col.Enum != "" && !e.enums.IsValidCode(col.Enum, value) {
				issues = append(issues, e.issue(taxonomy.CodeBadEnum, tmpl.ID, i+1, col.Code,
					fmt.Sprintf("value is not a known %s code", col.Enum), value))
			}
		}
	}
	return issues
}

// checkReferences is stage C: declared foreign keys must resolve. A
// reference whose target template has no rows at all is skipped, not
// failed; the missing template is already reported by the filing
// indicator checks.
func (e *Engine) checkReferences(p *templates.Package) []Issue {
	var issues []Issue

	for _, ref := range templates.References() {
		targets := p.Rows(ref.ToTemplate)
		if len(targets) == 0 {
			continue
		}

		known := make(map[string]bool, len(targets))
		for _, row := range targets {
			known[row[ref.ToColumn]] = true
		}

		for i, row := range p.Rows(ref.FromTemplate) {
			value := row[ref.FromColumn]
			if value == "" || known[value] {
				continue
			}
			issues = append(issues, e.issue(taxonomy.CodeBrokenReference, ref.FromTemplate, i+1, ref.FromColumn,
				fmt.Sprintf("no matching %s in %s", ref.ToColumn, ref.ToTemplate), value))
		}
	}
	return issues
}

func checkDate(value string) string {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "value is not a valid calendar date"
	}
	if d.Year() < 1900 || d.Year() > 2100 {
		return "date is outside the accepted reporting range"
	}
	return ""
}

func (e *Engine) issue(code string, tmpl templates.ID, row int, column, message, value string) Issue {
	return Issue{
		Code:     code,
		Severity: e.rules.Severity(code),
		Template: tmpl,
		Row:      row,
		Column:   column,
		Message:  message,
		Value:    value,
	}
}

// collect partitions findings by severity and builds the summary.
func (e *Engine) collect(issues []Issue) *Result {
	res := &Result{
		Errors:   []Issue{},
		Warnings: []Issue{},
		Summary: Summary{
			ErrorsByTemplate: make(map[templates.ID]int),
			ErrorsByCode:     make(map[string]int),
		},
	}

	for _, is := range issues {
		if is.Severity == taxonomy.SeverityError {
			res.Errors = append(res.Errors, is)
			res.Summary.TotalErrors++
			res.Summary.ErrorsByTemplate[is.Template]++
			res.Summary.ErrorsByCode[is.Code]++
		} else {
			res.Warnings = append(res.Warnings, is)
			res.Summary.TotalWarnings++
		}
	}

	res.Valid = res.Summary.TotalErrors == 0
	return res
}
