// Package taxonomy carries the regulator rule catalogue: which
// validation rule codes are rejection-class and which are advisory.
//
// The baseline split below is derived from observed EUCLID feedback
// files. The authoritative source is the EBA Validation Rules
// workbook, which is released per taxonomy version; when a workbook
// path is configured the severities in it override the baseline.
package taxonomy

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Severity of a validation rule.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule codes raised by the validation engine.
const (
	CodeMissingTemplate   = "805"    // template file absent from the package
	CodeDuplicateKey      = "806"    // duplicate primary key within a template
	CodeBrokenReference   = "807"    // cross-template reference does not resolve
	CodeStructure         = "808"    // header or primary key structure defect
	CodeIndicatorMismatch = "720"    // filing indicator contradicts row counts
	CodeBadParameters     = "714"    // malformed reporting parameters
	CodeMissingRequired   = "v8886_m" // declared-required field is empty
	CodeBadDate           = "v8850_m" // date cell outside range or unparseable
	CodeBadLEI            = "VR_71"  // LEI-shaped value fails the checksum
	CodeBadEnum           = "v8887_m" // cell outside its controlled vocabulary
)

// Catalogue resolves rule codes to severities.
type Catalogue struct {
	severities map[string]Severity
}

// NewCatalogue returns the baseline catalogue.
func NewCatalogue() *Catalogue {
	return &Catalogue{severities: map[string]Severity{
		CodeMissingTemplate:   SeverityError,
		CodeDuplicateKey:      SeverityError,
		CodeBrokenReference:   SeverityError,
		CodeStructure:         SeverityError,
		CodeIndicatorMismatch: SeverityError,
		CodeBadParameters:     SeverityError,
		CodeMissingRequired:   SeverityWarning,
		CodeBadDate:           SeverityWarning,
		CodeBadLEI:            SeverityWarning,
		CodeBadEnum:           SeverityWarning,
	}}
}

// Severity returns the severity of code. Unknown codes default to
// warning: submissions must never be blocked by a rule this build does
// not know.
func (c *Catalogue) Severity(code string) Severity {
	if s, ok := c.severities[code]; ok {
		return s
	}
	return SeverityWarning
}

// IsRejection reports whether code blocks submission.
func (c *Catalogue) IsRejection(code string) bool {
	return c.Severity(code) == SeverityError
}

// LoadWorkbook overlays severities from an EBA Validation Rules
// workbook. The sheet is expected to carry a header row with at least
// a "code" and a "severity" column; unknown severity labels are
// rejected so a malformed workbook cannot silently downgrade rules.
func (c *Catalogue) LoadWorkbook(path, sheet string) error {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("taxonomy: open workbook: %w", err)
	}
	defer wb.Close()

	if sheet == "" {
		sheet = wb.GetSheetName(0)
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("taxonomy: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("taxonomy: sheet %q is empty", sheet)
	}

	codeCol, sevCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "code", "rule code", "validation rule":
			codeCol = i
		case "severity":
			sevCol = i
		}
	}
	if codeCol < 0 || sevCol < 0 {
		return fmt.Errorf("taxonomy: sheet %q lacks code/severity columns", sheet)
	}

	for n, row := range rows[1:] {
		if codeCol >= len(row) || sevCol >= len(row) {
			continue
		}
		code := strings.TrimSpace(row[codeCol])
		if code == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(row[sevCol])) {
		case "error", "blocking", "rejection":
			c.severities[code] = SeverityError
		case "warning", "non-blocking", "advisory":
			c.severities[code] = SeverityWarning
		default:
			return fmt.Errorf("taxonomy: row %d: unknown severity %q for code %s", n+2, row[sevCol], code)
		}
	}
	return nil
}
