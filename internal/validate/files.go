package validate

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"dora-roi/internal/export"
	"dora-roi/internal/lei"
	"dora-roi/internal/taxonomy"
	"dora-roi/internal/templates"
)

// ValidateFiles validates a serialized package, e.g. one read back from
// disk before upload. On top of the in-memory stages it checks the
// structural contract of the file set: reporting parameters, filing
// indicator consistency, file presence and CSV headers. Findings are
// collected, never raised as errors.
func (e *Engine) ValidateFiles(res *export.Result) *Result {
	var issues []Issue

	issues = append(issues, e.checkParameters(res)...)

	indicators, indicatorIssues := e.readFilingIndicators(res)
	issues = append(issues, indicatorIssues...)

	pkg := templates.NewPackage(templates.Meta{})
	for _, tmpl := range templates.All() {
		rows, tmplIssues := e.readTemplateFile(res, tmpl)
		issues = append(issues, tmplIssues...)

		for _, cells := range rows {
			if err := pkg.Append(tmpl.ID, cells); err != nil {
				// Cells are filtered to declared codes above, so this
				// is unreachable unless the schema itself is broken.
				panic(err)
			}
		}

		if reported, ok := indicators[tmpl.ID]; ok {
			if reported != (len(rows) > 0) {
				issues = append(issues, e.issue(taxonomy.CodeIndicatorMismatch, tmpl.ID, 0, "",
					fmt.Sprintf("filing indicator says reported=%v but the template has %d rows", reported, len(rows)), ""))
			}
		}
	}

	for _, tmpl := range templates.All() {
		issues = append(issues, e.checkStructure(tmpl, pkg.Rows(tmpl.ID))...)
		issues = append(issues, e.checkCells(tmpl, pkg.Rows(tmpl.ID))...)
	}
	issues = append(issues, e.checkReferences(pkg)...)

	return e.collect(issues)
}

// parameterNames is the fixed order of the parameters.csv table.
var parameterNames = []string{"entityID", "refPeriod", "baseCurrency", "decimalsInteger", "decimalsMonetary"}

func (e *Engine) checkParameters(res *export.Result) []Issue {
	f := res.Get("reports/parameters.csv")
	if f == nil {
		return []Issue{e.issue(taxonomy.CodeBadParameters, "", 0, "",
			"reports/parameters.csv is missing", "")}
	}

	records, err := readCSV(f.Data)
	if err != nil {
		return []Issue{e.issue(taxonomy.CodeBadParameters, "", 0, "",
			"parameters.csv is not parseable CSV", err.Error())}
	}

	var issues []Issue
	values := make(map[string]string)
	for i, rec := range records {
		if i == 0 {
			if len(rec) != 2 || rec[0] != "name" || rec[1] != "value" {
				issues = append(issues, e.issue(taxonomy.CodeBadParameters, "", 0, "",
					"parameters.csv header must be name,value", strings.Join(rec, ",")))
			}
			continue
		}
		if len(rec) == 2 {
			values[rec[0]] = rec[1]
		}
	}

	for _, name := range parameterNames {
		if _, ok := values[name]; !ok {
			issues = append(issues, e.issue(taxonomy.CodeBadParameters, "", 0, "",
				fmt.Sprintf("parameter %q is missing", name), ""))
		}
	}

	if entity, ok := values["entityID"]; ok {
		id := strings.TrimPrefix(entity, "lei:")
		if !lei.Valid(id) {
			issues = append(issues, e.issue(taxonomy.CodeBadParameters, "", 0, "",
				"entityID is not a checksum-valid LEI", entity))
		}
	}
	if ref, ok := values["refPeriod"]; ok {
		if !datePattern.MatchString(ref) || checkDate(ref) != "" {
			issues = append(issues, e.issue(taxonomy.CodeBadParameters, "", 0, "",
				"refPeriod is not a valid reporting date", ref))
		}
	}
	return issues
}

func (e *Engine) readFilingIndicators(res *export.Result) (map[templates.ID]bool, []Issue) {
	indicators := make(map[templates.ID]bool)

	f := res.Get("reports/FilingIndicators.csv")
	if f == nil {
		return indicators, []Issue{e.issue(taxonomy.CodeMissingTemplate, "", 0, "",
			"reports/FilingIndicators.csv is missing", "")}
	}

	records, err := readCSV(f.Data)
	if err != nil {
		return indicators, []Issue{e.issue(taxonomy.CodeStructure, "", 0, "",
			"FilingIndicators.csv is not parseable CSV", err.Error())}
	}

	var issues []Issue
	for i, rec := range records {
		if i == 0 {
			if len(rec) != 2 || rec[0] != "templateID" || rec[1] != "reported" {
				issues = append(issues, e.issue(taxonomy.CodeStructure, "", 0, "",
					"FilingIndicators.csv header must be templateID,reported", strings.Join(rec, ",")))
			}
			continue
		}
		if len(rec) != 2 {
			continue
		}
		id := templates.ID(rec[0])
		if _, err := templates.Get(id); err != nil {
			issues = append(issues, e.issue(taxonomy.CodeStructure, id, 0, "",
				"filing indicator names an unknown template", rec[0]))
			continue
		}
		indicators[id] = rec[1] == "true"
	}

	for _, tmpl := range templates.All() {
		if _, ok := indicators[tmpl.ID]; !ok {
			issues = append(issues, e.issue(taxonomy.CodeMissingTemplate, tmpl.ID, 0, "",
				"template has no filing indicator row", ""))
		}
	}
	return indicators, issues
}

// readTemplateFile parses one template CSV into declared-column cell
// maps, reporting structural findings against the file.
func (e *Engine) readTemplateFile(res *export.Result, tmpl *templates.Template) ([]map[string]string, []Issue) {
	name := "reports/" + tmpl.ID.FileName()
	f := res.Get(name)
	if f == nil {
		return nil, []Issue{e.issue(taxonomy.CodeMissingTemplate, tmpl.ID, 0, "",
			fmt.Sprintf("file %s is missing from the package", name), "")}
	}

	records, err := readCSV(f.Data)
	if err != nil {
		return nil, []Issue{e.issue(taxonomy.CodeStructure, tmpl.ID, 0, "",
			"template file is not parseable CSV", err.Error())}
	}
	if len(records) == 0 {
		return nil, []Issue{e.issue(taxonomy.CodeStructure, tmpl.ID, 0, "",
			"template file lacks its header row", "")}
	}

	var issues []Issue
	header := records[0]
	want := tmpl.Codes()

	declared := make(map[string]int)
	for i, code := range header {
		if tmpl.Column(code) == nil {
			issues = append(issues, e.issue(taxonomy.CodeStructure, tmpl.ID, 0, code,
				"header declares a column the template does not have", code))
			continue
		}
		declared[code] = i
	}
	for _, code := range want {
		if _, ok := declared[code]; !ok {
			issues = append(issues, e.issue(taxonomy.CodeStructure, tmpl.ID, 0, code,
				fmt.Sprintf("header is missing declared column %s", code), ""))
		}
	}

	var rows []map[string]string
	for _, rec := range records[1:] {
		cells := make(map[string]string, len(declared))
		for code, idx := range declared {
			if idx < len(rec) {
				cells[code] = rec[idx]
			}
		}
		rows = append(rows, cells)
	}
	return rows, issues
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
