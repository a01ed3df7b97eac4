// Package export renders a template package into the ESA xBRL-CSV
// report package layout: META-INF descriptor, report descriptor,
// parameters, filing indicators and one CSV file per template.
//
// Serialization is a pure transform. The same package and submission
// timestamp always produce byte-identical output, and nothing here
// touches the filesystem or network; WriteDir/WriteZip are thin
// conveniences for the CLI.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"dora-roi/internal/templates"
)

// File is one named byte buffer of the serialized package. Name is
// relative to the package root directory.
type File struct {
	Name string
	Data []byte
}

// Result is the serialized package: the root directory name mandated
// by the ESA naming convention plus every file under it.
type Result struct {
	Name  string
	Files []File
}

// Get returns the file with the given relative name, or nil.
func (r *Result) Get(name string) *File {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// PackageName builds the submission directory name:
// {LEI}_{Country}_DORA_RoI_{ReferenceDate}_{SubmissionTimestamp}.
// The timestamp keeps the T but drops every other separator.
func PackageName(meta templates.Meta, submittedAt time.Time) string {
	return fmt.Sprintf("%s_%s_DORA_RoI_%s_%s",
		meta.EntityLEI,
		meta.EntityCountry,
		meta.RefPeriod.Format("2006-01-02"),
		submittedAt.UTC().Format("20060102T150405"),
	)
}

// Serialize renders the package. It cannot fail on a package whose
// rows were built through the templates constructors; an error here
// means the package violates the schema contract.
func Serialize(p *templates.Package, submittedAt time.Time) (*Result, error) {
	res := &Result{Name: PackageName(p.Meta, submittedAt)}

	pkgDescriptor, err := reportPackageJSON()
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, File{Name: "META-INF/reportPackage.json", Data: pkgDescriptor})

	report, err := reportJSON()
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, File{Name: "reports/report.json", Data: report})

	res.Files = append(res.Files, File{Name: "reports/parameters.csv", Data: parametersCSV(p.Meta)})
	res.Files = append(res.Files, File{Name: "reports/FilingIndicators.csv", Data: filingIndicatorsCSV(p)})

	for _, tmpl := range templates.All() {
		data, err := templateCSV(tmpl, p.Rows(tmpl.ID))
		if err != nil {
			return nil, fmt.Errorf("export: template %s: %w", tmpl.ID, err)
		}
		res.Files = append(res.Files, File{Name: "reports/" + tmpl.ID.FileName(), Data: data})
	}

	return res, nil
}

// parametersCSV writes the fixed five-row name,value parameter table.
func parametersCSV(meta templates.Meta) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"name", "value"},
		{"entityID", "lei:" + meta.EntityLEI},
		{"refPeriod", meta.RefPeriod.Format("2006-01-02")},
		{"baseCurrency", "iso4217:" + meta.BaseCurrency},
		{"decimalsInteger", strconv.Itoa(meta.DecimalsInteger)},
		{"decimalsMonetary", strconv.Itoa(meta.DecimalsMonetary)},
	}
	for _, rec := range records {
		// csv.Writer only fails on the underlying writer; bytes.Buffer
		// cannot fail.
		_ = w.Write(rec)
	}
	w.Flush()
	return buf.Bytes()
}

// filingIndicatorsCSV writes one reported flag per template, derived
// from the package's row counts.
func filingIndicatorsCSV(p *templates.Package) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"templateID", "reported"})
	for _, fi := range p.FilingIndicators() {
		_ = w.Write([]string{string(fi.Template), strconv.FormatBool(fi.Reported)})
	}
	w.Flush()
	return buf.Bytes()
}

// templateCSV writes one template file: header row in registry order,
// then the rows in insertion order. Templates without rows still get a
// header-only file; the external validator requires every file to be
// present.
func templateCSV(tmpl *templates.Template, rows []templates.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	codes := tmpl.Codes()
	_ = w.Write(codes)

	record := make([]string, len(codes))
	for _, row := range rows {
		for i, code := range codes {
			record[i] = row[code]
		}
		_ = w.Write(record)
	}
	w.Flush()
	return buf.Bytes(), nil
}

// The two JSON descriptors carry fixed taxonomy plumbing. Structs keep
// the key order stable so serialization stays byte-identical.

type documentInfo struct {
	DocumentType string   `json:"documentType"`
	Extends      []string `json:"extends,omitempty"`
}

type reportDescriptor struct {
	DocumentInfo documentInfo `json:"documentInfo"`
}

const (
	reportPackageDocType = "https://xbrl.org/report-package/2023"
	csvReportDocType     = "https://xbrl.org/CSV/2021"
	doraEntryPoint       = "http://www.eba.europa.eu/eu/fr/xbrl/crr/fws/dora/4.0/mod/dora_coll.json"
)

func reportPackageJSON() ([]byte, error) {
	return json.MarshalIndent(reportDescriptor{
		DocumentInfo: documentInfo{DocumentType: reportPackageDocType},
	}, "", "  ")
}

func reportJSON() ([]byte, error) {
	return json.MarshalIndent(reportDescriptor{
		DocumentInfo: documentInfo{
			DocumentType: csvReportDocType,
			Extends:      []string{doraEntryPoint},
		},
	}, "", "  ")
}
