package validate

import (
	"testing"

	"dora-roi/internal/esa"
	"dora-roi/internal/taxonomy"
	"dora-roi/internal/templates"
)

func newTestEngine() *Engine {
	return NewEngine(esa.NewRegistry(), taxonomy.NewCatalogue())
}

func mustAppend(t *testing.T, p *templates.Package, id templates.ID, cells map[string]string) {
	t.Helper()
	if err := p.Append(id, cells); err != nil {
		t.Fatalf("Append(%s) failed: %v", id, err)
	}
}

func providerRow(pk, contractRef string) map[string]string {
	return map[string]string{
		"c0010": pk,
		"c0020": contractRef,
		"c0030": "eba_qCO:qx2000",
		"c0040": "Acme Cloud Services",
		"c0050": "eba_GA:US",
	}
}

func contractRow(ref string) map[string]string {
	return map[string]string{
		"c0010": ref,
		"c0020": "529900T8BM49AURSDO55",
		"c0030": "TPP-1",
		"c0040": "eba_qCO:qx2000",
		"c0060": "2024-01-01",
		"c0080": "eba_GA:DE",
	}
}

func TestCleanPackageIsValid(t *testing.T) {
	p := templates.NewPackage(templates.Meta{})
	mustAppend(t, p, templates.B0202, contractRow("CTR-1"))
	mustAppend(t, p, templates.B0301, providerRow("TPP-1", "CTR-1"))

	res := newTestEngine().ValidatePackage(p)
	if !res.Valid {
		t.Fatalf("expected valid package, errors: %+v", res.Errors)
	}
	if res.Summary.TotalErrors != 0 {
		t.Errorf("TotalErrors = %d, want 0", res.Summary.TotalErrors)
	}
}

func TestBrokenProviderReference(t *testing.T) {
	p := templates.NewPackage(templates.Meta{})
	mustAppend(t, p, templates.B0202, contractRow("CTR-1"))
	mustAppend(t, p, templates.B0301, providerRow("TPP-1", "X"))

	res := newTestEngine().ValidatePackage(p)
	if res.Valid {
		t.Fatal("expected invalid package")
	}
	if len(res.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %d: %+v", len(res.Errors), res.Errors)
	}

	e := res.Errors[0]
	if e.Code != "807" {
		t.Errorf("code = %s, want 807", e.Code)
	}
	if e.Template != templates.B0301 {
		t.Errorf("template = %s, want B_03.01", e.Template)
	}
	if e.Column != "c0020" {
		t.Errorf("column = %s, want c0020", e.Column)
	}
	if e.Row != 1 {
		t.Errorf("row = %d, want 1", e.Row)
	}
	if e.Value != "X" {
		t.Errorf("value = %s, want X", e.Value)
	}
}

func TestReferenceSkippedWhenTargetTemplateEmpty(t *testing.T) {
	// B_02.02 carries no rows at all: the dangling provider reference
	// is not re-flagged here, the absent template is the finding of
	// the filing indicator checks.
	p := templates.NewPackage(templates.Meta{})
	mustAppend(t, p, templates.B0301, providerRow("TPP-1", "X"))

	res := newTestEngine().ValidatePackage(p)
	for _, e := range res.Errors {
		if e.Code == "807" {
			t.Errorf("unexpected 807 against empty target template: %+v", e)
		}
	}
}

func TestFunctionAndServiceReferences(t *testing.T) {
	p := templates.NewPackage(templates.Meta{})
	mustAppend(t, p, templates.B0601, map[string]string{
		"c0010": "F1", "c0020": "Payments", "c0040": "eba_BT:x28",
	})
	mustAppend(t, p, templates.B0401, map[string]string{
		"c0010": "SVC-1", "c0020": "TPP-1", "c0030": "eba_TA:x2", "c0040": "eba_BT:x28",
	})
	mustAppend(t, p, templates.B0701, map[string]string{
		"c0010": "ASS-1", "c0020": "F404", "c0030": "SVC-404",
	})

	res := newTestEngine().ValidatePackage(p)

	byColumn := make(map[string]int)
	for _, e := range res.Errors {
		if e.Code == "807" && e.Template == templates.B0701 {
			byColumn[e.Column]++
		}
	}
	if byColumn["c0020"] != 1 {
		t.Errorf("expected one 807 for unknown function reference, got %d", byColumn["c0020"])
	}
	if byColumn["c0030"] != 1 {
		t.Errorf("expected one 807 for unknown service reference, got %d", byColumn["c0030"])
	}
}

func TestDuplicatePrimaryKey(t *testing.T) {
	p := templates.NewPackage(templates.Meta{})
	mustAppend(t, p, templates.B0202, contractRow("CTR-1"))
	mustAppend(t, p, templates.B0202, contractRow("CTR-1"))

	res := newTestEngine().ValidatePackage(p)

	var found *Issue
	for i := range res.Errors {
		if res.Errors[i].Code == "806" {
			found = &res.Errors[i]
		}
	}
	if found == nil {
		t.Fatalf("expected an 806 finding, errors: %+v", res.Errors)
	}
	if found.Row != 2 {
		t.Errorf("806 row = %d, want 2", found.Row)
	}
	if found.Severity != taxonomy.SeverityError {
		t.Errorf("806 must be rejection-class, got %s", found.Severity)
	}
}

func TestEmptyPrimaryKey(t *testing.T) {
	p := templates.NewPackage(templates.Meta{})
	mustAppend(t, p, templates.B9901, map[string]string{
		"c0020": "eba_qCO:qx2000",
	})

	res := newTestEngine().ValidatePackage(p)
	if res.Valid {
		t.Fatal("empty primary key must reject the package")
	}
	if res.Summary.ErrorsByCode["808"] != 1 {
		t.Errorf("ErrorsByCode[808] = %d, want 1", res.Summary.ErrorsByCode["808"])
	}
}

func TestLEIChecksumWarning(t *testing.T) {
	p := templates.NewPackage(templates.Meta{})
	row := contractRow("CTR-1")
	row["c0020"] = "529900T8BM49AURSDO56" // checksum broken
	mustAppend(t, p, templates.B0202, row)

	res := newTestEngine().ValidatePackage(p)
	if !res.Valid {
		t.Fatalf("a bad LEI is advisory, not blocking; errors: %+v", res.Errors)
	}

	var found bool
	for _, w := range res.Warnings {
		if w.Code == "VR_71" && w.Column == "c0020" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected VR_71 warning, warnings: %+v", res.Warnings)
	}
}

func TestDateWarning(t *testing.T) {
	p := templates.NewPackage(templates.Meta{})
	row := contractRow("CTR-1")
	row["c0060"] = "2024-13-01"
	mustAppend(t, p, templates.B0202, row)

	res := newTestEngine().ValidatePackage(p)
	var found bool
	for _, w := range res.Warnings {
		if w.Code == "v8850_m" && w.Column == "c0060" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected v8850_m warning for month 13, warnings: %+v", res.Warnings)
	}
}

func TestMissingRequiredFieldWarning(t *testing.T) {
	p := templates.NewPackage(templates.Meta{})
	row := contractRow("CTR-1")
	delete(row, "c0080") // governing law country is required
	mustAppend(t, p, templates.B0202, row)

	res := newTestEngine().ValidatePackage(p)
	var found bool
	for _, w := range res.Warnings {
		if w.Code == "v8886_m" && w.Column == "c0080" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected v8886_m warning, warnings: %+v", res.Warnings)
	}
}

func TestEnumWarning(t *testing.T) {
	p := templates.NewPackage(templates.Meta{})
	row := contractRow("CTR-1")
	row["c0080"] = "Germany" // must be an eba_GA code
	mustAppend(t, p, templates.B0202, row)

	res := newTestEngine().ValidatePackage(p)
	var found bool
	for _, w := range res.Warnings {
		if w.Code == "v8887_m" && w.Column == "c0080" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected v8887_m warning, warnings: %+v", res.Warnings)
	}
}

func TestSummaryAggregation(t *testing.T) {
	p := templates.NewPackage(templates.Meta{})
	mustAppend(t, p, templates.B0202, contractRow("CTR-1"))
	mustAppend(t, p, templates.B0301, providerRow("TPP-1", "MISSING-1"))
	mustAppend(t, p, templates.B0301, providerRow("TPP-2", "MISSING-2"))

	res := newTestEngine().ValidatePackage(p)
	if res.Summary.TotalErrors != 2 {
		t.Fatalf("TotalErrors = %d, want 2", res.Summary.TotalErrors)
	}
	if res.Summary.ErrorsByCode["807"] != 2 {
		t.Errorf("ErrorsByCode[807] = %d, want 2", res.Summary.ErrorsByCode["807"])
	}
	if res.Summary.ErrorsByTemplate[templates.B0301] != 2 {
		t.Errorf("ErrorsByTemplate[B_03.01] = %d, want 2", res.Summary.ErrorsByTemplate[templates.B0301])
	}
	if len(res.Errors) != res.Summary.TotalErrors {
		t.Error("Errors slice and summary disagree")
	}
}
