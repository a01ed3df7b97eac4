package registry

import (
	"context"
	"testing"
	"time"

	"dora-roi/internal/esa"
	"dora-roi/internal/taxonomy"
	"dora-roi/internal/templates"
	"dora-roi/internal/validate"
)

func seedSource(t *testing.T) *MockSource {
	t.Helper()
	src, err := NewMockSource("testdata/seed")
	if err != nil {
		t.Fatalf("NewMockSource failed: %v", err)
	}
	return src
}

func buildSeed(t *testing.T) *templates.Package {
	t.Helper()
	b := NewBuilder(seedSource(t), esa.NewRegistry())
	pkg, err := b.BuildPackage(context.Background(), "org-demo-1", BuildOptions{
		RefPeriod: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("BuildPackage failed: %v", err)
	}
	return pkg
}

func TestBuildPackageMeta(t *testing.T) {
	pkg := buildSeed(t)

	if pkg.Meta.EntityLEI != "529900T8BM49AURSDO55" {
		t.Errorf("EntityLEI = %s", pkg.Meta.EntityLEI)
	}
	if pkg.Meta.EntityCountry != "DE" {
		t.Errorf("EntityCountry = %s", pkg.Meta.EntityCountry)
	}
	if pkg.Meta.BaseCurrency != "EUR" {
		t.Errorf("BaseCurrency = %s", pkg.Meta.BaseCurrency)
	}
	if pkg.Meta.DecimalsMonetary != 2 {
		t.Errorf("DecimalsMonetary = %d, want default 2", pkg.Meta.DecimalsMonetary)
	}
}

func TestBuildPackageRowCounts(t *testing.T) {
	pkg := buildSeed(t)

	counts := map[templates.ID]int{
		templates.B0101: 1,
		templates.B0102: 1,
		templates.B0103: 0,
		templates.B0201: 1,
		templates.B0202: 1,
		templates.B0203: 0,
		templates.B0301: 1,
		templates.B0302: 1,
		templates.B0303: 1,
		templates.B0401: 5,
		templates.B0501: 1,
		templates.B0502: 3,
		templates.B0601: 8,
		templates.B0701: 8,
		templates.B9901: 1,
		templates.B9902: 3,
	}
	for id, want := range counts {
		if got := pkg.RowCount(id); got != want {
			t.Errorf("%s: %d rows, want %d", id, got, want)
		}
	}
}

func TestBuildPackageEncodesEnumerations(t *testing.T) {
	pkg := buildSeed(t)

	entity := pkg.Rows(templates.B0101)[0]
	if entity["c0030"] != "eba_GA:DE" {
		t.Errorf("entity country = %s, want eba_GA:DE", entity["c0030"])
	}
	if entity["c0040"] != "eba_CT:x12" {
		t.Errorf("entity type = %s, want eba_CT:x12", entity["c0040"])
	}

	svc := pkg.Rows(templates.B0401)[0]
	if svc["c0030"] != "eba_TA:x1" {
		t.Errorf("service type = %s, want eba_TA:x1", svc["c0030"])
	}
	if svc["c0040"] != "eba_BT:x28" {
		t.Errorf("critical flag = %s, want eba_BT:x28", svc["c0040"])
	}
	if svc["c0020"] != "TPP-0001" {
		t.Errorf("provider code = %s, want TPP-0001", svc["c0020"])
	}

	arr := pkg.Rows(templates.B0202)[0]
	if arr["c0110"] != "eba_BT:x28" {
		t.Errorf("storage of data = %s, want eba_BT:x28", arr["c0110"])
	}
	if arr["c0140"] != "eba_SN:x3" {
		t.Errorf("sensitiveness = %s, want eba_SN:x3", arr["c0140"])
	}
}

func TestBuildPackageUnknownEnumPassesThrough(t *testing.T) {
	b := NewBuilder(nil, esa.NewRegistry())
	if got := b.enum(esa.Country, "ZZZZ"); got != "ZZZZ" {
		t.Errorf("unknown country = %s, want verbatim ZZZZ", got)
	}
	if got := b.enum(esa.Country, ""); got != "" {
		t.Errorf("empty logical = %q, want empty", got)
	}
}

func TestBuildPackageAssessmentIDsDeterministic(t *testing.T) {
	first := buildSeed(t)
	second := buildSeed(t)

	a := first.Rows(templates.B0701)
	b := second.Rows(templates.B0701)
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i]["c0010"] == "" {
			t.Fatalf("row %d: empty assessment id", i)
		}
		if a[i]["c0010"] != b[i]["c0010"] {
			t.Errorf("row %d: assessment id changed between builds", i)
		}
	}
}

func TestBuildPackageFilingIndicators(t *testing.T) {
	pkg := buildSeed(t)

	for _, fi := range pkg.FilingIndicators() {
		empty := fi.Template == templates.B0103 || fi.Template == templates.B0203
		if fi.Reported == empty {
			t.Errorf("%s: reported = %v", fi.Template, fi.Reported)
		}
	}
}

func TestBuildPackagePassesValidation(t *testing.T) {
	pkg := buildSeed(t)

	engine := validate.NewEngine(esa.NewRegistry(), taxonomy.NewCatalogue())
	res := engine.ValidatePackage(pkg)

	if !res.Valid {
		t.Fatalf("seed package invalid: %+v", res.Errors)
	}
	if res.Summary.TotalErrors != 0 {
		t.Errorf("TotalErrors = %d, want 0", res.Summary.TotalErrors)
	}
	for _, w := range res.Warnings {
		t.Errorf("unexpected warning: %+v", w)
	}
}
