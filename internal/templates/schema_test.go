package templates

import (
	"testing"
	"time"
)

func TestAllTemplatesDeclared(t *testing.T) {
	want := []ID{
		B0101, B0102, B0103,
		B0201, B0202, B0203,
		B0301, B0302, B0303,
		B0401,
		B0501, B0502,
		B0601, B0701,
		B9901, B9902,
	}

	all := All()
	if len(all) != len(want) {
		t.Fatalf("registry holds %d templates, want %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("template %d = %s, want %s", i, all[i].ID, id)
		}
	}
}

func TestFileNamePreservesDot(t *testing.T) {
	// The dot between the number segments must survive lowercasing;
	// replacing it with an underscore has caused validator rejections.
	tests := map[ID]string{
		B0101: "b_01.01.csv",
		B0202: "b_02.02.csv",
		B0601: "b_06.01.csv",
		B9902: "b_99.02.csv",
	}
	for id, want := range tests {
		if got := id.FileName(); got != want {
			t.Errorf("%s.FileName() = %q, want %q", id, got, want)
		}
	}

	for _, tmpl := range All() {
		name := tmpl.ID.FileName()
		if name[len(name)-7] != '.' {
			t.Errorf("%s: file name %q lost the template id dot", tmpl.ID, name)
		}
	}
}

func TestPrimaryKeyColumnEverywhere(t *testing.T) {
	for _, tmpl := range All() {
		col := tmpl.Column("c0010")
		if col == nil {
			t.Errorf("%s: missing primary key column c0010", tmpl.ID)
			continue
		}
		if !col.Required {
			t.Errorf("%s: primary key column c0010 must be required", tmpl.ID)
		}
		if tmpl.Columns[0].Code != "c0010" {
			t.Errorf("%s: c0010 must be the first declared column", tmpl.ID)
		}
	}
}

func TestGetUnknownTemplate(t *testing.T) {
	if _, err := Get(ID("B_42.01")); err == nil {
		t.Error("expected error for unknown template id")
	}
}

func TestReferencesResolveToDeclaredColumns(t *testing.T) {
	for _, ref := range References() {
		from := MustGet(ref.FromTemplate)
		to := MustGet(ref.ToTemplate)
		if from.Column(ref.FromColumn) == nil {
			t.Errorf("reference %s.%s: source column not declared", ref.FromTemplate, ref.FromColumn)
		}
		if to.Column(ref.ToColumn) == nil {
			t.Errorf("reference -> %s.%s: target column not declared", ref.ToTemplate, ref.ToColumn)
		}
	}
}

func TestNewRowRejectsUndeclaredColumn(t *testing.T) {
	_, err := NewRow(B0601, map[string]string{
		"c0010": "F1",
		"c9999": "stray",
	})
	if err == nil {
		t.Fatal("expected error for undeclared column code")
	}
}

func TestPackageAppendAndIndicators(t *testing.T) {
	p := NewPackage(Meta{
		EntityLEI:     "529900T8BM49AURSDO55",
		EntityCountry: "DE",
		RefPeriod:     time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		BaseCurrency:  "EUR",
	})

	err := p.Append(B0601, map[string]string{"c0010": "F1", "c0020": "Payments", "c0040": "eba_BT:x28"})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if p.RowCount(B0601) != 1 {
		t.Errorf("RowCount(B_06.01) = %d, want 1", p.RowCount(B0601))
	}

	indicators := p.FilingIndicators()
	if len(indicators) != len(All()) {
		t.Fatalf("expected one indicator per template, got %d", len(indicators))
	}
	for _, fi := range indicators {
		want := fi.Template == B0601
		if fi.Reported != want {
			t.Errorf("indicator %s = %v, want %v", fi.Template, fi.Reported, want)
		}
	}
}

func TestPackageRowOrderPreserved(t *testing.T) {
	p := NewPackage(Meta{})
	for _, id := range []string{"F3", "F1", "F2"} {
		if err := p.Append(B0601, map[string]string{"c0010": id, "c0020": "fn", "c0040": "eba_BT:x29"}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	rows := p.Rows(B0601)
	got := []string{rows[0]["c0010"], rows[1]["c0010"], rows[2]["c0010"]}
	want := []string{"F3", "F1", "F2"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d pk = %s, want %s (insertion order must be kept)", i, got[i], want[i])
		}
	}
}
