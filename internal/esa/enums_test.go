package esa

import "testing"

func TestEncodeCountry(t *testing.T) {
	r := NewRegistry()

	code, ok := r.Encode(Country, "DE")
	if !ok {
		t.Fatal("expected DE to be a known country")
	}
	if code != "eba_GA:DE" {
		t.Errorf("Encode(Country, DE) = %q, want eba_GA:DE", code)
	}
}

func TestEncodeBoolean(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		logical string
		want    string
	}{
		{"true", "eba_BT:x28"},
		{"false", "eba_BT:x29"},
	}
	for _, tt := range tests {
		code, ok := r.Encode(Boolean, tt.logical)
		if !ok || code != tt.want {
			t.Errorf("Encode(Boolean, %s) = %q, %v, want %q", tt.logical, code, ok, tt.want)
		}
	}
}

func TestEncodeUnknownValue(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Encode(Country, "ZZ"); ok {
		t.Error("ZZ is not an ISO country and must not encode")
	}
	if _, ok := r.Encode(ServiceType, "S99"); ok {
		t.Error("S99 is outside the service type taxonomy and must not encode")
	}
}

func TestEncodeUnknownCategoryPanics(t *testing.T) {
	r := NewRegistry()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown category")
		}
	}()
	r.Encode(Category("no_such_table"), "x")
}

func TestIsValidCode(t *testing.T) {
	r := NewRegistry()

	if !r.IsValidCode(IdentifierType, "eba_qCO:qx2000") {
		t.Error("LEI qualifier code should be valid")
	}
	if r.IsValidCode(IdentifierType, "eba_qCO:qx9999") {
		t.Error("unassigned qualifier code should be invalid")
	}
	if !r.IsValidCode(ServiceType, "eba_TA:x19") {
		t.Error("S19 wire code should be valid")
	}
}
