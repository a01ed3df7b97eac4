package lei

import "testing"

func TestValid(t *testing.T) {
	tests := []struct {
		lei  string
		want bool
	}{
		{"529900T8BM49AURSDO55", true},  // Deutsche Bank
		{"529900T8BM49AURSDO56", false}, // last digit flipped
		{"213800WSGIIZCXF1P572", true},
		{"529900T8BM49AURSDO5", false},   // 19 chars
		{"529900T8BM49AURSDO555", false}, // 21 chars
		{"", false},
		{"529900t8bm49aursdo55", false}, // lowercase not accepted
		{"5299-0T8BM49AURSDO55", false}, // punctuation
	}

	for _, tt := range tests {
		if got := Valid(tt.lei); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.lei, got, tt.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" 529900t8bm49aursdo55 ", "529900T8BM49AURSDO55"},
		{"5299-00T8/BM49", "529900T8BM49"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeThenValid(t *testing.T) {
	if !Valid(Sanitize("5299 00T8 BM49 AURS DO55")) {
		t.Error("expected sanitized grouped LEI to validate")
	}
}

func TestIsShaped(t *testing.T) {
	if !IsShaped("AAAAAAAAAAAAAAAAAAAA") {
		t.Error("expected 20 uppercase letters to be LEI-shaped")
	}
	if IsShaped("AAAAAAAAAAAAAAAAAAA") {
		t.Error("19 characters should not be LEI-shaped")
	}
	// Shape says nothing about the checksum.
	if Valid("AAAAAAAAAAAAAAAAAAAA") {
		t.Error("shaped but checksum-invalid LEI must not validate")
	}
}
