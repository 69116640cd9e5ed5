package mock

import "testing"

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		bound bool
	}{
		{"fetchItems", "fetchItems", false},
		{"", "", false},
		{"bound fetchItems", "fetchItems", true},
		{"bound bound bound f", "f", true},
		{"func", "$func", false},
		{"range", "$range", false},
		{"notakeyword", "notakeyword", false},
		{"has space", "has$space", false},
		{"tab\there", "tab$here", false},
		{"kebab-case-name", "kebab$case$name", false},
		{"bound go", "$go", true},
	}

	for _, tt := range tests {
		got, bound := SanitizeName(tt.in)
		if got != tt.want || bound != tt.bound {
			t.Errorf("SanitizeName(%q) = (%q, %v), want (%q, %v)",
				tt.in, got, bound, tt.want, tt.bound)
		}
	}
}

func TestBoundNameRoundTrip(t *testing.T) {
	f := NewFunction("bound doWork", nil)
	out := roundTrip(t, f.ToValue())
	mf := out.AsFunction()
	if mf.Name() != "doWork" {
		t.Errorf("sanitized name = %q, want doWork", mf.Name())
	}
	if mf.DisplayName() != "bound doWork" {
		t.Errorf("display name = %q, want bound doWork", mf.DisplayName())
	}
}
