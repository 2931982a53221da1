package tui

import "testing"

func TestCompactNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "-"},
		{7, "7"},
		{999, "999"},
		{1000, "1k"},
		{1234, "1.2k"},
		{9500, "9.5k"},
		{12000, "12k"},
		{1500000, "1.5M"},
		{12000000, "12M"},
	}
	for _, tt := range tests {
		if got := compactNumber(tt.in); got != tt.want {
			t.Errorf("compactNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"42", 42},
		{"12K", 12000},
		{"1,5k", 1500},
		{"2.3M", 2300000},
		{"garbage", 0},
	}
	for _, tt := range tests {
		if got := parseMetric(tt.in); got != tt.want {
			t.Errorf("parseMetric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long for this", 10, "much too …"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestMatchFilter(t *testing.T) {
	tests := []struct {
		title   string
		pattern string
		want    bool
	}{
		{"Generics in practice", "", true},
		{"Generics in practice", "generics", true},
		{"Generics in practice", "gen*practice", true},
		{"Generics in practice", "practice*gen", false},
		{"Generics in practice", "rust", false},
		{"Generics in practice", "GEN*IN", true},
	}
	for _, tt := range tests {
		if got := matchFilter(tt.title, tt.pattern); got != tt.want {
			t.Errorf("matchFilter(%q, %q) = %v, want %v", tt.title, tt.pattern, got, tt.want)
		}
	}
}
