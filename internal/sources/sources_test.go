package sources

import "testing"

func TestParseFloat(t *testing.T) {
	if v := parseFloat("230.55"); v == nil || *v != 230.55 {
		t.Errorf("Expected 230.55, got %v", v)
	}
	if v := parseFloat(" 1.5 "); v == nil || *v != 1.5 {
		t.Errorf("Expected whitespace tolerated, got %v", v)
	}
	for _, bad := range []string{"", "None", "-"} {
		if v := parseFloat(bad); v != nil {
			t.Errorf("Input %q: expected nil, got %f", bad, *v)
		}
	}
}

func TestParsePercent(t *testing.T) {
	if v := parsePercent("1.2345%"); v == nil || *v != 1.2345 {
		t.Errorf("Expected 1.2345, got %v", v)
	}
	if v := parsePercent("-0.5%"); v == nil || *v != -0.5 {
		t.Errorf("Expected -0.5, got %v", v)
	}
	if v := parsePercent(""); v != nil {
		t.Errorf("Expected nil for empty percent, got %f", *v)
	}
}

func TestParseInt(t *testing.T) {
	if v := parseInt("48087700"); v == nil || *v != 48087700 {
		t.Errorf("Expected 48087700, got %v", v)
	}
	if v := parseInt("48,087,700"); v != nil {
		t.Errorf("Expected nil for grouped digits, got %d", *v)
	}
}

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain description", "plain description"},
		{"<p>Shares <b>rose</b> today</p>", "Shares rose today"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := stripHTML(tc.in); got != tc.want {
			t.Errorf("Input %q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestSocialLabel(t *testing.T) {
	cases := []struct {
		pct  int
		want string
	}{
		{90, "Strongly Bullish"},
		{70, "Strongly Bullish"},
		{60, "Bullish"},
		{50, "Mixed"},
		{40, "Bearish"},
		{20, "Strongly Bearish"},
	}
	for _, tc := range cases {
		if got := socialLabel(tc.pct); got != tc.want {
			t.Errorf("Bullish %d%%: expected %s, got %s", tc.pct, tc.want, got)
		}
	}
}
