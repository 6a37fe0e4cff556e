package codegen

import "testing"

func TestExportedName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"hero", "Hero"},
		{"appearsIn", "AppearsIn"},
		{"appears_in", "AppearsIn"},
		{"NEW_HOPE", "NewHope"},
		{"123", "X123"},
		{"", "X"},
	}
	for _, c := range cases {
		if got := exportedName(c.input); got != c.want {
			t.Errorf("exportedName(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestParamName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Stars", "stars"},
		{"type", "type_"},
		{"range", "range_"},
		{"reviewInput", "reviewInput"},
	}
	for _, c := range cases {
		if got := paramName(c.input); got != c.want {
			t.Errorf("paramName(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestSplitTypeImport(t *testing.T) {
	cases := []struct {
		mapped     string
		wantExpr   string
		wantImport string
	}{
		{"string", "string", ""},
		{"time.Time", "time.Time", "time"},
		{"github.com/shopspring/decimal.Decimal", "decimal.Decimal", "github.com/shopspring/decimal"},
	}
	for _, c := range cases {
		expr, imp := splitTypeImport(c.mapped)
		if expr != c.wantExpr || imp != c.wantImport {
			t.Errorf("splitTypeImport(%q) = (%q, %q), want (%q, %q)",
				c.mapped, expr, imp, c.wantExpr, c.wantImport)
		}
	}
}
