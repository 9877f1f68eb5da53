package parser

import "testing"

func TestToFloat_Defaults(t *testing.T) {
	t.Parallel()

	cases := []string{"", "   ", "n/a", "down all day", "--"}
	for _, in := range cases {
		if got := toFloat(in, 0); got != 0 {
			t.Fatalf("toFloat(%q) = %v, want 0", in, got)
		}
	}
	if got := toFloat("junk", 7.5); got != 7.5 {
		t.Fatalf("toFloat fallback default = %v, want 7.5", got)
	}
}

func TestToFloat_Numeric(t *testing.T) {
	t.Parallel()

	if got := toFloat("12.5", 0); got != 12.5 {
		t.Fatalf("toFloat(12.5) = %v", got)
	}
	if got := toFloat(" 8 ", 0); got != 8 {
		t.Fatalf("toFloat(' 8 ') = %v", got)
	}
	if got := toFloat("1,250", 0); got != 1250 {
		t.Fatalf("toFloat('1,250') = %v", got)
	}
	if got := toFloat("-3.25", 0); got != -3.25 {
		t.Fatalf("toFloat('-3.25') = %v", got)
	}
}

func TestToText_Trims(t *testing.T) {
	t.Parallel()

	if got := toText("  OCC  "); got != "OCC" {
		t.Fatalf("toText = %q", got)
	}
	if got := toText("   "); got != "" {
		t.Fatalf("toText(whitespace) = %q, want empty", got)
	}
}

func TestCellAt_RaggedGrid(t *testing.T) {
	t.Parallel()

	rows := [][]string{{"a", "b"}, {"c"}}
	if got := cellAt(rows, 0, 1); got != "b" {
		t.Fatalf("cellAt(0,1) = %q", got)
	}
	if got := cellAt(rows, 1, 5); got != "" {
		t.Fatalf("cellAt beyond row length = %q, want empty", got)
	}
	if got := cellAt(rows, 9, 0); got != "" {
		t.Fatalf("cellAt beyond grid = %q, want empty", got)
	}
}
