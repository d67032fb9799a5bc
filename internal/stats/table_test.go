package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Mode", "Success", "Best"}
	rows := [][]string{
		{"a", "97.50%", "12"},
		{"<quick>", "8.00%", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Mode    Success Best" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a        97.50%   12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "<quick>   8.00%    3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableUsesDisplayWidth(t *testing.T) {
	lines := formatTable([]string{"Verb", "N"}, [][]string{{"走る", "1"}, {"go", "2"}}, map[int]bool{1: true})
	if lines[1] != "走る 1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "go   2" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}
