package logger

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "around one million",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "1.5M",
			limit:  10,
			expect: "1.5M",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "somewhere on the coast near Cascais",
			limit:  9,
			expect: "somewhere...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestStringFieldsSkipsEmptyEntries(t *testing.T) {
	t.Parallel()

	fields := StringFields(
		StringField{Key: "lead_id", Value: "l1"},
		StringField{Key: "", Value: "dropped"},
		StringField{Key: "lead_name", Value: "   "},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != "lead_id" {
		t.Fatalf("unexpected field: %s", fields[0].Key)
	}
}

func TestWithFieldsNilLogger(t *testing.T) {
	t.Parallel()

	if WithFields(nil) == nil {
		t.Fatalf("expected a usable logger for nil input")
	}
}
