package matching

import "testing"

func TestParseBudget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{
			name:   "plain number",
			input:  "1800000",
			want:   1800000,
			wantOK: true,
		},
		{
			name:   "currency symbol and spaces",
			input:  "€ 950 000",
			want:   950000,
			wantOK: true,
		},
		{
			name:   "comma as decimal separator",
			input:  "2,5",
			want:   2.5,
			wantOK: true,
		},
		{
			name:   "trailing currency code",
			input:  "1200000 EUR",
			want:   1200000,
			wantOK: true,
		},
		{
			name:   "dotted thousands groups keep the upstream quirk",
			input:  "1.200.000",
			want:   1.2,
			wantOK: true,
		},
		{
			name:   "m suffix is not expanded",
			input:  "1.5M",
			want:   1.5,
			wantOK: true,
		},
		{
			name:   "empty string",
			input:  "",
			wantOK: false,
		},
		{
			name:   "no digits at all",
			input:  "ask the agent",
			wantOK: false,
		},
		{
			name:   "lone separator",
			input:  ",",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseBudget(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
