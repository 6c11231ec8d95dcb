package utils

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
			name:  "nothing for a zero limit",
			input: "Frontend Developer",
			limit: 0,
		},
		{
			name:   "short reply kept",
			input:  "Olá!",
			limit:  10,
			expect: "Olá!",
		},
		{
			name:   "cuts on runes",
			input:  "São Paulo, Brasil",
			limit:  3,
			expect: "São...",
		},
		{
			name:   "trims before measuring",
			input:  "  {\"fit\": true}  ",
			limit:  14,
			expect: `{"fit": true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("TruncateForLog(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.expect)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  São   Paulo ": "são paulo",
		"Node.JS":        "node.js",
		"":               "",
	}

	for input, expect := range tests {
		if got := NormalizeKey(input); got != expect {
			t.Fatalf("NormalizeKey(%q): expected %q, got %q", input, expect, got)
		}
	}
}
