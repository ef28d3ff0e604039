package ingest

import "testing"

func TestCleanName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "constituency stripped",
			raw:      "Jane Smith (Toronto Centre)",
			expected: "Jane Smith",
		},
		{
			name:     "honourific stripped",
			raw:      "Hon. Jane Smith",
			expected: "Jane Smith",
		},
		{
			name:     "right honourable stripped",
			raw:      "The Right Hon. Jane Smith",
			expected: "Jane Smith",
		},
		{
			name:     "whitespace collapsed",
			raw:      "  Jane   Smith  ",
			expected: "Jane Smith",
		},
		{
			name:     "combined",
			raw:      "Hon.  Jane  Smith (Vancouver East)",
			expected: "Jane Smith",
		},
		{
			name:     "plain name untouched",
			raw:      "Jane Smith",
			expected: "Jane Smith",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanName(tt.raw); got != tt.expected {
				t.Errorf("CleanName(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestFirstLastKey(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "middle initial dropped",
			raw:      "Michael D. Chong",
			expected: "michael chong",
		},
		{
			name:     "two part name",
			raw:      "Jane Smith",
			expected: "jane smith",
		},
		{
			name:     "single word",
			raw:      "Jane",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstLastKey(tt.raw); got != tt.expected {
				t.Errorf("firstLastKey(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}
