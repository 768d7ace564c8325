package util

import "testing"

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{name: "already canonical", email: "user@example.com", expected: "user@example.com"},
		{name: "mixed case", email: "User@Example.COM", expected: "user@example.com"},
		{name: "surrounding whitespace", email: "  user@example.com\t", expected: "user@example.com"},
		{name: "case and whitespace", email: " USER@EXAMPLE.COM ", expected: "user@example.com"},
		{name: "empty", email: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeEmail(tt.email); got != tt.expected {
				t.Fatalf("NormalizeEmail(%q) = %q, want %q", tt.email, got, tt.expected)
			}
		})
	}
}
