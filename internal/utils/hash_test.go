package utils

import "testing"

func TestGenerateRandomToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := GenerateRandomToken(32)
		if err != nil {
			t.Fatalf("GenerateRandomToken: %v", err)
		}
		if len(token) != 43 { // 32 bytes, unpadded base64url
			t.Fatalf("token length = %d, want 43: %q", len(token), token)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %q", token)
		}
		seen[token] = true
	}
}

func TestHashToken(t *testing.T) {
	first := HashToken("some-token")
	second := HashToken("some-token")
	if first != second {
		t.Error("hash must be deterministic")
	}
	if first == "some-token" {
		t.Error("hash must not be the identity")
	}
	if HashToken("other-token") == first {
		t.Error("distinct tokens must hash differently")
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  Alice@Example.COM ", "alice@example.com"},
		{"bob@example.com", "bob@example.com"},
		{"   ", ""},
	}
	for _, tc := range tests {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeUsername(t *testing.T) {
	if got := NormalizeUsername("  Alice  "); got != "Alice" {
		t.Errorf("NormalizeUsername = %q, want case preserved, whitespace trimmed", got)
	}
}
