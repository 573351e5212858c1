package codes

import (
	"strings"
	"testing"
)

func TestGenerateLength(t *testing.T) {
	for _, length := range []int{1, 6, 8, 32} {
		code := Generate(AdminAlphabet, length)
		if len(code) != length {
			t.Errorf("Expected length %d, got %d (%q)", length, len(code), code)
		}
	}
}

func TestGenerateStaysInAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := Generate(MemberAlphabet, MemberCodeLength)
		for _, ch := range code {
			if !strings.ContainsRune(MemberAlphabet, ch) {
				t.Fatalf("Code %q contains %q, not in alphabet", code, ch)
			}
		}
	}
}

func TestGenerateExcludesAmbiguousCharacters(t *testing.T) {
	for _, ch := range "IO01l" {
		if strings.ContainsRune(AdminAlphabet, ch) {
			t.Errorf("Admin alphabet contains ambiguous character %q", ch)
		}
		if strings.ContainsRune(MemberAlphabet, ch) {
			t.Errorf("Member alphabet contains ambiguous character %q", ch)
		}
	}
}

func TestGenerateVaries(t *testing.T) {
	// 8 chars over 32 symbols; a repeat across 50 draws means a broken source.
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := Generate(AdminAlphabet, AdminCodeLength)
		if seen[code] {
			t.Fatalf("Generated duplicate code %q", code)
		}
		seen[code] = true
	}
}
