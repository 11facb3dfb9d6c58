package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("aut")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(got, "aut-") {
		t.Errorf("expected aut- prefix, got %q", got)
	}
	if len(got) != len("aut-")+21 {
		t.Errorf("unexpected length %d for %q", len(got), got)
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for n := 0; n < 100; n++ {
		id := MustGenerate("pub")
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
