package tool

import (
	"testing"

	"github.com/google/uuid"
)

// TestGenerateRandomUUID checks that the id is a parseable UUID
func TestGenerateRandomUUID(t *testing.T) {
	if _, err := uuid.Parse(GenerateRandomUUID()); err != nil {
		t.Errorf("Expected a valid UUID: %v", err)
	}
}

// TestGenerateShortSessionID checks the short form: 8 hex chars, UUID-derived
func TestGenerateShortSessionID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := GenerateShortSessionID()
		if len(id) != 8 {
			t.Fatalf("Expected 8 chars, got %q", id)
		}
		for _, c := range id {
			if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
				t.Fatalf("Expected lowercase hex, got %q", id)
			}
		}
		seen[id] = struct{}{}
	}
	if len(seen) < 2 {
		t.Error("Expected distinct session ids across calls")
	}
}
