package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantLen int
	}{
		{"default length", 0, DefaultLength},
		{"explicit length", 8, 8},
		{"long", 32, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.length)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("Generate() length = %d, want %d", len(got), tt.wantLen)
			}
			for _, r := range got {
				if !strings.ContainsRune(alphabet, r) {
					t.Errorf("Generate() contains invalid rune %q", r)
				}
			}
		})
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := Generate(DefaultLength)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if seen[id] {
			t.Fatalf("Generate() produced duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		prefix  string
		wantErr bool
	}{
		{"valid subscription id", "sub_xK9mP2vL3nQw", PrefixSubscription, false},
		{"valid plan id", "plan_0A1b2C3d4E5f", PrefixPlan, false},
		{"wrong prefix", "plan_xK9mP2vL3nQw", PrefixSubscription, true},
		{"missing random part", "sub_", PrefixSubscription, true},
		{"empty", "", PrefixSubscription, true},
		{"no separator", "subxK9mP2vL3nQw", PrefixSubscription, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrefix(tt.id, tt.prefix)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePrefix() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
