package migrate

import "testing"

func TestNewStrategySelectsTool(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		wantName string
		wantErr  bool
	}{
		{"default", "golang-migrate", "golang_migrate", false},
		{"goose", "goose", "goose", false},
		{"unknown", "flyway", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := tool
			defer func() { tool = prev }()
			tool = tt.tool

			strategy, err := newStrategy("/tmp/migrations")
			if (err != nil) != tt.wantErr {
				t.Fatalf("newStrategy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := strategy.GetName(); got != tt.wantName {
				t.Errorf("GetName() = %q, want %q", got, tt.wantName)
			}
		})
	}
}
