package validation

import (
	"strings"
	"testing"
)

// TestValidatePathRequest tests path query validation
func TestValidatePathRequest(t *testing.T) {
	tests := []struct {
		name        string
		req         PathRequest
		expectError bool
		errorField  string
	}{
		{
			name: "Valid open ended request",
			req:  PathRequest{From: "u1.Q"},
		},
		{
			name: "Valid bounded request",
			req:  PathRequest{From: "u1.Q", To: "n4", MaxDepth: 25},
		},
		{
			name: "Start equals end is allowed",
			req:  PathRequest{From: "n1", To: "n1"},
		},
		{
			name:        "Missing from",
			req:         PathRequest{To: "n4"},
			expectError: true,
			errorField:  "from",
		},
		{
			name:        "Negative depth",
			req:         PathRequest{From: "a", MaxDepth: -1},
			expectError: true,
			errorField:  "max_depth",
		},
		{
			name:        "Depth over limit",
			req:         PathRequest{From: "a", MaxDepth: MaxDepthLimit + 1},
			expectError: true,
			errorField:  "max_depth",
		},
		{
			name:        "Whitespace in to",
			req:         PathRequest{From: "a", To: "n 4"},
			expectError: true,
			errorField:  "to",
		},
		{
			name:        "Overlong from",
			req:         PathRequest{From: strings.Repeat("x", MaxNameLength+1)},
			expectError: true,
			errorField:  "from",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathRequest(&tt.req)
			if tt.expectError {
				if err == nil {
					t.Fatalf("Expected error but got none")
				}
				if !containsField(err.Error(), tt.errorField) {
					t.Errorf("Expected error about %q, got: %v", tt.errorField, err)
				}
				return
			}
			if err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestValidatePathRequestNil(t *testing.T) {
	if err := ValidatePathRequest(nil); err == nil {
		t.Error("Expected error for nil request")
	}
}

func TestValidateBatchSize(t *testing.T) {
	tests := []struct {
		size        int
		expectError bool
	}{
		{size: 0, expectError: true},
		{size: -5, expectError: true},
		{size: 1},
		{size: 10000},
		{size: MaxBatchSize},
		{size: MaxBatchSize + 1, expectError: true},
	}

	for _, tt := range tests {
		err := ValidateBatchSize(tt.size)
		if (err != nil) != tt.expectError {
			t.Errorf("ValidateBatchSize(%d) error = %v, expectError %v", tt.size, err, tt.expectError)
		}
	}
}

func TestValidateName(t *testing.T) {
	valid := []string{"u1.Q", "net1966", `\bus[3]`, "u_cell_3486.A1"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "a b", "a\tb", strings.Repeat("n", MaxNameLength+1)}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q) = nil, want error", name)
		}
	}
}

type nested struct {
	Inner struct {
		Level string `yaml:"level" validate:"oneof=debug info"`
		Addr  string `yaml:"addr" validate:"required,hostname_port"`
	} `yaml:"inner"`
}

func TestStructReportsNestedKeys(t *testing.T) {
	var v nested
	v.Inner.Level = "loud"
	v.Inner.Addr = ":8080"

	err := Struct(&v)
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.HasPrefix(err.Error(), "inner.level: must be one of") {
		t.Errorf("Unexpected message: %v", err)
	}

	v.Inner.Level = "info"
	v.Inner.Addr = "8080"
	if err := Struct(&v); err == nil || !strings.Contains(err.Error(), "inner.addr: must be host:port") {
		t.Errorf("Expected host:port error, got %v", err)
	}

	v.Inner.Addr = "localhost:8080"
	if err := Struct(&v); err != nil {
		t.Errorf("Expected valid, got %v", err)
	}
}

func containsField(errMsg, field string) bool {
	return strings.HasPrefix(errMsg, field+":")
}
