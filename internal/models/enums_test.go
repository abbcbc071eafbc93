package models

import (
	"strings"
	"testing"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"rm", "RM", false},
		{"USD", "USD", false},
		{" eur ", "EUR", false},
		{"XYZ", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCurrency(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCurrency(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCurrency(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCurrency_ErrorListsEveryCodeOnce(t *testing.T) {
	_, err := ParseCurrency("XYZ")
	if err == nil {
		t.Fatal("expected error for unknown currency")
	}
	for _, code := range CurrencyCodes() {
		// Match whole list entries so "RM" is not counted inside other words.
		count := 0
		for _, part := range strings.Split(strings.SplitN(err.Error(), "Valid options: ", 2)[1], ", ") {
			if part == code {
				count++
			}
		}
		if count != 1 {
			t.Errorf("code %s appears %d times in %q", code, count, err.Error())
		}
	}
}

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		input   string
		want    Visibility
		wantErr bool
	}{
		{"public", VisibilityPublic, false},
		{"PRIVATE", VisibilityPrivate, false},
		{"read_only", VisibilityReadOnly, false},
		{"read-only", VisibilityReadOnly, false},
		{"shared", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVisibility(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVisibility(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseVisibility(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAssignees(t *testing.T) {
	tests := []struct {
		name       string
		assignedTo string
		quantity   int
		want       []string
	}{
		{"truncated to quantity", "Alice, Bob", 1, []string{"Alice"}},
		{"trims and drops empties", " Alice ,, Bob , ", 3, []string{"Alice", "Bob"}},
		{"empty clears", "", 2, nil},
		{"only separators", " , ,", 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAssignees(tt.assignedTo, tt.quantity)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("ParseAssignees(%q, %d) = %v, want %v", tt.assignedTo, tt.quantity, got, tt.want)
			}
		})
	}
}

func TestVisibilityShared(t *testing.T) {
	if VisibilityPrivate.Shared() {
		t.Error("PRIVATE must not be shared")
	}
	if !VisibilityReadOnly.Shared() || !VisibilityPublic.Shared() {
		t.Error("READ_ONLY and PUBLIC must be shared")
	}
}
