package common

import (
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	supported := []string{"json", "text", "markdown"}

	tests := []struct {
		name      string
		format    string
		supported []string
		wantErr   string
	}{
		{name: "json allowed", format: "json", supported: supported},
		{name: "text allowed", format: "text", supported: supported},
		{name: "markdown allowed", format: "markdown", supported: supported},
		{
			name:      "unknown format rejected",
			format:    "xml",
			supported: supported,
			wantErr:   "unsupported output format 'xml'. Supported formats: [json text markdown]",
		},
		{
			name:      "matching is case sensitive",
			format:    "JSON",
			supported: supported,
			wantErr:   "unsupported output format 'JSON'. Supported formats: [json text markdown]",
		},
		{
			name:      "empty format rejected",
			format:    "",
			supported: supported,
			wantErr:   "unsupported output format ''. Supported formats: [json text markdown]",
		},
		{name: "empty allow-list accepts anything", format: "xml", supported: []string{}},
		{name: "single-entry list accepts its entry", format: "json", supported: []string{"json"}},
		{
			name:      "single-entry list rejects others",
			format:    "text",
			supported: []string{"json"},
			wantErr:   "unsupported output format 'text'. Supported formats: [json]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supported)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestGetSupportedFormats(t *testing.T) {
	tests := []struct {
		name     string
		formats  []string
		expected []string
	}{
		{"default trio", []string{"json", "text", "markdown"}, []string{"json", "text", "markdown"}},
		{"single", []string{"json"}, []string{"json"}},
		{"empty", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetSupportedFormats(tt.formats)
			if len(result) != len(tt.expected) {
				t.Fatalf("got %d formats, want %d", len(result), len(tt.expected))
			}
			for i, want := range tt.expected {
				if result[i] != want {
					t.Errorf("format[%d] = %q, want %q", i, result[i], want)
				}
			}
		})
	}
}

func BenchmarkValidateOutputFormat(b *testing.B) {
	supported := []string{"json", "text", "markdown"}

	b.Run("valid", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("json", supported)
		}
	})
	b.Run("invalid", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("xml", supported)
		}
	})
}
