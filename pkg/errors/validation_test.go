package errors

import (
	"strings"
	"testing"
)

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "graphs/web.adj", false},
		{"valid absolute", "/data/web-Google.txt", false},
		{"valid stdin", "-", false},
		{"valid with dots", "../shared/graph.snap", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateFilePath(%q) code = %s, want %s", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateCacheDir(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid absolute", "/home/user/.cache/csrgraph", false},
		{"valid relative", ".cache", false},
		{"dotted name", "cache..old", false},

		{"empty", "", true},
		{"traversal", "/tmp/../etc", true},
		{"traversal backslash", "cache\\..\\x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCacheDir(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCacheDir(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAddr(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"host and port", "localhost:6379", false},
		{"empty host", ":8080", false},
		{"ipv6", "[::1]:8080", false},

		{"empty", "", true},
		{"no port", "localhost", true},
		{"bad port", "localhost:http", true},
		{"port out of range", "localhost:70000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddr(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAddr(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMongoURI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"standard", "mongodb://localhost:27017", false},
		{"srv", "mongodb+srv://cluster.example.net", false},

		{"empty", "", true},
		{"http", "http://localhost:27017", true},
		{"no scheme", "localhost:27017", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMongoURI(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMongoURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCount(t *testing.T) {
	if err := ValidateCount("workers", 0); err != nil {
		t.Errorf("zero should be accepted: %v", err)
	}
	if err := ValidateCount("workers", 8); err != nil {
		t.Errorf("positive should be accepted: %v", err)
	}
	err := ValidateCount("chunk_size", -1)
	if !Is(err, ErrCodeInvalidInput) {
		t.Fatalf("negative count error = %v, want %s", err, ErrCodeInvalidInput)
	}
	if !strings.Contains(err.Error(), "chunk_size") {
		t.Errorf("error %q should name the setting", err)
	}
}
