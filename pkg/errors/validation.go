package errors

import (
	"net"
	"strconv"
	"strings"
	"unicode"
)

// maxPathLength bounds every file path accepted on the command line or in
// configuration.
const maxPathLength = 4096

// ValidateFilePath validates a local file path for reading or writing a graph.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 bytes
//   - No null bytes or control characters
//
// Both absolute and relative paths are accepted; "-" is reserved by callers
// for standard input or output and is accepted here as well.
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateCacheDir validates a cache directory. In addition to the
// [ValidateFilePath] rules it rejects parent directory references, since the
// cache deletes files below this directory on clear.
func ValidateCacheDir(dir string) error {
	if err := ValidateFilePath(dir); err != nil {
		return err
	}
	for _, part := range strings.FieldsFunc(dir, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "cache directory cannot contain path traversal sequences (..)")
		}
	}
	return nil
}

// ValidateAddr validates a host:port network address such as a listen
// address or a Redis endpoint. The host may be empty; the port must be numeric.
func ValidateAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidInput, "address cannot be empty")
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid address %q", addr)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 0 || p > 65535 {
		return New(ErrCodeInvalidInput, "invalid port in address %q", addr)
	}
	return nil
}

// ValidateMongoURI validates a MongoDB connection string.
// It ensures the URI uses the mongodb or mongodb+srv scheme.
func ValidateMongoURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidInput, "MongoDB URI cannot be empty")
	}
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return New(ErrCodeInvalidInput, "MongoDB URI must use mongodb or mongodb+srv scheme")
	}
	return nil
}

// ValidateCount validates a non-negative tuning knob such as a worker count
// or a chunk size. Zero selects the default and is always accepted.
func ValidateCount(name string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative, got %d", name, v)
	}
	return nil
}
