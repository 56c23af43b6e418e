package common

import (
	"fmt"
	"slices"
)

// ValidateOutputFormat checks a requested format against the configured
// allow-list. An empty list allows everything.
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil
	}
	if slices.Contains(supportedFormats, format) {
		return nil
	}
	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// GetSupportedFormats returns the configured format list as-is.
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}
