package common

import (
	"fmt"
	"slices"
)

// ValidateOutputFormat checks a --format value against the formats the
// configuration allows. An empty allow-list accepts anything.
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // No restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// GetSupportedFormats returns the configured format allow-list, used by
// shell completion for the --format flag.
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}
