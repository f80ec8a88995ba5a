package protocol

import (
	"fmt"
	"strings"

	errspkg "github.com/drblury/omlflow/internal/runtime/errors"
)

// nameBreakers split a "schema:" line or the header if they appear in a name.
const nameBreakers = " \t\r\n"

// CheckHeaderValue rejects values that would end a header line early.
func CheckHeaderValue(field, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: %s %q", errspkg.ErrLineBreak, field, value)
	}
	return nil
}

// ValidateAppName reports whether name can prefix the server-side table names.
// It must be non-empty, must not start with a digit and must not contain '-',
// '.' or whitespace.
func ValidateAppName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", errspkg.ErrInvalidAppName)
	}
	if name[0] >= '0' && name[0] <= '9' {
		return fmt.Errorf("%w: %q starts with a digit", errspkg.ErrInvalidAppName, name)
	}
	if strings.ContainsAny(name, "-.") {
		return fmt.Errorf("%w: %q contains '-' or '.'", errspkg.ErrInvalidAppName, name)
	}
	if strings.ContainsAny(name, nameBreakers) {
		return fmt.Errorf("%w: %q contains whitespace", errspkg.ErrInvalidAppName, name)
	}
	return nil
}

// ValidateMeasurementPointName applies the measurement point naming rules:
// non-empty, no '-', no '.' and no whitespace.
func ValidateMeasurementPointName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", errspkg.ErrInvalidMeasurementPointName)
	}
	if strings.ContainsAny(name, "-.") {
		return fmt.Errorf("%w: %q contains '-' or '.'", errspkg.ErrInvalidMeasurementPointName, name)
	}
	if strings.ContainsAny(name, nameBreakers) {
		return fmt.Errorf("%w: %q contains whitespace", errspkg.ErrInvalidMeasurementPointName, name)
	}
	return nil
}

// TableName is the name the server stores a measurement point under.
func TableName(appName, mpName string) string {
	return appName + "_" + mpName
}
