package pipeline

import (
	"fmt"
	"strings"
)

// ConfigurationError reports required logical fields whose mapped columns
// are absent from the input table. Fatal: it aborts the run before any
// aggregation.
type ConfigurationError struct {
	MissingColumns []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("required columns not found: %s", strings.Join(e.MissingColumns, ", "))
}

// DataError reports a value that is present but not parseable, keyed by
// the phone group it belongs to. The affected group is excluded from the
// output; the run continues.
type DataError struct {
	Phone  string
	Column string
	Value  string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("group %s: column %q: cannot parse %q as an amount", e.Phone, e.Column, e.Value)
}
