package domain

import "fmt"

// FormatError reports a file whose extension does not match any accepted
// extension for the requested upload slot. It is raised before parsing and is
// fatal only to the single ingestion call.
type FormatError struct {
	Filename string
	Format   Format
}

func (e *FormatError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("unsupported file extension: %s", e.Filename)
	}
	return fmt.Sprintf("unsupported file extension for %s upload: %s", e.Format, e.Filename)
}

// ParseError reports a file that passed extension checks but could not be
// decoded. Prior datasets of other categories are unaffected.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
