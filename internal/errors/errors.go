// Package errors defines the coded error taxonomy for the risk index
// pipeline. Every fatal error carries a stable code plus enough context
// (dataset, column, row) to point at the offending input, because a
// retry without fixing the data would reproduce the same failure.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies a pipeline failure.
type Code string

const (
	// CodeMissingFile indicates a required input CSV is absent.
	CodeMissingFile Code = "MISSING_FILE"
	// CodeSchema indicates an expected column is missing or a country
	// identifier is duplicated in a source table.
	CodeSchema Code = "SCHEMA"
	// CodeDataQuality indicates a malformed numeric value. The error
	// names the dataset, column, and row.
	CodeDataQuality Code = "DATA_QUALITY"
	// CodeUnknownIndicator indicates a weight scenario references an
	// indicator that is not a column of the normalized table.
	CodeUnknownIndicator Code = "UNKNOWN_INDICATOR"
	// CodeConfig indicates invalid configuration.
	CodeConfig Code = "CONFIG"
)

// PipelineError is a fatal, coded pipeline failure. All fields except
// Code and Message are optional and filled when known.
type PipelineError struct {
	Code    Code
	Dataset string
	Column  string
	Row     int // 1-based data row; 0 when not applicable
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Dataset != "" {
		msg += fmt.Sprintf(" (dataset=%s", e.Dataset)
		if e.Column != "" {
			msg += fmt.Sprintf(", column=%s", e.Column)
		}
		if e.Row > 0 {
			msg += fmt.Sprintf(", row=%d", e.Row)
		}
		msg += ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap supports errors.Is/errors.As chains.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewMissingFile reports an absent input file.
func NewMissingFile(dataset, path string) *PipelineError {
	return &PipelineError{
		Code:    CodeMissingFile,
		Dataset: dataset,
		Message: fmt.Sprintf("dataset file not found: %s", path),
	}
}

// NewSchema reports a schema violation in a source table.
func NewSchema(dataset, message string) *PipelineError {
	return &PipelineError{
		Code:    CodeSchema,
		Dataset: dataset,
		Message: message,
	}
}

// NewMissingColumns reports required columns absent from a source table.
func NewMissingColumns(dataset string, missing []string) *PipelineError {
	return &PipelineError{
		Code:    CodeSchema,
		Dataset: dataset,
		Message: fmt.Sprintf("missing required columns: %v", missing),
	}
}

// NewDataQuality reports a malformed value at a specific cell. Row is
// 1-based over data rows, matching what a user sees in a spreadsheet
// minus the header line.
func NewDataQuality(dataset, column string, row int, err error) *PipelineError {
	return &PipelineError{
		Code:    CodeDataQuality,
		Dataset: dataset,
		Column:  column,
		Row:     row,
		Message: "malformed numeric value",
		Err:     err,
	}
}

// NewUnknownIndicator reports a scenario weight with no matching column.
func NewUnknownIndicator(scenario, indicator string) *PipelineError {
	return &PipelineError{
		Code:    CodeUnknownIndicator,
		Message: fmt.Sprintf("scenario %q references unknown indicator %q", scenario, indicator),
	}
}

// NewConfig reports an invalid configuration value.
func NewConfig(message string, err error) *PipelineError {
	return &PipelineError{Code: CodeConfig, Message: message, Err: err}
}

// CodeOf extracts the pipeline code from err, or "" when err is not a
// PipelineError.
func CodeOf(err error) Code {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
