package models

import "errors"

// Validation errors. Their messages are returned to clients verbatim.
var (
	ErrNoText            = errors.New("No text provided")
	ErrNoData            = errors.New("No data to export")
	ErrInvalidExportType = errors.New("Invalid export type")
)
