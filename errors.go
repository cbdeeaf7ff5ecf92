package csvshape

import "errors"

var (
	// ErrFileNotFound indicates the input file or configuration file does not exist
	ErrFileNotFound = errors.New("csvshape: file not found")

	// ErrEmptyData indicates the input contains no parseable rows
	ErrEmptyData = errors.New("csvshape: no parseable rows")

	// ErrInvalidConfig indicates a configuration document could not be parsed
	ErrInvalidConfig = errors.New("csvshape: invalid configuration")

	// ErrUnsupportedFormat indicates an unsupported input file format
	ErrUnsupportedFormat = errors.New("csvshape: unsupported file format")

	// ErrUnknownEncoding indicates an encoding name that could not be resolved
	ErrUnknownEncoding = errors.New("csvshape: unknown encoding")
)
