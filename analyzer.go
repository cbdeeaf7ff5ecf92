package csvshape

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// Analyzer infers the structure and statistical shape of a CSV file. The zero
// options analyzer reads the whole file as UTF-8; options adjust the assumed
// encoding and cap the number of rows used for analysis.
//
// An Analyzer holds no state between calls and may be shared freely.
type Analyzer struct {
	encoding   string
	sampleRows int
}

// AnalyzerOption adjusts analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithEncoding sets the character encoding of the input file. Names are
// resolved by their IANA/WHATWG labels, e.g. "iso-8859-1" or "windows-1252".
func WithEncoding(name string) AnalyzerOption {
	return func(a *Analyzer) {
		a.encoding = name
	}
}

// WithSampleRows caps the number of parsed rows used for analysis. Sampling
// truncates the row count recorded in the configuration; it does not modify
// the file.
func WithSampleRows(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.sampleRows = n
	}
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{encoding: DefaultEncoding}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze reads the file, sniffs its dialect, profiles every column and
// returns the complete configuration. Ragged rows are padded with the empty
// string up to the widest row; inconsistent column counts are not an error.
func (a *Analyzer) Analyze(path string) (*Configuration, error) {
	input := newInputFile(path)

	var rows [][]string
	d := defaultDialect()

	switch input.fileType {
	case FileTypeXLSX:
		xlsxRows, err := input.readXLSXRows()
		if err != nil {
			return nil, err
		}
		rows = xlsxRows
	case FileTypeCSV, FileTypeTSV:
		content, err := a.readAll(input)
		if err != nil {
			return nil, err
		}

		sample := content
		if len(sample) > sniffSampleSize {
			sample = sample[:sniffSampleSize]
		}
		d = sniffDialect(sample)

		reader := csv.NewReader(strings.NewReader(content))
		reader.Comma = d.delimiter
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		rows, err = reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrEmptyData, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if a.sampleRows > 0 && len(rows) > a.sampleRows {
		rows = rows[:a.sampleRows]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyData, path)
	}

	hasHeader := sniffHeader(rows)

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	names := make([]string, width)
	dataRows := rows
	if hasHeader {
		dataRows = rows[1:]
		for i := range names {
			if i < len(rows[0]) {
				names[i] = rows[0][i]
			} else {
				names[i] = fmt.Sprintf("column_%d", i)
			}
		}
	} else {
		for i := range names {
			names[i] = fmt.Sprintf("column_%d", i)
		}
	}

	columns := make([]Column, width)
	for i := 0; i < width; i++ {
		values := make([]string, len(dataRows))
		for j, row := range dataRows {
			if i < len(row) {
				values[j] = row[i]
			}
		}
		columns[i] = ProfileColumn(names[i], i, values)
	}

	return &Configuration{
		SourceFile:        path,
		Delimiter:         string(d.delimiter),
		QuoteChar:         string(d.quote),
		HasHeader:         hasHeader,
		Encoding:          a.encoding,
		RowCount:          len(dataRows),
		AnalysisTimestamp: time.Now().Format(time.RFC3339),
		SchemaVersion:     SchemaVersion,
		SimilarConfigs:    []string{},
		Columns:           columns,
	}, nil
}

// readAll reads the whole file through decompression and character decoding.
func (a *Analyzer) readAll(input *inputFile) (string, error) {
	reader, closer, err := input.openReader()
	if err != nil {
		return "", err
	}
	defer func() {
		_ = closer()
	}()

	decoded, err := decodeReader(reader, a.encoding)
	if err != nil {
		return "", err
	}

	content, err := io.ReadAll(decoded)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
