package csvshape

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FileType represents supported input file types.
type FileType int

const (
	// FileTypeCSV represents delimited text files (.csv, .tsv)
	FileTypeCSV FileType = iota
	// FileTypeTSV represents tab separated files
	FileTypeTSV
	// FileTypeXLSX represents Excel workbooks
	FileTypeXLSX
	// FileTypeUnsupported represents everything else
	FileTypeUnsupported
)

// base file extensions
const (
	extCSV  = ".csv"
	extTSV  = ".tsv"
	extXLSX = ".xlsx"
)

// inputFile is an input file together with its detected type and compression.
type inputFile struct {
	path        string
	fileType    FileType
	compression CompressionType
}

func newInputFile(path string) *inputFile {
	compression := compressionForPath(path)
	base := strings.TrimSuffix(path, compression.Extension())

	fileType := FileTypeUnsupported
	switch strings.ToLower(filepath.Ext(base)) {
	case extCSV:
		fileType = FileTypeCSV
	case extTSV:
		fileType = FileTypeTSV
	case extXLSX:
		fileType = FileTypeXLSX
	}

	return &inputFile{path: path, fileType: fileType, compression: compression}
}

// openReader opens the file and returns a reader with compression stripped.
// The closer releases both the decompressor and the file handle.
func (f *inputFile) openReader() (io.Reader, func() error, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, f.path)
		}
		return nil, nil, err
	}

	reader, closeReader, err := f.compression.newReader(file)
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}

	closer := func() error {
		_ = closeReader()
		return file.Close()
	}
	return reader, closer, nil
}

// readXLSXRows reads the first sheet of an Excel workbook as rows of strings.
// Compressed workbooks are decompressed into memory first since excelize
// needs random access.
func (f *inputFile) readXLSXRows() ([][]string, error) {
	var workbook *excelize.File

	if f.compression != CompressionNone {
		reader, closer, err := f.openReader()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(reader)
		cerr := closer()
		if err != nil {
			return nil, err
		}
		if cerr != nil {
			return nil, cerr
		}
		workbook, err = excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", f.path, err)
		}
	} else {
		if _, err := os.Stat(f.path); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, f.path)
			}
			return nil, err
		}
		var err error
		workbook, err = excelize.OpenFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", f.path, err)
		}
	}
	defer func() {
		_ = workbook.Close()
	}()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyData, f.path)
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}
