package csvshape

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAnalyzeBasicCSV(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "basic.csv", "id,name\n1,Alice\n2,Bob\n")

	config, err := NewAnalyzer().Analyze(path)
	require.NoError(t, err)

	assert.Equal(t, ",", config.Delimiter)
	assert.Equal(t, `"`, config.QuoteChar)
	assert.True(t, config.HasHeader)
	assert.Equal(t, 2, config.RowCount)
	assert.Equal(t, SchemaVersion, config.SchemaVersion)
	assert.NotEmpty(t, config.AnalysisTimestamp)
	require.Len(t, config.Columns, 2)

	id := config.GetColumn("id")
	require.NotNil(t, id)
	assert.Equal(t, TypeInteger, id.DataType)
	assert.InDelta(t, 1.0, id.Statistics["min"], 1e-9)
	assert.InDelta(t, 2.0, id.Statistics["max"], 1e-9)

	// Two distinct values out of two non-null values do not satisfy the
	// enum threshold, so the column stays free text.
	name := config.GetColumn("name")
	require.NotNil(t, name)
	assert.Equal(t, TypeString, name.DataType)
	assert.Nil(t, name.EnumValues)
}

func TestAnalyzeSemicolonDelimited(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "semi.csv", "code;amount\nAB;10.50\nCD;11.25\nEF;12.00\n")

	config, err := NewAnalyzer().Analyze(path)
	require.NoError(t, err)

	assert.Equal(t, ";", config.Delimiter)
	require.Len(t, config.Columns, 2)
	assert.Equal(t, TypeDecimal, config.Columns[1].DataType)
}

func TestAnalyzeHeaderlessFile(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "noheader.csv", "1,2\n3,4\n5,6\n")

	config, err := NewAnalyzer().Analyze(path)
	require.NoError(t, err)

	assert.False(t, config.HasHeader)
	assert.Equal(t, 3, config.RowCount)
	require.Len(t, config.Columns, 2)
	assert.Equal(t, "column_0", config.Columns[0].Name)
	assert.Equal(t, "column_1", config.Columns[1].Name)
}

func TestAnalyzeRaggedRows(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "ragged.csv", "a,b,c\n1,2\n")

	config, err := NewAnalyzer().Analyze(path)
	require.NoError(t, err)

	require.Len(t, config.Columns, 3)

	// The short row is padded, so the third column sees only a null.
	third := config.Columns[2]
	assert.Equal(t, TypeEmpty, third.DataType)
	assert.True(t, third.Nullable)
	assert.InDelta(t, 1.0, third.NullPercentage, 1e-9)
	assert.Equal(t, 1, third.TotalCount)
}

func TestAnalyzeSampleRows(t *testing.T) {
	t.Parallel()

	content := "n\n"
	for i := 0; i < 100; i++ {
		content += "7\n"
	}
	path := writeTestFile(t, "big.csv", content)

	config, err := NewAnalyzer(WithSampleRows(11)).Analyze(path)
	require.NoError(t, err)

	assert.Equal(t, 10, config.RowCount)
	assert.Equal(t, 10, config.Columns[0].TotalCount)
}

func TestAnalyzeErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := NewAnalyzer().Analyze(filepath.Join(t.TempDir(), "missing.csv"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		path := writeTestFile(t, "empty.csv", "")
		_, err := NewAnalyzer().Analyze(path)
		assert.ErrorIs(t, err, ErrEmptyData)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()
		path := writeTestFile(t, "data.txt", "a,b\n1,2\n")
		_, err := NewAnalyzer().Analyze(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("unknown encoding", func(t *testing.T) {
		t.Parallel()
		path := writeTestFile(t, "enc.csv", "a,b\n1,2\n")
		_, err := NewAnalyzer(WithEncoding("not-a-charset")).Analyze(path)
		assert.ErrorIs(t, err, ErrUnknownEncoding)
	})
}

func TestAnalyzeGzipCompressedCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("x,y\n1,a\n2,b\n3,c\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	config, err := NewAnalyzer().Analyze(path)
	require.NoError(t, err)

	assert.Equal(t, ",", config.Delimiter)
	assert.Equal(t, 3, config.RowCount)
	assert.Equal(t, TypeInteger, config.Columns[0].DataType)
}

func TestAnalyzeXLSX(t *testing.T) {
	t.Parallel()

	workbook := excelize.NewFile()
	require.NoError(t, workbook.SetSheetRow("Sheet1", "A1", &[]any{"id", "label"}))
	require.NoError(t, workbook.SetSheetRow("Sheet1", "A2", &[]any{"1", "north"}))
	require.NoError(t, workbook.SetSheetRow("Sheet1", "A3", &[]any{"2", "south"}))
	require.NoError(t, workbook.SetSheetRow("Sheet1", "A4", &[]any{"3", "north"}))

	path := filepath.Join(t.TempDir(), "sheet.xlsx")
	require.NoError(t, workbook.SaveAs(path))
	require.NoError(t, workbook.Close())

	config, err := NewAnalyzer().Analyze(path)
	require.NoError(t, err)

	assert.True(t, config.HasHeader)
	assert.Equal(t, 3, config.RowCount)
	require.Len(t, config.Columns, 2)
	assert.Equal(t, TypeInteger, config.Columns[0].DataType)
}

func TestAnalyzeLatin1Encoding(t *testing.T) {
	t.Parallel()

	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("name,age\nRené,34\nZoë,29\n"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "latin.csv")
	require.NoError(t, os.WriteFile(path, encoded, 0o600))

	config, err := NewAnalyzer(WithEncoding("iso-8859-1")).Analyze(path)
	require.NoError(t, err)

	assert.True(t, config.HasHeader)
	assert.Equal(t, "iso-8859-1", config.Encoding)

	name := config.GetColumn("name")
	require.NotNil(t, name)
	assert.Contains(t, name.SampleValues, "René")
}

func TestAnalyzeIsReentrant(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "twice.csv", "id,v\n1,a\n2,b\n")
	analyzer := NewAnalyzer()

	first, err := analyzer.Analyze(path)
	require.NoError(t, err)
	second, err := analyzer.Analyze(path)
	require.NoError(t, err)

	assert.Equal(t, first.Columns, second.Columns)
	assert.Equal(t, first.RowCount, second.RowCount)
}
