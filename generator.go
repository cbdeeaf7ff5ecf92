package csvshape

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// default value ranges used when a column carries no statistics
const (
	defaultIntegerMax = 1000000
	defaultFloatMax   = 1000.0
	defaultDecimalMax = 10000.0
	defaultStringMin  = 5
	defaultStringMax  = 50
)

// lookback windows for temporal generation
const (
	dateLookbackDays        = 3650
	datetimeLookbackSeconds = 365 * 24 * 60 * 60
)

// fallback formats when the configuration carries no representative format
const (
	defaultDateFormat     = "2006-01-02"
	defaultDatetimeFormat = "2006-01-02 15:04:05"
	defaultTimeFormat     = "15:04:05"
)

var generatedBooleans = []string{"True", "False", "true", "false", "1", "0"}

var generatedEmailDomains = []string{"example.com", "test.com", "demo.com", "sample.org"}

var generatedURLProtocols = []string{"http", "https"}
var generatedURLDomains = []string{"example.com", "test.com", "demo.org", "sample.net"}
var generatedURLPaths = []string{"", "/page", "/resource", "/api/v1", "/docs"}

const lowerAlnum = "abcdefghijklmnopqrstuvwxyz0123456789"
const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generator produces synthetic CSV data whose per-column statistical shape
// matches a configuration. All randomness flows from the generator's own
// seeded source: given the same seed, configuration and row count, two runs
// produce byte-identical output. Draws happen in row order, then column
// order, with the null draw before the value draw.
//
// A Generator is not safe for concurrent use; create one per goroutine.
type Generator struct {
	config *Configuration
	rng    *rand.Rand
}

// NewGenerator creates a generator for the configuration with an explicit
// seed. Callers that do not need reproducibility can pass
// time.Now().UnixNano().
func NewGenerator(config *Configuration, seed int64) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Rows generates n rows of synthetic data without writing to a file.
func (g *Generator) Rows(n int) [][]string {
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, g.row())
	}
	return rows
}

// WriteCSV generates n rows and writes them to path using the configuration's
// delimiter and encoding. Output paths ending in a compression extension
// (.gz, .xz, .zst) are compressed. The write is all-or-nothing: data goes to
// a temporary file renamed into place only on success.
func (g *Generator) WriteCSV(path string, n int, includeHeader bool) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	compressed, closeCompressor, err := compressionForPath(path).newWriter(tmp)
	if err != nil {
		return err
	}

	encoded, closeEncoder, err := encodeWriter(compressed, g.config.Encoding)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(encoded)
	if delim := []rune(g.config.Delimiter); len(delim) > 0 {
		writer.Comma = delim[0]
	}

	if includeHeader && g.config.HasHeader {
		header := make([]string, 0, len(g.config.Columns))
		for _, col := range g.config.Columns {
			header = append(header, col.Name)
		}
		if err = writer.Write(header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i := 0; i < n; i++ {
		if err = writer.Write(g.row()); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err = writer.Error(); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	if err = closeEncoder(); err != nil {
		return fmt.Errorf("failed to finish encoding: %w", err)
	}
	if err = closeCompressor(); err != nil {
		return fmt.Errorf("failed to finish compression: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// row generates one row, drawing nulls and values in column order.
func (g *Generator) row() []string {
	row := make([]string, 0, len(g.config.Columns))
	for i := range g.config.Columns {
		col := &g.config.Columns[i]
		if col.Nullable && g.rng.Float64() < col.NullPercentage {
			row = append(row, "")
			continue
		}
		row = append(row, g.value(col))
	}
	return row
}

// value generates a single value for a column, dispatching on its data type.
func (g *Generator) value(col *Column) string {
	if col.DataType == TypeEnum && len(col.EnumValues) > 0 {
		return col.EnumValues[g.rng.Intn(len(col.EnumValues))]
	}

	switch col.DataType {
	case TypeInteger:
		return g.integer(col)
	case TypeFloat:
		return g.float(col)
	case TypeDecimal:
		return g.decimal(col)
	case TypeBoolean:
		return generatedBooleans[g.rng.Intn(len(generatedBooleans))]
	case TypeDate:
		return g.date(col)
	case TypeDatetime:
		return g.datetime(col)
	case TypeTime:
		return g.time(col)
	case TypeEmail:
		return g.email()
	case TypePhone:
		return g.phone()
	case TypeURL:
		return g.url()
	case TypeString:
		return g.text(col)
	default:
		// TypeMixed, TypeEmpty, and enum columns with no recorded values
		return ""
	}
}

// numericBounds returns the observed min/max widened by 10% on each side.
func numericBounds(col *Column) (minVal, maxVal float64, ok bool) {
	minVal, okMin := col.Statistics[statMin]
	maxVal, okMax := col.Statistics[statMax]
	if !okMin || !okMax {
		return 0, 0, false
	}
	spread := maxVal - minVal
	return minVal - spread*0.1, maxVal + spread*0.1, true
}

func (g *Generator) integer(col *Column) string {
	minVal, maxVal, ok := numericBounds(col)
	if !ok {
		return fmt.Sprintf("%d", g.rng.Intn(defaultIntegerMax)+1)
	}
	lo, hi := int64(minVal), int64(maxVal)
	return fmt.Sprintf("%d", lo+g.rng.Int63n(hi-lo+1))
}

func (g *Generator) float(col *Column) string {
	minVal, maxVal, ok := numericBounds(col)
	if !ok {
		return fmt.Sprintf("%.6f", g.rng.Float64()*defaultFloatMax)
	}
	return fmt.Sprintf("%.6f", minVal+g.rng.Float64()*(maxVal-minVal))
}

func (g *Generator) decimal(col *Column) string {
	minVal, maxVal, ok := numericBounds(col)
	if !ok {
		return fmt.Sprintf("%.2f", g.rng.Float64()*defaultDecimalMax)
	}
	return fmt.Sprintf("%.2f", minVal+g.rng.Float64()*(maxVal-minVal))
}

func (g *Generator) date(col *Column) string {
	format := col.Patterns[patternDateFormat]
	if format == "" {
		format = defaultDateFormat
	}
	start := time.Now().AddDate(0, 0, -dateLookbackDays)
	return start.AddDate(0, 0, g.rng.Intn(dateLookbackDays)).Format(format)
}

func (g *Generator) datetime(col *Column) string {
	format := col.Patterns[patternDatetimeFormat]
	if format == "" {
		format = defaultDatetimeFormat
	}
	start := time.Now().Add(-datetimeLookbackSeconds * time.Second)
	return start.Add(time.Duration(g.rng.Intn(datetimeLookbackSeconds)) * time.Second).Format(format)
}

func (g *Generator) time(col *Column) string {
	format := col.Patterns[patternTimeFormat]
	if format == "" {
		format = defaultTimeFormat
	}
	now := time.Now()
	t := time.Date(now.Year(), now.Month(), now.Day(),
		g.rng.Intn(24), g.rng.Intn(60), g.rng.Intn(60), 0, now.Location())
	return t.Format(format)
}

func (g *Generator) email() string {
	length := g.rng.Intn(8) + 5
	local := make([]byte, length)
	for i := range local {
		local[i] = lowerAlnum[g.rng.Intn(len(lowerAlnum))]
	}
	domain := generatedEmailDomains[g.rng.Intn(len(generatedEmailDomains))]
	return string(local) + "@" + domain
}

func (g *Generator) phone() string {
	switch g.rng.Intn(3) {
	case 0:
		return fmt.Sprintf("%d-%d-%d",
			g.rng.Intn(900)+100, g.rng.Intn(900)+100, g.rng.Intn(9000)+1000)
	case 1:
		return fmt.Sprintf("(%d) %d-%d",
			g.rng.Intn(900)+100, g.rng.Intn(900)+100, g.rng.Intn(9000)+1000)
	default:
		return fmt.Sprintf("%d", g.rng.Int63n(9000000000)+1000000000)
	}
}

func (g *Generator) url() string {
	protocol := generatedURLProtocols[g.rng.Intn(len(generatedURLProtocols))]
	domain := generatedURLDomains[g.rng.Intn(len(generatedURLDomains))]
	path := generatedURLPaths[g.rng.Intn(len(generatedURLPaths))]
	return protocol + "://" + domain + path
}

// text generates word salad sized to land within the observed length range.
func (g *Generator) text(col *Column) string {
	var target int
	if col.MinLength > 0 && col.MaxLength > 0 {
		target = col.MinLength + g.rng.Intn(col.MaxLength-col.MinLength+1)
	} else {
		target = defaultStringMin + g.rng.Intn(defaultStringMax-defaultStringMin+1)
	}

	var b strings.Builder
	for b.Len() < target {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		wordLength := g.rng.Intn(8) + 3
		for i := 0; i < wordLength; i++ {
			b.WriteByte(asciiLetters[g.rng.Intn(len(asciiLetters))])
		}
	}

	result := b.String()
	if len(result) > target {
		result = strings.TrimSpace(result[:target])
	}
	return result
}
