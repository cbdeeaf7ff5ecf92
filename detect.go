package csvshape

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/montanaflynn/stats"
)

// detection threshold: a type wins when at least 80% of non-null values match it
const typeMatchThreshold = 0.8

// maximum distinct values for the enum fallback
const enumMaxDistinct = 20

// pattern keys recorded in Column.Patterns
const (
	patternDateFormat     = "date_format"
	patternDatetimeFormat = "datetime_format"
	patternTimeFormat     = "time_format"
)

// statistics keys recorded in Column.Statistics
const (
	statMin       = "min"
	statMax       = "max"
	statMean      = "mean"
	statMedian    = "median"
	statStdev     = "stdev"
	statMinLength = "min_length"
	statMaxLength = "max_length"
	statAvgLength = "avg_length"
)

// Temporal patterns pair a shape regexp with candidate layouts. The first
// layout that parses a matching value becomes the representative format.
var datePatterns = []struct {
	pattern *regexp.Regexp
	formats []string
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), []string{"2006-01-02"}},
	{regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), []string{"01/02/2006"}},
	{regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`), []string{"01-02-2006"}},
	{regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`), []string{"2006/01/02"}},
	{regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`), []string{"1/2/2006"}},
	{regexp.MustCompile(`^\d{8}$`), []string{"20060102"}},
}

var datetimePatterns = []struct {
	pattern *regexp.Regexp
	formats []string
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}$`), []string{"2006-01-02 15:04:05"}},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`), []string{"2006-01-02T15:04:05"}},
	{regexp.MustCompile(`^\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2}:\d{2}$`), []string{"01/02/2006 15:04:05"}},
}

var timePatterns = []struct {
	pattern *regexp.Regexp
	formats []string
}{
	{regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`), []string{"15:04:05"}},
	{regexp.MustCompile(`^\d{2}:\d{2}$`), []string{"15:04"}},
	{regexp.MustCompile(`^\d{1,2}:\d{2}\s*[AaPp][Mm]$`), []string{"3:04 PM", "3:04 pm", "3:04PM", "3:04pm"}},
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`),        // 123-456-7890
	regexp.MustCompile(`^\(\d{3}\)\s*\d{3}-\d{4}$`),  // (123) 456-7890
	regexp.MustCompile(`^\d{10}$`),                   // 1234567890
	regexp.MustCompile(`^\+\d{1,3}\s*\d{10}$`),       // +1 1234567890
}

var urlPattern = regexp.MustCompile("^https?://[^\\s<>\"{}|\\\\^`\\[\\]]+$")

// Detection is the result of running the type detector over a column's values.
type Detection struct {
	Type DataType
	// Patterns holds representative format strings for temporal types.
	Patterns map[string]string
	// Statistics holds numeric or string length summaries.
	Statistics map[string]float64
	// EnumValues holds the distinct value set when the enum fallback fired.
	EnumValues []string
}

// DetectType analyzes a column's raw string values and returns the best
// fitting data type together with detected patterns and statistics.
//
// Every non-null value is tested against each candidate type independently;
// a type wins when at least 80% of non-null values match it, checked in a
// fixed priority order. Columns matching no type fall back to enum when the
// distinct value count is small, and to string otherwise.
func DetectType(values []string) Detection {
	nonNull := filterNulls(values)
	if len(nonNull) == 0 {
		return Detection{Type: TypeEmpty, Patterns: map[string]string{}, Statistics: map[string]float64{}}
	}

	patterns := map[string]string{}
	matches := map[DataType]int{}

	for _, value := range nonNull {
		trimmed := strings.TrimSpace(value)

		if _, ok := booleanTokens[strings.ToLower(trimmed)]; ok {
			matches[TypeBoolean]++
		}
		if isIntegerValue(trimmed) {
			matches[TypeInteger]++
		}
		if isFloatValue(trimmed) {
			matches[TypeFloat]++
		}
		if isDecimalValue(trimmed) {
			matches[TypeDecimal]++
		}
		if emailPattern.MatchString(trimmed) {
			matches[TypeEmail]++
		}
		if matchesPhone(trimmed) {
			matches[TypePhone]++
		}
		if urlPattern.MatchString(trimmed) {
			matches[TypeURL]++
		}
		if format := matchTemporal(datetimePatterns, trimmed); format != "" {
			matches[TypeDatetime]++
			if _, ok := patterns[patternDatetimeFormat]; !ok {
				patterns[patternDatetimeFormat] = format
			}
		}
		if format := matchTemporal(datePatterns, trimmed); format != "" {
			matches[TypeDate]++
			if _, ok := patterns[patternDateFormat]; !ok {
				patterns[patternDateFormat] = format
			}
		}
		if format := matchTemporal(timePatterns, trimmed); format != "" {
			matches[TypeTime]++
			if _, ok := patterns[patternTimeFormat]; !ok {
				patterns[patternTimeFormat] = format
			}
		}
	}

	total := float64(len(nonNull))

	// Specialized types take priority over numeric types. Order matters:
	// the first type over the threshold wins ties.
	for _, dt := range []DataType{TypeEmail, TypePhone, TypeURL, TypeDatetime, TypeDate, TypeTime, TypeBoolean} {
		if float64(matches[dt])/total >= typeMatchThreshold {
			return Detection{Type: dt, Patterns: patterns, Statistics: map[string]float64{}}
		}
	}

	for _, dt := range []DataType{TypeDecimal, TypeInteger, TypeFloat} {
		if float64(matches[dt])/total >= typeMatchThreshold {
			return Detection{Type: dt, Patterns: patterns, Statistics: numericStatistics(nonNull)}
		}
	}

	// Enum fallback: a small, fully enumerable value set.
	distinct := distinctValues(nonNull)
	if float64(len(distinct)) <= math.Min(enumMaxDistinct, total*0.5) {
		return Detection{
			Type:       TypeEnum,
			Patterns:   patterns,
			Statistics: map[string]float64{},
			EnumValues: distinct,
		}
	}

	return Detection{Type: TypeString, Patterns: patterns, Statistics: stringStatistics(nonNull)}
}

// filterNulls returns the values that are not null representations.
func filterNulls(values []string) []string {
	nonNull := make([]string, 0, len(values))
	for _, v := range values {
		if !IsNull(v) {
			nonNull = append(nonNull, v)
		}
	}
	return nonNull
}

// distinctValues returns the distinct values in first-seen order.
func distinctValues(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	distinct := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}
	return distinct
}

// isIntegerValue checks whether a value is a whole number after stripping
// thousands separators. Values containing a decimal point never qualify.
func isIntegerValue(value string) bool {
	if strings.Contains(value, ".") {
		return false
	}
	clean := strings.NewReplacer(",", "", "_", "").Replace(value)
	_, err := strconv.ParseInt(clean, 10, 64)
	return err == nil
}

// isFloatValue checks whether a value parses as a number after stripping
// thousands separators.
func isFloatValue(value string) bool {
	clean := strings.NewReplacer(",", "", "_", "").Replace(value)
	if clean == "" {
		return false
	}
	_, err := strconv.ParseFloat(clean, 64)
	return err == nil
}

// isDecimalValue checks whether a value looks like a currency amount: numeric
// after stripping currency symbols and separators, with a decimal point.
func isDecimalValue(value string) bool {
	clean := cleanNumeric(value)
	if !strings.Contains(clean, ".") {
		return false
	}
	_, err := strconv.ParseFloat(clean, 64)
	return err == nil
}

// cleanNumeric strips currency symbols and thousands separators.
func cleanNumeric(value string) string {
	clean := strings.NewReplacer("$", "", "€", "", "£", "", ",", "", "_", "").Replace(value)
	return strings.TrimSpace(clean)
}

func matchesPhone(value string) bool {
	for _, p := range phonePatterns {
		if p.MatchString(value) {
			return true
		}
	}
	return false
}

// matchTemporal returns the first layout that strictly parses the value, or
// the empty string when no pattern matches.
func matchTemporal(patterns []struct {
	pattern *regexp.Regexp
	formats []string
}, value string) string {
	for _, tp := range patterns {
		if !tp.pattern.MatchString(value) {
			continue
		}
		for _, format := range tp.formats {
			if _, err := time.Parse(format, value); err == nil {
				return format
			}
		}
	}
	return ""
}

// numericStatistics computes min/max/mean/median/sample-stdev over the values
// that convert to a number after cleaning. Returns an empty map when no value
// converts.
func numericStatistics(values []string) map[string]float64 {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(cleanNumeric(v), 64)
		if err != nil {
			continue
		}
		nums = append(nums, f)
	}
	if len(nums) == 0 {
		return map[string]float64{}
	}

	minVal, _ := stats.Min(nums)
	maxVal, _ := stats.Max(nums)
	mean, _ := stats.Mean(nums)
	median, _ := stats.Median(nums)
	stdev := 0.0
	if len(nums) > 1 {
		stdev, _ = stats.StandardDeviationSample(nums)
	}

	return map[string]float64{
		statMin:    minVal,
		statMax:    maxVal,
		statMean:   mean,
		statMedian: median,
		statStdev:  stdev,
	}
}

// stringStatistics computes character length bounds and the average length.
func stringStatistics(values []string) map[string]float64 {
	lengths := make([]float64, 0, len(values))
	for _, v := range values {
		lengths = append(lengths, float64(utf8.RuneCountInString(v)))
	}
	minLen, _ := stats.Min(lengths)
	maxLen, _ := stats.Max(lengths)
	avgLen, _ := stats.Mean(lengths)

	return map[string]float64{
		statMinLength: minLen,
		statMaxLength: maxLen,
		statAvgLength: avgLen,
	}
}
