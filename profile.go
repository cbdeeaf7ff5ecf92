package csvshape

import "unicode/utf8"

// maxSampleValues bounds Column.SampleValues.
const maxSampleValues = 10

// ProfileColumn builds a complete column descriptor from a column's name,
// position and raw values. The value list must already be positionally
// aligned; ragged rows are expected to be padded with the empty string.
//
// Profiling re-applies the enum threshold after type detection: a column with
// a small distinct value set is forced to TypeEnum even when the detector
// chose a more specific type. Enumerations take precedence over type
// precision so that regenerated data draws from the observed value set.
func ProfileColumn(name string, index int, values []string) Column {
	nullCount := 0
	nonNull := make([]string, 0, len(values))
	for _, v := range values {
		if IsNull(v) {
			nullCount++
		} else {
			nonNull = append(nonNull, v)
		}
	}

	detection := DetectType(values)

	distinct := distinctValues(nonNull)
	uniqueCount := len(distinct)

	sample := distinct
	if len(sample) > maxSampleValues {
		sample = sample[:maxSampleValues]
	}

	dataType := detection.Type
	var enumValues []string
	if dataType == TypeEnum || (uniqueCount <= enumMaxDistinct && float64(uniqueCount) < float64(len(nonNull))*0.5) {
		dataType = TypeEnum
		enumValues = append([]string(nil), distinct...)
	}

	maxLength, minLength := 0, 0
	for i, v := range nonNull {
		l := utf8.RuneCountInString(v)
		if i == 0 {
			maxLength, minLength = l, l
			continue
		}
		if l > maxLength {
			maxLength = l
		}
		if l < minLength {
			minLength = l
		}
	}

	nullPercentage := 0.0
	if len(values) > 0 {
		nullPercentage = float64(nullCount) / float64(len(values))
	}

	return Column{
		Name:           name,
		Index:          index,
		DataType:       dataType,
		Nullable:       nullCount > 0,
		NullPercentage: nullPercentage,
		UniqueCount:    uniqueCount,
		TotalCount:     len(values),
		SampleValues:   append([]string(nil), sample...),
		Patterns:       detection.Patterns,
		Statistics:     detection.Statistics,
		EnumValues:     enumValues,
		MaxLength:      maxLength,
		MinLength:      minLength,
	}
}
