package csvshape

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DataType represents the semantic type detected for a CSV column.
type DataType int

const (
	// TypeString represents free-form text
	TypeString DataType = iota
	// TypeInteger represents whole numbers, optionally with thousands separators
	TypeInteger
	// TypeFloat represents floating point numbers
	TypeFloat
	// TypeDecimal represents currency-like values with a decimal point
	TypeDecimal
	// TypeDate represents calendar dates
	TypeDate
	// TypeDatetime represents combined date and time values
	TypeDatetime
	// TypeTime represents time-of-day values
	TypeTime
	// TypeBoolean represents boolean tokens such as true/false or y/n
	TypeBoolean
	// TypeEmail represents email addresses
	TypeEmail
	// TypePhone represents phone numbers in common layouts
	TypePhone
	// TypeURL represents http(s) URLs
	TypeURL
	// TypeEnum represents a column with a small, fully enumerable value set
	TypeEnum
	// TypeMixed represents a column with irreconcilable value types
	TypeMixed
	// TypeEmpty represents a column where every value is null
	TypeEmpty
)

// string tags used in the serialized configuration document
const (
	typeStringStr   = "string"
	typeIntegerStr  = "integer"
	typeFloatStr    = "float"
	typeDecimalStr  = "decimal"
	typeDateStr     = "date"
	typeDatetimeStr = "datetime"
	typeTimeStr     = "time"
	typeBooleanStr  = "boolean"
	typeEmailStr    = "email"
	typePhoneStr    = "phone"
	typeURLStr      = "url"
	typeEnumStr     = "enum"
	typeMixedStr    = "mixed"
	typeEmptyStr    = "empty"
)

// String returns the configuration tag for the data type.
func (dt DataType) String() string {
	switch dt {
	case TypeString:
		return typeStringStr
	case TypeInteger:
		return typeIntegerStr
	case TypeFloat:
		return typeFloatStr
	case TypeDecimal:
		return typeDecimalStr
	case TypeDate:
		return typeDateStr
	case TypeDatetime:
		return typeDatetimeStr
	case TypeTime:
		return typeTimeStr
	case TypeBoolean:
		return typeBooleanStr
	case TypeEmail:
		return typeEmailStr
	case TypePhone:
		return typePhoneStr
	case TypeURL:
		return typeURLStr
	case TypeEnum:
		return typeEnumStr
	case TypeMixed:
		return typeMixedStr
	case TypeEmpty:
		return typeEmptyStr
	default:
		return typeStringStr
	}
}

// ParseDataType converts a configuration tag back to a DataType.
func ParseDataType(tag string) (DataType, error) {
	switch tag {
	case typeStringStr:
		return TypeString, nil
	case typeIntegerStr:
		return TypeInteger, nil
	case typeFloatStr:
		return TypeFloat, nil
	case typeDecimalStr:
		return TypeDecimal, nil
	case typeDateStr:
		return TypeDate, nil
	case typeDatetimeStr:
		return TypeDatetime, nil
	case typeTimeStr:
		return TypeTime, nil
	case typeBooleanStr:
		return TypeBoolean, nil
	case typeEmailStr:
		return TypeEmail, nil
	case typePhoneStr:
		return TypePhone, nil
	case typeURLStr:
		return TypeURL, nil
	case typeEnumStr:
		return TypeEnum, nil
	case typeMixedStr:
		return TypeMixed, nil
	case typeEmptyStr:
		return TypeEmpty, nil
	default:
		return TypeString, fmt.Errorf("unknown data type tag %q", tag)
	}
}

// MarshalJSON serializes the data type as its string tag.
func (dt DataType) MarshalJSON() ([]byte, error) {
	return json.Marshal(dt.String())
}

// UnmarshalJSON parses the data type from its string tag.
func (dt *DataType) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	parsed, err := ParseDataType(tag)
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

// tokens that count as null in addition to the empty string
var nullTokens = map[string]struct{}{
	"null": {},
	"none": {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"#n/a": {},
}

// IsNull reports whether a raw cell value represents a missing value.
func IsNull(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	_, ok := nullTokens[strings.ToLower(trimmed)]
	return ok
}

// boolean tokens accepted by the type detector
var booleanTokens = map[string]struct{}{
	"true": {}, "false": {},
	"t": {}, "f": {},
	"yes": {}, "no": {},
	"y": {}, "n": {},
	"1": {}, "0": {},
}
