package csvshape

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// SchemaVersion is the configuration document schema version written by this
// package.
const SchemaVersion = "1.0"

// Column describes a single CSV column: its detected type, nullability,
// cardinality and statistical shape.
type Column struct {
	Name           string             `json:"name"`
	Index          int                `json:"index"`
	DataType       DataType           `json:"data_type"`
	Nullable       bool               `json:"nullable"`
	NullPercentage float64            `json:"null_percentage"`
	UniqueCount    int                `json:"unique_count"`
	TotalCount     int                `json:"total_count"`
	SampleValues   []string           `json:"sample_values"`
	Patterns       map[string]string  `json:"patterns"`
	Statistics     map[string]float64 `json:"statistics"`
	// EnumValues is the exhaustive distinct value set, present only when
	// DataType is TypeEnum. Serialized sorted; semantically a set.
	EnumValues []string `json:"enum_values,omitempty"`
	MaxLength  int      `json:"max_length"`
	MinLength  int      `json:"min_length"`
}

// MarshalJSON serializes the column with enum values in sorted order so the
// on-disk document is stable regardless of observation order.
func (c Column) MarshalJSON() ([]byte, error) {
	type alias Column
	a := alias(c)
	if a.EnumValues != nil {
		sorted := append([]string(nil), a.EnumValues...)
		sort.Strings(sorted)
		a.EnumValues = sorted
	}
	return json.Marshal(a)
}

// HasEnumValue reports whether the value belongs to the column's enum set.
func (c *Column) HasEnumValue(value string) bool {
	for _, v := range c.EnumValues {
		if v == value {
			return true
		}
	}
	return false
}

// Configuration is the complete serializable description of an analyzed CSV
// file: its dialect, column descriptors and analysis metadata. A Configuration
// is immutable after creation except for SimilarConfigs, which comparator
// consumers may append to.
type Configuration struct {
	SourceFile        string   `json:"source_file"`
	Delimiter         string   `json:"delimiter"`
	QuoteChar         string   `json:"quote_character"`
	HasHeader         bool     `json:"has_header"`
	Encoding          string   `json:"encoding"`
	RowCount          int      `json:"row_count"`
	AnalysisTimestamp string   `json:"analysis_timestamp"`
	SchemaVersion     string   `json:"schema_version"`
	SimilarConfigs    []string `json:"similar_configs"`
	Columns           []Column `json:"columns"`
}

// GetColumn returns the first column with the given name, or nil if no column
// has that name.
func (c *Configuration) GetColumn(name string) *Column {
	for i := range c.Columns {
		if c.Columns[i].Name == name {
			return &c.Columns[i]
		}
	}
	return nil
}

// Save writes the configuration to a JSON file. The write is all-or-nothing:
// the document is written to a temporary file in the target directory and
// renamed into place only on success.
func (c *Configuration) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	return nil
}

// LoadConfiguration reads a configuration document from a JSON file.
func LoadConfiguration(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	var config Configuration
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if config.SchemaVersion == "" {
		return nil, fmt.Errorf("%w: %s: missing schema_version", ErrInvalidConfig, path)
	}
	return &config, nil
}
