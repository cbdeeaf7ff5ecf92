package csvshape

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileColumn(t *testing.T) {
	t.Parallel()

	t.Run("null accounting over full value list", func(t *testing.T) {
		t.Parallel()
		col := ProfileColumn("notes", 3, []string{"a", "", "b", ""})

		assert.True(t, col.Nullable)
		assert.InDelta(t, 0.5, col.NullPercentage, 1e-9)
		assert.Equal(t, 4, col.TotalCount)
		assert.Equal(t, 2, col.UniqueCount)
	})

	t.Run("all null column", func(t *testing.T) {
		t.Parallel()
		col := ProfileColumn("blank", 0, []string{"", "NA", "null"})

		assert.Equal(t, TypeEmpty, col.DataType)
		assert.True(t, col.Nullable)
		assert.InDelta(t, 1.0, col.NullPercentage, 1e-9)
		assert.Equal(t, 0, col.UniqueCount)
		assert.Equal(t, 0, col.MaxLength)
		assert.Equal(t, 0, col.MinLength)
	})

	t.Run("empty value list", func(t *testing.T) {
		t.Parallel()
		col := ProfileColumn("void", 0, nil)

		assert.Equal(t, TypeEmpty, col.DataType)
		assert.False(t, col.Nullable)
		assert.InDelta(t, 0.0, col.NullPercentage, 1e-9)
		assert.Equal(t, 0, col.TotalCount)
	})

	t.Run("sample values bounded to ten", func(t *testing.T) {
		t.Parallel()
		values := make([]string, 0, 15)
		for i := 0; i < 15; i++ {
			values = append(values, fmt.Sprintf("value_%02d", i))
		}
		col := ProfileColumn("wide", 0, values)

		assert.Len(t, col.SampleValues, 10)
		assert.Equal(t, 15, col.UniqueCount)
	})

	t.Run("length bounds over non-null values", func(t *testing.T) {
		t.Parallel()
		col := ProfileColumn("mixed", 0, []string{"abcdef", "", "ab"})

		assert.Equal(t, 6, col.MaxLength)
		assert.Equal(t, 2, col.MinLength)
	})
}

func TestProfileColumnEnumOverride(t *testing.T) {
	t.Parallel()

	t.Run("integer column reclassified as enum", func(t *testing.T) {
		t.Parallel()
		// The detector sees integers, but two distinct values across six rows
		// trip the enum threshold. Enumerations win over type precision.
		col := ProfileColumn("status_code", 0, []string{"1", "1", "2", "2", "1", "2"})

		assert.Equal(t, TypeEnum, col.DataType)
		assert.ElementsMatch(t, []string{"1", "2"}, col.EnumValues)
		assert.Len(t, col.EnumValues, col.UniqueCount)
	})

	t.Run("three distinct values over fifty rows", func(t *testing.T) {
		t.Parallel()
		values := make([]string, 0, 50)
		options := []string{"small", "medium", "large"}
		for i := 0; i < 50; i++ {
			values = append(values, options[i%3])
		}
		col := ProfileColumn("size", 0, values)

		assert.Equal(t, TypeEnum, col.DataType)
		assert.Len(t, col.EnumValues, 3)
		assert.Equal(t, col.UniqueCount, len(col.EnumValues))
	})

	t.Run("two distinct of two values stays string", func(t *testing.T) {
		t.Parallel()
		col := ProfileColumn("name", 1, []string{"Alice", "Bob"})

		assert.Equal(t, TypeString, col.DataType)
		assert.Nil(t, col.EnumValues)
	})

	t.Run("enum values match unique count after override", func(t *testing.T) {
		t.Parallel()
		values := []string{"2023-01-01", "2023-01-02", "2023-01-01", "2023-01-02", "2023-01-01", "2023-01-02"}
		col := ProfileColumn("day", 0, values)

		assert.Equal(t, TypeEnum, col.DataType)
		assert.Len(t, col.EnumValues, col.UniqueCount)
	})
}
