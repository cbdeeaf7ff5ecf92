package csvshape

import (
	"testing"
)

func TestSniffDialect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sample    string
		delimiter rune
		quote     rune
	}{
		{
			name:      "comma separated",
			sample:    "id,name,age\n1,Alice,30\n2,Bob,25\n",
			delimiter: ',',
			quote:     '"',
		},
		{
			name:      "semicolon separated",
			sample:    "id;name;age\n1;Alice;30\n2;Bob;25\n",
			delimiter: ';',
			quote:     '"',
		},
		{
			name:      "tab separated",
			sample:    "id\tname\tage\n1\tAlice\t30\n2\tBob\t25\n",
			delimiter: '\t',
			quote:     '"',
		},
		{
			name:      "pipe separated",
			sample:    "id|name|age\n1|Alice|30\n2|Bob|25\n",
			delimiter: '|',
			quote:     '"',
		},
		{
			name:      "quoted fields hide embedded commas",
			sample:    "\"Doe, Jane\",30\n\"Roe, Richard\",25\n",
			delimiter: ',',
			quote:     '"',
		},
		{
			name:      "single quoted fields",
			sample:    "'a','b'\n'c','d'\n",
			delimiter: ',',
			quote:     '\'',
		},
		{
			name:      "empty sample falls back to default",
			sample:    "",
			delimiter: ',',
			quote:     '"',
		},
		{
			name:      "no delimiter falls back to default",
			sample:    "justoneword\nanotherword\n",
			delimiter: ',',
			quote:     '"',
		},
		{
			name:      "windows line endings",
			sample:    "a;b\r\n1;2\r\n",
			delimiter: ';',
			quote:     '"',
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := sniffDialect(tt.sample)
			if d.delimiter != tt.delimiter {
				t.Errorf("sniffDialect() delimiter = %q, want %q", d.delimiter, tt.delimiter)
			}
			if d.quote != tt.quote {
				t.Errorf("sniffDialect() quote = %q, want %q", d.quote, tt.quote)
			}
		})
	}
}

func TestSniffDialectPrefersConsistency(t *testing.T) {
	t.Parallel()

	// Colons appear inside the time fields but commas separate every line
	// with the same count; comma must win the consistency vote.
	sample := "event,start\nlogin,09:30:00\nlogout,17:45:00\n"
	d := sniffDialect(sample)
	if d.delimiter != ',' {
		t.Errorf("sniffDialect() delimiter = %q, want ','", d.delimiter)
	}
}

func TestSniffHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows [][]string
		want bool
	}{
		{
			name: "text header over numeric data",
			rows: [][]string{{"id", "name"}, {"1", "Alice"}, {"2", "Bob"}},
			want: true,
		},
		{
			name: "uniform text rows have no header",
			rows: [][]string{{"a", "b"}, {"c", "d"}},
			want: false,
		},
		{
			name: "single row is always headerless",
			rows: [][]string{{"id", "name"}},
			want: false,
		},
		{
			name: "numeric first row votes against header",
			rows: [][]string{{"1", "2"}, {"3", "4"}, {"5", "6"}},
			want: false,
		},
		{
			name: "fallback numeric heuristic detects header",
			rows: [][]string{{"aa", "bb"}, {"11", "cc"}, {"22", "dd"}},
			want: true,
		},
		{
			name: "fallback stays headerless when first row is numeric",
			rows: [][]string{{"name", "1"}, {"2", "x"}},
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sniffHeader(tt.rows); got != tt.want {
				t.Errorf("sniffHeader(%v) = %v, want %v", tt.rows, got, tt.want)
			}
		})
	}
}
