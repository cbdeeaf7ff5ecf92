package csvshape

import (
	"strings"
	"unicode/utf8"
)

// sniffSampleSize is the number of bytes read from the head of a file for
// dialect and header sniffing.
const sniffSampleSize = 8192

// maxSniffRows caps the rows considered by header detection.
const maxSniffRows = 20

// delimiters tried by the sniffer, in preference order
var candidateDelimiters = []rune{',', '\t', ';', '|', ':'}

// dialect is a detected delimiter/quote convention. Dialect detection never
// fails: unsniffable samples degrade to defaultDialect.
type dialect struct {
	delimiter rune
	quote     rune
}

func defaultDialect() dialect {
	return dialect{delimiter: ',', quote: '"'}
}

// sniffDialect detects the delimiter and quote character from a text sample.
// Each candidate delimiter is scored by how consistently its per-line count
// repeats across sample lines; the most consistent candidate wins, with the
// candidate preference order breaking ties. Samples with no usable candidate
// fall back to the default comma/double-quote dialect.
func sniffDialect(sample string) dialect {
	lines := sampleLines(sample)
	if len(lines) == 0 {
		return defaultDialect()
	}

	best := defaultDialect()
	bestScore := 0.0

	for _, delim := range candidateDelimiters {
		counts := make(map[int]int, len(lines))
		for _, line := range lines {
			counts[countUnquoted(line, delim)]++
		}

		// Modal per-line count and the number of lines agreeing with it.
		modalCount, modalLines := 0, 0
		for count, n := range counts {
			if n > modalLines || (n == modalLines && count > modalCount) {
				modalCount, modalLines = count, n
			}
		}
		if modalCount == 0 {
			continue
		}

		score := float64(modalLines) / float64(len(lines))
		if score > bestScore {
			bestScore = score
			best = dialect{delimiter: delim, quote: '"'}
		}
	}

	best.quote = sniffQuote(sample, best.delimiter)
	return best
}

// sniffQuote picks the quote character by looking for quoted fields adjacent
// to the delimiter. Double quote wins unless only single-quoted fields occur.
func sniffQuote(sample string, delim rune) rune {
	d := string(delim)
	doubles := strings.Count(sample, d+`"`) + strings.Count(sample, `"`+d)
	singles := strings.Count(sample, d+`'`) + strings.Count(sample, `'`+d)
	if strings.HasPrefix(sample, `"`) {
		doubles++
	}
	if strings.HasPrefix(sample, `'`) {
		singles++
	}
	if singles > 0 && doubles == 0 {
		return '\''
	}
	return '"'
}

// sampleLines splits a sample into lines usable for frequency analysis. The
// trailing line is dropped when the sample was cut at the read limit, since a
// partial line would skew the counts.
func sampleLines(sample string) []string {
	truncated := len(sample) >= sniffSampleSize
	raw := strings.Split(strings.ReplaceAll(sample, "\r\n", "\n"), "\n")
	if truncated && len(raw) > 1 {
		raw = raw[:len(raw)-1]
	}

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == maxSniffRows {
			break
		}
	}
	return lines
}

// countUnquoted counts delimiter occurrences outside double-quoted regions.
func countUnquoted(line string, delim rune) int {
	count := 0
	inQuote := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == delim && !inQuote:
			count++
		}
	}
	return count
}

// sniffHeader reports whether the first parsed row is a header. Each column
// votes: when the data cells below it share a type (numeric) or a length that
// the first-row cell breaks, the column votes for a header; when the first-row
// cell fits right in, it votes against. An inconclusive vote falls back to the
// numeric heuristic: zero numeric cells in the first row and at least one in
// the second row means header. A single-row input is always headerless.
func sniffHeader(rows [][]string) bool {
	if len(rows) < 2 {
		return false
	}

	dataRows := rows[1:]
	if len(dataRows) > maxSniffRows {
		dataRows = dataRows[:maxSniffRows]
	}

	votes := 0
	for col := range rows[0] {
		numeric := true
		length := -1
		lengthConsistent := true
		seen := false

		for _, row := range dataRows {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			seen = true
			if !isFloatValue(cell) {
				numeric = false
			}
			l := utf8.RuneCountInString(row[col])
			if length == -1 {
				length = l
			} else if l != length {
				lengthConsistent = false
			}
		}
		if !seen {
			continue
		}

		headerCell := strings.TrimSpace(rows[0][col])
		switch {
		case numeric:
			if isFloatValue(headerCell) {
				votes--
			} else {
				votes++
			}
		case lengthConsistent:
			if utf8.RuneCountInString(rows[0][col]) != length {
				votes++
			} else {
				votes--
			}
		}
	}

	if votes != 0 {
		return votes > 0
	}
	return headerFallback(rows)
}

// headerFallback applies the numeric heuristic when column voting was
// inconclusive.
func headerFallback(rows [][]string) bool {
	if len(rows) < 2 {
		return false
	}
	firstNumeric := countNumericCells(rows[0])
	secondNumeric := countNumericCells(rows[1])
	return firstNumeric == 0 && secondNumeric > 0
}

func countNumericCells(row []string) int {
	count := 0
	for _, cell := range row {
		if isFloatValue(strings.TrimSpace(cell)) {
			count++
		}
	}
	return count
}
