package csvshape

import (
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// comparison score weights
const (
	weightSameType       = 0.4
	weightSameNullable   = 0.2
	weightNullPercentage = 0.2
	weightDiversity      = 0.2

	weightSameDelimiter   = 0.2
	weightSameColumnCount = 0.3
	weightColumnMatches   = 0.5
)

// score thresholds
const (
	matchingColumnThreshold = 0.9
	similarColumnThreshold  = 0.7
	reuseThreshold          = 0.7
)

// ColumnMatch is a column pair scoring at or above the matching threshold.
type ColumnMatch struct {
	Name  string
	Score float64
}

// SimilarColumn is a column pair scoring in the similar band.
type SimilarColumn struct {
	NameA string
	NameB string
	Score float64
}

// Comparison holds the similarity metrics between two configurations.
type Comparison struct {
	OverallSimilarity float64
	SameDelimiter     bool
	SameColumnCount   bool
	MatchingColumns   []ColumnMatch
	SimilarColumns    []SimilarColumn
	CanReuseTests     bool
}

// Compare computes pairwise similarity between two configurations. Columns
// are paired by equal name, first match wins; this is not a global optimal
// assignment. The overall score combines delimiter equality, column count
// equality, and the fraction of a's columns with a matching pair.
func Compare(a, b *Configuration) Comparison {
	sameDelimiter := a.Delimiter == b.Delimiter
	sameColumnCount := len(a.Columns) == len(b.Columns)

	var matching []ColumnMatch
	var similar []SimilarColumn

	for i := range a.Columns {
		colA := &a.Columns[i]
		colB := b.GetColumn(colA.Name)
		if colB == nil {
			continue
		}

		score := columnSimilarity(colA, colB)
		switch {
		case score >= matchingColumnThreshold:
			matching = append(matching, ColumnMatch{Name: colA.Name, Score: score})
		case score >= similarColumnThreshold:
			similar = append(similar, SimilarColumn{NameA: colA.Name, NameB: colB.Name, Score: score})
		}
	}

	overall := 0.0
	if sameDelimiter {
		overall += weightSameDelimiter
	}
	if sameColumnCount {
		overall += weightSameColumnCount
	}
	if len(a.Columns) > 0 {
		overall += weightColumnMatches * float64(len(matching)) / float64(len(a.Columns))
	}

	return Comparison{
		OverallSimilarity: overall,
		SameDelimiter:     sameDelimiter,
		SameColumnCount:   sameColumnCount,
		MatchingColumns:   matching,
		SimilarColumns:    similar,
		CanReuseTests:     overall >= reuseThreshold,
	}
}

// columnSimilarity scores a column pair from 0 to 1.
func columnSimilarity(a, b *Column) float64 {
	score := 0.0

	if a.DataType == b.DataType {
		score += weightSameType
	}
	if a.Nullable == b.Nullable {
		score += weightSameNullable
	}
	if math.Abs(a.NullPercentage-b.NullPercentage) < 0.1 {
		score += weightNullPercentage
	}
	if a.TotalCount > 0 && b.TotalCount > 0 {
		diversityA := float64(a.UniqueCount) / float64(a.TotalCount)
		diversityB := float64(b.UniqueCount) / float64(b.TotalCount)
		if math.Abs(diversityA-diversityB) < 0.2 {
			score += weightDiversity
		}
	}

	return score
}

// SimilarConfig is a configuration file found by FindSimilar along with its
// similarity score.
type SimilarConfig struct {
	Path       string
	Similarity float64
}

// FindSimilar loads every JSON configuration directly inside dir, compares
// each against config, and returns those meeting the threshold sorted by
// descending similarity. Files that fail to parse are skipped; a missing
// directory yields no results. Ties keep directory listing order.
func FindSimilar(config *Configuration, dir string, threshold float64) ([]SimilarConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var results []SimilarConfig
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		candidate, err := LoadConfiguration(path)
		if err != nil {
			// Not every JSON file in the directory is a configuration.
			continue
		}

		comparison := Compare(config, candidate)
		if comparison.OverallSimilarity >= threshold {
			results = append(results, SimilarConfig{Path: path, Similarity: comparison.OverallSimilarity})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return results, nil
}
