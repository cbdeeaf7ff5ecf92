// Package csvshape analyzes the structure and statistical shape of CSV files
// and generates statistically similar synthetic data from the result.
//
// csvshape infers a file's dialect (delimiter, quote character, header
// presence), the semantic type of every column (integers, floats, currency
// amounts, dates, times, booleans, emails, phone numbers, URLs, enumerations,
// free text), nullability, cardinality and numeric or string statistics. The
// inference is captured in a portable JSON configuration document that can be
// saved, reloaded, compared against other configurations, and replayed
// through a seeded generator to produce reproducible synthetic CSV files.
//
// # Features
//
//   - Dialect sniffing with silent fallback to comma/double-quote
//   - Per-column type detection with thresholded multi-candidate voting
//   - Enum detection for columns with small, fully enumerable value sets
//   - Automatic handling of compressed files (gzip, bzip2, xz, zstandard)
//   - Excel (XLSX) workbook ingestion alongside CSV and TSV
//   - Character encodings resolved by IANA/WHATWG labels
//   - Deterministic generation: a fixed seed reproduces output byte for byte
//   - Configuration similarity scoring for test fixture deduplication
//
// # Basic Usage
//
// Analyze a file, persist the configuration, and generate test data:
//
//	analyzer := csvshape.NewAnalyzer()
//	config, err := analyzer.Analyze("input.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := config.Save("input.config.json"); err != nil {
//	    log.Fatal(err)
//	}
//
//	generator := csvshape.NewGenerator(config, 42)
//	if err := generator.WriteCSV("synthetic.csv", 100, true); err != nil {
//	    log.Fatal(err)
//	}
//
// # Comparing Configurations
//
// Configurations can be scored against each other to find CSV files with
// reusable structure:
//
//	result := csvshape.Compare(configA, configB)
//	if result.CanReuseTests {
//	    // fixtures generated for A cover B's shape as well
//	}
//
//	similar, err := csvshape.FindSimilar(configA, "configs/", 0.7)
//
// The package is a pure library: it holds no global state, performs no
// logging, and analyzers are safe to share across goroutines. Generators own
// a seeded random source and should not be shared.
package csvshape
