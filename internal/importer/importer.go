// Package importer reads original/translation word pairs from spreadsheet
// and CSV files.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/lingo-api/internal/service/word_review"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor xlsx.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Options selects where the pairs live in the file.
type Options struct {
	// Sheet is the worksheet to read from xlsx files.
	Sheet string
	// OriginalColumn and TranslationColumn are zero-based column indexes.
	OriginalColumn    int
	TranslationColumn int
	// SkipHeader ignores the first row.
	SkipHeader bool
}

// DefaultOptions reads column A as the original and column B as the
// translation from Sheet1, skipping a header row.
func DefaultOptions() Options {
	return Options{
		Sheet:             "Sheet1",
		OriginalColumn:    0,
		TranslationColumn: 1,
		SkipHeader:        true,
	}
}

// Result holds the pairs read and a note for every row that was skipped.
type Result struct {
	Pairs   []word_review.WordPair
	Skipped []string
}

// ReadFile reads pairs from path, choosing the format by extension.
func ReadFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f, opts)
	case ".xlsx", ".xlsm":
		return ReadXLSX(f, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV reads pairs from CSV data.
func ReadCSV(r io.Reader, opts Options) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return collect(rows, opts), nil
}

// ReadXLSX reads pairs from an xlsx workbook.
func ReadXLSX(r io.Reader, opts Options) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return collect(rows, opts), nil
}

func collect(rows [][]string, opts Options) *Result {
	result := &Result{}
	for i, row := range rows {
		rowNum := i + 1
		if i == 0 && opts.SkipHeader {
			continue
		}

		original := cell(row, opts.OriginalColumn)
		translation := cell(row, opts.TranslationColumn)
		switch {
		case original == "" && translation == "":
			continue
		case original == "":
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: missing original", rowNum))
			continue
		case translation == "":
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: missing translation", rowNum))
			continue
		}

		result.Pairs = append(result.Pairs, word_review.WordPair{
			Original:    original,
			Translation: translation,
		})
	}
	return result
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
