// Package importer loads the vocabulary corpus from a CSV or Excel file
// into the word store. The import is one-shot: a non-empty store means
// the corpus is already loaded and the file is ignored.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ViacheslavMelnichenko/constant-learning/internal/database"
	"github.com/ViacheslavMelnichenko/constant-learning/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Config defines the import source
type Config struct {
	FilePath   string // Path to the CSV or Excel file
	SheetName  string // Sheet to read when the file is Excel
	SkipHeader bool   // Skip the first row
}

// DefaultConfig returns the default import configuration for a file
func DefaultConfig(path string) Config {
	return Config{
		FilePath:   path,
		SheetName:  "Sheet1",
		SkipHeader: true,
	}
}

// Result holds the outcome of an import run
type Result struct {
	TotalProcessed int
	Imported       int
	Skipped        bool
	Errors         []string
}

// Run imports the vocabulary file unless the store already has words.
// Malformed rows are collected as errors and do not abort the run.
func Run(ctx context.Context, words *database.WordRepository, config Config) (*Result, error) {
	count, err := words.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check word store: %v", err)
	}
	if count > 0 {
		log.Printf("Word store already has %d words, skipping import", count)
		return &Result{Skipped: true}, nil
	}

	rows, err := readRows(config)
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: make([]string, 0)}
	batch := make([]models.Word, 0, len(rows))
	importedAt := time.Now().UTC()

	for i, row := range rows {
		if i == 0 && config.SkipHeader {
			continue
		}
		result.TotalProcessed++

		word, err := parseRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		word.ImportedAt = importedAt
		batch = append(batch, word)
	}

	if err := words.InsertBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to insert words: %v", err)
	}
	result.Imported = len(batch)

	log.Printf("Imported %d of %d rows from %s", result.Imported, result.TotalProcessed, config.FilePath)
	return result, nil
}

// readRows loads the raw rows from either format based on the extension
func readRows(config Config) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return readCSV(config.FilePath)
	}
	return readExcel(config.FilePath, config.SheetName)
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %q: %v", sheet, err)
	}
	return rows, nil
}

// parseRow expects rank, target word, source meaning and an optional
// phonetic transcription
func parseRow(row []string) (models.Word, error) {
	if len(row) < 3 {
		return models.Word{}, fmt.Errorf("expected at least 3 columns, got %d", len(row))
	}

	rank, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil || rank <= 0 {
		return models.Word{}, fmt.Errorf("invalid frequency rank %q", row[0])
	}

	target := strings.TrimSpace(row[1])
	if target == "" {
		return models.Word{}, fmt.Errorf("target word cannot be empty")
	}

	meaning := strings.TrimSpace(row[2])
	if meaning == "" {
		return models.Word{}, fmt.Errorf("source meaning cannot be empty")
	}

	var phonetic string
	if len(row) > 3 {
		phonetic = strings.Trim(strings.TrimSpace(row[3]), "[]")
	}

	return models.Word{
		TargetWord:    target,
		SourceMeaning: meaning,
		Phonetic:      phonetic,
		FrequencyRank: rank,
	}, nil
}
