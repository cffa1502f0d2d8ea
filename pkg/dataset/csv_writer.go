package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVWriter wraps the standard csv.Writer to provide a clean interface.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) a CSV file and returns a writer. The
// dataset is built once per run, so there is no append mode.
func NewCSVWriter(filePath string) (*CSVWriter, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %w", err)
	}

	return &CSVWriter{
		file:   file,
		writer: csv.NewWriter(file),
	}, nil
}

// WriteHeader writes the header row to the CSV file.
func (cw *CSVWriter) WriteHeader(header []string) error {
	return cw.writer.Write(header)
}

// WriteRow writes a single data row to the CSV file.
func (cw *CSVWriter) WriteRow(row []string) error {
	return cw.writer.Write(row)
}

// Close flushes any buffered data to the file and closes it.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	flushErr := cw.writer.Error()
	closeErr := cw.file.Close()

	if flushErr != nil {
		return fmt.Errorf("error flushing CSV writer: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("error closing CSV file: %w", closeErr)
	}
	return nil
}
