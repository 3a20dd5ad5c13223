package report

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/IvanShishkin/filemanifest/pkg/models"
)

// ErrGeneration marks a manifest that could not be written. Unlike per-file
// problems this is fatal: the importer has nothing to read.
var ErrGeneration = errors.New("failed to generate file list")

// ColumnNames are the labels the downstream importer assigns to the
// header-free manifest columns, in order
var ColumnNames = []string{
	"fileName",
	"fileSize(KB)",
	"fileExtension",
	"lastModifiedTime",
	"creationTime",
	"author",
	"filePath",
	"filePermissions",
	"sha256",
	"fileContent",
}

// ManifestWriter streams manifest records into a CSV file
type ManifestWriter struct {
	path string
	file *os.File
	out  *bufio.Writer
	row  bytes.Buffer
	csv  *csv.Writer
}

// CreateManifest creates (or truncates) the manifest file at path
func CreateManifest(path string) (*ManifestWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	w := &ManifestWriter{path: path, file: f, out: bufio.NewWriter(f)}
	// Rows are encoded one at a time so the CRLF terminator can be added
	// without csv.Writer rewriting line breaks inside quoted fields
	w.csv = csv.NewWriter(&w.row)
	return w, nil
}

// Path returns the manifest file path
func (w *ManifestWriter) Path() string {
	return w.path
}

// Write appends one record as a CRLF-terminated row. Field contents,
// including CR and LF, are written unchanged.
func (w *ManifestWriter) Write(rec models.ManifestRecord) error {
	w.row.Reset()
	if err := w.csv.Write(rec.Row()); err != nil {
		return fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	line := bytes.TrimSuffix(w.row.Bytes(), []byte("\n"))
	if _, err := w.out.Write(line); err != nil {
		return fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if _, err := w.out.WriteString("\r\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return nil
}

// Close flushes buffered rows, closes the file and returns its size in bytes
func (w *ManifestWriter) Close() (int64, error) {
	flushErr := w.out.Flush()
	closeErr := w.file.Close()
	if err := errors.Join(flushErr, closeErr); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	info, err := os.Stat(w.path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return info.Size(), nil
}

// Abort closes and removes a partially written manifest
func (w *ManifestWriter) Abort() error {
	w.file.Close()
	if err := os.Remove(w.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
