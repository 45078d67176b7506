package ingestion

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/guttosm/b3rank/internal/domain/models"
)

// tickerHeader must be present in every screener export.
const tickerHeader = "Papel"

// FileSource reads a screener snapshot saved to disk instead of fetching it.
// The file is the result table exported as ';' separated text with the
// site's own Portuguese headers and Brazilian number formatting.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// FetchTable implements TableSource.
func (s *FileSource) FetchTable(ctx context.Context) (models.RawTable, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("open: %w", err)
	}
	return parseScreenerCSV(ctx, b)
}

// parseScreenerCSV validates and splits an exported screener table.
// It fails on:
//   - a header without the ticker column
//   - rows whose cell count differs from the header
//   - unrecoverable read errors
//
// Cells are kept as text; numeric parsing happens during normalization.
func parseScreenerCSV(ctx context.Context, b []byte) (models.RawTable, error) {
	var src io.Reader = bytes.NewReader(b)
	if !utf8.Valid(b) {
		src = charmap.ISO8859_1.NewDecoder().Reader(src)
	}

	r := csv.NewReader(src)
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // checked explicitly below for a better message

	header, err := r.Read()
	if err != nil {
		return models.RawTable{}, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\uFEFF"))
	}
	if !containsHeader(header, tickerHeader) {
		return models.RawTable{}, fmt.Errorf("invalid header: missing %q column", tickerHeader)
	}

	raw := models.RawTable{Headers: header}
	lineNumber := 1
	for {
		if err := ctx.Err(); err != nil {
			return models.RawTable{}, err
		}

		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.RawTable{}, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) != len(header) {
			return models.RawTable{}, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(header), len(rec))
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		raw.Rows = append(raw.Rows, rec)
	}
	return raw, nil
}

func containsHeader(headers []string, want string) bool {
	for _, h := range headers {
		if h == want {
			return true
		}
	}
	return false
}
