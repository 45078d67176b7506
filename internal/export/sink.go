package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/guttosm/b3rank/internal/logger"
	"github.com/guttosm/b3rank/internal/ranking"
)

const (
	dayLayout   = "02-Jan-2006"
	stampLayout = "02-Jan-2006T150405.000000"
	latestJSON  = "latest.json"
)

// CSVSink writes each run to <dir>/results/<day>/<timestamp>.csv.
type CSVSink struct {
	Dir string
	Now func() time.Time
}

// JSONSink writes each run as a list of records to
// <dir>/json/<day>/<timestamp>.json and overwrites <dir>/json/latest.json.
type JSONSink struct {
	Dir string
	Now func() time.Time
}

func NewCSVSink(dir string) *CSVSink   { return &CSVSink{Dir: dir, Now: time.Now} }
func NewJSONSink(dir string) *JSONSink { return &JSONSink{Dir: dir, Now: time.Now} }

// Stage renders the table as CSV and stages it; the file becomes visible on Commit.
func (s *CSVSink) Stage(ctx context.Context, t ranking.Table) (*Staged, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range t {
		if err := w.Write(record(c)); err != nil {
			return nil, fmt.Errorf("write csv row %s: %w", c.Ticker, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	now := s.Now()
	path := filepath.Join(s.Dir, "results", now.Format(dayLayout), now.Format(stampLayout)+".csv")
	st := &Staged{}
	if err := st.Write(path, buf.Bytes()); err != nil {
		return nil, err
	}

	logger.L().Debug().Str("path", path).Int("rows", len(t)).Msg("csv staged")
	return st, nil
}

// Stage encodes the table as a list of records and stages both the
// timestamped file and latest.json.
func (s *JSONSink) Stage(ctx context.Context, t ranking.Table) (*Staged, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records := t
	if records == nil {
		records = ranking.Table{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}

	now := s.Now()
	st := &Staged{}
	for _, p := range []string{
		filepath.Join(s.Dir, "json", now.Format(dayLayout), now.Format(stampLayout)+".json"),
		filepath.Join(s.Dir, "json", latestJSON),
	} {
		if err := st.Write(p, b); err != nil {
			st.Discard()
			return nil, err
		}
	}

	logger.L().Debug().Strs("paths", st.Paths()).Int("rows", len(t)).Msg("json staged")
	return st, nil
}
