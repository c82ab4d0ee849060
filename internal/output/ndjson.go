package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
	"github.com/tidwall/gjson"
)

// EntryType is the "type" value of entry lines
const EntryType = "entry"

// NDJSONWriter writes log records as NDJSON
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // keep messages unescaped
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// OutputEntry is the flat NDJSON form of a record
type OutputEntry struct {
	Type          string                `json:"type"` // Always "entry"
	SchemaVersion int                   `json:"schemaVersion"`
	Level         string                `json:"level"`
	Time          string                `json:"time,omitempty"`
	PageID        string                `json:"pageId,omitempty"`
	Heading       string                `json:"heading"`
	Message       string                `json:"message"`
	Significance  string                `json:"significance,omitempty"`
	Critical      bool                  `json:"critical,omitempty"`
	Exception     *domain.ExceptionInfo `json:"exception,omitempty"`
}

// Write outputs a single record
func (w *NDJSONWriter) Write(rec *domain.Record) error {
	out := &OutputEntry{
		Type:          EntryType,
		SchemaVersion: SchemaVersion,
		Level:         string(rec.Level),
		PageID:        rec.Entry.PageID,
		Heading:       rec.Entry.Heading,
		Message:       rec.Entry.Message,
		Significance:  string(rec.Entry.Significance),
		Critical:      rec.Entry.IsCriticalException,
		Exception:     rec.Entry.Exception,
	}
	if !rec.Entry.EntryTime.IsZero() {
		out.Time = rec.Entry.EntryTime.Format(time.RFC3339Nano)
	}
	return w.encoder.Encode(out)
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	err := domain.NewErrorOutput(code, message)
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	err.SchemaVersion = SchemaVersion
	return w.encoder.Encode(err)
}

// WriteRaw outputs raw JSON data
func (w *NDJSONWriter) WriteRaw(v interface{}) error {
	return w.encoder.Encode(v)
}

// ReadStats counts lines ReadEntries did not turn into records
type ReadStats struct {
	Lines   int `json:"lines"`
	Entries int `json:"entries"`
	// Skipped lines carry a "type" other than "entry"
	Skipped int `json:"skipped"`
	// Invalid lines are not JSON or carry an unparseable time
	Invalid int `json:"invalid"`
}

// ReadEntries decodes entry lines from r. Lines without a "type" are treated
// as entries. Blank lines are ignored.
func ReadEntries(r io.Reader) ([]domain.Record, ReadStats, error) {
	var (
		records []domain.Record
		stats   ReadStats
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		stats.Lines++

		if !gjson.ValidBytes(line) {
			stats.Invalid++
			continue
		}
		if t := gjson.GetBytes(line, "type"); t.Exists() && t.String() != EntryType {
			stats.Skipped++
			continue
		}

		rec, err := decodeEntry(line)
		if err != nil {
			stats.Invalid++
			continue
		}
		records = append(records, rec)
		stats.Entries++
	}
	if err := scanner.Err(); err != nil {
		return records, stats, fmt.Errorf("read entries: %w", err)
	}

	return records, stats, nil
}

func decodeEntry(line []byte) (domain.Record, error) {
	var out OutputEntry
	if err := json.Unmarshal(line, &out); err != nil {
		return domain.Record{}, err
	}

	var at time.Time
	if out.Time != "" {
		parsed, err := time.Parse(time.RFC3339Nano, out.Time)
		if err != nil {
			return domain.Record{}, fmt.Errorf("parse time %q: %w", out.Time, err)
		}
		at = parsed
	}

	return domain.Record{
		Level: domain.ParseLogLevel(out.Level),
		Entry: domain.LogEntry{
			Heading:             out.Heading,
			Message:             out.Message,
			EntryTime:           at,
			Significance:        domain.Significance(out.Significance),
			PageID:              out.PageID,
			IsCriticalException: out.Critical,
			Exception:           out.Exception,
		},
	}, nil
}
