package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() domain.Record {
	entry := domain.NewSummaryEntry(domain.SignificanceSourcePage, "/sites/a/SitePages/home.aspx")
	entry.EntryTime = time.Date(2024, 1, 15, 10, 30, 45, 123000000, time.UTC)
	entry.PageID = "P1"
	return domain.Record{Level: domain.LogLevelInformation, Entry: entry}
}

func TestNDJSONWriter_Write(t *testing.T) {
	t.Run("writes entry with type field and schemaVersion", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewNDJSONWriter(&buf)

		rec := sampleRecord()
		require.NoError(t, w.Write(&rec))

		var out OutputEntry
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

		assert.Equal(t, "entry", out.Type)
		assert.Equal(t, SchemaVersion, out.SchemaVersion)
		assert.Equal(t, "Information", out.Level)
		assert.Equal(t, "P1", out.PageID)
		assert.Equal(t, "Summary", out.Heading)
		assert.Equal(t, "SourcePage", out.Significance)
		assert.Equal(t, "2024-01-15T10:30:45.123Z", out.Time)
	})

	t.Run("omits empty optional fields", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewNDJSONWriter(&buf)

		rec := domain.Record{Level: domain.LogLevelDebug, Entry: domain.LogEntry{Heading: "Init", Message: "hello"}}
		require.NoError(t, w.Write(&rec))

		line := buf.String()
		assert.NotContains(t, line, "pageId")
		assert.NotContains(t, line, "significance")
		assert.NotContains(t, line, "critical")
		assert.NotContains(t, line, "exception")
		assert.NotContains(t, line, `"time"`)
	})

	t.Run("does not escape html", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewNDJSONWriter(&buf)

		rec := domain.Record{Level: domain.LogLevelWarning, Entry: domain.LogEntry{Heading: "Web part", Message: "<div> & co"}}
		require.NoError(t, w.Write(&rec))
		assert.Contains(t, buf.String(), "<div> & co")
	})

	t.Run("one line per record", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewNDJSONWriter(&buf)

		rec := sampleRecord()
		for i := 0; i < 3; i++ {
			require.NoError(t, w.Write(&rec))
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.Len(t, lines, 3)
	})
}

func TestNDJSONWriter_WriteError(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteError("FILE_NOT_FOUND", "cannot open file", "check the path"))

	var out domain.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "error", out.Type)
	assert.Equal(t, SchemaVersion, out.SchemaVersion)
	assert.Equal(t, "FILE_NOT_FOUND", out.Code)
	assert.Equal(t, "cannot open file", out.Message)
	assert.Equal(t, "check the path", out.Hint)
}

func TestReadEntries(t *testing.T) {
	t.Run("round trips written records", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewNDJSONWriter(&buf)

		first := sampleRecord()
		second := domain.Record{
			Level: domain.LogLevelError,
			Entry: domain.NewLogEntry("Web part mapping", "mapping failed").
				WithException("boom", "at Map()").
				Critical(),
		}
		second.Entry.EntryTime = first.Entry.EntryTime.Add(time.Second)
		second.Entry.PageID = "P1"

		require.NoError(t, w.Write(&first))
		require.NoError(t, w.Write(&second))

		records, stats, err := ReadEntries(&buf)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, ReadStats{Lines: 2, Entries: 2}, stats)

		assert.True(t, records[0].Entry.EntryTime.Equal(first.Entry.EntryTime))
		assert.Equal(t, domain.SignificanceSourcePage, records[0].Entry.Significance)
		assert.Equal(t, domain.LogLevelError, records[1].Level)
		assert.True(t, records[1].Entry.IsCriticalException)
		require.NotNil(t, records[1].Entry.Exception)
		assert.Equal(t, "at Map()", records[1].Entry.Exception.StackTrace)
	})

	t.Run("counts skipped and invalid lines", func(t *testing.T) {
		input := strings.Join([]string{
			`{"type":"entry","level":"Warning","heading":"H","message":"m","pageId":"P1"}`,
			`{"type":"error","code":"X","message":"y"}`,
			`not json`,
			``,
			`{"level":"Debug","heading":"H","message":"untyped"}`,
			`{"type":"entry","level":"Info","time":"yesterday","heading":"H","message":"m"}`,
		}, "\n")

		records, stats, err := ReadEntries(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, ReadStats{Lines: 5, Entries: 2, Skipped: 1, Invalid: 2}, stats)

		assert.Equal(t, domain.LogLevelWarning, records[0].Level)
		assert.True(t, records[0].Entry.EntryTime.IsZero())
		assert.Equal(t, domain.LogLevelDebug, records[1].Level)
	})

	t.Run("surfaces reader errors", func(t *testing.T) {
		_, _, err := ReadEntries(failingReader{})
		require.Error(t, err)
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk gone")
}
