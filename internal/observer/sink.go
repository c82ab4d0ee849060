// Package observer is the ingestion surface transformation workers log
// through. A Sink stamps entries with its page context, appends them to a
// shared store and turns the store into a report on Flush.
package observer

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/sceriffo01/sp-dev-modernization/internal/analysis"
	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
	"github.com/sceriffo01/sp-dev-modernization/internal/logstore"
	"github.com/sceriffo01/sp-dev-modernization/internal/report"
	"go.uber.org/zap"
)

// ReportWriter persists rendered report text and returns where it went
type ReportWriter interface {
	WriteReport(name string, content []byte) (string, error)
}

// FlushResult describes one flush cycle
type FlushResult struct {
	RunID       string
	GeneratedAt time.Time
	Pages       int
	Bytes       int
	// Path is empty when nothing was written
	Path string
	Err  error
}

// Option configures a Sink
type Option func(*Sink)

// WithLogger sets the side-channel logger for flush diagnostics
func WithLogger(l *zap.Logger) Option {
	return func(s *Sink) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock used for the report date and file name
func WithClock(c clock.Clock) Option {
	return func(s *Sink) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithIncludeDebug keeps Debug entries instead of dropping them at ingestion
func WithIncludeDebug(include bool) Option {
	return func(s *Sink) {
		s.includeDebug = include
	}
}

// WithDiscriminator appends a suffix to the suggested report file name
func WithDiscriminator(d string) Option {
	return func(s *Sink) {
		s.discriminator = d
	}
}

// WithFlushHook registers fn to receive the outcome of every flush
func WithFlushHook(fn func(FlushResult)) Option {
	return func(s *Sink) {
		s.onFlush = fn
	}
}

// Sink is the producer-facing logging contract. Ingestion methods are safe
// for concurrent use. Flush is serialised per sink; callers sharing one store
// across sinks must flush through a single owner.
type Sink struct {
	store    *logstore.Store
	renderer *report.Renderer
	writer   ReportWriter

	logger        *zap.Logger
	clock         clock.Clock
	runID         string
	includeDebug  bool
	discriminator string
	onFlush       func(FlushResult)

	mu     sync.RWMutex
	pageID string

	flushMu sync.Mutex
}

// New creates a sink appending to store and flushing through renderer and writer
func New(store *logstore.Store, renderer *report.Renderer, writer ReportWriter, opts ...Option) *Sink {
	s := &Sink{
		store:    store,
		renderer: renderer,
		writer:   writer,
		logger:   zap.NewNop(),
		clock:    clock.New(),
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("run_id", s.runID))
	return s
}

// RunID identifies this sink in side-channel diagnostics
func (s *Sink) RunID() string {
	return s.runID
}

// Debug records a Debug entry. It is dropped unless debug entries are included.
func (s *Sink) Debug(entry domain.LogEntry) {
	if !s.includeDebug {
		return
	}
	s.ingest(domain.LogLevelDebug, entry)
}

// Info records an Information entry
func (s *Sink) Info(entry domain.LogEntry) {
	s.ingest(domain.LogLevelInformation, entry)
}

// Warning records a Warning entry
func (s *Sink) Warning(entry domain.LogEntry) {
	s.ingest(domain.LogLevelWarning, entry)
}

// Error records an Error entry
func (s *Sink) Error(entry domain.LogEntry) {
	s.ingest(domain.LogLevelError, entry)
}

// SetPageID changes the page context stamped on subsequently ingested entries
func (s *Sink) SetPageID(id string) {
	s.mu.Lock()
	s.pageID = id
	s.mu.Unlock()
}

// PageID returns the current page context
func (s *Sink) PageID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageID
}

func (s *Sink) ingest(level domain.LogLevel, entry domain.LogEntry) {
	entry.PageID = s.PageID()
	s.store.Append(level, entry)
}

// Flush aggregates the store, renders the report, hands it to the writer and
// clears the store. Nothing is written when no page was discovered. Failures,
// including panics while rendering or writing, are logged and never returned;
// the store is cleared in every case.
func (s *Sink) Flush() {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	res := FlushResult{RunID: s.runID, GeneratedAt: s.clock.Now()}
	defer func() {
		s.store.Clear()
		if s.onFlush != nil {
			s.onFlush(res)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("flush panicked: %v", r)
			s.logger.Error("report flush failed", zap.Error(res.Err))
		}
	}()

	if err := s.flush(&res); err != nil {
		res.Err = err
		s.logger.Error("report flush failed", zap.Error(err))
	}
}

func (s *Sink) flush(res *FlushResult) error {
	counts := s.store.CountByLevel()
	records := s.store.Snapshot()
	s.logger.Debug("flushing report",
		zap.Int("records", len(records)),
		zap.Int("debug", counts[domain.LogLevelDebug]),
		zap.Int("info", counts[domain.LogLevelInformation]),
		zap.Int("warnings", counts[domain.LogLevelWarning]),
		zap.Int("errors", counts[domain.LogLevelError]))

	rep := analysis.Aggregate(records, res.GeneratedAt)
	res.Pages = len(rep.Pages)
	if rep.Empty() {
		s.logger.Debug("no pages discovered, skipping report", zap.Int("records", len(records)))
		return nil
	}

	text, err := s.renderer.Render(rep)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	name := report.SuggestedName(res.GeneratedAt, s.discriminator, s.renderer.Tokens())
	path, err := s.writer.WriteReport(name, []byte(text))
	if err != nil {
		return fmt.Errorf("write report %s: %w", name, err)
	}
	res.Path = path
	res.Bytes = len(text)

	s.logger.Debug("report written",
		zap.Int("pages", res.Pages),
		zap.Int("bytes", res.Bytes),
		zap.String("path", path))
	return nil
}
