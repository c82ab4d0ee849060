package domain

import (
	"strings"
	"time"
)

// LogLevel represents the severity a producer attached to an entry
type LogLevel string

const (
	LogLevelDebug       LogLevel = "Debug"
	LogLevelInformation LogLevel = "Information"
	LogLevelWarning     LogLevel = "Warning"
	LogLevelError       LogLevel = "Error"
)

// Priority returns the priority of a log level (higher = more severe)
func (l LogLevel) Priority() int {
	switch l {
	case LogLevelDebug:
		return 0
	case LogLevelInformation:
		return 1
	case LogLevelWarning:
		return 2
	case LogLevelError:
		return 3
	default:
		return 1
	}
}

// ParseLogLevel converts a string to LogLevel
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "info", "information":
		return LogLevelInformation
	case "warn", "warning":
		return LogLevelWarning
	case "error":
		return LogLevelError
	default:
		return LogLevelInformation
	}
}

// Significance tags an entry as carrying a singular fact about a page
type Significance string

const (
	SignificanceNone             Significance = ""
	SignificanceSourcePage       Significance = "SourcePage"
	SignificanceTargetPage       Significance = "TargetPage"
	SignificanceSourceSiteURL    Significance = "SourceSiteUrl"
	SignificanceTargetSiteURL    Significance = "TargetSiteUrl"
	SignificanceAssetTransferred Significance = "AssetTransferred"
)

// Reserved headings
const (
	HeadingSummary  = "Summary"
	HeadingSettings = "Settings"
)

// KeyValueSeparator splits a Settings entry message into key and value
const KeyValueSeparator = ";#;"

// ExceptionInfo carries the failure a producer attached to an entry
type ExceptionInfo struct {
	Message    string `json:"message"`
	StackTrace string `json:"stackTrace,omitempty"`
}

// LogEntry is a single observation emitted by the transformation engine
type LogEntry struct {
	Heading             string         `json:"heading"`
	Message             string         `json:"message"`
	EntryTime           time.Time      `json:"time"`
	Significance        Significance   `json:"significance,omitempty"`
	PageID              string         `json:"pageId,omitempty"`
	IsCriticalException bool           `json:"critical,omitempty"`
	Exception           *ExceptionInfo `json:"exception,omitempty"`
}

// NewLogEntry creates an entry stamped with the current time
func NewLogEntry(heading, message string) LogEntry {
	return LogEntry{
		Heading:   heading,
		Message:   message,
		EntryTime: time.Now(),
	}
}

// NewSummaryEntry creates a Summary marker entry
func NewSummaryEntry(significance Significance, message string) LogEntry {
	return NewLogEntry(HeadingSummary, message).WithSignificance(significance)
}

// NewSettingEntry creates a Settings entry encoding key and value
func NewSettingEntry(key, value string) LogEntry {
	return NewLogEntry(HeadingSettings, key+KeyValueSeparator+value)
}

// WithSignificance returns a copy of the entry tagged with significance
func (e LogEntry) WithSignificance(s Significance) LogEntry {
	e.Significance = s
	return e
}

// WithException returns a copy of the entry carrying the given exception message and stack trace
func (e LogEntry) WithException(message, stackTrace string) LogEntry {
	e.Exception = &ExceptionInfo{Message: message, StackTrace: stackTrace}
	return e
}

// Critical returns a copy of the entry flagged as a page-aborting failure
func (e LogEntry) Critical() LogEntry {
	e.IsCriticalException = true
	return e
}

// IsSummary reports whether the entry carries the Summary heading
func (e *LogEntry) IsSummary() bool {
	return e.Heading == HeadingSummary
}

// IsSettings reports whether the entry carries the Settings heading
func (e *LogEntry) IsSettings() bool {
	return e.Heading == HeadingSettings
}

// Record is a leveled entry as held by the log store
type Record struct {
	Level LogLevel `json:"level"`
	Entry LogEntry `json:"entry"`
}
