package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// Severity is a log threshold as exposed in the preferences. The numeric
// order matches the order of the preferences enum.
type Severity int

const (
	SeverityCritical Severity = iota
	SeverityError
	SeverityWarning
	SeverityInfo
	SeverityDebug
	SeverityNotSet
)

// DefaultSeverity applies when no level is configured.
const DefaultSeverity = SeverityWarning

// Extra slog levels for the two severities slog does not define.
const (
	LevelCritical = slog.LevelError + 4
	LevelNotSet   = slog.LevelDebug - 4
)

var severityNames = [...]string{
	SeverityCritical: "CRITICAL",
	SeverityError:    "ERROR",
	SeverityWarning:  "WARNING",
	SeverityInfo:     "INFO",
	SeverityDebug:    "DEBUG",
	SeverityNotSet:   "NOTSET",
}

// AllSeverities returns every severity in preferences order.
func AllSeverities() []Severity {
	return []Severity{SeverityCritical, SeverityError, SeverityWarning, SeverityInfo, SeverityDebug, SeverityNotSet}
}

// String returns the upper-case severity name (e.g., "WARNING").
func (s Severity) String() string {
	if s < SeverityCritical || s > SeverityNotSet {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// Label returns the title-case name shown in the preferences (e.g., "Warning").
func (s Severity) Label() string {
	name := s.String()
	return name[:1] + strings.ToLower(name[1:])
}

// Level maps the severity onto a slog level. NOTSET sits below DEBUG, so
// a NOTSET threshold lets every record through.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityCritical:
		return LevelCritical
	case SeverityError:
		return slog.LevelError
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityDebug:
		return slog.LevelDebug
	default:
		return LevelNotSet
	}
}

// ParseSeverity accepts a severity name in any case. "WARN" is accepted as
// an alias for WARNING.
func ParseSeverity(name string) (Severity, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "WARN" {
		return SeverityWarning, nil
	}
	for i, n := range severityNames {
		if n == upper {
			return Severity(i), nil
		}
	}
	return DefaultSeverity, fmt.Errorf("unknown log level %q", name)
}

// levelName renders a slog level with the severity vocabulary.
func levelName(l slog.Level) string {
	switch {
	case l >= LevelCritical:
		return "CRITICAL"
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARNING"
	case l >= slog.LevelInfo:
		return "INFO"
	case l >= slog.LevelDebug:
		return "DEBUG"
	default:
		return "NOTSET"
	}
}
