package loader

import (
	"fmt"
	"strings"
)

// Severity is the lowest log status a Datadog dataset keeps.
type Severity string

const (
	ALL    Severity = "ALL"
	MEDIUM Severity = "MEDIUM"
	SEVERE Severity = "SEVERE"
)

type severities []Severity

// ValidLogSeverities lists the accepted severity names, matched case-insensitively.
var ValidLogSeverities = severities{ALL, MEDIUM, SEVERE}

func (ss severities) Includes(name string) bool {
	_, err := ParseSeverity(name)
	return err == nil
}

// ParseSeverity resolves a severity name. An empty name means ALL.
func ParseSeverity(name string) (Severity, error) {
	if name == "" {
		return ALL, nil
	}
	s := Severity(strings.ToUpper(name))
	if _, ok := minRank[s]; !ok {
		return "", fmt.Errorf("unknown log severity %q", name)
	}
	return s, nil
}

const (
	rankInfo = iota + 1
	rankWarning
	rankError
)

var minRank = map[Severity]int{
	ALL:    0,
	MEDIUM: rankWarning,
	SEVERE: rankError,
}

// statusRank orders Datadog log statuses. Statuses missing here are never
// filtered out.
var statusRank = map[string]int{
	"debug":     rankInfo - 1,
	"ok":        rankInfo,
	"info":      rankInfo,
	"notice":    rankInfo,
	"warn":      rankWarning,
	"warning":   rankWarning,
	"error":     rankError,
	"critical":  rankError,
	"alert":     rankError,
	"emergency": rankError,
}

// Admits reports whether a log with the given status is kept.
func (s Severity) Admits(status string) bool {
	rank, known := statusRank[strings.ToLower(status)]
	return !known || rank >= minRank[s]
}

// ShouldSkipLog reports whether a log with the given status falls below the
// named severity. Unknown severity names keep every log.
func ShouldSkipLog(logStatus string, logSeverity string) bool {
	s, err := ParseSeverity(logSeverity)
	if err != nil {
		return false
	}
	return !s.Admits(logStatus)
}
