// Package connector maps raw connector metadata payloads to normalized task
// fields. Each source system gets its own Extractor; unknown or malformed
// values degrade to absent rather than erroring, since connector payloads are
// heterogeneous and not under our control.
package connector

import (
	"strings"
	"time"

	"workmode-api/internal/models"
)

// Extractor classifies and normalizes one source system's metadata.
type Extractor interface {
	// IsTask reports whether the record represents a task.
	IsTask(meta models.JSONMap) bool

	// Priority maps the source's priority representation to the shared enum,
	// nil when unknown.
	Priority(meta models.JSONMap) *models.TaskPriority

	// DueDate parses the source's due date, nil when absent or malformed.
	DueDate(meta models.JSONMap) *time.Time

	// RawStatus extracts the upper-cased raw status label, "TODO" when absent.
	RawStatus(meta models.JSONMap) string
}

var registry = map[models.SourceType]Extractor{
	models.SourceLinear: linearExtractor{},
	models.SourceJira:   jiraExtractor{},
	models.SourceSlack:  slackExtractor{},
}

// For returns the extractor registered for a source system.
func For(source models.SourceType) (Extractor, bool) {
	e, ok := registry[source]
	return e, ok
}

// MapStatus maps an upper-cased raw status label to the two-state task status.
func MapStatus(raw string) models.TaskStatus {
	switch strings.ToUpper(raw) {
	case "DONE", "CLOSED", "COMPLETED", "RESOLVED":
		return models.StatusDone
	}
	return models.StatusUndone
}

func priorityPtr(p models.TaskPriority) *models.TaskPriority {
	return &p
}

// stringField returns a string-valued key, "" when absent or not a string.
func stringField(meta models.JSONMap, key string) string {
	s, _ := meta[key].(string)
	return s
}

// nestedMap returns a map-valued key, nil when absent or not a map.
func nestedMap(meta models.JSONMap, key string) models.JSONMap {
	switch v := meta[key].(type) {
	case map[string]any:
		return models.JSONMap(v)
	case models.JSONMap:
		return v
	}
	return nil
}

// parseDate tries the date layouts connectors actually emit.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
