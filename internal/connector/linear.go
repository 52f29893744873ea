package connector

import (
	"strings"
	"time"

	"workmode-api/internal/models"
)

// linearExtractor handles Linear issue payloads. Linear encodes priority as a
// number (0 = urgent ... 3 = low) and state as a nested object.
type linearExtractor struct{}

func (linearExtractor) IsTask(meta models.JSONMap) bool {
	if stringField(meta, "type") == "issue" {
		return true
	}
	_, hasIssue := meta["issue"]
	return hasIssue
}

func (linearExtractor) Priority(meta models.JSONMap) *models.TaskPriority {
	// JSON numbers decode as float64; seeded fixtures may carry ints
	var n int
	switch v := meta["priority"].(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	default:
		return nil
	}
	switch n {
	case 0:
		return priorityPtr(models.PriorityUrgent)
	case 1:
		return priorityPtr(models.PriorityHigh)
	case 2:
		return priorityPtr(models.PriorityMedium)
	case 3:
		return priorityPtr(models.PriorityLow)
	}
	return nil
}

func (linearExtractor) DueDate(meta models.JSONMap) *time.Time {
	return parseDate(stringField(meta, "dueDate"))
}

func (linearExtractor) RawStatus(meta models.JSONMap) string {
	state := nestedMap(meta, "state")
	name := stringField(state, "name")
	if name == "" {
		name = "TODO"
	}
	return strings.ToUpper(name)
}
