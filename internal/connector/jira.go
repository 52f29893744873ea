package connector

import (
	"strings"
	"time"

	"workmode-api/internal/models"
)

// jiraExtractor handles Jira issue payloads, which nest everything under
// "fields" and name priorities free-text ("Highest", "Blocker", ...).
type jiraExtractor struct{}

func (jiraExtractor) IsTask(meta models.JSONMap) bool {
	if _, ok := meta["issue_key"]; ok {
		return true
	}
	_, hasFields := meta["fields"]
	return hasFields
}

func (jiraExtractor) Priority(meta models.JSONMap) *models.TaskPriority {
	fields := nestedMap(meta, "fields")
	priority := nestedMap(fields, "priority")
	name := strings.ToUpper(stringField(priority, "name"))
	switch {
	// HIGHEST must be matched before HIGH
	case strings.Contains(name, "HIGHEST"), strings.Contains(name, "BLOCKER"):
		return priorityPtr(models.PriorityUrgent)
	case strings.Contains(name, "HIGH"):
		return priorityPtr(models.PriorityHigh)
	case strings.Contains(name, "MEDIUM"):
		return priorityPtr(models.PriorityMedium)
	case strings.Contains(name, "LOW"):
		return priorityPtr(models.PriorityLow)
	}
	return nil
}

func (jiraExtractor) DueDate(meta models.JSONMap) *time.Time {
	fields := nestedMap(meta, "fields")
	return parseDate(stringField(fields, "duedate"))
}

func (jiraExtractor) RawStatus(meta models.JSONMap) string {
	fields := nestedMap(meta, "fields")
	status := nestedMap(fields, "status")
	name := stringField(status, "name")
	if name == "" {
		name = "TODO"
	}
	return strings.ToUpper(name)
}
