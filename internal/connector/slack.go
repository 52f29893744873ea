package connector

import (
	"time"

	"workmode-api/internal/models"
)

// slackExtractor is registered but classifies nothing as a task. Detecting
// tasks in Slack messages (emoji markers, keywords) is a policy decision that
// hasn't been made yet; keeping the extractor makes the skip explicit and
// gives the detection logic a place to land.
type slackExtractor struct{}

func (slackExtractor) IsTask(models.JSONMap) bool { return false }

func (slackExtractor) Priority(models.JSONMap) *models.TaskPriority { return nil }

func (slackExtractor) DueDate(models.JSONMap) *time.Time { return nil }

func (slackExtractor) RawStatus(models.JSONMap) string { return "TODO" }
