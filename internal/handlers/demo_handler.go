package handlers

import (
	"fmt"
	"net/http"
	"time"

	"workmode-api/internal/database"
	"workmode-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SeedDemoRequest represents the request payload for demo task seeding
type SeedDemoRequest struct {
	SearchSpaceID uint `json:"search_space_id" binding:"required"`
}

type demoTask struct {
	title       string
	description string
	priority    models.TaskPriority
	dueOffset   int // days relative to now
}

var demoTasks = []demoTask{
	{"Submit Q4 financial report to board", "Compile and finalize Q4 financial statements. Must be reviewed by CFO before the board meeting tomorrow.", models.PriorityUrgent, -1},
	{"Respond to client complaint about delayed shipment", "Major client is upset about a 2-week delay. Provide explanation, compensation offer, and updated delivery timeline today.", models.PriorityUrgent, 0},
	{"Prepare presentation for Monday's team meeting", "Slides covering project status, upcoming milestones, and Q1 resource allocation.", models.PriorityHigh, 1},
	{"Review and approve vacation requests", "Process 8 pending requests; check coverage plans against project deadlines.", models.PriorityHigh, 2},
	{"Update employee handbook with new policies", "Incorporate the remote work policy and revised expense procedures; get legal approval before distribution.", models.PriorityHigh, 3},
	{"Schedule interviews for Marketing Manager position", "Coordinate 5 candidates and 3 interviewers; send invites and prepare the question packet.", models.PriorityMedium, 5},
	{"Organize team building event for next month", "Research venues, get catering quotes, poll the team. Budget $2000 for 20 people.", models.PriorityMedium, 7},
	{"Update customer contact database", "Deduplicate entries and verify contact info for the top 50 clients; export for sales.", models.PriorityMedium, 10},
	{"Research new project management software options", "Compare 3-4 tools on pricing, features and integrations; schedule vendor demos.", models.PriorityLow, 14},
	{"Archive old project files to cloud storage", "Move 2022-2023 completed projects to the archive; update the file index.", models.PriorityLow, 21},
}

// SeedDemoTasks handles POST /api/tasks/seed-demo
// Creates a fixed set of demo tasks so work mode can be exercised without
// any connector configured. The tasks look like a Linear sync result.
func SeedDemoTasks(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req SeedDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owned, err := ensureSpaceOwned(req.SearchSpaceID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify search space"})
		return
	}
	if !owned {
		c.JSON(http.StatusNotFound, gin.H{"error": "Search space not found"})
		return
	}

	created := make([]models.Task, 0, len(demoTasks))
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		for i, demo := range demoTasks {
			externalID := fmt.Sprintf("DEMO-%03d", i+1)
			externalURL := fmt.Sprintf("https://linear.app/workmode/issue/%s", externalID)
			dueDate := time.Now().UTC().AddDate(0, 0, demo.dueOffset)
			description := demo.description
			priority := demo.priority

			task := models.Task{
				SearchSpaceID: req.SearchSpaceID,
				UserID:        userID,
				Title:         demo.title,
				Description:   &description,
				SourceType:    models.SourceLinear,
				ExternalID:    &externalID,
				ExternalURL:   &externalURL,
				ExternalMetadata: models.JSONMap{
					"issue_number": i + 1,
					"labels":       []string{"demo", "work-mode"},
				},
				Status:   models.StatusUndone,
				Priority: &priority,
				DueDate:  &dueDate,
			}
			if err := tx.Create(&task).Error; err != nil {
				return err
			}
			created = append(created, task)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed demo tasks"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"tasks": created,
		"count": len(created),
	})
}
