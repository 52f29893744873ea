package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"workmode-api/internal/database"
	"workmode-api/internal/models"
	"workmode-api/internal/realtime"
	"workmode-api/internal/tasks"

	"github.com/gin-gonic/gin"
)

// SyncTasksRequest represents the request payload for syncing connector tasks
type SyncTasksRequest struct {
	SearchSpaceID  uint                `json:"search_space_id" binding:"required"`
	ConnectorTypes []models.SourceType `json:"connector_types" binding:"required"`
}

// FilterTasksRequest represents the request payload for filtered retrieval
type FilterTasksRequest struct {
	SearchSpaceID  uint               `json:"search_space_id" binding:"required"`
	Status         *models.TaskStatus `json:"status"`
	SortByPriority bool               `json:"sort_by_priority"`
}

// CompleteTaskRequest represents the request payload for completing a task
type CompleteTaskRequest struct {
	TaskID uint `json:"task_id" binding:"required"`
}

// CreateTaskRequest represents the request payload for manual task creation
type CreateTaskRequest struct {
	SearchSpaceID uint                 `json:"search_space_id" binding:"required"`
	Title         string               `json:"title" binding:"required"`
	Description   *string              `json:"description"`
	Priority      *models.TaskPriority `json:"priority"`
	DueDate       *time.Time           `json:"due_date"`
}

/*
*
SyncTasks handles POST /api/tasks/sync
Reconciles tasks from connector-indexed documents in a search space
*/
func SyncTasks(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req SyncTasksRequest
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

	service := tasks.NewService(database.GetDB())
	synced, err := service.Sync(req.SearchSpaceID, userID, req.ConnectorTypes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync tasks"})
		return
	}

	realtime.GetHub().BroadcastTaskEvent(realtime.TaskEvent{
		Type:   realtime.EventTaskSynced,
		Count:  len(synced),
		UserID: userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"tasks": synced,
		"count": len(synced),
	})
}

/*
*
FilterTasks handles POST /api/tasks/filter
Returns the user's tasks in a search space, filtered and ordered
*/
func FilterTasks(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req FilterTasksRequest
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

	service := tasks.NewService(database.GetDB())
	result, err := service.Filtered(req.SearchSpaceID, userID, req.Status, req.SortByPriority)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": result,
		"count": len(result),
	})
}

// CompleteTask handles POST /api/tasks/complete
// Marks a task done and auto-links recent chats/documents
func CompleteTask(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := tasks.NewService(database.GetDB())
	task, err := service.Complete(req.TaskID, userID)
	if err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete task"})
		}
		return
	}

	realtime.GetHub().BroadcastTaskEvent(realtime.TaskEvent{
		Type:   realtime.EventTaskCompleted,
		TaskID: task.ID,
		UserID: userID,
	})

	c.JSON(http.StatusOK, task)
}

// CreateTask handles POST /api/tasks
// Creates a manual task (not from connectors)
func CreateTask(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req CreateTaskRequest
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

	service := tasks.NewService(database.GetDB())
	task, err := service.CreateManual(tasks.CreateTaskInput{
		SearchSpaceID: req.SearchSpaceID,
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		DueDate:       req.DueDate,
	}, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	realtime.GetHub().BroadcastTaskEvent(realtime.TaskEvent{
		Type:   realtime.EventTaskCreated,
		TaskID: task.ID,
		UserID: userID,
	})

	c.JSON(http.StatusCreated, task)
}

// GetTaskByID handles GET /api/tasks/:id
// Returns a single task owned by the authenticated user
func GetTaskByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	service := tasks.NewService(database.GetDB())
	task, err := service.Get(uint(taskID), userID)
	if err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}
