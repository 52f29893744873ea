package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"workmode-api/internal/auth"
	"workmode-api/internal/database"
	"workmode-api/internal/middleware"
	"workmode-api/internal/models"
	"workmode-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTaskRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	resetOwnershipCache()

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	api.POST("/tasks/sync", SyncTasks)
	api.POST("/tasks/filter", FilterTasks)
	api.POST("/tasks/complete", CompleteTask)
	api.POST("/tasks/seed-demo", SeedDemoTasks)
	api.POST("/tasks", CreateTask)
	api.GET("/tasks/:id", GetTaskByID)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSyncTasksEndpoint(t *testing.T) {
	r, db := setupTaskRouter(t)

	space := models.SearchSpace{Name: "ws", UserID: "u-1"}
	require.NoError(t, db.Create(&space).Error)
	doc := models.Document{
		SearchSpaceID: space.ID,
		DocumentType:  "LINEAR_CONNECTOR",
		Title:         "Fix the flaky test",
		Content:       "it fails every third run",
		Metadata:      models.JSONMap{"type": "issue", "id": "LIN-5", "priority": 1},
	}
	require.NoError(t, db.Create(&doc).Error)

	token, err := auth.GenerateToken("u-1", "alice")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/tasks/sync", token, map[string]any{
		"search_space_id": space.ID,
		"connector_types": []string{"LINEAR"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tasks []models.Task `json:"tasks"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "Fix the flaky test", resp.Tasks[0].Title)
	require.Equal(t, models.PriorityHigh, *resp.Tasks[0].Priority)
}

func TestSyncTasksEndpoint_SpaceNotOwned(t *testing.T) {
	r, db := setupTaskRouter(t)

	space := models.SearchSpace{Name: "ws", UserID: "someone-else"}
	require.NoError(t, db.Create(&space).Error)

	token, err := auth.GenerateToken("u-1", "alice")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/tasks/sync", token, map[string]any{
		"search_space_id": space.ID,
		"connector_types": []string{"LINEAR"},
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilterTasksEndpoint(t *testing.T) {
	r, db := setupTaskRouter(t)

	space := models.SearchSpace{Name: "ws", UserID: "u-1"}
	require.NoError(t, db.Create(&space).Error)
	urgent := models.PriorityUrgent
	low := models.PriorityLow
	require.NoError(t, db.Create(&models.Task{SearchSpaceID: space.ID, UserID: "u-1", Title: "low", SourceType: models.SourceManual, Status: models.StatusUndone, Priority: &low}).Error)
	require.NoError(t, db.Create(&models.Task{SearchSpaceID: space.ID, UserID: "u-1", Title: "urgent", SourceType: models.SourceManual, Status: models.StatusUndone, Priority: &urgent}).Error)
	require.NoError(t, db.Create(&models.Task{SearchSpaceID: space.ID, UserID: "u-1", Title: "done", SourceType: models.SourceManual, Status: models.StatusDone}).Error)

	token, err := auth.GenerateToken("u-1", "alice")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/tasks/filter", token, map[string]any{
		"search_space_id":  space.ID,
		"status":           "UNDONE",
		"sort_by_priority": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tasks []models.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tasks, 2)
	require.Equal(t, "urgent", resp.Tasks[0].Title)
	require.Equal(t, "low", resp.Tasks[1].Title)
}

func TestCompleteTaskEndpoint(t *testing.T) {
	r, db := setupTaskRouter(t)

	space := models.SearchSpace{Name: "ws", UserID: "u-1"}
	require.NoError(t, db.Create(&space).Error)
	task := models.Task{SearchSpaceID: space.ID, UserID: "u-1", Title: "todo", SourceType: models.SourceManual, Status: models.StatusUndone}
	require.NoError(t, db.Create(&task).Error)

	token, err := auth.GenerateToken("u-1", "alice")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/tasks/complete", token, map[string]any{"task_id": task.ID})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, models.StatusDone, got.Status)
	require.NotNil(t, got.CompletedAt)

	// Unknown task id is a 404
	w = doJSON(t, r, http.MethodPost, "/api/tasks/complete", token, map[string]any{"task_id": 9999})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTaskEndpoint(t *testing.T) {
	r, db := setupTaskRouter(t)

	space := models.SearchSpace{Name: "ws", UserID: "u-1"}
	require.NoError(t, db.Create(&space).Error)

	token, err := auth.GenerateToken("u-1", "alice")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/tasks", token, map[string]any{
		"search_space_id": space.ID,
		"title":           "Write the postmortem",
		"priority":        "MEDIUM",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, models.SourceManual, got.SourceType)
	require.Equal(t, models.StatusUndone, got.Status)
	require.Equal(t, models.PriorityMedium, *got.Priority)
}

func TestGetTaskByIDEndpoint(t *testing.T) {
	r, db := setupTaskRouter(t)

	space := models.SearchSpace{Name: "ws", UserID: "u-1"}
	require.NoError(t, db.Create(&space).Error)
	task := models.Task{SearchSpaceID: space.ID, UserID: "u-1", Title: "mine", SourceType: models.SourceManual, Status: models.StatusUndone}
	require.NoError(t, db.Create(&task).Error)

	token, err := auth.GenerateToken("u-1", "alice")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Another user can't see it
	otherToken, err := auth.GenerateToken("u-2", "bob")
	require.NoError(t, err)
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), otherToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSeedDemoTasksEndpoint(t *testing.T) {
	r, db := setupTaskRouter(t)

	space := models.SearchSpace{Name: "ws", UserID: "u-1"}
	require.NoError(t, db.Create(&space).Error)

	token, err := auth.GenerateToken("u-1", "alice")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/tasks/seed-demo", token, map[string]any{"search_space_id": space.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	require.EqualValues(t, 10, count)
}
