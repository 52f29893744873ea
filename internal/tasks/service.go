// Package tasks implements the work-mode task engine: syncing tasks out of
// connector-indexed documents, filtered retrieval, completion with auto-link,
// and manual creation.
package tasks

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"workmode-api/internal/connector"
	"workmode-api/internal/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

// now is a small indirection to allow test stubbing.
var now = time.Now

const (
	descriptionLimit = 500
	autoLinkWindow   = 2 * time.Hour
	autoLinkLimit    = 5
)

// Service carries a DB handle for one request, like the handlers construct
// per call. It holds no other state.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Sync reconciles tasks from connector documents in a search space.
//
// For every document of type {SOURCE}_CONNECTOR that the source's extractor
// classifies as a task, a task row is created or updated, keyed by
// (search_space_id, source_type, external_id). The whole call runs in one
// transaction, so a failed sync leaves no partial batch behind. Re-running
// against unchanged documents is a no-op apart from updated_at.
func (s *Service) Sync(searchSpaceID uint, userID string, sources []models.SourceType) ([]models.Task, error) {
	synced := []models.Task{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, source := range sources {
			ext, ok := connector.For(source)
			if !ok {
				logrus.WithField("source", source).Warn("no extractor registered, skipping source")
				continue
			}

			var docs []models.Document
			if err := tx.
				Where("search_space_id = ? AND document_type = ?", searchSpaceID, models.ConnectorDocumentType(source)).
				Find(&docs).Error; err != nil {
				return errors.Wrapf(err, "failed to query %s documents", source)
			}

			for _, doc := range docs {
				meta := doc.Metadata
				if meta == nil {
					meta = models.JSONMap{}
				}
				if !ext.IsTask(meta) {
					continue
				}

				// External id fallback chain guarantees a non-null key for
				// any task-classified document.
				externalID := stringify(meta["id"])
				if externalID == "" {
					externalID = stringify(meta["issue_key"])
				}
				if externalID == "" {
					externalID = strconv.FormatUint(uint64(doc.ID), 10)
				}

				status := connector.MapStatus(ext.RawStatus(meta))
				priority := ext.Priority(meta)
				dueDate := ext.DueDate(meta)
				description := truncate(doc.Content, descriptionLimit)

				var task models.Task
				err := tx.
					Where("search_space_id = ? AND source_type = ? AND external_id = ?", searchSpaceID, source, externalID).
					First(&task).Error

				switch {
				case err == nil:
					task.Title = doc.Title
					task.Description = description
					task.Priority = priority
					task.DueDate = dueDate
					task.Status = status
					task.ExternalMetadata = meta
					task.UpdatedAt = now()
					// first-completion-wins: a re-sync of an already-done
					// task keeps the original completion time
					if status == models.StatusDone && task.CompletedAt == nil {
						ts := now()
						task.CompletedAt = &ts
					}
					if err := tx.Save(&task).Error; err != nil {
						return errors.Wrapf(err, "failed to update task %s/%s", source, externalID)
					}

				case errors.Is(err, gorm.ErrRecordNotFound):
					task = models.Task{
						SearchSpaceID:    searchSpaceID,
						UserID:           userID,
						Title:            doc.Title,
						Description:      description,
						SourceType:       source,
						ExternalID:       &externalID,
						ExternalURL:      externalURL(meta),
						ExternalMetadata: meta,
						Status:           status,
						Priority:         priority,
						DueDate:          dueDate,
					}
					if status == models.StatusDone {
						ts := now()
						task.CompletedAt = &ts
					}
					if err := tx.Create(&task).Error; err != nil {
						return errors.Wrapf(err, "failed to create task %s/%s", source, externalID)
					}

				default:
					return errors.Wrap(err, "failed to look up task by external id")
				}

				synced = append(synced, task)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return synced, nil
}

// Filtered returns the user's tasks in a search space, optionally restricted
// by status.
//
// With sortByPriority the order is priority (URGENT first, unknown last),
// then due date ascending with missing due dates last, then created_at
// ascending; otherwise newest-created first. The trailing id key makes the
// order total.
func (s *Service) Filtered(searchSpaceID uint, userID string, status *models.TaskStatus, sortByPriority bool) ([]models.Task, error) {
	query := s.db.Where("search_space_id = ? AND user_id = ?", searchSpaceID, userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if sortByPriority {
		query = query.
			Order(priorityRankExpr()).
			Order("due_date IS NULL").
			Order("due_date ASC").
			Order("created_at ASC").
			Order("id ASC")
	} else {
		query = query.Order("created_at DESC").Order("id DESC")
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, errors.Wrap(err, "failed to fetch tasks")
	}
	return tasks, nil
}

// Complete marks a task done and links recently created chats and documents
// from the same search space as related context.
//
// Unlike the sync path, completing always refreshes completed_at, even on an
// already-done task. The auto-link lists are replaced wholesale with up to
// five ids each from the trailing two-hour window; a semantic-similarity
// linker is planned to replace the window heuristic.
func (s *Service) Complete(taskID uint, userID string) (*models.Task, error) {
	var task models.Task
	err := s.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch task")
	}

	ts := now()
	task.Status = models.StatusDone
	task.CompletedAt = &ts
	task.UpdatedAt = ts

	cutoff := ts.Add(-autoLinkWindow)

	var chatIDs []uint
	if err := s.db.Model(&models.Chat{}).
		Where("search_space_id = ? AND created_at >= ?", task.SearchSpaceID, cutoff).
		Order("created_at DESC").
		Limit(autoLinkLimit).
		Pluck("id", &chatIDs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to fetch recent chats")
	}

	var docIDs []uint
	if err := s.db.Model(&models.Document{}).
		Where("search_space_id = ? AND created_at >= ?", task.SearchSpaceID, cutoff).
		Order("created_at DESC").
		Limit(autoLinkLimit).
		Pluck("id", &docIDs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to fetch recent documents")
	}

	task.LinkedChatIDs = models.IntList(chatIDs)
	task.LinkedDocumentIDs = models.IntList(docIDs)

	if err := s.db.Save(&task).Error; err != nil {
		return nil, errors.Wrap(err, "failed to save completed task")
	}
	return &task, nil
}

// CreateTaskInput is the payload for manual task creation.
type CreateTaskInput struct {
	SearchSpaceID uint
	Title         string
	Description   *string
	Priority      *models.TaskPriority
	DueDate       *time.Time
}

// CreateManual creates a task that did not come from a connector. It starts
// UNDONE and carries no external fields.
func (s *Service) CreateManual(in CreateTaskInput, userID string) (*models.Task, error) {
	task := models.Task{
		SearchSpaceID: in.SearchSpaceID,
		UserID:        userID,
		Title:         in.Title,
		Description:   in.Description,
		SourceType:    models.SourceManual,
		Status:        models.StatusUndone,
		Priority:      in.Priority,
		DueDate:       in.DueDate,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create manual task")
	}
	return &task, nil
}

// Get returns a single task owned by the user.
func (s *Service) Get(taskID uint, userID string) (*models.Task, error) {
	var task models.Task
	err := s.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch task")
	}
	return &task, nil
}

// priorityRanked lists the priorities in the order Rank assigns them.
var priorityRanked = []models.TaskPriority{
	models.PriorityUrgent,
	models.PriorityHigh,
	models.PriorityMedium,
	models.PriorityLow,
}

// priorityRankExpr builds the SQL CASE that orders rows by TaskPriority.Rank,
// so the rank table lives in one place.
func priorityRankExpr() string {
	var b strings.Builder
	b.WriteString("CASE priority")
	for _, p := range priorityRanked {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
	}
	fmt.Fprintf(&b, " ELSE %d END", (*models.TaskPriority)(nil).Rank())
	return b.String()
}

// truncate keeps the first limit characters of content. Connector content can
// be multibyte, so the limit counts runes, never bytes.
func truncate(content string, limit int) *string {
	if content == "" {
		return nil
	}
	if r := []rune(content); len(r) > limit {
		content = string(r[:limit])
	}
	return &content
}

func externalURL(meta models.JSONMap) *string {
	for _, key := range []string{"url", "link"} {
		if s := stringify(meta[key]); s != "" {
			return &s
		}
	}
	return nil
}

// stringify renders the id-ish values connectors emit; everything else is
// treated as absent.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// 'f' keeps large ids out of scientific notation
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	}
	return ""
}
