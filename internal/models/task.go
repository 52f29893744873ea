package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	StatusUndone TaskStatus = "UNDONE"
	StatusDone   TaskStatus = "DONE"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityUrgent TaskPriority = "URGENT"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityLow    TaskPriority = "LOW"
)

// Rank returns the sort rank of a priority: URGENT=1, HIGH=2, MEDIUM=3, LOW=4.
// A nil (unknown) priority ranks last with 5.
func (p *TaskPriority) Rank() int {
	if p == nil {
		return 5
	}
	switch *p {
	case PriorityUrgent:
		return 1
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 4
	}
	return 5
}

// SourceType identifies the system a task was synced from
type SourceType string

const (
	SourceLinear SourceType = "LINEAR"
	SourceJira   SourceType = "JIRA"
	SourceSlack  SourceType = "SLACK"
	SourceManual SourceType = "MANUAL"
)

// JSONMap stores an opaque metadata payload in a JSON text column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", src)
	}
	return json.Unmarshal(data, m)
}

// IntList stores an ordered list of record ids in a JSON text column.
type IntList []uint

func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *IntList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into IntList", src)
	}
	return json.Unmarshal(data, l)
}

// Task represents a work-mode task, synced from a connector or created manually
type Task struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	SearchSpaceID uint   `json:"search_space_id" gorm:"column:search_space_id;index:idx_tasks_space_status"`
	UserID        string `json:"user_id" gorm:"column:user_id;index"`

	Title       string  `json:"title" gorm:"not null"`
	Description *string `json:"description"`

	SourceType       SourceType `json:"source_type" gorm:"column:source_type;index:idx_tasks_external"`
	ExternalID       *string    `json:"external_id" gorm:"column:external_id;index:idx_tasks_external"`
	ExternalURL      *string    `json:"external_url" gorm:"column:external_url"`
	ExternalMetadata JSONMap    `json:"external_metadata" gorm:"column:external_metadata;type:text"`

	Status   TaskStatus    `json:"status" gorm:"not null;default:'UNDONE';index:idx_tasks_space_status"`
	Priority *TaskPriority `json:"priority"`
	DueDate  *time.Time    `json:"due_date" gorm:"column:due_date"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at" gorm:"column:completed_at"`

	LinkedChatIDs     IntList `json:"linked_chat_ids" gorm:"column:linked_chat_ids;type:text"`
	LinkedDocumentIDs IntList `json:"linked_document_ids" gorm:"column:linked_document_ids;type:text"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}
