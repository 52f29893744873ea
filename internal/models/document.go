package models

import (
	"fmt"
	"time"
)

// Document represents a record indexed from a connector into a search space.
// Sync reads these; it never writes them.
type Document struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SearchSpaceID uint      `json:"search_space_id" gorm:"column:search_space_id;index:idx_documents_space_type"`
	DocumentType  string    `json:"document_type" gorm:"column:document_type;index:idx_documents_space_type"`
	Title         string    `json:"title" gorm:"not null"`
	Content       string    `json:"content"`
	Metadata      JSONMap   `json:"document_metadata" gorm:"column:document_metadata;type:text"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for Document Model
func (Document) TableName() string {
	return "documents"
}

// ConnectorDocumentType builds the document type tag for a source system,
// e.g. LINEAR -> LINEAR_CONNECTOR.
func ConnectorDocumentType(source SourceType) string {
	return fmt.Sprintf("%s_CONNECTOR", source)
}

// Chat represents a chat session inside a search space.
type Chat struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SearchSpaceID uint      `json:"search_space_id" gorm:"column:search_space_id;index"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for Chat Model
func (Chat) TableName() string {
	return "chats"
}

// SearchSpace is the ownership boundary for documents, chats and tasks.
type SearchSpace struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	UserID    string    `json:"-" gorm:"column:user_id;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for SearchSpace Model
func (SearchSpace) TableName() string {
	return "search_spaces"
}
