package handlers

import (
	"net/http"

	"workmode-api/internal/database"
	"workmode-api/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateDocumentRequest represents the request payload for document ingestion
type CreateDocumentRequest struct {
	SearchSpaceID uint           `json:"search_space_id" binding:"required"`
	DocumentType  string         `json:"document_type" binding:"required"`
	Title         string         `json:"title" binding:"required"`
	Content       string         `json:"content"`
	Metadata      models.JSONMap `json:"document_metadata"`
}

// CreateChatRequest represents the request payload for chat creation
type CreateChatRequest struct {
	SearchSpaceID uint   `json:"search_space_id" binding:"required"`
	Title         string `json:"title"`
}

// CreateSearchSpaceRequest represents the request payload for creating a space
type CreateSearchSpaceRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateDocument handles POST /api/documents
// Stores a connector-indexed record so sync has something to reconcile from
func CreateDocument(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req CreateDocumentRequest
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

	doc := models.Document{
		SearchSpaceID: req.SearchSpaceID,
		DocumentType:  req.DocumentType,
		Title:         req.Title,
		Content:       req.Content,
		Metadata:      req.Metadata,
	}
	if err := database.GetDB().Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create document"})
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// CreateChat handles POST /api/chats
func CreateChat(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req CreateChatRequest
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

	chat := models.Chat{
		SearchSpaceID: req.SearchSpaceID,
		Title:         req.Title,
	}
	if err := database.GetDB().Create(&chat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create chat"})
		return
	}

	c.JSON(http.StatusCreated, chat)
}

// CreateSearchSpace handles POST /api/search-spaces
func CreateSearchSpace(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req CreateSearchSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	space := models.SearchSpace{
		Name:   req.Name,
		UserID: userID,
	}
	if err := database.GetDB().Create(&space).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create search space"})
		return
	}

	c.JSON(http.StatusCreated, space)
}
