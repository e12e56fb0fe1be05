package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gymbuddy-api/services"
)

type ChatController struct {
	chatService *services.ChatService
}

func NewChatController(db *gorm.DB, hub *services.ChatHub, logger *zap.Logger) *ChatController {
	return &ChatController{
		chatService: services.NewChatService(db, hub, logger),
	}
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

// SendMessage handles POST /api/v1/chat/:friend_id/messages
// Whitespace-only text is accepted and ignored; nothing is written.
func (cc *ChatController) SendMessage(c *gin.Context) {
	userID := c.GetString("user_id")
	friendID := c.Param("friend_id")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := cc.chatService.SendMessage(userID, friendID, req.Text)
	if err != nil {
		if errors.Is(err, services.ErrNotConnected) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only message accepted connections"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	if message == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Empty message ignored"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message sent", "data": message})
}

// GetMessages handles GET /api/v1/chat/:friend_id/messages
func (cc *ChatController) GetMessages(c *gin.Context) {
	userID := c.GetString("user_id")
	friendID := c.Param("friend_id")

	messages, err := cc.chatService.History(userID, friendID)
	if err != nil {
		if errors.Is(err, services.ErrNotConnected) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only message accepted connections"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"count":    len(messages),
	})
}

// StreamMessages handles GET /api/v1/chat/:friend_id/stream
// Server-sent events feed of new messages. The subscription is cancelled
// when the client disconnects; nothing is delivered after that.
func (cc *ChatController) StreamMessages(c *gin.Context) {
	userID := c.GetString("user_id")
	friendID := c.Param("friend_id")

	messages, cancel, err := cc.chatService.Subscribe(userID, friendID)
	if err != nil {
		if errors.Is(err, services.ErrNotConnected) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only message accepted connections"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open message stream"})
		return
	}
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-messages:
			if !ok {
				return false
			}
			c.SSEvent("message", message)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
