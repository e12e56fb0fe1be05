package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gymbuddy-api/models"
	"gymbuddy-api/repositories"
	"gymbuddy-api/services"
)

type ConnectionController struct {
	connectionService *services.ConnectionService
}

func NewConnectionController(db *gorm.DB, logger *zap.Logger) *ConnectionController {
	connectionRepo := repositories.NewConnectionRepository(db)
	connectionService := services.NewConnectionService(connectionRepo, logger)

	return &ConnectionController{
		connectionService: connectionService,
	}
}

// SendRequest handles POST /api/v1/connections/requests/:user_id
func (cc *ConnectionController) SendRequest(c *gin.Context) {
	senderID := c.GetString("user_id")
	receiverID := c.Param("user_id")

	_, err := cc.connectionService.SendRequest(senderID, receiverID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send a connection request to yourself"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrAlreadyFriends):
			c.JSON(http.StatusConflict, gin.H{"error": "Already connected with this user"})
		case errors.Is(err, services.ErrRequestExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Connection request already exists"})
		case errors.Is(err, services.ErrIncomingPending):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "This user already sent you a request",
				"message": "Accept the waiting request instead of sending a new one",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send connection request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection request sent successfully"})
}

// AcceptRequest handles POST /api/v1/connections/requests/:user_id/accept
// Acceptance creates the chat room, removes the pending request and records
// the friendship in one transaction.
func (cc *ConnectionController) AcceptRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	requesterID := c.Param("user_id")

	if err := cc.connectionService.Accept(userID, requesterID); err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Connection request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept connection request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Connection request accepted successfully",
		"chat_room_id": models.ChatRoomID(userID, requesterID),
	})
}

// DeclineRequest handles POST /api/v1/connections/requests/:user_id/decline
func (cc *ConnectionController) DeclineRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	requesterID := c.Param("user_id")

	if err := cc.connectionService.Decline(userID, requesterID); err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Connection request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decline connection request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection request declined"})
}

// GetStatus handles GET /api/v1/connections/status/:user_id
func (cc *ConnectionController) GetStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	otherID := c.Param("user_id")

	status, err := cc.connectionService.Status(userID, otherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch connection status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// GetFriends handles GET /api/v1/connections/friends
func (cc *ConnectionController) GetFriends(c *gin.Context) {
	userID := c.GetString("user_id")

	friends, err := cc.connectionService.Friends(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	for i := range friends {
		friends[i].Password = ""
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// GetPendingRequests handles GET /api/v1/connections/requests
func (cc *ConnectionController) GetPendingRequests(c *gin.Context) {
	userID := c.GetString("user_id")

	requests, err := cc.connectionService.IncomingRequests(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch connection requests"})
		return
	}

	for i := range requests {
		requests[i].Sender.Password = ""
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// GetSentRequests handles GET /api/v1/connections/requests/sent
func (cc *ConnectionController) GetSentRequests(c *gin.Context) {
	userID := c.GetString("user_id")

	requests, err := cc.connectionService.SentRequests(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sent requests"})
		return
	}

	for i := range requests {
		requests[i].Receiver.Password = ""
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
