package services

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gymbuddy-api/models"
)

var ErrNotConnected = errors.New("users are not connected")

// ChatService persists messages and feeds the live hub. A chat room exists
// exactly when a connection request was accepted, so room existence doubles
// as the friendship check.
type ChatService struct {
	db     *gorm.DB
	hub    *ChatHub
	logger *zap.Logger
}

func NewChatService(db *gorm.DB, hub *ChatHub, logger *zap.Logger) *ChatService {
	return &ChatService{
		db:     db,
		hub:    hub,
		logger: logger,
	}
}

// SendMessage appends a message to the pair's room and publishes it to live
// subscribers. Empty or whitespace-only text is a no-op, not an error; the
// returned message is nil in that case.
func (s *ChatService) SendMessage(senderID, friendID, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	roomID := models.ChatRoomID(senderID, friendID)
	if err := s.requireRoom(roomID); err != nil {
		return nil, err
	}

	message := models.Message{
		ChatRoomID: roomID,
		SenderID:   senderID,
		Text:       text,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	s.hub.Publish(message)
	return &message, nil
}

// History returns the full ordered message feed of the pair's room,
// ascending by creation time with the row ID breaking timestamp ties.
func (s *ChatService) History(selfID, friendID string) ([]models.Message, error) {
	roomID := models.ChatRoomID(selfID, friendID)
	if err := s.requireRoom(roomID); err != nil {
		return nil, err
	}

	var messages []models.Message
	err := s.db.Where("chat_room_id = ?", roomID).
		Order("created_at, id").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Subscribe opens a live subscription on the pair's room. The caller owns
// the cancel func; after it returns nothing more is delivered.
func (s *ChatService) Subscribe(selfID, friendID string) (<-chan models.Message, func(), error) {
	roomID := models.ChatRoomID(selfID, friendID)
	if err := s.requireRoom(roomID); err != nil {
		return nil, nil, err
	}

	ch, cancel := s.hub.Subscribe(roomID)
	s.logger.Debug("chat subscription opened", zap.String("chat_room_id", roomID))
	return ch, cancel, nil
}

func (s *ChatService) requireRoom(roomID string) error {
	var room models.ChatRoom
	err := s.db.First(&room, "id = ?", roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotConnected
		}
		return err
	}
	return nil
}
