package services

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gymbuddy-api/models"
)

// ConnectionStore is the persistence surface the workflow needs. The gorm
// repository implements it; tests swap in an in-memory version.
type ConnectionStore interface {
	GetUser(id string) (*models.User, error)
	PendingFrom(senderID, receiverID string) (*models.ConnectionRequest, error)
	AreFriends(userA, userB string) (bool, error)
	CreateRequest(request *models.ConnectionRequest) error
	DeleteRequest(id uint) error
	AcceptRequest(request *models.ConnectionRequest) error
	FriendIDs(userID string) ([]string, error)
	Friends(userID string) ([]models.User, error)
	IncomingRequests(userID string) ([]models.ConnectionRequest, error)
	SentRequests(userID string) ([]models.ConnectionRequest, error)
}

var (
	ErrSelfRequest     = errors.New("cannot send a connection request to yourself")
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyFriends  = errors.New("already connected with this user")
	ErrRequestExists   = errors.New("a connection request is already pending")
	ErrIncomingPending = errors.New("this user already sent you a request")
	ErrRequestNotFound = errors.New("connection request not found")
)

type ConnectionService struct {
	store  ConnectionStore
	logger *zap.Logger
}

func NewConnectionService(store ConnectionStore, logger *zap.Logger) *ConnectionService {
	return &ConnectionService{
		store:  store,
		logger: logger,
	}
}

// SendRequest validates and creates a pending request from fromID to toID.
// All validation happens before any write. If the target already has a
// request waiting for the caller, the new request is rejected so the caller
// accepts the existing one instead of creating a mutual-pending state.
func (s *ConnectionService) SendRequest(fromID, toID string) (*models.ConnectionRequest, error) {
	if fromID == toID {
		return nil, ErrSelfRequest
	}

	target, err := s.store.GetUser(toID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	friends, err := s.store.AreFriends(fromID, toID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	existing, err := s.store.PendingFrom(fromID, toID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRequestExists
	}

	incoming, err := s.store.PendingFrom(toID, fromID)
	if err != nil {
		return nil, err
	}
	if incoming != nil {
		return nil, ErrIncomingPending
	}

	sender, err := s.store.GetUser(fromID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, ErrUserNotFound
	}

	request := &models.ConnectionRequest{
		SenderID:   fromID,
		ReceiverID: toID,
		SenderName: sender.Name,
		Status:     models.ConnectionRequestStatusPending,
	}
	if err := s.store.CreateRequest(request); err != nil {
		return nil, err
	}

	s.logger.Info("connection request sent",
		zap.String("sender_id", fromID),
		zap.String("receiver_id", toID))

	return request, nil
}

// Accept applies the three-part acceptance atomically via the store: chat
// room creation, pending-request removal and friendship creation.
func (s *ConnectionService) Accept(selfID, requesterID string) error {
	request, err := s.store.PendingFrom(requesterID, selfID)
	if err != nil {
		return err
	}
	if request == nil {
		return ErrRequestNotFound
	}

	if err := s.store.AcceptRequest(request); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	s.logger.Info("connection request accepted",
		zap.String("requester_id", requesterID),
		zap.String("accepter_id", selfID),
		zap.String("chat_room_id", models.ChatRoomID(requesterID, selfID)))

	return nil
}

// Decline removes a pending request without creating anything.
func (s *ConnectionService) Decline(selfID, requesterID string) error {
	request, err := s.store.PendingFrom(requesterID, selfID)
	if err != nil {
		return err
	}
	if request == nil {
		return ErrRequestNotFound
	}
	return s.store.DeleteRequest(request.ID)
}

// Status computes the single tagged state of the (self, other) pair. The
// precedence is friends > request_received > request_sent > none so a stale
// pending row can never mask a completed friendship.
func (s *ConnectionService) Status(selfID, otherID string) (models.ConnectionStatus, error) {
	friends, err := s.store.AreFriends(selfID, otherID)
	if err != nil {
		return "", err
	}
	if friends {
		return models.ConnectionStatusFriends, nil
	}

	received, err := s.store.PendingFrom(otherID, selfID)
	if err != nil {
		return "", err
	}
	if received != nil {
		return models.ConnectionStatusRequestReceived, nil
	}

	sent, err := s.store.PendingFrom(selfID, otherID)
	if err != nil {
		return "", err
	}
	if sent != nil {
		return models.ConnectionStatusRequestSent, nil
	}

	return models.ConnectionStatusNone, nil
}

func (s *ConnectionService) Friends(userID string) ([]models.User, error) {
	return s.store.Friends(userID)
}

func (s *ConnectionService) FriendIDs(userID string) ([]string, error) {
	return s.store.FriendIDs(userID)
}

func (s *ConnectionService) IncomingRequests(userID string) ([]models.ConnectionRequest, error) {
	return s.store.IncomingRequests(userID)
}

func (s *ConnectionService) SentRequests(userID string) ([]models.ConnectionRequest, error) {
	return s.store.SentRequests(userID)
}
