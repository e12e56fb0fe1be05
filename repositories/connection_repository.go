package repositories

import (
	"errors"

	"gorm.io/gorm"

	"gymbuddy-api/models"
)

type ConnectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

func (r *ConnectionRepository) GetUser(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// PendingFrom returns the pending request sent by sender to receiver, or nil.
func (r *ConnectionRepository) PendingFrom(senderID, receiverID string) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	err := r.db.Where("sender_id = ? AND receiver_id = ? AND status = ?",
		senderID, receiverID, models.ConnectionRequestStatusPending).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *ConnectionRepository) AreFriends(userA, userB string) (bool, error) {
	user1, user2 := models.CanonicalPair(userA, userB)

	var friendship models.Friendship
	err := r.db.Where("user1_id = ? AND user2_id = ?", user1, user2).First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *ConnectionRepository) CreateRequest(request *models.ConnectionRequest) error {
	return r.db.Create(request).Error
}

func (r *ConnectionRepository) DeleteRequest(id uint) error {
	return r.db.Delete(&models.ConnectionRequest{}, "id = ?", id).Error
}

// AcceptRequest applies the acceptance as one transaction: the chat room is
// created if missing, the pending request is removed and the friendship row
// is written. Either all three apply or none do, so a transient failure can
// never surface a half-accepted state.
func (r *ConnectionRepository) AcceptRequest(request *models.ConnectionRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		roomID := models.ChatRoomID(request.SenderID, request.ReceiverID)

		var room models.ChatRoom
		if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			user1, user2 := models.CanonicalPair(request.SenderID, request.ReceiverID)
			room = models.ChatRoom{
				ID:           roomID,
				Participants: models.StringSlice{user1, user2},
			}
			if err := tx.Create(&room).Error; err != nil {
				return err
			}
		}

		// The request was read before the transaction started; a concurrent
		// decline may have removed it since. Deleting zero rows aborts the
		// whole acceptance instead of creating an unrequested friendship.
		res := tx.Delete(&models.ConnectionRequest{}, "id = ? AND status = ?",
			request.ID, models.ConnectionRequestStatusPending)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		user1, user2 := models.CanonicalPair(request.SenderID, request.ReceiverID)
		friendship := models.Friendship{
			User1ID: user1,
			User2ID: user2,
		}
		return tx.Create(&friendship).Error
	})
}

// FriendIDs returns all friend IDs for a user
func (r *ConnectionRepository) FriendIDs(userID string) ([]string, error) {
	var friendships []models.Friendship
	if err := r.db.Where("user1_id = ? OR user2_id = ?", userID, userID).Find(&friendships).Error; err != nil {
		return nil, err
	}

	friendIDs := make([]string, 0, len(friendships))
	for _, friendship := range friendships {
		if friendship.User1ID == userID {
			friendIDs = append(friendIDs, friendship.User2ID)
		} else {
			friendIDs = append(friendIDs, friendship.User1ID)
		}
	}

	return friendIDs, nil
}

// Friends hydrates friend details at read time; only IDs are persisted.
func (r *ConnectionRepository) Friends(userID string) ([]models.User, error) {
	friendIDs, err := r.FriendIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 {
		return []models.User{}, nil
	}

	var friends []models.User
	if err := r.db.Where("id IN ?", friendIDs).Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}

func (r *ConnectionRepository) IncomingRequests(userID string) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	err := r.db.Preload("Sender").
		Where("receiver_id = ? AND status = ?", userID, models.ConnectionRequestStatusPending).
		Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *ConnectionRepository) SentRequests(userID string) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	err := r.db.Preload("Receiver").
		Where("sender_id = ? AND status = ?", userID, models.ConnectionRequestStatusPending).
		Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
