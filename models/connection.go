package models

import "time"

type ConnectionRequestStatus string

const (
	ConnectionRequestStatusPending ConnectionRequestStatus = "pending"
)

// ConnectionStatus is the single tagged state of a (self, other) pair,
// computed from friendships and pending requests in one place.
type ConnectionStatus string

const (
	ConnectionStatusNone            ConnectionStatus = "none"
	ConnectionStatusRequestSent     ConnectionStatus = "request_sent"
	ConnectionStatusRequestReceived ConnectionStatus = "request_received"
	ConnectionStatusFriends         ConnectionStatus = "friends"
)

// ConnectionRequest is a directed pending edge from sender to receiver. One
// row serves both sides: the receiver queries it as an incoming request, the
// sender as a sent one. SenderName is snapshotted for cheap listing.
type ConnectionRequest struct {
	ID         uint                    `json:"id" gorm:"primaryKey"`
	SenderID   string                  `json:"sender_id" gorm:"not null;size:191;index"`
	ReceiverID string                  `json:"receiver_id" gorm:"not null;size:191;index"`
	SenderName string                  `json:"sender_name" gorm:"not null;size:255"`
	Status     ConnectionRequestStatus `json:"status" gorm:"not null;default:'pending';size:20"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`

	Sender   User `json:"sender" gorm:"foreignKey:SenderID"`
	Receiver User `json:"receiver" gorm:"foreignKey:ReceiverID"`
}

// Friendship is the symmetric relation created only by accepting a request.
// User1ID is always the smaller ID so each pair has exactly one row.
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	User1ID   string    `json:"user1_id" gorm:"not null;size:191;uniqueIndex:idx_friendships_pair"`
	User2ID   string    `json:"user2_id" gorm:"not null;size:191;uniqueIndex:idx_friendships_pair"`
	CreatedAt time.Time `json:"created_at"`

	User1 User `json:"user1" gorm:"foreignKey:User1ID"`
	User2 User `json:"user2" gorm:"foreignKey:User2ID"`
}

// CanonicalPair orders two user IDs the way Friendship stores them.
func CanonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
