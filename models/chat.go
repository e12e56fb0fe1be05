package models

import "time"

// ChatRoom is the two-party message thread created when a connection request
// is accepted. Its ID is derived from the participant IDs so both sides
// compute the same room without a lookup.
type ChatRoom struct {
	ID           string      `json:"id" gorm:"primaryKey;size:191"`
	Participants StringSlice `json:"participants" gorm:"type:json"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Message is one immutable chat message. The auto-increment ID breaks ties
// between messages that share a creation timestamp, so ordering is stable
// under concurrent sends.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ChatRoomID string    `json:"chat_room_id" gorm:"not null;size:191;index:idx_messages_room_created,priority:1"`
	SenderID   string    `json:"sender_id" gorm:"not null;size:191"`
	Text       string    `json:"text" gorm:"not null;size:2000"`
	CreatedAt  time.Time `json:"created_at" gorm:"index:idx_messages_room_created,priority:2"`
}

// ChatRoomID builds the deterministic room ID for a pair of users. Sorting
// the IDs first makes it independent of who asks.
func ChatRoomID(userA, userB string) string {
	a, b := CanonicalPair(userA, userB)
	return a + "_" + b
}
