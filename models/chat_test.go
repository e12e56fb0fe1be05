package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestChatRoomIDIsOrderIndependent(t *testing.T) {
	assert.Equal(t, ChatRoomID("user-a", "user-b"), ChatRoomID("user-b", "user-a"))
	assert.Equal(t, "user-a_user-b", ChatRoomID("user-b", "user-a"))
}

func TestMessageHistoryIndexColumns(t *testing.T) {
	parsed, err := schema.Parse(&Message{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	// History reads walk one room ordered by creation time, so the composite
	// index must lead with the room and then the timestamp.
	index, ok := parsed.ParseIndexes()["idx_messages_room_created"]
	require.True(t, ok, "expected idx_messages_room_created on messages")
	require.Len(t, index.Fields, 2)
	assert.Equal(t, "ChatRoomID", index.Fields[0].Name)
	assert.Equal(t, "CreatedAt", index.Fields[1].Name)
}

func TestCanonicalPair(t *testing.T) {
	a, b := CanonicalPair("zeta", "alpha")
	assert.Equal(t, "alpha", a)
	assert.Equal(t, "zeta", b)

	a, b = CanonicalPair("alpha", "zeta")
	assert.Equal(t, "alpha", a)
	assert.Equal(t, "zeta", b)
}
