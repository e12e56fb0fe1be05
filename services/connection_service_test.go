package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gymbuddy-api/models"
)

// mockConnectionStore is an in-memory ConnectionStore. AcceptRequest applies
// its three writes together, mirroring the transactional repository.
type mockConnectionStore struct {
	users       map[string]*models.User
	requests    map[uint]*models.ConnectionRequest
	friendships []models.Friendship
	chatRooms   map[string]*models.ChatRoom
	nextID      uint
}

func newMockConnectionStore(users ...*models.User) *mockConnectionStore {
	store := &mockConnectionStore{
		users:     make(map[string]*models.User),
		requests:  make(map[uint]*models.ConnectionRequest),
		chatRooms: make(map[string]*models.ChatRoom),
		nextID:    1,
	}
	for _, user := range users {
		store.users[user.ID] = user
	}
	return store
}

func (m *mockConnectionStore) GetUser(id string) (*models.User, error) {
	return m.users[id], nil
}

func (m *mockConnectionStore) PendingFrom(senderID, receiverID string) (*models.ConnectionRequest, error) {
	for _, request := range m.requests {
		if request.SenderID == senderID && request.ReceiverID == receiverID {
			return request, nil
		}
	}
	return nil, nil
}

func (m *mockConnectionStore) AreFriends(userA, userB string) (bool, error) {
	user1, user2 := models.CanonicalPair(userA, userB)
	for _, friendship := range m.friendships {
		if friendship.User1ID == user1 && friendship.User2ID == user2 {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockConnectionStore) CreateRequest(request *models.ConnectionRequest) error {
	request.ID = m.nextID
	m.nextID++
	m.requests[request.ID] = request
	return nil
}

func (m *mockConnectionStore) DeleteRequest(id uint) error {
	delete(m.requests, id)
	return nil
}

func (m *mockConnectionStore) AcceptRequest(request *models.ConnectionRequest) error {
	if _, exists := m.requests[request.ID]; !exists {
		return gorm.ErrRecordNotFound
	}

	roomID := models.ChatRoomID(request.SenderID, request.ReceiverID)
	if _, exists := m.chatRooms[roomID]; !exists {
		user1, user2 := models.CanonicalPair(request.SenderID, request.ReceiverID)
		m.chatRooms[roomID] = &models.ChatRoom{
			ID:           roomID,
			Participants: models.StringSlice{user1, user2},
		}
	}
	delete(m.requests, request.ID)

	user1, user2 := models.CanonicalPair(request.SenderID, request.ReceiverID)
	m.friendships = append(m.friendships, models.Friendship{User1ID: user1, User2ID: user2})
	return nil
}

func (m *mockConnectionStore) FriendIDs(userID string) ([]string, error) {
	ids := make([]string, 0)
	for _, friendship := range m.friendships {
		if friendship.User1ID == userID {
			ids = append(ids, friendship.User2ID)
		} else if friendship.User2ID == userID {
			ids = append(ids, friendship.User1ID)
		}
	}
	return ids, nil
}

func (m *mockConnectionStore) Friends(userID string) ([]models.User, error) {
	ids, _ := m.FriendIDs(userID)
	friends := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			friends = append(friends, *user)
		}
	}
	return friends, nil
}

func (m *mockConnectionStore) IncomingRequests(userID string) ([]models.ConnectionRequest, error) {
	requests := make([]models.ConnectionRequest, 0)
	for _, request := range m.requests {
		if request.ReceiverID == userID {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (m *mockConnectionStore) SentRequests(userID string) ([]models.ConnectionRequest, error) {
	requests := make([]models.ConnectionRequest, 0)
	for _, request := range m.requests {
		if request.SenderID == userID {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func newTestConnectionService(store ConnectionStore) *ConnectionService {
	return NewConnectionService(store, zap.NewNop())
}

func testUsers() (*models.User, *models.User) {
	return &models.User{ID: "user-a", Name: "Alice"}, &models.User{ID: "user-b", Name: "Bob"}
}

func TestSendRequestToSelf(t *testing.T) {
	alice, _ := testUsers()
	service := newTestConnectionService(newMockConnectionStore(alice))

	_, err := service.SendRequest("user-a", "user-a")
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestSendRequestToUnknownUser(t *testing.T) {
	alice, _ := testUsers()
	service := newTestConnectionService(newMockConnectionStore(alice))

	_, err := service.SendRequest("user-a", "user-missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendRequestTwice(t *testing.T) {
	alice, bob := testUsers()
	service := newTestConnectionService(newMockConnectionStore(alice, bob))

	_, err := service.SendRequest("user-a", "user-b")
	require.NoError(t, err)

	_, err = service.SendRequest("user-a", "user-b")
	assert.ErrorIs(t, err, ErrRequestExists)
}

func TestMutualRequestRejected(t *testing.T) {
	// If Bob already has a request waiting from Alice, his own request is
	// rejected and he is pointed at the waiting one.
	alice, bob := testUsers()
	service := newTestConnectionService(newMockConnectionStore(alice, bob))

	_, err := service.SendRequest("user-a", "user-b")
	require.NoError(t, err)

	_, err = service.SendRequest("user-b", "user-a")
	assert.ErrorIs(t, err, ErrIncomingPending)
}

func TestSendRequestStatusTransitions(t *testing.T) {
	alice, bob := testUsers()
	service := newTestConnectionService(newMockConnectionStore(alice, bob))

	status, err := service.Status("user-a", "user-b")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusNone, status)

	request, err := service.SendRequest("user-a", "user-b")
	require.NoError(t, err)
	assert.Equal(t, "Alice", request.SenderName)

	status, err = service.Status("user-a", "user-b")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusRequestSent, status)

	status, err = service.Status("user-b", "user-a")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusRequestReceived, status)
}

func TestAcceptRequest(t *testing.T) {
	alice, bob := testUsers()
	store := newMockConnectionStore(alice, bob)
	service := newTestConnectionService(store)

	_, err := service.SendRequest("user-a", "user-b")
	require.NoError(t, err)

	require.NoError(t, service.Accept("user-b", "user-a"))

	// Both sides see the friendship
	status, err := service.Status("user-a", "user-b")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusFriends, status)

	status, err = service.Status("user-b", "user-a")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusFriends, status)

	// The pending request is gone
	pending, err := store.PendingFrom("user-a", "user-b")
	require.NoError(t, err)
	assert.Nil(t, pending)

	// The chat room exists and both participants derive the same ID
	room := store.chatRooms[models.ChatRoomID("user-a", "user-b")]
	require.NotNil(t, room)
	assert.Equal(t, models.ChatRoomID("user-b", "user-a"), room.ID)
}

func TestAcceptWithoutPendingRequest(t *testing.T) {
	alice, bob := testUsers()
	service := newTestConnectionService(newMockConnectionStore(alice, bob))

	err := service.Accept("user-b", "user-a")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestDeclineRequest(t *testing.T) {
	alice, bob := testUsers()
	service := newTestConnectionService(newMockConnectionStore(alice, bob))

	_, err := service.SendRequest("user-a", "user-b")
	require.NoError(t, err)

	require.NoError(t, service.Decline("user-b", "user-a"))

	status, err := service.Status("user-a", "user-b")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusNone, status)

	// Declining does not create a friendship, so Alice may ask again
	_, err = service.SendRequest("user-a", "user-b")
	assert.NoError(t, err)
}

func TestSendRequestWhenAlreadyFriends(t *testing.T) {
	alice, bob := testUsers()
	store := newMockConnectionStore(alice, bob)
	service := newTestConnectionService(store)

	_, err := service.SendRequest("user-a", "user-b")
	require.NoError(t, err)
	require.NoError(t, service.Accept("user-b", "user-a"))

	_, err = service.SendRequest("user-a", "user-b")
	assert.ErrorIs(t, err, ErrAlreadyFriends)
}

// staleRequestStore hands out a pending request that the backing store no
// longer holds, mimicking a decline landing between the read and the accept.
type staleRequestStore struct {
	*mockConnectionStore
	stale *models.ConnectionRequest
}

func (s *staleRequestStore) PendingFrom(senderID, receiverID string) (*models.ConnectionRequest, error) {
	return s.stale, nil
}

func TestAcceptLosesRaceWithDecline(t *testing.T) {
	alice, bob := testUsers()
	base := newMockConnectionStore(alice, bob)
	store := &staleRequestStore{
		mockConnectionStore: base,
		stale: &models.ConnectionRequest{
			ID:         99,
			SenderID:   "user-a",
			ReceiverID: "user-b",
			Status:     models.ConnectionRequestStatusPending,
		},
	}
	service := newTestConnectionService(store)

	err := service.Accept("user-b", "user-a")
	assert.ErrorIs(t, err, ErrRequestNotFound)

	// The lost race must not leave a friendship or a chat room behind
	friends, err := base.AreFriends("user-a", "user-b")
	require.NoError(t, err)
	assert.False(t, friends)
	assert.Empty(t, base.chatRooms)
}

func TestStatusPrefersFriendsOverStalePending(t *testing.T) {
	// A violated invariant (friendship plus leftover pending row) must still
	// report friends for display safety.
	alice, bob := testUsers()
	store := newMockConnectionStore(alice, bob)
	service := newTestConnectionService(store)

	_ = store.CreateRequest(&models.ConnectionRequest{
		SenderID:   "user-a",
		ReceiverID: "user-b",
		SenderName: "Alice",
		Status:     models.ConnectionRequestStatusPending,
	})
	store.friendships = append(store.friendships, models.Friendship{User1ID: "user-a", User2ID: "user-b"})

	status, err := service.Status("user-b", "user-a")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusFriends, status)
}
