package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gymbuddy-api/models"
)

func setupChatTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open gorm: %v", err)
	}

	return db, mock
}

func expectNoChatRoom(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT (.+) FROM `chat_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "participants", "created_at"}))
}

func expectChatRoom(mock sqlmock.Sqlmock, roomID string) {
	rows := sqlmock.NewRows([]string{"id", "participants", "created_at"}).
		AddRow(roomID, []byte(`["user-a","user-b"]`), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM `chat_rooms`").WillReturnRows(rows)
}

func TestSendMessageWithoutRoomIsRejected(t *testing.T) {
	db, mock := setupChatTestDB(t)
	service := NewChatService(db, NewChatHub(zap.NewNop()), zap.NewNop())

	expectNoChatRoom(mock)

	_, err := service.SendMessage("user-a", "user-b", "hello")
	assert.ErrorIs(t, err, ErrNotConnected)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestHistoryWithoutRoomIsRejected(t *testing.T) {
	db, mock := setupChatTestDB(t)
	service := NewChatService(db, NewChatHub(zap.NewNop()), zap.NewNop())

	expectNoChatRoom(mock)

	_, err := service.History("user-a", "user-b")
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestSubscribeWithoutRoomIsRejected(t *testing.T) {
	db, mock := setupChatTestDB(t)
	service := NewChatService(db, NewChatHub(zap.NewNop()), zap.NewNop())

	expectNoChatRoom(mock)

	_, _, err := service.Subscribe("user-a", "user-b")
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestSendMessagePersistsAndPublishes(t *testing.T) {
	db, mock := setupChatTestDB(t)
	hub := NewChatHub(zap.NewNop())
	service := NewChatService(db, hub, zap.NewNop())

	roomID := models.ChatRoomID("user-a", "user-b")
	live, cancel := hub.Subscribe(roomID)
	defer cancel()

	expectChatRoom(mock, roomID)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `messages`").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	message, err := service.SendMessage("user-a", "user-b", "hello")
	require.NoError(t, err)
	require.NotNil(t, message)
	assert.Equal(t, uint(42), message.ID)
	assert.Equal(t, roomID, message.ChatRoomID)

	select {
	case delivered := <-live:
		assert.Equal(t, "hello", delivered.Text)
	case <-time.After(time.Second):
		t.Fatal("expected live delivery of the persisted message")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}
