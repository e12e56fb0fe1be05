package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gymbuddy-api/models"
)

// setupTestDB wires gorm to a sqlmock connection
func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

func TestGetLogMissingRowIsNotAnError(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewExerciseRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `daily_logs`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "date", "entries", "notes"}))

	log, err := repo.GetLog("user-a", "2024-03-01")
	if err != nil {
		t.Fatalf("Expected no error for missing log, got %v", err)
	}
	if log != nil {
		t.Errorf("Expected nil log for missing row, got %+v", log)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestGetLogScansEntries(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewExerciseRepository(db)

	entriesJSON := `[{"name":"Squat","sets":[{"reps":"5","weight":"100"}]}]`
	rows := sqlmock.NewRows([]string{"id", "user_id", "date", "entries", "notes"}).
		AddRow(1, "user-a", "2024-03-01", []byte(entriesJSON), nil)
	mock.ExpectQuery("SELECT (.+) FROM `daily_logs`").WillReturnRows(rows)

	log, err := repo.GetLog("user-a", "2024-03-01")
	if err != nil {
		t.Fatalf("Failed to get log: %v", err)
	}
	if log == nil {
		t.Fatal("Expected a log, got nil")
	}
	if len(log.Entries) != 1 || log.Entries[0].Name != "Squat" {
		t.Errorf("Unexpected entries: %+v", log.Entries)
	}
	if log.Entries[0].Sets[0].Weight != "100" {
		t.Errorf("Unexpected set weight: %q", log.Entries[0].Sets[0].Weight)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestSaveLogCreatesWhenMissing(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewExerciseRepository(db)

	// No existing row for the (user, date) pair
	mock.ExpectQuery("SELECT (.+) FROM `daily_logs`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `daily_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	entries := models.LoggedExerciseList{
		{Name: "Squat", Sets: []models.SetEntry{{Reps: "5", Weight: "100"}}},
	}
	err := repo.SaveLog("user-a", "2024-03-01", models.DailyLogUpdate{Entries: &entries})
	if err != nil {
		t.Fatalf("Failed to save log: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestSaveLogUpdatesExistingRow(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewExerciseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "date", "entries", "notes"}).
		AddRow(7, "user-a", "2024-03-01", []byte(`[]`), "old notes")
	mock.ExpectQuery("SELECT (.+) FROM `daily_logs`").WillReturnRows(rows)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `daily_logs`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entries := models.LoggedExerciseList{
		{Name: "Deadlift", Sets: []models.SetEntry{{Reps: "3", Weight: "140"}}},
	}
	err := repo.SaveLog("user-a", "2024-03-01", models.DailyLogUpdate{Entries: &entries})
	if err != nil {
		t.Fatalf("Failed to merge log: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}
