package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"gymbuddy-api/models"
)

type ExerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// ListCatalog returns the full exercise catalog in seed order.
func (r *ExerciseRepository) ListCatalog() ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := r.db.Order("id").Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

// GetLog retrieves one daily log. A missing row is not an error; the caller
// gets (nil, nil) and treats it as an empty log.
func (r *ExerciseRepository) GetLog(userID, date string) (*models.DailyLog, error) {
	var log models.DailyLog
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

// SaveLog performs a merge-write: only fields present in the update are
// written, everything else in the stored row is preserved. Repeating the
// same payload is a no-op beyond the timestamp.
func (r *ExerciseRepository) SaveLog(userID, date string, update models.DailyLogUpdate) error {
	var existing models.DailyLog
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&existing).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		log := models.DailyLog{
			UserID: userID,
			Date:   date,
		}
		if update.Entries != nil {
			log.Entries = *update.Entries
		}
		if update.Notes != nil {
			log.Notes = update.Notes
		}
		return r.db.Create(&log).Error
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if update.Entries != nil {
		updates["entries"] = *update.Entries
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}

	return r.db.Model(&existing).Updates(updates).Error
}

// ListLogs returns every (date, log) pair for a user, oldest date first.
func (r *ExerciseRepository) ListLogs(userID string) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	if err := r.db.Where("user_id = ?", userID).Order("date").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
