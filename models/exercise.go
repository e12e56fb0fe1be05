package models

import "time"

// Exercise is one entry of the read-only exercise catalog. The catalog is
// seeded at startup and cached; this service never writes to it afterwards.
type Exercise struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:255"`
	CreatedAt time.Time `json:"created_at"`
}

// SetEntry is a single set of an exercise. Reps and weight are kept as the
// text the user typed; values that do not parse as numbers are skipped when
// computing statistics instead of failing the whole aggregation.
type SetEntry struct {
	Reps   string `json:"reps"`
	Weight string `json:"weight"`
}

// LoggedExercise is one exercise inside a daily log, with its sets in
// append order.
type LoggedExercise struct {
	Name string     `json:"name"`
	Sets []SetEntry `json:"sets"`
}

// DailyLog holds everything a user logged for one calendar date. At most one
// row exists per (user, date); saves are merge-writes so a partial update
// never erases unrelated fields.
type DailyLog struct {
	ID        uint               `json:"id" gorm:"primaryKey"`
	UserID    string             `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_daily_logs_user_date"`
	Date      string             `json:"date" gorm:"not null;size:10;uniqueIndex:idx_daily_logs_user_date"` // YYYY-MM-DD
	Entries   LoggedExerciseList `json:"entries" gorm:"type:json"`
	Notes     *string            `json:"notes" gorm:"size:1000"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// DailyLogUpdate carries the fields of a merge-write. Nil fields are left
// untouched in the stored row.
type DailyLogUpdate struct {
	Entries *LoggedExerciseList `json:"entries"`
	Notes   *string             `json:"notes"`
}

// CatalogGroup is one presentation group of the catalog, keyed by the first
// letter of the exercise name.
type CatalogGroup struct {
	Letter    string     `json:"letter"`
	Exercises []Exercise `json:"exercises"`
}
