package database

import (
	"fmt"

	"gorm.io/gorm"

	"gymbuddy-api/models"
)

// Exercise catalog reference data. Seeded once; the API treats the catalog
// as read-only afterwards.
var catalogExercises = []string{
	"Arnold Press",
	"Barbell Row",
	"Bench Press",
	"Bicep Curl",
	"Box Jump",
	"Bulgarian Split Squat",
	"Cable Crossover",
	"Calf Raise",
	"Chest Fly",
	"Chin Up",
	"Deadlift",
	"Dip",
	"Dumbbell Press",
	"Face Pull",
	"Front Squat",
	"Goblet Squat",
	"Hack Squat",
	"Hammer Curl",
	"Hip Thrust",
	"Incline Bench Press",
	"Lat Pulldown",
	"Lateral Raise",
	"Leg Curl",
	"Leg Extension",
	"Leg Press",
	"Lunge",
	"Overhead Press",
	"Plank",
	"Pull Up",
	"Push Up",
	"Romanian Deadlift",
	"Seated Row",
	"Shoulder Press",
	"Shrug",
	"Skull Crusher",
	"Squat",
	"Tricep Extension",
	"Tricep Pushdown",
	"Upright Row",
}

// SeedExercises populates the exercise catalog if it is empty.
func SeedExercises(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Exercise{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		fmt.Println("Exercise catalog already seeded, skipping")
		return nil
	}

	for _, name := range catalogExercises {
		if err := db.Create(&models.Exercise{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to seed exercise %q: %w", name, err)
		}
	}

	fmt.Printf("Seeded exercise catalog with %d exercises\n", len(catalogExercises))
	return nil
}
