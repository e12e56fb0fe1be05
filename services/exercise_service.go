package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gymbuddy-api/models"
	"gymbuddy-api/utils"
)

// ExerciseStore is the persistence surface for logs and the catalog.
type ExerciseStore interface {
	ListCatalog() ([]models.Exercise, error)
	GetLog(userID, date string) (*models.DailyLog, error)
	SaveLog(userID, date string, update models.DailyLogUpdate) error
	ListLogs(userID string) ([]models.DailyLog, error)
}

var ErrInvalidLogDate = errors.New("date must be in YYYY-MM-DD format")

// catalogCacheKey is the cache key for the serialized catalog snapshot.
// The catalog is reference data with no expiry; staleness is accepted.
const catalogCacheKey = "exercises"

type ExerciseService struct {
	store  ExerciseStore
	cache  *redis.Client
	logger *zap.Logger
}

func NewExerciseService(store ExerciseStore, cache *redis.Client, logger *zap.Logger) *ExerciseService {
	return &ExerciseService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Catalog returns the exercise catalog, served from the cache when present.
// A cache failure falls back to the store; the catalog read never fails
// because of the cache alone.
func (s *ExerciseService) Catalog(ctx context.Context) ([]models.Exercise, error) {
	cached, err := s.cache.Get(ctx, catalogCacheKey).Bytes()
	if err == nil {
		var exercises []models.Exercise
		if err := json.Unmarshal(cached, &exercises); err == nil {
			return exercises, nil
		}
		s.logger.Warn("discarding unreadable catalog cache entry")
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("catalog cache read failed", zap.Error(err))
	}

	exercises, err := s.store.ListCatalog()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(exercises)
	if err == nil {
		if err := s.cache.Set(ctx, catalogCacheKey, data, 0).Err(); err != nil {
			s.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}

	return exercises, nil
}

// GroupCatalog groups exercises by the first letter of their name for
// presentation. Letters come out sorted; the order within a letter is the
// catalog order.
func GroupCatalog(exercises []models.Exercise) []models.CatalogGroup {
	grouped := make(map[string][]models.Exercise)
	letters := make([]string, 0)

	for _, exercise := range exercises {
		if exercise.Name == "" {
			continue
		}
		first, _ := utf8.DecodeRuneInString(exercise.Name)
		letter := strings.ToUpper(string(first))
		if _, seen := grouped[letter]; !seen {
			letters = append(letters, letter)
		}
		grouped[letter] = append(grouped[letter], exercise)
	}

	sort.Strings(letters)

	groups := make([]models.CatalogGroup, 0, len(letters))
	for _, letter := range letters {
		groups = append(groups, models.CatalogGroup{
			Letter:    letter,
			Exercises: grouped[letter],
		})
	}
	return groups
}

// FlattenCatalog is the inverse of GroupCatalog.
func FlattenCatalog(groups []models.CatalogGroup) []models.Exercise {
	exercises := make([]models.Exercise, 0)
	for _, group := range groups {
		exercises = append(exercises, group.Exercises...)
	}
	return exercises
}

// Log returns the daily log for a date; a missing row yields an empty log,
// never an error.
func (s *ExerciseService) Log(userID, date string) (*models.DailyLog, error) {
	if !utils.IsValidLogDate(date) {
		return nil, ErrInvalidLogDate
	}

	log, err := s.store.GetLog(userID, date)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return &models.DailyLog{
			UserID:  userID,
			Date:    date,
			Entries: models.LoggedExerciseList{},
		}, nil
	}
	return log, nil
}

// SaveLog merge-writes the daily log for a date.
func (s *ExerciseService) SaveLog(userID, date string, update models.DailyLogUpdate) error {
	if !utils.IsValidLogDate(date) {
		return ErrInvalidLogDate
	}
	return s.store.SaveLog(userID, date, update)
}

// Logs returns every daily log of the user, oldest first.
func (s *ExerciseService) Logs(userID string) ([]models.DailyLog, error) {
	return s.store.ListLogs(userID)
}

// AverageWeightByDate scans every log of the user and averages the numeric
// weights of the named exercise per date. Matching is exact and
// case-sensitive. Sets whose weight does not parse are skipped; dates with
// no parsing set are omitted rather than zero-filled.
func (s *ExerciseService) AverageWeightByDate(userID, exerciseName string) (map[string]float64, error) {
	logs, err := s.store.ListLogs(userID)
	if err != nil {
		return nil, err
	}

	averages := make(map[string]float64)
	for _, log := range logs {
		sum := 0.0
		count := 0
		for _, entry := range log.Entries {
			if entry.Name != exerciseName {
				continue
			}
			for _, set := range entry.Sets {
				weight, err := strconv.ParseFloat(strings.TrimSpace(set.Weight), 64)
				if err != nil {
					continue
				}
				sum += weight
				count++
			}
		}
		if count > 0 {
			averages[log.Date] = math.Round(sum/float64(count)*10) / 10
		}
	}

	return averages, nil
}
