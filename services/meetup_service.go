package services

import (
	"errors"
	"math"
	"sort"

	"gorm.io/gorm"

	"gymbuddy-api/models"
	"gymbuddy-api/repositories"
)

var ErrNoGymLocation = errors.New("set your gym location first")

// MeetupService ranks other users by distance from the caller's registered
// gym so the directory only shows unconnected gym-goers, closest first.
type MeetupService struct {
	db             *gorm.DB
	connectionRepo *repositories.ConnectionRepository
}

func NewMeetupService(db *gorm.DB) *MeetupService {
	return &MeetupService{
		db:             db,
		connectionRepo: repositories.NewConnectionRepository(db),
	}
}

// NearbyUsers lists every other user with numeric gym coordinates, excluding
// existing friends, sorted ascending by distance.
func (s *MeetupService) NearbyUsers(userID string) ([]models.NearbyUserResponse, error) {
	var self models.User
	if err := s.db.First(&self, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	if !self.HasGymCoordinates() {
		return nil, ErrNoGymLocation
	}

	friendIDs, err := s.connectionRepo.FriendIDs(userID)
	if err != nil {
		return nil, err
	}

	exclude := make(map[string]bool, len(friendIDs)+1)
	exclude[userID] = true
	for _, id := range friendIDs {
		exclude[id] = true
	}

	var candidates []models.User
	if err := s.db.Where("gym_lat IS NOT NULL AND gym_lng IS NOT NULL").Find(&candidates).Error; err != nil {
		return nil, err
	}

	return RankByDistance(&self, candidates, exclude), nil
}

// RankByDistance computes the directory listing. Users without numeric
// coordinates and excluded IDs are dropped; the rest come back sorted
// ascending by great-circle distance from self.
func RankByDistance(self *models.User, candidates []models.User, exclude map[string]bool) []models.NearbyUserResponse {
	nearby := make([]models.NearbyUserResponse, 0, len(candidates))
	for _, candidate := range candidates {
		if exclude[candidate.ID] {
			continue
		}
		if !candidate.HasGymCoordinates() {
			continue
		}

		distance := calculateDistance(*self.GymLat, *self.GymLng, *candidate.GymLat, *candidate.GymLng)
		nearby = append(nearby, models.NearbyUserResponse{
			ID:         candidate.ID,
			Name:       candidate.Name,
			Avatar:     candidate.Avatar,
			DistanceKm: distance,
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	return nearby
}

// calculateDistance returns the great-circle distance between two
// coordinates in kilometers (haversine formula).
func calculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0

	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
