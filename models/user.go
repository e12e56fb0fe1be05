package models

import (
	"time"
)

type User struct {
	ID            string  `json:"id" gorm:"primaryKey;size:191"`
	Name          string  `json:"name" gorm:"not null;size:255"`
	Email         string  `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password      string  `json:"-" gorm:"not null;size:255"`
	EmailVerified bool    `json:"email_verified" gorm:"default:false"`
	DateOfBirth   *string `json:"date_of_birth" gorm:"size:10"` // YYYY-MM-DD
	Avatar        *string `json:"avatar" gorm:"size:500"`

	// Registered gym location. Lat/Lng stay nil until the user picks a gym,
	// which keeps them out of the nearby directory.
	GymName    *string  `json:"gym_name" gorm:"size:255"`
	GymAddress *string  `json:"gym_address" gorm:"size:500"`
	GymPlaceID *string  `json:"gym_place_id" gorm:"size:191"`
	GymLat     *float64 `json:"gym_lat"`
	GymLng     *float64 `json:"gym_lng"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasGymCoordinates reports whether the user can appear in distance queries.
func (u *User) HasGymCoordinates() bool {
	return u.GymLat != nil && u.GymLng != nil
}

// NearbyUserResponse represents one row of the nearby-users directory
type NearbyUserResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Avatar     *string `json:"avatar"`
	DistanceKm float64 `json:"distance_km"`
}

// UpdateGymLocationRequest for PUT /api/v1/meetup/gym
type UpdateGymLocationRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address" binding:"required"`
	PlaceID string  `json:"place_id"`
	Lat     *float64 `json:"lat" binding:"required"`
	Lng     *float64 `json:"lng" binding:"required"`
}
