package user

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name          string         `json:"name"`
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`
	Password      string         `json:"-"`
	Phone         string         `json:"phone"`
	Verified      bool           `gorm:"default:false" json:"verified"`
	HandicapIndex *float64       `json:"handicap_index"`
	HomeCourse    string         `json:"home_course"`
	Bio           string         `json:"bio"`
	AvatarURL     string         `json:"avatar_url"`
	City          string         `json:"city"`
	Stats         datatypes.JSON `json:"stats,omitempty"`
	ResetToken    string         `gorm:"index" json:"-"`
	ResetExpires  *time.Time     `json:"-"`
}
