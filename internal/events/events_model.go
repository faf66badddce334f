package events

import (
	"time"

	"gorm.io/gorm"

	"github.com/wpras/golfku/pkg/utils"
)

const StatusUpcoming = "upcoming"

// Event is a tournament or outing hosted at a course. Capacity is
// tracked by a live counter next to the limit, checked at registration
// time rather than enforced by a constraint.
type Event struct {
	ID                   string    `json:"id" gorm:"primaryKey"`
	Title                string    `json:"title" gorm:"not null"`
	Description          string    `json:"description"`
	EventType            string    `json:"event_type" gorm:"not null;default:'tournament';index"`
	CourseID             string    `json:"course_id"`
	CourseName           string    `json:"course_name"`
	Location             string    `json:"location"`
	EventDate            string    `json:"event_date" gorm:"type:date;not null"`
	StartTime            string    `json:"start_time"`
	EndTime              string    `json:"end_time"`
	RegistrationDeadline string    `json:"registration_deadline"`
	MaxParticipants      int       `json:"max_participants" gorm:"default:100"`
	CurrentParticipants  int       `json:"current_participants" gorm:"default:0"`
	EntryFee             float64   `json:"entry_fee" gorm:"default:0"`
	Currency             string    `json:"currency" gorm:"default:'IDR'"`
	Prizes               string    `json:"prizes" gorm:"type:text"`
	Rules                string    `json:"rules" gorm:"type:text"`
	ContactPerson        string    `json:"contact_person"`
	ContactPhone         string    `json:"contact_phone"`
	ContactEmail         string    `json:"contact_email"`
	ImageURL             string    `json:"image_url"`
	Status               string    `json:"status" gorm:"default:'upcoming';index"`
	IsPublished          bool      `json:"is_published" gorm:"default:true"`
	CreatedBy            string    `json:"created_by"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = utils.GenerateRandomToken(32)
	}
	return nil
}

// EventRegistration is one player's spot at an event, unique per email.
type EventRegistration struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	EventID          string    `json:"event_id" gorm:"not null;uniqueIndex:idx_event_registrations_event_email"`
	UserID           string    `json:"user_id"`
	PlayerName       string    `json:"player_name" gorm:"not null"`
	Email            string    `json:"email" gorm:"not null;uniqueIndex:idx_event_registrations_event_email"`
	Phone            string    `json:"phone"`
	Handicap         float64   `json:"handicap"`
	TeePreference    string    `json:"tee_preference" gorm:"default:'white'"`
	RegistrationDate time.Time `json:"registration_date" gorm:"autoCreateTime"`
	PaymentStatus    string    `json:"payment_status" gorm:"default:'pending'"`
	Notes            string    `json:"notes"`
}

func (r *EventRegistration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = utils.GenerateRandomToken(32)
	}
	return nil
}

// EventTemplate is a reusable starting point for new events. Five stock
// templates are seeded on first boot.
type EventTemplate struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	EventType     string    `json:"event_type" gorm:"not null"`
	Description   string    `json:"description"`
	DefaultRules  string    `json:"default_rules" gorm:"type:text"`
	DefaultPrizes string    `json:"default_prizes" gorm:"type:text"`
	IsDefault     bool      `json:"is_default" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
}

func (t *EventTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = utils.GenerateRandomToken(16)
	}
	return nil
}

type CreateEventRequest struct {
	Title                string  `json:"title" binding:"required"`
	Description          string  `json:"description"`
	EventType            string  `json:"event_type"`
	CourseID             string  `json:"course_id"`
	CourseName           string  `json:"course_name"`
	Location             string  `json:"location"`
	EventDate            string  `json:"event_date" binding:"required"`
	StartTime            string  `json:"start_time"`
	EndTime              string  `json:"end_time"`
	RegistrationDeadline string  `json:"registration_deadline"`
	MaxParticipants      int     `json:"max_participants"`
	EntryFee             float64 `json:"entry_fee"`
	Currency             string  `json:"currency"`
	Prizes               string  `json:"prizes"`
	Rules                string  `json:"rules"`
	ContactPerson        string  `json:"contact_person"`
	ContactPhone         string  `json:"contact_phone"`
	ContactEmail         string  `json:"contact_email" binding:"omitempty,email"`
	ImageURL             string  `json:"image_url"`
	CreatedBy            string  `json:"created_by"`
}

// UpdateEventRequest patches only the fields the caller sent.
type UpdateEventRequest struct {
	Title                *string  `json:"title"`
	Description          *string  `json:"description"`
	EventType            *string  `json:"event_type"`
	CourseID             *string  `json:"course_id"`
	CourseName           *string  `json:"course_name"`
	Location             *string  `json:"location"`
	EventDate            *string  `json:"event_date"`
	StartTime            *string  `json:"start_time"`
	EndTime              *string  `json:"end_time"`
	RegistrationDeadline *string  `json:"registration_deadline"`
	MaxParticipants      *int     `json:"max_participants"`
	EntryFee             *float64 `json:"entry_fee"`
	Currency             *string  `json:"currency"`
	Prizes               *string  `json:"prizes"`
	Rules                *string  `json:"rules"`
	ContactPerson        *string  `json:"contact_person"`
	ContactPhone         *string  `json:"contact_phone"`
	ContactEmail         *string  `json:"contact_email" binding:"omitempty,email"`
	ImageURL             *string  `json:"image_url"`
	Status               *string  `json:"status"`
	IsPublished          *bool    `json:"is_published"`
}

type RegisterEventRequest struct {
	UserID        string  `json:"user_id"`
	PlayerName    string  `json:"player_name"`
	Email         string  `json:"email" binding:"omitempty,email"`
	Phone         string  `json:"phone"`
	Handicap      float64 `json:"handicap"`
	TeePreference string  `json:"tee_preference"`
	Notes         string  `json:"notes"`
}

// EventDetail is an event plus its live registration count.
type EventDetail struct {
	Event
	RegistrationCount int64 `json:"registration_count"`
}
