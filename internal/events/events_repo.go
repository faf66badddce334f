package events

import (
	"gorm.io/gorm"
)

// EventRepository defines the interface for event data operations
type EventRepository interface {
	SeedTemplates() error
	GetTemplates() ([]EventTemplate, error)
	GetTemplateByID(id string) (*EventTemplate, error)

	GetEvents(status, eventType string) ([]Event, error)
	GetEventByID(id string) (*Event, error)
	CountRegistrations(eventID string) (int64, error)
	CreateEvent(event *Event) error
	UpdateEvent(id string, fields map[string]interface{}) error
	DeleteEvent(id string) error

	GetRegistrationByID(id string) (*EventRegistration, error)
	GetRegistrationByEmail(eventID, email string) (*EventRegistration, error)
	GetRegistrations(eventID string) ([]EventRegistration, error)
	Register(reg *EventRegistration) error
	CancelRegistration(reg *EventRegistration) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// SeedTemplates inserts the stock templates when the table is empty.
func (r *eventRepository) SeedTemplates() error {
	var count int64
	if err := r.db.Model(&EventTemplate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	templates := defaultTemplates()
	return r.db.Create(&templates).Error
}

func (r *eventRepository) GetTemplates() ([]EventTemplate, error) {
	templates := []EventTemplate{}
	err := r.db.Order("is_default DESC, name").Find(&templates).Error
	return templates, err
}

func (r *eventRepository) GetTemplateByID(id string) (*EventTemplate, error) {
	var template EventTemplate
	if err := r.db.First(&template, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// GetEvents lists published events soonest first, optionally filtered
// by status and type.
func (r *eventRepository) GetEvents(status, eventType string) ([]Event, error) {
	// Initialized so empty listings serialize as [] instead of null.
	events := []Event{}
	query := r.db.Where("is_published = ?", true)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}
	err := query.Order("event_date ASC").Find(&events).Error
	return events, err
}

func (r *eventRepository) GetEventByID(id string) (*Event, error) {
	var event Event
	if err := r.db.First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) CountRegistrations(eventID string) (int64, error) {
	var count int64
	err := r.db.Model(&EventRegistration{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func (r *eventRepository) CreateEvent(event *Event) error {
	return r.db.Create(event).Error
}

func (r *eventRepository) UpdateEvent(id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&Event{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteEvent removes the event and its registrations together.
func (r *eventRepository) DeleteEvent(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&EventRegistration{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, "id = ?", id).Error
	})
}

func (r *eventRepository) GetRegistrationByID(id string) (*EventRegistration, error) {
	var reg EventRegistration
	if err := r.db.First(&reg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *eventRepository) GetRegistrationByEmail(eventID, email string) (*EventRegistration, error) {
	var reg EventRegistration
	err := r.db.Where("event_id = ? AND email = ?", eventID, email).First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *eventRepository) GetRegistrations(eventID string) ([]EventRegistration, error) {
	regs := []EventRegistration{}
	err := r.db.Where("event_id = ?", eventID).Order("registration_date DESC").Find(&regs).Error
	return regs, err
}

// Register inserts the registration and bumps the participant counter
// in one transaction.
func (r *eventRepository) Register(reg *EventRegistration) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reg).Error; err != nil {
			return err
		}
		return tx.Model(&Event{}).Where("id = ?", reg.EventID).
			UpdateColumn("current_participants", gorm.Expr("current_participants + 1")).Error
	})
}

// CancelRegistration removes the registration and releases its spot in
// one transaction.
func (r *eventRepository) CancelRegistration(reg *EventRegistration) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&EventRegistration{}, "id = ?", reg.ID).Error; err != nil {
			return err
		}
		return tx.Model(&Event{}).Where("id = ?", reg.EventID).
			UpdateColumn("current_participants", gorm.Expr("current_participants - 1")).Error
	})
}
