package events

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EventController struct {
	repo EventRepository
}

func NewEventController(repo EventRepository) *EventController {
	return &EventController{repo: repo}
}

// GetTemplates godoc
// @Summary List event templates
// @Description Get the stock event templates, defaults first
// @Tags events
// @Produce json
// @Success 200 {array} EventTemplate "Templates"
// @Router /templates [get]
func (ec *EventController) GetTemplates(ctx *gin.Context) {
	templates, err := ec.repo.GetTemplates()
	if err != nil {
		log.Printf("Error fetching templates: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates"})
		return
	}
	ctx.JSON(http.StatusOK, templates)
}

// GetTemplate godoc
// @Summary Get an event template
// @Tags events
// @Produce json
// @Param template_id path string true "Template ID"
// @Success 200 {object} EventTemplate "Template"
// @Failure 404 {object} map[string]string "Template not found"
// @Router /templates/{template_id} [get]
func (ec *EventController) GetTemplate(ctx *gin.Context) {
	template, err := ec.repo.GetTemplateByID(ctx.Param("template_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		log.Printf("Error fetching template: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch template"})
		return
	}
	ctx.JSON(http.StatusOK, template)
}

// GetEvents godoc
// @Summary List events
// @Description Get published events soonest first, optionally filtered by status and type
// @Tags events
// @Produce json
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by event type"
// @Success 200 {array} Event "Events"
// @Router /events [get]
func (ec *EventController) GetEvents(ctx *gin.Context) {
	events, err := ec.repo.GetEvents(ctx.Query("status"), ctx.Query("type"))
	if err != nil {
		log.Printf("Error fetching events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}
	ctx.JSON(http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event
// @Description Get one event with its registration count, published or not
// @Tags events
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 200 {object} EventDetail "Event detail"
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{event_id} [get]
func (ec *EventController) GetEvent(ctx *gin.Context) {
	event, err := ec.repo.GetEventByID(ctx.Param("event_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		log.Printf("Error fetching event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event"})
		return
	}

	count, err := ec.repo.CountRegistrations(event.ID)
	if err != nil {
		log.Printf("Error counting registrations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event"})
		return
	}
	ctx.JSON(http.StatusOK, EventDetail{Event: *event, RegistrationCount: count})
}

// CreateEvent godoc
// @Summary Create an event
// @Description Create a new event; status always starts at upcoming
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event details"
// @Success 201 {object} map[string]interface{} "Created event ID"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Router /events [post]
func (ec *EventController) CreateEvent(ctx *gin.Context) {
	var req CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	event := &Event{
		Title:                req.Title,
		Description:          req.Description,
		EventType:            req.EventType,
		CourseID:             req.CourseID,
		CourseName:           req.CourseName,
		Location:             req.Location,
		EventDate:            req.EventDate,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		RegistrationDeadline: req.RegistrationDeadline,
		MaxParticipants:      req.MaxParticipants,
		EntryFee:             req.EntryFee,
		Currency:             req.Currency,
		Prizes:               req.Prizes,
		Rules:                req.Rules,
		ContactPerson:        req.ContactPerson,
		ContactPhone:         req.ContactPhone,
		ContactEmail:         req.ContactEmail,
		ImageURL:             req.ImageURL,
		Status:               StatusUpcoming,
		IsPublished:          true,
		CreatedBy:            req.CreatedBy,
	}
	if event.EventType == "" {
		event.EventType = "tournament"
	}
	if event.MaxParticipants == 0 {
		event.MaxParticipants = 100
	}
	if event.Currency == "" {
		event.Currency = "IDR"
	}

	if err := ec.repo.CreateEvent(event); err != nil {
		log.Printf("Error creating event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create event"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Event created successfully",
		"event_id": event.ID,
	})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Patch the fields present in the body
// @Tags events
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param event body UpdateEventRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "Updated"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Router /events/{event_id} [put]
func (ec *EventController) UpdateEvent(ctx *gin.Context) {
	var req UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	eventID := ctx.Param("event_id")
	if _, err := ec.repo.GetEventByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
			return
		}
		log.Printf("Error fetching event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update event"})
		return
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.EventType != nil {
		fields["event_type"] = *req.EventType
	}
	if req.CourseID != nil {
		fields["course_id"] = *req.CourseID
	}
	if req.CourseName != nil {
		fields["course_name"] = *req.CourseName
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.EventDate != nil {
		fields["event_date"] = *req.EventDate
	}
	if req.StartTime != nil {
		fields["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		fields["end_time"] = *req.EndTime
	}
	if req.RegistrationDeadline != nil {
		fields["registration_deadline"] = *req.RegistrationDeadline
	}
	if req.MaxParticipants != nil {
		fields["max_participants"] = *req.MaxParticipants
	}
	if req.EntryFee != nil {
		fields["entry_fee"] = *req.EntryFee
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if req.Prizes != nil {
		fields["prizes"] = *req.Prizes
	}
	if req.Rules != nil {
		fields["rules"] = *req.Rules
	}
	if req.ContactPerson != nil {
		fields["contact_person"] = *req.ContactPerson
	}
	if req.ContactPhone != nil {
		fields["contact_phone"] = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		fields["contact_email"] = *req.ContactEmail
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.IsPublished != nil {
		fields["is_published"] = *req.IsPublished
	}

	if err := ec.repo.UpdateEvent(eventID, fields); err != nil {
		log.Printf("Error updating event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update event"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Event updated successfully"})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Delete an event and all its registrations
// @Tags events
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Router /events/{event_id} [delete]
func (ec *EventController) DeleteEvent(ctx *gin.Context) {
	eventID := ctx.Param("event_id")
	if _, err := ec.repo.GetEventByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
			return
		}
		log.Printf("Error fetching event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete event"})
		return
	}

	if err := ec.repo.DeleteEvent(eventID); err != nil {
		log.Printf("Error deleting event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete event"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Event deleted successfully"})
}

// Register godoc
// @Summary Register for an event
// @Description Take a spot at an upcoming event; capacity and duplicate email are checked first
// @Tags events
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param registration body RegisterEventRequest true "Player details"
// @Success 201 {object} map[string]interface{} "Registration ID"
// @Failure 400 {object} map[string]interface{} "Full, closed or duplicate"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Router /events/{event_id}/register [post]
func (ec *EventController) Register(ctx *gin.Context) {
	var req RegisterEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if req.PlayerName == "" || req.Email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name and email are required"})
		return
	}

	eventID := ctx.Param("event_id")
	event, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
			return
		}
		log.Printf("Error fetching event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register"})
		return
	}

	if event.Status != StatusUpcoming {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Registration is closed"})
		return
	}
	if event.CurrentParticipants >= event.MaxParticipants {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Event is full"})
		return
	}
	if _, err := ec.repo.GetRegistrationByEmail(eventID, req.Email); err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Already registered with this email"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking registration: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register"})
		return
	}

	reg := &EventRegistration{
		EventID:       eventID,
		UserID:        req.UserID,
		PlayerName:    req.PlayerName,
		Email:         req.Email,
		Phone:         req.Phone,
		Handicap:      req.Handicap,
		TeePreference: req.TeePreference,
		Notes:         req.Notes,
	}
	if reg.TeePreference == "" {
		reg.TeePreference = "white"
	}

	if err := ec.repo.Register(reg); err != nil {
		log.Printf("Error registering for event %s: %v", eventID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"message":         "Registration successful",
		"registration_id": reg.ID,
	})
}

// GetRegistrations godoc
// @Summary List event registrations
// @Tags events
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 200 {array} EventRegistration "Registrations, newest first"
// @Router /events/{event_id}/registrations [get]
func (ec *EventController) GetRegistrations(ctx *gin.Context) {
	regs, err := ec.repo.GetRegistrations(ctx.Param("event_id"))
	if err != nil {
		log.Printf("Error fetching registrations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations"})
		return
	}
	ctx.JSON(http.StatusOK, regs)
}

// CancelRegistration godoc
// @Summary Cancel a registration
// @Description Remove a registration and release its spot
// @Tags events
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Success 200 {object} map[string]interface{} "Cancelled"
// @Failure 404 {object} map[string]interface{} "Registration not found"
// @Router /registrations/{registration_id} [delete]
func (ec *EventController) CancelRegistration(ctx *gin.Context) {
	reg, err := ec.repo.GetRegistrationByID(ctx.Param("registration_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Registration not found"})
			return
		}
		log.Printf("Error fetching registration: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel registration"})
		return
	}

	if err := ec.repo.CancelRegistration(reg); err != nil {
		log.Printf("Error cancelling registration %s: %v", reg.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel registration"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Registration cancelled"})
}

// Health reports liveness for the proxy and the load balancer.
func (ec *EventController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "events-service"})
}

// Index lists the service surface for anyone poking the root URL.
func (ec *EventController) Index(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"service": "Golf Events Service",
		"version": "1.0.0",
		"endpoints": []string{
			"GET /api/templates",
			"GET /api/events",
			"POST /api/events",
			"GET /api/events/<id>",
			"PUT /api/events/<id>",
			"DELETE /api/events/<id>",
			"POST /api/events/<id>/register",
			"GET /api/events/<id>/registrations",
		},
	})
}
