package events

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupEventsTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Event{}, &EventRegistration{}, &EventTemplate{}))

	r := gin.New()
	RegisterEventRoutes(r.Group("/api"), db)
	r.GET("/health", NewEventController(NewEventRepository(db)).Health)
	return r, db
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createEvent(t *testing.T, r http.Handler, body gin.H) string {
	t.Helper()
	w := doJSON(r, "POST", "/api/events", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool   `json:"success"`
		EventID string `json:"event_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.EventID)
	return resp.EventID
}

func TestSeedTemplates(t *testing.T) {
	r, db := setupEventsTest(t)
	repo := NewEventRepository(db)

	require.NoError(t, repo.SeedTemplates())
	// Seeding again must not duplicate.
	require.NoError(t, repo.SeedTemplates())

	var count int64
	db.Model(&EventTemplate{}).Count(&count)
	assert.EqualValues(t, 5, count)

	w := doJSON(r, "GET", "/api/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var templates []EventTemplate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &templates))
	require.Len(t, templates, 5)
	// Default template leads, the rest sort by name.
	assert.Equal(t, "Standard Tournament", templates[0].Name)
	assert.True(t, templates[0].IsDefault)
	assert.Equal(t, "Charity Golf", templates[1].Name)
	assert.Equal(t, "Monthly Medal", templates[4].Name)

	w = doJSON(r, "GET", "/api/templates/"+templates[0].ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tpl EventTemplate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tpl))
	assert.Equal(t, "tournament", tpl.EventType)
	assert.Contains(t, tpl.DefaultRules, "USGA Rules of Golf apply")

	w = doJSON(r, "GET", "/api/templates/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Template not found")
}

func TestEventLifecycle(t *testing.T) {
	r, db := setupEventsTest(t)

	w := doJSON(r, "POST", "/api/events", gin.H{"description": "no title or date"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	eventID := createEvent(t, r, gin.H{
		"title":      "Rancamaya Open",
		"event_date": "2026-10-04",
	})

	var created Event
	require.NoError(t, db.First(&created, "id = ?", eventID).Error)
	assert.Equal(t, "tournament", created.EventType)
	assert.Equal(t, 100, created.MaxParticipants)
	assert.Equal(t, "IDR", created.Currency)
	assert.Equal(t, StatusUpcoming, created.Status)
	assert.True(t, created.IsPublished)

	w = doJSON(r, "GET", "/api/events/"+eventID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail EventDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Rancamaya Open", detail.Title)
	assert.EqualValues(t, 0, detail.RegistrationCount)

	w = doJSON(r, "PUT", "/api/events/"+eventID, gin.H{
		"title":        "Rancamaya Invitational",
		"entry_fee":    750000,
		"is_published": false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Event updated successfully")

	// Unpublished events drop out of the listing but stay fetchable.
	w = doJSON(r, "GET", "/api/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = doJSON(r, "GET", "/api/events/"+eventID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Rancamaya Invitational", detail.Title)
	assert.Equal(t, 750000.0, detail.EntryFee)

	w = doJSON(r, "PUT", "/api/events/missing", gin.H{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, "DELETE", "/api/events/"+eventID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, "DELETE", "/api/events/"+eventID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventFiltersAndOrder(t *testing.T) {
	r, _ := setupEventsTest(t)

	laterID := createEvent(t, r, gin.H{"title": "October Medal", "event_date": "2026-10-01", "event_type": "medal"})
	soonerID := createEvent(t, r, gin.H{"title": "September Clinic", "event_date": "2026-09-01", "event_type": "clinic"})

	w := doJSON(r, "GET", "/api/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var events []Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, soonerID, events[0].ID)
	assert.Equal(t, laterID, events[1].ID)

	w = doJSON(r, "GET", "/api/events?type=clinic", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "September Clinic", events[0].Title)

	w = doJSON(r, "PUT", "/api/events/"+laterID, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/api/events?status=upcoming", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, soonerID, events[0].ID)
}

func TestRegistrationCapacity(t *testing.T) {
	r, db := setupEventsTest(t)

	eventID := createEvent(t, r, gin.H{
		"title":            "Nine and Dine",
		"event_date":       "2026-09-12",
		"max_participants": 2,
	})
	registerPath := fmt.Sprintf("/api/events/%s/register", eventID)

	w := doJSON(r, "POST", registerPath, gin.H{"player_name": "Budi"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Name and email are required")

	w = doJSON(r, "POST", registerPath, gin.H{"player_name": "Budi", "email": "budi@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reg struct {
		RegistrationID string `json:"registration_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	require.NotEmpty(t, reg.RegistrationID)

	w = doJSON(r, "POST", registerPath, gin.H{"player_name": "Budi Again", "email": "budi@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Already registered with this email")

	// One spot left: this registration lands exactly on the limit.
	w = doJSON(r, "POST", registerPath, gin.H{"player_name": "Sari", "email": "sari@example.com", "tee_preference": "red"})
	require.Equal(t, http.StatusCreated, w.Code)

	var event Event
	require.NoError(t, db.First(&event, "id = ?", eventID).Error)
	assert.Equal(t, 2, event.CurrentParticipants)

	w = doJSON(r, "POST", registerPath, gin.H{"player_name": "Tono", "email": "tono@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Event is full")

	w = doJSON(r, "GET", fmt.Sprintf("/api/events/%s/registrations", eventID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var regs []EventRegistration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regs))
	require.Len(t, regs, 2)
	assert.Equal(t, "white", regs[1].TeePreference)

	// Cancelling releases the spot for the next player.
	w = doJSON(r, "DELETE", "/api/registrations/"+reg.RegistrationID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Registration cancelled")

	require.NoError(t, db.First(&event, "id = ?", eventID).Error)
	assert.Equal(t, 1, event.CurrentParticipants)

	w = doJSON(r, "POST", registerPath, gin.H{"player_name": "Tono", "email": "tono@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, "DELETE", "/api/registrations/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Registration not found")
}

func TestRegistrationClosedAndMissingEvent(t *testing.T) {
	r, _ := setupEventsTest(t)

	w := doJSON(r, "POST", "/api/events/missing/register", gin.H{"player_name": "Budi", "email": "budi@example.com"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Event not found")

	eventID := createEvent(t, r, gin.H{"title": "Finished Medal", "event_date": "2026-05-01"})
	w = doJSON(r, "PUT", "/api/events/"+eventID, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "POST", fmt.Sprintf("/api/events/%s/register", eventID), gin.H{
		"player_name": "Budi",
		"email":       "budi@example.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Registration is closed")
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupEventsTest(t)

	w := doJSON(r, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "healthy", "service": "events-service"}`, w.Body.String())
}
