package game

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wpras/golfku/config"
	"github.com/wpras/golfku/internal/course"
	"github.com/wpras/golfku/internal/player"
)

func setupGameTest(t *testing.T) (*gin.Engine, *gorm.DB, *course.Catalog) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&course.CourseRecord{}, &player.Player{},
		&Game{}, &GameResult{}, &ScoreHistory{},
	))

	catalog, err := course.LoadCatalog("")
	require.NoError(t, err)

	r := gin.New()
	RegisterGameRoutes(r.Group("/api"), db, catalog, &config.Config{})
	return r, db, catalog
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

func TestCreateGameMaterializesCourse(t *testing.T) {
	r, db, _ := setupGameTest(t)

	w := doJSON(r, "POST", "/api/games", gin.H{"course_id": "pig", "hole_count": 18})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])
	assert.NotEmpty(t, resp["course_id"])

	var g Game
	require.NoError(t, db.First(&g, "id = ?", resp["id"]).Error)
	assert.Equal(t, StatusInProgress, g.Status)
	assert.Equal(t, 18, g.HoleCount)
	assert.Equal(t, 72, g.TotalPar)

	var record course.CourseRecord
	require.NoError(t, db.First(&record, "id = ?", resp["course_id"]).Error)
	assert.Equal(t, "pig", record.CourseID)
	assert.Equal(t, "Pondok Indah Golf Course", record.Name)

	// A second game on the same course reuses the materialized row.
	w = doJSON(r, "POST", "/api/games", gin.H{"course_id": "pig", "hole_count": 9})
	require.Equal(t, http.StatusCreated, w.Code)

	var records int64
	db.Model(&course.CourseRecord{}).Count(&records)
	assert.EqualValues(t, 1, records)

	var games int64
	db.Model(&Game{}).Count(&games)
	assert.EqualValues(t, 2, games)
}

func TestCreateGameUnknownCourse(t *testing.T) {
	r, _, _ := setupGameTest(t)

	w := doJSON(r, "POST", "/api/games", gin.H{"course_id": "nope"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Course not found")
}

func TestCalculateScoresAndSavesResults(t *testing.T) {
	r, db, catalog := setupGameTest(t)
	repo := NewGameRepository(db)

	co, ok := catalog.ByID("pig")
	require.True(t, ok)
	g, err := repo.CreateGameForCourse(co, 9, co.ParFor(9))
	require.NoError(t, err)

	pars := co.ParsFor(9)
	evenRound := append([]int(nil), pars...)
	overRound := make([]int, len(pars))
	for i, p := range pars {
		overRound[i] = p + 1
	}

	w := doJSON(r, "POST", "/api/calculate", gin.H{
		"course_id":  "pig",
		"hole_count": 9,
		"game_id":    g.ID,
		"players": []gin.H{
			{"name": "Budi", "tee": "white", "handicap": 0, "scores": overRound},
			{"name": "Sari", "tee": "white", "handicap": 0, "scores": evenRound},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp CalculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Sari", resp.Results[0].Name)
	assert.Equal(t, 1, resp.Results[0].Rank)
	assert.Equal(t, "Budi", resp.Results[1].Name)
	assert.Equal(t, 2, resp.Results[1].Rank)
	assert.Len(t, resp.Recommendations, 2)
	_, err = time.Parse("02-01-2006", resp.Date)
	assert.NoError(t, err)

	var saved Game
	require.NoError(t, db.First(&saved, "id = ?", g.ID).Error)
	assert.Equal(t, StatusCompleted, saved.Status)

	var results int64
	db.Model(&GameResult{}).Where("game_id = ?", g.ID).Count(&results)
	assert.EqualValues(t, 2, results)

	var histories int64
	db.Model(&ScoreHistory{}).Count(&histories)
	assert.EqualValues(t, 2, histories)

	var players int64
	db.Model(&player.Player{}).Count(&players)
	assert.EqualValues(t, 2, players)

	// Same players in a later game are matched by name, not duplicated.
	g2, err := repo.CreateGameForCourse(co, 9, co.ParFor(9))
	require.NoError(t, err)
	w = doJSON(r, "POST", "/api/calculate", gin.H{
		"course_id":  "pig",
		"hole_count": 9,
		"game_id":    g2.ID,
		"players": []gin.H{
			{"name": "Budi", "tee": "white", "handicap": 0, "scores": evenRound},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	db.Model(&player.Player{}).Count(&players)
	assert.EqualValues(t, 2, players)
}

func TestCalculateWithoutGameIDDoesNotSave(t *testing.T) {
	r, db, catalog := setupGameTest(t)

	co, _ := catalog.ByID("halim")
	w := doJSON(r, "POST", "/api/calculate", gin.H{
		"course_id":  "halim",
		"hole_count": 9,
		"players": []gin.H{
			{"name": "Budi", "scores": co.ParsFor(9)},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var histories int64
	db.Model(&ScoreHistory{}).Count(&histories)
	assert.EqualValues(t, 0, histories)
}

func TestCalculateRejectsBadInput(t *testing.T) {
	r, _, _ := setupGameTest(t)

	w := doJSON(r, "POST", "/api/calculate", gin.H{
		"course_id": "nope",
		"players":   []gin.H{{"name": "Budi", "scores": []int{4}}},
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Course not found")

	// Score lists that do not cover every hole leave nobody to rank.
	w = doJSON(r, "POST", "/api/calculate", gin.H{
		"course_id":  "pig",
		"hole_count": 18,
		"players": []gin.H{
			{"name": "Budi", "scores": []int{4, 5}},
			{"name": "", "scores": []int{}},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No valid players to score")
}

func TestHistoryGroupsRounds(t *testing.T) {
	_, db, _ := setupGameTest(t)
	repo := NewGameRepository(db)

	latest := time.Now().Truncate(time.Minute)
	earlier := latest.Add(-3 * time.Minute)

	rows := []ScoreHistory{
		{PlayerName: "Budi", CourseName: "Pondok Indah Golf Course", Location: "Jakarta Selatan", HoleCount: 18, GrossScore: 85, NetScore: 75, VsPar: 13, PlayedAt: latest},
		{PlayerName: "Sari", CourseName: "Pondok Indah Golf Course", Location: "Jakarta Selatan", HoleCount: 18, GrossScore: 90, NetScore: 80, VsPar: 18, PlayedAt: latest},
		{PlayerName: "Budi", CourseName: "Halim Golf Course", Location: "Jakarta Timur", HoleCount: 9, GrossScore: 42, NetScore: 40, VsPar: 6, PlayedAt: earlier},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	entries, err := repo.History(20)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Pondok Indah Golf Course", entries[0].CourseName)
	assert.Equal(t, "Jakarta Selatan", entries[0].Location)
	assert.Equal(t, 18, entries[0].HoleCount)
	assert.Equal(t, latest.Format("2006-01-02"), entries[0].Date)
	require.Len(t, entries[0].Players, 2)
	names := []string{entries[0].Players[0].Name, entries[0].Players[1].Name}
	assert.ElementsMatch(t, []string{"Budi", "Sari"}, names)

	assert.Equal(t, "Halim Golf Course", entries[1].CourseName)
	require.Len(t, entries[1].Players, 1)
	assert.Equal(t, 42, entries[1].Players[0].GrossScore)
}

func TestHistoryHonorsLimit(t *testing.T) {
	_, db, _ := setupGameTest(t)
	repo := NewGameRepository(db)

	base := time.Now().Truncate(time.Minute)
	for i := 0; i < 3; i++ {
		row := ScoreHistory{
			PlayerName: "Budi",
			CourseName: "Dago Heritage Golf",
			HoleCount:  18,
			GrossScore: 88 + i,
			NetScore:   88 + i,
			PlayedAt:   base.Add(-time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&row).Error)
	}

	entries, err := repo.History(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 88, entries[0].Players[0].GrossScore)
	assert.Equal(t, 89, entries[1].Players[0].GrossScore)
}

func TestHistoryEndpoint(t *testing.T) {
	r, _, _ := setupGameTest(t)

	w := doJSON(r, "GET", "/api/games/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = doJSON(r, "GET", "/api/games/history?limit=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "GET", "/api/games/history?limit=-1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadScorecardPDF(t *testing.T) {
	r, _, catalog := setupGameTest(t)

	co, _ := catalog.ByID("pig")
	w := doJSON(r, "POST", "/api/games/scorecard/pdf", gin.H{
		"course":     co,
		"hole_count": 9,
		"results": []gin.H{
			{"name": "Budi", "tee": "white", "handicap_index": 10.0, "course_handicap": 10, "gross_score": 45, "net_score": 35, "vs_par": 9, "rank": 1, "scores": co.ParsFor(9)},
		},
		"recommendations": []string{"Budi: Great round at or under par!"},
		"date":            "21-08-2026",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "scorecard_21-08-2026.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestEmailScorecardWithoutSMTP(t *testing.T) {
	r, _, catalog := setupGameTest(t)

	co, _ := catalog.ByID("pig")
	body := gin.H{
		"course":     co,
		"hole_count": 9,
		"results": []gin.H{
			{"name": "Budi", "rank": 1, "gross_score": 45, "net_score": 45, "scores": co.ParsFor(9)},
		},
	}

	w := doJSON(r, "POST", "/api/games/scorecard/email", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email is required")

	body["email"] = "budi@example.com"
	w = doJSON(r, "POST", "/api/games/scorecard/email", body)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Email service not configured. Please download the PDF instead.")
}
