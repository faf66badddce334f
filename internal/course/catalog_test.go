package course

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogEmbedded(t *testing.T) {
	cat, err := LoadCatalog("")
	require.NoError(t, err)

	assert.Equal(t, 16, cat.Len())

	regions := cat.Regions()
	for _, region := range []string{"jakarta", "tangerang", "bogor", "bandung", "surabaya", "bali"} {
		assert.NotEmpty(t, regions[region], "region %s should have courses", region)
	}

	co, ok := cat.ByID("pig")
	require.True(t, ok)
	assert.Equal(t, "Pondok Indah Golf Course", co.Name)
	assert.Equal(t, "jakarta", co.Region)
	assert.Equal(t, 18, co.Holes)
	assert.Len(t, co.HolePars, 18)
	assert.Equal(t, 72, co.Par["18"])
	assert.Equal(t, 36, co.Par["9"])

	_, ok = cat.ByID("augusta")
	assert.False(t, ok)
}

func TestCourseParFor(t *testing.T) {
	cat, err := LoadCatalog("")
	require.NoError(t, err)

	co, ok := cat.ByID("pig")
	require.True(t, ok)

	assert.Equal(t, 72, co.ParFor(18))
	assert.Equal(t, 36, co.ParFor(9))

	pars := co.ParsFor(9)
	require.Len(t, pars, 9)
	total := 0
	for _, p := range pars {
		total += p
	}
	assert.Equal(t, 36, total)

	assert.Len(t, co.ParsFor(18), 18)
	assert.Len(t, co.ParsFor(0), 18)
	assert.Len(t, co.ParsFor(27), 18)
}

func TestCourseTeeFallback(t *testing.T) {
	cat, err := LoadCatalog("")
	require.NoError(t, err)

	co, ok := cat.ByID("jgc")
	require.True(t, ok)

	blue, ok := co.TeeFor("blue")
	require.True(t, ok)
	assert.Equal(t, 71.8, blue.Rating)
	assert.Equal(t, 133, blue.Slope)

	fallback, ok := co.TeeFor("gold")
	require.True(t, ok)
	assert.Equal(t, co.Tees["white"], fallback)
}

func TestCourseEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cat, err := LoadCatalog("")
	require.NoError(t, err)

	r := gin.New()
	RegisterCourseRoutes(r.Group("/api"), cat)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/courses", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pondok Indah Golf Course")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/courses/handara", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Handara Golf & Resort")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/courses/nope", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Course not found")
}
