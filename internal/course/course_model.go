package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wpras/golfku/internal/models"
)

// Course is a catalog entry loaded from the course data file. Catalog
// courses are read-only reference data; persisted rounds reference a
// CourseRecord row instead.
type Course struct {
	ID       string                     `json:"id"`
	Name     string                     `json:"name"`
	Location string                     `json:"location"`
	Region   string                     `json:"-"`
	Holes    int                        `json:"holes"`
	Par      map[string]int             `json:"par"`
	HolePars []int                      `json:"hole_pars"`
	Tees     map[string]models.TeeRating `json:"tees"`
}

// ParFor returns the course par for a 9 or 18 hole round. It falls back
// to summing the sliced hole pars when the par table has no entry.
func (co *Course) ParFor(holeCount int) int {
	if p, ok := co.Par[intKey(holeCount)]; ok {
		return p
	}
	total := 0
	for _, p := range co.ParsFor(holeCount) {
		total += p
	}
	return total
}

// ParsFor returns the per-hole pars for the first holeCount holes.
func (co *Course) ParsFor(holeCount int) []int {
	if holeCount <= 0 || holeCount > len(co.HolePars) {
		return co.HolePars
	}
	return co.HolePars[:holeCount]
}

// TeeFor resolves a tee by name, falling back to the white tees when the
// requested tee is not on the card.
func (co *Course) TeeFor(name string) (models.TeeRating, bool) {
	if t, ok := co.Tees[name]; ok {
		return t, true
	}
	t, ok := co.Tees["white"]
	return t, ok
}

func intKey(n int) string {
	switch n {
	case 9:
		return "9"
	case 18:
		return "18"
	}
	return ""
}

// CourseRecord is the persisted copy of a catalog course, created the
// first time a round is saved against it. History rows join against it
// for the course name and location.
type CourseRecord struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  string         `gorm:"uniqueIndex;not null" json:"course_id"`
	Name      string         `gorm:"not null" json:"name"`
	Location  string         `json:"location"`
	Region    string         `json:"region"`
	Holes     int            `gorm:"default:18" json:"holes"`
	HolePars  models.IntList `gorm:"type:jsonb" json:"hole_pars"`
	Tees      models.TeeMap  `gorm:"type:jsonb" json:"tees"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (CourseRecord) TableName() string {
	return "courses"
}

func (cr *CourseRecord) BeforeCreate(tx *gorm.DB) error {
	if cr.ID == "" {
		cr.ID = uuid.NewString()
	}
	return nil
}

// RecordFromCourse builds the persisted form of a catalog course.
func RecordFromCourse(co *Course) *CourseRecord {
	return &CourseRecord{
		CourseID: co.ID,
		Name:     co.Name,
		Location: co.Location,
		Region:   co.Region,
		Holes:    co.Holes,
		HolePars: models.IntList(co.HolePars),
		Tees:     models.TeeMap(co.Tees),
	}
}
