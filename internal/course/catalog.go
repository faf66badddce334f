package course

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

//go:embed courses.json
var embeddedCourses []byte

// Catalog holds the golf course reference data grouped by region.
type Catalog struct {
	regions map[string][]*Course
	byID    map[string]*Course
}

// LoadCatalog reads the course catalog from path, or from the embedded
// data file when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	raw := embeddedCourses
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read course data: %w", err)
		}
		raw = b
	}

	var regions map[string][]*Course
	if err := json.Unmarshal(raw, &regions); err != nil {
		return nil, fmt.Errorf("parse course data: %w", err)
	}

	cat := &Catalog{
		regions: regions,
		byID:    make(map[string]*Course),
	}
	for region, courses := range regions {
		for _, co := range courses {
			co.Region = region
			if _, dup := cat.byID[co.ID]; dup {
				return nil, fmt.Errorf("duplicate course id %q", co.ID)
			}
			cat.byID[co.ID] = co
		}
	}
	return cat, nil
}

// Regions returns the courses grouped by region, as served by the
// course listing endpoint.
func (c *Catalog) Regions() map[string][]*Course {
	return c.regions
}

// ByID looks up a course by its catalog id.
func (c *Catalog) ByID(id string) (*Course, bool) {
	co, ok := c.byID[id]
	return co, ok
}

// IDs returns every course id in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Catalog) Len() int {
	return len(c.byID)
}
