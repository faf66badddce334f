// internal/models/base.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

type BaseModel struct {
	gorm.Model
}

// IntList is a JSON column holding an ordered list of integers,
// used for per-hole par sequences and per-hole stroke counts.
type IntList []int

func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]int{})
	}
	return json.Marshal(l)
}

// Scan unmarshals a JSON column into the slice.
func (l *IntList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("IntList: expected []byte or string, got %T", src)
	}
}

// TeeRating holds the USGA difficulty metrics for one tee set.
type TeeRating struct {
	Rating float64 `json:"rating"`
	Slope  int     `json:"slope"`
}

// TeeMap is a JSON column mapping tee names (black/blue/white/red)
// to their rating and slope.
type TeeMap map[string]TeeRating

func (t TeeMap) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal(map[string]TeeRating{})
	}
	return json.Marshal(t)
}

// Scan unmarshals a JSON column into the map.
func (t *TeeMap) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	case nil:
		*t = nil
		return nil
	default:
		return fmt.Errorf("TeeMap: expected []byte or string, got %T", src)
	}
}
