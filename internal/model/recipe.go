package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is one generated recipe row. Rows are written once and never updated.
// Column names are the datastore's contract; see the persistence adapter for
// the mapping from generated records.
type Recipe struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID        `gorm:"type:uuid;not null;index:idx_recipes_user_created,priority:1" json:"user_id"`
	Title              string           `gorm:"size:255;not null" json:"title"`
	Description        string           `gorm:"type:text" json:"description"`
	Ingredients        JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	CookingTime        string           `gorm:"column:cooking_time;size:100" json:"cooking_time"`
	Image              string           `gorm:"type:text" json:"image"`
	DietaryPreferences pq.StringArray   `gorm:"column:dietary_preferences;type:text[]" json:"dietary_preferences"`
	CreatedAt          time.Time        `gorm:"not null;index:idx_recipes_user_created,priority:2" json:"created_at"`
}

// TableName pins the external table name.
func (Recipe) TableName() string {
	return "recipes"
}
