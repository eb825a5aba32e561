// Package gorm provides GORM model definitions and the database-backed
// recipe catalog repository
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"gorm.io/gorm"
)

// RecipeModel is one catalog recipe. Position keeps pool order stable.
type RecipeModel struct {
	ID           uint        `gorm:"primaryKey"`
	Category     string      `gorm:"type:varchar(50);not null;index:idx_menu_recipes_category_position,priority:1"`
	Position     int         `gorm:"not null;index:idx_menu_recipes_category_position,priority:2"`
	Name         string      `gorm:"type:varchar(255);not null"`
	Description  string      `gorm:"type:text"`
	Ingredients  StringSlice `gorm:"type:json"`
	Instructions StringSlice `gorm:"type:json"`
	Notes        string      `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name
func (RecipeModel) TableName() string {
	return "menu_recipes"
}

// ToDomain converts the row to a domain recipe
func (m RecipeModel) ToDomain() menu.Recipe {
	return menu.Recipe{
		Name:         m.Name,
		Description:  m.Description,
		Ingredients:  []string(m.Ingredients),
		Instructions: []string(m.Instructions),
		Notes:        m.Notes,
	}.Clone()
}

// RecipeToModel converts a domain recipe at a pool position
func RecipeToModel(category menu.Category, position int, r menu.Recipe) RecipeModel {
	return RecipeModel{
		Category:     string(category),
		Position:     position,
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  StringSlice(r.Ingredients),
		Instructions: StringSlice(r.Instructions),
		Notes:        r.Notes,
	}
}

// Models lists every model for AutoMigrate
func Models() []interface{} {
	return []interface{}{&RecipeModel{}}
}

// AutoMigrate creates or updates the catalog schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
