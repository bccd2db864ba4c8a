// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Recipes []RecipeModel `gorm:"foreignKey:CreatorID"`
}

// TableName overrides the table name
func (UserModel) TableName() string {
	return "users"
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null;index"`
	Description string    `gorm:"type:text"`
	Publisher   string    `gorm:"type:varchar(255)"`
	CreatorID   uuid.UUID `gorm:"type:char(36);not null;index"`

	Ingredients  IngredientSlice `gorm:"type:json"`
	Instructions StringSlice     `gorm:"type:json"`

	ImageURL           string `gorm:"type:text"`
	CookingTimeMinutes int    `gorm:"column:cooking_time_minutes;default:0"`
	Servings           int    `gorm:"default:0"`

	AIGenerated bool   `gorm:"default:false"`
	SourceURL   string `gorm:"type:text"`
	ExternalID  string `gorm:"type:varchar(100);index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName overrides the table name
func (RecipeModel) TableName() string {
	return "recipes"
}

// BookmarkModel represents the GORM model for bookmarks. The composite
// unique index is the authoritative guard against duplicate pairs.
type BookmarkModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_bookmarks_user_recipe;index"`
	RecipeID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_bookmarks_user_recipe"`
	CreatedAt time.Time

	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
	User   *UserModel  `gorm:"foreignKey:UserID"`
}

// TableName overrides the table name
func (BookmarkModel) TableName() string {
	return "bookmarks"
}

// StringSlice custom type for handling string slices in JSON columns
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
	return json.Marshal(s)
}

// IngredientRecord is the stored shape of one ingredient line
type IngredientRecord struct {
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

// IngredientSlice custom type for handling ingredient lists in JSON columns
type IngredientSlice []IngredientRecord

// Scan implements the sql.Scanner interface
func (s *IngredientSlice) Scan(value interface{}) error {
	if value == nil {
		*s = IngredientSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into IngredientSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s IngredientSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// AllModels returns every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&RecipeModel{},
		&BookmarkModel{},
	}
}
