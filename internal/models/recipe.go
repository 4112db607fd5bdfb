package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is a recipe owned by the user who created it.
type Recipe struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	Name            string       `gorm:"size:255;not null" json:"name"`
	Description     string       `gorm:"size:2000" json:"description"`
	Vegetarian      bool         `gorm:"not null;index" json:"vegetarian"`
	Servings        int          `gorm:"not null;index" json:"servings"`
	Instructions    string       `gorm:"size:5000;not null" json:"instructions"`
	InstructionsKey string       `gorm:"size:5000;not null;default:''" json:"-"`
	PreparationTime *int         `json:"preparation_time,omitempty"`
	CookingTime     *int         `json:"cooking_time,omitempty"`
	Ingredients     []Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	CreatedBy       string       `gorm:"size:50;not null;index" json:"created_by"`
}

// Ingredient belongs to exactly one recipe and has no lifecycle of its own.
type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position int       `gorm:"not null" json:"-"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	NameKey  string    `gorm:"size:255;not null;default:'';index" json:"-"`
	Amount   string    `gorm:"size:100" json:"amount,omitempty"`
	Unit     string    `gorm:"size:50" json:"unit,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// BeforeCreate assigns the id on first insert. An id is never reused.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the lowercased search key in step with the instructions.
func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	r.InstructionsKey = SearchKey(r.Instructions)
	return nil
}

func (i *Ingredient) BeforeSave(tx *gorm.DB) error {
	i.NameKey = SearchKey(i.Name)
	return nil
}

// SearchKey folds s for case-insensitive substring search. Folding happens here rather
// than in SQL because SQLite's LOWER only handles ASCII.
func SearchKey(s string) string {
	return strings.ToLower(s)
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IngredientNames returns the names of the recipe's ingredients in order.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = ing.Name
	}
	return names
}
