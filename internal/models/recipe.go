package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tag is a user-owned label attached to recipes.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Ingredient has the same shape and ownership rules as Tag.
type Ingredient struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Price wraps a decimal so the wire value always carries two decimal
// places, matching the NUMERIC(5,2) column: 5 marshals as "5.00".
type Price struct {
	decimal.Decimal
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.StringFixed(2) + `"`), nil
}

// Recipe is a recipe row with its relations as ids. Price is NUMERIC(5,2)
// in the store and a decimal string on the wire.
type Recipe struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Title       string `json:"title"`
	TimeMinutes int    `json:"time_minutes"`
	Price       Price  `json:"price"`
	Link        string `json:"link"`

	TagIDs        []uuid.UUID `json:"tags"`
	IngredientIDs []uuid.UUID `json:"ingredients"`
}

// RecipeDetail is the single-recipe view with relations expanded to full
// tag/ingredient objects. List views only carry ids.
type RecipeDetail struct {
	Recipe

	Tags        []Tag        `json:"tags"`
	Ingredients []Ingredient `json:"ingredients"`
}
