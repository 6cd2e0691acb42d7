package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// RecipeType: tipo de receta según el tiempo de comida al que va dirigida
type RecipeType string

const (
	RecipeBreakfast RecipeType = "breakfast"
	RecipeLunch     RecipeType = "lunch"
	RecipeDinner    RecipeType = "dinner"
)

func ParseRecipeType(s string) (RecipeType, error) {
	switch RecipeType(s) {
	case RecipeBreakfast, RecipeLunch, RecipeDinner:
		return RecipeType(s), nil
	}
	return "", fmt.Errorf("tipo de receta desconocido: %q", s)
}

func (t RecipeType) Valid() bool {
	_, err := ParseRecipeType(string(t))
	return err == nil
}

func (t *RecipeType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRecipeType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Recipe: receta con totales cacheados. Los totales se recalculan con
// recipes.CalculateTotals cada vez que cambian los ingredientes.
type Recipe struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Name     string     `gorm:"size:150;not null" json:"name"`
	Type     RecipeType `gorm:"size:20;not null" json:"type"`
	Servings int        `gorm:"not null;default:1" json:"servings"` // porciones que rinde

	// Totales cacheados
	TotalCalories      float64  `gorm:"default:0" json:"total_calories"`
	TotalCost          float64  `gorm:"default:0" json:"total_cost"`
	TotalWeightGrams   float64  `gorm:"default:0" json:"total_weight_grams"`
	CaloriesPerServing *float64 `json:"calories_per_serving"` // nil si Servings <= 0
	CostPerServing     *float64 `json:"cost_per_serving"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecipeIngredient: línea de ingrediente de una receta
type RecipeIngredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RecipeID  uint      `gorm:"index;not null" json:"recipe_id"`
	ItemID    uint      `gorm:"index;not null" json:"item_id"`
	Item      Item      `json:"item,omitempty"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Unit      string    `gorm:"size:20;not null" json:"unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	if !r.Type.Valid() {
		return fmt.Errorf("tipo de receta desconocido: %q", r.Type)
	}
	return nil
}
