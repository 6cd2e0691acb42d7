package recipes

import (
	"testing"

	"comedor-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotalsRoundTrip(t *testing.T) {
	// arroz: 120 kcal y $0.03 por gramo; pollo: 2 kcal y $0.15 por gramo
	arroz := models.Item{ID: 1, Name: "arroz", Unit: "g", CaloriesPerUnit: 1.2, UnitCost: 0.03}
	pollo := models.Item{ID: 2, Name: "pollo", Unit: "g", CaloriesPerUnit: 2, UnitCost: 0.15}

	recipe := models.Recipe{
		ID:       10,
		Name:     "arroz con pollo",
		Type:     models.RecipeLunch,
		Servings: 4,
		Ingredients: []models.RecipeIngredient{
			{ItemID: 1, Item: arroz, Quantity: 0.5, Unit: "kg"}, // 500 g
			{ItemID: 2, Item: pollo, Quantity: 300, Unit: "g"},
		},
	}

	res := ComputeTotals(&recipe)

	wantCalories := 500*1.2 + 300*2.0 // 1200
	wantCost := 500*0.03 + 300*0.15   // 60

	assert.InDelta(t, wantCalories, res.TotalCalories, 1e-6)
	assert.InDelta(t, wantCost, res.TotalCost, 1e-6)
	assert.InDelta(t, 800, res.TotalWeightGrams, 1e-6)
	assert.Equal(t, 0, res.Skipped)

	require.NotNil(t, recipe.CaloriesPerServing)
	require.NotNil(t, recipe.CostPerServing)
	assert.InDelta(t, wantCalories/4, *recipe.CaloriesPerServing, 1e-6)
	assert.InDelta(t, wantCost/4, *recipe.CostPerServing, 1e-6)
}

func TestComputeTotalsSkipsMissingItem(t *testing.T) {
	pollo := models.Item{ID: 2, Name: "pollo", Unit: "g", CaloriesPerUnit: 2, UnitCost: 0.15}

	recipe := models.Recipe{
		Servings: 2,
		Ingredients: []models.RecipeIngredient{
			{ItemID: 99, Quantity: 1, Unit: "kg"}, // insumo inexistente (Item vacío)
			{ItemID: 2, Item: pollo, Quantity: 200, Unit: "g"},
		},
	}

	res := ComputeTotals(&recipe)

	assert.Equal(t, 1, res.Skipped)
	assert.InDelta(t, 400, res.TotalCalories, 1e-6)
	assert.InDelta(t, 30, res.TotalCost, 1e-6)
}

func TestComputeTotalsSkipsUnconvertibleUnit(t *testing.T) {
	leche := models.Item{ID: 3, Name: "leche", Unit: "ml", CaloriesPerUnit: 0.6, UnitCost: 0.02}

	recipe := models.Recipe{
		Servings: 1,
		Ingredients: []models.RecipeIngredient{
			{ItemID: 3, Item: leche, Quantity: 2, Unit: "docena"}, // unidad desconocida
			{ItemID: 3, Item: leche, Quantity: 1, Unit: "l"},
		},
	}

	res := ComputeTotals(&recipe)

	assert.Equal(t, 1, res.Skipped)
	assert.InDelta(t, 600, res.TotalCalories, 1e-6)
}

func TestComputeTotalsZeroServings(t *testing.T) {
	arroz := models.Item{ID: 1, Name: "arroz", Unit: "g", CaloriesPerUnit: 1.2, UnitCost: 0.03}

	recipe := models.Recipe{
		Servings: 0,
		Ingredients: []models.RecipeIngredient{
			{ItemID: 1, Item: arroz, Quantity: 100, Unit: "g"},
		},
	}

	ComputeTotals(&recipe)

	assert.Nil(t, recipe.CaloriesPerServing)
	assert.Nil(t, recipe.CostPerServing)
	assert.InDelta(t, 120, recipe.TotalCalories, 1e-6)
}
