package recipes

import (
	"fmt"

	"comedor-backend/internal/models"
	"comedor-backend/internal/units"

	"gorm.io/gorm"
)

// TotalsResult: resultado del cálculo de totales de una receta. Skipped cuenta
// los ingredientes que no pudieron costearse (insumo inexistente o unidad no
// convertible); esos ingredientes contribuyen cero en lugar de abortar el
// cálculo completo, pero el llamador puede distinguir un resultado degradado.
type TotalsResult struct {
	TotalCalories    float64
	TotalCost        float64
	TotalWeightGrams float64
	Skipped          int
}

// ComputeTotals: calcula los totales de la receta a partir de sus ingredientes
// (con Item precargado) y muta los campos cacheados. No toca la base de datos.
func ComputeTotals(recipe *models.Recipe) TotalsResult {
	var res TotalsResult

	for _, ing := range recipe.Ingredients {
		// Insumo inexistente: la línea contribuye cero
		if ing.Item.ID == 0 {
			res.Skipped++
			continue
		}

		baseQty, err := units.ToBase(ing.Quantity, ing.Unit, ing.Item.Unit)
		if err != nil {
			res.Skipped++
			continue
		}

		res.TotalCalories += baseQty * ing.Item.CaloriesPerUnit
		res.TotalCost += baseQty * ing.Item.UnitCost

		// Peso total: solo las líneas convertibles a gramos
		if grams, err := units.ToGrams(ing.Quantity, ing.Unit); err == nil {
			res.TotalWeightGrams += grams
		}
	}

	recipe.TotalCalories = res.TotalCalories
	recipe.TotalCost = res.TotalCost
	recipe.TotalWeightGrams = res.TotalWeightGrams

	if recipe.Servings > 0 {
		perCal := res.TotalCalories / float64(recipe.Servings)
		perCost := res.TotalCost / float64(recipe.Servings)
		recipe.CaloriesPerServing = &perCal
		recipe.CostPerServing = &perCost
	} else {
		recipe.CaloriesPerServing = nil
		recipe.CostPerServing = nil
	}

	return res
}

// CalculateTotals: carga la receta con ingredientes, recalcula los totales
// cacheados y los persiste. Se llama cada vez que cambian los ingredientes.
func CalculateTotals(db *gorm.DB, recipeID uint) (TotalsResult, error) {
	var recipe models.Recipe
	if err := db.Preload("Ingredients").Preload("Ingredients.Item").First(&recipe, recipeID).Error; err != nil {
		return TotalsResult{}, fmt.Errorf("no se encontró la receta %d: %w", recipeID, err)
	}

	res := ComputeTotals(&recipe)

	updates := map[string]interface{}{
		"total_calories":       recipe.TotalCalories,
		"total_cost":           recipe.TotalCost,
		"total_weight_grams":   recipe.TotalWeightGrams,
		"calories_per_serving": recipe.CaloriesPerServing,
		"cost_per_serving":     recipe.CostPerServing,
	}
	if err := db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
		return res, fmt.Errorf("no se pudieron guardar los totales de la receta %d: %w", recipe.ID, err)
	}

	return res, nil
}
