package menu

import (
	"testing"

	"comedor-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestComputeServiceTotals(t *testing.T) {
	sched := &models.MenuSchedule{
		ID: 1,
		Recipes: []models.MenuScheduleRecipe{
			{
				RecipeID: 1,
				Recipe: models.Recipe{
					ID:                 1,
					CaloriesPerServing: floatPtr(300),
					CostPerServing:     floatPtr(12.5),
				},
				Portions: 40,
			},
			{
				RecipeID: 2,
				Recipe: models.Recipe{
					ID:                 2,
					CaloriesPerServing: floatPtr(150),
					CostPerServing:     floatPtr(4),
				},
				Portions: 40,
			},
		},
	}

	totals := ComputeServiceTotals(sched, nil)

	assert.InDelta(t, 300*40+150*40, totals.TotalCalories, 1e-6)
	assert.InDelta(t, 12.5*40+4*40, totals.TotalCost, 1e-6)
	assert.Equal(t, 2, totals.RecipeCount)
	assert.Equal(t, 80, totals.TotalPortions)
	assert.False(t, totals.Partial)
}

func TestComputeServiceTotalsDegradesToZero(t *testing.T) {
	sched := &models.MenuSchedule{
		ID: 2,
		Recipes: []models.MenuScheduleRecipe{
			{RecipeID: 99, Portions: 10}, // receta inexistente
			{
				RecipeID: 3,
				Recipe:   models.Recipe{ID: 3}, // sin totales por porción
				Portions: 5,
			},
		},
	}

	totals := ComputeServiceTotals(sched, nil)

	assert.True(t, totals.Partial)
	assert.InDelta(t, 0, totals.TotalCalories, 1e-9)
	assert.InDelta(t, 0, totals.TotalCost, 1e-9)
	assert.Equal(t, 2, totals.RecipeCount)
	assert.Equal(t, 15, totals.TotalPortions)
}

func TestComputeServiceTotalsNilSchedule(t *testing.T) {
	totals := ComputeServiceTotals(nil, nil)
	assert.Equal(t, ServiceTotals{}, totals)
}
