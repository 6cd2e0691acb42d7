package menu

import (
	"comedor-backend/internal/models"

	"github.com/sirupsen/logrus"
)

// ServiceTotals: totales de servicio de una programación. Partial indica que
// alguna línea no pudo calcularse (receta inexistente o sin totales por
// porción) y contribuyó cero; el llamador puede distinguirlo de un cálculo
// completo en lugar de recibir un éxito idéntico.
type ServiceTotals struct {
	TotalCalories float64 `json:"total_calories"`
	TotalCost     float64 `json:"total_cost"`
	RecipeCount   int     `json:"recipe_count"`
	TotalPortions int     `json:"total_portions"`
	Partial       bool    `json:"partial"`
}

// ComputeServiceTotals: multiplica calorías/costo por porción de cada receta
// programada por sus porciones y suma. Nunca falla: alimenta rutas de consulta
// que deben seguir disponibles, así que cualquier hueco se registra y la línea
// contribuye cero.
func ComputeServiceTotals(sched *models.MenuSchedule, log *logrus.Logger) ServiceTotals {
	totals := ServiceTotals{}
	if sched == nil {
		return totals
	}

	for _, line := range sched.Recipes {
		totals.RecipeCount++
		totals.TotalPortions += line.Portions

		if line.Recipe.ID == 0 {
			totals.Partial = true
			if log != nil {
				log.WithFields(logrus.Fields{
					"schedule_id": sched.ID,
					"recipe_id":   line.RecipeID,
				}).Warn("receta programada inexistente, contribuye cero al total de servicio")
			}
			continue
		}

		if line.Recipe.CaloriesPerServing == nil || line.Recipe.CostPerServing == nil {
			totals.Partial = true
			if log != nil {
				log.WithFields(logrus.Fields{
					"schedule_id": sched.ID,
					"recipe_id":   line.RecipeID,
				}).Warn("receta sin totales por porción, contribuye cero al total de servicio")
			}
			continue
		}

		totals.TotalCalories += *line.Recipe.CaloriesPerServing * float64(line.Portions)
		totals.TotalCost += *line.Recipe.CostPerServing * float64(line.Portions)
	}

	return totals
}
