package menu

import (
	"time"

	"comedor-backend/internal/database"
	"comedor-backend/internal/logging"
	"comedor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ScheduleRecipeRequest struct {
	RecipeID uint `json:"recipe_id"`
	Portions int  `json:"portions"`
}

type CreateScheduleRequest struct {
	FromDate           string                  `json:"from_date"` // "2025-06-01"
	ToDate             string                  `json:"to_date"`
	MealTime           models.MealTime         `json:"meal_time"`
	Location           string                  `json:"location"`
	EstimatedHeadcount int                     `json:"estimated_headcount"`
	PlannedTrays       int                     `json:"planned_trays"`
	Recipes            []ScheduleRecipeRequest `json:"recipes"`
}

// POST /api/menu-schedules
func CreateScheduleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateScheduleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido: "+err.Error())
		}

		if !body.MealTime.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "meal_time debe ser breakfast, lunch o dinner")
		}
		if body.Location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "location es obligatorio")
		}

		from, err := time.Parse("2006-01-02", body.FromDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from_date debe tener formato 'YYYY-MM-DD'")
		}
		to, err := time.Parse("2006-01-02", body.ToDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "to_date debe tener formato 'YYYY-MM-DD'")
		}
		if to.Before(from) {
			return fiber.NewError(fiber.StatusBadRequest, "from_date no puede ser posterior a to_date")
		}

		sched := models.MenuSchedule{
			FromDate:           from,
			ToDate:             to,
			MealTime:           body.MealTime,
			Location:           body.Location,
			EstimatedHeadcount: body.EstimatedHeadcount,
			PlannedTrays:       body.PlannedTrays,
		}
		for _, line := range body.Recipes {
			if line.RecipeID == 0 || line.Portions <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "cada receta requiere recipe_id y portions > 0")
			}
			sched.Recipes = append(sched.Recipes, models.MenuScheduleRecipe{
				RecipeID: line.RecipeID,
				Portions: line.Portions,
			})
		}

		if err := database.DB.Create(&sched).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la programación")
		}

		return c.Status(fiber.StatusCreated).JSON(sched)
	}
}

// GET /api/menu-schedules
func ListSchedulesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Preload("Recipes").Preload("Recipes.Recipe")

		if dateStr := c.Query("active_on"); dateStr != "" {
			d, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "active_on debe tener formato 'YYYY-MM-DD'")
			}
			query = query.Where("from_date <= ? AND to_date >= ?", d, d)
		}
		if meal := c.Query("meal_time"); meal != "" {
			parsed, err := models.ParseMealTime(meal)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			query = query.Where("meal_time = ?", parsed)
		}
		if loc := c.Query("location"); loc != "" {
			query = query.Where("location = ?", loc)
		}

		var schedules []models.MenuSchedule
		if err := query.Order("from_date DESC").Find(&schedules).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las programaciones")
		}

		return c.JSON(schedules)
	}
}

// GET /api/menu-schedules/:id — incluye totales de servicio
func GetScheduleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sched models.MenuSchedule
		err := database.DB.Preload("Recipes").Preload("Recipes.Recipe").First(&sched, "id = ?", id).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Programación no encontrada")
		}

		totals := ComputeServiceTotals(&sched, logging.Get())

		return c.JSON(fiber.Map{
			"schedule":       sched,
			"service_totals": totals,
		})
	}
}

type UpdateProducedTraysRequest struct {
	ProducedTrays int `json:"produced_trays"`
}

// PUT /api/menu-schedules/:id/produced-trays
func UpdateProducedTraysHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sched models.MenuSchedule
		if err := database.DB.First(&sched, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Programación no encontrada")
		}

		var body UpdateProducedTraysRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.ProducedTrays < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "produced_trays no puede ser negativo")
		}

		if err := database.DB.Model(&sched).Update("produced_trays", body.ProducedTrays).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la programación")
		}

		return c.JSON(sched)
	}
}

// DELETE /api/menu-schedules/:id
func DeleteScheduleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sched models.MenuSchedule
		if err := database.DB.First(&sched, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Programación no encontrada")
		}

		// Las líneas de recetas se borran en cascada
		if err := database.DB.Select("Recipes").Delete(&sched).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la programación")
		}

		return c.JSON(fiber.Map{"message": "Programación eliminada"})
	}
}

// GET /api/menu-schedules/requirements?date=YYYY-MM-DD
func RequirementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dateStr := c.Query("date")
		if dateStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "date es obligatorio (YYYY-MM-DD)")
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date debe tener formato 'YYYY-MM-DD'")
		}

		reqs, err := ProjectRequirements(database.DB, date)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo proyectar el requerimiento")
		}

		return c.JSON(reqs)
	}
}
