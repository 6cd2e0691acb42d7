package trays

import (
	"time"

	"comedor-backend/internal/database"
	"comedor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateTrayRequest struct {
	Number     string          `json:"number"`
	ServedAt   string          `json:"served_at"` // "2025-06-01 13:45:00" o "2025-06-01"
	Location   string          `json:"location"`
	MealTime   models.MealTime `json:"meal_time"`
	Headcount  int             `json:"headcount"`
	SalesTotal float64         `json:"sales_total"`
	CostTotal  float64         `json:"cost_total"`
}

func parseServedAt(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// POST /api/trays — reporte de charola servida
func CreateTrayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTrayRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido: "+err.Error())
		}

		if body.Number == "" {
			return fiber.NewError(fiber.StatusBadRequest, "number (folio) es obligatorio")
		}
		if body.Location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "location es obligatorio")
		}
		if !body.MealTime.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "meal_time debe ser breakfast, lunch o dinner")
		}

		servedAt, err := parseServedAt(body.ServedAt)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "served_at debe tener formato 'YYYY-MM-DD HH:MM:SS' o 'YYYY-MM-DD'")
		}

		tray := models.Tray{
			Number:     body.Number,
			ServedAt:   servedAt,
			Location:   body.Location,
			MealTime:   body.MealTime,
			Headcount:  body.Headcount,
			SalesTotal: body.SalesTotal,
			CostTotal:  body.CostTotal,
		}

		if err := database.DB.Create(&tray).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar la charola (¿folio duplicado?)")
		}

		return c.Status(fiber.StatusCreated).JSON(tray)
	}
}

// GET /api/trays
func ListTraysHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.Tray{})

		if dateStr := c.Query("date"); dateStr != "" {
			d, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date debe tener formato 'YYYY-MM-DD'")
			}
			query = query.Where("served_at >= ? AND served_at < ?", d, d.AddDate(0, 0, 1))
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

		var trays []models.Tray
		if err := query.Order("served_at DESC").Find(&trays).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las charolas")
		}

		return c.JSON(trays)
	}
}

// GET /api/trays/locations — ubicaciones conocidas (distintas)
func ListLocationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var locations []string
		err := database.DB.Model(&models.Tray{}).Distinct("location").Order("location ASC").Pluck("location", &locations).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las ubicaciones")
		}
		return c.JSON(locations)
	}
}
