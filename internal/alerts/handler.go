package alerts

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// POST /api/alerts/run-daily-checks?date=YYYY-MM-DD
// La corrida siempre regresa un resumen, incluso con detectores fallidos;
// la dispara un scheduler externo o una petición manual.
func RunDailyChecksHandler(engine *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date := time.Now()
		if dateStr := c.Query("date"); dateStr != "" {
			d, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date debe tener formato 'YYYY-MM-DD'")
			}
			date = d
		}

		summary := engine.RunDailyChecks(date)
		return c.JSON(summary)
	}
}

// POST /api/menu-schedules/:id/check-supply
func CheckScheduleSupplyHandler(engine *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		tickets, err := engine.CheckScheduleSupply(uint(id))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo verificar el abasto: "+err.Error())
		}

		return c.JSON(tickets)
	}
}
