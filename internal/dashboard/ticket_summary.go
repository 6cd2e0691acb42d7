package dashboard

import (
	"comedor-backend/internal/database"
	"comedor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TicketSummaryResponse struct {
	OpenTotal  int64            `json:"open_total"` // abiertos + en progreso
	ByOrigin   map[string]int64 `json:"by_origin"`
	ByPriority map[string]int64 `json:"by_priority"`
	AutoOpen   int64            `json:"auto_open"`
	ManualOpen int64            `json:"manual_open"`
}

// GET /api/dashboard/ticket-summary
// Foto del backlog: solo tickets abiertos o en progreso.
func TicketSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		openStatuses := []models.TicketStatus{models.TicketOpen, models.TicketInProgress}

		type row struct {
			Origin   string `gorm:"column:origin_module"`
			Priority string `gorm:"column:priority"`
			Auto     bool   `gorm:"column:auto_generated"`
			Total    int64  `gorm:"column:total"`
		}
		var rows []row

		err := database.DB.Model(&models.Ticket{}).
			Select("origin_module, priority, auto_generated, COUNT(*) AS total").
			Where("status IN ?", openStatuses).
			Group("origin_module, priority, auto_generated").
			Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error al agregar los tickets")
		}

		resp := TicketSummaryResponse{
			ByOrigin:   make(map[string]int64),
			ByPriority: make(map[string]int64),
		}
		for _, r := range rows {
			resp.OpenTotal += r.Total
			resp.ByOrigin[r.Origin] += r.Total
			resp.ByPriority[r.Priority] += r.Total
			if r.Auto {
				resp.AutoOpen += r.Total
			} else {
				resp.ManualOpen += r.Total
			}
		}

		return c.JSON(resp)
	}
}
