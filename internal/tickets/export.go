package tickets

import (
	"time"

	"comedor-backend/internal/database"
	"comedor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/tickets/export — exporta tickets filtrados a Excel
func ExportTicketsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.Ticket{})

		if status := c.Query("status"); status != "" {
			parsed, err := models.ParseTicketStatus(status)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			query = query.Where("status = ?", parsed)
		}
		if origin := c.Query("origin"); origin != "" {
			query = query.Where("origin_module = ?", origin)
		}
		if dateStr := c.Query("date"); dateStr != "" {
			d, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date debe tener formato 'YYYY-MM-DD'")
			}
			query = query.Where("created_at >= ? AND created_at < ?", d, d.AddDate(0, 0, 1))
		}

		var tickets []models.Ticket
		if err := query.Order("created_at ASC").Find(&tickets).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron consultar los tickets")
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)

		headers := []string{"Folio", "Fecha", "Categoría", "Prioridad", "Estatus", "Origen", "Automático", "Asunto", "Descripción", "Resolución"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, t := range tickets {
			auto := "no"
			if t.AutoGenerated {
				auto = "sí"
			}
			values := []interface{}{
				t.Folio,
				t.CreatedAt.Format("2006-01-02 15:04"),
				string(t.Category),
				string(t.Priority),
				string(t.Status),
				t.OriginModule,
				auto,
				t.Subject,
				t.Description,
				t.Resolution,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el archivo")
		}

		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", `attachment; filename="tickets.xlsx"`)
		return c.Send(buf.Bytes())
	}
}
