package inventory

import (
	"fmt"
	"time"

	"comedor-backend/internal/audit"
	"comedor-backend/internal/auth"
	"comedor-backend/internal/database"
	"comedor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type CreateWasteEntryRequest struct {
	ItemID   uint                 `json:"item_id"`
	Date     string               `json:"date"` // "2025-12-09"
	Category models.WasteCategory `json:"category"`
	Quantity float64              `json:"quantity"`
	Unit     string               `json:"unit"`
	UnitCost float64              `json:"unit_cost"`
	Location string               `json:"location"`
	Reason   string               `json:"reason"` // obligatorio: qué pasó
}

// Auxiliar: datos del usuario autenticado para auditoría
func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "No se pudo obtener el usuario")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Usuario no encontrado")
	}

	return userID, user.Name, nil
}

// POST /api/waste-entries
func CreateWasteEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateWasteEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido: "+err.Error())
		}

		// Validaciones
		if body.ItemID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "item_id es obligatorio")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity debe ser mayor a 0")
		}
		if !body.Category.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "category inválida")
		}
		if body.Reason == "" || len(body.Reason) < 3 {
			return fiber.NewError(fiber.StatusBadRequest, "reason es obligatorio y debe tener al menos 3 caracteres")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La fecha debe tener formato 'YYYY-MM-DD'")
		}

		var item models.Item
		if err := database.DB.First(&item, "id = ?", body.ItemID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Insumo no encontrado")
		}

		unit := body.Unit
		if unit == "" {
			unit = item.Unit
		}
		unitCost := body.UnitCost
		if unitCost == 0 {
			unitCost = item.UnitCost
		}

		entry := models.WasteEntry{
			ItemID:    body.ItemID,
			Date:      d,
			Category:  body.Category,
			Quantity:  body.Quantity,
			Unit:      unit,
			UnitCost:  unitCost,
			TotalCost: body.Quantity * unitCost,
			Location:  body.Location,
			Reason:    body.Reason,
		}

		if err := database.DB.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar la merma")
		}

		// Auditoría
		if userID, userName, err := getUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "waste_entry",
				EntityID:    entry.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Merma: %s - %.2f %s (%s)", item.Name, entry.Quantity, entry.Unit, entry.Reason),
				Before:      nil,
				After:       entry,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

// GET /api/waste-entries
func ListWasteEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Preload("Item")

		if dateFrom := c.Query("date_from"); dateFrom != "" {
			if d, err := time.Parse("2006-01-02", dateFrom); err == nil {
				query = query.Where("date >= ?", d)
			}
		}
		if dateTo := c.Query("date_to"); dateTo != "" {
			if d, err := time.Parse("2006-01-02", dateTo); err == nil {
				// hasta el final del día
				query = query.Where("date < ?", d.AddDate(0, 0, 1))
			}
		}
		if cat := c.Query("category"); cat != "" {
			parsed, err := models.ParseWasteCategory(cat)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			query = query.Where("category = ?", parsed)
		}

		var entries []models.WasteEntry
		if err := query.Order("date DESC, created_at DESC").Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las mermas")
		}

		return c.JSON(entries)
	}
}

// GET /api/waste-entries/export — reporte en Excel
func ExportWasteEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Preload("Item")
		if dateFrom := c.Query("date_from"); dateFrom != "" {
			if d, err := time.Parse("2006-01-02", dateFrom); err == nil {
				query = query.Where("date >= ?", d)
			}
		}
		if dateTo := c.Query("date_to"); dateTo != "" {
			if d, err := time.Parse("2006-01-02", dateTo); err == nil {
				query = query.Where("date < ?", d.AddDate(0, 0, 1))
			}
		}

		var entries []models.WasteEntry
		if err := query.Order("date ASC").Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron consultar las mermas")
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)

		headers := []string{"Fecha", "Insumo", "Categoría", "Cantidad", "Unidad", "Costo unitario", "Costo total", "Ubicación", "Motivo"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, e := range entries {
			values := []interface{}{
				e.Date.Format("2006-01-02"),
				e.Item.Name,
				string(e.Category),
				e.Quantity,
				e.Unit,
				e.UnitCost,
				e.TotalCost,
				e.Location,
				e.Reason,
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
		c.Set("Content-Disposition", `attachment; filename="mermas.xlsx"`)
		return c.Send(buf.Bytes())
	}
}
