package inventory

import (
	"comedor-backend/internal/database"
	"comedor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpsertInventoryRequest struct {
	ItemID      uint    `json:"item_id"`
	Quantity    float64 `json:"quantity"`
	MinQuantity float64 `json:"min_quantity"`
	Location    string  `json:"location"`
}

// POST /api/inventory — crea o actualiza la existencia de un insumo por ubicación
func UpsertInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpsertInventoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.ItemID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "item_id es obligatorio")
		}
		if body.Location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "location es obligatorio")
		}
		if body.Quantity < 0 || body.MinQuantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity y min_quantity no pueden ser negativos")
		}

		var item models.Item
		if err := database.DB.First(&item, "id = ?", body.ItemID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Insumo no encontrado")
		}

		var row models.Inventory
		err := database.DB.Where("item_id = ? AND location = ?", body.ItemID, body.Location).First(&row).Error
		if err != nil {
			row = models.Inventory{
				ItemID:      body.ItemID,
				Quantity:    body.Quantity,
				MinQuantity: body.MinQuantity,
				Location:    body.Location,
			}
			if err := database.DB.Create(&row).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el registro de inventario")
			}
			return c.Status(fiber.StatusCreated).JSON(row)
		}

		updates := map[string]interface{}{
			"quantity":     body.Quantity,
			"min_quantity": body.MinQuantity,
		}
		if err := database.DB.Model(&row).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el inventario")
		}

		return c.JSON(row)
	}
}

// GET /api/inventory
func ListInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Preload("Item")

		if loc := c.Query("location"); loc != "" {
			query = query.Where("location = ?", loc)
		}
		if c.Query("below_minimum") == "true" {
			query = query.Where("quantity < min_quantity")
		}

		var rows []models.Inventory
		if err := query.Order("location ASC, item_id ASC").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar el inventario")
		}

		return c.JSON(rows)
	}
}
