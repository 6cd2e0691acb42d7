package inventory

import (
	"comedor-backend/internal/database"
	"comedor-backend/internal/models"
	"comedor-backend/internal/units"

	"github.com/gofiber/fiber/v2"
)

type CreateItemRequest struct {
	Name            string  `json:"name"`
	Unit            string  `json:"unit"`
	CaloriesPerUnit float64 `json:"calories_per_unit"`
	UnitCost        float64 `json:"unit_cost"`
	SupplierID      *uint   `json:"supplier_id"`
}

// POST /api/items
func CreateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name es obligatorio")
		}
		if !units.Known(body.Unit) {
			return fiber.NewError(fiber.StatusBadRequest, "unit desconocida: "+body.Unit)
		}

		if body.SupplierID != nil {
			var supplier models.Supplier
			if err := database.DB.First(&supplier, "id = ?", *body.SupplierID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Proveedor no encontrado")
			}
		}

		item := models.Item{
			Name:            body.Name,
			Unit:            body.Unit,
			CaloriesPerUnit: body.CaloriesPerUnit,
			UnitCost:        body.UnitCost,
			SupplierID:      body.SupplierID,
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el insumo")
		}

		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// GET /api/items
func ListItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.Item
		if err := database.DB.Preload("Supplier").Order("name ASC").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los insumos")
		}
		return c.JSON(items)
	}
}

// PUT /api/items/:id
func UpdateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.Item
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Insumo no encontrado")
		}

		var body CreateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Unit != "" && !units.Known(body.Unit) {
			return fiber.NewError(fiber.StatusBadRequest, "unit desconocida: "+body.Unit)
		}

		updates := map[string]interface{}{
			"calories_per_unit": body.CaloriesPerUnit,
			"unit_cost":         body.UnitCost,
			"supplier_id":       body.SupplierID,
		}
		if body.Name != "" {
			updates["name"] = body.Name
		}
		if body.Unit != "" {
			updates["unit"] = body.Unit
		}

		if err := database.DB.Model(&item).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el insumo")
		}

		return c.JSON(item)
	}
}
