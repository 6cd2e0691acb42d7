package purchasing

import (
	"time"

	"comedor-backend/internal/database"
	"comedor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateSupplierRequest struct {
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	Phone      string `json:"phone"`
	Authorized bool   `json:"authorized"`
}

// POST /api/suppliers
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name es obligatorio")
		}

		supplier := models.Supplier{
			Name:       body.Name,
			Contact:    body.Contact,
			Phone:      body.Phone,
			Authorized: body.Authorized,
		}
		if err := database.DB.Create(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el proveedor")
		}

		return c.Status(fiber.StatusCreated).JSON(supplier)
	}
}

// GET /api/suppliers
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Order("name ASC").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los proveedores")
		}
		return c.JSON(suppliers)
	}
}

type PurchaseOrderLineRequest struct {
	ItemID   uint    `json:"item_id"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	UnitCost float64 `json:"unit_cost"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID   uint                       `json:"supplier_id"`
	OrderDate    string                     `json:"order_date"`
	ExpectedDate string                     `json:"expected_date"` // opcional
	Notes        string                     `json:"notes"`
	Lines        []PurchaseOrderLineRequest `json:"lines"`
}

// POST /api/purchase-orders
func CreatePurchaseOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePurchaseOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.SupplierID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "supplier_id es obligatorio")
		}
		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", body.SupplierID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Proveedor no encontrado")
		}

		orderDate, err := time.Parse("2006-01-02", body.OrderDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "order_date debe tener formato 'YYYY-MM-DD'")
		}

		po := models.PurchaseOrder{
			SupplierID: body.SupplierID,
			OrderDate:  orderDate,
			Status:     models.PurchaseOrderDraft,
			Notes:      body.Notes,
		}
		if body.ExpectedDate != "" {
			exp, err := time.Parse("2006-01-02", body.ExpectedDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "expected_date debe tener formato 'YYYY-MM-DD'")
			}
			po.ExpectedDate = &exp
		}

		for _, line := range body.Lines {
			if line.ItemID == 0 || line.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "cada renglón requiere item_id y quantity > 0")
			}
			po.Lines = append(po.Lines, models.PurchaseOrderLine{
				ItemID:   line.ItemID,
				Quantity: line.Quantity,
				Unit:     line.Unit,
				UnitCost: line.UnitCost,
			})
		}

		if err := database.DB.Create(&po).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la orden de compra")
		}

		return c.Status(fiber.StatusCreated).JSON(po)
	}
}

// GET /api/purchase-orders
func ListPurchaseOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Preload("Supplier").Preload("Lines").Preload("Lines.Item")

		if status := c.Query("status"); status != "" {
			parsed, err := models.ParsePurchaseOrderStatus(status)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			query = query.Where("status = ?", parsed)
		}
		if supplierID := c.QueryInt("supplier_id"); supplierID > 0 {
			query = query.Where("supplier_id = ?", supplierID)
		}

		var orders []models.PurchaseOrder
		if err := query.Order("order_date DESC").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las órdenes de compra")
		}

		return c.JSON(orders)
	}
}

type UpdatePurchaseOrderStatusRequest struct {
	Status models.PurchaseOrderStatus `json:"status"`
}

// PUT /api/purchase-orders/:id/status
func UpdatePurchaseOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var po models.PurchaseOrder
		if err := database.DB.First(&po, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Orden de compra no encontrada")
		}

		var body UpdatePurchaseOrderStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido: "+err.Error())
		}

		if err := database.DB.Model(&po).Update("status", body.Status).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el estatus")
		}

		return c.JSON(po)
	}
}
