package alerts

import (
	"fmt"
	"time"

	"comedor-backend/internal/models"

	"gorm.io/gorm"
)

func shortfallPriority(shortfallPct float64) models.TicketPriority {
	if shortfallPct > 50 {
		return models.PriorityUrgent
	}
	return models.PriorityHigh
}

// detectInventoryBelowMinimum: todo registro de inventario por debajo de su
// mínimo, sin acotar por fecha (revisa el estado actual). La dedup es por
// estado, no por día: mientras exista un ticket abierto o en progreso para el
// mismo registro, no se emite otro.
func (e *Engine) detectInventoryBelowMinimum(tx *gorm.DB, _ time.Time) ([]uint, error) {
	var rows []models.Inventory
	err := tx.Preload("Item").Preload("Item.Supplier").
		Where("quantity < min_quantity").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	var created []uint
	for _, row := range rows {
		var open int64
		err := tx.Model(&models.Ticket{}).
			Where("inventory_id = ? AND origin_module = ?", row.ID, OriginInventory).
			Where("status IN ?", []models.TicketStatus{models.TicketOpen, models.TicketInProgress}).
			Count(&open).Error
		if err != nil {
			return nil, err
		}
		if open > 0 {
			continue
		}

		shortfall := row.MinQuantity - row.Quantity
		var shortfallPct float64
		if row.MinQuantity > 0 {
			shortfallPct = shortfall / row.MinQuantity * 100
		}

		itemName := row.Item.Name
		if itemName == "" {
			itemName = fmt.Sprintf("insumo %d", row.ItemID)
		}

		description := fmt.Sprintf(
			"Inventario de %s en %s por debajo del mínimo: existencia %.2f %s, mínimo %.2f %s. Faltante: %.2f (%.1f%%).",
			itemName, row.Location, row.Quantity, row.Item.Unit, row.MinQuantity, row.Item.Unit,
			shortfall, shortfallPct,
		)

		rowID := row.ID
		ticket := models.Ticket{
			Category:     models.TicketInquiry,
			Subject:      fmt.Sprintf("Inventario bajo mínimo: %s (%s)", itemName, row.Location),
			Priority:     shortfallPriority(shortfallPct),
			InventoryID:  &rowID,
			OriginModule: OriginInventory,
		}

		// Proveedor autorizado: se liga y se menciona para agilizar la compra
		if row.Item.Supplier != nil && row.Item.Supplier.Authorized {
			supplierID := row.Item.Supplier.ID
			ticket.SupplierID = &supplierID
			description += fmt.Sprintf(" Proveedor autorizado: %s.", row.Item.Supplier.Name)
		}
		ticket.Description = description

		if err := createTicket(tx, &ticket); err != nil {
			return nil, err
		}
		created = append(created, ticket.ID)
	}

	return created, nil
}
