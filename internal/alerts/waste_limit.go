package alerts

import (
	"fmt"
	"math"
	"strings"
	"time"

	"comedor-backend/internal/models"

	"gorm.io/gorm"
)

// wasteAbsoluteThreshold: umbral absoluto de merma en la unidad del insumo.
// La referencia es max(existencia actual, mínimo); sin inventario la
// referencia es cero y el umbral queda en 10 unidades.
func wasteAbsoluteThreshold(reference float64) float64 {
	return math.Max(10, 0.05*reference)
}

// wasteTriggered: la merma total del día amerita ticket
func wasteTriggered(total, reference float64) bool {
	if total > wasteAbsoluteThreshold(reference) {
		return true
	}
	return reference > 0 && total/reference*100 > 5
}

func wastePriority(total, reference float64) models.TicketPriority {
	if reference > 0 && total/reference*100 > 10 {
		return models.PriorityHigh
	}
	return models.PriorityMedium
}

// detectWasteLimit: agrupa las mermas del día por insumo y compara contra el
// umbral de referencia de inventario. Siempre genera complaint.
// Llave de dedup: (merma del grupo, origen waste, fecha) — un ticket por
// insumo por día.
func (e *Engine) detectWasteLimit(tx *gorm.DB, day time.Time) ([]uint, error) {
	start, end := dayBounds(day)

	var entries []models.WasteEntry
	err := tx.Preload("Item").
		Where("date >= ? AND date < ?", start, end).
		Order("item_id ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	groups := make(map[uint][]models.WasteEntry)
	for _, entry := range entries {
		groups[entry.ItemID] = append(groups[entry.ItemID], entry)
	}

	var created []uint
	for itemID, group := range groups {
		var total float64
		for _, entry := range group {
			total += entry.Quantity
		}

		// Referencia: max(existencia, mínimo) sumando las ubicaciones del insumo
		var reference float64
		var rows []models.Inventory
		if err := tx.Where("item_id = ?", itemID).Find(&rows).Error; err != nil {
			return nil, err
		}
		var onHand, minimum float64
		for _, r := range rows {
			onHand += r.Quantity
			minimum += r.MinQuantity
		}
		if len(rows) > 0 {
			reference = math.Max(onHand, minimum)
		}

		if !wasteTriggered(total, reference) {
			continue
		}

		// Dedup: cualquier merma del grupo ya ligada a un ticket de esta fecha
		// objetivo (idempotencia también para corridas de fechas pasadas)
		groupIDs := make([]uint, 0, len(group))
		for _, entry := range group {
			groupIDs = append(groupIDs, entry.ID)
		}
		var dup int64
		err = tx.Model(&models.Ticket{}).
			Where("waste_entry_id IN ? AND origin_module = ?", groupIDs, OriginWaste).
			Where("target_date = ?", start).
			Count(&dup).Error
		if err != nil {
			return nil, err
		}
		if dup > 0 {
			continue
		}

		item := group[0].Item
		itemName := item.Name
		if itemName == "" {
			itemName = fmt.Sprintf("insumo %d", itemID)
		}

		var detail strings.Builder
		fmt.Fprintf(&detail, "Merma total de %s el %s: %.2f %s (referencia de inventario: %.2f).\n",
			itemName, day.Format("2006-01-02"), total, item.Unit, reference)
		for _, entry := range group {
			fmt.Fprintf(&detail, "- [%s] %.2f %s, costo $%.2f: %s\n",
				entry.Category, entry.Quantity, entry.Unit, entry.TotalCost, entry.Reason)
		}

		firstID := group[0].ID
		ticket := models.Ticket{
			Category:     models.TicketComplaint,
			Subject:      fmt.Sprintf("Merma excesiva de %s", itemName),
			Description:  detail.String(),
			Priority:     wastePriority(total, reference),
			WasteEntryID: &firstID,
			OriginModule: OriginWaste,
			TargetDate:   &start,
		}

		if err := createTicket(tx, &ticket); err != nil {
			return nil, err
		}
		created = append(created, ticket.ID)
	}

	return created, nil
}
