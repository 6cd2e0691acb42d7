package alerts

import (
	"errors"
	"fmt"
	"time"

	"comedor-backend/internal/menu"
	"comedor-backend/internal/models"

	"gorm.io/gorm"
)

// CheckScheduleSupply: verificación de suficiencia de proveedores para una
// programación. No forma parte de la corrida diaria; se invoca al programar
// un menú. Por cada insumo con cantidad por ordenar y proveedor conocido se
// abre un ticket, ligando la orden de compra abierta si existe.
// Llave de dedup: el par (programación, proveedor).
func (e *Engine) CheckScheduleSupply(scheduleID uint) ([]models.Ticket, error) {
	var created []models.Ticket

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var sched models.MenuSchedule
		if err := tx.First(&sched, scheduleID).Error; err != nil {
			return fmt.Errorf("no se encontró la programación %d: %w", scheduleID, err)
		}

		reqs, err := menu.ProjectRequirements(tx, sched.FromDate)
		if err != nil {
			return err
		}

		for _, req := range reqs {
			if req.QuantityToOrder <= 0 || req.Supplier == nil {
				continue
			}

			// Dedup: ya existe un ticket que liga esta programación con este proveedor
			var dup int64
			err := tx.Model(&models.Ticket{}).
				Where("schedule_id = ? AND supplier_id = ? AND origin_module = ?", sched.ID, req.Supplier.ID, OriginSupply).
				Count(&dup).Error
			if err != nil {
				return err
			}
			if dup > 0 {
				continue
			}

			schedID := sched.ID
			supplierID := req.Supplier.ID
			ticket := models.Ticket{
				Category: models.TicketInquiry,
				Subject:  fmt.Sprintf("Compra requerida: %s (%s)", req.Item.Name, req.Supplier.Name),
				Description: fmt.Sprintf(
					"La programación %d (%s a %s) requiere %.2f %s de %s; existencia actual %.2f %s, por ordenar %.2f %s. Proveedor: %s.",
					sched.ID, sched.FromDate.Format("2006-01-02"), sched.ToDate.Format("2006-01-02"),
					req.QuantityNeeded, req.Unit, req.Item.Name,
					req.QuantityOnHand, req.Unit, req.QuantityToOrder, req.Unit,
					req.Supplier.Name,
				),
				Priority:     models.PriorityHigh,
				ScheduleID:   &schedID,
				SupplierID:   &supplierID,
				OriginModule: OriginSupply,
			}

			// Orden de compra abierta o enviada que traslape el rango de la programación
			var po models.PurchaseOrder
			err = tx.Where("supplier_id = ?", req.Supplier.ID).
				Where("status IN ?", []models.PurchaseOrderStatus{models.PurchaseOrderDraft, models.PurchaseOrderSent}).
				Where("order_date <= ?", endOfRange(sched.ToDate)).
				Where("expected_date IS NULL OR expected_date >= ?", sched.FromDate).
				Order("order_date DESC").
				First(&po).Error
			switch {
			case err == nil:
				poID := po.ID
				ticket.PurchaseOrderID = &poID
				ticket.Description += fmt.Sprintf(" Orden de compra relacionada: %d (%s).", po.ID, po.Status)
			case !errors.Is(err, gorm.ErrRecordNotFound):
				// sin orden ligada es aceptable; un error real de consulta no
				return err
			}

			if err := createTicket(tx, &ticket); err != nil {
				return err
			}
			created = append(created, ticket)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func endOfRange(to time.Time) time.Time {
	_, end := dayBounds(to)
	return end
}
