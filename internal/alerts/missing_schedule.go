package alerts

import (
	"fmt"
	"time"

	"comedor-backend/internal/models"

	"gorm.io/gorm"
)

// missingScheduleKey: marca estable dentro de la descripción, usada por la
// dedup por substring. Frágil ante cambios de formato; se conserva así porque
// la combinación (tiempo, ubicación) no tiene columna propia en el ticket.
func missingScheduleKey(meal models.MealTime, location string) string {
	return fmt.Sprintf("[%s/%s]", meal, location)
}

// detectMissingSchedule: recorre el producto cruzado de tiempos de comida y
// ubicaciones conocidas (distintas ubicaciones de charolas; si no hay
// ninguna, la ubicación por defecto) y reporta las combinaciones sin
// programación activa en la fecha.
func (e *Engine) detectMissingSchedule(tx *gorm.DB, day time.Time) ([]uint, error) {
	start, _ := dayBounds(day)

	var locations []string
	err := tx.Model(&models.Tray{}).Distinct("location").Order("location ASC").Pluck("location", &locations).Error
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		locations = []string{e.defaultLocation}
	}

	var created []uint
	for _, meal := range models.AllMealTimes {
		for _, location := range locations {
			var active int64
			err := tx.Model(&models.MenuSchedule{}).
				Where("from_date <= ? AND to_date >= ?", start, start).
				Where("meal_time = ? AND location = ?", meal, location).
				Count(&active).Error
			if err != nil {
				return nil, err
			}
			if active > 0 {
				continue
			}

			// Dedup por substring de la descripción, acotada a la fecha objetivo
			key := missingScheduleKey(meal, location)
			var dup int64
			err = tx.Model(&models.Ticket{}).
				Where("origin_module = ? AND auto_generated = ?", OriginSchedule, true).
				Where("target_date = ?", start).
				Where("description LIKE ?", "%"+key+"%").
				Count(&dup).Error
			if err != nil {
				return nil, err
			}
			if dup > 0 {
				continue
			}

			ticket := models.Ticket{
				Category: models.TicketInquiry,
				Subject:  fmt.Sprintf("Falta programación de menú: %s en %s", meal.Label(), location),
				Description: fmt.Sprintf(
					"%s No hay programación de menú activa para %s en %s el %s. "+
						"Sin programación no hay visibilidad de compras ni de existencias requeridas para el servicio.",
					key, meal.Label(), location, day.Format("2006-01-02"),
				),
				Priority:     models.PriorityHigh,
				OriginModule: OriginSchedule,
				TargetDate:   &start,
			}

			if err := createTicket(tx, &ticket); err != nil {
				return nil, err
			}
			created = append(created, ticket.ID)
		}
	}

	return created, nil
}
