package alerts

import (
	"fmt"
	"time"

	"comedor-backend/internal/models"

	"gorm.io/gorm"
)

// reportDeadline: hora límite para reportar charolas de un tiempo de comida:
// hora nominal de servicio + 2 horas, en la zona horaria de la fecha.
func reportDeadline(day time.Time, meal models.MealTime) time.Time {
	start, _ := dayBounds(day)
	return start.Add(time.Duration(meal.NominalServiceHour()+2) * time.Hour)
}

// detectMissingReport: programaciones con charolas planeadas cuyo reporte de
// servicio no se ha capturado pasada la hora límite del tiempo de comida.
func (e *Engine) detectMissingReport(tx *gorm.DB, day time.Time) ([]uint, error) {
	start, end := dayBounds(day)
	now := e.now()

	var created []uint
	for _, meal := range models.AllMealTimes {
		if now.Before(reportDeadline(day, meal)) {
			continue
		}

		var schedules []models.MenuSchedule
		err := tx.Where("from_date <= ? AND to_date >= ?", start, start).
			Where("meal_time = ? AND planned_trays > 0", meal).
			Find(&schedules).Error
		if err != nil {
			return nil, err
		}

		for _, sched := range schedules {
			var reported int64
			err := tx.Model(&models.Tray{}).
				Where("served_at >= ? AND served_at < ?", start, end).
				Where("meal_time = ? AND location = ?", sched.MealTime, sched.Location).
				Count(&reported).Error
			if err != nil {
				return nil, err
			}
			if reported > 0 {
				continue
			}

			var dup int64
			err = tx.Model(&models.Ticket{}).
				Where("schedule_id = ? AND origin_module = ?", sched.ID, OriginReport).
				Where("target_date = ?", start).
				Count(&dup).Error
			if err != nil {
				return nil, err
			}
			if dup > 0 {
				continue
			}

			scheduleID := sched.ID
			ticket := models.Ticket{
				Category: models.TicketInquiry,
				Subject:  fmt.Sprintf("Reporte de servicio pendiente: %s en %s", meal.Label(), sched.Location),
				Description: fmt.Sprintf(
					"La programación %d (%s, %s) tiene %d charolas planeadas para el %s y no se ha reportado ninguna charola servida. "+
						"La hora límite de captura (%s) ya pasó.",
					sched.ID, meal.Label(), sched.Location, sched.PlannedTrays, day.Format("2006-01-02"),
					reportDeadline(day, meal).Format("15:04"),
				),
				Priority:     models.PriorityMedium,
				ScheduleID:   &scheduleID,
				OriginModule: OriginReport,
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
