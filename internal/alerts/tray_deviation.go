package alerts

import (
	"fmt"
	"math"
	"time"

	"comedor-backend/internal/models"

	"gorm.io/gorm"
)

// trayDeviationThreshold: umbral de desviación en charolas para un plan dado
func trayDeviationThreshold(planned int) float64 {
	return math.Max(5, float64(planned)*0.10)
}

// trayDeviationTriggered: la desviación amerita ticket
func trayDeviationTriggered(planned, served int) bool {
	if planned <= 0 {
		return false
	}
	diff := float64(served - planned)
	return math.Abs(diff) > trayDeviationThreshold(planned)
}

func trayDeviationPriority(percentage float64) models.TicketPriority {
	if math.Abs(percentage) > 20 {
		return models.PriorityHigh
	}
	return models.PriorityMedium
}

// detectTrayDeviation: compara charolas servidas contra lo planeado por cada
// programación activa en la fecha. Déficit -> inquiry; exceso -> complaint.
// Llave de dedup: (programación, origen tray, automático, fecha de creación).
func (e *Engine) detectTrayDeviation(tx *gorm.DB, day time.Time) ([]uint, error) {
	start, end := dayBounds(day)

	var schedules []models.MenuSchedule
	if err := tx.Where("from_date <= ? AND to_date >= ?", start, start).Find(&schedules).Error; err != nil {
		return nil, err
	}

	var created []uint
	for _, sched := range schedules {
		if sched.PlannedTrays <= 0 {
			continue
		}

		var served int64
		err := tx.Model(&models.Tray{}).
			Where("served_at >= ? AND served_at < ?", start, end).
			Where("meal_time = ? AND location = ?", sched.MealTime, sched.Location).
			Count(&served).Error
		if err != nil {
			return nil, err
		}

		if !trayDeviationTriggered(sched.PlannedTrays, int(served)) {
			continue
		}

		// Dedup: a lo más un ticket por programación por fecha objetivo. La llave
		// es target_date, no created_at: la corrida puede lanzarse para fechas
		// pasadas y debe seguir siendo idempotente.
		var dup int64
		err = tx.Model(&models.Ticket{}).
			Where("schedule_id = ? AND origin_module = ? AND auto_generated = ?", sched.ID, OriginTray, true).
			Where("target_date = ?", start).
			Count(&dup).Error
		if err != nil {
			return nil, err
		}
		if dup > 0 {
			continue
		}

		diff := int(served) - sched.PlannedTrays
		percentage := float64(diff) / float64(sched.PlannedTrays) * 100

		category := models.TicketComplaint
		subject := fmt.Sprintf("Exceso de charolas servidas (%s, %s)", sched.MealTime.Label(), sched.Location)
		if diff < 0 {
			category = models.TicketInquiry
			subject = fmt.Sprintf("Déficit de charolas servidas (%s, %s)", sched.MealTime.Label(), sched.Location)
		}

		scheduleID := sched.ID
		ticket := models.Ticket{
			Category: category,
			Subject:  subject,
			Description: fmt.Sprintf(
				"Programación %d (%s, %s, %s): planeadas %d charolas, servidas %d. Diferencia: %+d (%+.1f%%).",
				sched.ID, day.Format("2006-01-02"), sched.MealTime.Label(), sched.Location,
				sched.PlannedTrays, served, diff, percentage,
			),
			Priority:     trayDeviationPriority(percentage),
			ScheduleID:   &scheduleID,
			OriginModule: OriginTray,
			TargetDate:   &start,
		}

		if err := createTicket(tx, &ticket); err != nil {
			return nil, err
		}
		created = append(created, ticket.ID)
	}

	return created, nil
}
