package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// MenuSchedule: programación de menú para un rango de fechas [FromDate, ToDate]
// (inclusive), un tiempo de comida y una ubicación.
type MenuSchedule struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	FromDate time.Time `gorm:"index;not null" json:"from_date"`
	ToDate   time.Time `gorm:"index;not null" json:"to_date"`
	MealTime MealTime  `gorm:"size:20;not null;index" json:"meal_time"`
	Location string    `gorm:"size:100;not null;index" json:"location"`

	EstimatedHeadcount int `gorm:"default:0" json:"estimated_headcount"` // comensales estimados
	PlannedTrays       int `gorm:"default:0" json:"planned_trays"`       // charolas planeadas
	ProducedTrays      int `gorm:"default:0" json:"produced_trays"`      // charolas producidas

	Recipes []MenuScheduleRecipe `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE" json:"recipes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MenuScheduleRecipe: receta programada dentro de una programación
type MenuScheduleRecipe struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ScheduleID uint      `gorm:"index;not null" json:"schedule_id"`
	RecipeID   uint      `gorm:"index;not null" json:"recipe_id"`
	Recipe     Recipe    `json:"recipe,omitempty"`
	Portions   int       `gorm:"not null" json:"portions"` // porciones programadas
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *MenuSchedule) BeforeSave(tx *gorm.DB) error {
	if s.ToDate.Before(s.FromDate) {
		return fmt.Errorf("la fecha inicial no puede ser posterior a la final")
	}
	if !s.MealTime.Valid() {
		return fmt.Errorf("tiempo de comida desconocido: %q", s.MealTime)
	}
	return nil
}

// ActiveOn: la programación está activa el día d (comparación por fecha, no por hora)
func (s *MenuSchedule) ActiveOn(d time.Time) bool {
	day := d.Truncate(24 * time.Hour)
	from := s.FromDate.Truncate(24 * time.Hour)
	to := s.ToDate.Truncate(24 * time.Hour)
	return !day.Before(from) && !day.After(to)
}
