package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Tray: charola servida. Se reporta de forma independiente a la programación;
// el detector de desviación compara ambas.
type Tray struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Number   string    `gorm:"size:50;uniqueIndex;not null" json:"number"` // folio único
	ServedAt time.Time `gorm:"index;not null" json:"served_at"`
	Location string    `gorm:"size:100;not null;index" json:"location"`
	MealTime MealTime  `gorm:"size:20;not null;index" json:"meal_time"`

	Headcount  int     `gorm:"default:0" json:"headcount"`
	SalesTotal float64 `gorm:"default:0" json:"sales_total"`
	CostTotal  float64 `gorm:"default:0" json:"cost_total"`
	Profit     float64 `gorm:"default:0" json:"profit"` // SalesTotal - CostTotal

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tray) BeforeSave(tx *gorm.DB) error {
	if !t.MealTime.Valid() {
		return fmt.Errorf("tiempo de comida desconocido: %q", t.MealTime)
	}
	t.Profit = t.SalesTotal - t.CostTotal
	return nil
}
