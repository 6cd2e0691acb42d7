package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Inventory: existencia actual de un insumo por ubicación
type Inventory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ItemID      uint      `gorm:"index;not null" json:"item_id"`
	Item        Item      `json:"item,omitempty"`
	Quantity    float64   `gorm:"not null" json:"quantity"`     // cantidad actual en la unidad del insumo
	MinQuantity float64   `gorm:"not null" json:"min_quantity"` // mínimo de seguridad
	Location    string    `gorm:"size:100;not null;index" json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (i *Inventory) BeforeSave(tx *gorm.DB) error {
	if i.Quantity < 0 {
		return fmt.Errorf("la cantidad de inventario no puede ser negativa")
	}
	if i.MinQuantity < 0 {
		return fmt.Errorf("el mínimo de inventario no puede ser negativo")
	}
	return nil
}
