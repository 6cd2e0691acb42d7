package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// WasteCategory: causa de la merma
type WasteCategory string

const (
	WasteExpiration    WasteCategory = "expiration"
	WasteDeterioration WasteCategory = "deterioration"
	WastePreparation   WasteCategory = "preparation"
	WasteService       WasteCategory = "service"
	WasteOther         WasteCategory = "other"
)

func ParseWasteCategory(s string) (WasteCategory, error) {
	switch WasteCategory(s) {
	case WasteExpiration, WasteDeterioration, WastePreparation, WasteService, WasteOther:
		return WasteCategory(s), nil
	}
	return "", fmt.Errorf("categoría de merma desconocida: %q", s)
}

func (c WasteCategory) Valid() bool {
	_, err := ParseWasteCategory(string(c))
	return err == nil
}

func (c *WasteCategory) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseWasteCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// WasteEntry: registro de merma de un insumo (diario)
type WasteEntry struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ItemID    uint          `gorm:"index;not null" json:"item_id"`
	Item      Item          `json:"item,omitempty"`
	Date      time.Time     `gorm:"index;not null" json:"date"` // fecha de la merma
	Category  WasteCategory `gorm:"size:20;not null" json:"category"`
	Quantity  float64       `gorm:"not null" json:"quantity"`
	Unit      string        `gorm:"size:20;not null" json:"unit"`
	UnitCost  float64       `gorm:"default:0" json:"unit_cost"`
	TotalCost float64       `gorm:"default:0" json:"total_cost"`
	Location  string        `gorm:"size:100;index" json:"location"`
	Reason    string        `gorm:"size:500;not null" json:"reason"` // obligatorio: qué pasó
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (w *WasteEntry) BeforeSave(tx *gorm.DB) error {
	if !w.Category.Valid() {
		return fmt.Errorf("categoría de merma desconocida: %q", w.Category)
	}
	return nil
}
