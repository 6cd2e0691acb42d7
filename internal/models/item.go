package models

import "time"

// Item: insumo de almacén. Calorías y costo se expresan por unidad base (Unit).
type Item struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Name            string  `gorm:"size:100;not null;unique" json:"name"`
	Unit            string  `gorm:"size:20;not null" json:"unit"` // g, kg, ml, l, pz
	CaloriesPerUnit float64 `gorm:"not null;default:0" json:"calories_per_unit"`
	UnitCost        float64 `gorm:"not null;default:0" json:"unit_cost"`

	// Proveedor autorizado (opcional)
	SupplierID *uint     `gorm:"index" json:"supplier_id"`
	Supplier   *Supplier `json:"supplier,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
