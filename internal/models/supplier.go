package models

import "time"

// Supplier: proveedor de insumos
type Supplier struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:200;not null" json:"name"`
	Contact    string    `gorm:"size:200" json:"contact"`
	Phone      string    `gorm:"size:50" json:"phone"`
	Authorized bool      `gorm:"default:false" json:"authorized"` // proveedor autorizado para compras
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
