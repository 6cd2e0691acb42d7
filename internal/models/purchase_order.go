package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type PurchaseOrderStatus string

const (
	PurchaseOrderDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderSent      PurchaseOrderStatus = "sent"
	PurchaseOrderReceived  PurchaseOrderStatus = "received"
	PurchaseOrderCancelled PurchaseOrderStatus = "cancelled"
)

func ParsePurchaseOrderStatus(s string) (PurchaseOrderStatus, error) {
	switch PurchaseOrderStatus(s) {
	case PurchaseOrderDraft, PurchaseOrderSent, PurchaseOrderReceived, PurchaseOrderCancelled:
		return PurchaseOrderStatus(s), nil
	}
	return "", fmt.Errorf("estatus de orden de compra desconocido: %q", s)
}

func (s PurchaseOrderStatus) Valid() bool {
	_, err := ParsePurchaseOrderStatus(string(s))
	return err == nil
}

func (s *PurchaseOrderStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParsePurchaseOrderStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// PurchaseOrder: orden de compra a un proveedor
type PurchaseOrder struct {
	ID           uint                `gorm:"primaryKey" json:"id"`
	SupplierID   uint                `gorm:"index;not null" json:"supplier_id"`
	Supplier     Supplier            `json:"supplier,omitempty"`
	OrderDate    time.Time           `gorm:"index;not null" json:"order_date"`
	ExpectedDate *time.Time          `json:"expected_date"` // entrega esperada
	Status       PurchaseOrderStatus `gorm:"size:20;not null;index" json:"status"`
	Notes        string              `gorm:"size:500" json:"notes"`

	Lines []PurchaseOrderLine `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE" json:"lines"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PurchaseOrderLine: renglón de la orden
type PurchaseOrderLine struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uint      `gorm:"index;not null" json:"purchase_order_id"`
	ItemID          uint      `gorm:"index;not null" json:"item_id"`
	Item            Item      `json:"item,omitempty"`
	Quantity        float64   `gorm:"not null" json:"quantity"`
	Unit            string    `gorm:"size:20;not null" json:"unit"`
	UnitCost        float64   `gorm:"default:0" json:"unit_cost"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p *PurchaseOrder) BeforeSave(tx *gorm.DB) error {
	if !p.Status.Valid() {
		return fmt.Errorf("estatus de orden de compra desconocido: %q", p.Status)
	}
	return nil
}
