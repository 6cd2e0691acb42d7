package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type TicketCategory string

const (
	TicketComplaint  TicketCategory = "complaint"
	TicketInquiry    TicketCategory = "inquiry"
	TicketSuggestion TicketCategory = "suggestion"
	TicketClaim      TicketCategory = "claim"
)

func ParseTicketCategory(s string) (TicketCategory, error) {
	switch TicketCategory(s) {
	case TicketComplaint, TicketInquiry, TicketSuggestion, TicketClaim:
		return TicketCategory(s), nil
	}
	return "", fmt.Errorf("categoría de ticket desconocida: %q", s)
}

func (c TicketCategory) Valid() bool {
	_, err := ParseTicketCategory(string(c))
	return err == nil
}

func (c *TicketCategory) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTicketCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

func ParseTicketStatus(s string) (TicketStatus, error) {
	switch TicketStatus(s) {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return TicketStatus(s), nil
	}
	return "", fmt.Errorf("estatus de ticket desconocido: %q", s)
}

func (s TicketStatus) Valid() bool {
	_, err := ParseTicketStatus(string(s))
	return err == nil
}

func (s *TicketStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseTicketStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

func ParseTicketPriority(s string) (TicketPriority, error) {
	switch TicketPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return TicketPriority(s), nil
	}
	return "", fmt.Errorf("prioridad de ticket desconocida: %q", s)
}

func (p TicketPriority) Valid() bool {
	_, err := ParseTicketPriority(string(p))
	return err == nil
}

func (p *TicketPriority) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTicketPriority(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Ticket: ticket de soporte. Lo crea un detector (AutoGenerated) o un agente.
// Nunca se borra físicamente; el cierre es una transición de estatus.
type Ticket struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Folio       string         `gorm:"size:40;uniqueIndex;not null" json:"folio"`
	Category    TicketCategory `gorm:"size:20;not null;index" json:"category"`
	Subject     string         `gorm:"size:200;not null" json:"subject"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Status      TicketStatus   `gorm:"size:20;not null;index;default:open" json:"status"`
	Priority    TicketPriority `gorm:"size:20;not null" json:"priority"`

	// Referencias débiles a otros módulos (por id, sin cascada)
	ScheduleID      *uint `gorm:"index" json:"schedule_id"`
	WasteEntryID    *uint `gorm:"index" json:"waste_entry_id"`
	InventoryID     *uint `gorm:"index" json:"inventory_id"`
	SupplierID      *uint `gorm:"index" json:"supplier_id"`
	PurchaseOrderID *uint `gorm:"index" json:"purchase_order_id"`

	OriginModule  string     `gorm:"size:30;index" json:"origin_module"` // detector u origen manual
	AutoGenerated bool       `gorm:"default:false;index" json:"auto_generated"`
	TargetDate    *time.Time `gorm:"index" json:"target_date"` // fecha objetivo de la corrida que lo generó

	AssignedToID *uint `gorm:"index" json:"assigned_to_id"`
	AssignedTo   *User `json:"assigned_to,omitempty"`

	ResolvedAt *time.Time `json:"resolved_at"`
	Resolution string     `gorm:"size:1000" json:"resolution"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Ticket) BeforeSave(tx *gorm.DB) error {
	if !t.Category.Valid() {
		return fmt.Errorf("categoría de ticket desconocida: %q", t.Category)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("estatus de ticket desconocido: %q", t.Status)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("prioridad de ticket desconocida: %q", t.Priority)
	}
	return nil
}
