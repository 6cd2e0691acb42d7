package alerts

import (
	"fmt"
	"time"

	"comedor-backend/internal/models"
	"comedor-backend/internal/tickets"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Módulos de origen de los tickets automáticos. Forman parte de la llave de
// deduplicación de cada detector.
const (
	OriginTray      = "tray"
	OriginWaste     = "waste"
	OriginInventory = "inventory"
	OriginSchedule  = "schedule"
	OriginReport    = "report"
	OriginSupply    = "supply"
)

// Engine: motor de detección de desviaciones operativas. Recibe la unidad de
// trabajo de forma explícita; cada detector corre dentro de su propia
// transacción y hace commit al terminar.
//
// Nota: si el motor se invoca de forma concurrente, la ventana entre la
// consulta de deduplicación y el insert puede producir tickets duplicados.
// No hay candado que la cierre; queda pendiente de decisión de producto.
type Engine struct {
	db              *gorm.DB
	log             *logrus.Logger
	defaultLocation string

	now func() time.Time // reemplazable en pruebas
}

func NewEngine(db *gorm.DB, log *logrus.Logger, defaultLocation string) *Engine {
	return &Engine{
		db:              db,
		log:             log,
		defaultLocation: defaultLocation,
		now:             time.Now,
	}
}

// Summary: resultado de una corrida diaria. Siempre se regresa completo aunque
// fallen detectores individuales.
type Summary struct {
	Date                  string `json:"date"`
	TrayDeviation         []uint `json:"tray_deviation"`
	WasteLimit            []uint `json:"waste_limit"`
	InventoryBelowMinimum []uint `json:"inventory_below_minimum"`
	MissingSchedule       []uint `json:"missing_schedule"`
	MissingReport         []uint `json:"missing_report"`
	Total                 int    `json:"total"`
}

// RunDailyChecks: corre los cinco detectores diarios para la fecha objetivo.
// La falla de un detector se registra y contribuye cero tickets; nunca aborta
// a los demás ni se propaga al llamador.
func (e *Engine) RunDailyChecks(date time.Time) Summary {
	day, _ := dayBounds(date)
	summary := Summary{Date: day.Format("2006-01-02")}

	checks := []struct {
		name string
		out  *[]uint
		fn   func(tx *gorm.DB, day time.Time) ([]uint, error)
	}{
		{"tray_deviation", &summary.TrayDeviation, e.detectTrayDeviation},
		{"waste_limit", &summary.WasteLimit, e.detectWasteLimit},
		{"inventory_below_minimum", &summary.InventoryBelowMinimum, e.detectInventoryBelowMinimum},
		{"missing_schedule", &summary.MissingSchedule, e.detectMissingSchedule},
		{"missing_report", &summary.MissingReport, e.detectMissingReport},
	}

	for _, chk := range checks {
		ids, err := e.runDetector(chk.name, day, chk.fn)
		if err != nil {
			e.log.WithFields(logrus.Fields{
				"detector": chk.name,
				"date":     summary.Date,
			}).Error(err.Error())
			continue
		}
		*chk.out = ids
		summary.Total += len(ids)
	}

	return summary
}

// runDetector: una transacción por detector; los resultados parciales no son
// visibles antes del commit. Un panic dentro del detector se convierte en
// error.
func (e *Engine) runDetector(name string, day time.Time, fn func(tx *gorm.DB, day time.Time) ([]uint, error)) (ids []uint, err error) {
	defer func() {
		if r := recover(); r != nil {
			ids = nil
			err = fmt.Errorf("detector %s: panic: %v", name, r)
		}
	}()

	err = e.db.Transaction(func(tx *gorm.DB) error {
		var inner error
		ids, inner = fn(tx, day)
		return inner
	})
	if err != nil {
		return nil, fmt.Errorf("detector %s: %w", name, err)
	}
	return ids, nil
}

// dayBounds: [inicio, fin) del día en la zona horaria de la fecha recibida.
// Truncate operaría sobre UTC y correría la ventana en despliegues no-UTC.
func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// createTicket: alta de un ticket automático con folio
func createTicket(tx *gorm.DB, t *models.Ticket) error {
	t.Folio = tickets.NewFolio()
	t.Status = models.TicketOpen
	t.AutoGenerated = true
	return tx.Create(t).Error
}
