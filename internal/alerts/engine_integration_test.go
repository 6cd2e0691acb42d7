package alerts

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"comedor-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Pruebas de integración del motor: requieren un Postgres real. Se corren con
// INTEGRATION_TESTS=1 y TEST_DATABASE_DSN apuntando a una base desechable.

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires postgres)")
	}
	dsn := strings.TrimSpace(os.Getenv("TEST_DATABASE_DSN"))
	if dsn == "" {
		t.Skip("set TEST_DATABASE_DSN to run integration tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Item{},
		&models.Inventory{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.MenuSchedule{},
		&models.MenuScheduleRecipe{},
		&models.Tray{},
		&models.WasteEntry{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderLine{},
		&models.Ticket{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	// Base limpia por prueba
	tables := []string{"tickets", "trays", "waste_entries", "purchase_order_lines",
		"purchase_orders", "menu_schedule_recipes", "menu_schedules", "recipe_ingredients",
		"recipes", "inventories", "items", "suppliers", "audit_logs", "users"}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}

	return db
}

func newTestEngine(db *gorm.DB, now time.Time) *Engine {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	engine := NewEngine(db, log, "comedor principal")
	engine.now = func() time.Time { return now }
	return engine
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func countTickets(t *testing.T, db *gorm.DB, origin string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Ticket{}).Where("origin_module = ?", origin).Count(&n).Error; err != nil {
		t.Fatalf("count tickets: %v", err)
	}
	return n
}

// La segunda corrida para la misma fecha no debe duplicar ningún ticket,
// también cuando la fecha objetivo es pasada: la dedup va por target_date,
// no por la fecha de creación del ticket.
func TestRunDailyChecks_IdempotentForPastDate(t *testing.T) {
	db := openTestDB(t)

	// fecha objetivo muy anterior al reloj real del motor
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := newTestEngine(db, time.Now())

	mustCreate(t, db, &models.MenuSchedule{
		FromDate: day, ToDate: day.AddDate(0, 0, 6),
		MealTime: models.MealLunch, Location: "comedor principal",
		PlannedTrays: 100,
	})
	// 89 charolas servidas: desviación -11 sobre umbral 10
	for i := 0; i < 89; i++ {
		mustCreate(t, db, &models.Tray{
			Number:   fmt.Sprintf("F-%03d", i+1),
			ServedAt: day.Add(13 * time.Hour),
			MealTime: models.MealLunch,
			Location: "comedor principal",
		})
	}

	first := engine.RunDailyChecks(day)
	if len(first.TrayDeviation) != 1 {
		t.Fatalf("expected 1 tray deviation ticket on first run, got %d", len(first.TrayDeviation))
	}
	// desayuno y cena sin programación
	if len(first.MissingSchedule) != 2 {
		t.Fatalf("expected 2 missing schedule tickets, got %d", len(first.MissingSchedule))
	}
	if len(first.MissingReport) != 0 {
		t.Fatalf("expected no missing report tickets (trays were reported), got %d", len(first.MissingReport))
	}

	second := engine.RunDailyChecks(day)
	if second.Total != 0 {
		t.Fatalf("expected second run to create nothing, created %d", second.Total)
	}

	var ticket models.Ticket
	if err := db.Where("origin_module = ?", OriginTray).First(&ticket).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if !ticket.AutoGenerated || ticket.Status != models.TicketOpen {
		t.Fatalf("unexpected ticket state: auto=%v status=%s", ticket.AutoGenerated, ticket.Status)
	}
	if ticket.TargetDate == nil || !ticket.TargetDate.Equal(day) {
		t.Fatalf("ticket should carry the target date of the run, got %v", ticket.TargetDate)
	}
	if ticket.Priority != models.PriorityMedium {
		t.Fatalf("11%% deviation should be medium, got %s", ticket.Priority)
	}
	if ticket.Category != models.TicketInquiry {
		t.Fatalf("under-served deviation should be inquiry, got %s", ticket.Category)
	}
}

// Ciclo de vida de la dedup por estado: mientras el ticket está abierto no se
// reemite; una vez resuelto y con el faltante vigente, se emite uno nuevo.
func TestInventoryBelowMinimum_DedupByState(t *testing.T) {
	db := openTestDB(t)

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := newTestEngine(db, day.Add(22*time.Hour))

	supplier := models.Supplier{Name: "Abarrotes del Norte", Authorized: true}
	mustCreate(t, db, &supplier)
	item := models.Item{Name: "frijol negro", Unit: "kg", SupplierID: &supplier.ID}
	mustCreate(t, db, &item)
	mustCreate(t, db, &models.Inventory{
		ItemID: item.ID, Location: "almacén", Quantity: 2, MinQuantity: 10,
	})
	// Programación y charola para que los demás detectores queden callados
	mustCreate(t, db, &models.MenuSchedule{
		FromDate: day, ToDate: day, MealTime: models.MealLunch,
		Location: "comedor principal", PlannedTrays: 1,
	})
	mustCreate(t, db, &models.Tray{
		Number: "F-001", ServedAt: day.Add(13 * time.Hour),
		MealTime: models.MealLunch, Location: "comedor principal",
	})

	first := engine.RunDailyChecks(day)
	if len(first.InventoryBelowMinimum) != 1 {
		t.Fatalf("expected 1 inventory ticket, got %d", len(first.InventoryBelowMinimum))
	}

	var ticket models.Ticket
	if err := db.First(&ticket, first.InventoryBelowMinimum[0]).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	// faltante 8 de 10 = 80% > 50%
	if ticket.Priority != models.PriorityUrgent {
		t.Fatalf("80%% shortfall should be urgent, got %s", ticket.Priority)
	}
	if ticket.SupplierID == nil || *ticket.SupplierID != supplier.ID {
		t.Fatalf("authorized supplier should be linked")
	}

	// Abierto: no se reemite
	second := engine.RunDailyChecks(day)
	if len(second.InventoryBelowMinimum) != 0 {
		t.Fatalf("open ticket should suppress re-emission, got %d", len(second.InventoryBelowMinimum))
	}

	// Resuelto y el faltante sigue: se reemite
	now := time.Now()
	err := db.Model(&ticket).Updates(map[string]interface{}{
		"status": models.TicketResolved, "resolved_at": &now, "resolution": "orden colocada",
	}).Error
	if err != nil {
		t.Fatalf("resolve ticket: %v", err)
	}

	third := engine.RunDailyChecks(day)
	if len(third.InventoryBelowMinimum) != 1 {
		t.Fatalf("resolved ticket with ongoing shortfall should re-emit, got %d", len(third.InventoryBelowMinimum))
	}
	if countTickets(t, db, OriginInventory) != 2 {
		t.Fatalf("expected 2 inventory tickets total")
	}
}

// Comida planeada sin una sola charola capturada pasada la hora límite:
// exactamente un ticket de reporte faltante, y ninguno en la segunda corrida.
func TestMissingReport_EndToEnd(t *testing.T) {
	db := openTestDB(t)

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	// 15:30, pasada la hora límite de la comida (13 + 2 = 15:00)
	engine := newTestEngine(db, day.Add(15*time.Hour+30*time.Minute))

	mustCreate(t, db, &models.MenuSchedule{
		FromDate: day, ToDate: day.AddDate(0, 0, 4),
		MealTime: models.MealLunch, Location: "comedor principal",
		PlannedTrays: 50,
	})

	summary := engine.RunDailyChecks(day)
	if len(summary.MissingReport) != 1 {
		t.Fatalf("expected 1 missing report ticket, got %d", len(summary.MissingReport))
	}

	var ticket models.Ticket
	if err := db.First(&ticket, summary.MissingReport[0]).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if ticket.Priority != models.PriorityMedium || ticket.Category != models.TicketInquiry {
		t.Fatalf("unexpected ticket: priority=%s category=%s", ticket.Priority, ticket.Category)
	}
	if ticket.ScheduleID == nil {
		t.Fatalf("missing report ticket should link the schedule")
	}

	again := engine.RunDailyChecks(day)
	if len(again.MissingReport) != 0 {
		t.Fatalf("second run should not re-emit, got %d", len(again.MissingReport))
	}

	// Antes de la hora límite la cena aún no dispara
	if countTickets(t, db, OriginReport) != 1 {
		t.Fatalf("dinner deadline (21:00) not reached; only lunch should have a ticket")
	}
}

// Verificación de abasto de una programación: un ticket por proveedor con
// faltante (autorizado o no), ligando la orden de compra abierta si la hay,
// y sin duplicar en invocaciones repetidas.
func TestCheckScheduleSupply(t *testing.T) {
	db := openTestDB(t)

	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	engine := newTestEngine(db, day.Add(9*time.Hour))

	central := models.Supplier{Name: "Verduras La Central", Authorized: true}
	mustCreate(t, db, &central)
	granero := models.Supplier{Name: "El Granero", Authorized: false}
	mustCreate(t, db, &granero)

	jitomate := models.Item{Name: "jitomate", Unit: "kg", UnitCost: 28, SupplierID: &central.ID}
	mustCreate(t, db, &jitomate)
	arroz := models.Item{Name: "arroz", Unit: "kg", UnitCost: 22, SupplierID: &granero.ID}
	mustCreate(t, db, &arroz)
	mustCreate(t, db, &models.Inventory{ItemID: jitomate.ID, Location: "almacén", Quantity: 5})
	mustCreate(t, db, &models.Inventory{ItemID: arroz.ID, Location: "almacén", Quantity: 2})

	recipe := models.Recipe{Name: "arroz rojo", Type: models.RecipeLunch, Servings: 10}
	mustCreate(t, db, &recipe)
	mustCreate(t, db, &models.RecipeIngredient{
		RecipeID: recipe.ID, ItemID: jitomate.ID, Quantity: 3, Unit: "kg",
	})
	mustCreate(t, db, &models.RecipeIngredient{
		RecipeID: recipe.ID, ItemID: arroz.ID, Quantity: 2, Unit: "kg",
	})

	sched := models.MenuSchedule{
		FromDate: day, ToDate: day.AddDate(0, 0, 4),
		MealTime: models.MealLunch, Location: "comedor principal", PlannedTrays: 100,
	}
	mustCreate(t, db, &sched)
	mustCreate(t, db, &models.MenuScheduleRecipe{
		ScheduleID: sched.ID, RecipeID: recipe.ID, Portions: 100,
	})

	// Solo el proveedor autorizado tiene orden abierta
	po := models.PurchaseOrder{
		SupplierID: central.ID, Status: models.PurchaseOrderSent,
		OrderDate: day.AddDate(0, 0, -1),
	}
	mustCreate(t, db, &po)

	// jitomate: se requieren 30 kg (3 kg x 100/10), hay 5; arroz: 20 kg, hay 2
	created, err := engine.CheckScheduleSupply(sched.ID)
	if err != nil {
		t.Fatalf("check supply: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 supply tickets (one per supplier), got %d", len(created))
	}

	bySupplier := make(map[uint]models.Ticket)
	for _, tk := range created {
		if tk.SupplierID == nil {
			t.Fatalf("supply ticket without supplier")
		}
		bySupplier[*tk.SupplierID] = tk
	}

	withPO := bySupplier[central.ID]
	if withPO.PurchaseOrderID == nil || *withPO.PurchaseOrderID != po.ID {
		t.Fatalf("open purchase order should be linked")
	}

	// proveedor conocido pero no autorizado y sin orden: ticket sin liga
	withoutPO, ok := bySupplier[granero.ID]
	if !ok {
		t.Fatalf("unauthorized supplier should still get a ticket")
	}
	if withoutPO.PurchaseOrderID != nil {
		t.Fatalf("no purchase order exists for this supplier, none should be linked")
	}

	again, err := engine.CheckScheduleSupply(sched.ID)
	if err != nil {
		t.Fatalf("check supply again: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("repeat invocation should not duplicate, got %d", len(again))
	}
}
