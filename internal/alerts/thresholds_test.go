package alerts

import (
	"testing"
	"time"

	"comedor-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestTrayDeviationThreshold(t *testing.T) {
	assert.InDelta(t, 5, trayDeviationThreshold(10), 1e-9)   // 10% = 1, gana el piso de 5
	assert.InDelta(t, 10, trayDeviationThreshold(100), 1e-9) // 10% = 10
	assert.InDelta(t, 20, trayDeviationThreshold(200), 1e-9)
}

func TestTrayDeviationBoundary(t *testing.T) {
	// planeadas 100: umbral max(5, 10) = 10
	assert.False(t, trayDeviationTriggered(100, 90), "diferencia -10 no rebasa el umbral de 10")
	assert.True(t, trayDeviationTriggered(100, 89), "diferencia -11 sí rebasa")
	assert.False(t, trayDeviationTriggered(100, 110))
	assert.True(t, trayDeviationTriggered(100, 111))

	// sin plan no hay detección
	assert.False(t, trayDeviationTriggered(0, 50))
	assert.False(t, trayDeviationTriggered(-3, 50))
}

func TestTrayDeviationPriority(t *testing.T) {
	assert.Equal(t, models.PriorityMedium, trayDeviationPriority(-11)) // 11% <= 20%
	assert.Equal(t, models.PriorityMedium, trayDeviationPriority(20))
	assert.Equal(t, models.PriorityHigh, trayDeviationPriority(-25))
	assert.Equal(t, models.PriorityHigh, trayDeviationPriority(31))
}

func TestWasteThresholdBoundary(t *testing.T) {
	// referencia 200: umbral absoluto max(10, 10) = 10
	assert.False(t, wasteTriggered(10.0, 200), "10 no es mayor que 10")
	assert.True(t, wasteTriggered(10.01, 200))

	// porcentaje: 5% de 200 = 10; 10.01/200 = 5.005% también dispara por porcentaje
	// referencia grande: dispara por porcentaje aunque no por absoluto
	assert.True(t, wasteTriggered(26, 500), "5.2% > 5% aunque 26 < max(10, 25)... ambos disparan")
	assert.False(t, wasteTriggered(24, 500), "4.8% y 24 <= 25")

	// sin inventario: referencia 0, umbral absoluto 10
	assert.False(t, wasteTriggered(10, 0))
	assert.True(t, wasteTriggered(10.5, 0))
}

func TestWastePriority(t *testing.T) {
	// 25 de 200 = 12.5% > 10%
	assert.Equal(t, models.PriorityHigh, wastePriority(25, 200))
	// 15 de 200 = 7.5%
	assert.Equal(t, models.PriorityMedium, wastePriority(15, 200))
	// sin referencia no hay porcentaje
	assert.Equal(t, models.PriorityMedium, wastePriority(50, 0))
}

func TestShortfallPriority(t *testing.T) {
	assert.Equal(t, models.PriorityHigh, shortfallPriority(50))
	assert.Equal(t, models.PriorityUrgent, shortfallPriority(50.1))
	assert.Equal(t, models.PriorityHigh, shortfallPriority(0))
}

func TestReportDeadline(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), reportDeadline(day, models.MealBreakfast))
	assert.Equal(t, time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC), reportDeadline(day, models.MealLunch))
	assert.Equal(t, time.Date(2024, 6, 1, 21, 0, 0, 0, time.UTC), reportDeadline(day, models.MealDinner))

	// en zonas no-UTC la hora límite es reloj local, no UTC
	cdmx := time.FixedZone("America/Mexico_City", -6*3600)
	local := time.Date(2024, 6, 1, 10, 30, 0, 0, cdmx)
	assert.Equal(t, time.Date(2024, 6, 1, 15, 0, 0, 0, cdmx), reportDeadline(local, models.MealLunch))
}

func TestDayBounds(t *testing.T) {
	cdmx := time.FixedZone("America/Mexico_City", -6*3600)

	start, end := dayBounds(time.Date(2024, 6, 1, 22, 45, 0, 0, cdmx))
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, cdmx), start)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, cdmx), end)

	// fecha ya normalizada: idéntica
	again, _ := dayBounds(start)
	assert.Equal(t, start, again)
}

func TestMissingScheduleKey(t *testing.T) {
	key := missingScheduleKey(models.MealLunch, "comedor norte")
	assert.Equal(t, "[lunch/comedor norte]", key)
}
