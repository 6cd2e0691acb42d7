package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMealTime(t *testing.T) {
	for _, m := range AllMealTimes {
		parsed, err := ParseMealTime(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	// valores desconocidos y variantes de mayúsculas se rechazan
	for _, s := range []string{"brunch", "Lunch", "DINNER", "", "comida"} {
		_, err := ParseMealTime(s)
		assert.Error(t, err, "%q should not parse", s)
	}
}

func TestMealTimeStrictDecode(t *testing.T) {
	var m MealTime
	require.NoError(t, json.Unmarshal([]byte(`"lunch"`), &m))
	assert.Equal(t, MealLunch, m)

	// desconocido: error de decodificación, no default silencioso
	err := json.Unmarshal([]byte(`"almuerzo"`), &m)
	assert.Error(t, err)
	assert.Equal(t, MealLunch, m, "a failed decode must not touch the value")
}

func TestMealTimeNominalServiceHour(t *testing.T) {
	assert.Equal(t, 7, MealBreakfast.NominalServiceHour())
	assert.Equal(t, 13, MealLunch.NominalServiceHour())
	assert.Equal(t, 19, MealDinner.NominalServiceHour())
}

func TestTicketEnumsStrictDecode(t *testing.T) {
	var c TicketCategory
	assert.Error(t, json.Unmarshal([]byte(`"queja"`), &c))
	require.NoError(t, json.Unmarshal([]byte(`"complaint"`), &c))
	assert.Equal(t, TicketComplaint, c)

	var s TicketStatus
	assert.Error(t, json.Unmarshal([]byte(`"pending"`), &s))
	require.NoError(t, json.Unmarshal([]byte(`"in_progress"`), &s))
	assert.Equal(t, TicketInProgress, s)

	var p TicketPriority
	assert.Error(t, json.Unmarshal([]byte(`"critical"`), &p))
	require.NoError(t, json.Unmarshal([]byte(`"urgent"`), &p))
	assert.Equal(t, PriorityUrgent, p)
}

func TestWasteCategoryStrictDecode(t *testing.T) {
	var c WasteCategory
	require.NoError(t, json.Unmarshal([]byte(`"expiration"`), &c))
	assert.Equal(t, WasteExpiration, c)
	assert.Error(t, json.Unmarshal([]byte(`"caducidad"`), &c))
}

func TestTicketBeforeSaveRejectsUnknownEnums(t *testing.T) {
	valid := Ticket{
		Category: TicketInquiry,
		Status:   TicketOpen,
		Priority: PriorityMedium,
	}
	assert.NoError(t, valid.BeforeSave(nil))

	bad := valid
	bad.Category = "otra"
	assert.Error(t, bad.BeforeSave(nil))

	bad = valid
	bad.Status = "pendiente"
	assert.Error(t, bad.BeforeSave(nil))

	bad = valid
	bad.Priority = "alta"
	assert.Error(t, bad.BeforeSave(nil))
}

func TestMenuScheduleBeforeSaveDateOrder(t *testing.T) {
	sched := MenuSchedule{MealTime: MealLunch}
	sched.FromDate = sched.FromDate.AddDate(0, 0, 1) // from > to
	assert.Error(t, sched.BeforeSave(nil))
}
