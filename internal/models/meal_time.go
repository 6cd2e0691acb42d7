package models

import (
	"encoding/json"
	"fmt"
)

// MealTime: tiempo de comida (valor canónico en minúsculas)
type MealTime string

const (
	MealBreakfast MealTime = "breakfast"
	MealLunch     MealTime = "lunch"
	MealDinner    MealTime = "dinner"
)

// AllMealTimes: orden fijo para recorridos (detectores, reportes)
var AllMealTimes = []MealTime{MealBreakfast, MealLunch, MealDinner}

func ParseMealTime(s string) (MealTime, error) {
	switch MealTime(s) {
	case MealBreakfast, MealLunch, MealDinner:
		return MealTime(s), nil
	}
	return "", fmt.Errorf("tiempo de comida desconocido: %q", s)
}

func (m MealTime) Valid() bool {
	_, err := ParseMealTime(string(m))
	return err == nil
}

// UnmarshalJSON: rechaza valores desconocidos en vez de aplicar un default
func (m *MealTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseMealTime(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// NominalServiceHour: hora nominal de servicio (reloj local)
func (m MealTime) NominalServiceHour() int {
	switch m {
	case MealBreakfast:
		return 7
	case MealLunch:
		return 13
	case MealDinner:
		return 19
	}
	return 0
}

// Label: etiqueta legible para descripciones de tickets
func (m MealTime) Label() string {
	switch m {
	case MealBreakfast:
		return "desayuno"
	case MealLunch:
		return "comida"
	case MealDinner:
		return "cena"
	}
	return string(m)
}
