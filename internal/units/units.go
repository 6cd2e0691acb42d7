package units

import (
	"fmt"
	"strings"
)

// Factores de conversión a gramos (unidades de masa)
var gramsFactor = map[string]float64{
	"mg": 0.001,
	"g":  1,
	"gr": 1,
	"kg": 1000,
	"oz": 28.3495,
	"lb": 453.592,
}

// Factores de conversión a mililitros (unidades de volumen)
var millilitersFactor = map[string]float64{
	"ml": 1,
	"l":  1000,
	"lt": 1000,
}

// Unidades de pieza (no convertibles a masa/volumen)
var pieceUnits = map[string]bool{
	"pz":     true,
	"pieza":  true,
	"unidad": true,
}

func normalize(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// ToGrams: convierte una cantidad a gramos. Para volumen se asume densidad 1:1
// (1 ml = 1 g), que es el criterio de costeo de cocina. Unidad desconocida o de
// pieza regresa error.
func ToGrams(quantity float64, unit string) (float64, error) {
	u := normalize(unit)
	if f, ok := gramsFactor[u]; ok {
		return quantity * f, nil
	}
	if f, ok := millilitersFactor[u]; ok {
		return quantity * f, nil
	}
	return 0, fmt.Errorf("unidad no convertible a gramos: %q", unit)
}

// ToBase: convierte una cantidad de una unidad a la unidad base de un insumo.
// Solo convierte dentro de la misma familia (masa↔masa, volumen↔volumen, pieza=pieza).
func ToBase(quantity float64, unit, base string) (float64, error) {
	u := normalize(unit)
	b := normalize(base)

	if u == b {
		return quantity, nil
	}

	if uf, ok := gramsFactor[u]; ok {
		if bf, ok := gramsFactor[b]; ok {
			return quantity * uf / bf, nil
		}
		return 0, fmt.Errorf("no se puede convertir %q (masa) a %q", unit, base)
	}

	if uf, ok := millilitersFactor[u]; ok {
		if bf, ok := millilitersFactor[b]; ok {
			return quantity * uf / bf, nil
		}
		return 0, fmt.Errorf("no se puede convertir %q (volumen) a %q", unit, base)
	}

	if pieceUnits[u] && pieceUnits[b] {
		return quantity, nil
	}

	return 0, fmt.Errorf("unidad desconocida: %q", unit)
}

// Known: la unidad existe en la tabla de conversión
func Known(unit string) bool {
	u := normalize(unit)
	if _, ok := gramsFactor[u]; ok {
		return true
	}
	if _, ok := millilitersFactor[u]; ok {
		return true
	}
	return pieceUnits[u]
}
