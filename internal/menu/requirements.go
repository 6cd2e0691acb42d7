package menu

import (
	"time"

	"comedor-backend/internal/models"
	"comedor-backend/internal/units"

	"gorm.io/gorm"
)

// Requirement: proyección de requerimiento de compra de un insumo para una
// fecha, en la unidad base del insumo.
type Requirement struct {
	Item            models.Item      `json:"item"`
	QuantityNeeded  float64          `json:"quantity_needed"`
	QuantityOnHand  float64          `json:"quantity_on_hand"`
	QuantityToOrder float64          `json:"quantity_to_order"`
	Unit            string           `json:"unit"`
	Supplier        *models.Supplier `json:"supplier,omitempty"`
}

// ProjectRequirements: explota las programaciones activas de la fecha en sus
// ingredientes y compara contra inventario. Las líneas con receta o insumo
// faltante, o con unidad no convertible, se omiten: la proyección corre
// desatendida y debe tolerar referencias rotas.
func ProjectRequirements(db *gorm.DB, date time.Time) ([]Requirement, error) {
	day := date.Truncate(24 * time.Hour)

	var schedules []models.MenuSchedule
	err := db.Preload("Recipes").Preload("Recipes.Recipe").
		Preload("Recipes.Recipe.Ingredients").Preload("Recipes.Recipe.Ingredients.Item").
		Preload("Recipes.Recipe.Ingredients.Item.Supplier").
		Where("from_date <= ? AND to_date >= ?", day, day).
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}

	needed := make(map[uint]float64)
	itemsByID := make(map[uint]models.Item)

	for _, sched := range schedules {
		for _, line := range sched.Recipes {
			recipe := line.Recipe
			if recipe.ID == 0 || recipe.Servings <= 0 {
				continue
			}
			// factor: las cantidades de la receta rinden Servings porciones
			factor := float64(line.Portions) / float64(recipe.Servings)

			for _, ing := range recipe.Ingredients {
				if ing.Item.ID == 0 {
					continue
				}
				baseQty, err := units.ToBase(ing.Quantity, ing.Unit, ing.Item.Unit)
				if err != nil {
					continue
				}
				needed[ing.ItemID] += baseQty * factor
				itemsByID[ing.ItemID] = ing.Item
			}
		}
	}

	reqs := make([]Requirement, 0, len(needed))
	for itemID, qtyNeeded := range needed {
		item := itemsByID[itemID]

		var onHand float64
		var rows []models.Inventory
		if err := db.Where("item_id = ?", itemID).Find(&rows).Error; err == nil {
			for _, r := range rows {
				onHand += r.Quantity
			}
		}

		toOrder := qtyNeeded - onHand
		if toOrder < 0 {
			toOrder = 0
		}

		// Cualquier proveedor conocido cuenta; el consumidor decide si el flag
		// de autorización importa para su caso
		supplier := item.Supplier

		reqs = append(reqs, Requirement{
			Item:            item,
			QuantityNeeded:  qtyNeeded,
			QuantityOnHand:  onHand,
			QuantityToOrder: toOrder,
			Unit:            item.Unit,
			Supplier:        supplier,
		})
	}

	return reqs, nil
}
