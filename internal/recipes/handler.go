package recipes

import (
	"comedor-backend/internal/database"
	"comedor-backend/internal/logging"
	"comedor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type IngredientRequest struct {
	ItemID   uint    `json:"item_id"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type CreateRecipeRequest struct {
	Name        string              `json:"name"`
	Type        models.RecipeType   `json:"type"`
	Servings    int                 `json:"servings"`
	Ingredients []IngredientRequest `json:"ingredients"`
}

// POST /api/recipes
func CreateRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRecipeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido: "+err.Error())
		}

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name es obligatorio")
		}
		if !body.Type.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "type debe ser breakfast, lunch o dinner")
		}
		if body.Servings <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "servings debe ser mayor a 0")
		}

		recipe := models.Recipe{
			Name:     body.Name,
			Type:     body.Type,
			Servings: body.Servings,
		}
		for _, ing := range body.Ingredients {
			if ing.ItemID == 0 || ing.Quantity <= 0 || ing.Unit == "" {
				return fiber.NewError(fiber.StatusBadRequest, "cada ingrediente requiere item_id, quantity > 0 y unit")
			}
			recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
				ItemID:   ing.ItemID,
				Quantity: ing.Quantity,
				Unit:     ing.Unit,
			})
		}

		if err := database.DB.Create(&recipe).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la receta")
		}

		res, err := CalculateTotals(database.DB, recipe.ID)
		if err != nil {
			logging.LogError(logging.Get(), "recipes", "CreateRecipeHandler", "CalculateTotals", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Receta creada pero no se pudieron calcular los totales")
		}

		var saved models.Recipe
		database.DB.Preload("Ingredients").Preload("Ingredients.Item").First(&saved, recipe.ID)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"recipe":              saved,
			"skipped_ingredients": res.Skipped,
			"totals_are_partial":  res.Skipped > 0,
		})
	}
}

// PUT /api/recipes/:id/ingredients — reemplaza las líneas y recalcula totales
func ReplaceIngredientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var recipe models.Recipe
		if err := database.DB.First(&recipe, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Receta no encontrada")
		}

		var body []IngredientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		lines := make([]models.RecipeIngredient, 0, len(body))
		for _, ing := range body {
			if ing.ItemID == 0 || ing.Quantity <= 0 || ing.Unit == "" {
				return fiber.NewError(fiber.StatusBadRequest, "cada ingrediente requiere item_id, quantity > 0 y unit")
			}
			lines = append(lines, models.RecipeIngredient{
				RecipeID: recipe.ID,
				ItemID:   ing.ItemID,
				Quantity: ing.Quantity,
				Unit:     ing.Unit,
			})
		}

		if err := database.DB.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron reemplazar los ingredientes")
		}
		if len(lines) > 0 {
			if err := database.DB.Create(&lines).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron guardar los ingredientes")
			}
		}

		res, err := CalculateTotals(database.DB, recipe.ID)
		if err != nil {
			logging.LogError(logging.Get(), "recipes", "ReplaceIngredientsHandler", "CalculateTotals", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron recalcular los totales")
		}

		var saved models.Recipe
		database.DB.Preload("Ingredients").Preload("Ingredients.Item").First(&saved, recipe.ID)

		return c.JSON(fiber.Map{
			"recipe":              saved,
			"skipped_ingredients": res.Skipped,
			"totals_are_partial":  res.Skipped > 0,
		})
	}
}

// GET /api/recipes
func ListRecipesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Preload("Ingredients").Preload("Ingredients.Item")

		if t := c.Query("type"); t != "" {
			parsed, err := models.ParseRecipeType(t)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			query = query.Where("type = ?", parsed)
		}

		var recipes []models.Recipe
		if err := query.Order("name ASC").Find(&recipes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las recetas")
		}

		return c.JSON(recipes)
	}
}

// GET /api/recipes/:id
func GetRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var recipe models.Recipe
		if err := database.DB.Preload("Ingredients").Preload("Ingredients.Item").First(&recipe, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Receta no encontrada")
		}

		return c.JSON(recipe)
	}
}

// DELETE /api/recipes/:id
func DeleteRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var recipe models.Recipe
		if err := database.DB.First(&recipe, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Receta no encontrada")
		}

		// Las líneas de ingredientes se borran en cascada
		if err := database.DB.Select("Ingredients").Delete(&recipe).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la receta")
		}

		return c.JSON(fiber.Map{"message": "Receta eliminada"})
	}
}
