package database

import (
	"log"

	"comedor-backend/internal/config"
	"comedor-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	err = DB.AutoMigrate(
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
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	log.Println("Conexión a base de datos lista. Migración completada.")
}
