package main

import (
	"log"
	"strings"

	"comedor-backend/internal/alerts"
	"comedor-backend/internal/audit"
	"comedor-backend/internal/auth"
	"comedor-backend/internal/config"
	"comedor-backend/internal/dashboard"
	"comedor-backend/internal/database"
	"comedor-backend/internal/inventory"
	"comedor-backend/internal/logging"
	"comedor-backend/internal/menu"
	"comedor-backend/internal/models"
	"comedor-backend/internal/purchasing"
	"comedor-backend/internal/recipes"
	"comedor-backend/internal/tickets"
	"comedor-backend/internal/trays"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	logging.SetLevel(cfg.LogLevel)
	database.Init(cfg)

	engine := alerts.NewEngine(database.DB, logging.Get(), cfg.DefaultLocation)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	// CORS: orígenes separados por coma
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth público
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protegido
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Rutas solo para administradores. El guard va por ruta: comparten prefijo
	// con las rutas comunes, así que no pueden vivir en un grupo propio.
	adminOnly := auth.RequireRole(models.RoleAdmin)

	// Catálogo de insumos
	protected.Post("/items", adminOnly, inventory.CreateItemHandler())
	protected.Put("/items/:id", adminOnly, inventory.UpdateItemHandler())

	// Proveedores y órdenes de compra
	protected.Post("/suppliers", adminOnly, purchasing.CreateSupplierHandler())
	protected.Post("/purchase-orders", adminOnly, purchasing.CreatePurchaseOrderHandler())
	protected.Put("/purchase-orders/:id/status", adminOnly, purchasing.UpdatePurchaseOrderStatusHandler())

	// Recetas
	protected.Post("/recipes", adminOnly, recipes.CreateRecipeHandler())
	protected.Put("/recipes/:id/ingredients", adminOnly, recipes.ReplaceIngredientsHandler())
	protected.Delete("/recipes/:id", adminOnly, recipes.DeleteRecipeHandler())

	// Programación de menús
	protected.Post("/menu-schedules", adminOnly, menu.CreateScheduleHandler())
	protected.Delete("/menu-schedules/:id", adminOnly, menu.DeleteScheduleHandler())

	// Motor de alertas
	protected.Post("/alerts/run-daily-checks", adminOnly, alerts.RunDailyChecksHandler(engine))
	protected.Post("/menu-schedules/:id/check-supply", adminOnly, alerts.CheckScheduleSupplyHandler(engine))

	// Bitácora de auditoría
	protected.Get("/audit-logs", adminOnly, audit.ListAuditLogsHandler())

	// Rutas comunes (requieren sesión)

	protected.Get("/items", inventory.ListItemsHandler())

	protected.Get("/suppliers", purchasing.ListSuppliersHandler())
	protected.Get("/purchase-orders", purchasing.ListPurchaseOrdersHandler())

	protected.Get("/recipes", recipes.ListRecipesHandler())
	protected.Get("/recipes/:id", recipes.GetRecipeHandler())

	protected.Get("/menu-schedules", menu.ListSchedulesHandler())
	protected.Get("/menu-schedules/requirements", menu.RequirementsHandler())
	protected.Get("/menu-schedules/:id", menu.GetScheduleHandler())
	protected.Put("/menu-schedules/:id/produced-trays", menu.UpdateProducedTraysHandler())

	// Charolas
	protected.Post("/trays", trays.CreateTrayHandler())
	protected.Get("/trays", trays.ListTraysHandler())
	protected.Get("/trays/locations", trays.ListLocationsHandler())

	// Inventario y mermas
	protected.Post("/inventory", inventory.UpsertInventoryHandler())
	protected.Get("/inventory", inventory.ListInventoryHandler())
	protected.Post("/waste-entries", inventory.CreateWasteEntryHandler())
	protected.Get("/waste-entries", inventory.ListWasteEntriesHandler())
	protected.Get("/waste-entries/export", inventory.ExportWasteEntriesHandler())

	// Tickets
	protected.Post("/tickets", tickets.CreateTicketHandler())
	protected.Get("/tickets", tickets.ListTicketsHandler())
	protected.Get("/tickets/export", tickets.ExportTicketsHandler())
	protected.Get("/tickets/:id", tickets.GetTicketHandler())
	protected.Put("/tickets/:id/assign", tickets.AssignTicketHandler())
	protected.Put("/tickets/:id/status", tickets.UpdateTicketStatusHandler())
	protected.Put("/tickets/:id/resolve", tickets.ResolveTicketHandler())

	// Dashboard
	protected.Get("/dashboard/ticket-chart", dashboard.TicketChartHandler())
	protected.Get("/dashboard/ticket-summary", dashboard.TicketSummaryHandler())

	log.Println("Servidor escuchando en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
