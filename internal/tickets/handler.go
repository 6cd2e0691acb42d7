package tickets

import (
	"fmt"
	"strings"
	"time"

	"comedor-backend/internal/audit"
	"comedor-backend/internal/auth"
	"comedor-backend/internal/database"
	"comedor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// NewFolio: folio corto legible para el ticket
func NewFolio() string {
	return "TK-" + strings.ToUpper(uuid.NewString()[:8])
}

// Transiciones de estatus permitidas. No hay borrado físico: el ciclo termina
// en closed.
var allowedTransitions = map[models.TicketStatus][]models.TicketStatus{
	models.TicketOpen:       {models.TicketInProgress, models.TicketResolved, models.TicketClosed},
	models.TicketInProgress: {models.TicketResolved, models.TicketClosed},
	models.TicketResolved:   {models.TicketClosed, models.TicketInProgress},
	models.TicketClosed:     {},
}

func transitionAllowed(from, to models.TicketStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func currentUser(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return userID, ""
	}
	return userID, user.Name
}

type CreateTicketRequest struct {
	Category    models.TicketCategory `json:"category"`
	Subject     string                `json:"subject"`
	Description string                `json:"description"`
	Priority    models.TicketPriority `json:"priority"`
	ScheduleID  *uint                 `json:"schedule_id"`
	InventoryID *uint                 `json:"inventory_id"`
	SupplierID  *uint                 `json:"supplier_id"`
}

// POST /api/tickets — alta manual por un agente
func CreateTicketHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTicketRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido: "+err.Error())
		}

		if body.Subject == "" {
			return fiber.NewError(fiber.StatusBadRequest, "subject es obligatorio")
		}
		if !body.Category.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "category inválida")
		}
		if body.Priority == "" {
			body.Priority = models.PriorityMedium
		}
		if !body.Priority.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "priority inválida")
		}

		ticket := models.Ticket{
			Folio:         NewFolio(),
			Category:      body.Category,
			Subject:       body.Subject,
			Description:   body.Description,
			Status:        models.TicketOpen,
			Priority:      body.Priority,
			ScheduleID:    body.ScheduleID,
			InventoryID:   body.InventoryID,
			SupplierID:    body.SupplierID,
			OriginModule:  "manual",
			AutoGenerated: false,
		}

		if err := database.DB.Create(&ticket).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el ticket")
		}

		userID, userName := currentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "ticket",
			EntityID:    ticket.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Ticket manual %s: %s", ticket.Folio, ticket.Subject),
			After:       ticket,
		})

		return c.Status(fiber.StatusCreated).JSON(ticket)
	}
}

// GET /api/tickets
func ListTicketsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.Ticket{})

		if status := c.Query("status"); status != "" {
			parsed, err := models.ParseTicketStatus(status)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			query = query.Where("status = ?", parsed)
		}
		if cat := c.Query("category"); cat != "" {
			parsed, err := models.ParseTicketCategory(cat)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			query = query.Where("category = ?", parsed)
		}
		if origin := c.Query("origin"); origin != "" {
			query = query.Where("origin_module = ?", origin)
		}
		if auto := c.Query("auto"); auto != "" {
			query = query.Where("auto_generated = ?", auto == "true")
		}
		if dateStr := c.Query("date"); dateStr != "" {
			d, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date debe tener formato 'YYYY-MM-DD'")
			}
			query = query.Where("created_at >= ? AND created_at < ?", d, d.AddDate(0, 0, 1))
		}

		var tickets []models.Ticket
		if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los tickets")
		}

		return c.JSON(tickets)
	}
}

// GET /api/tickets/:id
func GetTicketHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ticket models.Ticket
		if err := database.DB.Preload("AssignedTo").First(&ticket, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ticket no encontrado")
		}

		return c.JSON(ticket)
	}
}

type AssignTicketRequest struct {
	UserID uint `json:"user_id"`
}

// PUT /api/tickets/:id/assign
func AssignTicketHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ticket models.Ticket
		if err := database.DB.First(&ticket, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ticket no encontrado")
		}

		var body AssignTicketRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		var assignee models.User
		if err := database.DB.First(&assignee, "id = ?", body.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Usuario asignado no encontrado")
		}

		before := ticket
		updates := map[string]interface{}{"assigned_to_id": body.UserID}
		if ticket.Status == models.TicketOpen {
			updates["status"] = models.TicketInProgress
		}
		if err := database.DB.Model(&ticket).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo asignar el ticket")
		}

		userID, userName := currentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "ticket",
			EntityID:    ticket.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Ticket %s asignado a %s", ticket.Folio, assignee.Name),
			Before:      before,
			After:       ticket,
		})

		return c.JSON(ticket)
	}
}

type UpdateStatusRequest struct {
	Status models.TicketStatus `json:"status"`
}

// PUT /api/tickets/:id/status
func UpdateTicketStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ticket models.Ticket
		if err := database.DB.First(&ticket, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ticket no encontrado")
		}

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido: "+err.Error())
		}

		if !transitionAllowed(ticket.Status, body.Status) {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Transición no permitida: %s -> %s", ticket.Status, body.Status))
		}

		before := ticket
		if err := database.DB.Model(&ticket).Update("status", body.Status).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el estatus")
		}

		userID, userName := currentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "ticket",
			EntityID:    ticket.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Ticket %s: %s -> %s", ticket.Folio, before.Status, body.Status),
			Before:      before,
			After:       ticket,
		})

		return c.JSON(ticket)
	}
}

type ResolveTicketRequest struct {
	Resolution string `json:"resolution"`
}

// PUT /api/tickets/:id/resolve
func ResolveTicketHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ticket models.Ticket
		if err := database.DB.First(&ticket, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ticket no encontrado")
		}

		var body ResolveTicketRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Resolution == "" {
			return fiber.NewError(fiber.StatusBadRequest, "resolution es obligatorio")
		}

		if !transitionAllowed(ticket.Status, models.TicketResolved) {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Transición no permitida: %s -> resolved", ticket.Status))
		}

		before := ticket
		now := time.Now()
		updates := map[string]interface{}{
			"status":      models.TicketResolved,
			"resolution":  body.Resolution,
			"resolved_at": now,
		}
		if err := database.DB.Model(&ticket).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo resolver el ticket")
		}

		userID, userName := currentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "ticket",
			EntityID:    ticket.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Ticket %s resuelto", ticket.Folio),
			Before:      before,
			After:       ticket,
		})

		return c.JSON(ticket)
	}
}
