package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stylesync-app/booking-api/internal/cache"
	"github.com/stylesync-app/booking-api/internal/httperr"
	"github.com/stylesync-app/booking-api/internal/models"
	ucAppointment "github.com/stylesync-app/booking-api/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucAppointment.GetAvailability
	createUC       *ucAppointment.CreateAppointment

	// slots is optional; nil disables caching.
	slots *cache.AvailabilityCache
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucAppointment.GetAvailability,
	createUC *ucAppointment.CreateAppointment,
	slots *cache.AvailabilityCache,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		createUC:       createUC,
		slots:          slots,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Start     string `json:"start" binding:"required"` // RFC 3339

	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required"`
	ClientPhone string `json:"client_phone"`

	Notes string `json:"notes"`
}

////////////////////////////////////////////////////////
// BARBERS & SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.
		Where("active = ?", true).
		Order("id ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Error al listar barberos.")
		return
	}

	c.JSON(http.StatusOK, barbers)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("active = ?", true)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}

	c.JSON(http.StatusOK, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	barberIDStr := c.Query("barber_id")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || barberIDStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Fecha, barbero y servicio son obligatorios.")
		return
	}

	barberID, err := strconv.ParseUint(barberIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbero inválido.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Servicio inválido.")
		return
	}

	date, err := parseDay(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	ctx := c.Request.Context()

	if h.slots != nil {
		if cached, ok := h.slots.Get(ctx, uint(barberID), uint(serviceID), dateStr); ok {
			c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": cached})
			return
		}
	}

	slots, err := h.availabilityUC.Execute(ctx, ucAppointment.AvailabilityInput{
		BarberID:  uint(barberID),
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		if httperr.IsBusiness(err, "barber_not_found") {
			httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
			return
		}
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
			return
		}
		httperr.Internal(c, "availability_failed", "Error al calcular horarios.")
		return
	}

	if h.slots != nil {
		h.slots.Set(ctx, uint(barberID), uint(serviceID), dateStr, slots)
	}

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (GUEST)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	start, err := parseInstant(req.Start)
	if err != nil {
		httperr.BadRequest(c, "invalid_start", "Fecha u hora inválida.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateInput{
		BarberID:   req.BarberID,
		ServiceID:  req.ServiceID,
		Start:      start,
		GuestName:  req.ClientName,
		GuestEmail: req.ClientEmail,
		GuestPhone: req.ClientPhone,
		Notes:      req.Notes,
	})
	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	if h.slots != nil {
		h.slots.InvalidateDay(
			c.Request.Context(),
			ap.BarberID,
			ap.SlotStart.Format("2006-01-02"),
		)
	}

	c.JSON(http.StatusCreated, ap)
}
