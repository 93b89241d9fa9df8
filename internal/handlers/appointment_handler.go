package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stylesync-app/booking-api/internal/cache"
	domain "github.com/stylesync-app/booking-api/internal/domain/appointment"
	"github.com/stylesync-app/booking-api/internal/httperr"
	"github.com/stylesync-app/booking-api/internal/middleware"
	ucAppointment "github.com/stylesync-app/booking-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC      *ucAppointment.CreateAppointment
	completeUC    *ucAppointment.CompleteAppointment
	cancelUC      *ucAppointment.CancelAppointment
	deleteUC      *ucAppointment.DeleteAppointment
	listByDateUC  *ucAppointment.ListAppointmentsByDate
	listByMonthUC *ucAppointment.ListAppointmentsByMonth

	// slots is optional; nil disables cache invalidation.
	slots *cache.AvailabilityCache
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
	slots *cache.AvailabilityCache,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:      createUC,
		completeUC:    completeUC,
		cancelUC:      cancelUC,
		deleteUC:      deleteUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
		slots:         slots,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Start     string `json:"start" binding:"required"` // RFC 3339

	// Either a registered client id or guest contact details.
	ClientID   *uint  `json:"client_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`

	Notes string `json:"notes"`
}

type CompleteAppointmentRequest struct {
	ChargedAmountMinor *int64 `json:"charged_amount_minor"`
	ServiceName        string `json:"service_name"`
}

// ======================================================
// HELPERS
// ======================================================

func actorFromContext(c *gin.Context) *uint {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

// barberForListing resolves whose agenda is being read: admins may pass
// any barber_id, barbers default to their own profile.
func barberForListing(c *gin.Context) (uint, bool) {
	if idStr := c.Query("barber_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(id), true
	}

	if v, ok := c.Get(middleware.ContextBarberID); ok {
		if id, ok := v.(uint); ok {
			return id, true
		}
	}
	return 0, false
}

func mapCreateErrors(c *gin.Context, err error) {
	if err == domain.ErrConflict {
		httperr.Write(c, 409, "time_conflict", "Conflicto de horario.")
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		switch be.Code {
		case "barber_not_found", "service_not_found", "client_not_found":
			httperr.NotFound(c, be.Code, "Recurso no encontrado.")
		case "slot_in_past":
			httperr.BadRequest(c, be.Code, "El horario ya pasó.")
		case "outside_working_hours":
			httperr.BadRequest(c, be.Code, "Fuera del horario de atención.")
		case "missing_guest_contact":
			httperr.BadRequest(c, be.Code, "Nombre y correo del cliente son obligatorios.")
		case "invalid_email_domain":
			httperr.BadRequest(c, be.Code, "El dominio del correo no parece ser válido.")
		default:
			httperr.BadRequest(c, be.Code, "Datos inválidos.")
		}
		return
	}

	httperr.Internal(c, "failed_to_create_appointment", "Error al crear el turno.")
}

func mapStateErrors(c *gin.Context, err error) {
	switch {
	case err == domain.ErrInvalidTransition:
		httperr.BadRequest(c, "invalid_state", "El turno no admite esa operación.")
	case err == domain.ErrNotStarted:
		httperr.BadRequest(c, "not_started", "El turno aún no comenzó.")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Turno no encontrado.")
	default:
		httperr.Internal(c, "internal_error", "Error interno.")
	}
}

// ======================================================
// CREATE (STAFF)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
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
		ClientID:   req.ClientID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		Notes:      req.Notes,
		ActorID:    actorFromContext(c),
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

	c.JSON(201, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, ok := barberForListing(c)
	if !ok {
		httperr.BadRequest(c, "missing_barber", "Barbero obligatorio.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Fecha obligatoria.")
		return
	}

	date, err := parseDay(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	items, err := h.listByDateUC.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar turnos.")
		return
	}

	c.JSON(200, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID, ok := barberForListing(c)
	if !ok {
		httperr.BadRequest(c, "missing_barber", "Barbero obligatorio.")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Año inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mes inválido.")
		return
	}

	items, err := h.listByMonthUC.Execute(c.Request.Context(), barberID, year, time.Month(month))
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar turnos.")
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}

// ======================================================
// COMPLETE
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	// Body is optional: an empty body completes at the service price.
	var req CompleteAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.completeUC.Execute(c.Request.Context(), ucAppointment.CompleteInput{
		AppointmentID:      uint(id),
		ChargedAmountMinor: req.ChargedAmountMinor,
		ServiceName:        req.ServiceName,
		ActorID:            actorFromContext(c),
	})
	if err != nil {
		var partial *domain.PartialCompletionError
		if errors.As(err, &partial) {
			// Status already flipped, the financial record is missing.
			// Surfaced distinctly so operators can reconcile.
			c.JSON(500, gin.H{
				"error":       "partial_completion",
				"message":     "Turno completado, pero el registro financiero falló.",
				"appointment": ap,
			})
			return
		}
		mapStateErrors(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), uint(id), actorFromContext(c))
	if err != nil {
		mapStateErrors(c, err)
		return
	}

	// A cancelled slot becomes bookable again.
	if h.slots != nil {
		h.slots.InvalidateDay(
			c.Request.Context(),
			ap.BarberID,
			ap.SlotStart.Format("2006-01-02"),
		)
	}

	c.JSON(200, ap)
}

// ======================================================
// DELETE (ADMIN)
// ======================================================

// Delete purges an appointment regardless of status. Routed behind the
// admin role; the state machine is deliberately bypassed.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), uint(id), actorFromContext(c)); err != nil {
		mapStateErrors(c, err)
		return
	}

	c.JSON(200, gin.H{"deleted": true})
}
