package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stylesync-app/booking-api/internal/dto"
	"github.com/stylesync-app/booking-api/internal/httpresp"
	"github.com/stylesync-app/booking-api/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Session(&gorm.Session{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_clients",
		})
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CLIENT HISTORY
// ======================================================
func (h *ClientHandler) History(c *gin.Context) {
	id := c.Param("id")

	var client models.Client
	if err := h.db.First(&client, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_client"})
		return
	}

	var appointments []models.Appointment
	if err := h.db.
		Preload("Client").
		Preload("Service").
		Where("client_id = ?", client.ID).
		Order("slot_start DESC").
		Find(&appointments).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_history"})
		return
	}

	items := make([]dto.AppointmentListDTO, 0, len(appointments))
	for i := range appointments {
		items = append(items, dto.FromAppointment(&appointments[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"client":       client,
		"appointments": items,
	})
}
