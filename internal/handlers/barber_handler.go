package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stylesync-app/booking-api/internal/httpresp"
	"github.com/stylesync-app/booking-api/internal/models"
)

type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name      string `json:"name" binding:"required"`
	WorkStart string `json:"work_start" binding:"required"` // HH:mm
	WorkEnd   string `json:"work_end" binding:"required"`   // HH:mm
}

type UpdateBarberRequest struct {
	Name      *string `json:"name,omitempty"`
	WorkStart *string `json:"work_start,omitempty"`
	WorkEnd   *string `json:"work_end,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

func validWorkWindow(workStart, workEnd string) bool {
	s, err := time.Parse("15:04", workStart)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", workEnd)
	if err != nil {
		return false
	}
	return s.Before(e)
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.Order("id ASC").Find(&barbers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_barbers"})
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validWorkWindow(req.WorkStart, req.WorkEnd) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_work_window"})
		return
	}

	barber := models.Barber{
		Name:      req.Name,
		WorkStart: req.WorkStart,
		WorkEnd:   req.WorkEnd,
		Active:    true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_barber"})
		return
	}

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var barber models.Barber
	if err := h.db.First(&barber, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "barber_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_barber"})
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.WorkStart != nil {
		barber.WorkStart = *req.WorkStart
	}
	if req.WorkEnd != nil {
		barber.WorkEnd = *req.WorkEnd
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if !validWorkWindow(barber.WorkStart, barber.WorkEnd) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_work_window"})
		return
	}

	if err := h.db.Save(&barber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_barber"})
		return
	}

	c.JSON(http.StatusOK, barber)
}
