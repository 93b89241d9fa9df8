package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stylesync-app/booking-api/internal/httperr"
	"github.com/stylesync-app/booking-api/internal/models"
	ucFinance "github.com/stylesync-app/booking-api/internal/usecase/finance"
)

// ======================================================
// HANDLER
// ======================================================

type FinanceHandler struct {
	db         *gorm.DB
	registerUC *ucFinance.RegisterEntry
}

func NewFinanceHandler(db *gorm.DB, registerUC *ucFinance.RegisterEntry) *FinanceHandler {
	return &FinanceHandler{db: db, registerUC: registerUC}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateFinanceEntryRequest struct {
	AmountMinor int64  `json:"amount_minor" binding:"required"`
	Kind        string `json:"kind" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// ======================================================
// LIST
// ======================================================

func (h *FinanceHandler) List(c *gin.Context) {
	fromStr := c.Query("from")
	toStr := c.Query("to")

	q := h.db.Model(&models.FinancialRecord{})

	if fromStr != "" {
		from, err := parseDay(fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Fecha inválida.")
			return
		}
		q = q.Where("created_at >= ?", from)
	}

	if toStr != "" {
		to, err := parseDay(toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Fecha inválida.")
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	if kind := c.Query("kind"); kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var records []models.FinancialRecord
	if err := q.Order("created_at DESC").Find(&records).Error; err != nil {
		httperr.Internal(c, "failed_to_list_records", "Error al listar movimientos.")
		return
	}

	var income, expense int64
	for i := range records {
		switch records[i].Kind {
		case models.FinancialKindIncome:
			income += records[i].AmountMinor
		case models.FinancialKindExpense:
			expense += records[i].AmountMinor
		}
	}

	c.JSON(200, gin.H{
		"records":             records,
		"total_income_minor":  income,
		"total_expense_minor": expense,
		"balance_minor":       income - expense,
	})
}

// ======================================================
// CREATE ENTRY
// ======================================================

func (h *FinanceHandler) Create(c *gin.Context) {
	var req CreateFinanceEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	rec, err := h.registerUC.Execute(c.Request.Context(), ucFinance.RegisterEntryInput{
		AmountMinor: req.AmountMinor,
		Kind:        req.Kind,
		Category:    req.Category,
		Description: req.Description,
		ActorID:     actorFromContext(c),
	})
	if err != nil {
		if httperr.IsBusiness(err, "invalid_amount") || httperr.IsBusiness(err, "invalid_kind") {
			httperr.BadRequest(c, err.Error(), "Datos inválidos.")
			return
		}
		httperr.Internal(c, "failed_to_create_record", "Error al registrar el movimiento.")
		return
	}

	c.JSON(201, rec)
}
