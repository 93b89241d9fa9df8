package finance

import (
	"context"

	"github.com/stylesync-app/booking-api/internal/audit"
	domain "github.com/stylesync-app/booking-api/internal/domain/appointment"
	"github.com/stylesync-app/booking-api/internal/httperr"
	"github.com/stylesync-app/booking-api/internal/models"
)

type RegisterEntryInput struct {
	AmountMinor int64
	Kind        string
	Category    string
	Description string

	ActorID *uint
}

// RegisterEntry records a manual income or expense entry, independent of
// any appointment.
type RegisterEntry struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRegisterEntry(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RegisterEntry {
	return &RegisterEntry{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RegisterEntry) Execute(
	ctx context.Context,
	in RegisterEntryInput,
) (*models.FinancialRecord, error) {

	if in.AmountMinor <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}
	if in.Kind != models.FinancialKindIncome && in.Kind != models.FinancialKindExpense {
		return nil, httperr.ErrBusiness("invalid_kind")
	}

	rec := &models.FinancialRecord{
		AmountMinor: in.AmountMinor,
		Kind:        in.Kind,
		Category:    in.Category,
		Description: in.Description,
	}

	if err := uc.repo.InsertFinancialRecord(ctx, rec); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "finance_entry_registered",
		Entity:   "financial_record",
		EntityID: &rec.ID,
		Metadata: map[string]any{"kind": rec.Kind, "amount_minor": rec.AmountMinor},
	})

	return rec, nil
}
