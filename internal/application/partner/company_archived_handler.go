package partner

import (
	"context"
	"fmt"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CompanyArchivedHandler handles CompanyArchivedEvent and revokes any active
// partner assignments so an archived company drops out of partner books.
type CompanyArchivedHandler struct {
	partnerService *PartnerService
	logger         *zap.Logger
}

// NewCompanyArchivedHandler creates a new handler for company archived events
func NewCompanyArchivedHandler(partnerService *PartnerService, logger *zap.Logger) *CompanyArchivedHandler {
	return &CompanyArchivedHandler{
		partnerService: partnerService,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *CompanyArchivedHandler) EventTypes() []string {
	return []string{company.EventTypeCompanyArchived}
}

// Handle processes a CompanyArchivedEvent by revoking active assignments
func (h *CompanyArchivedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	archivedEvent, ok := event.(*company.CompanyArchivedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", company.EventTypeCompanyArchived),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			company.EventTypeCompanyArchived, event.EventType())
	}

	h.logger.Info("processing company archived event",
		zap.String("company_id", archivedEvent.AggregateID().String()),
		zap.String("legal_name", archivedEvent.LegalName),
	)

	revoked, err := h.partnerService.RevokeAssignmentsForCompany(ctx, archivedEvent.TenantID(), archivedEvent.AggregateID())
	if err != nil {
		h.logger.Error("failed to revoke assignments for archived company",
			zap.String("company_id", archivedEvent.AggregateID().String()),
			zap.Error(err))
		return err
	}

	if revoked > 0 {
		h.logger.Info("revoked partner assignments for archived company",
			zap.String("company_id", archivedEvent.AggregateID().String()),
			zap.Int("revoked", revoked))
	}
	return nil
}
