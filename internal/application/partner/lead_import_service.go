package partner

import (
	"context"
	"fmt"
	"strings"

	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	csvimport "github.com/brokerhub/backend/internal/infrastructure/import"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ConflictMode controls how rows that collide with existing leads are handled
type ConflictMode string

const (
	// ConflictModeSkip skips rows whose contact email already has a lead
	ConflictModeSkip ConflictMode = "skip"
	// ConflictModeUpdate refreshes the existing lead with the row's details
	ConflictModeUpdate ConflictMode = "update"
	// ConflictModeFail rejects conflicting rows as errors
	ConflictModeFail ConflictMode = "fail"
)

// IsValid checks if the conflict mode is valid
func (c ConflictMode) IsValid() bool {
	switch c {
	case ConflictModeSkip, ConflictModeUpdate, ConflictModeFail:
		return true
	}
	return false
}

// LeadImportResult represents the result of a bulk lead import
type LeadImportResult struct {
	TotalRows    int                  `json:"total_rows"`
	ImportedRows int                  `json:"imported_rows"`
	UpdatedRows  int                  `json:"updated_rows"`
	SkippedRows  int                  `json:"skipped_rows"`
	ErrorRows    int                  `json:"error_rows"`
	Errors       []csvimport.RowError `json:"errors,omitempty"`
	IsTruncated  bool                 `json:"is_truncated,omitempty"`
	TotalErrors  int                  `json:"total_errors,omitempty"`
}

// LeadImportService handles bulk lead import from CSV uploads
type LeadImportService struct {
	leadRepo       partner.LeadRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewLeadImportService creates a new lead import service
func NewLeadImportService(leadRepo partner.LeadRepository, logger *zap.Logger) *LeadImportService {
	return &LeadImportService{
		leadRepo: leadRepo,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *LeadImportService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *LeadImportService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
}

// GetValidationRules returns the validation rules for lead import
func (s *LeadImportService) GetValidationRules() []csvimport.FieldRule {
	zero := decimal.Zero
	return []csvimport.FieldRule{
		csvimport.Field("contact_name").Required().String().MinLength(1).MaxLength(200).Build(),
		csvimport.Field("contact_email").Required().String().Email().MaxLength(320).Unique().Build(),
		csvimport.Field("contact_phone").String().MaxLength(50).Build(),
		csvimport.Field("company_name").String().MaxLength(200).Build(),
		csvimport.Field("requested_amount").Decimal().MinValue(zero).Build(),
		csvimport.Field("source").String().MaxLength(100).Build(),
		csvimport.Field("notes").String().MaxLength(2000).Build(),
	}
}

// LookupUnique checks whether a lead already holds the given field value
func (s *LeadImportService) LookupUnique(ctx context.Context, tenantID uuid.UUID, field, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	switch field {
	case "contact_email":
		_, err := s.leadRepo.FindByContactEmail(ctx, tenantID, value)
		if err == shared.ErrNotFound {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, nil
	}
}

// Import imports leads from validated rows. Partner actors own the leads
// they import; admin imports leave leads unassigned.
func (s *LeadImportService) Import(
	ctx context.Context,
	tenantID uuid.UUID,
	actor Actor,
	session *csvimport.ImportSession,
	validRows []*csvimport.Row,
	conflictMode ConflictMode,
) (*LeadImportResult, error) {
	if !actor.IsAdmin() && !actor.IsPartner() {
		return nil, shared.ErrForbidden
	}

	if session.State != csvimport.StateValidated {
		return nil, shared.NewDomainError("INVALID_STATE", "Import session must be in validated state")
	}

	if !session.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERRORS", "Cannot import session with validation errors")
	}

	session.UpdateState(csvimport.StateImporting)

	result := &LeadImportResult{
		TotalRows: len(validRows),
	}
	errors := csvimport.NewErrorCollection(100)

	for _, row := range validRows {
		select {
		case <-ctx.Done():
			session.UpdateState(csvimport.StateCancelled)
			return nil, ctx.Err()
		default:
		}

		if err := s.importRow(ctx, tenantID, actor, row, conflictMode, result, errors); err != nil {
			// Critical error - stop import
			session.UpdateState(csvimport.StateFailed)
			return nil, err
		}
	}

	result.Errors = errors.Errors()
	result.IsTruncated = errors.IsTruncated()
	result.TotalErrors = errors.TotalCount()

	if result.ErrorRows > 0 {
		session.UpdateState(csvimport.StateFailed)
	} else {
		session.UpdateState(csvimport.StateCompleted)
	}

	s.logger.Info("Lead import finished",
		zap.String("session_id", session.ID.String()),
		zap.Int("imported", result.ImportedRows),
		zap.Int("updated", result.UpdatedRows),
		zap.Int("skipped", result.SkippedRows),
		zap.Int("errors", result.ErrorRows))

	return result, nil
}

// importRow imports a single lead row
func (s *LeadImportService) importRow(
	ctx context.Context,
	tenantID uuid.UUID,
	actor Actor,
	row *csvimport.Row,
	conflictMode ConflictMode,
	result *LeadImportResult,
	errors *csvimport.ErrorCollection,
) error {
	contactName := strings.TrimSpace(row.Get("contact_name"))
	contactEmail := strings.TrimSpace(row.Get("contact_email"))
	contactPhone := strings.TrimSpace(row.Get("contact_phone"))
	companyName := strings.TrimSpace(row.Get("company_name"))
	requestedAmountStr := strings.TrimSpace(row.Get("requested_amount"))
	source := strings.TrimSpace(row.GetOrDefault("source", "import"))
	notes := strings.TrimSpace(row.Get("notes"))

	if source == "" {
		source = "import"
	}

	var requestedAmount *valueobject.Money
	if requestedAmountStr != "" {
		money, err := valueobject.NewMoneyGBPFromString(requestedAmountStr)
		if err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "requested_amount", csvimport.ErrCodeImportInvalidType, "invalid decimal value"))
			result.ErrorRows++
			return nil
		}
		requestedAmount = &money
	}

	existing, err := s.leadRepo.FindByContactEmail(ctx, tenantID, contactEmail)
	if err != nil && err != shared.ErrNotFound {
		return fmt.Errorf("failed to check existing lead: %w", err)
	}

	if existing != nil {
		switch conflictMode {
		case ConflictModeSkip:
			result.SkippedRows++
			return nil
		case ConflictModeFail:
			errors.Add(csvimport.NewRowError(row.LineNumber, "contact_email", csvimport.ErrCodeImportDuplicateInDB, "lead with this contact email already exists"))
			result.ErrorRows++
			return nil
		case ConflictModeUpdate:
			return s.updateRow(ctx, existing, row, contactPhone, companyName, notes, requestedAmount, result, errors)
		}
	}

	lead, err := partner.NewLead(tenantID, source, contactName, contactEmail)
	if err != nil {
		errors.Add(csvimport.NewRowError(row.LineNumber, "contact_name", csvimport.ErrCodeImportValidation, err.Error()))
		result.ErrorRows++
		return nil
	}

	if contactPhone != "" || companyName != "" || notes != "" {
		if err := lead.UpdateDetails(contactPhone, companyName, notes); err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "notes", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}
	if requestedAmount != nil {
		if err := lead.SetRequestedAmount(*requestedAmount); err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "requested_amount", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}
	if actor.IsPartner() {
		if err := lead.AssignOwner(actor.UserID); err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "contact_email", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}

	s.publishEvents(ctx, lead.GetDomainEvents())
	lead.ClearDomainEvents()

	result.ImportedRows++
	return nil
}

// updateRow refreshes an existing lead from a conflicting row
func (s *LeadImportService) updateRow(
	ctx context.Context,
	lead *partner.Lead,
	row *csvimport.Row,
	contactPhone, companyName, notes string,
	requestedAmount *valueobject.Money,
	result *LeadImportResult,
	errors *csvimport.ErrorCollection,
) error {
	if !lead.IsOpen() {
		errors.Add(csvimport.NewRowError(row.LineNumber, "contact_email", csvimport.ErrCodeImportValidation, "lead is closed and cannot be updated"))
		result.ErrorRows++
		return nil
	}

	if err := lead.UpdateDetails(contactPhone, companyName, notes); err != nil {
		errors.Add(csvimport.NewRowError(row.LineNumber, "notes", csvimport.ErrCodeImportValidation, err.Error()))
		result.ErrorRows++
		return nil
	}
	if requestedAmount != nil {
		if err := lead.SetRequestedAmount(*requestedAmount); err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "requested_amount", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}

	s.publishEvents(ctx, lead.GetDomainEvents())
	lead.ClearDomainEvents()

	result.UpdatedRows++
	return nil
}
