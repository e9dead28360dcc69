package csvimport

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EntityType names a CSV import target.
type EntityType string

const (
	EntityLeads     EntityType = "leads"
	EntityLenders   EntityType = "lenders"
	EntityCompanies EntityType = "companies"
)

func ValidEntityTypes() []EntityType {
	return []EntityType{
		EntityLeads,
		EntityLenders,
		EntityCompanies,
	}
}

func IsValidEntityType(t string) bool {
	for _, valid := range ValidEntityTypes() {
		if string(valid) == t {
			return true
		}
	}
	return false
}

// ImportState tracks an import session through validate and import.
type ImportState string

const (
	StateCreated    ImportState = "created"
	StateValidating ImportState = "validating"
	StateValidated  ImportState = "validated"
	StateImporting  ImportState = "importing"
	StateCompleted  ImportState = "completed"
	StateFailed     ImportState = "failed"
	StateCancelled  ImportState = "cancelled"
)

// ImportSession is one uploaded file working its way through the import
// flow. Validation results are attached so the broker can review row errors
// before committing the import.
type ImportSession struct {
	ID          uuid.UUID        `json:"id"`
	TenantID    uuid.UUID        `json:"tenant_id"`
	UserID      uuid.UUID        `json:"user_id"`
	EntityType  EntityType       `json:"entity_type"`
	FileName    string           `json:"file_name"`
	FileSize    int64            `json:"file_size"`
	State       ImportState      `json:"state"`
	TotalRows   int              `json:"total_rows"`
	ValidRows   int              `json:"valid_rows"`
	ErrorRows   int              `json:"error_rows"`
	Errors      []RowError       `json:"errors,omitempty"`
	Preview     []map[string]any `json:"preview,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}

func NewImportSession(tenantID, userID uuid.UUID, entityType EntityType, fileName string, fileSize int64) *ImportSession {
	now := time.Now()
	return &ImportSession{
		ID:         uuid.New(),
		TenantID:   tenantID,
		UserID:     userID,
		EntityType: entityType,
		FileName:   fileName,
		FileSize:   fileSize,
		State:      StateCreated,
		CreatedAt:  now,
		UpdatedAt:  now,
		Preview:    make([]map[string]any, 0),
		Errors:     make([]RowError, 0),
	}
}

// UpdateState advances the session and stamps CompletedAt on terminal states.
func (s *ImportSession) UpdateState(state ImportState) {
	s.State = state
	s.UpdatedAt = time.Now()
	if state == StateCompleted || state == StateFailed || state == StateCancelled {
		now := time.Now()
		s.CompletedAt = &now
	}
}

func (s *ImportSession) SetValidationResult(result *ValidationResult) {
	s.TotalRows = result.TotalRows
	s.ValidRows = result.ValidRows
	s.ErrorRows = result.ErrorRows
	s.Errors = result.Errors
	s.Preview = result.Preview
	s.UpdatedAt = time.Now()
}

func (s *ImportSession) IsValid() bool {
	return s.ErrorRows == 0
}

// ImportContext bundles the parser, validators, and per-row bookkeeping for
// one validation run.
type ImportContext struct {
	ctx             context.Context
	cancel          context.CancelFunc
	session         *ImportSession
	parser          *CSVParser
	fieldValidator  *FieldValidator
	refValidator    *ReferenceValidator
	uniqueValidator *UniquenessValidator
	errors          *ErrorCollection
	validRows       []*Row
	errorRowNums    map[int]bool
	mu              sync.RWMutex
}

type ImportContextOption func(*ImportContext)

func WithFieldValidator(v *FieldValidator) ImportContextOption {
	return func(ic *ImportContext) {
		ic.fieldValidator = v
	}
}

func WithReferenceValidator(v *ReferenceValidator) ImportContextOption {
	return func(ic *ImportContext) {
		ic.refValidator = v
	}
}

func WithUniquenessValidator(v *UniquenessValidator) ImportContextOption {
	return func(ic *ImportContext) {
		ic.uniqueValidator = v
	}
}

func NewImportContext(ctx context.Context, session *ImportSession, opts ...ImportContextOption) *ImportContext {
	ctxWithCancel, cancel := context.WithCancel(ctx)

	ic := &ImportContext{
		ctx:          ctxWithCancel,
		cancel:       cancel,
		session:      session,
		errors:       NewErrorCollection(100),
		validRows:    make([]*Row, 0),
		errorRowNums: make(map[int]bool),
	}

	for _, opt := range opts {
		opt(ic)
	}

	return ic
}

func (ic *ImportContext) Context() context.Context {
	return ic.ctx
}

func (ic *ImportContext) Cancel() {
	ic.cancel()
	ic.session.UpdateState(StateCancelled)
}

func (ic *ImportContext) Session() *ImportSession {
	return ic.session
}

func (ic *ImportContext) Parser() *CSVParser {
	return ic.parser
}

func (ic *ImportContext) SetParser(p *CSVParser) {
	ic.parser = p
}

func (ic *ImportContext) ValidRows() []*Row {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return ic.validRows
}

func (ic *ImportContext) AddValidRow(row *Row) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.validRows = append(ic.validRows, row)
}

func (ic *ImportContext) MarkRowError(rowNum int) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.errorRowNums[rowNum] = true
}

func (ic *ImportContext) HasRowError(rowNum int) bool {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return ic.errorRowNums[rowNum]
}

func (ic *ImportContext) ErrorCount() int {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return len(ic.errorRowNums)
}

func (ic *ImportContext) Errors() *ErrorCollection {
	return ic.errors
}

// ImportProcessor runs validation over an uploaded CSV. Reference and
// uniqueness lookups are injected so the processor stays decoupled from the
// repositories.
type ImportProcessor struct {
	maxFileSize     int64
	maxRows         int
	maxErrors       int
	previewRows     int
	referenceLookup func(refType, value string) (bool, error)
	uniqueLookup    func(entityType, field, value string) (bool, error)
}

type ProcessorOption func(*ImportProcessor)

func WithMaxFileSize(size int64) ProcessorOption {
	return func(p *ImportProcessor) {
		p.maxFileSize = size
	}
}

func WithMaxRows(rows int) ProcessorOption {
	return func(p *ImportProcessor) {
		p.maxRows = rows
	}
}

func WithMaxErrors(errors int) ProcessorOption {
	return func(p *ImportProcessor) {
		p.maxErrors = errors
	}
}

func WithPreviewRows(rows int) ProcessorOption {
	return func(p *ImportProcessor) {
		p.previewRows = rows
	}
}

func WithReferenceLookup(fn func(refType, value string) (bool, error)) ProcessorOption {
	return func(p *ImportProcessor) {
		p.referenceLookup = fn
	}
}

func WithUniqueLookup(fn func(entityType, field, value string) (bool, error)) ProcessorOption {
	return func(p *ImportProcessor) {
		p.uniqueLookup = fn
	}
}

func NewImportProcessor(opts ...ProcessorOption) *ImportProcessor {
	p := &ImportProcessor{
		maxFileSize: 10 * 1024 * 1024,
		maxRows:     100000,
		maxErrors:   100,
		previewRows: 5,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Validate parses and validates the file without writing anything. The
// session ends up StateValidated when every row passes and StateFailed
// otherwise; either way the result carries counts, errors, and a preview.
func (p *ImportProcessor) Validate(ctx context.Context, session *ImportSession, reader io.Reader, rules []FieldRule) (*ValidationResult, error) {
	session.UpdateState(StateValidating)

	parser, err := NewCSVParser(reader)
	if err != nil {
		session.UpdateState(StateFailed)
		return nil, err
	}

	if err := parser.ParseHeader(); err != nil {
		session.UpdateState(StateFailed)
		return nil, err
	}

	fieldValidator, refValidator, uniqueValidator := p.newValidators(rules)

	importCtx := NewImportContext(ctx, session,
		WithFieldValidator(fieldValidator),
		WithReferenceValidator(refValidator),
		WithUniquenessValidator(uniqueValidator),
	)
	importCtx.SetParser(parser)

	result := NewValidationResult(session.ID.String())
	totalRows := 0
	validRows := 0
	errorRows := 0

	for {
		select {
		case <-ctx.Done():
			session.UpdateState(StateCancelled)
			return nil, ctx.Err()
		default:
		}

		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			importCtx.Errors().Add(NewRowError(parser.CurrentRow(), "", ErrCodeImportCSVParsing, err.Error()))
			errorRows++
			continue
		}

		if row.IsEmpty() {
			continue
		}

		totalRows++
		if totalRows > p.maxRows {
			importCtx.Errors().Add(NewRowError(row.LineNumber, "", ErrCodeImportValidation,
				"exceeded maximum number of rows"))
			break
		}

		if p.rowHasErrors(row, rules, importCtx) {
			errorRows++
			importCtx.MarkRowError(row.LineNumber)
			continue
		}

		validRows++
		importCtx.AddValidRow(row)

		if len(result.Preview) < p.previewRows {
			previewRow := make(map[string]any, len(row.Data))
			for k, v := range row.Data {
				previewRow[k] = v
			}
			result.AddPreview(previewRow)
		}
	}

	result.SetCounts(totalRows, validRows, errorRows)
	result.SetErrors(p.mergeErrors(importCtx))

	session.SetValidationResult(result)
	if errorRows > 0 {
		session.UpdateState(StateFailed)
	} else {
		session.UpdateState(StateValidated)
	}

	return result, nil
}

func (p *ImportProcessor) newValidators(rules []FieldRule) (*FieldValidator, *ReferenceValidator, *UniquenessValidator) {
	fieldValidator := NewFieldValidator(rules, p.maxErrors)

	var refValidator *ReferenceValidator
	if p.referenceLookup != nil {
		refValidator = NewReferenceValidator(p.referenceLookup, p.maxErrors)
	}

	var uniqueValidator *UniquenessValidator
	if p.uniqueLookup != nil {
		uniqueValidator = NewUniquenessValidator(p.uniqueLookup, p.maxErrors)
	}

	return fieldValidator, refValidator, uniqueValidator
}

// rowHasErrors runs field, reference, and uniqueness checks on one row. All
// checks run so every problem in the row is reported, not just the first.
func (p *ImportProcessor) rowHasErrors(row *Row, rules []FieldRule, ic *ImportContext) bool {
	hasError := !ic.fieldValidator.ValidateRow(row)

	if ic.refValidator != nil {
		for _, rule := range rules {
			if rule.Reference == "" {
				continue
			}
			value := row.Get(rule.Column)
			if !ic.refValidator.ValidateReference(row.LineNumber, rule.Column, rule.Reference, value) {
				hasError = true
			}
		}
	}

	if ic.uniqueValidator != nil {
		for _, rule := range rules {
			if !rule.Unique {
				continue
			}
			value := row.Get(rule.Column)
			if !ic.uniqueValidator.ValidateUnique(row.LineNumber, rule.Column, string(ic.session.EntityType), value) {
				hasError = true
			}
		}
	}

	return hasError
}

func (p *ImportProcessor) mergeErrors(ic *ImportContext) *ErrorCollection {
	merged := NewErrorCollection(p.maxErrors)
	for _, e := range ic.Errors().Errors() {
		merged.Add(e)
	}
	for _, e := range ic.fieldValidator.Errors().Errors() {
		merged.Add(e)
	}
	if ic.refValidator != nil {
		for _, e := range ic.refValidator.Errors().Errors() {
			merged.Add(e)
		}
	}
	if ic.uniqueValidator != nil {
		for _, e := range ic.uniqueValidator.Errors().Errors() {
			merged.Add(e)
		}
	}
	return merged
}

// SessionStore persists import sessions between the validate and import
// requests.
type SessionStore interface {
	Save(session *ImportSession) error
	Get(id uuid.UUID) (*ImportSession, error)
	GetByTenant(tenantID uuid.UUID, limit int) ([]*ImportSession, error)
	Delete(id uuid.UUID) error
}

// InMemorySessionStore keeps sessions in a map with a TTL. Sessions are
// short-lived working state, so process-local storage is acceptable.
type InMemorySessionStore struct {
	sessions map[uuid.UUID]*ImportSession
	mu       sync.RWMutex
	ttl      time.Duration
	stopCh   chan struct{}
}

func NewInMemorySessionStore(ttl time.Duration) *InMemorySessionStore {
	store := &InMemorySessionStore{
		sessions: make(map[uuid.UUID]*ImportSession),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
	go store.sweepLoop()
	return store
}

func (s *InMemorySessionStore) sweepLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *InMemorySessionStore) Stop() {
	close(s.stopCh)
}

func (s *InMemorySessionStore) Save(session *ImportSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

// Get returns nil for unknown or expired sessions.
func (s *InMemorySessionStore) Get(id uuid.UUID) (*ImportSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok || time.Since(session.CreatedAt) > s.ttl {
		return nil, nil
	}
	return session, nil
}

func (s *InMemorySessionStore) GetByTenant(tenantID uuid.UUID, limit int) ([]*ImportSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*ImportSession
	for _, session := range s.sessions {
		if session.TenantID == tenantID && time.Since(session.CreatedAt) <= s.ttl {
			result = append(result, session)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (s *InMemorySessionStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Cleanup evicts sessions past their TTL.
func (s *InMemorySessionStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, session := range s.sessions {
		if time.Since(session.CreatedAt) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
