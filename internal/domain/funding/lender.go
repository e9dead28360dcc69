package funding

import (
	"sort"
	"strings"
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Lender represents a funding provider and its eligibility thresholds
type Lender struct {
	shared.TenantAggregateRoot
	Name              string
	Active            bool
	MinAmount         valueobject.Money
	MaxAmount         valueobject.Money
	MinMonthsTrading  int
	MinMonthlyRevenue valueobject.Money
	ExcludedSICs      []string // SIC code prefixes the lender will not fund
	RequiresHomeowner bool
	Notes             string
}

// NewLender creates a new active lender
func NewLender(tenantID uuid.UUID, name string, minAmount, maxAmount valueobject.Money) (*Lender, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_LENDER_NAME", "Lender name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_LENDER_NAME", "Lender name cannot exceed 200 characters")
	}
	if minAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Minimum amount cannot be negative")
	}
	if lt, err := maxAmount.LessThan(minAmount); err != nil || lt {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Maximum amount must be at least the minimum")
	}

	return &Lender{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Active:              true,
		MinAmount:           minAmount,
		MaxAmount:           maxAmount,
		MinMonthlyRevenue:   valueobject.ZeroGBP(),
	}, nil
}

// SetCriteria updates the lender's eligibility thresholds
func (l *Lender) SetCriteria(minMonthsTrading int, minMonthlyRevenue valueobject.Money, excludedSICs []string, requiresHomeowner bool) error {
	if minMonthsTrading < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Minimum months trading cannot be negative")
	}
	if minMonthlyRevenue.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Minimum monthly revenue cannot be negative")
	}
	for _, sic := range excludedSICs {
		if strings.TrimSpace(sic) == "" {
			return shared.NewDomainError("INVALID_SIC_EXCLUSION", "SIC exclusion cannot be empty")
		}
	}

	l.MinMonthsTrading = minMonthsTrading
	l.MinMonthlyRevenue = minMonthlyRevenue
	l.ExcludedSICs = excludedSICs
	l.RequiresHomeowner = requiresHomeowner
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// SetAmountRange updates the funding range
func (l *Lender) SetAmountRange(minAmount, maxAmount valueobject.Money) error {
	if minAmount.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Minimum amount cannot be negative")
	}
	if lt, err := maxAmount.LessThan(minAmount); err != nil || lt {
		return shared.NewDomainError("INVALID_THRESHOLD", "Maximum amount must be at least the minimum")
	}

	l.MinAmount = minAmount
	l.MaxAmount = maxAmount
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// Activate makes the lender available for scoring
func (l *Lender) Activate() {
	l.Active = true
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// Deactivate removes the lender from scoring
func (l *Lender) Deactivate() {
	l.Active = false
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// ExcludesSIC returns true if the SIC code falls under an excluded prefix
func (l *Lender) ExcludesSIC(sicCode string) bool {
	if sicCode == "" {
		return false
	}
	for _, prefix := range l.ExcludedSICs {
		if strings.HasPrefix(sicCode, prefix) {
			return true
		}
	}
	return false
}

// EligibilityInput is the borrower snapshot the scorer checks lenders against
type EligibilityInput struct {
	Amount           valueobject.Money
	MonthsTrading    int
	MonthlyRevenue   valueobject.Money
	SICCode          string
	OwnerIsHomeowner bool
}

// Eligibility criteria labels reported per lender
const (
	CriterionAmountRange    = "amount_range"
	CriterionMonthsTrading  = "months_trading"
	CriterionMonthlyRevenue = "monthly_revenue"
	CriterionSector         = "sector"
	CriterionHomeowner      = "homeowner"
)

// LenderVerdict is the outcome of checking one lender's thresholds
type LenderVerdict struct {
	LenderID       uuid.UUID `json:"lender_id"`
	LenderName     string    `json:"lender_name"`
	Eligible       bool      `json:"eligible"`
	FailedCriteria []string  `json:"failed_criteria,omitempty"`
}

// CheckEligibility evaluates the input against this lender's thresholds
func (l *Lender) CheckEligibility(input EligibilityInput) LenderVerdict {
	verdict := LenderVerdict{
		LenderID:   l.ID,
		LenderName: l.Name,
	}

	belowMin, _ := input.Amount.LessThan(l.MinAmount)
	aboveMax, _ := l.MaxAmount.LessThan(input.Amount)
	if belowMin || aboveMax {
		verdict.FailedCriteria = append(verdict.FailedCriteria, CriterionAmountRange)
	}

	if input.MonthsTrading < l.MinMonthsTrading {
		verdict.FailedCriteria = append(verdict.FailedCriteria, CriterionMonthsTrading)
	}

	if belowRevenue, _ := input.MonthlyRevenue.LessThan(l.MinMonthlyRevenue); belowRevenue {
		verdict.FailedCriteria = append(verdict.FailedCriteria, CriterionMonthlyRevenue)
	}

	if l.ExcludesSIC(input.SICCode) {
		verdict.FailedCriteria = append(verdict.FailedCriteria, CriterionSector)
	}

	if l.RequiresHomeowner && !input.OwnerIsHomeowner {
		verdict.FailedCriteria = append(verdict.FailedCriteria, CriterionHomeowner)
	}

	verdict.Eligible = len(verdict.FailedCriteria) == 0
	return verdict
}

// ScoreLenders checks the input against every active lender. Matched lenders
// come first, sorted by maximum amount descending; the rest keep their order.
func ScoreLenders(lenders []Lender, input EligibilityInput) []LenderVerdict {
	verdicts := make([]LenderVerdict, 0, len(lenders))
	maxAmounts := make(map[uuid.UUID]valueobject.Money, len(lenders))

	for _, lender := range lenders {
		if !lender.Active {
			continue
		}
		verdicts = append(verdicts, lender.CheckEligibility(input))
		maxAmounts[lender.ID] = lender.MaxAmount
	}

	sort.SliceStable(verdicts, func(i, j int) bool {
		if verdicts[i].Eligible != verdicts[j].Eligible {
			return verdicts[i].Eligible
		}
		if !verdicts[i].Eligible {
			return false
		}
		gt, _ := maxAmounts[verdicts[i].LenderID].GreaterThan(maxAmounts[verdicts[j].LenderID])
		return gt
	})

	return verdicts
}
