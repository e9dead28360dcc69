package funding

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLender(t *testing.T, name string, min, max int64) *Lender {
	t.Helper()
	l, err := NewLender(uuid.New(), name, gbp(min), gbp(max))
	require.NoError(t, err)
	return l
}

func baseInput() EligibilityInput {
	return EligibilityInput{
		Amount:           gbp(50000),
		MonthsTrading:    24,
		MonthlyRevenue:   gbp(30000),
		SICCode:          "62012",
		OwnerIsHomeowner: true,
	}
}

func TestNewLender(t *testing.T) {
	t.Run("creates active lender", func(t *testing.T) {
		l := newLender(t, "Northbridge Capital", 5000, 250000)
		assert.True(t, l.Active)
		assert.True(t, l.MinMonthlyRevenue.IsZero())
	})

	t.Run("requires name", func(t *testing.T) {
		_, err := NewLender(uuid.New(), "  ", gbp(5000), gbp(250000))
		assert.Error(t, err)
	})

	t.Run("max must be at least min", func(t *testing.T) {
		_, err := NewLender(uuid.New(), "Northbridge Capital", gbp(250000), gbp(5000))
		assert.Error(t, err)
	})
}

func TestLender_CheckEligibility(t *testing.T) {
	t.Run("passes all thresholds", func(t *testing.T) {
		l := newLender(t, "Northbridge Capital", 5000, 250000)
		require.NoError(t, l.SetCriteria(12, gbp(10000), []string{"92"}, false))

		verdict := l.CheckEligibility(baseInput())

		assert.True(t, verdict.Eligible)
		assert.Empty(t, verdict.FailedCriteria)
	})

	t.Run("amount out of range", func(t *testing.T) {
		l := newLender(t, "Small Caps", 1000, 25000)

		verdict := l.CheckEligibility(baseInput())

		assert.False(t, verdict.Eligible)
		assert.Contains(t, verdict.FailedCriteria, CriterionAmountRange)
	})

	t.Run("too young a business", func(t *testing.T) {
		l := newLender(t, "Established Only", 5000, 250000)
		require.NoError(t, l.SetCriteria(36, gbp(0), nil, false))

		verdict := l.CheckEligibility(baseInput())

		assert.False(t, verdict.Eligible)
		assert.Contains(t, verdict.FailedCriteria, CriterionMonthsTrading)
	})

	t.Run("revenue below threshold", func(t *testing.T) {
		l := newLender(t, "Big Revenue", 5000, 250000)
		require.NoError(t, l.SetCriteria(0, gbp(100000), nil, false))

		verdict := l.CheckEligibility(baseInput())

		assert.Contains(t, verdict.FailedCriteria, CriterionMonthlyRevenue)
	})

	t.Run("excluded sector by SIC prefix", func(t *testing.T) {
		l := newLender(t, "No Tech", 5000, 250000)
		require.NoError(t, l.SetCriteria(0, gbp(0), []string{"620"}, false))

		verdict := l.CheckEligibility(baseInput())

		assert.Contains(t, verdict.FailedCriteria, CriterionSector)
	})

	t.Run("homeowner requirement", func(t *testing.T) {
		l := newLender(t, "Secured Lending", 5000, 250000)
		require.NoError(t, l.SetCriteria(0, gbp(0), nil, true))

		input := baseInput()
		input.OwnerIsHomeowner = false
		verdict := l.CheckEligibility(input)

		assert.Contains(t, verdict.FailedCriteria, CriterionHomeowner)
	})

	t.Run("collects every failed criterion", func(t *testing.T) {
		l := newLender(t, "Strict", 100000, 250000)
		require.NoError(t, l.SetCriteria(60, gbp(100000), []string{"62"}, true))

		input := baseInput()
		input.OwnerIsHomeowner = false
		verdict := l.CheckEligibility(input)

		assert.False(t, verdict.Eligible)
		assert.Len(t, verdict.FailedCriteria, 5)
	})
}

func TestScoreLenders(t *testing.T) {
	t.Run("eligible lenders first, largest max amount leading", func(t *testing.T) {
		small := newLender(t, "Small Caps", 1000, 60000)
		large := newLender(t, "Northbridge Capital", 5000, 500000)
		strict := newLender(t, "Strict", 5000, 250000)
		require.NoError(t, strict.SetCriteria(120, gbp(0), nil, false))

		verdicts := ScoreLenders([]Lender{*small, *strict, *large}, baseInput())

		require.Len(t, verdicts, 3)
		assert.Equal(t, "Northbridge Capital", verdicts[0].LenderName)
		assert.True(t, verdicts[0].Eligible)
		assert.Equal(t, "Small Caps", verdicts[1].LenderName)
		assert.False(t, verdicts[2].Eligible)
	})

	t.Run("inactive lenders are skipped", func(t *testing.T) {
		active := newLender(t, "Active", 1000, 100000)
		dormant := newLender(t, "Dormant", 1000, 100000)
		dormant.Deactivate()

		verdicts := ScoreLenders([]Lender{*active, *dormant}, baseInput())

		require.Len(t, verdicts, 1)
		assert.Equal(t, "Active", verdicts[0].LenderName)
	})

	t.Run("scoring does not mutate lenders", func(t *testing.T) {
		l := newLender(t, "Northbridge Capital", 5000, 250000)
		before := l.Version

		ScoreLenders([]Lender{*l}, baseInput())

		assert.Equal(t, before, l.Version)
	})
}
