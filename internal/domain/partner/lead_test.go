package partner

import (
	"testing"

	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLead(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates lead with valid input", func(t *testing.T) {
		lead, err := NewLead(tenantID, "website", "John Smith", "John@Example.com")

		require.NoError(t, err)
		assert.Equal(t, LeadStatusNew, lead.Status)
		assert.Equal(t, "john@example.com", lead.ContactEmail)
		assert.True(t, lead.IsOpen())

		events := lead.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*LeadCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("requires contact name", func(t *testing.T) {
		_, err := NewLead(tenantID, "website", "", "john@example.com")
		assert.Error(t, err)
	})

	t.Run("requires valid email", func(t *testing.T) {
		_, err := NewLead(tenantID, "website", "John Smith", "not-an-email")
		assert.Error(t, err)
	})
}

func TestLead_Lifecycle(t *testing.T) {
	tenantID := uuid.New()

	newLead := func() *Lead {
		lead, _ := NewLead(tenantID, "referral", "John Smith", "john@example.com")
		return lead
	}

	t.Run("contacted then qualified", func(t *testing.T) {
		lead := newLead()

		require.NoError(t, lead.MarkContacted())
		assert.Equal(t, LeadStatusContacted, lead.Status)

		require.NoError(t, lead.Qualify())
		assert.Equal(t, LeadStatusQualified, lead.Status)
	})

	t.Run("qualify straight from new", func(t *testing.T) {
		lead := newLead()
		require.NoError(t, lead.Qualify())
	})

	t.Run("cannot contact twice", func(t *testing.T) {
		lead := newLead()
		require.NoError(t, lead.MarkContacted())
		assert.Error(t, lead.MarkContacted())
	})

	t.Run("disqualify requires reason and closes lead", func(t *testing.T) {
		lead := newLead()

		assert.Error(t, lead.Disqualify("  "))
		require.NoError(t, lead.Disqualify("outside lending criteria"))
		assert.False(t, lead.IsOpen())
		assert.Error(t, lead.UpdateDetails("", "Acme Ltd", ""))
	})
}

func TestLead_Convert(t *testing.T) {
	tenantID := uuid.New()

	t.Run("converts a qualified lead", func(t *testing.T) {
		lead, _ := NewLead(tenantID, "website", "John Smith", "john@example.com")
		require.NoError(t, lead.Qualify())
		lead.ClearDomainEvents()

		userID, companyID, appID := uuid.New(), uuid.New(), uuid.New()
		require.NoError(t, lead.Convert(userID, companyID, appID))

		assert.Equal(t, LeadStatusConverted, lead.Status)
		assert.Equal(t, userID, *lead.ConvertedUserID)
		assert.NotNil(t, lead.ConvertedAt)

		events := lead.GetDomainEvents()
		require.Len(t, events, 1)
		converted, ok := events[0].(*LeadConvertedEvent)
		require.True(t, ok)
		assert.Equal(t, appID, converted.ApplicationID)
	})

	t.Run("cannot convert an unqualified lead", func(t *testing.T) {
		lead, _ := NewLead(tenantID, "website", "John Smith", "john@example.com")
		assert.Error(t, lead.Convert(uuid.New(), uuid.New(), uuid.New()))
	})

	t.Run("cannot convert twice", func(t *testing.T) {
		lead, _ := NewLead(tenantID, "website", "John Smith", "john@example.com")
		require.NoError(t, lead.Qualify())
		require.NoError(t, lead.Convert(uuid.New(), uuid.New(), uuid.New()))
		assert.Error(t, lead.Convert(uuid.New(), uuid.New(), uuid.New()))
	})

	t.Run("rejects empty references", func(t *testing.T) {
		lead, _ := NewLead(tenantID, "website", "John Smith", "john@example.com")
		require.NoError(t, lead.Qualify())
		assert.Error(t, lead.Convert(uuid.Nil, uuid.New(), uuid.New()))
	})
}

func TestLead_Details(t *testing.T) {
	tenantID := uuid.New()
	lead, _ := NewLead(tenantID, "website", "John Smith", "john@example.com")

	t.Run("update details", func(t *testing.T) {
		require.NoError(t, lead.UpdateDetails("+44 113 496 0000", "Smith Haulage Ltd", "wants asset finance"))
		assert.Equal(t, "Smith Haulage Ltd", lead.CompanyName)
	})

	t.Run("requested amount cannot be negative", func(t *testing.T) {
		require.NoError(t, lead.SetRequestedAmount(valueobject.NewMoneyGBP(decimal.NewFromInt(80000))))
		assert.Error(t, lead.SetRequestedAmount(valueobject.NewMoneyGBP(decimal.NewFromInt(-5))))
	})

	t.Run("assign owner", func(t *testing.T) {
		partnerID := uuid.New()
		require.NoError(t, lead.AssignOwner(partnerID))
		assert.True(t, lead.IsOwnedBy(partnerID))
		assert.Error(t, lead.AssignOwner(uuid.Nil))
	})
}

func TestAssignment(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active assignment", func(t *testing.T) {
		a, err := NewAssignment(tenantID, uuid.New(), uuid.New(), uuid.New())

		require.NoError(t, err)
		assert.True(t, a.IsActive())

		events := a.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*PartnerAssignedEvent)
		assert.True(t, ok)
	})

	t.Run("requires all parties", func(t *testing.T) {
		_, err := NewAssignment(tenantID, uuid.Nil, uuid.New(), uuid.New())
		assert.Error(t, err)
		_, err = NewAssignment(tenantID, uuid.New(), uuid.Nil, uuid.New())
		assert.Error(t, err)
	})

	t.Run("revoke is terminal", func(t *testing.T) {
		a, _ := NewAssignment(tenantID, uuid.New(), uuid.New(), uuid.New())

		require.NoError(t, a.Revoke())
		assert.False(t, a.IsActive())
		assert.NotNil(t, a.RevokedAt)
		assert.Error(t, a.Revoke())
	})
}
