package invoice

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCandidate() *Candidate {
	return &Candidate{
		ID:         "inv-1",
		Payee:      Party{ID: "user-1", Name: "Ada Lovelace"},
		Payor:      Party{ID: "cust-1", Name: "Acme Corp", Email: "billing@acme.test"},
		Currency:   "USD",
		DateIssued: "2026-08-01",
		DateDue:    "2026-08-29",
		Discount:   decimal.Zero,
		TaxPercent: decimal.Zero,
		Shipping:   decimal.Zero,
		Items: []*Item{
			{
				ResourceID: "res-1",
				Name:       "Consulting",
				Quantity:   lo.ToPtr(decimal.NewFromInt(2)),
				UnitPrice:  lo.ToPtr(decimal.RequireFromString("99.50")),
			},
		},
	}
}

func validationErr(t *testing.T, c *Candidate) *ValidationError {
	t.Helper()
	err := c.Validate()
	require.Error(t, err)
	ve, ok := err.(*ValidationError)
	require.True(t, ok)
	return ve
}

func TestValidateAcceptsValidCandidate(t *testing.T) {
	assert.NoError(t, validCandidate().Validate())
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	c := validCandidate()
	c.Payee.Name = ""
	c.Payor.Name = ""
	c.DateIssued = "not-a-date"
	c.Discount = decimal.NewFromInt(-1)

	ve := validationErr(t, c)

	assert.Len(t, ve.Errors, 4)
	assert.Contains(t, ve.Errors, "Your name is missing. Please include your name.")
	assert.Contains(t, ve.Errors, "BILL TO name is missing. Please include a name to bill.")
	assert.True(t, ve.Fields["payee.name"])
	assert.True(t, ve.Fields["payor.name"])
	assert.True(t, ve.Fields["dateIssued"])
	assert.True(t, ve.Fields["discount"])
}

func TestValidatePayorEmail(t *testing.T) {
	c := validCandidate()
	c.Payor.Email = "not-an-email"

	ve := validationErr(t, c)
	assert.Contains(t, ve.Errors, "BILL TO email is invalid. Please enter a valid email address.")
	assert.True(t, ve.Fields["payor.email"])

	// an absent email is fine
	c = validCandidate()
	c.Payor.Email = ""
	assert.NoError(t, c.Validate())
}

func TestValidateDates(t *testing.T) {
	c := validCandidate()
	c.DateIssued = "2026-13-45"
	c.DateDue = "tomorrow"

	ve := validationErr(t, c)
	assert.Contains(t, ve.Errors, "Invalid date issued. Please make sure the date is valid and has format YYYY-MM-DD.")
	assert.Contains(t, ve.Errors, "Invalid date due. Please make sure the date is valid and has format YYYY-MM-DD.")

	// due date is optional
	c = validCandidate()
	c.DateDue = ""
	assert.NoError(t, c.Validate())
}

func TestValidateItemRules(t *testing.T) {
	c := validCandidate()
	c.Items = []*Item{
		{ResourceID: "res-1"},
		{
			ResourceID: "res-2",
			Name:       "Widget",
			Quantity:   lo.ToPtr(decimal.Zero),
			UnitPrice:  lo.ToPtr(decimal.NewFromInt(-3)),
		},
	}

	ve := validationErr(t, c)

	assert.Contains(t, ve.Errors, "Item 1 is missing an Item name.")
	assert.Contains(t, ve.Errors, "Item 1 is missing a Quantity.")
	assert.Contains(t, ve.Errors, "Item 1 is missing a Price.")
	assert.Contains(t, ve.Errors, "Item 2 has Quantity less than or equal to 0. Please include a positive quantity.")
	assert.Contains(t, ve.Errors, "Item 2 has Price less than 0. Please include a price greater than or equal to 0.")

	assert.True(t, ve.Fields["items[res-1].name"])
	assert.True(t, ve.Fields["items[res-1].quantity"])
	assert.True(t, ve.Fields["items[res-1].unitPrice"])
	assert.True(t, ve.Fields["items[res-2].quantity"])
	assert.True(t, ve.Fields["items[res-2].unitPrice"])
}

func TestValidateZeroPriceIsAllowed(t *testing.T) {
	c := validCandidate()
	c.Items[0].UnitPrice = lo.ToPtr(decimal.Zero)

	assert.NoError(t, c.Validate())
}

func TestValidateNegativeAdjustments(t *testing.T) {
	c := validCandidate()
	c.Discount = decimal.NewFromInt(-1)
	c.TaxPercent = decimal.RequireFromString("-0.5")
	c.Shipping = decimal.NewFromInt(-10)

	ve := validationErr(t, c)
	assert.True(t, ve.Fields["discount"])
	assert.True(t, ve.Fields["taxPercent"])
	assert.True(t, ve.Fields["shipping"])
	assert.Len(t, ve.Errors, 3)
}

func TestValidationErrorDetails(t *testing.T) {
	c := validCandidate()
	c.Payee.Name = ""

	ve := validationErr(t, c)
	details := ve.Details()

	assert.Equal(t, true, details["payee.name"])
	assert.Equal(t, ve.Errors, details["errors"])
}
